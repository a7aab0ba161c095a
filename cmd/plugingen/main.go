package main

import (
	"os"

	"github.com/arthur-debert/plugingen/internal/cli"
	"github.com/arthur-debert/plugingen/pkg/errors"
	"github.com/arthur-debert/plugingen/pkg/ui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the root command and returns the process exit code
func run(args []string) int {
	rootCmd := cli.NewRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(os.Stderr, err)
		code := errors.ExitCode(err)
		if code == errors.ExitUsage {
			_ = rootCmd.Usage()
		}
		return code
	}
	return errors.ExitOK
}
