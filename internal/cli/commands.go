// Package cli wires the plugingen command line: flags, configuration,
// logging and the generator behind a single cobra root command.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/plugingen/internal/version"
	"github.com/arthur-debert/plugingen/pkg/config"
	"github.com/arthur-debert/plugingen/pkg/errors"
	"github.com/arthur-debert/plugingen/pkg/generator"
	"github.com/arthur-debert/plugingen/pkg/logging"
	"github.com/arthur-debert/plugingen/pkg/paths"
	"github.com/arthur-debert/plugingen/pkg/render"
)

type rootOptions struct {
	verbosity   int
	configFile  string
	printConfig bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var opts rootOptions

	rootCmd := &cobra.Command{
		Use:     "plugingen [flags] <template> [plugin ...]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	flags := rootCmd.Flags()
	// Everything after the template path is a plugin name
	flags.SetInterspersed(false)
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&opts.configFile, "config", "c", "", MsgFlagConfig)
	flags.StringP("engine", "e", render.JinjaEngineName,
		fmt.Sprintf(MsgFlagEngine, strings.Join(render.Names(), ", ")))
	flags.Bool("keep-trailing-newline", false, MsgFlagKeepTrailingNewline)
	flags.Bool("strict-undefined", false, MsgFlagStrictUndefined)
	flags.Bool("no-final-newline", false, MsgFlagNoFinalNewline)
	flags.BoolVar(&opts.printConfig, "print-config", false, MsgFlagPrintConfig)

	_ = rootCmd.MarkFlagFilename("config", "toml", "yaml", "yml")
	_ = rootCmd.RegisterFlagCompletionFunc("engine", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return render.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrUsage, MsgErrFlags)
	})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetVersionTemplate(fmt.Sprintf(MsgVersionTemplate, version.Commit, version.Date))

	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string, opts rootOptions) error {
	logging.SetupLogger(opts.verbosity, "")
	defer func() { _ = logging.Close() }()
	log.Debug().Str("command", cmd.Name()).Strs("args", args).Msg("Command started")

	// The template path is checked before configuration so a bare
	// invocation always reports a usage error.
	var req generator.Request
	if !opts.printConfig {
		var err error
		req, err = generator.ParseArgs(append([]string{cmd.Name()}, args...))
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: opts.configFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return err
	}

	if cfg.Log.File {
		logging.SetupLogger(opts.verbosity, paths.LogFile())
	}

	if opts.printConfig {
		return printConfig(cmd.OutOrStdout(), cfg)
	}

	engine, err := render.New(cfg.Template.Engine, cfg.RenderOptions())
	if err != nil {
		return err
	}

	gen := generator.New(engine, generator.Options{FinalNewline: cfg.Output.FinalNewline})
	return gen.Generate(req, cmd.OutOrStdout())
}

func printConfig(w io.Writer, cfg *config.Config) error {
	data, err := config.Dump(cfg)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, errors.ErrOutputWrite, MsgErrWriteConfig)
	}
	return nil
}
