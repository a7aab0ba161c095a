package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/plugingen/pkg/errors"
	"github.com/arthur-debert/plugingen/pkg/ui/styles"
)

// PrintError writes "Error: <err>" to out, styled when out is a colour terminal
func PrintError(out *os.File, err error) {
	WriteError(out, DetectFormat(out), err)
}

// WriteError writes err to w in the given format
func WriteError(w io.Writer, format Format, err error) {
	if err == nil {
		return
	}

	msg := fmt.Sprintf("Error: %v", err)
	if format == FormatTerminal {
		msg = styles.GetStyle("Error").Render(msg)
	}
	fmt.Fprintln(w, msg)

	if path, ok := errors.GetErrorDetails(err)["path"].(string); ok && path != "" {
		hint := fmt.Sprintf("  path: %s", path)
		if format == FormatTerminal {
			hint = styles.GetStyle("Muted").Render(hint)
		}
		fmt.Fprintln(w, hint)
	}
}
