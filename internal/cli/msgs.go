package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort = "Render a plugin registration template"

	// Flag descriptions
	MsgFlagVerbose             = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig              = "Extra config file (TOML or YAML)"
	MsgFlagEngine              = "Template engine to use (%s)"
	MsgFlagKeepTrailingNewline = "Keep the single trailing newline of the template source"
	MsgFlagNoFinalNewline      = "Do not terminate the output with a newline"
	MsgFlagStrictUndefined     = "Fail when the template uses an undefined variable"
	MsgFlagPrintConfig         = "Print the effective configuration as TOML and exit"

	// Version output, expanded by cobra after the commit and date are filled in
	MsgVersionTemplate = "{{.Name}} version {{.Version}}\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrWriteConfig = "failed to write configuration"
	MsgErrFlags       = "invalid command line"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
