// Package generator implements a single plugingen invocation: it turns the
// command-line arguments into a Request, reads the template file, renders it
// with the plugin names bound to the "plugins" variable and writes the text.
package generator

import (
	"io"
	"os"

	"github.com/arthur-debert/plugingen/pkg/errors"
	"github.com/arthur-debert/plugingen/pkg/logging"
	"github.com/arthur-debert/plugingen/pkg/render"
)

// PluginsVar is the template variable holding the plugin names
const PluginsVar = "plugins"

// Request is one invocation: a template and the names to feed it
type Request struct {
	TemplatePath string
	// PluginNames keeps command-line order and is never nil
	PluginNames []string
}

// ParseArgs builds a Request from argv, where argv[0] is the program name,
// argv[1] the template path and the rest plugin names.
func ParseArgs(argv []string) (Request, error) {
	if len(argv) < 2 {
		return Request{}, errors.New(errors.ErrInsufficientArguments,
			"not enough arguments: a template path is required").
			WithDetail("argc", len(argv))
	}
	return NewRequest(argv[1], argv[2:]), nil
}

// NewRequest copies names so later changes to the caller's slice do not leak in
func NewRequest(templatePath string, names []string) Request {
	pluginNames := make([]string, len(names))
	copy(pluginNames, names)
	return Request{
		TemplatePath: templatePath,
		PluginNames:  pluginNames,
	}
}

// Options configure a Generator
type Options struct {
	// FinalNewline terminates the output with \n
	FinalNewline bool
}

// Generator renders requests with one engine
type Generator struct {
	engine render.Engine
	opts   Options
}

// New creates a Generator
func New(engine render.Engine, opts Options) *Generator {
	return &Generator{engine: engine, opts: opts}
}

// Render reads the template and returns the rendered text, including the
// final newline when configured.
func (g *Generator) Render(req Request) (string, error) {
	logger := logging.GetLogger("generator")
	done := logging.LogOperationStart(logger, "render")
	defer done()

	content, err := os.ReadFile(req.TemplatePath)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileRead, "failed to read template %s", req.TemplatePath).
			WithDetail("path", req.TemplatePath)
	}

	pluginNames := req.PluginNames
	if pluginNames == nil {
		pluginNames = []string{}
	}

	logger.Info().
		Str("template", req.TemplatePath).
		Str("engine", g.engine.Name()).
		Strs("plugins", pluginNames).
		Msg("Rendering template")

	out, err := g.engine.Render(req.TemplatePath, string(content), render.Vars{PluginsVar: pluginNames})
	if err != nil {
		return "", err
	}

	if g.opts.FinalNewline {
		out += "\n"
	}
	return out, nil
}

// Generate renders req and writes it to w. Nothing is written unless
// rendering succeeded.
func (g *Generator) Generate(req Request, w io.Writer) error {
	out, err := g.Render(req)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, out); err != nil {
		return errors.Wrap(err, errors.ErrOutputWrite, "failed to write rendered output")
	}
	return nil
}
