package render

import (
	"sort"
	"strings"

	"github.com/arthur-debert/plugingen/pkg/errors"
)

// Vars are the variables bound at render time
type Vars map[string]any

// Options tune how an engine treats the template source
type Options struct {
	// KeepTrailingNewline keeps the final newline of the source
	KeepTrailingNewline bool
	// TrimBlocks removes the first newline after a block tag (jinja only)
	TrimBlocks bool
	// LStripBlocks strips spaces and tabs from the start of a line up to a
	// block tag (jinja only)
	LStripBlocks bool
	// StrictUndefined fails the render when a template uses an undefined variable
	StrictUndefined bool
}

// Engine renders template source with a set of variables.
// name identifies the template in error messages and is used to resolve
// includes relative to the template file.
type Engine interface {
	Name() string
	Render(name, source string, vars Vars) (string, error)
}

// Factory builds an engine from options
type Factory func(opts Options) Engine

var registry = map[string]Factory{}

// Register adds an engine factory under name, replacing any previous one
func Register(name string, factory Factory) {
	registry[name] = factory
}

// New builds the engine registered under name
func New(name string, opts Options) (Engine, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, errors.Newf(errors.ErrUnknownEngine, "no template engine named %q (available: %s)",
			name, strings.Join(Names(), ", ")).
			WithDetail("engine", name)
	}
	return factory(opts), nil
}

// Names returns the registered engine names, sorted
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// prepareSource applies the newline handling shared by all engines
func prepareSource(source string, opts Options) string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")
	if !opts.KeepTrailingNewline {
		source = strings.TrimSuffix(source, "\n")
	}
	return source
}
