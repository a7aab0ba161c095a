package render

import (
	"bytes"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/arthur-debert/plugingen/pkg/errors"
	"github.com/arthur-debert/plugingen/pkg/logging"
)

// GoEngineName is the registry name of the text/template engine
const GoEngineName = "go"

func init() {
	Register(GoEngineName, func(opts Options) Engine {
		return &GoEngine{opts: opts, funcMap: sprig.TxtFuncMap()}
	})
}

// GoEngine renders text/template templates with sprig functions
type GoEngine struct {
	opts    Options
	funcMap template.FuncMap
}

// Name returns the registry name
func (e *GoEngine) Name() string {
	return GoEngineName
}

// Render parses and executes source
func (e *GoEngine) Render(name, source string, vars Vars) (string, error) {
	logger := logging.GetLogger("render.go")

	tmpl := template.New(filepath.Base(name)).Funcs(e.funcMap)
	if e.opts.StrictUndefined {
		tmpl = tmpl.Option("missingkey=error")
	}

	tmpl, err := tmpl.Parse(prepareSource(source, e.opts))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateSyntax, "invalid template %s", name).
			WithDetail("engine", GoEngineName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(vars)); err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRender, "failed to render %s", name).
			WithDetail("engine", GoEngineName)
	}

	logger.Trace().Str("template", name).Int("bytes", buf.Len()).Msg("Rendered template")
	return buf.String(), nil
}
