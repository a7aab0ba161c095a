package render

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/nikolalohinski/gonja"
	"github.com/nikolalohinski/gonja/loaders"

	"github.com/arthur-debert/plugingen/pkg/errors"
	"github.com/arthur-debert/plugingen/pkg/logging"
)

// JinjaEngineName is the registry name of the gonja engine
const JinjaEngineName = "jinja"

var (
	// spaces and tabs that are the only thing before a block tag or comment on its line
	lstripPattern = regexp.MustCompile(`(?m)^[ \t]+(\{[%#])`)
	// the newline directly after a block tag or comment
	trimPattern = regexp.MustCompile(`([%#]\})\n`)
)

func init() {
	Register(JinjaEngineName, func(opts Options) Engine {
		return &JinjaEngine{opts: opts}
	})
}

// JinjaEngine renders Jinja2 templates with gonja
type JinjaEngine struct {
	opts Options
}

// Name returns the registry name
func (e *JinjaEngine) Name() string {
	return JinjaEngineName
}

// Render parses and executes source
func (e *JinjaEngine) Render(name, source string, vars Vars) (string, error) {
	logger := logging.GetLogger("render.jinja")

	cfg := gonja.NewConfig()
	cfg.Autoescape = false
	cfg.StrictUndefined = e.opts.StrictUndefined
	env := gonja.NewEnvironment(cfg, e.loaderFor(name))

	tpl, err := env.FromString(applyBlockWhitespace(prepareSource(source, e.opts), e.opts))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateSyntax, "invalid template %s", name).
			WithDetail("engine", JinjaEngineName)
	}

	out, err := tpl.Execute(map[string]interface{}(vars))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRender, "failed to render %s", name).
			WithDetail("engine", JinjaEngineName)
	}

	logger.Trace().Str("template", name).Int("bytes", len(out)).Msg("Rendered template")
	return out, nil
}

// applyBlockWhitespace implements lstrip_blocks and trim_blocks on the
// source. Both look at the original lines, so lstrip runs first.
func applyBlockWhitespace(source string, opts Options) string {
	if opts.LStripBlocks {
		source = lstripPattern.ReplaceAllString(source, "$1")
	}
	if opts.TrimBlocks {
		source = trimPattern.ReplaceAllString(source, "$1")
	}
	return source
}

// loaderFor resolves includes next to the template file when it exists,
// otherwise relative to the working directory.
func (e *JinjaEngine) loaderFor(name string) loaders.Loader {
	dir := filepath.Dir(name)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		if loader, err := loaders.NewFileSystemLoader(dir); err == nil {
			return loader
		}
	}
	return loaders.MustNewFileSystemLoader("")
}
