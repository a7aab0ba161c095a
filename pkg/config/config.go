package config

import (
	"strings"

	"github.com/arthur-debert/plugingen/pkg/errors"
	"github.com/arthur-debert/plugingen/pkg/render"
	"github.com/pelletier/go-toml/v2"
)

// Config is the effective plugingen configuration
type Config struct {
	Template TemplateConfig `koanf:"template" toml:"template"`
	Output   OutputConfig   `koanf:"output" toml:"output"`
	Log      LogConfig      `koanf:"log" toml:"log"`
}

// TemplateConfig selects and tunes the template engine
type TemplateConfig struct {
	Engine              string `koanf:"engine" toml:"engine"`
	KeepTrailingNewline bool   `koanf:"keep_trailing_newline" toml:"keep_trailing_newline"`
	TrimBlocks          bool   `koanf:"trim_blocks" toml:"trim_blocks"`
	LStripBlocks        bool   `koanf:"lstrip_blocks" toml:"lstrip_blocks"`
	StrictUndefined     bool   `koanf:"strict_undefined" toml:"strict_undefined"`
}

// OutputConfig controls how rendered text is written
type OutputConfig struct {
	FinalNewline bool `koanf:"final_newline" toml:"final_newline"`
}

// LogConfig controls diagnostics persistence
type LogConfig struct {
	File bool `koanf:"file" toml:"file"`
}

// Validate checks values that the loaders cannot type-check
func (c *Config) Validate() error {
	names := render.Names()
	for _, name := range names {
		if c.Template.Engine == name {
			return nil
		}
	}
	return errors.Newf(errors.ErrConfigValid, "template.engine %q is not one of: %s",
		c.Template.Engine, strings.Join(names, ", ")).
		WithDetail("engine", c.Template.Engine)
}

// RenderOptions converts the template section into engine options
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		KeepTrailingNewline: c.Template.KeepTrailingNewline,
		TrimBlocks:          c.Template.TrimBlocks,
		LStripBlocks:        c.Template.LStripBlocks,
		StrictUndefined:     c.Template.StrictUndefined,
	}
}

// Dump renders the configuration as TOML
func Dump(c *Config) ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return data, nil
}
