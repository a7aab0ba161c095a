package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/plugingen/pkg/errors"
	"github.com/arthur-debert/plugingen/pkg/logging"
	"github.com/arthur-debert/plugingen/pkg/paths"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix marks environment variables that map onto config keys.
// PLUGINGEN_TEMPLATE__ENGINE sets template.engine.
const EnvPrefix = "PLUGINGEN_"

// ProjectConfigFiles are looked up, in order, in the working directory.
// The first one found is loaded.
var ProjectConfigFiles = []string{".plugingen.toml", ".plugingen.yaml", ".plugingen.yml"}

// flagKeys maps command-line flag names onto config keys
var flagKeys = map[string]string{
	"engine":                "template.engine",
	"keep-trailing-newline": "template.keep_trailing_newline",
	"strict-undefined":      "template.strict_undefined",
	"no-final-newline":      "output.final_newline",
}

// invertedFlags hold the negation of their config key
var invertedFlags = map[string]bool{
	"no-final-newline": true,
}

// LoadOptions tells Load where to look beyond the embedded defaults
type LoadOptions struct {
	// WorkDir is searched for a project config file; empty means the current directory
	WorkDir string
	// ConfigFile is an explicit extra config file (--config)
	ConfigFile string
	// Flags are the parsed command-line flags; only changed flags override
	Flags *pflag.FlagSet
}

// Load builds the effective configuration:
// defaults < user file < project file < explicit file < environment < flags.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config if it exists
	if userFile := paths.UserConfigFile(); fileExists(userFile) {
		if err := loadFile(k, userFile); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", userFile).Msg("Loaded user config")
	}

	// 3. Project config if it exists
	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}
	for _, name := range ProjectConfigFiles {
		path := filepath.Join(workDir, name)
		if fileExists(path) {
			if err := loadFile(k, path); err != nil {
				return nil, err
			}
			logger.Debug().Str("path", path).Msg("Loaded project config")
			break
		}
	}

	// 4. Explicit config file must exist
	if opts.ConfigFile != "" {
		if !fileExists(opts.ConfigFile) {
			return nil, errors.Newf(errors.ErrConfigLoad, "config file %s does not exist", opts.ConfigFile).
				WithDetail("path", opts.ConfigFile)
		}
		if err := loadFile(k, opts.ConfigFile); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", opts.ConfigFile).Msg("Loaded explicit config")
	}

	// 5. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to read environment")
	}

	// 6. Flags that were set on the command line
	if opts.Flags != nil {
		provider := posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			val := posflag.FlagVal(opts.Flags, f)
			if invertedFlags[f.Name] {
				if b, isBool := val.(bool); isBool {
					return key, !b
				}
			}
			return key, val
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to read flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("engine", cfg.Template.Engine).
		Bool("finalNewline", cfg.Output.FinalNewline).
		Msg("Configuration loaded")

	return &cfg, nil
}

// loadFile merges a TOML or YAML file chosen by extension
func loadFile(k *koanf.Koanf, path string) error {
	parser, err := parserFor(path)
	if err != nil {
		return err
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config format %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

// envKey turns PLUGINGEN_TEMPLATE__KEEP_TRAILING_NEWLINE into
// template.keep_trailing_newline. Variables without a section separator,
// such as PLUGINGEN_CONFIG_DIR, are not config keys and are skipped.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if !strings.Contains(key, "__") {
		return ""
	}
	return strings.ReplaceAll(key, "__", ".")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
