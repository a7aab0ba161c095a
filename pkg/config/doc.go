// Package config handles configuration management for plugingen.
// It layers embedded defaults, TOML or YAML files, environment variables
// and command-line flags with koanf, then decodes the result into Config.
package config
