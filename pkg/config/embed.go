package config

import (
	_ "embed"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// GetDefaultsContent returns the content of the embedded defaults file
func GetDefaultsContent() string {
	return string(defaultConfig)
}
