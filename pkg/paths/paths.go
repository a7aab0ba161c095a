// Package paths resolves the directories plugingen reads configuration from
// and writes diagnostics to. It follows the XDG Base Directory specification,
// with environment overrides for each location.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for plugingen
	EnvConfigDir = "PLUGINGEN_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for plugingen
	EnvStateDir = "PLUGINGEN_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name for plugingen-specific files
	AppDirName = "plugingen"

	// ConfigFileName is the user configuration file inside ConfigDir
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "plugingen.log"
)

// ConfigDir returns the directory holding the user configuration file.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// UserConfigFile returns the path of the user configuration file.
func UserConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// StateDir returns the directory for append-only state such as logs.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFile returns the path of the diagnostics log.
func LogFile() string {
	return filepath.Join(StateDir(), LogFileName)
}

// expandHome expands ~ to the user's home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// Only ~/ is expanded; ~user is left alone
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
