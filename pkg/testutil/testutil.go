// Package testutil holds helpers shared by plugingen tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

// CreateFile creates a file with the given content in the specified directory.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

// CreateTemplate writes a template into a fresh temporary directory
func CreateTemplate(t *testing.T, name, content string) string {
	t.Helper()
	return CreateFile(t, t.TempDir(), name, content)
}

// Chdir changes the working directory for the duration of the test
func Chdir(t *testing.T, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(prev)
	})
}

// RequireNotRoot skips tests that rely on permission bits
func RequireNotRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
}

// IsolateConfig points user config and state at empty temporary directories
// so a developer's own files cannot leak into a test.
func IsolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("PLUGINGEN_CONFIG_DIR", t.TempDir())
	t.Setenv("PLUGINGEN_STATE_DIR", t.TempDir())
}

// CaptureLogs redirects the global logger into a buffer at the given level
// and restores the previous logger when the test ends.
func CaptureLogs(t *testing.T, level zerolog.Level) *bytes.Buffer {
	t.Helper()

	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(&buf)
	return &buf
}
