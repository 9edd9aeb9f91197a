package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "gh", cfg.GHPath)
	assert.Equal(t, "pr-inbox.log", filepath.Base(cfg.LogFile))
	assert.Empty(t, cfg.Browser)
}

func TestLoad_Values(t *testing.T) {
	path := writeConfig(t, `
log_file: /var/log/inbox.log
gh_path: /opt/bin/gh
browser: firefox
log:
  level: debug
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/var/log/inbox.log", cfg.LogFile)
	assert.Equal(t, "/opt/bin/gh", cfg.GHPath)
	assert.Equal(t, "firefox", cfg.Browser)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidLevel(t *testing.T) {
	path := writeConfig(t, "log:\n  level: loud\n")

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config")
	assert.Contains(t, err.Error(), `"loud"`)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "log: [unclosed\n")

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_UnreadablePath(t *testing.T) {
	_, err := Load(t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
