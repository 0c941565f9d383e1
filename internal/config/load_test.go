package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	require.NoError(t, Validate(DefaultConfig()))
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[auth]
client_secret = "/tmp/secret.json"
token_file = "/tmp/token.json"

[download]
duplicate_strategy = "rename"
create_dirs = true
page_size = 500

[export]
default_mime = "application/pdf"

[export.mime_map]
"application/vnd.google-apps.document" = "text/plain"

[logging]
log_level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/secret.json", cfg.Auth.ClientSecret)
	assert.Equal(t, "rename", cfg.Download.DuplicateStrategy)
	assert.True(t, cfg.Download.CreateDirs)
	assert.Equal(t, 500, cfg.Download.PageSize)
	assert.Equal(t, "debug", cfg.Logging.LogLevel)

	// File-level mime_map entries override the defaults.
	assert.Equal(t, "text/plain", cfg.Export.MIMEFor("application/vnd.google-apps.document"))
	// Unmapped types fall back to default_mime.
	assert.Equal(t, "application/pdf", cfg.Export.MIMEFor("application/vnd.google-apps.jam"))
}

func TestLoad_UnknownKeyFails(t *testing.T) {
	path := writeConfig(t, `
[download]
duplicate_stragety = "skip"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys")
	assert.Contains(t, err.Error(), "duplicate_stragety")
}

func TestLoad_BadStrategyFails(t *testing.T) {
	path := writeConfig(t, `
[download]
duplicate_strategy = "clobber"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate_strategy")
}

func TestLoad_BadPageSizeFails(t *testing.T) {
	path := writeConfig(t, `
[download]
page_size = 5000
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page_size")
}

func TestLoad_BadLogLevelFails(t *testing.T) {
	path := writeConfig(t, `
[logging]
log_level = "loud"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "skip", cfg.Download.DuplicateStrategy)
	assert.Equal(t, 100, cfg.Download.PageSize)
}

func TestLoadOrDefault_EmptyPath(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
}

func TestMIMEFor_NoMappingNoDefault(t *testing.T) {
	e := ExportConfig{}
	assert.Empty(t, e.MIMEFor("application/vnd.google-apps.form"))
}

func TestDefaultMIMEMap_CoversCommonTypes(t *testing.T) {
	cfg := DefaultConfig()

	for _, mime := range []string{
		"application/vnd.google-apps.document",
		"application/vnd.google-apps.spreadsheet",
		"application/vnd.google-apps.presentation",
		"application/vnd.google-apps.drawing",
	} {
		assert.NotEmpty(t, cfg.Export.MIMEFor(mime), mime)
	}
}
