// Package config implements TOML configuration loading, validation, and
// platform-specific path resolution for gdrive-go. The override order is
// defaults -> config file -> CLI flags.
package config

// Config is the top-level configuration structure parsed from a TOML file.
type Config struct {
	Auth     AuthConfig     `toml:"auth"`
	Download DownloadConfig `toml:"download"`
	Export   ExportConfig   `toml:"export"`
	Logging  LoggingConfig  `toml:"logging"`
}

// AuthConfig locates the OAuth2 client secret and the saved token.
type AuthConfig struct {
	// ClientSecret is the path to the installed-app client secret JSON
	// downloaded from the Google Cloud console.
	ClientSecret string `toml:"client_secret"`

	// TokenFile is the path the OAuth2 token is persisted to.
	TokenFile string `toml:"token_file"`
}

// DownloadConfig holds defaults for folder downloads. CLI flags override
// these per invocation.
type DownloadConfig struct {
	// DuplicateStrategy is one of "skip", "overwrite", or "rename".
	DuplicateStrategy string `toml:"duplicate_strategy"`

	// CreateDirs creates missing destination directories instead of failing.
	CreateDirs bool `toml:"create_dirs"`

	// PageSize is the files.list page size (1–1000).
	PageSize int `toml:"page_size"`
}

// ExportConfig maps Google Workspace document types to the MIME type they
// are exported as. Workspace documents have no native byte representation,
// so a download of one always goes through export.
type ExportConfig struct {
	// MIMEMap maps a Workspace MIME type to its export MIME type.
	MIMEMap map[string]string `toml:"mime_map"`

	// DefaultMIME is used for Workspace types absent from MIMEMap.
	// Empty means such documents fail with a configuration error.
	DefaultMIME string `toml:"default_mime"`
}

// MIMEFor resolves the export MIME type for a Workspace document type.
// Returns "" when no mapping applies.
func (e ExportConfig) MIMEFor(mimeType string) string {
	if m, ok := e.MIMEMap[mimeType]; ok {
		return m
	}

	return e.DefaultMIME
}

// LoggingConfig controls log output behavior.
type LoggingConfig struct {
	// LogLevel is one of "debug", "info", "warn", or "error".
	LogLevel string `toml:"log_level"`
}

// Office Open XML and image MIME types used as export defaults.
const (
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePptx = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	mimePNG  = "image/png"
)

// DefaultConfig returns a Config populated with all default values.
// Docs, Sheets, Slides, and Drawings export to their Office/PNG equivalents;
// other Workspace types fail until the user maps them.
func DefaultConfig() *Config {
	return &Config{
		Auth: AuthConfig{
			ClientSecret: DefaultClientSecretPath(),
			TokenFile:    DefaultTokenPath(),
		},
		Download: DownloadConfig{
			DuplicateStrategy: "skip",
			CreateDirs:        false,
			PageSize:          100,
		},
		Export: ExportConfig{
			MIMEMap: map[string]string{
				"application/vnd.google-apps.document":     mimeDocx,
				"application/vnd.google-apps.spreadsheet":  mimeXlsx,
				"application/vnd.google-apps.presentation": mimePptx,
				"application/vnd.google-apps.drawing":      mimePNG,
			},
		},
		Logging: LoggingConfig{
			LogLevel: "info",
		},
	}
}
