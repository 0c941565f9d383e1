package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jko/gdrive-go/internal/savefile"
)

// maxPageSize is the largest pageSize the Drive files.list API accepts.
const maxPageSize = 1000

// Load reads and parses a TOML config file, validates it, and returns the
// resulting Config. Unknown keys are fatal: silently ignoring a typo in a
// config file leads to hard-to-debug behavior.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := checkUnknownKeys(md); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault reads a TOML config file if it exists, otherwise returns a
// Config populated with all default values. This supports the zero-config
// first-run experience.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// checkUnknownKeys rejects keys that did not decode into the Config struct.
// The export mime_map is exempt; its keys are arbitrary MIME types.
func checkUnknownKeys(md toml.MetaData) error {
	var unknown []string

	for _, key := range md.Undecoded() {
		name := key.String()
		if strings.HasPrefix(name, "export.mime_map.") {
			continue
		}

		unknown = append(unknown, name)
	}

	if len(unknown) > 0 {
		return fmt.Errorf("unknown keys: %s", strings.Join(unknown, ", "))
	}

	return nil
}

// Validate checks a Config for values the rest of the program would choke on.
func Validate(cfg *Config) error {
	if _, err := savefile.ParseStrategy(cfg.Download.DuplicateStrategy); err != nil {
		return fmt.Errorf("download.duplicate_strategy: %w", err)
	}

	if cfg.Download.PageSize < 0 || cfg.Download.PageSize > maxPageSize {
		return fmt.Errorf("download.page_size must be between 0 and %d, got %d", maxPageSize, cfg.Download.PageSize)
	}

	switch cfg.Logging.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.log_level must be debug, info, warn, or error, got %q", cfg.Logging.LogLevel)
	}

	for from, to := range cfg.Export.MIMEMap {
		if to == "" {
			return fmt.Errorf("export.mime_map[%q] must not be empty", from)
		}
	}

	return nil
}
