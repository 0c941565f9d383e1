package savefile

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DirPerms is used when creating missing destination directories.
const DirPerms = 0o755

// Plan resolves a list of desired destination paths against the duplicate
// strategy and ensures parent directories exist. It returns one entry per
// input path, in order, so callers can pair payloads with entries by index.
//
// Rename candidates are checked against both the filesystem and the paths
// already planned in this batch, so two colliding inputs never resolve to
// the same substitute. Plan may create directories; it never creates files.
func Plan(paths []string, createDirs bool, strategy Strategy, logger *slog.Logger) ([]PathEntry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	entries := make([]PathEntry, 0, len(paths))
	planned := make(map[string]bool, len(paths))

	for _, path := range paths {
		if err := ensureParentDir(path, createDirs, logger); err != nil {
			return nil, err
		}

		entry, err := resolveEntry(path, strategy, planned, logger)
		if err != nil {
			return nil, err
		}

		if entry.Outcome != Skipped {
			planned[entry.Resolved] = true
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// resolveEntry applies the duplicate strategy to a single path.
func resolveEntry(path string, strategy Strategy, planned map[string]bool, logger *slog.Logger) (PathEntry, error) {
	entry := PathEntry{Original: path, Resolved: path, Outcome: Kept}

	if !taken(path, planned) {
		return entry, nil
	}

	switch strategy {
	case Skip:
		logger.Info("destination exists, skipping",
			slog.String("path", path),
		)

		entry.Resolved = ""
		entry.Outcome = Skipped
	case Overwrite:
		logger.Info("destination exists, overwriting",
			slog.String("path", path),
		)
	case Rename:
		entry.Resolved = nextFreePath(path, planned)
		entry.Outcome = Renamed

		logger.Info("destination exists, renaming",
			slog.String("path", path),
			slog.String("renamed_to", entry.Resolved),
		)
	default:
		return PathEntry{}, fmt.Errorf("savefile: unknown duplicate strategy %d", int(strategy))
	}

	return entry, nil
}

// ensureParentDir verifies the parent directory of path exists, creating it
// (recursively) when createDirs is true. A missing directory without
// createDirs is a configuration error, not a partial-success condition.
func ensureParentDir(path string, createDirs bool, logger *slog.Logger) error {
	dir := filepath.Dir(path)

	_, err := os.Stat(dir)
	if err == nil {
		return nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("savefile: checking directory %s: %w", dir, err)
	}

	if !createDirs {
		return fmt.Errorf("%w: %s", ErrMissingDir, dir)
	}

	if mkErr := os.MkdirAll(dir, DirPerms); mkErr != nil {
		return fmt.Errorf("savefile: creating directory %s: %w", dir, mkErr)
	}

	logger.Debug("created destination directory",
		slog.String("dir", dir),
	)

	return nil
}

// taken reports whether a candidate path is unavailable, either because it
// exists on disk or because an earlier entry in this batch planned it.
func taken(path string, planned map[string]bool) bool {
	if planned[path] {
		return true
	}

	_, err := os.Stat(path)

	return err == nil
}

// nextFreePath appends an incrementing numeric suffix before the file
// extension until it finds a path that is not taken.
func nextFreePath(path string, planned map[string]bool) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if !taken(candidate, planned) {
			return candidate
		}
	}
}
