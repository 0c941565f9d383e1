package savefile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FilePerms is the mode for files created by Write.
const FilePerms = 0o644

// Write serializes one item to the given path. Text items are written as
// UTF-8, binary items verbatim. When appendMode is true the item is appended
// to an existing file instead of truncating it.
//
// The planner is expected to have validated the destination upstream; Write
// re-validates so it is safe to call standalone. There is no partial-write
// recovery: a failed write may leave the file truncated, and callers retry
// the whole batch.
func Write(item Item, path string, appendMode bool) error {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	if _, err := os.Stat(filepath.Dir(path)); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrMissingParent, filepath.Dir(path))
	}

	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, FilePerms)
	if err != nil {
		return fmt.Errorf("savefile: opening %s: %w", path, err)
	}

	if _, err := f.Write(item.Data()); err != nil {
		f.Close()
		return fmt.Errorf("savefile: writing %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("savefile: closing %s: %w", path, err)
	}

	return nil
}
