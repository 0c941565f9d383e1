package savefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestPlan_MissingDirFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "file.txt")

	_, err := Plan([]string{path}, false, Skip, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingDir)

	// No directory may be created on the failure path.
	_, statErr := os.Stat(filepath.Join(dir, "missing"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestPlan_CreateDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "file.txt")

	entries, err := Plan([]string{path}, true, Skip, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, Kept, entries[0].Outcome)
	assert.Equal(t, path, entries[0].Resolved)

	info, statErr := os.Stat(filepath.Join(dir, "a", "b"))
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())

	// Plan never creates files.
	_, statErr = os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPlan_SkipExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	writeFile(t, path, "old")

	entries, err := Plan([]string{path}, false, Skip, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, Skipped, entries[0].Outcome)
	assert.Empty(t, entries[0].Resolved)
	assert.Equal(t, path, entries[0].Original)
}

func TestPlan_OverwriteKeepsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	writeFile(t, path, "old")

	entries, err := Plan([]string{path}, false, Overwrite, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, Kept, entries[0].Outcome)
	assert.Equal(t, path, entries[0].Resolved)
}

func TestPlan_RenameSuffixBeforeExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	writeFile(t, path, "old")
	writeFile(t, filepath.Join(dir, "file_1.txt"), "also old")

	entries, err := Plan([]string{path}, false, Rename, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, Renamed, entries[0].Outcome)
	assert.Equal(t, filepath.Join(dir, "file_2.txt"), entries[0].Resolved)

	// The chosen path must not exist at resolution time.
	_, statErr := os.Stat(entries[0].Resolved)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPlan_RenameNoExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "README")
	writeFile(t, path, "old")

	entries, err := Plan([]string{path}, false, Rename, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "README_1"), entries[0].Resolved)
}

func TestPlan_RenameAvoidsIntraBatchCollision(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	writeFile(t, path, "old")

	entries, err := Plan([]string{path, path}, false, Rename, nil)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, filepath.Join(dir, "file_1.txt"), entries[0].Resolved)
	assert.Equal(t, filepath.Join(dir, "file_2.txt"), entries[1].Resolved)
}

func TestPlan_DuplicateInputsWithoutExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")

	// The first occurrence claims the path; the second collides with the
	// batch and gets renamed.
	entries, err := Plan([]string{path, path}, false, Rename, nil)
	require.NoError(t, err)
	assert.Equal(t, Kept, entries[0].Outcome)
	assert.Equal(t, path, entries[0].Resolved)
	assert.Equal(t, Renamed, entries[1].Outcome)
	assert.Equal(t, filepath.Join(dir, "file_1.txt"), entries[1].Resolved)
}

func TestPlan_EmptyInput(t *testing.T) {
	entries, err := Plan(nil, false, Skip, nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
