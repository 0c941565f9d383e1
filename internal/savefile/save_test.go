package savefile

import (
	"errors"
	"iter"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSeq wraps Sequence and records how many items were consumed.
func countingSeq(consumed *int, items ...Item) iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		for _, it := range items {
			*consumed++

			if !yield(it, nil) {
				return
			}
		}
	}
}

func TestSave_NoDestinationNoReturn(t *testing.T) {
	consumed := 0

	_, err := Save(countingSeq(&consumed, Text("a")), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoDestination)
	assert.Zero(t, consumed, "producer must not be consumed on misconfiguration")
}

func TestSave_WritesAllInOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
	}

	out, err := Save(Sequence(Text("alpha"), Text("beta")), Options{Paths: paths, ReturnData: true})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "alpha", out[0].String())
	assert.Equal(t, "beta", out[1].String())

	for i, want := range []string{"alpha", "beta"} {
		got, readErr := os.ReadFile(paths[i])
		require.NoError(t, readErr)
		assert.Equal(t, want, string(got))
	}
}

func TestSave_SkipExcludesFromOutput(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "c.txt"),
	}
	writeFile(t, paths[1], "prior")

	out, err := Save(Sequence(Text("one"), Text("two"), Text("three")), Options{
		Paths:      paths,
		ReturnData: true,
		Strategy:   Skip,
	})
	require.NoError(t, err)

	// Exactly two files written, two items returned.
	require.Len(t, out, 2)
	assert.Equal(t, "one", out[0].String())
	assert.Equal(t, "three", out[1].String())

	// The pre-existing file is untouched.
	got, readErr := os.ReadFile(paths[1])
	require.NoError(t, readErr)
	assert.Equal(t, "prior", string(got))

	// The skipped item was not shifted onto a later path.
	got, readErr = os.ReadFile(paths[2])
	require.NoError(t, readErr)
	assert.Equal(t, "three", string(got))
}

func TestSave_OverwriteReplacesContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, "prior contents that are longer")

	_, err := Save(Sequence(Text("new")), Options{
		Paths:    []string{path},
		Strategy: Overwrite,
	})
	require.NoError(t, err)

	got, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "new", string(got))
}

func TestSave_RenamePreservesOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, "prior")

	_, err := Save(Sequence(Text("new")), Options{
		Paths:    []string{path},
		Strategy: Rename,
	})
	require.NoError(t, err)

	got, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "prior", string(got))

	got, readErr = os.ReadFile(filepath.Join(dir, "a_1.txt"))
	require.NoError(t, readErr)
	assert.Equal(t, "new", string(got))
}

func TestSave_TooManyItems(t *testing.T) {
	dir := t.TempDir()

	_, err := Save(Sequence(Text("a"), Text("b")), Options{
		Paths: []string{filepath.Join(dir, "only.txt")},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCountMismatch)
}

func TestSave_TooFewItems(t *testing.T) {
	dir := t.TempDir()

	_, err := Save(Sequence(Text("a")), Options{
		Paths: []string{
			filepath.Join(dir, "a.txt"),
			filepath.Join(dir, "b.txt"),
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCountMismatch)
}

func TestSave_ReturnDataWithoutPaths(t *testing.T) {
	out, err := Save(Sequence(Text("a"), Bytes([]byte{1, 2})), Options{ReturnData: true})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].String())
	assert.Equal(t, []byte{1, 2}, out[1].Data())
}

func TestSave_ProducerErrorAborts(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("remote failed")

	producer := func(yield func(Item, error) bool) {
		if !yield(Text("ok"), nil) {
			return
		}

		yield(Item{}, boom)
	}

	_, err := Save(producer, Options{
		Paths: []string{
			filepath.Join(dir, "a.txt"),
			filepath.Join(dir, "b.txt"),
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// The first item was written before the failure; no partial-success
	// result is reported.
	got, readErr := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, readErr)
	assert.Equal(t, "ok", string(got))
}

func TestSave_PlansBeforeConsumingProducer(t *testing.T) {
	dir := t.TempDir()
	consumed := 0

	// Missing destination directory must fail before the producer runs.
	_, err := Save(countingSeq(&consumed, Text("a")), Options{
		Paths: []string{filepath.Join(dir, "missing", "a.txt")},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingDir)
	assert.Zero(t, consumed)
}
