// Package savefile materializes byte or string payloads to local files with
// configurable duplicate handling and directory creation. Destination paths
// are resolved once, up front, by the planner; payloads are then written in
// lock-step against the resolved paths. The package is a leaf: it knows
// nothing about where payloads come from.
package savefile

import (
	"errors"
	"iter"
)

// Sentinel errors for configuration and filesystem failures.
// Use errors.Is to check.
var (
	// ErrNoDestination means no destination paths were given and returning
	// the data was disabled, so nothing about the operation would be observable.
	ErrNoDestination = errors.New("savefile: no destination paths and data return disabled")

	// ErrCountMismatch means the number of produced payloads did not match
	// the number of planned destination paths. The whole batch fails; partial
	// writes are never reported as success.
	ErrCountMismatch = errors.New("savefile: payload count does not match destination path count")

	// ErrMissingDir means a destination's parent directory does not exist
	// and directory creation was not requested.
	ErrMissingDir = errors.New("savefile: destination directory does not exist")

	// ErrIsDirectory means a destination path collides with an existing directory.
	ErrIsDirectory = errors.New("savefile: destination is a directory")

	// ErrMissingParent means a destination's parent directory vanished
	// between planning and writing.
	ErrMissingParent = errors.New("savefile: destination parent directory does not exist")
)

// Item is an opaque payload, either textual or binary. Text items are
// serialized as UTF-8; binary items are written verbatim.
type Item struct {
	text   string
	raw    []byte
	binary bool
}

// Text returns a textual Item.
func Text(s string) Item {
	return Item{text: s}
}

// Bytes returns a binary Item.
func Bytes(b []byte) Item {
	return Item{raw: b, binary: true}
}

// IsBinary reports whether the item carries binary data.
func (it Item) IsBinary() bool {
	return it.binary
}

// Data returns the serialized form of the item: the raw bytes for binary
// items, the UTF-8 encoding for text items.
func (it Item) Data() []byte {
	if it.binary {
		return it.raw
	}

	return []byte(it.text)
}

// String returns the textual form of the item. Binary items are decoded
// as UTF-8.
func (it Item) String() string {
	if it.binary {
		return string(it.raw)
	}

	return it.text
}

// Sequence adapts eagerly materialized items to the producer shape Save
// consumes.
func Sequence(items ...Item) iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		for _, it := range items {
			if !yield(it, nil) {
				return
			}
		}
	}
}
