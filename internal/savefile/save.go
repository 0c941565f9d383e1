package savefile

import (
	"fmt"
	"iter"
	"log/slog"
)

// Options configures a Save batch.
type Options struct {
	// Paths are the desired destination paths, one per produced item.
	// May be empty when ReturnData is true.
	Paths []string

	// ReturnData collects the written items and returns them to the caller.
	ReturnData bool

	// CreateDirs creates missing destination directories instead of failing.
	CreateDirs bool

	// Append appends to existing files instead of truncating them.
	Append bool

	// Strategy selects duplicate handling for destinations that exist.
	Strategy Strategy

	// Logger receives planning and write decisions. Defaults to slog.Default().
	Logger *slog.Logger
}

// Save consumes a lazily-produced sequence of items and writes each to its
// corresponding destination path.
//
// Destinations are planned once, before the producer is consumed, so a
// misconfiguration is reported before any expensive production (such as
// remote downloads) happens. Items are paired with planned entries by index:
// a skipped entry consumes its item without writing it and without including
// it in the returned slice. A count mismatch between produced items and
// planned entries fails the whole batch.
//
// When ReturnData is true the written (non-skipped) items are returned in
// order; with no destination paths, every produced item is returned.
func Save(items iter.Seq2[Item, error], opts Options) ([]Item, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if len(opts.Paths) == 0 && !opts.ReturnData {
		return nil, ErrNoDestination
	}

	entries, err := Plan(opts.Paths, opts.CreateDirs, opts.Strategy, logger)
	if err != nil {
		return nil, err
	}

	if len(opts.Paths) == 0 {
		return collect(items)
	}

	var out []Item

	written := 0
	produced := 0

	for item, itemErr := range items {
		if itemErr != nil {
			return nil, fmt.Errorf("savefile: producing item %d: %w", produced, itemErr)
		}

		if produced >= len(entries) {
			return nil, fmt.Errorf("%w: more than %d items produced", ErrCountMismatch, len(entries))
		}

		entry := entries[produced]
		produced++

		if entry.Outcome == Skipped {
			continue
		}

		if err := Write(item, entry.Resolved, opts.Append); err != nil {
			return nil, err
		}

		written++

		if opts.ReturnData {
			out = append(out, item)
		}
	}

	if produced != len(entries) {
		return nil, fmt.Errorf("%w: %d items produced for %d destination paths", ErrCountMismatch, produced, len(entries))
	}

	logger.Debug("save batch complete",
		slog.Int("produced", produced),
		slog.Int("written", written),
	)

	return out, nil
}

// collect drains the producer without writing anything.
func collect(items iter.Seq2[Item, error]) ([]Item, error) {
	var out []Item

	for item, err := range items {
		if err != nil {
			return nil, fmt.Errorf("savefile: producing item %d: %w", len(out), err)
		}

		out = append(out, item)
	}

	return out, nil
}
