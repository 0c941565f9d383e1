package savefile

import "fmt"

// Strategy selects how a destination path that already exists is handled.
type Strategy int

const (
	// Skip leaves the existing file untouched; the corresponding payload is
	// never written.
	Skip Strategy = iota

	// Overwrite replaces the existing file's contents. Destructive: the
	// caller accepts loss of the prior contents.
	Overwrite

	// Rename writes to a fresh path with a numeric suffix before the file
	// extension, leaving the existing file untouched.
	Rename
)

// String returns the configuration-surface name of the strategy.
func (s Strategy) String() string {
	switch s {
	case Skip:
		return "skip"
	case Overwrite:
		return "overwrite"
	case Rename:
		return "rename"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a configuration string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "skip":
		return Skip, nil
	case "overwrite":
		return Overwrite, nil
	case "rename":
		return Rename, nil
	default:
		return Skip, fmt.Errorf("savefile: unknown duplicate strategy %q (must be skip, overwrite, or rename)", s)
	}
}

// Outcome records how the planner resolved a single destination path.
type Outcome int

const (
	// Kept means the path was used unchanged.
	Kept Outcome = iota

	// Renamed means the path collided and a suffixed substitute was chosen.
	Renamed

	// Skipped means the path collided and the payload will not be written.
	Skipped
)

// PathEntry pairs a desired destination path with its resolution outcome.
// Entries are produced during planning and consumed once by Save.
type PathEntry struct {
	// Original is the path the caller asked for.
	Original string

	// Resolved is the path the payload will actually be written to.
	// Empty when Outcome is Skipped.
	Resolved string

	// Outcome records the duplicate resolution decision.
	Outcome Outcome
}
