// Package patch turns raw unified-diff text into per-file change records.
package patch

// Status classifies how a file changed within a patch.
type Status int

const (
	StatusModified Status = iota
	StatusAdded
	StatusDeleted
)

func (s Status) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusDeleted:
		return "deleted"
	default:
		return "modified"
	}
}

// Glyph returns the one-character marker shown next to file names.
func (s Status) Glyph() string {
	switch s {
	case StatusAdded:
		return "+"
	case StatusDeleted:
		return "-"
	default:
		return "M"
	}
}

// FileChange is one file's delta, reconstructed from its patch segment.
// Values are immutable once produced by Parse; a new upload replaces the
// whole collection.
type FileChange struct {
	Path            string
	OriginalContent string
	ModifiedContent string
	Status          Status
	Language        string
}
