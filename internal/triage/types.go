// Package triage turns the commit history between a base revision and HEAD
// into a navigable list of commits with meaningful code changes.
package triage

// Diff line origins, matching the single-character markers git uses when
// printing a patch.
const (
	OriginContext    byte = ' '
	OriginAdded      byte = '+'
	OriginRemoved    byte = '-'
	OriginHunkHeader byte = 'H'
	OriginFileHeader byte = 'F'
)

// DiffLine is a single line of a file patch. Content has the trailing
// newline stripped; order within a FileDiff is the order git emitted it.
type DiffLine struct {
	Origin  byte
	Content string
}

// FileDiff is the patch for one file of a commit. Only paths that survive
// the component filter are ever materialized.
type FileDiff struct {
	Path  string
	Lines []DiffLine
}

// Commit is one commit in the triaged range. PR is the associated pull
// request number, 0 when none was found. Commits with no retained file
// diffs are dropped during collection and never appear in a Session.
type Commit struct {
	ShortID string
	ID      string
	Message string
	PR      int
	Files   []FileDiff
}
