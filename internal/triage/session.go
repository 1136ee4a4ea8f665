package triage

// Pane identifies which half of the screen receives directional keys.
type Pane int

const (
	PaneList Pane = iota
	PaneDiff
)

// Session is the navigation state over an entry list: the selection cursor,
// the list viewport offset, the diff pane scroll position, and the focused
// pane. All transitions are pure state changes; boundary cases are no-ops.
type Session struct {
	Commits []Commit
	Entries []Entry

	Selected   int
	Offset     int
	DiffScroll int
	Focus      Pane
}

// NewSession derives the entry list from commits and selects the first path
// entry. Reloading after a filter change is building a fresh Session; the
// previous selection is deliberately not preserved, since the change may
// have removed the selected commit or file.
func NewSession(commits []Commit) *Session {
	entries := BuildEntries(commits)
	return &Session{
		Commits:  commits,
		Entries:  entries,
		Selected: FirstEntry(entries),
	}
}

// SelectedFile returns the file diff under the cursor, or false when the
// cursor is not on a path entry.
func (s *Session) SelectedFile() (*FileDiff, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Entries) {
		return nil, false
	}
	e := s.Entries[s.Selected]
	if e.Kind != KindPath {
		return nil, false
	}
	return &s.Commits[e.CommitIdx].Files[e.FileIdx], true
}

// Next moves the selection to the nearest path entry after the cursor,
// skipping commit entries. No-op at the last path entry.
func (s *Session) Next() {
	for next := s.Selected + 1; next < len(s.Entries); next++ {
		if s.Entries[next].Kind == KindPath {
			s.Selected = next
			s.DiffScroll = 0
			return
		}
	}
}

// Prev moves the selection to the nearest path entry before the cursor.
// When the new selection directly follows its commit header, the viewport
// offset is clamped so the header stays visible above it.
func (s *Session) Prev() {
	for prev := s.Selected - 1; prev >= 0; prev-- {
		if s.Entries[prev].Kind != KindPath {
			continue
		}
		s.Selected = prev
		s.DiffScroll = 0
		if prev > 0 && s.Entries[prev-1].Kind == KindCommit && s.Offset > prev-1 {
			s.Offset = prev - 1
		}
		return
	}
}

// ToggleFocus flips between the list and diff panes without moving the
// selection.
func (s *Session) ToggleFocus() {
	if s.Focus == PaneList {
		s.Focus = PaneDiff
	} else {
		s.Focus = PaneList
	}
}

// ScrollDiffDown scrolls the diff pane down one line. The upper bound is
// enforced at render time against the visible height, not here.
func (s *Session) ScrollDiffDown() {
	s.DiffScroll++
}

// ScrollDiffUp scrolls the diff pane up one line, saturating at 0.
func (s *Session) ScrollDiffUp() {
	if s.DiffScroll > 0 {
		s.DiffScroll--
	}
}

// ClampDiffScroll bounds the diff scroll against the selected file's line
// count and the pane height. Called while rendering, after the height is
// known.
func (s *Session) ClampDiffScroll(visible int) int {
	file, ok := s.SelectedFile()
	if !ok {
		s.DiffScroll = 0
		return 0
	}
	max := len(file.Lines) - visible
	if max < 0 {
		max = 0
	}
	if s.DiffScroll > max {
		s.DiffScroll = max
	}
	return max
}

// EnsureVisible adjusts the list viewport offset so the selection is inside
// a window of the given height.
func (s *Session) EnsureVisible(height int) {
	if height <= 0 {
		return
	}
	if s.Selected < s.Offset {
		s.Offset = s.Selected
	}
	if s.Selected >= s.Offset+height {
		s.Offset = s.Selected - height + 1
	}
}
