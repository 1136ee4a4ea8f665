package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"commits-of-interest/internal/triage"
)

const (
	// 40/60 split between the commit list and the diff pane.
	listPaneRatio = 0.4

	// The add-component popup needs room to render; the key that opens it
	// is ignored on narrower terminals.
	popupMinWidth = 40
)

// Model is the main bubbletea model: the interactive shell over a
// triage.Session.
type Model struct {
	session  *triage.Session
	repoPath string
	revision string
	owner    string
	name     string

	width  int
	height int
	ready  bool

	saveChangelog bool

	inputMode bool
	input     textinput.Model

	statusMsg string

	logger *slog.Logger
	styles Styles
}

// reloadedMsg is sent when the pipeline has been re-run after a filter
// change.
type reloadedMsg struct {
	session *triage.Session
}

// reloadFailedMsg is sent when re-running the pipeline fails; the current
// session is kept.
type reloadFailedMsg struct {
	err error
}

// NewModel creates the shell over an already-built session. Owner and name
// may be empty when the origin remote is not a GitHub URL.
func NewModel(session *triage.Session, repoPath, revision, owner, name string, logger *slog.Logger) Model {
	return Model{
		session:  session,
		repoPath: repoPath,
		revision: revision,
		owner:    owner,
		name:     name,
		logger:   logger,
		styles:   NewStyles(DefaultTheme()),
	}
}

// SaveRequested reports whether the user quit with save-and-quit, in which
// case the caller writes the changelog after the screen is torn down.
func (m Model) SaveRequested() bool {
	return m.saveChangelog
}

// Session exposes the final state for post-exit changelog rendering.
func (m Model) Session() *triage.Session {
	return m.session
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.inputMode {
		return m.updateInputMode(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit

		case "s":
			m.saveChangelog = true
			return m, tea.Quit

		case "i":
			if m.width >= popupMinWidth {
				m.inputMode = true
				m.input = newComponentInput()
				return m, textinput.Blink
			}

		case "tab", "shift+tab":
			m.session.ToggleFocus()

		case "left":
			m.session.Focus = triage.PaneList

		case "right":
			m.session.Focus = triage.PaneDiff

		case "up", "k":
			if m.session.Focus == triage.PaneList {
				m.session.Prev()
			} else {
				m.session.ScrollDiffUp()
			}

		case "down", "j":
			if m.session.Focus == triage.PaneList {
				m.session.Next()
			} else {
				m.session.ScrollDiffDown()
			}
		}

	case reloadedMsg:
		m.session = msg.session
		m.statusMsg = ""

	case reloadFailedMsg:
		m.logger.Error("reload failed", "error", msg.err)
		m.statusMsg = fmt.Sprintf("reload failed: %v", msg.err)
	}

	return m, nil
}

func newComponentInput() textinput.Model {
	input := textinput.New()
	input.Placeholder = "component name"
	input.CharLimit = 80
	input.Width = popupMinWidth - 10
	input.Focus()
	return input
}

func (m Model) updateInputMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.inputMode = false
			return m, nil

		case "enter":
			component := strings.TrimSpace(m.input.Value())
			m.inputMode = false
			if component == "" {
				return m, nil
			}
			return m, m.reloadWith(component)
		}

		// Separators would split into multiple components; reject them.
		if msg.Type == tea.KeyRunes && strings.ContainsAny(string(msg.Runes), "/.") {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// reloadWith appends the component to the persisted filter file and re-runs
// the whole pipeline. Selection state is not preserved: the filter change
// may have removed the selected commit or file.
func (m Model) reloadWith(component string) tea.Cmd {
	return func() tea.Msg {
		if err := triage.AppendComponent(m.repoPath, component); err != nil {
			return reloadFailedMsg{err: err}
		}
		filter, err := triage.LoadFilter(m.repoPath)
		if err != nil {
			return reloadFailedMsg{err: err}
		}
		commits, err := triage.CollectCommits(m.repoPath, m.revision, filter)
		if err != nil {
			return reloadFailedMsg{err: err}
		}
		if m.owner != "" {
			triage.AnnotatePRs(context.Background(), commits, m.owner, m.name)
		}
		return reloadedMsg{session: triage.NewSession(commits)}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	listWidth := int(float64(m.width) * listPaneRatio)
	diffWidth := m.width - listWidth
	contentHeight := m.height - 1
	if contentHeight < 3 {
		contentHeight = 3
	}
	rows := contentHeight - 2 // pane borders

	listPane := m.renderListPane(listWidth-2, rows)
	diffPane := m.renderDiffPane(diffWidth-2, rows)

	listStyle := m.paneStyle(triage.PaneList).Width(listWidth - 2).Height(rows)
	diffStyle := m.paneStyle(triage.PaneDiff).Width(diffWidth - 2).Height(rows)

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		listStyle.Render(listPane),
		diffStyle.Render(diffPane),
	)

	view := lipgloss.JoinVertical(lipgloss.Left, content, m.renderFooter(rows))

	if m.inputMode {
		view = m.overlayModal(view, m.renderInputModal())
	}
	return view
}

func (m Model) paneStyle(pane triage.Pane) lipgloss.Style {
	if m.session.Focus == pane {
		return m.styles.FocusedPane
	}
	return m.styles.Pane
}

func (m Model) renderListPane(width, height int) string {
	s := m.session
	if len(s.Entries) == 0 {
		return "No commits of interest"
	}

	s.EnsureVisible(height)

	var lines []string
	for i := s.Offset; i < len(s.Entries) && i < s.Offset+height; i++ {
		line := m.renderEntry(s.Entries[i], width)
		if i == s.Selected {
			line = m.styles.SelectedRow.Render(entryText(s.Entries[i], s.Commits, width))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEntry(e triage.Entry, width int) string {
	switch e.Kind {
	case triage.KindCommit:
		commit := m.session.Commits[e.CommitIdx]
		var b strings.Builder
		if e.PRLabel != "" {
			b.WriteString(m.styles.PRLabel.Render(e.PRLabel))
			b.WriteString(strings.Repeat(" ", e.Indent-runewidth.StringWidth(e.PRLabel)))
		} else {
			b.WriteString(strings.Repeat(" ", e.Indent))
		}
		b.WriteString(m.styles.CommitSHA.Render(commit.ShortID))
		b.WriteString(" ")
		used := e.Indent + runewidth.StringWidth(commit.ShortID) + 1
		b.WriteString(m.styles.Message.Render(truncate(commit.Message, width-used)))
		return b.String()
	default:
		path := m.session.Commits[e.CommitIdx].Files[e.FileIdx].Path
		prefix := strings.Repeat(" ", e.Indent) + "  "
		return prefix + m.styles.PathRow.Render(truncate(path, width-len(prefix)))
	}
}

// entryText is the unstyled form of a list row, used for the selection
// highlight (styling the parts separately would break the background run)
// and exercised directly by tests.
func entryText(e triage.Entry, commits []triage.Commit, width int) string {
	switch e.Kind {
	case triage.KindCommit:
		commit := commits[e.CommitIdx]
		prefix := strings.Repeat(" ", e.Indent)
		if e.PRLabel != "" {
			prefix = e.PRLabel + strings.Repeat(" ", e.Indent-runewidth.StringWidth(e.PRLabel))
		}
		return truncate(prefix+commit.ShortID+" "+commit.Message, width)
	default:
		path := commits[e.CommitIdx].Files[e.FileIdx].Path
		return truncate(strings.Repeat(" ", e.Indent)+"  "+path, width)
	}
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

func (m Model) renderDiffPane(width, height int) string {
	s := m.session
	file, ok := s.SelectedFile()
	if !ok {
		return "No files found"
	}

	s.ClampDiffScroll(height)

	end := s.DiffScroll + height
	if end > len(file.Lines) {
		end = len(file.Lines)
	}

	var lines []string
	for _, dl := range file.Lines[s.DiffScroll:end] {
		lines = append(lines, m.diffLineStyle(dl.Origin).Render(truncate(dl.Content, width)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) diffLineStyle(origin byte) lipgloss.Style {
	switch origin {
	case triage.OriginAdded:
		return m.styles.DiffAdded
	case triage.OriginRemoved:
		return m.styles.DiffRemoved
	case triage.OriginHunkHeader:
		return m.styles.DiffHunk
	case triage.OriginFileHeader:
		return m.styles.DiffFile
	default:
		return m.styles.DiffContext
	}
}

func (m Model) renderFooter(paneHeight int) string {
	if m.statusMsg != "" {
		return m.styles.Footer.Width(m.width).Render(m.statusMsg)
	}

	hints := []string{"↑/↓: navigate", "tab: pane", "i: add filter", "s: save+quit", "q: quit"}
	if file, ok := m.session.SelectedFile(); ok && len(file.Lines) > paneHeight {
		hints = append(hints, fmt.Sprintf("diff %d/%d", m.session.DiffScroll+1, len(file.Lines)))
	}
	return m.styles.Footer.Width(m.width).Render(strings.Join(hints, "  "))
}

func (m Model) renderInputModal() string {
	content := fmt.Sprintf("%s\n\n%s\n\nEnter: add  Esc: cancel",
		m.styles.ModalTitle.Render("Add filtered component"),
		m.input.View(),
	)
	return m.styles.ModalBox.Width(popupMinWidth).Render(content)
}

// overlayModal layers the modal over the center of the background view.
func (m Model) overlayModal(background, modal string) string {
	bgLines := strings.Split(background, "\n")
	modalLines := strings.Split(modal, "\n")

	startY := (len(bgLines) - len(modalLines)) / 2
	if startY < 0 {
		startY = 0
	}
	startX := (m.width - lipgloss.Width(modal)) / 2
	if startX < 0 {
		startX = 0
	}

	for i, line := range modalLines {
		row := startY + i
		if row < len(bgLines) {
			bgLines[row] = strings.Repeat(" ", startX) + line
		}
	}
	return strings.Join(bgLines, "\n")
}
