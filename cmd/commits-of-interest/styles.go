package main

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the TUI.
type Theme struct {
	Accent    lipgloss.Color
	TextFg    lipgloss.Color
	MutedFg   lipgloss.Color
	BorderDim lipgloss.Color

	LabelFg   lipgloss.Color
	ShaFg     lipgloss.Color
	AddedFg   lipgloss.Color
	RemovedFg lipgloss.Color
	HunkFg    lipgloss.Color

	SelectedBg lipgloss.Color
}

// DefaultTheme returns the default dark theme (Dracula-inspired).
func DefaultTheme() Theme {
	return Theme{
		Accent:    lipgloss.Color("#BD93F9"),
		TextFg:    lipgloss.Color("#F8F8F2"),
		MutedFg:   lipgloss.Color("#6272A4"),
		BorderDim: lipgloss.Color("#44475A"),

		LabelFg:   lipgloss.Color("#8BE9FD"),
		ShaFg:     lipgloss.Color("#F1FA8C"),
		AddedFg:   lipgloss.Color("#50FA7B"),
		RemovedFg: lipgloss.Color("#FF5555"),
		HunkFg:    lipgloss.Color("#8BE9FD"),

		SelectedBg: lipgloss.Color("#44475A"),
	}
}

// Styles contains all the styled components.
type Styles struct {
	Theme Theme

	Pane        lipgloss.Style
	FocusedPane lipgloss.Style
	Footer      lipgloss.Style

	PRLabel     lipgloss.Style
	CommitSHA   lipgloss.Style
	Message     lipgloss.Style
	PathRow     lipgloss.Style
	SelectedRow lipgloss.Style

	DiffAdded   lipgloss.Style
	DiffRemoved lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffFile    lipgloss.Style
	DiffContext lipgloss.Style

	ModalBox   lipgloss.Style
	ModalTitle lipgloss.Style
}

// NewStyles creates styles with the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderDim),

		FocusedPane: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent),

		Footer: lipgloss.NewStyle().
			Foreground(theme.MutedFg).
			Padding(0, 1),

		PRLabel: lipgloss.NewStyle().
			Foreground(theme.LabelFg),

		CommitSHA: lipgloss.NewStyle().
			Foreground(theme.ShaFg),

		Message: lipgloss.NewStyle().
			Foreground(theme.TextFg),

		PathRow: lipgloss.NewStyle().
			Foreground(theme.TextFg),

		SelectedRow: lipgloss.NewStyle().
			Background(theme.SelectedBg).
			Bold(true),

		DiffAdded: lipgloss.NewStyle().
			Foreground(theme.AddedFg),

		DiffRemoved: lipgloss.NewStyle().
			Foreground(theme.RemovedFg),

		DiffHunk: lipgloss.NewStyle().
			Foreground(theme.HunkFg).
			Bold(true),

		DiffFile: lipgloss.NewStyle().
			Foreground(theme.TextFg).
			Bold(true),

		DiffContext: lipgloss.NewStyle().
			Foreground(theme.TextFg),

		ModalBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(1, 2),

		ModalTitle: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),
	}
}
