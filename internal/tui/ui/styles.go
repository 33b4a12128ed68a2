package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Content area
	Content   lipgloss.Style
	ViewTitle lipgloss.Style
	Muted     lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// Task card
	Card      lipgloss.Style
	TaskID    lipgloss.Style
	CardLabel lipgloss.Style
	CardValue lipgloss.Style

	// History list
	RecordSelected lipgloss.Style
	RecordTime     lipgloss.Style
	RecordTask     lipgloss.Style
	RecordDuration lipgloss.Style

	Spinner lipgloss.Style

	// Input
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Feedback
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

type palette struct {
	primary, secondary, accent, muted lipgloss.TerminalColor
	success, warning, errorColor      lipgloss.TerminalColor
	fg, bg                            lipgloss.TerminalColor
}

// DefaultStyles returns styles built from the 256-color palette, for
// terminals where no theme applies.
func DefaultStyles() Styles {
	return newStyles(palette{
		primary:    lipgloss.Color("99"),
		secondary:  lipgloss.Color("39"),
		accent:     lipgloss.Color("212"),
		muted:      lipgloss.Color("240"),
		success:    lipgloss.Color("82"),
		warning:    lipgloss.Color("214"),
		errorColor: lipgloss.Color("196"),
		fg:         lipgloss.Color("252"),
		bg:         lipgloss.Color("236"),
	})
}

// NewStylesFromRegistry maps the current bubbletint theme onto the UI:
// purple for titles, cyan for IDs and keys, bright purple for durations,
// bright black for labels.
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return newStyles(palette{
		primary:    r.Purple(),
		secondary:  r.Cyan(),
		accent:     r.BrightPurple(),
		muted:      r.BrightBlack(),
		success:    r.Green(),
		warning:    r.Yellow(),
		errorColor: r.Red(),
		fg:         r.Fg(),
		bg:         r.Bg(),
	})
}

func newStyles(p palette) Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		TabActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(0, 1),
		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),
		Muted: lipgloss.NewStyle().
			Foreground(p.muted),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.muted).
			Padding(0, 1).
			MarginBottom(1),
		TaskID: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		CardLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(10),
		CardValue: lipgloss.NewStyle().
			Foreground(p.fg),

		RecordSelected: lipgloss.NewStyle().
			Background(p.muted).
			Bold(true),
		RecordTime: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(18),
		RecordTask: lipgloss.NewStyle().
			Foreground(p.secondary).
			Width(12),
		RecordDuration: lipgloss.NewStyle().
			Foreground(p.accent).
			Width(9).
			Align(lipgloss.Right),

		Spinner: lipgloss.NewStyle().
			Foreground(p.accent),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.warning).
			Padding(1, 2).
			Width(50),
		DialogTitle: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true).
			MarginBottom(1),

		Error: lipgloss.NewStyle().
			Foreground(p.errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}
