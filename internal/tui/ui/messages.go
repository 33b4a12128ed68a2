package ui

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// SubmittedMsg is broadcast after a time entry was accepted, so views
// showing logged time can reload.
type SubmittedMsg struct {
	TaskID string
}
