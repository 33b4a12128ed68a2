package ui

import (
	"sort"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is the theme used when none is configured or the
// configured one is unknown.
const DefaultTheme = "dracula"

// ThemeProvider wraps a bubbletint registry holding every bundled tint.
type ThemeProvider struct {
	registry *tint.Registry
}

// NewThemeProvider creates a ThemeProvider starting at initialTheme.
func NewThemeProvider(initialTheme string) *ThemeProvider {
	allTints := tint.DefaultTints()

	var fallback tint.Tint
	for _, t := range allTints {
		if t.ID() == DefaultTheme {
			fallback = t
			break
		}
	}
	if fallback == nil && len(allTints) > 0 {
		fallback = allTints[0]
	}

	registry := tint.NewRegistry(fallback, allTints...)
	if initialTheme != "" {
		registry.SetTintID(initialTheme)
	}
	return &ThemeProvider{registry: registry}
}

// SetTheme switches to the named theme. It reports false, leaving the
// theme unchanged, when the name is unknown.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

// NextTheme cycles forward and returns the new theme ID.
func (tp *ThemeProvider) NextTheme() string {
	tp.registry.NextTint()
	return tp.registry.ID()
}

// CurrentName returns the ID of the current theme.
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// CurrentDisplayName returns the human-readable name of the current theme.
func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}

// AvailableThemes returns the sorted theme IDs.
func (tp *ThemeProvider) AvailableThemes() []string {
	ids := tp.registry.TintIDs()
	sort.Strings(ids)
	return ids
}

// Styles returns styles for the current theme.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
