// Package tui provides the interactive time logging panel for tasktime.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/tasktime/internal/service"
	"github.com/xolan/tasktime/internal/tui/ui"
	"github.com/xolan/tasktime/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabLog Tab = iota
	TabHistory
)

var tabNames = []string{"Log", "History"}

// themeSavedMsg reports the result of persisting the theme
type themeSavedMsg struct {
	err error
}

// Model is the root TUI model
type Model struct {
	services *service.Services

	activeTab Tab
	width     int
	height    int
	showHelp  bool
	// status is a transient message shown in the status bar
	status string

	panel   views.PanelModel
	history views.HistoryModel

	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model
func New(ctx context.Context, services *service.Services) Model {
	configured := services.Config.Get().Theme
	themeProvider := ui.NewThemeProvider(configured)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	var status string
	if configured != "" && !slices.Contains(themeProvider.AvailableThemes(), configured) {
		status = fmt.Sprintf("Unknown theme %q, using %s", configured, themeProvider.CurrentDisplayName())
	}

	return Model{
		status:        status,
		services:      services,
		activeTab:     TabLog,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		panel:         views.NewPanelModel(ctx, services, styles, keys),
		history:       views.NewHistoryModel(services, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.panel.Init(), m.history.Init())
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		capturing := m.activeTab == TabLog && m.panel.IsInputMode()
		modal := m.activeTab == TabLog && m.panel.IsModal()

		switch {
		case key.Matches(msg, m.keys.ForceQuit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Quit) && !capturing:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !capturing:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Theme):
			return m.cycleTheme()

		case key.Matches(msg, m.keys.NextTab) && !modal:
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, nil

		case key.Matches(msg, m.keys.PrevTab) && !modal:
			m.activeTab = Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
			return m, nil
		}

		var cmd tea.Cmd
		switch m.activeTab {
		case TabLog:
			m.panel, cmd = m.panel.Update(msg)
		case TabHistory:
			m.history, cmd = m.history.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // tabs and status bar
		m.panel.SetSize(m.width, contentHeight)
		m.history.SetSize(m.width, contentHeight)
		return m, nil

	case themeSavedMsg:
		if msg.err != nil {
			m.status = "Theme not saved: " + msg.err.Error()
		}
		return m, nil
	}

	// Everything else may belong to a background load of either view
	var panelCmd, historyCmd tea.Cmd
	m.panel, panelCmd = m.panel.Update(msg)
	m.history, historyCmd = m.history.Update(msg)
	return m, tea.Batch(panelCmd, historyCmd)
}

func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	name := m.themeProvider.NextTheme()
	m.styles = m.themeProvider.Styles()
	m.status = "Theme: " + m.themeProvider.CurrentDisplayName()

	themeMsg := ui.ThemeChangedMsg{ThemeName: name, Styles: m.styles}
	m.panel, _ = m.panel.Update(themeMsg)
	m.history, _ = m.history.Update(themeMsg)

	return m, m.saveTheme(name)
}

func (m Model) saveTheme(name string) tea.Cmd {
	cfg := m.services.Config
	return func() tea.Msg {
		return themeSavedMsg{err: cfg.SetTheme(name)}
	}
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabLog:
		b.WriteString(m.panel.View())
	case TabHistory:
		b.WriteString(m.history.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.styles.App.Render(b.String())
}

func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) renderStatusBar() string {
	var parts []string

	if m.activeTab == TabLog && m.panel.IsModal() {
		parts = append(parts, m.renderKeyHelp("enter", "submit"))
		parts = append(parts, m.renderKeyHelp("esc", "back"))
	} else {
		switch m.activeTab {
		case TabLog:
			parts = append(parts, m.renderKeyHelp("enter", "next"))
		case TabHistory:
			parts = append(parts, m.renderKeyHelp("j/k", "move"))
		}
		parts = append(parts, m.renderKeyHelp("ctrl+r", "refresh"))
		parts = append(parts, m.renderKeyHelp("tab", "views"))
		parts = append(parts, m.renderKeyHelp("ctrl+t", "theme"))
		parts = append(parts, m.renderKeyHelp("ctrl+c", "quit"))
	}
	if m.status != "" {
		parts = append(parts, m.styles.StatusHelp.Render(m.status))
	}

	content := strings.Join(parts, "  ")
	if padding := m.width - lipgloss.Width(content); padding > 0 {
		content += strings.Repeat(" ", padding)
	}
	return m.styles.StatusBar.Render(content)
}

func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")
	help.WriteString(m.styles.Muted.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  tab        Switch views\n")
	help.WriteString("  ctrl+t     Next theme\n")
	help.WriteString("  ctrl+r     Refresh\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q/ctrl+c   Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabLog:
		help.WriteString(m.styles.Muted.Render("Log:"))
		help.WriteString("\n")
		help.WriteString("  enter      Accept time, then note\n")
		help.WriteString("  y/n        Confirm or cancel\n")
		help.WriteString("  esc        Back\n")
	case TabHistory:
		help.WriteString(m.styles.Muted.Render("History:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.Muted.Render("Press ? to close"))
	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI application
func Run(ctx context.Context, services *service.Services) error {
	p := tea.NewProgram(New(ctx, services), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
