package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/tasktime/internal/cli"
	"github.com/xolan/tasktime/internal/service"
	"github.com/xolan/tasktime/internal/stats"
	"github.com/xolan/tasktime/internal/storage"
	"github.com/xolan/tasktime/internal/timeinput"
	"github.com/xolan/tasktime/internal/timeutil"
	"github.com/xolan/tasktime/internal/tui/ui"
)

// HistoryLimit is the number of journal records the history view loads.
const HistoryLimit = 200

// historyLoadedMsg carries journal records
type historyLoadedMsg struct {
	result *service.HistoryResult
	err    error
}

// HistoryModel lists submitted time entries from the local journal.
type HistoryModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int

	records  []storage.Record
	warnings int
	total    int
	today    int
	week     int
	cursor   int
	offset   int
	loading  bool
	err      error
}

// NewHistoryModel creates a new history view
func NewHistoryModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) HistoryModel {
	return HistoryModel{
		services: services,
		styles:   styles,
		keys:     keys,
		loading:  true,
	}
}

// Init loads the journal
func (m HistoryModel) Init() tea.Cmd {
	timeLog := m.services.TimeLog
	return func() tea.Msg {
		result, err := timeLog.History("", HistoryLimit)
		return historyLoadedMsg{result: result, err: err}
	}
}

// SetSize updates the view dimensions
func (m *HistoryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.records = msg.result.Records
		m.warnings = len(msg.result.Warnings)
		m.total = msg.result.TotalMinutes
		m.today, m.week = periodTotals(m.records, time.Now())
		if m.cursor >= len(m.records) {
			m.cursor = max(len(m.records)-1, 0)
		}
		m.scroll()
		return m, nil

	case ui.SubmittedMsg:
		m.cursor = 0
		m.offset = 0
		return m, m.Init()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			m.scroll()
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
			m.scroll()
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.Init()
		}
	}
	return m, nil
}

func periodTotals(records []storage.Record, now time.Time) (today, week int) {
	day, _ := timeutil.Period("today", now)
	thisWeek, _ := timeutil.Period("week", now)
	return stats.Summarize(stats.Within(records, day)).TotalMinutes,
		stats.Summarize(stats.Within(records, thisWeek)).TotalMinutes
}

func (m HistoryModel) visibleRows() int {
	rows := m.height - 6
	if rows < 1 {
		return 10
	}
	return rows
}

// scroll keeps the cursor inside the visible window.
func (m *HistoryModel) scroll() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// View renders the history list
func (m HistoryModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("History"))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.styles.Muted.Render("Loading..."))
		return m.styles.Content.Render(b.String())
	case m.err != nil:
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		return m.styles.Content.Render(b.String())
	case len(m.records) == 0:
		b.WriteString(m.styles.Muted.Render("No time logged yet"))
		return m.styles.Content.Render(b.String())
	}

	end := min(m.offset+m.visibleRows(), len(m.records))
	for i := m.offset; i < end; i++ {
		r := m.records[i]
		line := m.styles.RecordTime.Render(r.SubmittedAt.Local().Format("2006-01-02 15:04")) +
			m.styles.RecordTask.Render(r.TaskID) +
			m.styles.RecordDuration.Render(timeinput.Format(r.Minutes))
		if r.Note != "" {
			line += "  " + r.Note
		}
		if i == m.cursor {
			line = m.styles.RecordSelected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d %s, %s total",
		len(m.records), cli.Pluralize("record", len(m.records)), timeinput.Format(m.total))))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("Today %s, this week %s",
		timeinput.Format(m.today), timeinput.Format(m.week))))
	if m.warnings > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("%d corrupted %s skipped; run 'tasktime history repair'",
			m.warnings, cli.Pluralize("line", m.warnings))))
	}
	return m.styles.Content.Render(b.String())
}
