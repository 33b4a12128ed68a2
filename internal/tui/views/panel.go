// Package views contains the individual screens of the TUI.
package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/tasktime/internal/cli"
	"github.com/xolan/tasktime/internal/service"
	"github.com/xolan/tasktime/internal/timeinput"
	"github.com/xolan/tasktime/internal/tui/ui"
)

type panelState int

const (
	panelLoading panelState = iota
	panelInput
	panelConfirm
	panelNote
	panelSubmitting
	panelDone
)

// taskLoadedMsg carries the task for the current branch
type taskLoadedMsg struct {
	current service.CurrentTask
	err     error
}

// submitDoneMsg is sent when a submission finished
type submitDoneMsg struct {
	result *service.SubmitResult
	err    error
}

// PanelModel shows the task of the current branch and logs time to it.
type PanelModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap
	ctx      context.Context

	width  int
	height int

	state     panelState
	spinner   spinner.Model
	timeInput textinput.Model
	noteInput textinput.Model

	current service.CurrentTask
	loadErr error

	eval    service.Evaluation
	evalErr error

	result    *service.SubmitResult
	submitErr error
}

// NewPanelModel creates a new panel in the loading state.
func NewPanelModel(ctx context.Context, services *service.Services, styles ui.Styles, keys ui.KeyMap) PanelModel {
	ti := textinput.New()
	ti.Placeholder = "1h 30m"
	ti.CharLimit = 20
	ti.Width = 20

	ni := textinput.New()
	ni.Placeholder = "what did you work on?"
	ni.CharLimit = 200
	ni.Width = 50

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner))

	return PanelModel{
		services:  services,
		styles:    styles,
		keys:      keys,
		ctx:       ctx,
		state:     panelLoading,
		spinner:   sp,
		timeInput: ti,
		noteInput: ni,
	}
}

// Init loads the task of the current branch.
func (m PanelModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadTask())
}

// SetSize updates the view dimensions
func (m *PanelModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode reports whether a text field or dialog has the keyboard.
func (m PanelModel) IsInputMode() bool {
	switch m.state {
	case panelInput:
		return m.canLog()
	case panelConfirm, panelNote:
		return true
	}
	return false
}

// IsModal reports whether the panel is mid-flow and must not lose focus.
func (m PanelModel) IsModal() bool {
	switch m.state {
	case panelConfirm, panelNote, panelSubmitting:
		return true
	}
	return false
}

func (m PanelModel) canLog() bool {
	return m.current.TaskID != ""
}

func (m PanelModel) loadTask() tea.Cmd {
	ctx := m.ctx
	tasks := m.services.Task
	return func() tea.Msg {
		current, err := tasks.Current(ctx)
		return taskLoadedMsg{current: current, err: err}
	}
}

// Update handles messages
func (m PanelModel) Update(msg tea.Msg) (PanelModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.state != panelLoading && m.state != panelSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case taskLoadedMsg:
		m.current = msg.current
		m.loadErr = msg.err
		m.state = panelInput
		if m.canLog() {
			return m, m.timeInput.Focus()
		}
		return m, nil

	case submitDoneMsg:
		m.state = panelDone
		m.result = msg.result
		m.submitErr = msg.err
		if msg.err != nil {
			return m, nil
		}
		taskID := m.current.TaskID
		return m, func() tea.Msg { return ui.SubmittedMsg{TaskID: taskID} }

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.spinner.Style = msg.Styles.Spinner
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m PanelModel) handleKey(msg tea.KeyMsg) (PanelModel, tea.Cmd) {
	switch m.state {
	case panelInput:
		switch {
		case key.Matches(msg, m.keys.Refresh):
			return m.reload()
		case !m.canLog():
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			return m.acceptTime()
		}
		var cmd tea.Cmd
		m.timeInput, cmd = m.timeInput.Update(msg)
		m.evaluate()
		return m, cmd

	case panelConfirm:
		switch {
		case key.Matches(msg, m.keys.Yes):
			return m.toNote()
		case key.Matches(msg, m.keys.No):
			m.state = panelInput
			return m, m.timeInput.Focus()
		}

	case panelNote:
		switch {
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Back):
			m.noteInput.Blur()
			m.state = panelInput
			return m, m.timeInput.Focus()
		}
		var cmd tea.Cmd
		m.noteInput, cmd = m.noteInput.Update(msg)
		return m, cmd

	case panelDone:
		if key.Matches(msg, m.keys.Submit) || key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Refresh) {
			return m.reload()
		}
	}

	return m, nil
}

// evaluate refreshes the live feedback for the time field.
func (m *PanelModel) evaluate() {
	input := m.timeInput.Value()
	if strings.TrimSpace(input) == "" {
		m.eval = service.Evaluation{}
		m.evalErr = nil
		return
	}
	m.eval, m.evalErr = m.services.TimeLog.Evaluate(input)
}

func (m PanelModel) acceptTime() (PanelModel, tea.Cmd) {
	m.evaluate()
	switch {
	case m.eval.Input == "" && m.evalErr == nil:
		return m, nil
	case m.evalErr != nil, !m.eval.Valid:
		return m, nil
	case m.eval.RoundedMinutes <= 0:
		m.evalErr = service.ErrNothingToSubmit
		return m, nil
	case m.eval.Rounded, m.eval.NeedsConfirmation:
		m.timeInput.Blur()
		m.state = panelConfirm
		return m, nil
	}
	return m.toNote()
}

func (m PanelModel) toNote() (PanelModel, tea.Cmd) {
	m.timeInput.Blur()
	m.state = panelNote
	return m, m.noteInput.Focus()
}

func (m PanelModel) submit() (PanelModel, tea.Cmd) {
	m.noteInput.Blur()
	m.state = panelSubmitting

	sub := service.Submission{
		TaskID:   m.current.TaskID,
		Branch:   m.current.Branch,
		Minutes:  m.eval.Minutes,
		Note:     strings.TrimSpace(m.noteInput.Value()),
		RawInput: m.eval.Input,
	}
	ctx := m.ctx
	timeLog := m.services.TimeLog
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		result, err := timeLog.Submit(ctx, sub)
		return submitDoneMsg{result: result, err: err}
	})
}

// reload clears the form and fetches the task again.
func (m PanelModel) reload() (PanelModel, tea.Cmd) {
	m.timeInput.Blur()
	m.noteInput.Blur()
	m.timeInput.SetValue("")
	m.noteInput.SetValue("")
	m.eval = service.Evaluation{}
	m.evalErr = nil
	m.result = nil
	m.submitErr = nil
	m.state = panelLoading
	return m, m.Init()
}

// View renders the panel
func (m PanelModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Log Time"))
	b.WriteString("\n")

	if m.state == panelLoading {
		b.WriteString(fmt.Sprintf("%s Loading task...\n", m.spinner.View()))
		return m.styles.Content.Render(b.String())
	}

	b.WriteString(m.renderTask())
	b.WriteString("\n")

	if !m.canLog() {
		return m.styles.Content.Render(b.String())
	}

	switch m.state {
	case panelInput:
		b.WriteString(m.renderTimeInput())
	case panelConfirm:
		b.WriteString(m.renderConfirm())
	case panelNote:
		b.WriteString(m.styles.Muted.Render("Time: " + timeinput.Format(m.eval.RoundedMinutes)))
		b.WriteString("\n\n")
		b.WriteString("Note (optional)\n")
		b.WriteString(m.styles.InputFocused.Render(m.noteInput.View()))
		b.WriteString("\n")
	case panelSubmitting:
		b.WriteString(fmt.Sprintf("%s Submitting %s to %s...\n", m.spinner.View(), timeinput.Format(m.eval.RoundedMinutes), m.current.TaskID))
	case panelDone:
		b.WriteString(m.renderResult())
	}

	return m.styles.Content.Render(b.String())
}

func (m PanelModel) renderTask() string {
	if !m.canLog() {
		var b strings.Builder
		if m.current.Branch != "" {
			b.WriteString(m.styles.Muted.Render(fmt.Sprintf("Branch %s has no task ID", m.current.Branch)))
			b.WriteString("\n")
		}
		if m.loadErr != nil && !errors.Is(m.loadErr, service.ErrNoTaskID) {
			b.WriteString(m.styles.Error.Render(m.loadErr.Error()))
			b.WriteString("\n")
		}
		if hint := cli.Hint(m.loadErr); hint != "" {
			b.WriteString(m.styles.Muted.Render(hint))
			b.WriteString("\n")
		}
		return b.String()
	}

	task := m.current.Task
	var card strings.Builder
	if task == nil {
		card.WriteString(m.styles.TaskID.Render(m.current.TaskID))
		card.WriteString("\n")
		if m.loadErr != nil {
			card.WriteString(m.styles.Error.Render("Could not load task: " + m.loadErr.Error()))
			if hint := cli.Hint(m.loadErr); hint != "" {
				card.WriteString("\n")
				card.WriteString(m.styles.Muted.Render(hint))
			}
		}
		return m.styles.Card.Render(card.String())
	}

	card.WriteString(m.styles.TaskID.Render(task.ID))
	card.WriteString("  ")
	card.WriteString(m.styles.CardValue.Render(task.Title))
	row := func(label, value string) {
		if value == "" {
			return
		}
		card.WriteString("\n")
		card.WriteString(m.styles.CardLabel.Render(label))
		card.WriteString(m.styles.CardValue.Render(value))
	}
	row("Status", task.Status)
	row("Branch", m.current.Branch)
	row("Logged", cli.FormatProgress(task))
	return m.styles.Card.Render(card.String())
}

func (m PanelModel) renderTimeInput() string {
	var b strings.Builder
	b.WriteString("Time spent\n")
	b.WriteString(m.styles.InputFocused.Render(m.timeInput.View()))
	b.WriteString("\n")

	switch {
	case errors.Is(m.evalErr, timeinput.ErrInvalidInput):
		b.WriteString(m.styles.Error.Render("Invalid time format"))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(cli.TimeFormatsHint))
	case m.evalErr != nil:
		b.WriteString(m.styles.Error.Render(m.evalErr.Error()))
	case m.eval.Input == "":
		b.WriteString(m.styles.Muted.Render(cli.TimeFormatsHint))
	case !m.eval.Valid:
		warning := m.eval.Warning
		if warning == "" {
			warning = "Time must be greater than zero"
		}
		b.WriteString(m.styles.Error.Render(warning))
	default:
		b.WriteString(m.styles.Success.Render("= " + timeinput.Format(m.eval.RoundedMinutes)))
		if m.eval.Warning != "" {
			b.WriteString("\n")
			b.WriteString(m.styles.Warning.Render(m.eval.Warning))
		}
		if m.eval.NeedsConfirmation {
			b.WriteString("\n")
			b.WriteString(m.styles.Warning.Render("Large entry, you will be asked to confirm"))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (m PanelModel) renderConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render("Confirm"))
	b.WriteString("\n")

	rounded := timeinput.Format(m.eval.RoundedMinutes)
	if m.eval.Rounded {
		if m.eval.Warning != "" {
			b.WriteString(m.eval.Warning)
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("Log %s instead of %s?\n", rounded, timeinput.Format(m.eval.Minutes)))
	}
	if m.eval.NeedsConfirmation {
		b.WriteString(fmt.Sprintf("%s is a large entry. Log it to %s?\n", rounded, m.current.TaskID))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("y confirm • n cancel"))
	return m.styles.Dialog.Render(b.String()) + "\n"
}

func (m PanelModel) renderResult() string {
	var b strings.Builder
	if m.submitErr != nil {
		b.WriteString(m.styles.Error.Render("Error: " + m.submitErr.Error()))
		b.WriteString("\n")
		if hint := cli.Hint(m.submitErr); hint != "" {
			b.WriteString(m.styles.Muted.Render(hint))
			b.WriteString("\n")
		}
	} else if m.result != nil {
		b.WriteString(m.styles.Success.Render(fmt.Sprintf("Logged %s to %s", timeinput.Format(m.result.Record.Minutes), m.result.Record.TaskID)))
		b.WriteString("\n")
		if m.result.JournalErr != nil {
			b.WriteString(m.styles.Warning.Render("Warning: not saved to history: " + m.result.JournalErr.Error()))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Press enter to log more"))
	b.WriteString("\n")
	return b.String()
}
