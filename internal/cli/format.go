// Package cli provides the CLI presentation layer for tasktime.
// It handles command-line output formatting and user interaction.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xolan/tasktime/internal/api"
	"github.com/xolan/tasktime/internal/config"
	"github.com/xolan/tasktime/internal/service"
	"github.com/xolan/tasktime/internal/storage"
	"github.com/xolan/tasktime/internal/timeinput"
)

// FormatDuration formats minutes as a human-readable string
// Examples: "30m", "2h", "1h 30m"
func FormatDuration(minutes int) string {
	return timeinput.Format(minutes)
}

// FormatStatusLine renders the one-line task summary shown after a
// branch switch. current may be partially filled when err is set.
func FormatStatusLine(current service.CurrentTask) string {
	switch {
	case current.TaskID == "":
		return fmt.Sprintf("%s: no task", current.Branch)
	case current.Task == nil:
		return fmt.Sprintf("%s: %s", current.Branch, current.TaskID)
	}

	line := fmt.Sprintf("%s: %s %s", current.Branch, current.TaskID, current.Task.Title)
	if current.Task.Status != "" {
		line += fmt.Sprintf(" [%s]", current.Task.Status)
	}
	return line
}

// FormatProgress renders logged time against the estimate, e.g.
// "1h 30m of 4h".
func FormatProgress(task *api.Task) string {
	if task.EstimateMinutes <= 0 {
		return FormatDuration(task.LoggedMinutes)
	}
	return fmt.Sprintf("%s of %s", FormatDuration(task.LoggedMinutes), FormatDuration(task.EstimateMinutes))
}

// FormatTaskCard renders task details as aligned text.
func FormatTaskCard(task *api.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", task.ID, task.Title)
	fmt.Fprintln(&b, strings.Repeat("-", 50))

	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%-10s %s\n", label+":", value)
		}
	}
	row("Status", task.Status)
	row("Assignee", task.Assignee)
	row("Logged", FormatProgress(task))
	row("URL", task.URL)
	if !task.UpdatedAt.IsZero() {
		row("Updated", task.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}

	if desc := strings.TrimSpace(task.Description); desc != "" {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, desc)
	}
	return b.String()
}

// WriteTask writes task to w in the given output format.
func WriteTask(w io.Writer, task *api.Task, format string) error {
	switch format {
	case config.OutputJSON:
		data, err := json.MarshalIndent(task, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(task); err != nil {
			return err
		}
		return enc.Close()
	case config.OutputText, "":
		_, err := fmt.Fprint(w, FormatTaskCard(task))
		return err
	default:
		return fmt.Errorf("unknown output format %q: must be text, json or yaml", format)
	}
}

// FormatRecord renders one journal record as a history line.
func FormatRecord(r storage.Record) string {
	line := fmt.Sprintf("%s  %-10s %8s", r.SubmittedAt.Local().Format("2006-01-02 15:04"), r.TaskID, FormatDuration(r.Minutes))
	if r.Note != "" {
		line += "  " + r.Note
	}
	return line
}

// FormatCorruptionWarning formats a ParseWarning into a human-readable string
func FormatCorruptionWarning(warning storage.ParseWarning) string {
	content := warning.Content
	if len(content) > 50 {
		content = content[:47] + "..."
	}
	return fmt.Sprintf("  Line %d: %s (error: %s)", warning.LineNumber, content, warning.Error)
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
