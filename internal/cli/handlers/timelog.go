package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/tasktime/internal/cli"
	"github.com/xolan/tasktime/internal/service"
)

// LogOptions are the inputs of the log command. Empty values are prompted
// for unless Yes is set.
type LogOptions struct {
	Input   string
	TaskID  string
	Note    string
	NoteSet bool
	Yes     bool
}

// LogTime runs the time entry flow: resolve the task, read and evaluate
// the time, confirm rounding and large entries, read a note, submit.
func LogTime(ctx context.Context, deps *cli.Deps, opts LogOptions) {
	taskID, branch, err := deps.Services.Task.Resolve(ctx, opts.TaskID)
	if err != nil {
		cli.ReportError(deps, err)
		return
	}

	input := opts.Input
	if strings.TrimSpace(input) == "" {
		if opts.Yes {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Time is required with --yes")
			_, _ = fmt.Fprintln(deps.Stderr, "Usage: tasktime log <time> --yes")
			deps.Exit(1)
			return
		}
		answer, ok := deps.Prompt(fmt.Sprintf("Time spent on %s (e.g. 1h 30m): ", taskID))
		if !ok || strings.TrimSpace(answer) == "" {
			_, _ = fmt.Fprintln(deps.Stdout, "Cancelled")
			return
		}
		input = answer
	}

	timeLog := deps.Services.TimeLog
	eval, err := timeLog.Evaluate(input)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid time format %q\n", strings.TrimSpace(input))
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", cli.TimeFormatsHint)
		deps.Exit(1)
		return
	}

	if !eval.Valid {
		if eval.Warning != "" {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %s\n", eval.Warning)
		} else {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Time must be greater than zero")
		}
		deps.Exit(1)
		return
	}
	if eval.RoundedMinutes == 0 {
		cli.ReportError(deps, service.ErrNothingToSubmit)
		return
	}

	if eval.Rounded {
		_, _ = fmt.Fprintf(deps.Stdout, "Warning: %s\n", eval.Warning)
		if !opts.Yes && !deps.Confirm(fmt.Sprintf("Log %s instead?", cli.FormatDuration(eval.RoundedMinutes))) {
			_, _ = fmt.Fprintln(deps.Stdout, "Cancelled")
			return
		}
	}

	if eval.NeedsConfirmation && !opts.Yes {
		question := fmt.Sprintf("%s is a large entry. Log it to %s?", cli.FormatDuration(eval.RoundedMinutes), taskID)
		if !deps.Confirm(question) {
			_, _ = fmt.Fprintln(deps.Stdout, "Cancelled")
			return
		}
	}

	note := strings.TrimSpace(opts.Note)
	if !opts.NoteSet && !opts.Yes {
		if answer, ok := deps.Prompt("Note (optional): "); ok {
			note = strings.TrimSpace(answer)
		}
	}

	result, err := timeLog.Submit(ctx, service.Submission{
		TaskID:   taskID,
		Branch:   branch,
		Minutes:  eval.RoundedMinutes,
		Note:     note,
		RawInput: eval.Input,
	})
	if err != nil {
		if errors.Is(err, service.ErrNothingToSubmit) || errors.Is(err, service.ErrExceedsMaximum) {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return
		}
		cli.ReportError(deps, err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Logged %s to %s\n", cli.FormatDuration(result.Record.Minutes), taskID)
	if result.JournalErr != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: Entry was not saved to the local history: %v\n", result.JournalErr)
	}
}
