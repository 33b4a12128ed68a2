package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/xolan/tasktime/internal/cli"
	"github.com/xolan/tasktime/internal/service"
)

// ShowStatus prints the branch and its task. In short mode it prints a
// single line and never fails, so the post-checkout hook cannot block a
// checkout.
func ShowStatus(ctx context.Context, deps *cli.Deps, short bool) {
	current, err := deps.Services.Task.Current(ctx)

	if short {
		showShortStatus(deps, current, err)
		return
	}

	if errors.Is(err, service.ErrNoTaskID) {
		_, _ = fmt.Fprintf(deps.Stdout, "Branch: %s\n", current.Branch)
		_, _ = fmt.Fprintln(deps.Stdout, "No task ID found in branch name")
		_, _ = fmt.Fprintf(deps.Stdout, "Hint: %s\n", cli.Hint(err))
		return
	}
	if current.Branch != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Branch: %s\n", current.Branch)
	}
	if err != nil {
		cli.ReportError(deps, err)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprint(deps.Stdout, cli.FormatTaskCard(current.Task))

	if today, err := deps.Services.TimeLog.Today(); err == nil && today > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "\nLogged today: %s\n", cli.FormatDuration(today))
	}
}

func showShortStatus(deps *cli.Deps, current service.CurrentTask, err error) {
	switch {
	case err == nil, errors.Is(err, service.ErrNoTaskID):
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatStatusLine(current))
	case current.TaskID != "":
		_, _ = fmt.Fprintf(deps.Stdout, "%s (details unavailable: %v)\n", cli.FormatStatusLine(current), err)
	default:
		if deps.Logger != nil {
			deps.Logger.Debug("status unavailable", "err", err)
		}
	}
}
