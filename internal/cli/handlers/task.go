package handlers

import (
	"context"

	"github.com/xolan/tasktime/internal/api"
	"github.com/xolan/tasktime/internal/cli"
)

// ShowTask prints task id, or the task of the current branch when id is
// empty, in the given output format (config default when empty).
func ShowTask(ctx context.Context, deps *cli.Deps, id, format string) {
	if format == "" {
		format = deps.Services.Config.Get().DefaultOutputFormat
	}

	var (
		task *api.Task
		err  error
	)
	if id == "" {
		current, cerr := deps.Services.Task.Current(ctx)
		task, err = current.Task, cerr
	} else {
		task, err = deps.Services.Task.Detail(ctx, id)
	}
	if err != nil {
		cli.ReportError(deps, err)
		return
	}

	if err := cli.WriteTask(deps.Stdout, task, format); err != nil {
		cli.ReportError(deps, err)
	}
}
