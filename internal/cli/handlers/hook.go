package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/xolan/tasktime/internal/cli"
	"github.com/xolan/tasktime/internal/git"
)

// InstallHook installs the post-checkout hook in the current repository.
func InstallHook(ctx context.Context, deps *cli.Deps, force bool) {
	state, err := deps.Services.Hook.Install(ctx, force)
	if err != nil {
		cli.ReportError(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Installed %s hook: %s\n", git.HookName, state.Path)
	_, _ = fmt.Fprintln(deps.Stdout, "Switching branches now prints the task status.")
}

// UninstallHook removes the post-checkout hook if tasktime installed it.
func UninstallHook(ctx context.Context, deps *cli.Deps) {
	state, err := deps.Services.Hook.Uninstall(ctx)
	switch {
	case errors.Is(err, git.ErrHookNotInstalled):
		_, _ = fmt.Fprintln(deps.Stdout, "No hook installed")
		return
	case errors.Is(err, git.ErrHookNotOwned):
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %s was not installed by tasktime, leaving it in place\n", state.Path)
		deps.Exit(1)
		return
	case err != nil:
		cli.ReportError(deps, err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Removed %s hook: %s\n", git.HookName, state.Path)
}

// ShowHookStatus reports the state of the post-checkout hook.
func ShowHookStatus(ctx context.Context, deps *cli.Deps) {
	state, err := deps.Services.Hook.Status(ctx)
	if err != nil {
		cli.ReportError(deps, err)
		return
	}

	switch {
	case !state.Installed:
		_, _ = fmt.Fprintf(deps.Stdout, "Hook: not installed (%s)\n", state.Path)
	case state.Owned:
		_, _ = fmt.Fprintf(deps.Stdout, "Hook: installed (%s)\n", state.Path)
	default:
		_, _ = fmt.Fprintf(deps.Stdout, "Hook: a different %s hook exists (%s)\n", git.HookName, state.Path)
	}
}
