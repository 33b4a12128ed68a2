package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// HookName is the git hook tasktime installs.
const HookName = "post-checkout"

// hookMarker identifies hooks written by tasktime.
const hookMarker = "# installed by tasktime"

// HookOptions configures InstallHook.
type HookOptions struct {
	// Executable is the tasktime command the hook runs; defaults to "tasktime"
	Executable string
	// Force overwrites a hook that tasktime did not write
	Force bool
}

// HookState describes the post-checkout hook of a repository.
type HookState struct {
	Path      string
	Installed bool
	// Owned is true when the installed hook was written by tasktime
	Owned bool
}

// hookScript prints the task for the new branch after a branch checkout.
// Git passes 1 as the third argument for branch checkouts and 0 for file checkouts.
func hookScript(executable string) []byte {
	return []byte(fmt.Sprintf(`#!/bin/sh
%s
[ "$3" = "1" ] || exit 0
command -v %q >/dev/null 2>&1 || exit 0
%q status --short || true
`, hookMarker, executable, executable))
}

// HookStatus reports whether the hook is installed and who owns it.
func HookStatus(ctx context.Context, repo *Repository) (HookState, error) {
	dir, err := repo.HooksDir(ctx)
	if err != nil {
		return HookState{}, err
	}

	state := HookState{Path: filepath.Join(dir, HookName)}
	content, err := os.ReadFile(state.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state, nil
		}
		return state, err
	}

	state.Installed = true
	state.Owned = bytes.Contains(content, []byte(hookMarker))
	return state, nil
}

// InstallHook writes the post-checkout hook. A hook written by someone
// else is only replaced when opts.Force is set.
func InstallHook(ctx context.Context, repo *Repository, opts HookOptions) (HookState, error) {
	state, err := HookStatus(ctx, repo)
	if err != nil {
		return state, err
	}
	if state.Installed && !state.Owned && !opts.Force {
		return state, fmt.Errorf("%s: %w", state.Path, ErrHookExists)
	}

	executable := opts.Executable
	if executable == "" {
		executable = "tasktime"
	}

	if err := os.MkdirAll(filepath.Dir(state.Path), 0755); err != nil {
		return state, err
	}

	tmp := state.Path + ".tmp"
	if err := os.WriteFile(tmp, hookScript(executable), 0755); err != nil {
		return state, err
	}
	if err := os.Rename(tmp, state.Path); err != nil {
		_ = os.Remove(tmp)
		return state, err
	}

	state.Installed = true
	state.Owned = true
	return state, nil
}

// UninstallHook removes the post-checkout hook if tasktime wrote it.
func UninstallHook(ctx context.Context, repo *Repository) (HookState, error) {
	state, err := HookStatus(ctx, repo)
	if err != nil {
		return state, err
	}
	if !state.Installed {
		return state, ErrHookNotInstalled
	}
	if !state.Owned {
		return state, fmt.Errorf("%s: %w", state.Path, ErrHookNotOwned)
	}

	if err := os.Remove(state.Path); err != nil {
		return state, err
	}

	state.Installed = false
	state.Owned = false
	return state, nil
}
