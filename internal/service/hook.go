package service

import (
	"context"

	"github.com/xolan/tasktime/internal/git"
)

// HookService installs the branch-switch hook in the current repository.
type HookService struct {
	repo       *git.Repository
	executable string
}

// NewHookService creates a new HookService. executable is the command the
// hook runs.
func NewHookService(repo *git.Repository, executable string) *HookService {
	return &HookService{repo: repo, executable: executable}
}

// Install writes the hook, replacing a foreign hook only when force is set.
func (s *HookService) Install(ctx context.Context, force bool) (git.HookState, error) {
	if !s.repo.IsRepository(ctx) {
		return git.HookState{}, git.ErrNotGitRepository
	}
	return git.InstallHook(ctx, s.repo, git.HookOptions{Executable: s.executable, Force: force})
}

// Uninstall removes the hook if tasktime installed it.
func (s *HookService) Uninstall(ctx context.Context) (git.HookState, error) {
	if !s.repo.IsRepository(ctx) {
		return git.HookState{}, git.ErrNotGitRepository
	}
	return git.UninstallHook(ctx, s.repo)
}

// Status reports whether the hook is installed.
func (s *HookService) Status(ctx context.Context) (git.HookState, error) {
	if !s.repo.IsRepository(ctx) {
		return git.HookState{}, git.ErrNotGitRepository
	}
	return git.HookStatus(ctx, s.repo)
}
