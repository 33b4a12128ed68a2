// Package git inspects the repository the user is working in: which
// branch is checked out and where its hooks live.
package git

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

// Repository is a git working tree rooted at (or containing) Dir.
type Repository struct {
	Dir      string
	executor CommandExecutor
}

// NewRepository creates a Repository using the real git executable.
func NewRepository(dir string) *Repository {
	return NewRepositoryWithExecutor(dir, NewExecExecutor())
}

// NewRepositoryWithExecutor creates a Repository with a custom executor.
func NewRepositoryWithExecutor(dir string, executor CommandExecutor) *Repository {
	return &Repository{Dir: dir, executor: executor}
}

// IsRepository reports whether Dir is inside a git working tree.
func (r *Repository) IsRepository(ctx context.Context) bool {
	out, err := r.executor.ExecuteWithOutput(ctx, r.Dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// CurrentBranch returns the short name of the checked-out branch.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	if !r.IsRepository(ctx) {
		return "", ErrNotGitRepository
	}

	out, err := r.executor.ExecuteWithOutput(ctx, r.Dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		// A repository without commits has no HEAD to resolve yet
		var gitErr *GitError
		if errors.As(err, &gitErr) && strings.Contains(gitErr.Output, "unknown revision") {
			return r.unbornBranch(ctx)
		}
		return "", err
	}

	branch := strings.TrimSpace(out)
	if branch == "HEAD" {
		return "", ErrDetachedHead
	}
	return branch, nil
}

func (r *Repository) unbornBranch(ctx context.Context) (string, error) {
	out, err := r.executor.ExecuteWithOutput(ctx, r.Dir, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// HooksDir returns the absolute path of the repository's hooks directory,
// honoring core.hooksPath and worktrees.
func (r *Repository) HooksDir(ctx context.Context) (string, error) {
	if !r.IsRepository(ctx) {
		return "", ErrNotGitRepository
	}

	out, err := r.executor.ExecuteWithOutput(ctx, r.Dir, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", err
	}

	dir := strings.TrimSpace(out)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(r.Dir, dir)
	}
	return dir, nil
}
