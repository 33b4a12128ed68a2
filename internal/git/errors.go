package git

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors that can be used with errors.Is() for error type checking
var (
	// ErrGitOperationFailed indicates a git command returned an error
	ErrGitOperationFailed = errors.New("git operation failed")

	// ErrNotGitRepository indicates the target path is not a git repository
	ErrNotGitRepository = errors.New("not a git repository")

	// ErrDetachedHead indicates HEAD does not point at a branch
	ErrDetachedHead = errors.New("HEAD is detached")

	// ErrHookExists indicates a hook not written by tasktime is already installed
	ErrHookExists = errors.New("a different hook is already installed")

	// ErrHookNotOwned indicates the installed hook was not written by tasktime
	ErrHookNotOwned = errors.New("hook was not installed by tasktime")

	// ErrHookNotInstalled indicates there is no hook to remove
	ErrHookNotInstalled = errors.New("hook is not installed")
)

// GitError represents an error that occurred during a git operation.
// It captures the command details, underlying error, and command output.
type GitError struct {
	Operation string
	Args      []string
	Err       error
	Output    string
}

// Error implements the error interface.
func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s failed", e.Operation)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg = fmt.Sprintf("%s: %s", msg, out)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *GitError) Unwrap() error {
	return e.Err
}

// NewGitError creates a new GitError with the given parameters.
func NewGitError(operation string, args []string, err error, output string) *GitError {
	return &GitError{
		Operation: operation,
		Args:      args,
		Err:       err,
		Output:    output,
	}
}
