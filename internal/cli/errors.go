package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/tasktime/internal/api"
	"github.com/xolan/tasktime/internal/config"
	"github.com/xolan/tasktime/internal/git"
	"github.com/xolan/tasktime/internal/service"
	"github.com/xolan/tasktime/internal/timeinput"
)

// TimeFormatsHint lists the accepted time formats.
const TimeFormatsHint = "Use 1h 30m, 1.5h, 90m, 1:30 or a plain number of minutes"

// Hint returns the follow-up advice for err, or "".
func Hint(err error) string {
	switch {
	case api.IsAuthError(err):
		return "Store a token with 'tasktime token set'"
	case errors.Is(err, api.ErrMissingBaseURL):
		return fmt.Sprintf("Set api.base_url in the config file or %s", config.EnvAPIURL)
	case errors.Is(err, service.ErrNoTaskID), errors.Is(err, git.ErrDetachedHead):
		return "Name the branch after the task (e.g. feature/ABC-123-login) or pass --task"
	case errors.Is(err, service.ErrInvalidTaskID):
		return "Task IDs look like ABC-123"
	case errors.Is(err, git.ErrNotGitRepository):
		return "Run tasktime inside a git working tree"
	case errors.Is(err, timeinput.ErrInvalidInput):
		return TimeFormatsHint
	case errors.Is(err, git.ErrHookExists):
		return "Use --force to replace the existing hook"
	}
	return ""
}

// details returns extra context carried by typed errors.
func details(err error) string {
	var gitErr *git.GitError
	if errors.As(err, &gitErr) && strings.TrimSpace(gitErr.Output) != "" {
		return strings.TrimSpace(gitErr.Output)
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("%s %s returned HTTP %d", apiErr.Method, apiErr.Path, apiErr.StatusCode)
	}
	return ""
}

// ReportError prints err with any details and hint to Stderr and exits 1.
func ReportError(d *Deps, err error) {
	_, _ = fmt.Fprintf(d.Stderr, "Error: %v\n", err)
	if det := details(err); det != "" {
		_, _ = fmt.Fprintf(d.Stderr, "Details: %s\n", det)
	}
	if hint := Hint(err); hint != "" {
		_, _ = fmt.Fprintf(d.Stderr, "Hint: %s\n", hint)
	}
	d.Exit(1)
}
