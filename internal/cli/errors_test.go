package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/xolan/tasktime/internal/api"
	"github.com/xolan/tasktime/internal/git"
	"github.com/xolan/tasktime/internal/service"
	"github.com/xolan/tasktime/internal/timeinput"
)

func TestHint(t *testing.T) {
	tests := []struct {
		err      error
		contains string
	}{
		{api.ErrMissingToken, "token set"},
		{fmt.Errorf("wrapped: %w", api.ErrUnauthorized), "token set"},
		{api.ErrMissingBaseURL, "TASKTIME_API_URL"},
		{service.ErrNoTaskID, "--task"},
		{git.ErrDetachedHead, "--task"},
		{git.ErrNotGitRepository, "git working tree"},
		{timeinput.ErrInvalidInput, "1h 30m"},
		{git.ErrHookExists, "--force"},
	}

	for _, tt := range tests {
		if got := Hint(tt.err); !strings.Contains(got, tt.contains) {
			t.Errorf("Hint(%v) = %q, expected to contain %q", tt.err, got, tt.contains)
		}
	}

	if got := Hint(fmt.Errorf("boom")); got != "" {
		t.Errorf("Hint for unknown error = %q", got)
	}
}

func TestReportError(t *testing.T) {
	var stderr bytes.Buffer
	code := 0
	d := &Deps{Stderr: &stderr, Exit: func(c int) { code = c }}

	ReportError(d, &api.APIError{Method: "GET", Path: "/tasks/A-1", StatusCode: 502})

	out := stderr.String()
	if code != 1 {
		t.Errorf("exit code = %d, expected 1", code)
	}
	if !strings.Contains(out, "Error: GET /tasks/A-1") || !strings.Contains(out, "Details: GET /tasks/A-1 returned HTTP 502") {
		t.Errorf("stderr = %q", out)
	}

	stderr.Reset()
	ReportError(d, git.NewGitError("rev-parse", []string{"HEAD"}, git.ErrGitOperationFailed, "fatal: bad\n"))
	if !strings.Contains(stderr.String(), "Details: fatal: bad") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
