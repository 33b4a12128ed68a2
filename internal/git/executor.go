package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// CommandExecutor runs git commands. It is an interface so tests can
// substitute canned output.
type CommandExecutor interface {
	// Execute runs a command and reports whether it succeeded
	Execute(ctx context.Context, dir string, args ...string) error

	// ExecuteWithOutput runs a command and returns its stdout
	ExecuteWithOutput(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecExecutor is the default CommandExecutor, delegating to os/exec.
type ExecExecutor struct {
	// Binary is the git executable; defaults to "git"
	Binary string
}

// NewExecExecutor creates a new ExecExecutor
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{Binary: "git"}
}

// Execute implements CommandExecutor.Execute
func (e *ExecExecutor) Execute(ctx context.Context, dir string, args ...string) error {
	_, err := e.ExecuteWithOutput(ctx, dir, args...)
	return err
}

// ExecuteWithOutput implements CommandExecutor.ExecuteWithOutput
func (e *ExecExecutor) ExecuteWithOutput(ctx context.Context, dir string, args ...string) (string, error) {
	binary := e.Binary
	if binary == "" {
		binary = "git"
	}

	cmd := exec.CommandContext(ctx, binary, append([]string{"-C", dir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		operation := ""
		if len(args) > 0 {
			operation = args[0]
		}
		wrapped := fmt.Errorf("%s: %w", err.Error(), ErrGitOperationFailed)
		return "", NewGitError(operation, args, wrapped, stderr.String())
	}

	return stdout.String(), nil
}
