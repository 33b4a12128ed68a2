package git

import (
	"context"
	"strings"
)

// MockCommandExecutor returns canned responses keyed by the joined args.
type MockCommandExecutor struct {
	Responses map[string]mockResponse
	Calls     []string
}

type mockResponse struct {
	output string
	err    error
}

func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{Responses: make(map[string]mockResponse)}
}

// On registers the response for a command.
func (m *MockCommandExecutor) On(args string, output string, err error) *MockCommandExecutor {
	m.Responses[args] = mockResponse{output: output, err: err}
	return m
}

func (m *MockCommandExecutor) Execute(ctx context.Context, dir string, args ...string) error {
	_, err := m.ExecuteWithOutput(ctx, dir, args...)
	return err
}

func (m *MockCommandExecutor) ExecuteWithOutput(ctx context.Context, dir string, args ...string) (string, error) {
	key := strings.Join(args, " ")
	m.Calls = append(m.Calls, key)
	if resp, ok := m.Responses[key]; ok {
		return resp.output, resp.err
	}
	return "", NewGitError(args[0], args, ErrGitOperationFailed, "fatal: not a git repository")
}

// repoMock answers the rev-parse probe every Repository method performs.
func repoMock() *MockCommandExecutor {
	return NewMockCommandExecutor().On("rev-parse --is-inside-work-tree", "true\n", nil)
}
