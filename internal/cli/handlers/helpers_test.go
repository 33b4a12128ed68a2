package handlers

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/tasktime/internal/api"
	"github.com/xolan/tasktime/internal/cli"
	"github.com/xolan/tasktime/internal/config"
	"github.com/xolan/tasktime/internal/git"
	"github.com/xolan/tasktime/internal/secret"
	"github.com/xolan/tasktime/internal/service"
)

type stubBranches struct {
	branch string
	err    error
}

func (s stubBranches) CurrentBranch(context.Context) (string, error) {
	return s.branch, s.err
}

type stubClient struct {
	tasks   map[string]*api.Task
	getErr  error
	logErr  error
	pingErr error
	logged  []api.TimeLog
}

func (s *stubClient) GetTask(_ context.Context, id string) (*api.Task, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if task, ok := s.tasks[id]; ok {
		return task, nil
	}
	return nil, api.ErrTaskNotFound
}

func (s *stubClient) LogTime(_ context.Context, id string, entry api.TimeLog, _ string) (*api.TimeLogReceipt, error) {
	if s.logErr != nil {
		return nil, s.logErr
	}
	s.logged = append(s.logged, entry)
	return &api.TimeLogReceipt{ID: "r-1", TaskID: id, Minutes: entry.Minutes}, nil
}

func (s *stubClient) BaseURL() string {
	return "https://tracker.test/api"
}

func (s *stubClient) Ping(context.Context) error {
	return s.pingErr
}

type testEnv struct {
	deps   *cli.Deps
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	exit   *int
	client *stubClient
	dir    string
}

// setupTestDeps builds deps over temp files with the given branch, stdin
// and a stub tracker that knows ABC-123.
func setupTestDeps(t *testing.T, branch, stdin string) *testEnv {
	t.Helper()
	return setupTestDepsWith(t, stubBranches{branch: branch}, stdin)
}

func setupTestDepsWith(t *testing.T, branches stubBranches, stdin string) *testEnv {
	t.Helper()
	dir := t.TempDir()

	client := &stubClient{tasks: map[string]*api.Task{
		"ABC-123": {ID: "ABC-123", Title: "Login form", Status: "In Progress", LoggedMinutes: 30},
	}}

	services, err := service.NewServicesWith(service.Options{
		Config:      config.DefaultConfig(),
		ConfigPath:  filepath.Join(dir, config.ConfigFile),
		JournalPath: filepath.Join(dir, "journal.jsonl"),
		Repository:  git.NewRepository(dir),
		Branches:    branches,
		Client:      client,
		Tokens:      secret.NewFileStore(filepath.Join(dir, secret.CredentialsFile)),
	})
	if err != nil {
		t.Fatal(err)
	}

	env := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		exit:   new(int),
		client: client,
		dir:    dir,
	}
	env.deps = &cli.Deps{
		Stdout:   env.stdout,
		Stderr:   env.stderr,
		Stdin:    strings.NewReader(stdin),
		Exit:     func(code int) { *env.exit = code },
		Services: services,
	}
	return env
}
