package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xolan/tasktime/internal/api"
	"github.com/xolan/tasktime/internal/cli"
	"github.com/xolan/tasktime/internal/config"
	"github.com/xolan/tasktime/internal/logging"
	"github.com/xolan/tasktime/internal/secret"
	"github.com/xolan/tasktime/internal/service"
	"github.com/xolan/tasktime/internal/storage"
)

type stubBranches struct {
	branch string
}

func (s stubBranches) CurrentBranch(context.Context) (string, error) {
	return s.branch, nil
}

type stubClient struct {
	logged []api.TimeLog
}

func (s *stubClient) GetTask(_ context.Context, id string) (*api.Task, error) {
	if id != "ABC-123" {
		return nil, api.ErrTaskNotFound
	}
	return &api.Task{ID: id, Title: "Login form", Status: "In Progress"}, nil
}

func (s *stubClient) LogTime(_ context.Context, id string, entry api.TimeLog, _ string) (*api.TimeLogReceipt, error) {
	s.logged = append(s.logged, entry)
	return &api.TimeLogReceipt{ID: "r-1", TaskID: id, Minutes: entry.Minutes}, nil
}

func (s *stubClient) Ping(context.Context) error { return nil }

type testEnv struct {
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	exit   int
	client *stubClient
	deps   *cli.Deps
}

// setupTestDeps injects services over temp files and a stub tracker.
func setupTestDeps(t *testing.T, branch, stdin string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		exit:   -1,
		client: &stubClient{},
	}

	services, err := service.NewServicesWith(service.Options{
		Config:      config.DefaultConfig(),
		ConfigPath:  filepath.Join(dir, config.ConfigFile),
		JournalPath: filepath.Join(dir, storage.JournalFile),
		Branches:    stubBranches{branch: branch},
		Client:      env.client,
		Tokens:      secret.NewFileStore(filepath.Join(dir, secret.CredentialsFile)),
	})
	if err != nil {
		t.Fatalf("NewServicesWith returned error: %v", err)
	}

	env.deps = &cli.Deps{
		Stdout:   env.stdout,
		Stderr:   env.stderr,
		Stdin:    strings.NewReader(stdin),
		Exit:     func(code int) { env.exit = code },
		Services: services,
		Logger:   logging.Discard(),
	}
	SetDeps(env.deps)
	t.Cleanup(ResetDeps)
	return env
}

// resetFlags restores every flag to its default so commands can run
// again in the same process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	t.Cleanup(func() {
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
	})
	return rootCmd.ExecuteContext(context.Background())
}

func TestRoot_ShowsStatus(t *testing.T) {
	env := setupTestDeps(t, "feature/ABC-123-login", "")

	if err := execute(t); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Login form") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestStatus_Short(t *testing.T) {
	env := setupTestDeps(t, "feature/ABC-123-login", "")

	if err := execute(t, "status", "--short"); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	want := "feature/ABC-123-login: ABC-123 Login form [In Progress]"
	if !strings.Contains(env.stdout.String(), want) {
		t.Errorf("stdout = %q, expected %q", env.stdout.String(), want)
	}
	if env.exit != -1 {
		t.Errorf("exit = %d, short status must not fail", env.exit)
	}
}

func TestTask_DefaultOutputFromConfig(t *testing.T) {
	env := setupTestDeps(t, "main", "")

	if err := execute(t, "task", "ABC-123", "-o", "json"); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), `"id": "ABC-123"`) {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestLog_Flags(t *testing.T) {
	env := setupTestDeps(t, "feature/ABC-123", "")

	if err := execute(t, "log", "1h", "30m", "--note", "pairing", "--yes"); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if len(env.client.logged) != 1 {
		t.Fatalf("logged = %+v", env.client.logged)
	}
	if got := env.client.logged[0]; got.Minutes != 90 || got.Note != "pairing" {
		t.Errorf("logged = %+v", got)
	}
	if !strings.Contains(env.stdout.String(), "Logged 1h 30m to ABC-123") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestLog_ExplicitTask(t *testing.T) {
	env := setupTestDeps(t, "main", "")

	if err := execute(t, "log", "45m", "--task", "ABC-123", "-y"); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if len(env.client.logged) != 1 || env.client.logged[0].Minutes != 45 {
		t.Errorf("logged = %+v", env.client.logged)
	}
}

func TestHistory(t *testing.T) {
	env := setupTestDeps(t, "feature/ABC-123", "")

	if err := execute(t, "log", "30m", "-y"); err != nil {
		t.Fatal(err)
	}
	env.stdout.Reset()

	if err := execute(t, "history", "--limit", "5"); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "ABC-123") {
		t.Errorf("stdout = %q", env.stdout.String())
	}

	env.stdout.Reset()
	if err := execute(t, "history", "validate"); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if env.stdout.Len() == 0 {
		t.Error("validate printed nothing")
	}
}

func TestHistory_Filters(t *testing.T) {
	env := setupTestDeps(t, "feature/ABC-123", "")

	if err := execute(t, "log", "30m", "-y"); err != nil {
		t.Fatal(err)
	}
	env.stdout.Reset()

	if err := execute(t, "history", "--period", "today"); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Total: 30m (1 record)") {
		t.Errorf("stdout = %q", env.stdout.String())
	}

	resetFlags(rootCmd)
	env.stdout.Reset()
	if err := execute(t, "history", "summary", "--last", "7"); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Summary for all tasks") {
		t.Errorf("stdout = %q", env.stdout.String())
	}

	resetFlags(rootCmd)
	if err := execute(t, "history", "--period", "week", "--last", "3"); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if env.exit != 1 || !strings.Contains(env.stderr.String(), "only one of") {
		t.Errorf("exit = %d, stderr = %q", env.exit, env.stderr.String())
	}
}

func TestToken(t *testing.T) {
	env := setupTestDeps(t, "main", "")

	if err := execute(t, "token", "set", "secret-abcd"); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	token, err := env.deps.Services.Token.Token()
	if err != nil || token != "secret-abcd" {
		t.Errorf("Token() = %q, %v", token, err)
	}

	env.stdout.Reset()
	if err := execute(t, "token", "status"); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "abcd") || strings.Contains(env.stdout.String(), "secret-abcd") {
		t.Errorf("status should show only the masked token: %q", env.stdout.String())
	}

	if err := execute(t, "token", "clear"); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if token, _ := env.deps.Services.Token.Token(); token != "" {
		t.Errorf("token after clear = %q", token)
	}
}

func TestConfig(t *testing.T) {
	env := setupTestDeps(t, "main", "")

	if err := execute(t, "config"); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "time.max_minutes") {
		t.Errorf("stdout = %q", env.stdout.String())
	}

	if err := execute(t, "config", "init"); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if !env.deps.Services.Config.Exists() {
		t.Error("config init did not write the file")
	}
}

func TestTUI(t *testing.T) {
	setupTestDeps(t, "main", "")

	original := runTUI
	defer func() { runTUI = original }()

	var called bool
	runTUI = func(*cobra.Command) error {
		called = true
		return nil
	}

	if err := execute(t, "tui"); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if !called {
		t.Error("tui command did not start the TUI")
	}
}

func TestTUI_Error(t *testing.T) {
	env := setupTestDeps(t, "main", "")

	original := runTUI
	defer func() { runTUI = original }()
	runTUI = func(*cobra.Command) error { return errors.New("no tty") }

	if err := execute(t, "tui"); err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if env.exit != 1 || !strings.Contains(env.stderr.String(), "no tty") {
		t.Errorf("exit = %d, stderr = %q", env.exit, env.stderr.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	setupTestDeps(t, "main", "")

	if err := execute(t, "frobnicate"); err == nil {
		t.Error("unknown command should fail")
	}
}

func TestExecute(t *testing.T) {
	env := setupTestDeps(t, "main", "")
	rootCmd.SetArgs([]string{"status", "--short"})
	t.Cleanup(func() {
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
	})

	if err := Execute(); err != nil {
		t.Errorf("Execute() returned error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "main: no task") {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestSetVersionInfo(t *testing.T) {
	original := rootCmd.Version
	defer func() { rootCmd.Version = original }()

	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	if rootCmd.Version != "1.2.3" {
		t.Errorf("Version = %q", rootCmd.Version)
	}
}
