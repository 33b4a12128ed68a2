package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/xolan/tasktime/internal/api"
	"github.com/xolan/tasktime/internal/config"
	"github.com/xolan/tasktime/internal/secret"
)

type fakeBranches struct {
	branch string
	err    error
}

func (f fakeBranches) CurrentBranch(context.Context) (string, error) {
	return f.branch, f.err
}

type loggedTime struct {
	TaskID string
	Entry  api.TimeLog
	Key    string
}

type fakeClient struct {
	mu      sync.Mutex
	tasks   map[string]*api.Task
	getErr  error
	logErr  error
	pingErr error
	logged  []loggedTime
}

func newFakeClient() *fakeClient {
	return &fakeClient{tasks: map[string]*api.Task{}}
}

func (f *fakeClient) GetTask(_ context.Context, id string) (*api.Task, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	task, ok := f.tasks[id]
	if !ok {
		return nil, api.ErrTaskNotFound
	}
	return task, nil
}

func (f *fakeClient) LogTime(_ context.Context, id string, entry api.TimeLog, key string) (*api.TimeLogReceipt, error) {
	if f.logErr != nil {
		return nil, f.logErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logged = append(f.logged, loggedTime{TaskID: id, Entry: entry, Key: key})
	return &api.TimeLogReceipt{ID: "remote-1", TaskID: id, Minutes: entry.Minutes, Note: entry.Note}, nil
}

func (f *fakeClient) Ping(context.Context) error {
	return f.pingErr
}

// newTestServices builds Services over temp files, a fixed branch and a
// fake tracker.
func newTestServices(t *testing.T, branch string, client *fakeClient) *Services {
	t.Helper()
	dir := t.TempDir()

	services, err := NewServicesWith(Options{
		Config:      config.DefaultConfig(),
		ConfigPath:  filepath.Join(dir, config.ConfigFile),
		JournalPath: filepath.Join(dir, "journal.jsonl"),
		Branches:    fakeBranches{branch: branch},
		Client:      client,
		Tokens:      secret.NewFileStore(filepath.Join(dir, secret.CredentialsFile)),
	})
	if err != nil {
		t.Fatalf("NewServicesWith returned error: %v", err)
	}
	return services
}
