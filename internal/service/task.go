package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/xolan/tasktime/internal/api"
	"github.com/xolan/tasktime/internal/taskid"
)

// Common errors for the task service
var (
	ErrNoTaskID      = errors.New("no task ID found in branch name")
	ErrInvalidTaskID = errors.New("invalid task ID")
)

// BranchReader returns the checked-out branch.
type BranchReader interface {
	CurrentBranch(ctx context.Context) (string, error)
}

// TaskClient is the subset of the tracker API used by the services.
type TaskClient interface {
	GetTask(ctx context.Context, id string) (*api.Task, error)
	LogTime(ctx context.Context, id string, entry api.TimeLog, idempotencyKey string) (*api.TimeLogReceipt, error)
	Ping(ctx context.Context) error
}

// TaskService resolves the task for the current branch.
type TaskService struct {
	repo      BranchReader
	client    TaskClient
	extractor *taskid.Extractor
}

// NewTaskService creates a new TaskService
func NewTaskService(repo BranchReader, client TaskClient, extractor *taskid.Extractor) *TaskService {
	return &TaskService{
		repo:      repo,
		client:    client,
		extractor: extractor,
	}
}

// CurrentID returns the branch and the task ID found in it.
// Returns ErrNoTaskID, together with the branch, when the branch has none.
func (s *TaskService) CurrentID(ctx context.Context) (CurrentTask, error) {
	branch, err := s.repo.CurrentBranch(ctx)
	if err != nil {
		return CurrentTask{}, err
	}

	id, ok := s.extractor.Extract(branch)
	if !ok {
		return CurrentTask{Branch: branch}, ErrNoTaskID
	}
	return CurrentTask{Branch: branch, TaskID: id}, nil
}

// Current resolves the branch, its task ID and the task details.
// When the tracker call fails the branch and ID are still returned with
// the error.
func (s *TaskService) Current(ctx context.Context) (CurrentTask, error) {
	current, err := s.CurrentID(ctx)
	if err != nil {
		return current, err
	}

	task, err := s.client.GetTask(ctx, current.TaskID)
	if err != nil {
		return current, err
	}
	current.Task = task
	return current, nil
}

// Detail fetches a task by ID.
func (s *TaskService) Detail(ctx context.Context, id string) (*api.Task, error) {
	if !s.extractor.IsValid(id) {
		return nil, fmt.Errorf("%w: %q does not match %s", ErrInvalidTaskID, id, s.extractor.Pattern())
	}
	return s.client.GetTask(ctx, id)
}

// Resolve returns id when set and valid, otherwise the ID of the current
// branch.
func (s *TaskService) Resolve(ctx context.Context, id string) (string, string, error) {
	if id != "" {
		if !s.extractor.IsValid(id) {
			return "", "", fmt.Errorf("%w: %q does not match %s", ErrInvalidTaskID, id, s.extractor.Pattern())
		}
		// Branch is informational; a failure to read it is not fatal here
		branch, _ := s.repo.CurrentBranch(ctx)
		return id, branch, nil
	}

	current, err := s.CurrentID(ctx)
	if err != nil {
		return "", current.Branch, err
	}
	return current.TaskID, current.Branch, nil
}
