// Package service provides the business logic layer for tasktime.
// It wraps the git, api, secret, storage and timeinput packages behind an
// API shared by the CLI and TUI frontends.
package service

import (
	"time"

	"github.com/xolan/tasktime/internal/api"
	"github.com/xolan/tasktime/internal/stats"
	"github.com/xolan/tasktime/internal/storage"
	"github.com/xolan/tasktime/internal/timeutil"
)

// CurrentTask is what the status line shows: the branch, the task ID found
// in it and, when the tracker answered, the task itself.
type CurrentTask struct {
	Branch string
	TaskID string
	Task   *api.Task
}

// Evaluation is the result of checking a time input before submission.
type Evaluation struct {
	Input          string
	Minutes        int // as parsed
	RoundedMinutes int
	Valid          bool
	Warning        string
	// Rounded is true when RoundedMinutes differs from Minutes
	Rounded bool
	// NeedsConfirmation is true for large entries
	NeedsConfirmation bool
}

// Submission is a time entry ready to be sent.
type Submission struct {
	TaskID   string
	Branch   string
	Minutes  int
	Note     string
	RawInput string
}

// SubmitResult describes a completed submission.
type SubmitResult struct {
	Record  storage.Record
	Receipt *api.TimeLogReceipt
	// JournalErr is set when the tracker accepted the entry but the local
	// journal could not be written
	JournalErr error
}

// HistoryResult contains journal records matching a query.
type HistoryResult struct {
	Records      []storage.Record
	Warnings     []storage.ParseWarning
	TotalMinutes int
	TaskID       string
	Range        timeutil.Range
	Summary      stats.Summary
	ByTask       []stats.TaskTotal
}

// HistoryQuery selects journal records.
type HistoryQuery struct {
	TaskID string // empty for all tasks
	Limit  int    // 0 for all
	Range  timeutil.Range
}

// TokenStatus describes the configured API token.
type TokenStatus struct {
	Set       bool
	FromEnv   bool
	Masked    string
	// Tracker is the URL the token is sent to, when the client exposes it
	Tracker   string
	Checked   bool
	Verified  bool
	CheckErr  error
	CheckedAt time.Time
}
