package api

import "time"

// Task is a unit of work in the tracker.
type Task struct {
	ID              string    `json:"id" yaml:"id"`
	Title           string    `json:"title" yaml:"title"`
	Description     string    `json:"description,omitempty" yaml:"description,omitempty"`
	Status          string    `json:"status" yaml:"status"`
	Assignee        string    `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	URL             string    `json:"url,omitempty" yaml:"url,omitempty"`
	EstimateMinutes int       `json:"estimate_minutes,omitempty" yaml:"estimate_minutes,omitempty"`
	LoggedMinutes   int       `json:"logged_minutes" yaml:"logged_minutes"`
	UpdatedAt       time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// TimeLog is the body submitted for a manual time entry.
type TimeLog struct {
	Minutes int    `json:"minutes"`
	Note    string `json:"note,omitempty"`
}

// timeLogRequest wraps TimeLog for POST /tasks/{id}/time_logs.
type timeLogRequest struct {
	TimeLog TimeLog `json:"time_log"`
}

// TimeLogReceipt is the tracker's acknowledgement of a time entry.
type TimeLogReceipt struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	Minutes   int       `json:"minutes"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
