package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/xolan/tasktime/internal/api"
	"github.com/xolan/tasktime/internal/stats"
	"github.com/xolan/tasktime/internal/storage"
	"github.com/xolan/tasktime/internal/timeinput"
	"github.com/xolan/tasktime/internal/timeutil"
)

// Common errors for the time log service
var (
	ErrNothingToSubmit = errors.New("nothing to submit: time rounds to zero")
	ErrExceedsMaximum  = errors.New("time entry exceeds the maximum")
)

// TimeLogService evaluates time inputs, submits them and keeps the journal.
type TimeLogService struct {
	processor   *timeinput.Processor
	client      TaskClient
	journalPath string
	logger      *log.Logger
	now         func() time.Time
}

// NewTimeLogService creates a new TimeLogService
func NewTimeLogService(processor *timeinput.Processor, client TaskClient, journalPath string, logger *log.Logger) *TimeLogService {
	return &TimeLogService{
		processor:   processor,
		client:      client,
		journalPath: journalPath,
		logger:      logger,
		now:         time.Now,
	}
}

// JournalPath returns the path to the local journal.
func (s *TimeLogService) JournalPath() string {
	return s.journalPath
}

// Evaluate parses and validates input. The error wraps
// timeinput.ErrInvalidInput when input cannot be parsed.
func (s *TimeLogService) Evaluate(input string) (Evaluation, error) {
	parsed, err := s.processor.Parse(input)
	if err != nil {
		return Evaluation{Input: input}, err
	}
	return s.EvaluateMinutes(parsed.Minutes, parsed.OriginalInput), nil
}

// EvaluateMinutes validates an already parsed duration.
func (s *TimeLogService) EvaluateMinutes(minutes int, input string) Evaluation {
	result := s.processor.Validate(minutes)
	return Evaluation{
		Input:             input,
		Minutes:           minutes,
		RoundedMinutes:    result.RoundedMinutes,
		Valid:             result.Valid,
		Warning:           result.Warning,
		Rounded:           result.Valid && result.RoundedMinutes != minutes,
		NeedsConfirmation: result.Valid && s.processor.RequiresConfirmation(result.RoundedMinutes),
	}
}

// Submit validates sub.Minutes, sends the rounded value to the tracker and
// records the submission in the journal. The journal record ID is the
// request's idempotency key.
func (s *TimeLogService) Submit(ctx context.Context, sub Submission) (*SubmitResult, error) {
	result := s.processor.Validate(sub.Minutes)
	switch {
	case sub.Minutes > s.processor.Policy().MaxMinutes:
		return nil, fmt.Errorf("%w: %s", ErrExceedsMaximum, result.Warning)
	case !result.Valid || result.RoundedMinutes <= 0:
		return nil, ErrNothingToSubmit
	}

	record := storage.Record{
		ID:       storage.NewRecordID(),
		TaskID:   sub.TaskID,
		Branch:   sub.Branch,
		Minutes:  result.RoundedMinutes,
		Note:     sub.Note,
		RawInput: sub.RawInput,
	}

	receipt, err := s.client.LogTime(ctx, sub.TaskID, api.TimeLog{Minutes: record.Minutes, Note: record.Note}, record.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("time logged", "task", sub.TaskID, "minutes", record.Minutes, "receipt", receipt.ID)

	record.RemoteID = receipt.ID
	record.SubmittedAt = s.now()

	out := &SubmitResult{Record: record, Receipt: receipt}
	stored, err := storage.AppendRecord(s.journalPath, record)
	if err != nil {
		s.logger.Warn("failed to write journal", "path", s.journalPath, "err", err)
		out.JournalErr = err
		return out, nil
	}
	out.Record = stored
	return out, nil
}

// History returns journal records for taskID (all tasks when empty),
// newest first, at most limit (0 means all).
func (s *TimeLogService) History(taskID string, limit int) (*HistoryResult, error) {
	return s.Query(HistoryQuery{TaskID: taskID, Limit: limit})
}

// Query returns the journal records selected by q, newest first, with
// totals computed over the selected records.
func (s *TimeLogService) Query(q HistoryQuery) (*HistoryResult, error) {
	read, err := storage.ReadRecordsWithWarnings(s.journalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	records := storage.Filter{
		TaskID: q.TaskID,
		Limit:  q.Limit,
		Since:  q.Range.Start,
		Until:  q.Range.End,
	}.Apply(read.Records)

	s.logger.Debug("journal queried", "task", q.TaskID, "range", q.Range.String(), "matched", len(records))
	return &HistoryResult{
		Records:      records,
		Warnings:     read.Warnings,
		TotalMinutes: storage.TotalMinutes(records),
		TaskID:       q.TaskID,
		Range:        q.Range,
		Summary:      stats.Summarize(records),
		ByTask:       stats.ByTask(records),
	}, nil
}

// Today returns the minutes logged since local midnight.
func (s *TimeLogService) Today() (int, error) {
	today, _ := timeutil.Period("today", s.now())
	result, err := s.Query(HistoryQuery{Range: today})
	if err != nil {
		return 0, err
	}
	return result.TotalMinutes, nil
}

// ValidateJournal reports the health of the local journal.
func (s *TimeLogService) ValidateJournal() (storage.JournalHealth, error) {
	return storage.ValidateJournal(s.journalPath)
}

// RepairJournal drops corrupted journal lines after backing the file up.
func (s *TimeLogService) RepairJournal() (int, error) {
	dropped, err := storage.RepairJournal(s.journalPath)
	if err != nil {
		return 0, err
	}
	if dropped > 0 {
		s.logger.Info("journal repaired", "dropped", dropped, "backup", storage.BackupPath(s.journalPath, 1))
	}
	return dropped, nil
}
