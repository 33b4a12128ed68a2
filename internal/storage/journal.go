// Package storage keeps the local journal of submitted time logs as
// JSON Lines, one record per line.
package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/xolan/tasktime/internal/osutil"
)

// JournalFile is the name of the JSON Lines journal
const JournalFile = "journal.jsonl"

// ErrEmptyTaskID is returned when appending a record without a task.
var ErrEmptyTaskID = errors.New("record has no task ID")

// Record is one successful time-log submission.
type Record struct {
	ID          string    `json:"id" yaml:"id"`
	TaskID      string    `json:"task_id" yaml:"task_id"`
	Branch      string    `json:"branch,omitempty" yaml:"branch,omitempty"`
	Minutes     int       `json:"minutes" yaml:"minutes"`
	Note        string    `json:"note,omitempty" yaml:"note,omitempty"`
	RawInput    string    `json:"raw_input,omitempty" yaml:"raw_input,omitempty"`
	RemoteID    string    `json:"remote_id,omitempty" yaml:"remote_id,omitempty"`
	SubmittedAt time.Time `json:"submitted_at" yaml:"submitted_at"`
}

// NewRecordID returns a fresh record ID. It is sent as the idempotency key
// of the submission, so a retried submission keeps its ID.
func NewRecordID() string {
	return uuid.NewString()
}

// ParseWarning represents a corrupted or malformed journal line
type ParseWarning struct {
	LineNumber int    // 1-indexed
	Content    string // raw line
	Error      string
}

// ReadResult holds the parsed records and the warnings about lines that
// could not be parsed.
type ReadResult struct {
	Records  []Record
	Warnings []ParseWarning
}

// GetJournalPath returns the path to the journal in the app directory.
func GetJournalPath() (string, error) {
	return osutil.AppFile(JournalFile)
}

// AppendRecord appends r to the journal, creating the file if needed.
// A missing ID or timestamp is filled in; the stored record is returned.
func AppendRecord(path string, r Record) (Record, error) {
	if r.TaskID == "" {
		return Record{}, ErrEmptyTaskID
	}
	if r.ID == "" {
		r.ID = NewRecordID()
	}
	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = time.Now()
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return Record{}, err
	}
	defer func() { _ = file.Close() }()

	line, err := json.Marshal(r)
	if err != nil {
		return Record{}, err
	}
	if _, err := file.Write(append(line, '\n')); err != nil {
		return Record{}, err
	}
	return r, nil
}

// ReadRecordsWithWarnings reads every record in the journal. Lines that do
// not decode, or decode without a task ID, become warnings. A missing
// journal yields an empty result.
func ReadRecordsWithWarnings(path string) (ReadResult, error) {
	result := ReadResult{
		Records:  []Record{},
		Warnings: []ParseWarning{},
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		content := scanner.Text()
		if content == "" {
			continue
		}

		var r Record
		if err := json.Unmarshal([]byte(content), &r); err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{
				LineNumber: lineNumber,
				Content:    content,
				Error:      err.Error(),
			})
			continue
		}
		if r.TaskID == "" {
			result.Warnings = append(result.Warnings, ParseWarning{
				LineNumber: lineNumber,
				Content:    content,
				Error:      ErrEmptyTaskID.Error(),
			})
			continue
		}
		result.Records = append(result.Records, r)
	}

	if err := scanner.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// Filter selects journal records.
type Filter struct {
	TaskID string // empty matches all tasks
	Limit  int    // 0 means no limit
	// Since and Until bound SubmittedAt inclusively; zero is unbounded
	Since time.Time
	Until time.Time
}

func (f Filter) matches(r Record) bool {
	if f.TaskID != "" && r.TaskID != f.TaskID {
		return false
	}
	if !f.Since.IsZero() && r.SubmittedAt.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && r.SubmittedAt.After(f.Until) {
		return false
	}
	return true
}

// Apply returns the records matching f, newest first.
func (f Filter) Apply(records []Record) []Record {
	matched := make([]Record, 0, len(records))
	for _, r := range records {
		if f.matches(r) {
			matched = append(matched, r)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].SubmittedAt.After(matched[j].SubmittedAt)
	})

	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched
}

// TotalMinutes sums the minutes of records.
func TotalMinutes(records []Record) int {
	total := 0
	for _, r := range records {
		total += r.Minutes
	}
	return total
}

// JournalHealth describes the state of the journal file.
type JournalHealth struct {
	TotalLines       int
	ValidRecords     int
	CorruptedRecords int
	Warnings         []ParseWarning
	// Backups lists the backup numbers present, newest first
	Backups []int
}

// Healthy reports whether no line was corrupted.
func (h JournalHealth) Healthy() bool {
	return h.CorruptedRecords == 0
}

// ValidateJournal reports line counts and the details of every corrupted
// line. A missing journal is healthy and empty.
func ValidateJournal(path string) (JournalHealth, error) {
	health := JournalHealth{Warnings: []ParseWarning{}, Backups: ListBackups(path)}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return health, nil
		}
		return health, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if scanner.Text() != "" {
			health.TotalLines++
		}
	}
	if err := scanner.Err(); err != nil {
		return health, err
	}

	result, err := ReadRecordsWithWarnings(path)
	if err != nil {
		return health, err
	}

	health.ValidRecords = len(result.Records)
	health.CorruptedRecords = len(result.Warnings)
	health.Warnings = result.Warnings
	return health, nil
}

// RepairJournal rewrites the journal keeping only valid records, after
// taking a backup. It returns the number of dropped lines.
// Uses atomic write pattern (write to temp file, then rename).
func RepairJournal(path string) (int, error) {
	result, err := ReadRecordsWithWarnings(path)
	if err != nil {
		return 0, err
	}
	if len(result.Warnings) == 0 {
		return 0, nil
	}

	if err := CreateBackup(path); err != nil {
		return 0, err
	}

	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return 0, err
	}

	w := bufio.NewWriter(file)
	for _, r := range result.Records {
		// Record contains only JSON-safe types
		line, _ := json.Marshal(r)
		_, _ = w.Write(append(line, '\n'))
	}
	if err := w.Flush(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return 0, err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return 0, err
	}

	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return 0, err
	}
	return len(result.Warnings), nil
}
