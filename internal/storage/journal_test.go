package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func tempJournal(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), JournalFile)
}

func TestAppendRecord_FillsDefaults(t *testing.T) {
	path := tempJournal(t)

	stored, err := AppendRecord(path, Record{TaskID: "ABC-1", Minutes: 30})
	if err != nil {
		t.Fatalf("AppendRecord returned error: %v", err)
	}
	if _, err := uuid.Parse(stored.ID); err != nil {
		t.Errorf("stored.ID = %q, expected a UUID", stored.ID)
	}
	if stored.SubmittedAt.IsZero() {
		t.Error("stored.SubmittedAt should be set")
	}

	result, err := ReadRecordsWithWarnings(path)
	if err != nil {
		t.Fatal(err)
	}
	records := result.Records
	if len(records) != 1 || records[0].ID != stored.ID || records[0].Minutes != 30 {
		t.Errorf("records = %+v", records)
	}
}

func TestAppendRecord_KeepsGivenID(t *testing.T) {
	path := tempJournal(t)
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	stored, err := AppendRecord(path, Record{ID: "fixed", TaskID: "ABC-1", Minutes: 15, SubmittedAt: at})
	if err != nil {
		t.Fatal(err)
	}
	if stored.ID != "fixed" || !stored.SubmittedAt.Equal(at) {
		t.Errorf("stored = %+v, expected given ID and time", stored)
	}
}

func TestAppendRecord_EmptyTaskID(t *testing.T) {
	if _, err := AppendRecord(tempJournal(t), Record{Minutes: 15}); !errors.Is(err, ErrEmptyTaskID) {
		t.Errorf("error = %v, expected ErrEmptyTaskID", err)
	}
}

func TestReadRecordsWithWarnings(t *testing.T) {
	path := tempJournal(t)
	content := strings.Join([]string{
		`{"id":"1","task_id":"ABC-1","minutes":30,"submitted_at":"2024-03-01T09:00:00Z"}`,
		`not json`,
		``,
		`{"id":"2","minutes":15}`,
		`{"id":"3","task_id":"ABC-2","minutes":45,"submitted_at":"2024-03-02T09:00:00Z"}`,
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := ReadRecordsWithWarnings(path)
	if err != nil {
		t.Fatalf("ReadRecordsWithWarnings returned error: %v", err)
	}
	if len(result.Records) != 2 {
		t.Errorf("got %d records, expected 2", len(result.Records))
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("got %d warnings, expected 2", len(result.Warnings))
	}
	if result.Warnings[0].LineNumber != 2 || result.Warnings[0].Content != "not json" {
		t.Errorf("first warning = %+v", result.Warnings[0])
	}
	if result.Warnings[1].LineNumber != 4 || result.Warnings[1].Error != ErrEmptyTaskID.Error() {
		t.Errorf("second warning = %+v", result.Warnings[1])
	}
}

func TestReadRecordsWithWarnings_MissingFile(t *testing.T) {
	result, err := ReadRecordsWithWarnings(tempJournal(t))
	if err != nil {
		t.Fatalf("missing journal should not error: %v", err)
	}
	if len(result.Records) != 0 || len(result.Warnings) != 0 {
		t.Errorf("result = %+v, expected empty", result)
	}
}

func TestFilter_Apply(t *testing.T) {
	path := tempJournal(t)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"ABC-1", "ABC-2", "ABC-1", "ABC-1"} {
		if _, err := AppendRecord(path, Record{TaskID: id, Minutes: 15 * (i + 1), SubmittedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name     string
		filter   Filter
		expected []int
	}{
		{"all newest first", Filter{}, []int{60, 45, 30, 15}},
		{"by task", Filter{TaskID: "ABC-1"}, []int{60, 45, 15}},
		{"limit", Filter{TaskID: "ABC-1", Limit: 2}, []int{60, 45}},
		{"no match", Filter{TaskID: "XYZ-9"}, []int{}},
		{"since", Filter{Since: base.Add(2 * time.Hour)}, []int{60, 45}},
		{"until inclusive", Filter{Until: base.Add(time.Hour)}, []int{30, 15}},
		{"window and task", Filter{TaskID: "ABC-1", Since: base.Add(time.Hour), Until: base.Add(2 * time.Hour)}, []int{45}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			read, err := ReadRecordsWithWarnings(path)
			if err != nil {
				t.Fatal(err)
			}
			records := tt.filter.Apply(read.Records)
			if len(records) != len(tt.expected) {
				t.Fatalf("got %d records, expected %d", len(records), len(tt.expected))
			}
			for i, r := range records {
				if r.Minutes != tt.expected[i] {
					t.Errorf("records[%d].Minutes = %d, expected %d", i, r.Minutes, tt.expected[i])
				}
			}
		})
	}
}

func TestTotalMinutes(t *testing.T) {
	if got := TotalMinutes([]Record{{Minutes: 30}, {Minutes: 45}}); got != 75 {
		t.Errorf("TotalMinutes = %d, expected 75", got)
	}
	if got := TotalMinutes(nil); got != 0 {
		t.Errorf("TotalMinutes(nil) = %d, expected 0", got)
	}
}

func TestValidateJournal(t *testing.T) {
	path := tempJournal(t)

	health, err := ValidateJournal(path)
	if err != nil || !health.Healthy() || health.TotalLines != 0 {
		t.Fatalf("missing journal health = %+v, %v", health, err)
	}

	if _, err := AppendRecord(path, Record{TaskID: "ABC-1", Minutes: 15}); err != nil {
		t.Fatal(err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = f.WriteString("{broken\n")
	_ = f.Close()

	health, err = ValidateJournal(path)
	if err != nil {
		t.Fatal(err)
	}
	if health.TotalLines != 2 || health.ValidRecords != 1 || health.CorruptedRecords != 1 {
		t.Errorf("health = %+v", health)
	}
	if health.Healthy() {
		t.Error("journal with a corrupted line should not be healthy")
	}
}

func TestRepairJournal(t *testing.T) {
	path := tempJournal(t)
	content := `{"id":"1","task_id":"ABC-1","minutes":30,"submitted_at":"2024-03-01T09:00:00Z"}` + "\n" + "garbage\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	dropped, err := RepairJournal(path)
	if err != nil {
		t.Fatalf("RepairJournal returned error: %v", err)
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, expected 1", dropped)
	}

	health, _ := ValidateJournal(path)
	if !health.Healthy() || health.ValidRecords != 1 {
		t.Errorf("health after repair = %+v", health)
	}

	backup, err := os.ReadFile(BackupPath(path, 1))
	if err != nil {
		t.Fatalf("backup not written: %v", err)
	}
	if string(backup) != content {
		t.Error("backup should hold the original content")
	}

	// Healthy journal is left untouched
	dropped, err = RepairJournal(path)
	if err != nil || dropped != 0 {
		t.Errorf("second repair = %d, %v", dropped, err)
	}
	if got := ListBackups(path); len(got) != 1 {
		t.Errorf("backups = %v, expected one", got)
	}
	health, _ = ValidateJournal(path)
	if len(health.Backups) != 1 || health.Backups[0] != 1 {
		t.Errorf("health.Backups = %v, expected [1]", health.Backups)
	}
}
