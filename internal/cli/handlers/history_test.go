package handlers

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/xolan/tasktime/internal/service"
	"github.com/xolan/tasktime/internal/timeutil"
)

func TestShowHistory(t *testing.T) {
	env := setupTestDeps(t, "ABC-123-login", "")
	ctx := context.Background()

	ShowHistory(env.deps, service.HistoryQuery{})
	if !strings.Contains(env.stdout.String(), "No time logged for all tasks") {
		t.Errorf("empty history output = %q", env.stdout.String())
	}

	LogTime(ctx, env.deps, LogOptions{Input: "30m", Note: "first", NoteSet: true})
	LogTime(ctx, env.deps, LogOptions{Input: "1h", Note: "second", NoteSet: true})
	env.stdout.Reset()

	ShowHistory(env.deps, service.HistoryQuery{TaskID: "ABC-123"})

	out := env.stdout.String()
	for _, want := range []string{"Time logged for ABC-123:", "first", "second", "Total: 1h 30m (2 records)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "second") > strings.Index(out, "first") {
		t.Error("newest record should be listed first")
	}

	env.stdout.Reset()
	ShowHistory(env.deps, service.HistoryQuery{Limit: 1})
	if !strings.Contains(env.stdout.String(), "(1 record)") {
		t.Errorf("limited output = %q", env.stdout.String())
	}
}

func TestShowHistory_Range(t *testing.T) {
	env := setupTestDeps(t, "ABC-123-login", "")
	LogTime(context.Background(), env.deps, LogOptions{Input: "30m", Yes: true})
	env.stdout.Reset()

	yesterday, _ := timeutil.Period("yesterday", time.Now())
	ShowHistory(env.deps, service.HistoryQuery{Range: yesterday})
	if !strings.Contains(env.stdout.String(), "No time logged for all tasks, "+yesterday.String()) {
		t.Errorf("output = %q", env.stdout.String())
	}

	env.stdout.Reset()
	today, _ := timeutil.Period("today", time.Now())
	ShowHistory(env.deps, service.HistoryQuery{Range: today})
	if !strings.Contains(env.stdout.String(), "Total: 30m (1 record)") {
		t.Errorf("output = %q", env.stdout.String())
	}
}

func TestShowSummary(t *testing.T) {
	env := setupTestDeps(t, "ABC-123-login", "")
	ctx := context.Background()

	ShowSummary(env.deps, service.HistoryQuery{})
	if !strings.Contains(env.stdout.String(), "No time logged for all tasks") {
		t.Errorf("empty summary = %q", env.stdout.String())
	}

	LogTime(ctx, env.deps, LogOptions{Input: "30m", Yes: true})
	LogTime(ctx, env.deps, LogOptions{Input: "1h", Yes: true})
	env.stdout.Reset()

	ShowSummary(env.deps, service.HistoryQuery{Limit: 1})

	out := env.stdout.String()
	for _, want := range []string{"Summary for all tasks:", "ABC-123", "(2 records)", time.Now().Format("2006-01-02"), "Total:   1h 30m across 1 day", "Average: 1h 30m per day"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func corruptJournal(t *testing.T, env *testEnv) {
	t.Helper()
	LogTime(context.Background(), env.deps, LogOptions{Input: "30m", Yes: true})

	f, err := os.OpenFile(env.deps.Services.TimeLog.JournalPath(), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = f.WriteString("{truncated\n")
	_ = f.Close()
	env.stdout.Reset()
	env.stderr.Reset()
}

func TestShowHistory_CorruptedWarning(t *testing.T) {
	env := setupTestDeps(t, "ABC-123-login", "")
	corruptJournal(t, env)

	ShowHistory(env.deps, service.HistoryQuery{})

	if !strings.Contains(env.stderr.String(), "1 corrupted line skipped") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}

func TestValidateJournal(t *testing.T) {
	env := setupTestDeps(t, "ABC-123-login", "")

	ValidateJournal(env.deps)
	if !strings.Contains(env.stdout.String(), "Journal is healthy") {
		t.Errorf("output = %q", env.stdout.String())
	}

	corruptJournal(t, env)
	ValidateJournal(env.deps)

	out := env.stdout.String()
	if !strings.Contains(out, "Corrupted records: 1") || !strings.Contains(out, "Line 2: {truncated") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(env.stderr.String(), "history repair") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}

func TestRepairJournal(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		env := setupTestDeps(t, "ABC-123-login", "")
		RepairJournal(env.deps, false)
		if !strings.Contains(env.stdout.String(), "nothing to repair") {
			t.Errorf("output = %q", env.stdout.String())
		}
	})

	t.Run("declined", func(t *testing.T) {
		env := setupTestDeps(t, "ABC-123-login", "n\n")
		corruptJournal(t, env)

		RepairJournal(env.deps, false)

		if !strings.Contains(env.stdout.String(), "Repair cancelled") {
			t.Errorf("output = %q", env.stdout.String())
		}
		health, _ := env.deps.Services.TimeLog.ValidateJournal()
		if health.Healthy() {
			t.Error("declined repair should leave the journal alone")
		}
	})

	t.Run("forced", func(t *testing.T) {
		env := setupTestDeps(t, "ABC-123-login", "")
		corruptJournal(t, env)

		RepairJournal(env.deps, true)

		if !strings.Contains(env.stdout.String(), "Dropped 1 corrupted line") {
			t.Errorf("output = %q", env.stdout.String())
		}
		health, _ := env.deps.Services.TimeLog.ValidateJournal()
		if !health.Healthy() || health.ValidRecords != 1 {
			t.Errorf("health = %+v", health)
		}

		env.stdout.Reset()
		ValidateJournal(env.deps)
		if !strings.Contains(env.stdout.String(), "Backups:           1 (newest ") {
			t.Errorf("validate output = %q", env.stdout.String())
		}
	})
}
