package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/tasktime/internal/cli"
	"github.com/xolan/tasktime/internal/service"
	"github.com/xolan/tasktime/internal/stats"
	"github.com/xolan/tasktime/internal/storage"
)

// ShowHistory lists journal records, newest first.
func ShowHistory(deps *cli.Deps, q service.HistoryQuery) {
	result, err := deps.Services.TimeLog.Query(q)
	if err != nil {
		cli.ReportError(deps, err)
		return
	}

	scope := historyScope(q)
	if len(result.Records) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No time logged for %s\n", scope)
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Time logged for %s:\n", scope)
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
		for _, r := range result.Records {
			_, _ = fmt.Fprintln(deps.Stdout, cli.FormatRecord(r))
		}
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
		_, _ = fmt.Fprintf(deps.Stdout, "Total: %s (%d %s)\n",
			cli.FormatDuration(result.TotalMinutes), len(result.Records), cli.Pluralize("record", len(result.Records)))
	}

	warnCorrupted(deps, len(result.Warnings))
}

// ShowSummary prints per-task totals for the selected records.
func ShowSummary(deps *cli.Deps, q service.HistoryQuery) {
	q.Limit = 0
	result, err := deps.Services.TimeLog.Query(q)
	if err != nil {
		cli.ReportError(deps, err)
		return
	}

	scope := historyScope(q)
	if len(result.Records) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No time logged for %s\n", scope)
		warnCorrupted(deps, len(result.Warnings))
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Summary for %s:\n", scope)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	for _, t := range result.ByTask {
		_, _ = fmt.Fprintf(deps.Stdout, "%-12s %8s  (%d %s)\n",
			t.TaskID, cli.FormatDuration(t.TotalMinutes), t.RecordCount, cli.Pluralize("record", t.RecordCount))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	for _, d := range stats.ByDay(result.Records) {
		_, _ = fmt.Fprintf(deps.Stdout, "%s %8s\n", d.Day, cli.FormatDuration(d.TotalMinutes))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))

	s := result.Summary
	_, _ = fmt.Fprintf(deps.Stdout, "Total:   %s across %d %s\n",
		cli.FormatDuration(s.TotalMinutes), s.DaysWithTime, cli.Pluralize("day", s.DaysWithTime))
	_, _ = fmt.Fprintf(deps.Stdout, "Average: %s per day\n", cli.FormatDuration(int(s.AveragePerDay+0.5)))

	warnCorrupted(deps, len(result.Warnings))
}

func historyScope(q service.HistoryQuery) string {
	scope := "all tasks"
	if q.TaskID != "" {
		scope = q.TaskID
	}
	if !q.Range.IsZero() {
		scope += ", " + q.Range.String()
	}
	return scope
}

func warnCorrupted(deps *cli.Deps, n int) {
	if n > 0 {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: %d corrupted %s skipped, run 'tasktime history validate'\n",
			n, cli.Pluralize("line", n))
	}
}

// ValidateJournal reports the health of the local journal.
func ValidateJournal(deps *cli.Deps) {
	health, err := deps.Services.TimeLog.ValidateJournal()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to validate journal: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Journal file: %s\n", deps.Services.TimeLog.JournalPath())
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total lines:       %d\n", health.TotalLines)
	_, _ = fmt.Fprintf(deps.Stdout, "Valid records:     %d\n", health.ValidRecords)
	_, _ = fmt.Fprintf(deps.Stdout, "Corrupted records: %d\n", health.CorruptedRecords)

	if len(health.Warnings) > 0 {
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
		_, _ = fmt.Fprintln(deps.Stdout, "Corrupted lines:")
		for _, warning := range health.Warnings {
			_, _ = fmt.Fprintln(deps.Stdout, cli.FormatCorruptionWarning(warning))
		}
	}

	if n := len(health.Backups); n > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "Backups:           %d (newest %s)\n",
			n, storage.BackupPath(deps.Services.TimeLog.JournalPath(), health.Backups[0]))
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	if health.Healthy() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: ✓ Journal is healthy")
	} else {
		_, _ = fmt.Fprintf(deps.Stderr, "Status: ⚠ Journal has %d corrupted line(s)\n", health.CorruptedRecords)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'tasktime history repair' to drop them")
	}
}

// RepairJournal drops corrupted journal lines after confirmation.
func RepairJournal(deps *cli.Deps, yes bool) {
	health, err := deps.Services.TimeLog.ValidateJournal()
	if err != nil {
		cli.ReportError(deps, err)
		return
	}
	if health.Healthy() {
		_, _ = fmt.Fprintln(deps.Stdout, "Journal is healthy, nothing to repair")
		return
	}

	if !yes {
		question := fmt.Sprintf("Drop %d corrupted %s?", health.CorruptedRecords, cli.Pluralize("line", health.CorruptedRecords))
		if !deps.Confirm(question) {
			_, _ = fmt.Fprintln(deps.Stdout, "Repair cancelled")
			return
		}
	}

	dropped, err := deps.Services.TimeLog.RepairJournal()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to repair journal: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Dropped %d corrupted %s\n", dropped, cli.Pluralize("line", dropped))
	_, _ = fmt.Fprintf(deps.Stdout, "Backup: %s\n", storage.BackupPath(deps.Services.TimeLog.JournalPath(), 1))
}
