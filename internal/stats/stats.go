// Package stats aggregates journal records into totals.
package stats

import (
	"sort"

	"github.com/xolan/tasktime/internal/storage"
	"github.com/xolan/tasktime/internal/timeutil"
)

// Summary contains aggregated totals for a set of records
type Summary struct {
	TotalMinutes  int
	RecordCount   int
	DaysWithTime  int
	AveragePerDay float64 // over days with time logged
}

// TaskTotal is the time logged against one task
type TaskTotal struct {
	TaskID       string
	TotalMinutes int
	RecordCount  int
}

// DayTotal is the time logged on one calendar day
type DayTotal struct {
	Day          string // YYYY-MM-DD in local time
	TotalMinutes int
}

// Summarize computes totals over records.
func Summarize(records []storage.Record) Summary {
	var s Summary
	days := make(map[string]bool)
	for _, r := range records {
		s.TotalMinutes += r.Minutes
		s.RecordCount++
		days[dayKey(r)] = true
	}
	s.DaysWithTime = len(days)
	if s.DaysWithTime > 0 {
		s.AveragePerDay = float64(s.TotalMinutes) / float64(s.DaysWithTime)
	}
	return s
}

// ByTask groups records by task, largest total first. Ties are ordered by
// task ID.
func ByTask(records []storage.Record) []TaskTotal {
	byID := make(map[string]*TaskTotal)
	for _, r := range records {
		t, ok := byID[r.TaskID]
		if !ok {
			t = &TaskTotal{TaskID: r.TaskID}
			byID[r.TaskID] = t
		}
		t.TotalMinutes += r.Minutes
		t.RecordCount++
	}

	totals := make([]TaskTotal, 0, len(byID))
	for _, t := range byID {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].TotalMinutes != totals[j].TotalMinutes {
			return totals[i].TotalMinutes > totals[j].TotalMinutes
		}
		return totals[i].TaskID < totals[j].TaskID
	})
	return totals
}

// ByDay groups records by local calendar day, oldest first.
func ByDay(records []storage.Record) []DayTotal {
	byDay := make(map[string]int)
	for _, r := range records {
		byDay[dayKey(r)] += r.Minutes
	}

	totals := make([]DayTotal, 0, len(byDay))
	for day, minutes := range byDay {
		totals = append(totals, DayTotal{Day: day, TotalMinutes: minutes})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Day < totals[j].Day })
	return totals
}

// Within returns the records submitted inside r.
func Within(records []storage.Record, r timeutil.Range) []storage.Record {
	var out []storage.Record
	for _, rec := range records {
		if r.Contains(rec.SubmittedAt) {
			out = append(out, rec)
		}
	}
	return out
}

func dayKey(r storage.Record) string {
	return r.SubmittedAt.Local().Format("2006-01-02")
}
