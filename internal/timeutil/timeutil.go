// Package timeutil resolves the date ranges used to filter time history.
package timeutil

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Range is an inclusive time range. A zero Start or End is unbounded.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within r.
func (r Range) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// IsZero reports whether r is unbounded on both sides.
func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// String renders r as "2026-03-02 to 2026-03-08".
func (r Range) String() string {
	switch {
	case r.IsZero():
		return "all time"
	case r.Start.IsZero():
		return "until " + r.End.Format("2006-01-02")
	case r.End.IsZero():
		return "since " + r.Start.Format("2006-01-02")
	case r.Start.Format("2006-01-02") == r.End.Format("2006-01-02"):
		return r.Start.Format("2006-01-02")
	}
	return r.Start.Format("2006-01-02") + " to " + r.End.Format("2006-01-02")
}

// StartOfDay returns midnight of the day containing t, in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the day containing t.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek returns Monday 00:00 of the ISO week containing t.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}
	return StartOfDay(t).AddDate(0, 0, -(weekday - 1))
}

// StartOfMonth returns the first day of the month containing t.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Periods lists the names accepted by Period.
var Periods = []string{"today", "yesterday", "week", "last-week", "month", "last-month"}

// Period returns the range named by name relative to now.
func Period(name string, now time.Time) (Range, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "today":
		return Range{StartOfDay(now), EndOfDay(now)}, nil
	case "yesterday":
		y := now.AddDate(0, 0, -1)
		return Range{StartOfDay(y), EndOfDay(y)}, nil
	case "week":
		start := StartOfWeek(now)
		return Range{start, start.AddDate(0, 0, 7).Add(-time.Nanosecond)}, nil
	case "last-week":
		start := StartOfWeek(now).AddDate(0, 0, -7)
		return Range{start, start.AddDate(0, 0, 7).Add(-time.Nanosecond)}, nil
	case "month":
		start := StartOfMonth(now)
		return Range{start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)}, nil
	case "last-month":
		start := StartOfMonth(now).AddDate(0, -1, 0)
		return Range{start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)}, nil
	}
	return Range{}, fmt.Errorf("unknown period %q (use %s)", name, strings.Join(Periods, ", "))
}

var (
	yearOnlyPattern    = regexp.MustCompile(`^\d{4}$`)
	yearMonthPattern   = regexp.MustCompile(`^\d{4}-\d{1,2}$`)
	missingYearPattern = regexp.MustCompile(`^\d{1,2}[-/]\d{1,2}$`)
)

// ParseDate parses YYYY-MM-DD or DD/MM/YYYY in loc and returns the start
// of that day. ISO wins for ambiguous input.
func ParseDate(input string, loc *time.Location) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use YYYY-MM-DD or DD/MM/YYYY)")
	}

	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return t, nil
		}
	}

	switch {
	case yearOnlyPattern.MatchString(input):
		return time.Time{}, fmt.Errorf("incomplete date '%s': missing month and day (e.g., %s-01-15)", input, input)
	case yearMonthPattern.MatchString(input):
		return time.Time{}, fmt.Errorf("incomplete date '%s': missing day (e.g., %s-15)", input, input)
	case missingYearPattern.MatchString(input):
		return time.Time{}, fmt.Errorf("incomplete date '%s': missing year", input)
	}
	return time.Time{}, fmt.Errorf("invalid date '%s' (use YYYY-MM-DD or DD/MM/YYYY)", input)
}

// RangeFlags are the date filters accepted by history commands.
type RangeFlags struct {
	Period string
	From   string
	To     string
	// Last selects the last N days including today
	Last int
}

// Resolve turns the flags into a Range relative to now. At most one of
// Period, Last and From/To may be used.
func (f RangeFlags) Resolve(now time.Time) (Range, error) {
	used := 0
	if f.Period != "" {
		used++
	}
	if f.Last != 0 {
		used++
	}
	if f.From != "" || f.To != "" {
		used++
	}
	if used > 1 {
		return Range{}, fmt.Errorf("use only one of --period, --last or --from/--to")
	}

	switch {
	case f.Period != "":
		return Period(f.Period, now)
	case f.Last < 0:
		return Range{}, fmt.Errorf("invalid --last %d: must be positive", f.Last)
	case f.Last > 0:
		return Range{StartOfDay(now.AddDate(0, 0, -(f.Last - 1))), EndOfDay(now)}, nil
	}

	var r Range
	if f.From != "" {
		start, err := ParseDate(f.From, now.Location())
		if err != nil {
			return Range{}, fmt.Errorf("invalid --from: %w", err)
		}
		r.Start = start
	}
	if f.To != "" {
		end, err := ParseDate(f.To, now.Location())
		if err != nil {
			return Range{}, fmt.Errorf("invalid --to: %w", err)
		}
		r.End = EndOfDay(end)
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.Start.After(r.End) {
		return Range{}, fmt.Errorf("--from %s is after --to %s", f.From, f.To)
	}
	return r, nil
}
