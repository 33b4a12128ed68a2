package timeutil

import (
	"strings"
	"testing"
	"time"
)

// Wednesday
var now = time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"wednesday", now, day(2026, 3, 2)},
		{"monday", day(2026, 3, 2).Add(9 * time.Hour), day(2026, 3, 2)},
		{"sunday belongs to the previous week", day(2026, 3, 8).Add(23 * time.Hour), day(2026, 3, 2)},
		{"across month boundary", day(2026, 3, 1), day(2026, 2, 23)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StartOfWeek(tt.in); !got.Equal(tt.want) {
				t.Errorf("StartOfWeek(%v) = %v, expected %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEndOfDay(t *testing.T) {
	got := EndOfDay(now)
	want := day(2026, 3, 5).Add(-time.Nanosecond)
	if !got.Equal(want) {
		t.Errorf("EndOfDay() = %v, expected %v", got, want)
	}
}

func TestPeriod(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"today", day(2026, 3, 4), day(2026, 3, 5)},
		{"yesterday", day(2026, 3, 3), day(2026, 3, 4)},
		{"week", day(2026, 3, 2), day(2026, 3, 9)},
		{"last-week", day(2026, 2, 23), day(2026, 3, 2)},
		{"month", day(2026, 3, 1), day(2026, 4, 1)},
		{"last-month", day(2026, 2, 1), day(2026, 3, 1)},
		{"  Week ", day(2026, 3, 2), day(2026, 3, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Period(tt.name, now)
			if err != nil {
				t.Fatalf("Period(%q) returned error: %v", tt.name, err)
			}
			if !r.Start.Equal(tt.start) {
				t.Errorf("Start = %v, expected %v", r.Start, tt.start)
			}
			if want := tt.end.Add(-time.Nanosecond); !r.End.Equal(want) {
				t.Errorf("End = %v, expected %v", r.End, want)
			}
		})
	}

	if _, err := Period("fortnight", now); err == nil || !strings.Contains(err.Error(), "last-week") {
		t.Errorf("Period(fortnight) error = %v, expected list of periods", err)
	}
}

func TestParseDate(t *testing.T) {
	valid := map[string]time.Time{
		"2026-03-04": day(2026, 3, 4),
		"04/03/2026": day(2026, 3, 4),
		"2024-02-29": day(2024, 2, 29),
	}
	for in, want := range valid {
		got, err := ParseDate(in, time.UTC)
		if err != nil {
			t.Errorf("ParseDate(%q) returned error: %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, expected %v", in, got, want)
		}
	}

	invalid := map[string]string{
		"":           "cannot be empty",
		"2026":       "missing month and day",
		"2026-03":    "missing day",
		"04/03":      "missing year",
		"2025-02-29": "invalid date",
		"tomorrow":   "invalid date",
	}
	for in, want := range invalid {
		_, err := ParseDate(in, time.UTC)
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("ParseDate(%q) error = %v, expected %q", in, err, want)
		}
	}
}

func TestRangeFlags_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		flags   RangeFlags
		start   time.Time
		end     time.Time
		wantErr string
	}{
		{name: "none", flags: RangeFlags{}},
		{name: "period", flags: RangeFlags{Period: "today"}, start: day(2026, 3, 4), end: day(2026, 3, 5).Add(-time.Nanosecond)},
		{name: "last 1 is today", flags: RangeFlags{Last: 1}, start: day(2026, 3, 4), end: day(2026, 3, 5).Add(-time.Nanosecond)},
		{name: "last 7", flags: RangeFlags{Last: 7}, start: day(2026, 2, 26), end: day(2026, 3, 5).Add(-time.Nanosecond)},
		{name: "from only", flags: RangeFlags{From: "2026-03-01"}, start: day(2026, 3, 1)},
		{name: "from to", flags: RangeFlags{From: "2026-03-01", To: "02/03/2026"}, start: day(2026, 3, 1), end: day(2026, 3, 3).Add(-time.Nanosecond)},
		{name: "conflict", flags: RangeFlags{Period: "week", Last: 3}, wantErr: "only one of"},
		{name: "negative last", flags: RangeFlags{Last: -2}, wantErr: "must be positive"},
		{name: "bad from", flags: RangeFlags{From: "soon"}, wantErr: "invalid --from"},
		{name: "reversed", flags: RangeFlags{From: "2026-03-05", To: "2026-03-01"}, wantErr: "is after"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.flags.Resolve(now)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %v, expected %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if !r.Start.Equal(tt.start) || !r.End.Equal(tt.end) {
				t.Errorf("Resolve() = %v..%v, expected %v..%v", r.Start, r.End, tt.start, tt.end)
			}
		})
	}
}

func TestRange_Contains(t *testing.T) {
	r := Range{Start: day(2026, 3, 2), End: EndOfDay(day(2026, 3, 8))}

	if !r.Contains(day(2026, 3, 2)) || !r.Contains(r.End) {
		t.Error("range bounds should be inclusive")
	}
	if r.Contains(day(2026, 3, 9)) || r.Contains(day(2026, 3, 1)) {
		t.Error("times outside the range matched")
	}
	if !(Range{}).Contains(now) {
		t.Error("zero range should contain everything")
	}
}

func TestRange_String(t *testing.T) {
	tests := []struct {
		r    Range
		want string
	}{
		{Range{}, "all time"},
		{Range{Start: day(2026, 3, 4), End: EndOfDay(day(2026, 3, 4))}, "2026-03-04"},
		{Range{Start: day(2026, 3, 2), End: EndOfDay(day(2026, 3, 8))}, "2026-03-02 to 2026-03-08"},
		{Range{Start: day(2026, 3, 2)}, "since 2026-03-02"},
		{Range{End: day(2026, 3, 2)}, "until 2026-03-02"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("String() = %q, expected %q", got, tt.want)
		}
	}
}
