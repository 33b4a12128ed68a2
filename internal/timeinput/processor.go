// Package timeinput parses free-form durations typed by a user into minute
// counts and applies the rounding and range policy for time-log entries.
package timeinput

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidInput is returned when a time string cannot be understood.
var ErrInvalidInput = errors.New("invalid time input")

// clockPattern matches HH:MM input (e.g., "1:30", "01:30")
var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// hoursPattern matches an hour token, decimals allowed (e.g., "2h", "1.5h")
var hoursPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*h`)

// minutesPattern matches a minute token (e.g., "30m", "45 m")
var minutesPattern = regexp.MustCompile(`(?i)(\d+)\s*m`)

// maxTokenMinutes bounds h/m token totals so they cannot overflow int
const maxTokenMinutes = math.MaxInt32

// numberPattern matches a bare minute count (e.g., "90")
var numberPattern = regexp.MustCompile(`^\d+$`)

// ParsedTime is the result of parsing a time string.
type ParsedTime struct {
	Minutes       int
	OriginalInput string
}

// ValidationResult describes whether a minute count may be submitted and
// what it will be submitted as.
type ValidationResult struct {
	Valid          bool
	RoundedMinutes int
	// Warning is empty when there is nothing to tell the user.
	Warning string
}

// Policy holds the limits applied to time entries.
type Policy struct {
	// MaxMinutes is the largest entry accepted by Validate.
	MaxMinutes int
	// RoundingInterval is the boundary entries are rounded to.
	RoundingInterval int
	// ConfirmationThreshold is the entry size that needs an extra confirmation.
	ConfirmationThreshold int
	// PureNumberCeiling is the largest bare number Parse accepts as minutes.
	PureNumberCeiling int
}

// DefaultPolicy returns the standard limits: 8h maximum, quarter-hour
// rounding, confirmation from 4h.
func DefaultPolicy() Policy {
	return Policy{
		MaxMinutes:            480,
		RoundingInterval:      15,
		ConfirmationThreshold: 240,
		PureNumberCeiling:     480,
	}
}

// Processor parses, validates and formats time entries under a Policy.
// The zero value is not useful; use New or Default.
type Processor struct {
	policy Policy
}

// New creates a Processor for the given policy.
func New(policy Policy) *Processor {
	return &Processor{policy: policy}
}

// Default creates a Processor using DefaultPolicy.
func Default() *Processor {
	return New(DefaultPolicy())
}

// Policy returns the policy the processor applies.
func (p *Processor) Policy() Policy {
	return p.policy
}

// Parse converts user input into minutes. Recognized formats, in order:
// "HH:MM", hour/minute tokens ("2h", "45m", "1h 30m", "1.5h") and a bare
// number of minutes up to the policy's PureNumberCeiling.
func (p *Processor) Parse(input string) (ParsedTime, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ParsedTime{}, fmt.Errorf("%w: empty input", ErrInvalidInput)
	}

	if m := clockPattern.FindStringSubmatch(trimmed); m != nil {
		hours, _ := strconv.Atoi(m[1])
		mins, _ := strconv.Atoi(m[2])
		if mins < 60 {
			return ParsedTime{Minutes: hours*60 + mins, OriginalInput: input}, nil
		}
	}

	hourMatch := hoursPattern.FindStringSubmatch(trimmed)
	minuteMatch := minutesPattern.FindStringSubmatch(trimmed)
	if hourMatch != nil || minuteMatch != nil {
		total := 0
		if hourMatch != nil {
			hours, err := strconv.ParseFloat(hourMatch[1], 64)
			if err != nil {
				return ParsedTime{}, fmt.Errorf("%w: bad hour value %q", ErrInvalidInput, hourMatch[1])
			}
			if hours*60 > maxTokenMinutes {
				return ParsedTime{}, fmt.Errorf("%w: %q hours is out of range", ErrInvalidInput, hourMatch[1])
			}
			total += int(math.Round(hours * 60))
		}
		if minuteMatch != nil {
			mins, err := strconv.Atoi(minuteMatch[1])
			if err != nil {
				return ParsedTime{}, fmt.Errorf("%w: bad minute value %q", ErrInvalidInput, minuteMatch[1])
			}
			if mins > maxTokenMinutes-total {
				return ParsedTime{}, fmt.Errorf("%w: %q minutes is out of range", ErrInvalidInput, minuteMatch[1])
			}
			total += mins
		}
		return ParsedTime{Minutes: total, OriginalInput: input}, nil
	}

	if numberPattern.MatchString(trimmed) {
		n, err := strconv.Atoi(trimmed)
		if err != nil || n > p.policy.PureNumberCeiling {
			return ParsedTime{}, fmt.Errorf("%w: %s minutes exceeds %d", ErrInvalidInput, trimmed, p.policy.PureNumberCeiling)
		}
		return ParsedTime{Minutes: n, OriginalInput: input}, nil
	}

	return ParsedTime{}, fmt.Errorf("%w: expected 90, 1h 30m, 1.5h or 01:30, got %q", ErrInvalidInput, trimmed)
}

// RoundToQuarterHour rounds minutes to the nearest rounding interval,
// halves rounding up. With the default policy: 7 -> 0, 8 -> 15, 23 -> 30.
func (p *Processor) RoundToQuarterHour(minutes int) int {
	interval := p.policy.RoundingInterval
	if interval <= 0 {
		return minutes
	}
	steps := math.Floor(float64(minutes)/float64(interval) + 0.5)
	return int(steps) * interval
}

// Validate applies the policy to a minute count.
func (p *Processor) Validate(minutes int) ValidationResult {
	if minutes <= 0 {
		return ValidationResult{}
	}

	if minutes > p.policy.MaxMinutes {
		return ValidationResult{
			Warning: fmt.Sprintf("Time entry exceeds the maximum of %d minutes (%s)",
				p.policy.MaxMinutes, p.Format(p.policy.MaxMinutes)),
		}
	}

	rounded := p.RoundToQuarterHour(minutes)
	if rounded != minutes {
		return ValidationResult{
			Valid:          true,
			RoundedMinutes: rounded,
			Warning: fmt.Sprintf("Rounded %s to %s (nearest %d minutes)",
				p.Format(minutes), p.Format(rounded), p.policy.RoundingInterval),
		}
	}

	return ValidationResult{Valid: true, RoundedMinutes: rounded}
}

// Format renders minutes as "45m", "2h" or "1h 30m".
func (p *Processor) Format(minutes int) string {
	return Format(minutes)
}

// RequiresConfirmation reports whether an entry is large enough to ask the
// user a second time before submitting.
func (p *Processor) RequiresConfirmation(minutes int) bool {
	return minutes >= p.policy.ConfirmationThreshold
}

// Format renders minutes as "45m", "2h" or "1h 30m".
func Format(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
