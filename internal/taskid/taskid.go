// Package taskid finds tracker task identifiers (e.g., "ABC-123") in git
// branch names.
package taskid

import (
	"fmt"
	"regexp"
)

// DefaultPattern matches uppercase letters, a hyphen and digits.
const DefaultPattern = `[A-Z]+-\d+`

// Extractor finds task IDs using a configurable pattern.
type Extractor struct {
	pattern *regexp.Regexp
	exact   *regexp.Regexp
}

// New compiles pattern into an Extractor. An empty pattern uses DefaultPattern.
func New(pattern string) (*Extractor, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid task id pattern %q: %w", pattern, err)
	}
	exact, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("invalid task id pattern %q: %w", pattern, err)
	}

	return &Extractor{pattern: re, exact: exact}, nil
}

// MustDefault returns an Extractor for DefaultPattern.
func MustDefault() *Extractor {
	e, err := New(DefaultPattern)
	if err != nil {
		panic(err)
	}
	return e
}

// Extract returns the first task ID found in branch.
// Example: "feature/ABC-123-login-form" -> ("ABC-123", true)
func (e *Extractor) Extract(branch string) (string, bool) {
	match := e.pattern.FindString(branch)
	if match == "" {
		return "", false
	}
	return match, true
}

// IsValid reports whether id is a task ID in its entirety.
func (e *Extractor) IsValid(id string) bool {
	return e.exact.MatchString(id)
}

// Pattern returns the source pattern.
func (e *Extractor) Pattern() string {
	return e.pattern.String()
}
