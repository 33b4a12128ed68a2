// Package logging builds the diagnostic logger shared by commands and
// services. User-facing output does not go through it.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// Prefix is printed in front of every diagnostic line.
const Prefix = "tasktime"

// New returns a logger writing to w at the given level name.
// Unknown level names fall back to info. verbose forces debug and turns on
// timestamps and caller reporting.
func New(w io.Writer, level string, verbose bool) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           lvl,
		ReportTimestamp: verbose,
		ReportCaller:    verbose,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Prefix: Prefix})
}
