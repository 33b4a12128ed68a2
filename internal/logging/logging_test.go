package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		verbose  bool
		expected log.Level
	}{
		{"info", "info", false, log.InfoLevel},
		{"warn", "warn", false, log.WarnLevel},
		{"unknown falls back", "loud", false, log.InfoLevel},
		{"verbose wins", "error", true, log.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(&bytes.Buffer{}, tt.level, tt.verbose)
			if got := logger.GetLevel(); got != tt.expected {
				t.Errorf("level = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestNew_Output(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", false)

	logger.Debug("hidden")
	logger.Info("shown", "task", "ABC-1")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug line written at info level")
	}
	if !strings.Contains(out, Prefix) || !strings.Contains(out, "shown") || !strings.Contains(out, "ABC-1") {
		t.Errorf("output = %q", out)
	}
}
