package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDeps_PromptSequence(t *testing.T) {
	var out bytes.Buffer
	d := &Deps{Stdout: &out, Stdin: strings.NewReader("1h 30m\r\ny\nfixing login\n")}

	answer, ok := d.Prompt("Time: ")
	if !ok || answer != "1h 30m" {
		t.Errorf("Prompt = %q, %v", answer, ok)
	}
	if !d.Confirm("Submit?") {
		t.Error("Confirm should accept y")
	}
	note, ok := d.Prompt("Note: ")
	if !ok || note != "fixing login" {
		t.Errorf("Prompt = %q, %v", note, ok)
	}
	if _, ok := d.ReadLine(); ok {
		t.Error("ReadLine at end of input should report !ok")
	}
	if !strings.Contains(out.String(), "Submit? [y/N]: ") {
		t.Errorf("output = %q", out.String())
	}
}

func TestDeps_Confirm(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" y \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		d := &Deps{Stdout: &bytes.Buffer{}, Stdin: strings.NewReader(tt.input)}
		if got := d.Confirm("Continue?"); got != tt.expected {
			t.Errorf("Confirm with %q = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestDeps_PromptSecret(t *testing.T) {
	d := &Deps{
		Stdout:     &bytes.Buffer{},
		Stdin:      strings.NewReader("from-stdin\n"),
		ReadSecret: func() (string, error) { return "from-terminal", nil },
	}
	if got, ok := d.PromptSecret("Token: "); !ok || got != "from-terminal" {
		t.Errorf("PromptSecret = %q, %v", got, ok)
	}

	d.ReadSecret = func() (string, error) { return "", ErrNotTerminal }
	if got, ok := d.PromptSecret("Token: "); !ok || got != "from-stdin" {
		t.Errorf("PromptSecret fallback = %q, %v", got, ok)
	}

	d.ReadSecret = func() (string, error) { return "", errors.New("tty gone") }
	if _, ok := d.PromptSecret("Token: "); ok {
		t.Error("PromptSecret should fail on read errors")
	}
}
