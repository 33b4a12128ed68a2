package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/xolan/tasktime/internal/service"
)

// ErrNotTerminal is returned by ReadSecret when stdin is not a terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	Services *service.Services
	Logger   *log.Logger

	// ReadSecret reads a line without echo. Nil, or ErrNotTerminal, falls
	// back to a plain line read from Stdin.
	ReadSecret func() (string, error)

	reader *bufio.Reader
}

// DefaultDeps creates a new Deps bound to the process streams.
// Services are created later, once flags are parsed.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stdin:      os.Stdin,
		Exit:       os.Exit,
		ReadSecret: readTerminalSecret,
	}
}

func readTerminalSecret() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNotTerminal
	}
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stdout)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadLine reads one line from Stdin without its line ending.
// ok is false when input ended before anything was read.
func (d *Deps) ReadLine() (line string, ok bool) {
	if d.reader == nil {
		d.reader = bufio.NewReader(d.Stdin)
	}
	s, err := d.reader.ReadString('\n')
	if err != nil && s == "" {
		return "", false
	}
	return strings.TrimRight(s, "\r\n"), true
}

// Prompt prints question and reads the answer.
func (d *Deps) Prompt(question string) (string, bool) {
	_, _ = fmt.Fprint(d.Stdout, question)
	return d.ReadLine()
}

// Confirm asks a yes/no question. Only "y" or "yes" confirm; anything
// else, including end of input, declines.
func (d *Deps) Confirm(question string) bool {
	answer, ok := d.Prompt(question + " [y/N]: ")
	if !ok {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// PromptSecret asks for a value without echo when possible.
func (d *Deps) PromptSecret(question string) (string, bool) {
	_, _ = fmt.Fprint(d.Stdout, question)
	if d.ReadSecret != nil {
		secret, err := d.ReadSecret()
		if err == nil {
			return secret, true
		}
		if !errors.Is(err, ErrNotTerminal) {
			return "", false
		}
	}
	return d.ReadLine()
}
