package prompter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ErrCancelled is returned when the user declines a confirmation.
var ErrCancelled = errors.New("cancelled")

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

// New creates a prompter over arbitrary streams. Hidden input is only
// available when in is a terminal.
func New(in io.Reader, out io.Writer) *Prompter {
	fd := -1
	if f, ok := in.(*os.File); ok {
		fd = int(f.Fd())
	}
	return &Prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// Stdio prompts on the process's terminal.
func Stdio() *Prompter {
	return New(os.Stdin, os.Stderr)
}

// Interactive reports whether input comes from a terminal.
func (p *Prompter) Interactive() bool {
	return p.fd >= 0 && term.IsTerminal(p.fd)
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// String prompts for a line of input.
func (p *Prompter) String(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// StringDefault prompts for a line and returns def when it is left empty.
func (p *Prompter) StringDefault(label, def string) (string, error) {
	if def != "" {
		label = fmt.Sprintf("%s[%s] ", label, def)
	}
	s, err := p.String(label)
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// Secret prompts for input without echo. Non-terminal input is read as a
// plain line.
func (p *Prompter) Secret(label string) (string, error) {
	if !p.Interactive() {
		return p.String(label)
	}
	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Confirm prompts for yes/no.
func (p *Prompter) Confirm(label string) (bool, error) {
	fmt.Fprint(p.out, label+" (y/n) ")
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	response := strings.TrimSpace(strings.ToLower(line))
	return response == "y" || response == "yes", nil
}

// Select prompts for one of options and returns its index.
func (p *Prompter) Select(label string, options []string) (int, error) {
	fmt.Fprintln(p.out, label)
	for i, opt := range options {
		fmt.Fprintf(p.out, "%d) %s\n", i+1, opt)
	}
	fmt.Fprint(p.out, "Select option: ")

	line, err := p.readLine()
	if err != nil {
		return -1, err
	}
	selection, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return -1, fmt.Errorf("invalid selection: %w", err)
	}
	if selection < 1 || selection > len(options) {
		return -1, fmt.Errorf("invalid selection")
	}
	return selection - 1, nil
}

// Multiline reads lines until an empty line or maxLines.
func (p *Prompter) Multiline(label string, maxLines int) (string, error) {
	fmt.Fprintf(p.out, "%s (empty line to finish):\n", label)

	var lines []string
	for i := 0; i < maxLines; i++ {
		line, err := p.readLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}
