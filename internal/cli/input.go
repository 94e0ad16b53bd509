// FILE: internal/cli/input.go
package cli

import (
	"bufio"
	"io"
	"os"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// LineReader is the command source of the CLI
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewReadline returns an interactive reader with line editing and history.
// An empty historyFile disables history persistence.
func NewReadline(historyFile string) (LineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}
	return rl, nil
}

// scanReader reads plain lines, for pipes and tests. Prompts go to out.
type scanReader struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

// NewScanReader reads commands from r, echoing prompts to out
func NewScanReader(r io.Reader, out io.Writer) LineReader {
	return &scanReader{scanner: bufio.NewScanner(r), out: out}
}

func (s *scanReader) Readline() (string, error) {
	if s.out != nil && s.prompt != "" {
		io.WriteString(s.out, s.prompt)
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

func (s *scanReader) SetPrompt(prompt string) {
	s.prompt = prompt
}

func (s *scanReader) Close() error {
	return nil
}
