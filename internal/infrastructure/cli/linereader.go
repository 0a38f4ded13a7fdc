package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/doeshing/termbot/internal/ports"
)

// NewLineReader returns an editing line reader when stdin is a terminal and a
// plain buffered reader otherwise (pipes, redirected files, tests).
func NewLineReader(in *os.File, out io.Writer) ports.LineReader {
	if in != nil && term.IsTerminal(int(in.Fd())) {
		return NewLinerReader()
	}
	return NewPlainReader(in, out)
}

// LinerReader reads lines with history recall and Ctrl+C / Ctrl+D detection.
type LinerReader struct {
	state *liner.State
}

// NewLinerReader takes over the controlling terminal until Close is called.
func NewLinerReader() *LinerReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &LinerReader{state: state}
}

// ReadLine implements ports.LineReader. Non-empty lines are added to the
// in-memory recall list; nothing is persisted.
func (r *LinerReader) ReadLine(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	switch {
	case errors.Is(err, liner.ErrPromptAborted):
		return "", ports.ErrInterrupted
	case err != nil:
		return "", err
	}
	if prompt != "" && strings.TrimSpace(line) != "" {
		r.state.AppendHistory(line)
	}
	return line, nil
}

// Close restores the terminal mode.
func (r *LinerReader) Close() error {
	return r.state.Close()
}

// PlainReader reads newline-terminated lines from any reader.
type PlainReader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlainReader builds a reader; nil arguments default to stdio.
func NewPlainReader(in io.Reader, out io.Writer) *PlainReader {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &PlainReader{in: bufio.NewReader(in), out: out}
}

// ReadLine implements ports.LineReader. A final line without a newline is
// returned before io.EOF.
func (r *PlainReader) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(r.out, prompt)
	}
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close is a no-op.
func (r *PlainReader) Close() error {
	return nil
}

var (
	_ ports.LineReader = (*LinerReader)(nil)
	_ ports.LineReader = (*PlainReader)(nil)
)
