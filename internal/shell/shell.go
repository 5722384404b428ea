// Package shell is the line-oriented terminal UI for interactive sessions.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Terminal reads lines from in and writes menus and replies to out.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer

	title *color.Color
	label *color.Color
	err   *color.Color
}

// New creates a Terminal.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:    bufio.NewReader(in),
		out:   out,
		title: color.New(color.FgCyan),
		label: color.New(color.FgGreen, color.Bold),
		err:   color.New(color.FgRed),
	}
}

// Choose prints a numbered list, then prompt, and returns the raw line typed.
func (t *Terminal) Choose(ctx context.Context, title string, items []string, prompt string) (string, error) {
	t.title.Fprintln(t.out, title)
	for i, item := range items {
		fmt.Fprintf(t.out, "%d: %s\n", i+1, item)
	}
	return t.ReadLine(ctx, prompt)
}

// ReadLine prints prompt and reads one line without its line terminator.
// A final line without a newline is returned; io.EOF is returned only when
// nothing was read.
func (t *Terminal) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Show prints an informational message.
func (t *Terminal) Show(msg string) {
	fmt.Fprintln(t.out, msg)
}

// ShowError prints an error message.
func (t *Terminal) ShowError(msg string) {
	t.err.Fprintln(t.out, msg)
}

// ShowReply prints assistant text under a label, followed by a blank line.
func (t *Terminal) ShowReply(label, text string) {
	fmt.Fprintln(t.out)
	t.label.Fprintln(t.out, label)
	fmt.Fprintln(t.out, text)
	fmt.Fprintln(t.out)
}
