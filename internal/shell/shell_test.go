package shell

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func newTerminal(input string) (*Terminal, *bytes.Buffer) {
	color.NoColor = true
	var out bytes.Buffer
	return New(strings.NewReader(input), &out), &out
}

func TestChoosePrintsNumberedItems(t *testing.T) {
	term, out := newTerminal("2\n")

	got, err := term.Choose(context.Background(), "Select a system prompt file by entering its number:", []string{"a.txt", "b.txt"}, "Enter the number: ")
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if got != "2" {
		t.Fatalf("expected raw '2', got %q", got)
	}
	want := "Select a system prompt file by entering its number:\n1: a.txt\n2: b.txt\nEnter the number: "
	if out.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", out.String(), want)
	}
}

func TestChooseUsesGivenPrompt(t *testing.T) {
	term, out := newTerminal("1\n")
	if _, err := term.Choose(context.Background(), "Pick one:", []string{"Exit conversation"}, "Enter your choice: "); err != nil {
		t.Fatalf("choose: %v", err)
	}
	if out.String() != "Pick one:\n1: Exit conversation\nEnter your choice: " {
		t.Fatalf("unexpected prompt: %q", out.String())
	}
}

func TestReadLineKeepsRawText(t *testing.T) {
	term, _ := newTerminal("  spaced input  \r\nlast")

	got, err := term.ReadLine(context.Background(), "> ")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "  spaced input  " {
		t.Fatalf("unexpected line: %q", got)
	}

	got, err = term.ReadLine(context.Background(), "> ")
	if err != nil {
		t.Fatalf("read last: %v", err)
	}
	if got != "last" {
		t.Fatalf("unexpected last line: %q", got)
	}

	if _, err := term.ReadLine(context.Background(), "> "); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestReadLineCancelled(t *testing.T) {
	term, out := newTerminal("ignored\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := term.ReadLine(ctx, "> "); err == nil {
		t.Fatal("expected context error")
	}
	if out.Len() != 0 {
		t.Fatalf("prompt printed after cancel: %q", out.String())
	}
}

func TestShowReply(t *testing.T) {
	term, out := newTerminal("")
	term.ShowReply("Response:", "hello")
	if out.String() != "\nResponse:\nhello\n\n" {
		t.Fatalf("unexpected reply output: %q", out.String())
	}
}
