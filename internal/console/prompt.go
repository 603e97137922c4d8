// Package console is the terminal side of readinglog: prompts, tables and
// the interactive menu. Nothing here touches the library file directly.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Prompter reads one line of input per question
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading from in and echoing questions to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints label and returns the trimmed answer. A final line without a
// newline is still returned; io.EOF is returned only when nothing was read.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks the user to retype title to approve a deletion
func (p *Prompter) Confirm(title string) (string, error) {
	return p.Ask(fmt.Sprintf("To confirm deletion please retype the title '%s': ", title))
}

// IsInteractive reports whether f is attached to a terminal
func IsInteractive(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SplitList splits comma-separated input. Blank pieces are left for the
// label constructors to drop.
func SplitList(input string) []string {
	return strings.Split(strings.TrimSpace(input), ",")
}
