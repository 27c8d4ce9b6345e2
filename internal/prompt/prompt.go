// Package prompt implements the interactive prompt collaborator on top of a
// plain reader/writer pair so tests can script the whole dialogue.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(r), out: w}
}

// Line prints the label and returns one trimmed input line.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Choice renders a numbered option list and reads until a valid number
// arrives. Enter picks def.
func (p *Prompter) Choice(label string, options []string, def int) (int, error) {
	if label != "" {
		fmt.Fprintln(p.out, label)
	}
	for i, opt := range options {
		if i == def {
			fmt.Fprintf(p.out, "  %d) %s [DEFAULT]\n", i, opt)
		} else {
			fmt.Fprintf(p.out, "  %d) %s\n", i, opt)
		}
	}
	for {
		line, err := p.Line("Your choice (number): ")
		if err != nil {
			return 0, err
		}
		if line == "" {
			return def, nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 || n >= len(options) {
			fmt.Fprintf(p.out, "Invalid number. Pick 0 to %d.\n", len(options)-1)
			continue
		}
		return n, nil
	}
}

// YesNo asks a yes/no question as a two-option choice.
func (p *Prompter) YesNo(label string, def bool) (bool, error) {
	d := 0
	if !def {
		d = 1
	}
	n, err := p.Choice(label, []string{"Yes", "No"}, d)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}
