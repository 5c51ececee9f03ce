package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter reads answers from the terminal without echo, or line by line
// from a pipe.
type prompter struct {
	in     io.Reader
	errOut io.Writer
	lines  *bufio.Reader
}

func newPrompter(in io.Reader, errOut io.Writer) *prompter {
	if in == nil {
		in = os.Stdin
	}
	return &prompter{in: in, errOut: errOut}
}

func (p *prompter) terminal() (*os.File, bool) {
	f, ok := p.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil, false
	}
	return f, true
}

// secret asks for a value that is not echoed.
func (p *prompter) secret(label string) (string, error) {
	if f, ok := p.terminal(); ok {
		fmt.Fprintf(p.errOut, "%s: ", label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.errOut)
		if err != nil {
			return "", fmt.Errorf("could not read %s: %w", strings.ToLower(label), err)
		}
		return string(b), nil
	}
	return p.line()
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func (p *prompter) confirm(question string) (bool, error) {
	fmt.Fprintf(p.errOut, "%s [y/N]: ", question)
	answer, err := p.line()
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

func (p *prompter) line() (string, error) {
	if p.lines == nil {
		p.lines = bufio.NewReader(p.in)
	}
	s, err := p.lines.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		if errors.Is(err, io.EOF) {
			return "", errors.New("no input")
		}
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}
