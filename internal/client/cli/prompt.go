package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// prompter reads answers from in. When in is a terminal the prompt is shown
// on w and masked answers are read without echo; otherwise lines are read
// as-is, which lets scripts pipe passwords in.
type prompter struct {
	in     io.Reader
	w      io.Writer
	reader *bufio.Reader
}

func newPrompter(in io.Reader, w io.Writer) *prompter {
	return &prompter{in: in, w: w, reader: bufio.NewReader(in)}
}

func (p *prompter) terminalFd() (int, bool) {
	f, ok := p.in.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, isTerminal(fd)
}

// prompt returns one line of input without its line ending. The caller should
// wipe masked answers once used.
func (p *prompter) prompt(label string, mask bool) ([]byte, error) {
	fd, tty := p.terminalFd()
	if tty {
		if _, err := fmt.Fprint(p.w, label); err != nil {
			return nil, err
		}
	}

	if mask && tty {
		pw, err := readPassword(fd)
		fmt.Fprintln(p.w)
		if err != nil {
			return nil, err
		}
		return pw, nil
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
