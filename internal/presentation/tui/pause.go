package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// KeyPauser waits for a single key-press on a terminal, or for a line
// (or end of input) on anything else.
type KeyPauser struct {
	in  io.Reader
	out io.Writer
}

// NewKeyPauser creates a pauser reading in and prompting on out.
func NewKeyPauser(in io.Reader, out io.Writer) *KeyPauser {
	return &KeyPauser{in: in, out: out}
}

// Pause prints prompt and blocks until a key is pressed or ctx is done.
func (p *KeyPauser) Pause(ctx context.Context, prompt string) error {
	fmt.Fprint(p.out, prompt)

	done := make(chan error, 1)
	if fd, ok := terminalFd(p.in); ok {
		state, err := term.MakeRaw(fd)
		if err == nil {
			defer term.Restore(fd, state)
		}
		go func() {
			buf := make([]byte, 1)
			_, err := p.in.Read(buf)
			done <- err
		}()
	} else {
		go func() {
			_, err := bufio.NewReader(p.in).ReadString('\n')
			done <- err
		}()
	}

	select {
	case err := <-done:
		fmt.Fprintln(p.out)
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return ctx.Err()
	}
}

// IsInteractive reports whether r is a terminal.
func IsInteractive(r io.Reader) bool {
	_, ok := terminalFd(r)
	return ok
}

func terminalFd(r io.Reader) (int, bool) {
	f, ok := r.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}
