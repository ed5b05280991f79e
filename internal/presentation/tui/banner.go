package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

const bannerWidth = 50

// Console prints the launcher's status lines. Colors are dropped automatically
// when the writer is not a terminal.
type Console struct {
	out *termenv.Output
}

// NewConsole creates a console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{out: termenv.NewOutput(w)}
}

// Banner prints title between two rules.
func (c *Console) Banner(title string) {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.out.String(rule).Foreground(c.out.Profile.Color("#818cf8")))
	fmt.Fprintln(c.out, c.out.String(title).Bold())
	fmt.Fprintln(c.out, c.out.String(rule).Foreground(c.out.Profile.Color("#c084fc")))
	fmt.Fprintln(c.out)
}

// Step prints a numbered progress line, e.g. "[2/5] Activating...".
func (c *Console) Step(n, total int, msg string) {
	prefix := c.out.String(fmt.Sprintf("[%d/%d]", n, total)).Foreground(c.out.Profile.Color("#a78bfa"))
	fmt.Fprintf(c.out, "%s %s\n", prefix, msg)
}

// Info prints an indented detail line.
func (c *Console) Info(msg string) {
	fmt.Fprintf(c.out, "   %s\n", msg)
}

// Error prints a labeled error line.
func (c *Console) Error(label, msg string) {
	styled := c.out.String(label).Foreground(c.out.Profile.Color("#fb7185")).Bold()
	fmt.Fprintf(c.out, "\n%s %s\n", styled, msg)
}

// Closing prints the final banner.
func (c *Console) Closing(msg string) {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.out.String(rule).Foreground(c.out.Profile.Color("#818cf8")))
	fmt.Fprintln(c.out, msg)
	fmt.Fprintln(c.out, c.out.String(rule).Foreground(c.out.Profile.Color("#c084fc")))
}

// Writer exposes the underlying writer for prompts.
func (c *Console) Writer() io.Writer {
	return c.out
}
