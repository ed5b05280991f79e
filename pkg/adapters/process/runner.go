package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/aretw0/launchpad/pkg/ports"
)

// DefaultGracePeriod is how long a cancelled child gets to exit after the interrupt before it is killed.
const DefaultGracePeriod = 5 * time.Second

// Runner implements ports.CommandRunner by spawning local processes.
// Children inherit the console unless other streams are configured.
type Runner struct {
	baseDir     string
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	gracePeriod time.Duration
	logger      *slog.Logger
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithBaseDir sets the working directory for commands that don't set their own.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithStdin sets the child's standard input.
func WithStdin(in io.Reader) RunnerOption {
	return func(r *Runner) {
		r.stdin = in
	}
}

// WithStdout sets the child's standard output.
func WithStdout(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.stdout = w
	}
}

// WithStderr sets the child's standard error.
func WithStderr(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.stderr = w
	}
}

// WithGracePeriod sets the delay between interrupting and killing a cancelled child.
func WithGracePeriod(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.gracePeriod = d
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a new process runner attached to the current console.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		gracePeriod: DefaultGracePeriod,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the command and waits for it to exit.
func (r *Runner) Run(ctx context.Context, c ports.Command) (ports.Result, error) {
	if c.Name == "" {
		return ports.Result{ExitCode: -1}, errors.New("command is required")
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if cmd.Dir == "" {
		cmd.Dir = r.baseDir
	}
	if c.Env != nil {
		cmd.Env = c.Env
	}
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	// Interrupt first; the child shares the console and usually saw the Ctrl+C already.
	if runtime.GOOS != "windows" {
		cmd.Cancel = func() error {
			return cmd.Process.Signal(os.Interrupt)
		}
	}
	cmd.WaitDelay = r.gracePeriod

	r.logger.Debug("Process Start", "command", c.Name, "args", c.Args, "dir", cmd.Dir)
	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			r.logger.Debug("Process Cancelled", "command", c.Name, "duration", elapsed)
			return ports.Result{ExitCode: exitCodeOf(err)}, fmt.Errorf("run %s: %w", c.Name, ctx.Err())
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			r.logger.Debug("Process Exit", "command", c.Name, "exit_code", exitErr.ExitCode(), "duration", elapsed)
			return ports.Result{ExitCode: exitErr.ExitCode()}, nil
		}

		return ports.Result{ExitCode: -1}, fmt.Errorf("run %s: %w", c.Name, err)
	}

	r.logger.Debug("Process Exit", "command", c.Name, "exit_code", 0, "duration", elapsed)
	return ports.Result{ExitCode: 0}, nil
}

func exitCodeOf(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
