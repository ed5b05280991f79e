package ports

import "context"

// Command describes a subprocess invocation.
type Command struct {
	// Name is the executable, either a path or a name resolved against PATH in Env.
	Name string
	Args []string
	// Dir is the working directory. Empty means the runner's default.
	Dir string
	// Env is the complete environment for the child. Nil inherits the runner's.
	Env []string
}

// Result is the outcome of a subprocess that ran to completion.
type Result struct {
	ExitCode int
}

// Success reports whether the subprocess exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// CommandRunner runs a subprocess and waits for it.
// A non-zero exit status is reported in Result with a nil error;
// an error means the subprocess could not be started or waited on.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}
