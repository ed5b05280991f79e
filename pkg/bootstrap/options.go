package bootstrap

import (
	"log/slog"

	"github.com/aretw0/launchpad/pkg/domain"
	"github.com/aretw0/launchpad/pkg/ports"
)

// Default locations, relative to the project directory.
const (
	DefaultEnvDir   = "venv"
	DefaultManifest = "requirements.txt"
	DefaultEntry    = "src/main.py"
)

// Option defines a functional option for configuring the Bootstrapper.
type Option func(*Bootstrapper)

// WithDir sets the project directory all relative paths resolve against.
func WithDir(dir string) Option {
	return func(b *Bootstrapper) {
		b.dir = dir
	}
}

// WithEnvDir sets the virtual environment directory.
func WithEnvDir(path string) Option {
	return func(b *Bootstrapper) {
		b.envDir = path
	}
}

// WithManifest sets the dependency manifest.
func WithManifest(path string) Option {
	return func(b *Bootstrapper) {
		b.manifest = path
	}
}

// WithEntry sets the main program's entry point.
func WithEntry(path string) Option {
	return func(b *Bootstrapper) {
		b.entry = path
	}
}

// WithHostPython sets the interpreter used to create the environment.
func WithHostPython(python string) Option {
	return func(b *Bootstrapper) {
		b.hostPython = python
	}
}

// WithPipArgs appends extra arguments to the install command.
func WithPipArgs(args ...string) Option {
	return func(b *Bootstrapper) {
		b.pipArgs = append(b.pipArgs, args...)
	}
}

// WithProgramArgs sets the arguments forwarded to the main program.
func WithProgramArgs(args ...string) Option {
	return func(b *Bootstrapper) {
		b.programArgs = args
	}
}

// WithGOOS overrides the operating system the environment layout is resolved for.
func WithGOOS(goos string) Option {
	return func(b *Bootstrapper) {
		b.goos = goos
	}
}

// WithBaseEnv sets the environment activation starts from.
// By default it is the current process environment.
func WithBaseEnv(env []string) Option {
	return func(b *Bootstrapper) {
		b.baseEnv = env
	}
}

// WithExtraEnv overlays variables on the activated environment (e.g. from a .env file).
func WithExtraEnv(vars map[string]string) Option {
	return func(b *Bootstrapper) {
		b.extraEnv = vars
	}
}

// WithRunner configures the strategy for spawning subprocesses.
func WithRunner(r ports.CommandRunner) Option {
	return func(b *Bootstrapper) {
		b.runner = r
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(b *Bootstrapper) {
		b.hooks = b.hooks.Merge(hooks)
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bootstrapper) {
		b.logger = logger
	}
}

// WithRunID sets the correlation id attached to events and log records.
func WithRunID(id string) Option {
	return func(b *Bootstrapper) {
		b.runID = id
	}
}
