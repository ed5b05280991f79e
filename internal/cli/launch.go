package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/launchpad/internal/config"
	"github.com/aretw0/launchpad/internal/i18n"
	"github.com/aretw0/launchpad/internal/metrics"
	"github.com/aretw0/launchpad/internal/presentation/tui"
	"github.com/aretw0/launchpad/pkg/adapters/process"
	"github.com/aretw0/launchpad/pkg/bootstrap"
	"github.com/aretw0/launchpad/pkg/ports"
	"github.com/aretw0/launchpad/pkg/venv"
	"github.com/google/uuid"
)

// RunOptions carries what the command line resolved before configuration is loaded.
type RunOptions struct {
	Dir        string
	ConfigFile string
	// Overrides are flag values the user set explicitly, keyed like launchpad.yaml.
	Overrides map[string]any
	// ProgramArgs are forwarded to the main program (everything after "--").
	ProgramArgs []string

	// Defaults to os.Stdin, os.Stdout, os.Stderr and os.Environ().
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Environ []string

	// Runner replaces the process runner (tests).
	Runner ports.CommandRunner
	// Pauser replaces the key-press prompt (tests).
	Pauser ports.Pauser
}

func (o *RunOptions) setDefaults() {
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Environ == nil {
		o.Environ = os.Environ()
	}
}

// Launch loads the configuration, runs the bootstrap sequence and returns the process exit code.
// Every outcome ends with the closing message and, when configured, a key-press pause.
func Launch(ctx context.Context, opts RunOptions) int {
	opts.setDefaults()

	cfg, err := config.Load(config.LoadOptions{
		Dir:       opts.Dir,
		File:      opts.ConfigFile,
		Environ:   opts.Environ,
		Overrides: opts.Overrides,
	})
	if err != nil {
		return configFailure(ctx, opts, err)
	}
	cat := i18n.Select(cfg.Lang, opts.Environ)

	extraEnv, err := cfg.EnvFileVars()
	if err != nil {
		return configFailure(ctx, opts, err)
	}

	runID := uuid.NewString()
	base := createLogger(cfg, opts.Stderr)
	logger := base.With("run_id", runID)
	logger.Debug("Configuration Loaded", "dir", cfg.Dir, "file", cfg.File, "venv", cfg.EnvDir, "manifest", cfg.Manifest)

	console := tui.NewConsole(opts.Stdout)
	if cfg.Banner {
		console.Banner(cat.T(i18n.MsgTitle))
	}

	runner := opts.Runner
	if runner == nil {
		runner = process.NewRunner(
			process.WithBaseDir(cfg.Dir),
			process.WithStdin(opts.Stdin),
			process.WithStdout(opts.Stdout),
			process.WithStderr(opts.Stderr),
			process.WithLogger(logger),
		)
	}

	recorder := metrics.NewRecorder()
	layout := venv.NewLayout(cfg.Path(cfg.EnvDir), "")
	b := bootstrap.New(append(bootstrapOptions(cfg, opts.ProgramArgs),
		bootstrap.WithBaseEnv(opts.Environ),
		bootstrap.WithExtraEnv(extraEnv),
		bootstrap.WithRunner(runner),
		bootstrap.WithLogger(base),
		bootstrap.WithRunID(runID),
		bootstrap.WithLifecycleHooks(createConsoleHooks(console, cat, layout, cfg.EnvDir, cfg.Manifest, cfg.Entry)),
		bootstrap.WithLifecycleHooks(createDebugHooks(logger)),
		bootstrap.WithLifecycleHooks(recorder.Hooks()),
	)...)

	report, runErr := b.Run(ctx)

	recorder.ObserveReport(report)
	if cfg.MetricsFile != "" {
		if err := recorder.WriteTextfile(cfg.Path(cfg.MetricsFile)); err != nil {
			logger.Warn("Failed to write metrics", "path", cfg.MetricsFile, "err", err)
		}
	}

	code := ExitCodeFor(runErr)
	switch {
	case code == ExitInterrupted:
		console.Info(cat.T(i18n.MsgInterrupted))
		logger.Info("Bootstrap Interrupted")
		return code
	case runErr != nil:
		console.Error(cat.T(i18n.MsgErrorLabel), describe(runErr, cat))
		if cfg.Debug {
			console.Info(runErr.Error())
		}
		logger.Error("Bootstrap Failed", "err", runErr)
	default:
		if report.Launched && report.ProgramExitCode != 0 {
			console.Info(cat.T(i18n.MsgProgramExit, report.ProgramExitCode))
		}
		if cfg.PropagateExitCode {
			code = programExitCode(report)
		}
		logger.Info("Bootstrap Finished", "created", report.Created, "program_exit_code", report.ProgramExitCode)
	}

	console.Closing(cat.T(i18n.MsgDone))
	pause(ctx, opts, cfg, cat)
	return code
}

func bootstrapOptions(cfg config.Config, programArgs []string) []bootstrap.Option {
	args := cfg.ProgramArgs
	if len(programArgs) > 0 {
		args = programArgs
	}
	return []bootstrap.Option{
		bootstrap.WithDir(cfg.Dir),
		bootstrap.WithEnvDir(cfg.EnvDir),
		bootstrap.WithManifest(cfg.Manifest),
		bootstrap.WithEntry(cfg.Entry),
		bootstrap.WithHostPython(cfg.Python),
		bootstrap.WithPipArgs(cfg.PipArgs...),
		bootstrap.WithProgramArgs(args...),
	}
}

// configFailure reports a configuration error the same way as a bootstrap failure.
func configFailure(ctx context.Context, opts RunOptions, err error) int {
	cat := i18n.Select(stringOverride(opts.Overrides, "lang"), opts.Environ)
	console := tui.NewConsole(opts.Stdout)
	console.Error(cat.T(i18n.MsgErrorLabel), cat.T(i18n.MsgConfigError, err))

	cfg := config.Config{Pause: config.PauseAuto, CI: config.DetectCI(opts.Environ)}
	if mode := stringOverride(opts.Overrides, "pause"); mode != "" {
		cfg.Pause = config.PauseMode(mode)
	}
	pause(ctx, opts, cfg, cat)
	return ExitFailure
}

func pause(ctx context.Context, opts RunOptions, cfg config.Config, cat i18n.Catalog) {
	if !cfg.ShouldPause(tui.IsInteractive(opts.Stdin)) {
		return
	}
	p := opts.Pauser
	if p == nil {
		p = tui.NewKeyPauser(opts.Stdin, opts.Stdout)
	}
	if err := p.Pause(ctx, cat.T(i18n.MsgPressAnyKey)); err != nil {
		fmt.Fprintln(opts.Stderr, err)
	}
}
