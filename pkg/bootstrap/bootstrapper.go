package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/launchpad/pkg/adapters/process"
	"github.com/aretw0/launchpad/pkg/domain"
	"github.com/aretw0/launchpad/pkg/ports"
	"github.com/aretw0/launchpad/pkg/venv"
)

// Bootstrapper prepares a project's virtual environment and runs its main program.
type Bootstrapper struct {
	dir         string
	envDir      string
	manifest    string
	entry       string
	hostPython  string
	pipArgs     []string
	programArgs []string
	goos        string
	baseEnv     []string
	extraEnv    map[string]string
	runner      ports.CommandRunner
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	runID       string
}

// New creates a Bootstrapper. Without options it bootstraps ./venv from
// ./requirements.txt and runs ./src/main.py with real processes.
func New(opts ...Option) *Bootstrapper {
	b := &Bootstrapper{
		dir:      ".",
		envDir:   DefaultEnvDir,
		manifest: DefaultManifest,
		entry:    DefaultEntry,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.hostPython == "" {
		b.hostPython = venv.DefaultHostPython(b.goos)
	}
	if b.runner == nil {
		b.runner = process.NewRunner(process.WithBaseDir(b.dir))
	}
	if b.logger == nil {
		b.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if b.runID != "" {
		b.logger = b.logger.With("run_id", b.runID)
	}
	return b
}

// Layout returns the environment layout the bootstrapper operates on.
func (b *Bootstrapper) Layout() venv.Layout {
	return venv.NewLayout(b.path(b.envDir), b.goos)
}

// Run performs the bootstrap sequence. It stops at the first failing step and
// returns a *domain.StepError describing it. The main program's exit status is
// reported in the Report and never turned into an error.
func (b *Bootstrapper) Run(ctx context.Context) (domain.Report, error) {
	report := domain.Report{ProgramExitCode: -1}
	layout := b.Layout()

	var exists bool
	err := b.step(ctx, &report, domain.StepCheckEnv, func() (bool, error) {
		var err error
		exists, err = layout.Exists()
		if err != nil {
			return false, domain.NewStepError(domain.KindEnvironmentCreationFailed, domain.StepCheckEnv, b.envDir, -1, err)
		}
		b.logger.Debug("Environment Checked", "path", layout.Root, "exists", exists)
		return false, nil
	})
	if err != nil {
		return report, err
	}

	err = b.step(ctx, &report, domain.StepCreateEnv, func() (bool, error) {
		if exists {
			return true, nil
		}
		return false, b.createEnv(ctx)
	})
	if err != nil {
		return report, err
	}
	report.Created = !exists

	var ec venv.ExecContext
	err = b.step(ctx, &report, domain.StepActivateEnv, func() (bool, error) {
		var err error
		ec, err = venv.Activate(layout.Root, b.environ(), b.goos)
		if err != nil {
			return false, domain.NewStepError(domain.KindEnvironmentActivationFailed, domain.StepActivateEnv, b.envDir, -1, err)
		}
		ec = ec.With(b.extraEnv)
		b.logger.Debug("Environment Activated", "python", ec.Python())
		return false, nil
	})
	if err != nil {
		return report, err
	}

	err = b.step(ctx, &report, domain.StepCheckManifest, func() (bool, error) {
		return false, b.checkManifest()
	})
	if err != nil {
		return report, err
	}

	err = b.step(ctx, &report, domain.StepInstallDeps, func() (bool, error) {
		return false, b.installDeps(ctx, ec)
	})
	if err != nil {
		return report, err
	}
	report.Installed = true

	err = b.step(ctx, &report, domain.StepRunProgram, func() (bool, error) {
		code, launched, err := b.runProgram(ctx, ec)
		report.ProgramExitCode = code
		report.Launched = launched
		return false, err
	})
	return report, err
}

func (b *Bootstrapper) createEnv(ctx context.Context) error {
	cmd := ports.Command{
		Name: b.hostPython,
		Args: []string{"-m", "venv", b.envDir},
		Dir:  b.dir,
		Env:  b.baseEnv,
	}
	b.logger.Info("Creating Environment", "python", b.hostPython, "path", b.envDir)

	res, err := b.runner.Run(ctx, cmd)
	if err != nil {
		return domain.NewStepError(domain.KindEnvironmentCreationFailed, domain.StepCreateEnv, b.envDir, -1, err)
	}
	if !res.Success() {
		return domain.NewStepError(domain.KindEnvironmentCreationFailed, domain.StepCreateEnv, b.envDir, res.ExitCode, nil)
	}
	return nil
}

func (b *Bootstrapper) checkManifest() error {
	info, err := os.Stat(b.path(b.manifest))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		return domain.NewStepError(domain.KindManifestMissing, domain.StepCheckManifest, b.manifest, -1, err)
	}
	if info.IsDir() {
		return domain.NewStepError(domain.KindManifestMissing, domain.StepCheckManifest, b.manifest, -1, errors.New("is a directory"))
	}
	return nil
}

func (b *Bootstrapper) installDeps(ctx context.Context, ec venv.ExecContext) error {
	args := append([]string{"-m", "pip", "install", "-r", b.manifest}, b.pipArgs...)
	b.logger.Info("Installing Dependencies", "manifest", b.manifest)

	res, err := b.runner.Run(ctx, ports.Command{Name: ec.Python(), Args: args, Dir: b.dir, Env: ec.Env})
	if err != nil {
		return domain.NewStepError(domain.KindDependencyInstallFailed, domain.StepInstallDeps, b.manifest, -1, err)
	}
	if !res.Success() {
		return domain.NewStepError(domain.KindDependencyInstallFailed, domain.StepInstallDeps, b.manifest, res.ExitCode, nil)
	}
	return nil
}

// runProgram is the terminal step: only cancellation is an error.
func (b *Bootstrapper) runProgram(ctx context.Context, ec venv.ExecContext) (int, bool, error) {
	args := append([]string{b.entry}, b.programArgs...)
	b.logger.Info("Launching Program", "entry", b.entry)

	res, err := b.runner.Run(ctx, ports.Command{Name: ec.Python(), Args: args, Dir: b.dir, Env: ec.Env})
	if err != nil {
		if ctx.Err() != nil {
			return res.ExitCode, true, fmt.Errorf("%s: %w", domain.StepRunProgram, err)
		}
		b.logger.Warn("Program Failed To Start", "entry", b.entry, "err", err)
		return -1, false, nil
	}
	if !res.Success() {
		b.logger.Warn("Program Exited Non-Zero", "entry", b.entry, "exit_code", res.ExitCode)
	}
	return res.ExitCode, true, nil
}

// step runs fn as one stage of the sequence, recording it and firing hooks.
// fn reports whether the stage was skipped.
func (b *Bootstrapper) step(ctx context.Context, report *domain.Report, step domain.Step, fn func() (bool, error)) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", step, err)
	}

	start := time.Now()
	if b.hooks.OnStepStart != nil {
		b.hooks.OnStepStart(ctx, &domain.StepEvent{Timestamp: start, RunID: b.runID, Step: step})
	}

	skipped, err := fn()
	elapsed := time.Since(start)
	report.Steps = append(report.Steps, domain.StepResult{Step: step, Skipped: skipped, Duration: elapsed, Err: err})

	if b.hooks.OnStepFinish != nil {
		b.hooks.OnStepFinish(ctx, &domain.StepEvent{
			Timestamp: time.Now(),
			RunID:     b.runID,
			Step:      step,
			Skipped:   skipped,
			Duration:  elapsed,
			Err:       err,
		})
	}
	if err != nil {
		b.logger.Debug("Step Failed", "step", step, "err", err)
	}
	return err
}

func (b *Bootstrapper) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(b.dir, p)
}

func (b *Bootstrapper) environ() []string {
	if b.baseEnv != nil {
		return b.baseEnv
	}
	return os.Environ()
}
