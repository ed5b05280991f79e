package bootstrap

import (
	"github.com/aretw0/launchpad/pkg/domain"
)

// PlannedStep is one stage of a run as it would happen now.
type PlannedStep struct {
	Step domain.Step
	// Command is the subprocess the step would spawn, if any.
	Command []string
	// Skip is true when the step would be a no-op (e.g. the environment already exists).
	Skip bool
	// Blocker is the error the step would fail with, as far as can be told without running anything.
	Blocker error
}

// Plan describes the run without spawning anything. It stops at the first step that
// is known to fail; failures only a subprocess can reveal are not predicted.
func (b *Bootstrapper) Plan() []PlannedStep {
	layout := b.Layout()
	plan := make([]PlannedStep, 0, len(domain.Sequence))

	exists, err := layout.Exists()
	if err != nil {
		return append(plan, PlannedStep{
			Step:    domain.StepCheckEnv,
			Blocker: domain.NewStepError(domain.KindEnvironmentCreationFailed, domain.StepCheckEnv, b.envDir, -1, err),
		})
	}
	plan = append(plan,
		PlannedStep{Step: domain.StepCheckEnv},
		PlannedStep{
			Step:    domain.StepCreateEnv,
			Command: []string{b.hostPython, "-m", "venv", b.envDir},
			Skip:    exists,
		},
		PlannedStep{Step: domain.StepActivateEnv},
	)

	if err := b.checkManifest(); err != nil {
		return append(plan, PlannedStep{Step: domain.StepCheckManifest, Blocker: err})
	}

	python := layout.Python
	install := append([]string{python, "-m", "pip", "install", "-r", b.manifest}, b.pipArgs...)
	run := append([]string{python, b.entry}, b.programArgs...)
	return append(plan,
		PlannedStep{Step: domain.StepCheckManifest},
		PlannedStep{Step: domain.StepInstallDeps, Command: install},
		PlannedStep{Step: domain.StepRunProgram, Command: run},
	)
}
