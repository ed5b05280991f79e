package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/launchpad/internal/i18n"
	"github.com/aretw0/launchpad/internal/presentation/tui"
	"github.com/aretw0/launchpad/pkg/domain"
	"github.com/aretw0/launchpad/pkg/venv"
)

// progressSteps are the steps shown as numbered lines; creation is reported under the check.
var progressSteps = map[domain.Step]int{
	domain.StepCheckEnv:      1,
	domain.StepActivateEnv:   2,
	domain.StepCheckManifest: 3,
	domain.StepInstallDeps:   4,
	domain.StepRunProgram:    5,
}

// createConsoleHooks prints localized progress lines as the bootstrap advances.
func createConsoleHooks(console *tui.Console, cat i18n.Catalog, layout venv.Layout, envDir, manifest, entry string) domain.LifecycleHooks {
	total := len(progressSteps)
	return domain.LifecycleHooks{
		OnStepStart: func(ctx context.Context, e *domain.StepEvent) {
			n := progressSteps[e.Step]
			switch e.Step {
			case domain.StepCheckEnv:
				console.Step(n, total, cat.T(i18n.MsgCheckEnv))
			case domain.StepCreateEnv:
				if ok, _ := layout.Exists(); !ok {
					console.Info(cat.T(i18n.MsgCreateEnv, envDir))
				}
			case domain.StepActivateEnv:
				console.Step(n, total, cat.T(i18n.MsgActivateEnv))
			case domain.StepCheckManifest:
				console.Step(n, total, cat.T(i18n.MsgCheckManifest, manifest))
			case domain.StepInstallDeps:
				console.Step(n, total, cat.T(i18n.MsgInstallDeps))
			case domain.StepRunProgram:
				console.Step(n, total, cat.T(i18n.MsgRunProgram, entry))
			}
		},
		OnStepFinish: func(ctx context.Context, e *domain.StepEvent) {
			if e.Step != domain.StepCreateEnv || e.Err != nil {
				return
			}
			if e.Skipped {
				console.Info(cat.T(i18n.MsgEnvExists, envDir))
			} else {
				console.Info(cat.T(i18n.MsgEnvCreated))
			}
		},
	}
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepStart: func(ctx context.Context, e *domain.StepEvent) {
			logger.Debug("Step Start", "step", e.Step)
		},
		OnStepFinish: func(ctx context.Context, e *domain.StepEvent) {
			if e.Err != nil {
				logger.Debug("Step Finish (Error)", "step", e.Step, "duration", e.Duration, "err", e.Err)
			} else {
				logger.Debug("Step Finish", "step", e.Step, "skipped", e.Skipped, "duration", e.Duration)
			}
		},
	}
}
