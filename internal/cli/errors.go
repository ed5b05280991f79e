package cli

import (
	"context"
	"errors"

	"github.com/aretw0/launchpad/internal/i18n"
	"github.com/aretw0/launchpad/pkg/domain"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

// ExitCodeFor maps a bootstrap error to the launcher's exit status.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	}
	return ExitFailure
}

// programExitCode is the exit status when the main program's own status is propagated.
func programExitCode(report domain.Report) int {
	if report.ProgramExitCode < 0 {
		return ExitFailure
	}
	return report.ProgramExitCode
}

// describe returns the localized console message for a fatal error.
func describe(err error, cat i18n.Catalog) string {
	var se *domain.StepError
	if !errors.As(err, &se) {
		return cat.T(i18n.MsgErrUnexpected, err)
	}
	switch se.Kind {
	case domain.KindEnvironmentCreationFailed:
		return cat.T(i18n.MsgErrCreateEnv)
	case domain.KindEnvironmentActivationFailed:
		return cat.T(i18n.MsgErrActivateEnv)
	case domain.KindManifestMissing:
		return cat.T(i18n.MsgErrManifest, se.Path)
	case domain.KindDependencyInstallFailed:
		return cat.T(i18n.MsgErrInstallDeps)
	}
	return cat.T(i18n.MsgErrUnexpected, err)
}
