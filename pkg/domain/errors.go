package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a fatal bootstrap failure.
type ErrorKind string

const (
	KindEnvironmentCreationFailed   ErrorKind = "EnvironmentCreationFailed"
	KindEnvironmentActivationFailed ErrorKind = "EnvironmentActivationFailed"
	KindManifestMissing             ErrorKind = "ManifestMissing"
	KindDependencyInstallFailed     ErrorKind = "DependencyInstallFailed"
)

// ErrEnvironmentCreationFailed is returned when the isolated environment could not be created.
var ErrEnvironmentCreationFailed = errors.New("environment creation failed")

// ErrEnvironmentActivationFailed is returned when the environment exists but cannot be activated.
var ErrEnvironmentActivationFailed = errors.New("environment activation failed")

// ErrManifestMissing is returned when the dependency manifest does not exist.
var ErrManifestMissing = errors.New("dependency manifest missing")

// ErrDependencyInstallFailed is returned when the dependency installer exits non-zero.
var ErrDependencyInstallFailed = errors.New("dependency install failed")

var kindSentinels = map[ErrorKind]error{
	KindEnvironmentCreationFailed:   ErrEnvironmentCreationFailed,
	KindEnvironmentActivationFailed: ErrEnvironmentActivationFailed,
	KindManifestMissing:             ErrManifestMissing,
	KindDependencyInstallFailed:     ErrDependencyInstallFailed,
}

// StepError is a fatal failure raised by one step of the sequence.
type StepError struct {
	Kind ErrorKind
	Step Step
	// Path is the filesystem path involved, if any.
	Path string
	// ExitCode is the failing subprocess' exit status, or -1 when it never ran.
	ExitCode int
	Err      error
}

// NewStepError builds a StepError. cause may be nil.
func NewStepError(kind ErrorKind, step Step, path string, exitCode int, cause error) *StepError {
	return &StepError{Kind: kind, Step: step, Path: path, ExitCode: exitCode, Err: cause}
}

func (e *StepError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Step, kindSentinels[e.Kind])
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(": exit status %d", e.ExitCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *StepError) Unwrap() []error {
	errs := []error{kindSentinels[e.Kind]}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf extracts the ErrorKind from err, if it carries one.
func KindOf(err error) (ErrorKind, bool) {
	var se *StepError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}
