package domain

import "time"

// Step identifies one stage of the bootstrap sequence.
type Step string

const (
	StepCheckEnv      Step = "check_env"
	StepCreateEnv     Step = "create_env"
	StepActivateEnv   Step = "activate_env"
	StepCheckManifest Step = "check_manifest"
	StepInstallDeps   Step = "install_deps"
	StepRunProgram    Step = "run_program"
)

// Sequence is the strict order in which steps are performed.
var Sequence = []Step{
	StepCheckEnv,
	StepCreateEnv,
	StepActivateEnv,
	StepCheckManifest,
	StepInstallDeps,
	StepRunProgram,
}

// StepResult records the outcome of a single step.
type StepResult struct {
	Step     Step          `json:"step"`
	Skipped  bool          `json:"skipped,omitempty"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// Report summarizes a bootstrap run.
type Report struct {
	// Created is true when the environment directory did not exist and was created.
	Created bool `json:"created"`
	// Installed is true when the dependency installer exited successfully.
	Installed bool `json:"installed"`
	// Launched is true when the main program was started.
	Launched bool `json:"launched"`
	// ProgramExitCode is the main program's exit status. It is informational only.
	ProgramExitCode int          `json:"program_exit_code"`
	Steps           []StepResult `json:"steps"`
}

// Attempted reports whether the given step was reached (performed or skipped).
func (r Report) Attempted(step Step) bool {
	for _, s := range r.Steps {
		if s.Step == step {
			return true
		}
	}
	return false
}

// Performed reports whether the given step was reached and not skipped.
func (r Report) Performed(step Step) bool {
	for _, s := range r.Steps {
		if s.Step == step {
			return !s.Skipped
		}
	}
	return false
}
