package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepError_Is(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("bootstrap: %w", NewStepError(KindDependencyInstallFailed, StepInstallDeps, "requirements.txt", 2, cause))

	assert.ErrorIs(t, err, ErrDependencyInstallFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrManifestMissing)

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindDependencyInstallFailed, kind)
	assert.Contains(t, err.Error(), "exit status 2")
	assert.Contains(t, err.Error(), "requirements.txt")
}

func TestKindOf_PlainError(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestReport_Performed(t *testing.T) {
	r := Report{Steps: []StepResult{
		{Step: StepCheckEnv},
		{Step: StepCreateEnv, Skipped: true},
		{Step: StepActivateEnv},
	}}

	assert.True(t, r.Performed(StepCheckEnv))
	assert.False(t, r.Performed(StepCreateEnv))
	assert.True(t, r.Attempted(StepCreateEnv))
	assert.False(t, r.Attempted(StepInstallDeps))
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var order []string
	a := LifecycleHooks{OnStepStart: func(_ context.Context, e *StepEvent) { order = append(order, "a") }}
	b := LifecycleHooks{
		OnStepStart:  func(_ context.Context, e *StepEvent) { order = append(order, "b") },
		OnStepFinish: func(_ context.Context, e *StepEvent) { order = append(order, "finish") },
	}

	m := a.Merge(b)
	m.OnStepStart(context.Background(), &StepEvent{})
	m.OnStepFinish(context.Background(), &StepEvent{})

	assert.Equal(t, []string{"a", "b", "finish"}, order)
	assert.Nil(t, LifecycleHooks{}.Merge(LifecycleHooks{}).OnStepStart)
}
