package tui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/launchpad/internal/i18n"
	"github.com/aretw0/launchpad/pkg/bootstrap"
	"github.com/aretw0/launchpad/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestConsole_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Banner("LAUNCHING PROGRAM")
	c.Step(1, 5, "Checking virtual environment...")
	c.Info("found")
	c.Error("[ERROR]", "requirements.txt not found.")
	c.Closing("Done.")

	out := buf.String()
	assert.Contains(t, out, strings.Repeat("=", bannerWidth))
	assert.Contains(t, out, "LAUNCHING PROGRAM\n")
	assert.Contains(t, out, "[1/5] Checking virtual environment...\n")
	assert.Contains(t, out, "   found\n")
	assert.Contains(t, out, "[ERROR] requirements.txt not found.\n")
	assert.NotContains(t, out, "\x1b[", "no escape codes for a non-terminal writer")
}

func TestKeyPauser_ReadsLine(t *testing.T) {
	var out bytes.Buffer
	p := NewKeyPauser(strings.NewReader("\n"), &out)

	require.NoError(t, p.Pause(context.Background(), "Press any key to exit..."))
	assert.Equal(t, "Press any key to exit...\n", out.String())
}

func TestKeyPauser_EOFIsAcknowledgement(t *testing.T) {
	p := NewKeyPauser(strings.NewReader(""), io.Discard)
	assert.NoError(t, p.Pause(context.Background(), ""))
}

func TestKeyPauser_Cancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	p := NewKeyPauser(r, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := p.Pause(ctx, "")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestIsInteractive(t *testing.T) {
	assert.False(t, IsInteractive(strings.NewReader("")))
}

func TestPlanMarkdown(t *testing.T) {
	plan := []bootstrap.PlannedStep{
		{Step: domain.StepCheckEnv},
		{Step: domain.StepCreateEnv, Command: []string{"python3", "-m", "venv", "venv"}, Skip: true},
		{Step: domain.StepActivateEnv},
		{Step: domain.StepCheckManifest, Blocker: domain.NewStepError(domain.KindManifestMissing, domain.StepCheckManifest, "requirements.txt", -1, nil)},
	}

	md := PlanMarkdown(plan, i18n.New(language.English))

	assert.Contains(t, md, "# Launch plan")
	assert.Contains(t, md, "2. **Create virtual environment** (skipped)")
	assert.NotContains(t, md, "python3 -m venv venv", "skipped steps show no command")
	assert.Contains(t, md, "4. **Check dependency file** (stops here:")
	assert.Contains(t, md, "requirements.txt")
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Plan\n\n1. **Install**\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Install")
}
