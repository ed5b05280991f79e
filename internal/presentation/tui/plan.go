package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/launchpad/internal/i18n"
	"github.com/aretw0/launchpad/pkg/bootstrap"
	"github.com/aretw0/launchpad/pkg/domain"
	"github.com/charmbracelet/glamour"
)

var stepTitles = map[domain.Step]i18n.Key{
	domain.StepCheckEnv:      i18n.MsgStepCheckEnv,
	domain.StepCreateEnv:     i18n.MsgStepCreateEnv,
	domain.StepActivateEnv:   i18n.MsgStepActivateEnv,
	domain.StepCheckManifest: i18n.MsgStepCheckManifest,
	domain.StepInstallDeps:   i18n.MsgStepInstallDeps,
	domain.StepRunProgram:    i18n.MsgStepRunProgram,
}

// PlanMarkdown describes a plan as a markdown ordered list.
func PlanMarkdown(plan []bootstrap.PlannedStep, cat i18n.Catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", cat.T(i18n.MsgPlanTitle))
	for i, p := range plan {
		fmt.Fprintf(&b, "%d. **%s**", i+1, cat.T(stepTitles[p.Step]))
		switch {
		case p.Blocker != nil:
			fmt.Fprintf(&b, " (%s: %v)", cat.T(i18n.MsgPlanBlocked), p.Blocker)
		case p.Skip:
			fmt.Fprintf(&b, " (%s)", cat.T(i18n.MsgPlanSkip))
		}
		b.WriteString("\n")
		if len(p.Command) > 0 && !p.Skip {
			fmt.Fprintf(&b, "   `%s`\n", strings.Join(p.Command, " "))
		}
	}
	return b.String()
}

// RenderMarkdown renders markdown for the terminal using glamour.
func RenderMarkdown(markdown string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
