package cli

import (
	"fmt"

	"github.com/aretw0/launchpad/internal/config"
	"github.com/aretw0/launchpad/internal/i18n"
	"github.com/aretw0/launchpad/internal/presentation/tui"
	"github.com/aretw0/launchpad/pkg/bootstrap"
)

// Plan prints what a launch would do in the resolved configuration without spawning
// anything. It returns ExitFailure when a step is already known to fail.
func Plan(opts RunOptions) int {
	opts.setDefaults()

	cfg, err := config.Load(config.LoadOptions{
		Dir:       opts.Dir,
		File:      opts.ConfigFile,
		Environ:   opts.Environ,
		Overrides: opts.Overrides,
	})
	if err != nil {
		cat := i18n.Select(stringOverride(opts.Overrides, "lang"), opts.Environ)
		tui.NewConsole(opts.Stdout).Error(cat.T(i18n.MsgErrorLabel), cat.T(i18n.MsgConfigError, err))
		return ExitFailure
	}
	cat := i18n.Select(cfg.Lang, opts.Environ)

	b := bootstrap.New(bootstrapOptions(cfg, opts.ProgramArgs)...)
	plan := b.Plan()

	md := tui.PlanMarkdown(plan, cat)
	out := md
	if isTerminalWriter(opts.Stdout) {
		if rendered, err := tui.RenderMarkdown(md); err == nil {
			out = rendered
		}
	}
	fmt.Fprint(opts.Stdout, out)

	for _, p := range plan {
		if p.Blocker != nil {
			return ExitFailure
		}
	}
	return ExitOK
}

func stringOverride(overrides map[string]any, key string) string {
	s, _ := overrides[key].(string)
	return s
}
