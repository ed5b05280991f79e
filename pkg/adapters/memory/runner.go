package memory

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/aretw0/launchpad/pkg/ports"
	"github.com/aretw0/launchpad/pkg/venv"
)

// Matcher selects commands a Rule applies to.
type Matcher func(ports.Command) bool

// Effect simulates the filesystem side effects of a command.
type Effect func(ports.Command) error

// Rule scripts the outcome of matching commands.
type Rule struct {
	Match    Matcher
	ExitCode int
	Err      error
	Effect   Effect
}

// Runner implements ports.CommandRunner without spawning anything.
// It records every command and answers with the first matching Rule,
// or exit status 0 when none matches.
// Safe for concurrent use.
type Runner struct {
	mu    sync.Mutex
	rules []Rule
	calls []ports.Command
}

// NewRunner creates a runner with the given rules.
func NewRunner(rules ...Rule) *Runner {
	return &Runner{rules: rules}
}

// On appends a rule.
func (r *Runner) On(match Matcher, exitCode int, effect Effect) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, Rule{Match: match, ExitCode: exitCode, Effect: effect})
	return r
}

// Run records the command and returns its scripted result.
func (r *Runner) Run(ctx context.Context, cmd ports.Command) (ports.Result, error) {
	if err := ctx.Err(); err != nil {
		return ports.Result{ExitCode: -1}, err
	}

	r.mu.Lock()
	r.calls = append(r.calls, clone(cmd))
	var rule *Rule
	for i := range r.rules {
		if r.rules[i].Match == nil || r.rules[i].Match(cmd) {
			rule = &r.rules[i]
			break
		}
	}
	r.mu.Unlock()

	if rule == nil {
		return ports.Result{}, nil
	}
	if rule.Err != nil {
		return ports.Result{ExitCode: -1}, rule.Err
	}
	if rule.Effect != nil && rule.ExitCode == 0 {
		if err := rule.Effect(cmd); err != nil {
			return ports.Result{ExitCode: -1}, err
		}
	}
	return ports.Result{ExitCode: rule.ExitCode}, nil
}

// Calls returns a copy of all recorded commands, in order.
func (r *Runner) Calls() []ports.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.Command, len(r.calls))
	for i, c := range r.calls {
		out[i] = clone(c)
	}
	return out
}

// Called reports whether any recorded command matches.
func (r *Runner) Called(match Matcher) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.calls {
		if match(c) {
			return true
		}
	}
	return false
}

// ArgsContain matches commands whose arguments contain want as a contiguous run.
func ArgsContain(want ...string) Matcher {
	return func(c ports.Command) bool {
		if len(want) == 0 {
			return true
		}
		for i := 0; i+len(want) <= len(c.Args); i++ {
			if slices.Equal(c.Args[i:i+len(want)], want) {
				return true
			}
		}
		return false
	}
}

// NameIs matches commands by executable.
func NameIs(name string) Matcher {
	return func(c ports.Command) bool {
		return c.Name == name
	}
}

// CreateVenv is an Effect for `python -m venv <dir>`: it lays out a minimal
// environment (just the interpreter file) the way the real module would for goos.
func CreateVenv(goos string) Effect {
	return func(c ports.Command) error {
		i := slices.Index(c.Args, "venv")
		if i < 0 || i+1 >= len(c.Args) {
			return nil
		}
		root := c.Args[i+1]
		if !filepath.IsAbs(root) {
			root = filepath.Join(c.Dir, root)
		}
		l := venv.NewLayout(root, goos)
		if err := os.MkdirAll(l.BinDir, 0755); err != nil {
			return err
		}
		return os.WriteFile(l.Python, []byte("#!/bin/sh\n"), 0755)
	}
}

func clone(c ports.Command) ports.Command {
	c.Args = slices.Clone(c.Args)
	c.Env = slices.Clone(c.Env)
	return c
}
