package venv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrInterpreterMissing is returned when the environment has no interpreter to activate.
var ErrInterpreterMissing = errors.New("interpreter not found in environment")

// ExecContext is an activated environment: the interpreter to use and the full
// environment every subprocess must receive.
type ExecContext struct {
	Layout Layout
	Env    []string
}

// Activate resolves the environment at root and derives the activated environment
// from base, the way the venv activate scripts do:
// VIRTUAL_ENV is set, the bin dir is prepended to PATH and PYTHONHOME is removed.
func Activate(root string, base []string, goos string) (ExecContext, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return ExecContext{}, fmt.Errorf("resolve %s: %w", root, err)
	}
	layout := NewLayout(abs, goos)

	info, err := os.Stat(layout.Python)
	if err != nil {
		if os.IsNotExist(err) {
			return ExecContext{}, fmt.Errorf("%w: %s", ErrInterpreterMissing, layout.Python)
		}
		return ExecContext{}, err
	}
	if info.IsDir() {
		return ExecContext{}, fmt.Errorf("%w: %s is a directory", ErrInterpreterMissing, layout.Python)
	}

	e := envList{goos: layout.GOOS, vars: append([]string(nil), base...)}
	e.unset("PYTHONHOME")
	e.set("VIRTUAL_ENV", layout.Root)
	e.set("VIRTUAL_ENV_PROMPT", filepath.Base(layout.Root))
	e.prependPath(layout.BinDir)

	return ExecContext{Layout: layout, Env: e.vars}, nil
}

// Python returns the activated interpreter.
func (c ExecContext) Python() string {
	return c.Layout.Python
}

// Lookup returns the value of key in the activated environment.
func (c ExecContext) Lookup(key string) (string, bool) {
	e := envList{goos: c.Layout.GOOS, vars: c.Env}
	i := e.index(key)
	if i < 0 {
		return "", false
	}
	_, v, _ := strings.Cut(c.Env[i], "=")
	return v, true
}

// With returns a copy of c with vars overlaid on its environment.
// VIRTUAL_ENV and PATH set by activation are not overridden, and PYTHONHOME stays unset.
func (c ExecContext) With(vars map[string]string) ExecContext {
	if len(vars) == 0 {
		return c
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	e := envList{goos: c.Layout.GOOS, vars: append([]string(nil), c.Env...)}
	for _, k := range keys {
		if e.protected(k) {
			continue
		}
		e.set(k, vars[k])
	}
	c.Env = e.vars
	return c
}

// envList edits a KEY=VALUE slice. Keys compare case-insensitively on Windows.
type envList struct {
	goos string
	vars []string
}

func (e *envList) same(a, b string) bool {
	if e.goos == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func (e *envList) index(key string) int {
	for i, kv := range e.vars {
		k, _, _ := strings.Cut(kv, "=")
		if e.same(k, key) {
			return i
		}
	}
	return -1
}

func (e *envList) set(key, value string) {
	if i := e.index(key); i >= 0 {
		k, _, _ := strings.Cut(e.vars[i], "=")
		e.vars[i] = k + "=" + value
		return
	}
	e.vars = append(e.vars, key+"="+value)
}

func (e *envList) unset(key string) {
	out := e.vars[:0]
	for _, kv := range e.vars {
		k, _, _ := strings.Cut(kv, "=")
		if !e.same(k, key) {
			out = append(out, kv)
		}
	}
	e.vars = out
}

func (e *envList) prependPath(dir string) {
	sep := ":"
	if e.goos == "windows" {
		sep = ";"
	}
	i := e.index("PATH")
	if i < 0 {
		e.vars = append(e.vars, "PATH="+dir)
		return
	}
	k, v, _ := strings.Cut(e.vars[i], "=")
	if v == "" {
		e.vars[i] = k + "=" + dir
		return
	}
	e.vars[i] = k + "=" + dir + sep + v
}

func (e *envList) protected(key string) bool {
	return e.same(key, "PATH") || e.same(key, "VIRTUAL_ENV") || e.same(key, "PYTHONHOME")
}
