package venv

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Layout is the resolved structure of a virtual environment directory.
type Layout struct {
	// Root is the environment directory.
	Root string
	// BinDir holds the interpreter and console scripts (Scripts on Windows, bin elsewhere).
	BinDir string
	// Python is the environment's interpreter.
	Python string
	// GOOS is the operating system the layout was resolved for.
	GOOS string
}

// NewLayout resolves the layout of root for goos. An empty goos means runtime.GOOS.
func NewLayout(root, goos string) Layout {
	if goos == "" {
		goos = runtime.GOOS
	}
	l := Layout{Root: root, GOOS: goos}
	if goos == "windows" {
		l.BinDir = filepath.Join(root, "Scripts")
		l.Python = filepath.Join(l.BinDir, "python.exe")
	} else {
		l.BinDir = filepath.Join(root, "bin")
		l.Python = filepath.Join(l.BinDir, "python")
	}
	return l
}

// Exists reports whether the environment directory is present.
// A regular file at Root is an error, not an absent environment.
func (l Layout) Exists() (bool, error) {
	info, err := os.Stat(l.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%s exists but is not a directory", l.Root)
	}
	return true, nil
}

// DefaultHostPython is the interpreter used to create environments when none is configured.
func DefaultHostPython(goos string) string {
	if goos == "" {
		goos = runtime.GOOS
	}
	if goos == "windows" {
		return "python"
	}
	return "python3"
}
