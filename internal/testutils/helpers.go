package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Project describes the files SetupProject creates. Empty fields are left out.
type Project struct {
	Manifest string
	Entry    string
	// Files holds extra files keyed by slash-separated relative path.
	Files map[string]string
}

// DefaultProject is a runnable project with a manifest at the default locations.
func DefaultProject() Project {
	return Project{
		Manifest: "requests==2.31.0\nPyYAML\n",
		Entry:    "print('hi')\n",
	}
}

// SetupProject creates a temporary project directory laid out the way the launcher
// expects (requirements.txt, src/main.py) and returns its absolute path.
// It fails the test immediately on error.
func SetupProject(t *testing.T, p Project) string {
	t.Helper()

	// t.TempDir usually returns an absolute path; subprocess working directories rely on it.
	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	if p.Manifest != "" {
		WriteFile(t, filepath.Join(dir, "requirements.txt"), p.Manifest)
	}
	if p.Entry != "" {
		WriteFile(t, filepath.Join(dir, "src", "main.py"), p.Entry)
	}
	for name, content := range p.Files {
		WriteFile(t, filepath.Join(dir, filepath.FromSlash(name)), content)
	}
	return dir
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "Failed to create %s", filepath.Dir(path))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write %s", path)
}
