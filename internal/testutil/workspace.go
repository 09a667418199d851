// Package testutil provides fixtures shared by package tests: a scratch
// workspace holding the three folders a merge run works on, and a
// deterministic clock.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Workspace is a scratch directory with current, updated and output folders.
// Current and Updated exist; Output is left for the run to create.
type Workspace struct {
	Root    string
	Current string
	Updated string
	Output  string
}

// NewWorkspace creates a workspace under t.TempDir.
func NewWorkspace(t *testing.T) Workspace {
	t.Helper()
	root := t.TempDir()
	ws := Workspace{
		Root:    root,
		Current: filepath.Join(root, "current"),
		Updated: filepath.Join(root, "updated"),
		Output:  filepath.Join(root, "output"),
	}
	require.NoError(t, os.Mkdir(ws.Current, 0o755))
	require.NoError(t, os.Mkdir(ws.Updated, 0o755))
	return ws
}

// Put writes content to dir/name, creating dir if needed.
func Put(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// Read returns the content of dir/name.
func Read(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}
