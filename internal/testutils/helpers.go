// Package testutils holds helpers shared by tests that need a loaded manual.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conneroisu/manualkit/internal/registry"
	"github.com/conneroisu/manualkit/internal/types"
)

// BuildRegistry builds a section registry from sections, failing the test on
// a duplicate id.
func BuildRegistry(t *testing.T, sections ...*types.Section) *registry.Registry {
	t.Helper()
	b := registry.NewBuilder()
	for _, s := range sections {
		require.NoError(t, b.Add(s))
	}
	return b.Build()
}

// CreateTempManual creates a content directory holding files, keyed by file
// name, and returns its path.
func CreateTempManual(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "manual")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		WriteFile(t, filepath.Join(dir, name), content)
	}
	return dir
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ExampleManual returns the absolute path of the shipped example manual.
// rel is the path from the calling package to the repository root.
func ExampleManual(t *testing.T, rel string) string {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join(rel, "examples", "manual"))
	require.NoError(t, err)
	require.DirExists(t, dir)
	return dir
}
