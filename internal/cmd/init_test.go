package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameronsjo/stevedore/internal/config"
)

func TestInitCmd_Scaffolds(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCmd(t, "init", dir, "--yes")
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(dir, "configs"))
	assert.DirExists(t, filepath.Join(dir, "manifests"))
	assert.FileExists(t, filepath.Join(dir, "README.md"))
	assert.FileExists(t, filepath.Join(dir, ".gitignore"))

	starter := filepath.Join(dir, "configs", "example.yaml")
	require.FileExists(t, starter)

	// The starter config must pass the full validation path.
	raw, err := config.Load(starter)
	require.NoError(t, err)
	require.NoError(t, config.CheckSchema(raw))
	require.NoError(t, config.FromRaw(raw).Validate())
}

func TestInitCmd_ReinitPreservesFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCmd(t, "init", dir, "--yes")
	require.NoError(t, err)

	starter := filepath.Join(dir, "configs", "example.yaml")
	require.NoError(t, os.WriteFile(starter, []byte("# edited\n"), 0644))

	_, err = executeCmd(t, "init", dir, "--yes")
	require.NoError(t, err)

	data, err := os.ReadFile(starter)
	require.NoError(t, err)
	assert.Equal(t, "# edited\n", string(data))
}

func TestInitCmd_GitignoreContent(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCmd(t, "init", dir, "--yes")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ".stevedore")
}
