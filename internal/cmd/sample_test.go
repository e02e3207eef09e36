package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleCmd_Stdout(t *testing.T) {
	// Writes to stdout directly; verify it executes without error and
	// leaves no file behind in the working directory.
	_, err := executeCmd(t, "sample", "basic", "--stdout")
	require.NoError(t, err)
	assert.NoFileExists(t, "basic-config.yaml")
}

func TestSampleCmd_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bert.yaml")

	_, err := executeCmd(t, "sample", "gpu",
		"--name", "bert-large",
		"--output", path,
	)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: bert-large")
	assert.Contains(t, string(data), "gpu_limit")
}

func TestSampleCmd_ArgValidation(t *testing.T) {
	t.Run("missing preset", func(t *testing.T) {
		_, err := executeCmd(t, "sample")
		assert.Error(t, err)
	})

	t.Run("too many args", func(t *testing.T) {
		_, err := executeCmd(t, "sample", "basic", "gpu")
		assert.Error(t, err)
	})
}
