package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCmd_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
metadata:
  name: valid-model
storage:
  uri: s3://models/valid-model/
runtime:
  framework: triton
  type: cluster
`)

	_, err := executeCmd(t, "validate", "--config", configPath)
	require.NoError(t, err)
}

func TestValidateCmd_RequiresConfigFlag(t *testing.T) {
	_, err := executeCmd(t, "validate")
	assert.Error(t, err)
}

func TestValidateCmd_LintAlias(t *testing.T) {
	configPath := writeConfig(t, `
metadata:
  name: aliased-model
storage:
  uri: gs://models/aliased/
`)

	_, err := executeCmd(t, "lint", "--config", configPath)
	require.NoError(t, err)
}
