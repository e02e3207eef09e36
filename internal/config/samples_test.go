package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSample_UnknownPreset(t *testing.T) {
	_, err := RenderSample("premium", "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestRenderSample_GPUPreset(t *testing.T) {
	data, err := RenderSample(PresetGPU, "", "")
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "deployment_mode: RawDeployment")
	assert.Contains(t, content, "gpu_limit")
}

func TestRenderSample_NameOverride(t *testing.T) {
	data, err := RenderSample(PresetBasic, "bert-large", "nlp")
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "name: bert-large")
	assert.Contains(t, content, "namespace: nlp")
	assert.Contains(t, content, "s3://models/bert-large/")
}

// Every preset must survive the full load -> schema -> defaults -> validate
// path without modification.
func TestRenderSample_AllPresetsAreValidConfigs(t *testing.T) {
	for _, preset := range SamplePresets {
		t.Run(preset, func(t *testing.T) {
			data, err := RenderSample(preset, "", "")
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), preset+".yaml")
			require.NoError(t, os.WriteFile(path, data, 0644))

			raw, err := Load(path)
			require.NoError(t, err)
			require.NoError(t, CheckSchema(raw))

			cfg := FromRaw(raw)
			require.NoError(t, cfg.Validate())
		})
	}
}
