package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
)

func TestFromRaw_Defaults(t *testing.T) {
	raw := &Raw{
		Metadata: RawMetadata{Name: "simple-model"},
		Storage:  RawStorage{URI: "s3://b/m/"},
	}

	cfg := FromRaw(raw)

	assert.Equal(t, "simple-model", cfg.Name)
	assert.Equal(t, DefaultNamespace, cfg.Namespace)
	assert.Equal(t, FrameworkTriton, cfg.Framework)
	assert.Equal(t, RuntimeCluster, cfg.RuntimeType)
	assert.Equal(t, ModeKnative, cfg.DeploymentMode)

	assert.Equal(t, DefaultCPURequest, cfg.Resources.CPURequest)
	assert.Equal(t, DefaultMemoryRequest, cfg.Resources.MemoryRequest)
	assert.Equal(t, DefaultCPULimit, cfg.Resources.CPULimit)
	assert.Equal(t, DefaultMemoryLimit, cfg.Resources.MemoryLimit)
	assert.Empty(t, cfg.Resources.GPULimit)

	assert.Equal(t, DefaultMinReplicas, cfg.Scaling.MinReplicas)
	assert.Equal(t, DefaultMaxReplicas, cfg.Scaling.MaxReplicas)
	assert.Equal(t, DefaultScaleMetric, cfg.Scaling.ScaleMetric)
	assert.Nil(t, cfg.Scaling.ScaleTarget)
}

func TestFromRaw_SynthesizesClusterRuntime(t *testing.T) {
	raw := &Raw{
		Metadata: RawMetadata{Name: "simple-model"},
		Storage:  RawStorage{URI: "s3://b/m/"},
		Runtime:  RawRuntime{Framework: "triton", Type: "cluster"},
	}

	cfg := FromRaw(raw)

	require.NotNil(t, cfg.Runtime)
	assert.Equal(t, DefaultClusterRuntimeName, cfg.Runtime.Name)
	assert.Equal(t, DefaultProtocolVersion, cfg.Runtime.ProtocolVersion)
	assert.Equal(t, "triton", cfg.Runtime.ModelFormat)
}

func TestFromRaw_ExplicitRuntimePreserved(t *testing.T) {
	raw := &Raw{
		Metadata: RawMetadata{Name: "m"},
		Storage:  RawStorage{URI: "s3://b/m/"},
		Runtime: RawRuntime{
			Type:            "cluster",
			Name:            "triton-23",
			Version:         "23.05",
			ProtocolVersion: "v1",
			ModelFormat:     "onnx",
		},
	}

	cfg := FromRaw(raw)

	require.NotNil(t, cfg.Runtime)
	assert.Equal(t, "triton-23", cfg.Runtime.Name)
	assert.Equal(t, "23.05", cfg.Runtime.Version)
	assert.Equal(t, "v1", cfg.Runtime.ProtocolVersion)
	assert.Equal(t, "onnx", cfg.Runtime.ModelFormat)
}

func TestFromRaw_BuiltinKeepsProtocolVersion(t *testing.T) {
	raw := &Raw{
		Metadata: RawMetadata{Name: "m"},
		Storage:  RawStorage{URI: "s3://b/m/"},
		Runtime:  RawRuntime{Framework: "triton", Type: "builtin", ProtocolVersion: "v1"},
	}

	cfg := FromRaw(raw)

	require.NotNil(t, cfg.Runtime)
	assert.Equal(t, "v1", cfg.Runtime.ProtocolVersion)
}

func TestFromRaw_ScaleToZeroPreserved(t *testing.T) {
	zero := 0
	raw := &Raw{
		Metadata: RawMetadata{Name: "m"},
		Storage:  RawStorage{URI: "s3://b/m/"},
		Scaling:  RawScaling{MinReplicas: &zero},
	}

	cfg := FromRaw(raw)
	assert.Equal(t, 0, cfg.Scaling.MinReplicas)
	assert.Equal(t, DefaultMaxReplicas, cfg.Scaling.MaxReplicas)
}

func TestFromRaw_Tolerations(t *testing.T) {
	seconds := int64(300)
	raw := &Raw{
		Metadata: RawMetadata{Name: "m"},
		Storage:  RawStorage{URI: "s3://b/m/"},
		Kubernetes: RawKubernetes{
			Tolerations: []RawToleration{
				{Key: "nvidia.com/gpu", Operator: "Exists", Effect: "NoSchedule"},
				{Key: "dedicated", Operator: "Equal", Value: "inference", Effect: "NoExecute", TolerationSeconds: &seconds},
			},
		},
	}

	cfg := FromRaw(raw)

	require.Len(t, cfg.Tolerations, 2)
	assert.Equal(t, corev1.Toleration{
		Key:      "nvidia.com/gpu",
		Operator: corev1.TolerationOpExists,
		Effect:   corev1.TaintEffectNoSchedule,
	}, cfg.Tolerations[0])
	assert.Equal(t, &seconds, cfg.Tolerations[1].TolerationSeconds)
}

func TestFromRaw_Sidecars(t *testing.T) {
	raw := &Raw{
		Metadata: RawMetadata{Name: "m"},
		Storage:  RawStorage{URI: "s3://b/m/"},
		Advanced: RawAdvanced{
			Transformer: &RawSidecar{
				Image:     "registry.example.com/transformer:1",
				Env:       map[string]string{"A": "1"},
				Resources: RawResources{CPURequest: "100m"},
			},
		},
	}

	cfg := FromRaw(raw)

	require.NotNil(t, cfg.Transformer)
	assert.Equal(t, "registry.example.com/transformer:1", cfg.Transformer.Image)
	assert.Equal(t, "100m", cfg.Transformer.Resources.CPURequest)
	// Predictor defaults do not leak into sidecar resources.
	assert.Empty(t, cfg.Transformer.Resources.MemoryRequest)
	assert.Nil(t, cfg.Explainer)
}
