package config

import (
	corev1 "k8s.io/api/core/v1"
)

// Per-field defaults applied when a raw config omits optional values.
const (
	DefaultNamespace       = "default"
	DefaultFramework       = FrameworkTriton
	DefaultRuntimeType     = RuntimeCluster
	DefaultDeploymentMode  = ModeKnative
	DefaultProtocolVersion = "v2"

	// DefaultClusterRuntimeName is used when cluster mode is selected
	// without an explicit runtime block.
	DefaultClusterRuntimeName = "triton-server"

	DefaultCPURequest    = "100m"
	DefaultMemoryRequest = "512Mi"
	DefaultCPULimit      = "1"
	DefaultMemoryLimit   = "2Gi"

	DefaultMinReplicas = 1
	DefaultMaxReplicas = 3
	DefaultScaleMetric = "concurrency"
)

// FromRaw maps a raw config into the canonical record, filling every
// optional field with its default. It never fails: missing required fields
// are caught by CheckSchema before this step or by Validate after it.
func FromRaw(raw *Raw) *Config {
	cfg := &Config{
		Name:           raw.Metadata.Name,
		Namespace:      stringOr(raw.Metadata.Namespace, DefaultNamespace),
		StorageURI:     raw.Storage.URI,
		Framework:      Framework(stringOr(raw.Runtime.Framework, string(DefaultFramework))),
		RuntimeType:    RuntimeType(stringOr(raw.Runtime.Type, string(DefaultRuntimeType))),
		DeploymentMode: DeploymentMode(stringOr(raw.Runtime.DeploymentMode, string(DefaultDeploymentMode))),
		CustomImage:    raw.Runtime.CustomImage,
		ServiceAccount: raw.Kubernetes.ServiceAccount,
		Resources:      resourcesFromRaw(raw.Resources, true),
		Scaling: Scaling{
			MinReplicas: intOr(raw.Scaling.MinReplicas, DefaultMinReplicas),
			MaxReplicas: intOr(raw.Scaling.MaxReplicas, DefaultMaxReplicas),
			ScaleTarget: raw.Scaling.ScaleTarget,
			ScaleMetric: stringOr(raw.Scaling.ScaleMetric, DefaultScaleMetric),
		},
		Env:           raw.Environment,
		Annotations:   raw.Annotations,
		Labels:        raw.Labels,
		NodeSelector:  raw.Kubernetes.NodeSelector,
		Tolerations:   tolerationsFromRaw(raw.Kubernetes.Tolerations),
		CanaryPercent: raw.Advanced.CanaryPercent,
	}

	protocol := stringOr(raw.Runtime.ProtocolVersion, DefaultProtocolVersion)

	if cfg.RuntimeType == RuntimeCluster {
		cfg.Runtime = &ClusterRuntime{
			Name:            stringOr(raw.Runtime.Name, DefaultClusterRuntimeName),
			Version:         raw.Runtime.Version,
			ProtocolVersion: protocol,
			ModelFormat:     stringOr(raw.Runtime.ModelFormat, string(cfg.Framework)),
		}
	} else if raw.Runtime.Name != "" || raw.Runtime.ModelFormat != "" || raw.Runtime.ProtocolVersion != "" {
		cfg.Runtime = &ClusterRuntime{
			Name:            raw.Runtime.Name,
			Version:         raw.Runtime.Version,
			ProtocolVersion: protocol,
			ModelFormat:     stringOr(raw.Runtime.ModelFormat, string(cfg.Framework)),
		}
	}

	if raw.Advanced.Transformer != nil {
		cfg.Transformer = sidecarFromRaw(raw.Advanced.Transformer)
	}
	if raw.Advanced.Explainer != nil {
		cfg.Explainer = sidecarFromRaw(raw.Advanced.Explainer)
	}

	return cfg
}

func resourcesFromRaw(raw RawResources, withDefaults bool) Resources {
	res := Resources{
		CPURequest:    raw.CPURequest,
		CPULimit:      raw.CPULimit,
		MemoryRequest: raw.MemoryRequest,
		MemoryLimit:   raw.MemoryLimit,
		GPULimit:      raw.GPULimit,
	}
	if withDefaults {
		res.CPURequest = stringOr(res.CPURequest, DefaultCPURequest)
		res.CPULimit = stringOr(res.CPULimit, DefaultCPULimit)
		res.MemoryRequest = stringOr(res.MemoryRequest, DefaultMemoryRequest)
		res.MemoryLimit = stringOr(res.MemoryLimit, DefaultMemoryLimit)
	}
	return res
}

func sidecarFromRaw(raw *RawSidecar) *Sidecar {
	return &Sidecar{
		Image: raw.Image,
		Env:   raw.Env,
		// Sidecar resources stay as given; predictor defaults do not apply.
		Resources: resourcesFromRaw(raw.Resources, false),
	}
}

func tolerationsFromRaw(raw []RawToleration) []corev1.Toleration {
	if len(raw) == 0 {
		return nil
	}
	tolerations := make([]corev1.Toleration, 0, len(raw))
	for _, t := range raw {
		tolerations = append(tolerations, corev1.Toleration{
			Key:               t.Key,
			Operator:          corev1.TolerationOperator(t.Operator),
			Value:             t.Value,
			Effect:            corev1.TaintEffect(t.Effect),
			TolerationSeconds: t.TolerationSeconds,
		})
	}
	return tolerations
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func intOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}
