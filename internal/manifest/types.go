// Package manifest renders a canonical service config into a KServe
// InferenceService document and writes it out as YAML.
//
// The document is built as a typed tree and serialized with a single YAML
// encoder rather than assembled by text substitution, so indentation and
// escaping are never a concern.
package manifest

import (
	corev1 "k8s.io/api/core/v1"
)

// Fixed manifest constants for the target platform.
const (
	// APIVersion is the InferenceService API group/version.
	APIVersion = "serving.kserve.io/v1beta1"

	// Kind is the custom resource kind.
	Kind = "InferenceService"

	// DeploymentModeAnnotation signals raw-deployment mode to the platform.
	DeploymentModeAnnotation = "serving.kserve.io/deploymentMode"

	// StorageURIEnvVar is injected into custom predictor containers so the
	// storage initializer can locate the model.
	StorageURIEnvVar = "STORAGE_URI"

	// GPUResourceName is the accelerator resource key.
	GPUResourceName = "nvidia.com/gpu"

	// PredictorContainerName is the conventional name for the custom
	// predictor container.
	PredictorContainerName = "kserve-container"
)

// InferenceService is the root of the rendered document.
type InferenceService struct {
	APIVersion string     `json:"apiVersion"`
	Kind       string     `json:"kind"`
	Metadata   ObjectMeta `json:"metadata"`
	Spec       Spec       `json:"spec"`
}

// ObjectMeta carries the resource identity. A trimmed-down mirror of the
// Kubernetes type so empty optional fields stay out of the output.
type ObjectMeta struct {
	Name        string            `json:"name"`
	Namespace   string            `json:"namespace,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// Spec holds the predictor and its optional sibling components.
type Spec struct {
	Predictor   Predictor  `json:"predictor"`
	Transformer *Component `json:"transformer,omitempty"`
	Explainer   *Component `json:"explainer,omitempty"`
}

// Predictor is the main workload specification.
type Predictor struct {
	// MinReplicas is a pointer so an explicit zero (scale-to-zero) renders.
	MinReplicas          *int                `json:"minReplicas,omitempty"`
	MaxReplicas          int                 `json:"maxReplicas,omitempty"`
	ScaleTarget          *int                `json:"scaleTarget,omitempty"`
	ScaleMetric          string              `json:"scaleMetric,omitempty"`
	CanaryTrafficPercent *int64              `json:"canaryTrafficPercent,omitempty"`
	ServiceAccountName   string              `json:"serviceAccountName,omitempty"`
	NodeSelector         map[string]string   `json:"nodeSelector,omitempty"`
	Tolerations          []corev1.Toleration `json:"tolerations,omitempty"`

	// Exactly one of the following workload fragments is set, depending on
	// the runtime selection mode.
	Model      *Model             `json:"model,omitempty"`
	Triton     *FrameworkRuntime  `json:"triton,omitempty"`
	Containers []corev1.Container `json:"containers,omitempty"`
}

// Model is the cluster-runtime workload fragment.
type Model struct {
	ModelFormat     ModelFormat                 `json:"modelFormat"`
	Runtime         string                      `json:"runtime,omitempty"`
	StorageURI      string                      `json:"storageUri"`
	ProtocolVersion string                      `json:"protocolVersion,omitempty"`
	Env             []corev1.EnvVar             `json:"env,omitempty"`
	Resources       corev1.ResourceRequirements `json:"resources,omitempty"`
}

// ModelFormat names the serialized model layout.
type ModelFormat struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// FrameworkRuntime is the builtin-framework workload fragment.
type FrameworkRuntime struct {
	StorageURI      string                      `json:"storageUri"`
	ProtocolVersion string                      `json:"protocolVersion,omitempty"`
	Env             []corev1.EnvVar             `json:"env,omitempty"`
	Resources       corev1.ResourceRequirements `json:"resources,omitempty"`
}

// Component is a transformer or explainer block.
type Component struct {
	Containers []corev1.Container `json:"containers"`
}
