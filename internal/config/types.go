// Package config implements the deployable-service configuration: file
// loading, schema checks, defaulting into a canonical record, and
// validation of that record before rendering.
package config

import (
	"errors"
	"fmt"

	corev1 "k8s.io/api/core/v1"
)

// Framework identifies a serving framework with platform-builtin support.
type Framework string

// Supported serving frameworks.
const (
	FrameworkTriton Framework = "triton"
)

// SupportedFrameworks lists all frameworks that can be rendered.
var SupportedFrameworks = []Framework{FrameworkTriton}

// RuntimeType selects how the predictor workload is resolved at deploy time.
type RuntimeType string

// Runtime selection modes.
const (
	// RuntimeBuiltin uses the platform's built-in server for the framework.
	RuntimeBuiltin RuntimeType = "builtin"

	// RuntimeCluster references a named ServingRuntime registered in the cluster.
	RuntimeCluster RuntimeType = "cluster"

	// RuntimeCustom runs a fully custom container image.
	RuntimeCustom RuntimeType = "custom"
)

// SupportedRuntimeTypes lists all valid runtime selection modes.
var SupportedRuntimeTypes = []RuntimeType{RuntimeBuiltin, RuntimeCluster, RuntimeCustom}

// DeploymentMode selects between scale-to-zero serverless deployment and an
// always-on raw Kubernetes deployment.
type DeploymentMode string

// Deployment modes.
const (
	ModeKnative       DeploymentMode = "Knative"
	ModeRawDeployment DeploymentMode = "RawDeployment"
)

// SupportedDeploymentModes lists all valid deployment modes.
var SupportedDeploymentModes = []DeploymentMode{ModeKnative, ModeRawDeployment}

// Enumeration parse errors.
var (
	// ErrUnknownFramework indicates a framework string outside the supported set.
	ErrUnknownFramework = errors.New("unknown serving framework")

	// ErrUnknownRuntimeType indicates an invalid runtime selection mode.
	ErrUnknownRuntimeType = errors.New("unknown runtime type")

	// ErrUnknownDeploymentMode indicates an invalid deployment mode.
	ErrUnknownDeploymentMode = errors.New("unknown deployment mode")
)

// ParseFramework validates a framework string against the supported set.
func ParseFramework(s string) (Framework, error) {
	for _, fw := range SupportedFrameworks {
		if s == string(fw) {
			return fw, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: %v)", ErrUnknownFramework, s, SupportedFrameworks)
}

// ParseRuntimeType validates a runtime type string against the supported set.
func ParseRuntimeType(s string) (RuntimeType, error) {
	for _, rt := range SupportedRuntimeTypes {
		if s == string(rt) {
			return rt, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: %v)", ErrUnknownRuntimeType, s, SupportedRuntimeTypes)
}

// ParseDeploymentMode validates a deployment mode string against the supported set.
func ParseDeploymentMode(s string) (DeploymentMode, error) {
	for _, m := range SupportedDeploymentModes {
		if s == string(m) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: %v)", ErrUnknownDeploymentMode, s, SupportedDeploymentModes)
}

// ClusterRuntime describes a named ServingRuntime the platform resolves at
// deployment time.
type ClusterRuntime struct {
	// Name is the registered ServingRuntime name (e.g., "triton-server").
	Name string

	// Version is the runtime version, rendered as the model format version.
	Version string

	// ProtocolVersion is the inference protocol ("v1" or "v2").
	ProtocolVersion string

	// ModelFormat is the model format name (defaults to the framework name).
	ModelFormat string
}

// Resources holds resource requests and limits as free-form quantity strings.
// The strings use the Kubernetes resource-quantity syntax and are validated
// with apimachinery's quantity parser.
type Resources struct {
	CPURequest    string
	CPULimit      string
	MemoryRequest string
	MemoryLimit   string

	// GPULimit is the nvidia.com/gpu limit. Empty means no GPU.
	GPULimit string
}

// Scaling holds replica bounds and the autoscaling target.
type Scaling struct {
	MinReplicas int
	MaxReplicas int

	// ScaleTarget is the target value for the scaling metric, if set.
	ScaleTarget *int

	// ScaleMetric is the autoscaling metric name (e.g., "concurrency").
	ScaleMetric string
}

// Sidecar configures an auxiliary component (transformer or explainer)
// deployed alongside the predictor.
type Sidecar struct {
	Image     string
	Env       map[string]string
	Resources Resources
}

// Config is the canonical record for one deployable inference service.
// It is built once per invocation, either from a config file or from CLI
// flags, and is not mutated after Validate.
type Config struct {
	Name      string
	Namespace string

	// StorageURI is the model artifact location (s3://, gs://, pvc://, ...).
	StorageURI string

	Framework      Framework
	RuntimeType    RuntimeType
	DeploymentMode DeploymentMode

	// Runtime is the cluster-runtime descriptor. Synthesized with defaults
	// when RuntimeType is cluster and no block was supplied.
	Runtime *ClusterRuntime

	// CustomImage is the container image for RuntimeCustom.
	CustomImage string

	ServiceAccount string

	Resources Resources
	Scaling   Scaling

	Env          map[string]string
	Annotations  map[string]string
	Labels       map[string]string
	NodeSelector map[string]string
	Tolerations  []corev1.Toleration

	Transformer *Sidecar
	Explainer   *Sidecar

	// CanaryPercent routes a fraction of traffic to the new revision.
	CanaryPercent *int64
}
