package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader errors.
var (
	// ErrConfigNotFound indicates the config file path does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrUnsupportedFormat indicates a file extension other than yaml/yml/json.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Raw is the on-disk configuration shape before defaulting. Section and key
// names match the documented file schema; every field is optional at this
// stage.
type Raw struct {
	Metadata    RawMetadata       `yaml:"metadata" json:"metadata"`
	Storage     RawStorage        `yaml:"storage" json:"storage"`
	Runtime     RawRuntime        `yaml:"runtime" json:"runtime"`
	Resources   RawResources      `yaml:"resources" json:"resources"`
	Scaling     RawScaling        `yaml:"scaling" json:"scaling"`
	Environment map[string]string `yaml:"environment" json:"environment"`
	Kubernetes  RawKubernetes     `yaml:"kubernetes" json:"kubernetes"`
	Annotations map[string]string `yaml:"annotations" json:"annotations"`
	Labels      map[string]string `yaml:"labels" json:"labels"`
	Advanced    RawAdvanced       `yaml:"advanced" json:"advanced"`
}

// RawMetadata holds the service identity.
type RawMetadata struct {
	Name      string `yaml:"name" json:"name"`
	Namespace string `yaml:"namespace" json:"namespace"`
}

// RawStorage holds the model artifact location.
type RawStorage struct {
	URI string `yaml:"uri" json:"uri"`
}

// RawRuntime holds framework and runtime selection.
type RawRuntime struct {
	Framework       string `yaml:"framework" json:"framework"`
	Type            string `yaml:"type" json:"type"`
	Name            string `yaml:"name" json:"name"`
	Version         string `yaml:"version" json:"version"`
	ProtocolVersion string `yaml:"protocol_version" json:"protocol_version"`
	ModelFormat     string `yaml:"model_format" json:"model_format"`
	DeploymentMode  string `yaml:"deployment_mode" json:"deployment_mode"`
	CustomImage     string `yaml:"custom_image" json:"custom_image"`
}

// RawResources holds quantity strings for requests and limits.
type RawResources struct {
	CPURequest    string `yaml:"cpu_request" json:"cpu_request"`
	CPULimit      string `yaml:"cpu_limit" json:"cpu_limit"`
	MemoryRequest string `yaml:"memory_request" json:"memory_request"`
	MemoryLimit   string `yaml:"memory_limit" json:"memory_limit"`
	GPULimit      string `yaml:"gpu_limit" json:"gpu_limit"`
}

// RawScaling holds replica bounds. Pointers distinguish absent from zero so
// scale-to-zero configs survive defaulting.
type RawScaling struct {
	MinReplicas *int   `yaml:"min_replicas" json:"min_replicas"`
	MaxReplicas *int   `yaml:"max_replicas" json:"max_replicas"`
	ScaleTarget *int   `yaml:"scale_target" json:"scale_target"`
	ScaleMetric string `yaml:"scale_metric" json:"scale_metric"`
}

// RawKubernetes holds scheduling and identity passthrough.
type RawKubernetes struct {
	ServiceAccount string            `yaml:"service_account" json:"service_account"`
	NodeSelector   map[string]string `yaml:"node_selector" json:"node_selector"`
	Tolerations    []RawToleration   `yaml:"tolerations" json:"tolerations"`
}

// RawToleration mirrors a Kubernetes toleration.
type RawToleration struct {
	Key               string `yaml:"key" json:"key"`
	Operator          string `yaml:"operator" json:"operator"`
	Value             string `yaml:"value" json:"value"`
	Effect            string `yaml:"effect" json:"effect"`
	TolerationSeconds *int64 `yaml:"toleration_seconds" json:"toleration_seconds"`
}

// RawAdvanced holds optional sidecars and canary traffic.
type RawAdvanced struct {
	Transformer   *RawSidecar `yaml:"transformer" json:"transformer"`
	Explainer     *RawSidecar `yaml:"explainer" json:"explainer"`
	CanaryPercent *int64      `yaml:"canary_percent" json:"canary_percent"`
}

// RawSidecar configures a transformer or explainer container.
type RawSidecar struct {
	Image     string            `yaml:"image" json:"image"`
	Env       map[string]string `yaml:"env" json:"env"`
	Resources RawResources      `yaml:"resources" json:"resources"`
}

// Load reads a config file, dispatching the parser on the file extension.
// YAML and JSON are supported; an empty file yields an empty Raw. Load does
// no defaulting or validation beyond syntax.
func Load(path string) (*Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var raw Raw
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".json":
		if len(data) > 0 {
			if err := json.Unmarshal(data, &raw); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	default:
		return nil, fmt.Errorf("%w: %s (expected .yaml, .yml, or .json)", ErrUnsupportedFormat, filepath.Ext(path))
	}

	return &raw, nil
}
