package config

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ErrUnknownPreset indicates a sample preset name outside the known set.
var ErrUnknownPreset = errors.New("unknown sample preset")

// Sample presets.
const (
	PresetBasic    = "basic"
	PresetGPU      = "gpu"
	PresetComplete = "complete"
)

// SamplePresets lists the canned config presets in display order.
var SamplePresets = []string{PresetBasic, PresetGPU, PresetComplete}

// sampleData feeds the preset templates.
type sampleData struct {
	Name      string
	Namespace string
}

const basicSample = `# Minimal config: cluster-resolved Triton runtime, serverless deployment.
metadata:
  name: {{ .Name | default "my-model" }}
  namespace: {{ .Namespace | default "default" }}

storage:
  uri: s3://models/{{ .Name | default "my-model" }}/

runtime:
  framework: triton
  type: cluster
`

const gpuSample = `# GPU config: always-on deployment pinned to GPU nodes.
metadata:
  name: {{ .Name | default "gpu-model" }}
  namespace: {{ .Namespace | default "default" }}

storage:
  uri: s3://models/{{ .Name | default "gpu-model" }}/

runtime:
  framework: triton
  type: cluster
  name: triton-server
  deployment_mode: RawDeployment

resources:
  cpu_request: "2"
  cpu_limit: "4"
  memory_request: 8Gi
  memory_limit: 16Gi
  gpu_limit: "1"

scaling:
  min_replicas: 1
  max_replicas: 2

kubernetes:
  node_selector:
    nvidia.com/gpu.present: "true"
  tolerations:
    - key: nvidia.com/gpu
      operator: Exists
      effect: NoSchedule
`

const completeSample = `# Complete config: every supported section populated.
metadata:
  name: {{ .Name | default "full-model" }}
  namespace: {{ .Namespace | default "serving" }}

storage:
  uri: s3://models/{{ .Name | default "full-model" }}/

runtime:
  framework: triton
  type: cluster
  name: triton-server
  version: "23.05"
  protocol_version: v2
  model_format: triton
  deployment_mode: Knative

resources:
  cpu_request: 500m
  cpu_limit: "2"
  memory_request: 1Gi
  memory_limit: 4Gi

scaling:
  min_replicas: 1
  max_replicas: 5
  scale_target: 10
  scale_metric: concurrency

environment:
  LOG_LEVEL: info
  OMP_NUM_THREADS: "4"

kubernetes:
  service_account: model-serving
  node_selector:
    workload: inference
  tolerations:
    - key: dedicated
      operator: Equal
      value: inference
      effect: NoSchedule

annotations:
  sidecar.istio.io/inject: "true"

labels:
  team: ml-platform

advanced:
  canary_percent: 10
  transformer:
    image: registry.example.com/feature-transformer:latest
    env:
      FEATURE_STORE_URL: http://feature-store.serving
    resources:
      cpu_request: 100m
      memory_request: 256Mi
  explainer:
    image: registry.example.com/shap-explainer:latest
    env:
      EXPLAINER_TYPE: shap
    resources:
      cpu_request: 100m
      memory_request: 512Mi
`

var sampleTemplates = map[string]string{
	PresetBasic:    basicSample,
	PresetGPU:      gpuSample,
	PresetComplete: completeSample,
}

// RenderSample renders a preset config file. Name and namespace override the
// preset's placeholders when non-empty.
func RenderSample(preset, name, namespace string) ([]byte, error) {
	text, ok := sampleTemplates[preset]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPreset, preset, SamplePresets)
	}

	tmpl, err := template.New(preset).Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse sample template %s: %w", preset, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, sampleData{Name: name, Namespace: namespace}); err != nil {
		return nil, fmt.Errorf("render sample %s: %w", preset, err)
	}

	return buf.Bytes(), nil
}
