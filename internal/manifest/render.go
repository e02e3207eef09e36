package manifest

import (
	"errors"
	"fmt"
	"sort"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"sigs.k8s.io/yaml"

	"github.com/cameronsjo/stevedore/internal/config"
)

// ErrUnsupportedFramework indicates the selected builtin framework has no
// workload fragment.
var ErrUnsupportedFramework = errors.New("no builtin runtime for framework")

// Render turns a validated config record into an InferenceService document.
// Output is deterministic for identical input.
func Render(cfg *config.Config) (*InferenceService, error) {
	predictor, err := renderPredictor(cfg)
	if err != nil {
		return nil, err
	}

	doc := &InferenceService{
		APIVersion: APIVersion,
		Kind:       Kind,
		Metadata: ObjectMeta{
			Name:        cfg.Name,
			Namespace:   cfg.Namespace,
			Annotations: renderAnnotations(cfg),
			Labels:      copyMap(cfg.Labels),
		},
		Spec: Spec{Predictor: *predictor},
	}

	if cfg.Transformer != nil {
		component, err := renderSidecar("transformer", cfg.Transformer)
		if err != nil {
			return nil, err
		}
		doc.Spec.Transformer = component
	}
	if cfg.Explainer != nil {
		component, err := renderSidecar("explainer", cfg.Explainer)
		if err != nil {
			return nil, err
		}
		doc.Spec.Explainer = component
	}

	return doc, nil
}

// Marshal serializes a rendered document to YAML.
func Marshal(doc *InferenceService) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

func renderPredictor(cfg *config.Config) (*Predictor, error) {
	minReplicas := cfg.Scaling.MinReplicas
	predictor := &Predictor{
		MinReplicas:          &minReplicas,
		MaxReplicas:          cfg.Scaling.MaxReplicas,
		ScaleTarget:          cfg.Scaling.ScaleTarget,
		ScaleMetric:          cfg.Scaling.ScaleMetric,
		CanaryTrafficPercent: cfg.CanaryPercent,
		ServiceAccountName:   cfg.ServiceAccount,
		NodeSelector:         copyMap(cfg.NodeSelector),
		Tolerations:          cfg.Tolerations,
	}

	resources, err := renderResources(cfg.Resources)
	if err != nil {
		return nil, err
	}
	env := renderEnv(cfg.Env)

	switch cfg.RuntimeType {
	case config.RuntimeCluster:
		runtime := cfg.Runtime
		if runtime == nil {
			// Records built through FromRaw always carry a runtime block;
			// cover hand-built ones with the same synthesis.
			runtime = &config.ClusterRuntime{
				Name:            config.DefaultClusterRuntimeName,
				ProtocolVersion: config.DefaultProtocolVersion,
				ModelFormat:     string(cfg.Framework),
			}
		}
		model := &Model{
			ModelFormat: ModelFormat{Name: runtime.ModelFormat, Version: runtime.Version},
			Runtime:     runtime.Name,
			StorageURI:  cfg.StorageURI,
			Env:         env,
			Resources:   resources,
		}
		model.ProtocolVersion = runtime.ProtocolVersion
		predictor.Model = model

	case config.RuntimeCustom:
		predictor.Containers = []corev1.Container{{
			Name:      PredictorContainerName,
			Image:     cfg.CustomImage,
			Env:       withStorageURI(env, cfg.StorageURI),
			Resources: resources,
		}}

	case config.RuntimeBuiltin:
		fragment := &FrameworkRuntime{
			StorageURI: cfg.StorageURI,
			Env:        env,
			Resources:  resources,
		}
		if cfg.Runtime != nil {
			fragment.ProtocolVersion = cfg.Runtime.ProtocolVersion
		}
		switch cfg.Framework {
		case config.FrameworkTriton:
			predictor.Triton = fragment
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFramework, cfg.Framework)
		}

	default:
		return nil, fmt.Errorf("unknown runtime type %q", cfg.RuntimeType)
	}

	return predictor, nil
}

// renderAnnotations merges the raw-deployment marker into user annotations
// without clobbering other keys.
func renderAnnotations(cfg *config.Config) map[string]string {
	annotations := copyMap(cfg.Annotations)
	if cfg.DeploymentMode == config.ModeRawDeployment {
		if annotations == nil {
			annotations = make(map[string]string, 1)
		}
		annotations[DeploymentModeAnnotation] = string(config.ModeRawDeployment)
	}
	return annotations
}

func renderSidecar(kind string, sidecar *config.Sidecar) (*Component, error) {
	resources, err := renderResources(sidecar.Resources)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	return &Component{
		Containers: []corev1.Container{{
			Name:      kind,
			Image:     sidecar.Image,
			Env:       renderEnv(sidecar.Env),
			Resources: resources,
		}},
	}, nil
}

// renderResources converts quantity strings into a resource block. Empty
// strings are omitted entirely.
func renderResources(res config.Resources) (corev1.ResourceRequirements, error) {
	requirements := corev1.ResourceRequirements{}

	requests, err := quantityList(map[corev1.ResourceName]string{
		corev1.ResourceCPU:    res.CPURequest,
		corev1.ResourceMemory: res.MemoryRequest,
	})
	if err != nil {
		return requirements, err
	}
	limits, err := quantityList(map[corev1.ResourceName]string{
		corev1.ResourceCPU:                   res.CPULimit,
		corev1.ResourceMemory:                res.MemoryLimit,
		corev1.ResourceName(GPUResourceName): res.GPULimit,
	})
	if err != nil {
		return requirements, err
	}

	requirements.Requests = requests
	requirements.Limits = limits
	return requirements, nil
}

func quantityList(values map[corev1.ResourceName]string) (corev1.ResourceList, error) {
	var list corev1.ResourceList
	for name, value := range values {
		if value == "" {
			continue
		}
		quantity, err := resource.ParseQuantity(value)
		if err != nil {
			return nil, fmt.Errorf("parse %s quantity %q: %w", name, value, err)
		}
		if list == nil {
			list = corev1.ResourceList{}
		}
		list[name] = quantity
	}
	return list, nil
}

// renderEnv converts an env map into a sorted EnvVar list for deterministic
// output.
func renderEnv(env map[string]string) []corev1.EnvVar {
	if len(env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vars := make([]corev1.EnvVar, 0, len(keys))
	for _, k := range keys {
		vars = append(vars, corev1.EnvVar{Name: k, Value: env[k]})
	}
	return vars
}

// withStorageURI appends the storage-URI variable, replacing any
// user-supplied value for the same key.
func withStorageURI(env []corev1.EnvVar, uri string) []corev1.EnvVar {
	out := make([]corev1.EnvVar, 0, len(env)+1)
	for _, v := range env {
		if v.Name == StorageURIEnvVar {
			continue
		}
		out = append(out, v)
	}
	return append(out, corev1.EnvVar{Name: StorageURIEnvVar, Value: uri})
}

func copyMap(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
