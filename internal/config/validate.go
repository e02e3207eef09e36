package config

import (
	"errors"
	"fmt"

	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/util/validation"
)

// ErrInvalidConfig indicates the canonical record fails validation. The
// message carries the first violation found.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the canonical record after defaulting. It stops at the
// first violation. Rendering a record that passed Validate cannot fail on
// user input.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if msgs := validation.IsDNS1123Subdomain(c.Name); len(msgs) > 0 {
		return fmt.Errorf("%w: name %q: %s", ErrInvalidConfig, c.Name, msgs[0])
	}
	if c.StorageURI == "" {
		return fmt.Errorf("%w: storage URI is required", ErrInvalidConfig)
	}

	if _, err := ParseFramework(string(c.Framework)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := ParseRuntimeType(string(c.RuntimeType)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := ParseDeploymentMode(string(c.DeploymentMode)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if c.RuntimeType == RuntimeCustom && c.CustomImage == "" {
		return fmt.Errorf("%w: runtime type %q requires a custom image", ErrInvalidConfig, RuntimeCustom)
	}

	if c.Scaling.MinReplicas < 0 {
		return fmt.Errorf("%w: min replicas must not be negative", ErrInvalidConfig)
	}
	if c.Scaling.MinReplicas > c.Scaling.MaxReplicas {
		return fmt.Errorf("%w: min replicas (%d) exceeds max replicas (%d)",
			ErrInvalidConfig, c.Scaling.MinReplicas, c.Scaling.MaxReplicas)
	}

	if err := checkQuantities("resources", c.Resources); err != nil {
		return err
	}
	if c.Transformer != nil {
		if c.Transformer.Image == "" {
			return fmt.Errorf("%w: transformer requires an image", ErrInvalidConfig)
		}
		if err := checkQuantities("transformer resources", c.Transformer.Resources); err != nil {
			return err
		}
	}
	if c.Explainer != nil {
		if c.Explainer.Image == "" {
			return fmt.Errorf("%w: explainer requires an image", ErrInvalidConfig)
		}
		if err := checkQuantities("explainer resources", c.Explainer.Resources); err != nil {
			return err
		}
	}

	if c.CanaryPercent != nil && (*c.CanaryPercent < 0 || *c.CanaryPercent > 100) {
		return fmt.Errorf("%w: canary percent must be between 0 and 100", ErrInvalidConfig)
	}

	return nil
}

// checkQuantities validates non-empty quantity strings with the platform's
// own parser so rendering never hits a malformed quantity.
func checkQuantities(section string, res Resources) error {
	fields := []struct {
		name  string
		value string
	}{
		{"cpu request", res.CPURequest},
		{"cpu limit", res.CPULimit},
		{"memory request", res.MemoryRequest},
		{"memory limit", res.MemoryLimit},
		{"gpu limit", res.GPULimit},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if _, err := resource.ParseQuantity(f.value); err != nil {
			return fmt.Errorf("%w: %s %s %q: %v", ErrInvalidConfig, section, f.name, f.value, err)
		}
	}
	return nil
}
