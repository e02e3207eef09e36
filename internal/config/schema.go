package config

import (
	"errors"
	"fmt"
)

// ErrSchema indicates the raw config violates the file schema. The message
// carries the first violation found; checking stops there.
var ErrSchema = errors.New("config schema violation")

// CheckSchema verifies required sections and enumeration strings on a raw
// config before defaulting. It returns the first violation encountered.
func CheckSchema(raw *Raw) error {
	if raw.Metadata.Name == "" {
		return fmt.Errorf("%w: metadata.name is required", ErrSchema)
	}
	if raw.Storage.URI == "" {
		return fmt.Errorf("%w: storage.uri is required", ErrSchema)
	}

	if raw.Runtime.Framework != "" {
		if _, err := ParseFramework(raw.Runtime.Framework); err != nil {
			return fmt.Errorf("%w: runtime.framework: %v", ErrSchema, err)
		}
	}
	if raw.Runtime.Type != "" {
		if _, err := ParseRuntimeType(raw.Runtime.Type); err != nil {
			return fmt.Errorf("%w: runtime.type: %v", ErrSchema, err)
		}
	}
	if raw.Runtime.DeploymentMode != "" {
		if _, err := ParseDeploymentMode(raw.Runtime.DeploymentMode); err != nil {
			return fmt.Errorf("%w: runtime.deployment_mode: %v", ErrSchema, err)
		}
	}

	return nil
}
