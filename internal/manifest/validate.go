package manifest

import (
	"fmt"

	"sigs.k8s.io/yaml"
)

// Result is the outcome of checking a rendered manifest. Check never fails
// outright; every problem lands in Errors.
type Result struct {
	// Valid is true when no errors were found.
	Valid bool

	// Errors holds human-readable problem descriptions.
	Errors []string

	// Manifest is the re-parsed document, nil when parsing failed.
	Manifest map[string]any
}

// Check re-parses a rendered manifest and verifies its basic structure:
// metadata.name present, spec.predictor present, and a non-empty storage URI
// on the record that produced it.
func Check(rendered []byte, storageURI string) Result {
	result := Result{}

	var doc map[string]any
	if err := yaml.Unmarshal(rendered, &doc); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("parse rendered manifest: %v", err))
		return result
	}
	result.Manifest = doc

	metadata, _ := doc["metadata"].(map[string]any)
	if name, _ := metadata["name"].(string); name == "" {
		result.Errors = append(result.Errors, "manifest is missing metadata.name")
	}

	spec, _ := doc["spec"].(map[string]any)
	if _, ok := spec["predictor"]; !ok {
		result.Errors = append(result.Errors, "manifest is missing spec.predictor")
	}

	if storageURI == "" {
		result.Errors = append(result.Errors, "storage URI is empty")
	}

	result.Valid = len(result.Errors) == 0
	return result
}
