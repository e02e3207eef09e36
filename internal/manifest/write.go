package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cameronsjo/stevedore/internal/fileutil"
)

const (
	// DefaultOutputDir is where manifests land unless overridden.
	DefaultOutputDir = "manifests"

	// filenameTimestamp keeps auto-generated names sortable.
	filenameTimestamp = "20060102-150405"
)

// Write persists a rendered manifest. When filename is empty one is derived
// from the service name, framework, and current time. The returned path
// always carries a .yaml or .yml extension. The write is atomic: either the
// complete manifest lands or nothing does.
func Write(data []byte, outputDir, filename, serviceName, framework string) (string, error) {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	if filename == "" {
		filename = fmt.Sprintf("%s-%s-%s.yaml", serviceName, framework, time.Now().Format(filenameTimestamp))
	} else if ext := strings.ToLower(filepath.Ext(filename)); ext != ".yaml" && ext != ".yml" {
		filename += ".yaml"
	}

	path := filepath.Join(outputDir, filename)
	if err := fileutil.WriteAtomic(path, data, 0644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}

	return path, nil
}
