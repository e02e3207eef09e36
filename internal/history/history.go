// Package history records every manifest the tool writes, so past runs can
// be listed and pruned.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cameronsjo/stevedore/internal/fileutil"
)

const (
	// historyDir holds tool-private state under the output directory.
	historyDir = ".stevedore"

	// historyFile is the record log inside historyDir.
	historyFile = "history.yaml"

	// DefaultKeep is the retention limit applied by Prune.
	DefaultKeep = 20
)

// Record describes one written manifest.
type Record struct {
	// ID is a short random identifier for the run.
	ID string `yaml:"id"`

	// Written is when the manifest was written.
	Written time.Time `yaml:"written"`

	// Path is the manifest file path as written.
	Path string `yaml:"path"`

	// Service and Framework identify what was rendered.
	Service   string `yaml:"service"`
	Framework string `yaml:"framework"`
}

// NewRecord builds a record with a fresh id and the current time.
func NewRecord(path, service, framework string) Record {
	return Record{
		ID:        uuid.New().String()[:8],
		Written:   time.Now().UTC().Truncate(time.Second),
		Path:      path,
		Service:   service,
		Framework: framework,
	}
}

func filePath(outputDir string) string {
	return filepath.Join(outputDir, historyDir, historyFile)
}

// Append adds a record to the history log under outputDir.
func Append(outputDir string, rec Record) error {
	records, err := List(outputDir)
	if err != nil {
		return err
	}

	// List returns newest first; keep the stored order oldest first.
	sort.Slice(records, func(i, j int) bool { return records[i].Written.Before(records[j].Written) })
	records = append(records, rec)

	return save(outputDir, records)
}

// List returns recorded runs, newest first. A missing log means no history.
func List(outputDir string) ([]Record, error) {
	data, err := os.ReadFile(filePath(outputDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Written.After(records[j].Written) })
	return records, nil
}

// Prune drops records beyond the retention limit, oldest first, and returns
// how many were removed. The manifests themselves are left alone.
func Prune(outputDir string, keep int) (int, error) {
	if keep <= 0 {
		keep = DefaultKeep
	}

	records, err := List(outputDir)
	if err != nil {
		return 0, err
	}
	if len(records) <= keep {
		return 0, nil
	}

	removed := len(records) - keep
	records = records[:keep]

	sort.Slice(records, func(i, j int) bool { return records[i].Written.Before(records[j].Written) })
	if err := save(outputDir, records); err != nil {
		return 0, err
	}
	return removed, nil
}

func save(outputDir string, records []Record) error {
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := fileutil.WriteAtomic(filePath(outputDir), data, 0644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
