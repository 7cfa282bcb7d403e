// pkg/config/record.go - the persisted installation record.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Record tracks which version of the application is installed. It is
// overwritten wholesale on every successful install or config-update action.
type Record struct {
	CurrentVersion  string `json:"current_version,omitempty"`
	PreviousVersion string `json:"previous_version,omitempty"`
	LastUpdate      string `json:"last_update,omitempty"`
}

// RecordPath returns the location of the installation record.
func RecordPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "nero.json"), nil
}

// LoadRecord reads the installation record from disk. A missing file yields
// a zero record, matching a machine that never installed anything.
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading installation record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing installation record %s: %w", path, err)
	}
	return &rec, nil
}

// SaveRecord writes the installation record to disk, creating the directory
// if needed.
func SaveRecord(path string, rec *Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing installation record: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating record directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing installation record: %w", err)
	}

	return nil
}

// Apply shifts the current version into the previous slot and records the
// new version with the current time.
func (r *Record) Apply(version string) {
	r.PreviousVersion = r.CurrentVersion
	r.CurrentVersion = version
	r.LastUpdate = time.Now().Format(time.RFC3339)
}
