// pkg/config/config.go - configuration settings for nero.

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings holds the configurable options for nero in YAML format.
type Settings struct {
	ReleaseOwner            string   `yaml:"ReleaseOwner"`
	ReleaseRepo             string   `yaml:"ReleaseRepo"`
	DownloadDir             string   `yaml:"DownloadDir"`
	LogLevel                string   `yaml:"LogLevel"`
	HTTPTimeoutSeconds      int      `yaml:"HTTPTimeoutSeconds"`
	InstallerTimeoutMinutes int      `yaml:"InstallerTimeoutMinutes"`
	BlockingProcesses       []string `yaml:"BlockingProcesses"`
	SkipPreflight           bool     `yaml:"SkipPreflight"`
}

// Dir returns the per-OS directory holding nero's settings and record.
// os.UserConfigDir resolves to %APPDATA% on Windows, ~/Library/Application
// Support on macOS and ~/.config elsewhere.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config directory: %w", err)
	}
	return filepath.Join(base, "itsjustregi", "nero"), nil
}

// SettingsPath returns the location of the optional settings file.
func SettingsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.yaml"), nil
}

// DefaultSettings provides default configuration values.
func DefaultSettings() *Settings {
	return &Settings{
		ReleaseOwner:            "invoke-ai",
		ReleaseRepo:             "InvokeAI",
		LogLevel:                "INFO",
		HTTPTimeoutSeconds:      30,
		InstallerTimeoutMinutes: 60,
		BlockingProcesses:       nil,
		SkipPreflight:           false,
	}
}

// LoadSettings loads the settings from a YAML file. A missing file is not an
// error; defaults are returned instead.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings file %s: %w", path, err)
	}

	// Re-apply defaults for fields the file left empty.
	if settings.ReleaseOwner == "" {
		settings.ReleaseOwner = "invoke-ai"
	}
	if settings.ReleaseRepo == "" {
		settings.ReleaseRepo = "InvokeAI"
	}
	if settings.HTTPTimeoutSeconds <= 0 {
		settings.HTTPTimeoutSeconds = 30
	}
	if settings.InstallerTimeoutMinutes <= 0 {
		settings.InstallerTimeoutMinutes = 60
	}

	return settings, nil
}

// SaveSettings saves the current settings to a YAML file.
func SaveSettings(path string, settings *Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("serializing settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}

	return nil
}
