package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load builds the configuration with priority defaults < file < flags and
// validates the result.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findConfigFile looks for trefoil.yaml in the working directory, then in
// the user config directory.
func findConfigFile() string {
	candidates := []string{
		"./trefoil.yaml",
		filepath.Join(ConfigDir(), "trefoil.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Trefoil")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Trefoil")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "trefoil")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "trefoil")
	}
}

// loadFromFile merges a YAML file over cfg. Unknown keys are rejected so
// typos do not silently fall back to defaults.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
