package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load builds the export settings. Defaults are overlaid by one YAML file
// (-config, else ./tmfexport.yaml, else config.yaml under ConfigDir), then
// by explicitly set flags. The result is validated. flags may be nil.
func Load(flags *Flags) (*Config, error) {
	cfg := Default()

	// -config skips the lookup
	configPath := ""
	if flags != nil {
		configPath = flags.Config
	}
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	if flags != nil {
		flags.applyFlags(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile returns ./tmfexport.yaml if present, then the per-user
// config.yaml, or "" when neither exists.
func findConfigFile() string {
	candidates := []string{
		"./tmfexport.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user directory holding config.yaml.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "TowerTMF")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "TowerTMF")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "tower-tmf")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tower-tmf")
	}
}

// loadFromFile overlays the keys present in a YAML file onto cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
