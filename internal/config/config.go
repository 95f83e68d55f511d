// Package config handles exporter configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/tower-tmf/pkg/meshprep"
)

// Config holds all exporter settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds the mesh export settings.
type ExportConfig struct {
	SplitAngle     float32 `yaml:"split_angle"`     // Hard-edge threshold in degrees
	AxisConversion bool    `yaml:"axis_conversion"` // Rotate Z-up sources to Y-up
	MissingUV      string  `yaml:"missing_uv"`      // "zero" or "reject"
	NameEncoding   string  `yaml:"name_encoding"`   // Charset of OBJ object names
	OutputDir      string  `yaml:"output_dir"`      // Default directory for .tmf output
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			SplitAngle:     meshprep.DefaultSplitAngle,
			AxisConversion: true,
			MissingUV:      string(meshprep.UVZeroFill),
			NameEncoding:   "utf-8",
			OutputDir:      "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks that settings are in range.
func (c *Config) Validate() error {
	if c.Export.SplitAngle < 0 || c.Export.SplitAngle > 180 {
		return fmt.Errorf("export.split_angle %v out of range [0, 180]", c.Export.SplitAngle)
	}
	if _, err := meshprep.ParseUVPolicy(c.Export.MissingUV); err != nil {
		return fmt.Errorf("export.missing_uv: %w", err)
	}
	return nil
}

// Options returns the normalizer options described by the export settings.
func (e ExportConfig) Options() (meshprep.Options, error) {
	policy, err := meshprep.ParseUVPolicy(e.MissingUV)
	if err != nil {
		return meshprep.Options{}, err
	}
	return meshprep.Options{
		SplitAngleDegrees: e.SplitAngle,
		AxisUpConversion:  e.AxisConversion,
		MissingUV:         policy,
	}, nil
}
