// Package config holds process configuration for wayfind hosts: an
// explicit object loaded from YAML and passed to the engine, no global
// mutable state.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for configuration validation.
var (
	// ErrBadPrecision indicates a precision other than float32/float64.
	ErrBadPrecision = errors.New("config: precision must be \"float32\" or \"float64\"")

	// ErrBadWorkers indicates a non-positive worker count with parallel
	// queries enabled.
	ErrBadWorkers = errors.New("config: workers must be positive when parallel is enabled")

	// ErrBadConnectivity indicates an unknown grid connectivity.
	ErrBadConnectivity = errors.New("config: connectivity must be \"conn4\" or \"conn8\"")

	// ErrBadPathMode indicates an unknown path rendering mode.
	ErrBadPathMode = errors.New("config: path_mode must be \"smooth\", \"midpoints\" or \"nodes\"")

	// ErrBadTolerance indicates a negative tolerance.
	ErrBadTolerance = errors.New("config: tolerance must be non-negative")

	// ErrBadLevel indicates an unknown log level.
	ErrBadLevel = errors.New("config: log level must be debug, info, warn or error")
)

// Config holds all wayfind host settings.
type Config struct {
	// Precision selects the scalar width the host instantiates the
	// engine with: "float32" or "float64".
	Precision string `yaml:"precision"`

	// Parallel enables concurrent batch queries; Workers bounds the
	// pool.
	Parallel bool `yaml:"parallel"`
	Workers  int  `yaml:"workers"`

	// Connectivity is the default grid connectivity: "conn4" or "conn8".
	Connectivity string `yaml:"connectivity"`

	// PathMode is the default waypoint rendering: "smooth", "midpoints"
	// or "nodes".
	PathMode string `yaml:"path_mode"`

	// Tolerance is the default coordinate tolerance; zero defers to the
	// precision width's epsilon.
	Tolerance float64 `yaml:"tolerance"`

	Log LogConfig `yaml:"log"`
}

// LogConfig holds logging settings, including optional rotated file
// output.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() Config {
	return Config{
		Precision:    "float64",
		Parallel:     false,
		Workers:      4,
		Connectivity: "conn4",
		PathMode:     "smooth",
		Tolerance:    0,
		Log: LogConfig{
			Level:      "info",
			File:       "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.Precision != "float32" && c.Precision != "float64" {
		return fmt.Errorf("%w: %q", ErrBadPrecision, c.Precision)
	}
	if c.Parallel && c.Workers <= 0 {
		return fmt.Errorf("%w: %d", ErrBadWorkers, c.Workers)
	}
	if c.Connectivity != "conn4" && c.Connectivity != "conn8" {
		return fmt.Errorf("%w: %q", ErrBadConnectivity, c.Connectivity)
	}
	switch c.PathMode {
	case "smooth", "midpoints", "nodes":
	default:
		return fmt.Errorf("%w: %q", ErrBadPathMode, c.PathMode)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("%w: %v", ErrBadTolerance, c.Tolerance)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrBadLevel, c.Log.Level)
	}

	return nil
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes the config as YAML, creating parent directories as
// needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
