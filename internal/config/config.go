// Package config defines the scan tools' configuration and its layered
// loading.
package config

import (
	"fmt"
	"log/slog"

	"phonebox-scanner/internal/classify"
	"phonebox-scanner/internal/grid"
)

// Config contains process configuration for the scan tools.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Box is the default box layout selector, e.g. "10F" or "SM2".
	Box string `koanf:"box"`

	// Crop overrides the layout's default crop region when set.
	Crop grid.CropPercent `koanf:"crop"`

	// MinDarkRatio is the presence threshold on the dark pixel ratio.
	MinDarkRatio float64 `koanf:"min_dark_ratio"`

	// MinSaturation is the presence threshold on average saturation.
	MinSaturation float64 `koanf:"min_saturation"`

	// BaselinePath points at the baseline store. Empty means the
	// per-user default location.
	BaselinePath string `koanf:"baseline_path"`

	// RosterPath points at the roster CSV. Empty scans without a
	// roster.
	RosterPath string `koanf:"roster_path"`

	// Output is the result CSV path. Empty prints the console table
	// only.
	Output string `koanf:"output"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		MinDarkRatio:  0.40,
		MinSaturation: 0.20,
	}
}

// Validate checks field ranges. The crop is only checked when set.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.MinDarkRatio < 0 || c.MinDarkRatio > 1 {
		return fmt.Errorf("%w: min_dark_ratio %v outside [0,1]", ErrInvalidConfig, c.MinDarkRatio)
	}
	if c.MinSaturation < 0 || c.MinSaturation > 1 {
		return fmt.Errorf("%w: min_saturation %v outside [0,1]", ErrInvalidConfig, c.MinSaturation)
	}
	if c.CropSet() {
		if err := c.Crop.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// CropSet reports whether the config carries a crop override.
func (c *Config) CropSet() bool {
	return c.Crop != (grid.CropPercent{})
}

// Thresholds returns the configured presence thresholds.
func (c *Config) Thresholds() classify.Thresholds {
	return classify.Thresholds{MinDarkRatio: c.MinDarkRatio, MinSaturation: c.MinSaturation}
}

// SlogLevel maps the configured log level onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
