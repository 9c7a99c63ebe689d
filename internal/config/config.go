// Package config loads obra settings from a YAML file, falling back to
// defaults, with environment overrides applied last.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvDir             = "OBRA_DIR"
	EnvTimezone        = "OBRA_TIMEZONE"
	EnvLogLevel        = "OBRA_LOG_LEVEL"
	EnvWarRoomInterval = "OBRA_WARROOM_INTERVAL"
)

// Config is the complete obra configuration.
type Config struct {
	// Dir is the project directory. Empty means search upward for .obra.
	Dir      string        `yaml:"dir"`
	Timezone string        `yaml:"timezone"`
	Log      LogConfig     `yaml:"log"`
	WarRoom  WarRoomConfig `yaml:"warroom"`
	Render   RenderConfig  `yaml:"render"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// WarRoomConfig configures the TV rotation.
type WarRoomConfig struct {
	Interval time.Duration `yaml:"interval"`
	Debounce time.Duration `yaml:"debounce"`
	Views    []string      `yaml:"views"`
	Baseline string        `yaml:"baseline"`
}

// RenderConfig points at an optional SVG style file.
type RenderConfig struct {
	Style string `yaml:"style"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timezone: "Local",
		Log: LogConfig{
			Level: "info",
		},
		WarRoom: WarRoomConfig{
			Interval: 30 * time.Second,
			Debounce: 500 * time.Millisecond,
			Views:    []string{"summary", "curve", "timeline"},
		},
	}
}

// Load reads configuration from path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err = yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
			if cfg.Render.Style != "" && !filepath.IsAbs(cfg.Render.Style) {
				cfg.Render.Style = filepath.Join(filepath.Dir(path), cfg.Render.Style)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v, ok := GetEnv[string](EnvDir); ok {
		c.Dir = v
	}
	if v, ok := GetEnv[string](EnvTimezone); ok {
		c.Timezone = v
	}
	if v, ok := GetEnv[string](EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := GetEnv[time.Duration](EnvWarRoomInterval); ok {
		c.WarRoom.Interval = v
	}
}

// Location resolves Timezone. Empty and "Local" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	default:
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
		return loc, nil
	}
}
