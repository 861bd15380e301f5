// Package config loads the application configuration from a YAML file,
// falling back to defaults when the file is absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DetectorConfig tunes the hand landmark detector.
type DetectorConfig struct {
	MaxHands        int     `yaml:"max_hands"`
	MinConfidence   float64 `yaml:"min_detection_confidence"`
	MinTrackingConf float64 `yaml:"min_tracking_confidence"`
}

// HeatmapConfig sets the ASCII heatmap grid resolution.
type HeatmapConfig struct {
	GridWidth  int `yaml:"grid_width"`
	GridHeight int `yaml:"grid_height"`
}

// PlaybackConfig tunes ffplay window placement.
type PlaybackConfig struct {
	ScreenWidth int `yaml:"screen_width"`
}

// Config is the top-level structure of mudra.yaml.
type Config struct {
	// BaseDir is the workspace root holding the videos, tracked,
	// csv_data and reports folders plus the database.
	BaseDir string `yaml:"base_dir"`

	Detector DetectorConfig `yaml:"detector"`
	Heatmap  HeatmapConfig  `yaml:"heatmap"`
	Playback PlaybackConfig `yaml:"playback"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		BaseDir: ".",
		Detector: DetectorConfig{
			MaxHands:        4,
			MinConfidence:   0.5,
			MinTrackingConf: 0.5,
		},
		Heatmap: HeatmapConfig{
			GridWidth:  80,
			GridHeight: 25,
		},
		Playback: PlaybackConfig{
			ScreenWidth: 1920,
		},
	}
}

// Load reads and parses the config file at path. A missing file yields
// the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := Default()
	if c.BaseDir == "" {
		c.BaseDir = def.BaseDir
	}
	if c.Detector.MaxHands <= 0 {
		c.Detector.MaxHands = def.Detector.MaxHands
	}
	if c.Detector.MinConfidence <= 0 {
		c.Detector.MinConfidence = def.Detector.MinConfidence
	}
	if c.Detector.MinTrackingConf <= 0 {
		c.Detector.MinTrackingConf = def.Detector.MinTrackingConf
	}
	if c.Heatmap.GridWidth <= 0 {
		c.Heatmap.GridWidth = def.Heatmap.GridWidth
	}
	if c.Heatmap.GridHeight <= 0 {
		c.Heatmap.GridHeight = def.Heatmap.GridHeight
	}
	if c.Playback.ScreenWidth <= 0 {
		c.Playback.ScreenWidth = def.Playback.ScreenWidth
	}
}

// DatabasePath returns the SQLite database location under the base dir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.BaseDir, "mudra.db")
}
