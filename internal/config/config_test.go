package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	def := Default()
	if cfg != def {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoad_PartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mudra.yaml")
	content := "base_dir: /data/mudra\ndetector:\n  max_hands: 2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BaseDir != "/data/mudra" {
		t.Errorf("BaseDir = %q, want /data/mudra", cfg.BaseDir)
	}
	if cfg.Detector.MaxHands != 2 {
		t.Errorf("MaxHands = %d, want 2", cfg.Detector.MaxHands)
	}
	// Untouched fields fall back to defaults.
	if cfg.Detector.MinConfidence != 0.5 {
		t.Errorf("MinConfidence = %v, want 0.5", cfg.Detector.MinConfidence)
	}
	if cfg.Heatmap.GridWidth != 80 {
		t.Errorf("GridWidth = %d, want 80", cfg.Heatmap.GridWidth)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mudra.yaml")
	if err := os.WriteFile(path, []byte("base_dir: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed yaml")
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := Config{BaseDir: "/data/mudra"}
	want := filepath.Join("/data/mudra", "mudra.db")
	if got := cfg.DatabasePath(); got != want {
		t.Errorf("DatabasePath() = %q, want %q", got, want)
	}
}
