package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadHellHopperCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hh.yaml")
	data := []byte("physics:\n  gravity: 40\nrules:\n  fall_death: false\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadHellHopper(path)
	if err != nil {
		t.Fatalf("LoadHellHopper() error = %v", err)
	}
	if cfg.Physics.Gravity != 40 {
		t.Errorf("Physics.Gravity = %v, expected 40", cfg.Physics.Gravity)
	}
	if cfg.Rules.FallDeath {
		t.Error("Rules.FallDeath = true, expected false")
	}
	// Omitted keys keep their defaults.
	if cfg.Physics.JumpSpeed != 21.25 {
		t.Errorf("Physics.JumpSpeed = %v, expected 21.25", cfg.Physics.JumpSpeed)
	}
	if cfg.Camera.VisibleHeight != 20 {
		t.Errorf("Camera.VisibleHeight = %v, expected 20", cfg.Camera.VisibleHeight)
	}
}

func TestLoadHellHopperErrors(t *testing.T) {
	if _, err := LoadHellHopper(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadHellHopper(missing) error = nil, expected an error")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("physics: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadHellHopper(path); err == nil {
		t.Error("LoadHellHopper(broken) error = nil, expected a parse error")
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultHellHopperConfig()
	if err := yaml.Unmarshal(defaultHellHopperYAML, &cfg); err != nil {
		t.Fatalf("embedded defaults: %v", err)
	}
	if cfg != DefaultHellHopperConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultHellHopperConfig())
	}
}

func TestApplyHellHopperPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		wantEnabled bool
		wantInitial float64
	}{
		{DifficultyEasy, true, 0.0},
		{DifficultyNormal, true, 0.3},
		{DifficultyHard, true, 0.7},
		{DifficultyFixed, false, 0.0},
	}

	for _, tt := range tests {
		cfg := DefaultHellHopperConfig()
		ApplyHellHopperPreset(&cfg, tt.preset)
		if cfg.Difficulty.Enabled != tt.wantEnabled {
			t.Errorf("ApplyHellHopperPreset(%s) Enabled = %v, expected %v", tt.preset, cfg.Difficulty.Enabled, tt.wantEnabled)
		}
		if cfg.Difficulty.InitialLevel != tt.wantInitial {
			t.Errorf("ApplyHellHopperPreset(%s) InitialLevel = %v, expected %v", tt.preset, cfg.Difficulty.InitialLevel, tt.wantInitial)
		}
	}
}

func TestApplyPractice(t *testing.T) {
	cfg := DefaultHellHopperConfig()
	ApplyPractice(&cfg)
	if cfg.Rules.FallDeath {
		t.Error("Rules.FallDeath = true after ApplyPractice, expected false")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
		ok   bool
	}{
		{"", DifficultyNormal, true},
		{"easy", DifficultyEasy, true},
		{"hard", DifficultyHard, true},
		{"fixed", DifficultyFixed, true},
		{"insane", "", false},
	}
	for _, tt := range tests {
		got, ok := ParsePreset(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePreset(%q) = %v, %v, expected %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "height", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		height float64
		want   float64
	}{
		{0, 0.2},
		{50, 0.6},
		{100, 1.0},
		{500, 1.0},
	}
	for _, tt := range tests {
		if got := d.Level(tt.height, 0); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Level(%v) = %v, expected %v", tt.height, got, tt.want)
		}
	}

	if got := d.Speed(1, 100, 0); math.Abs(got-2) > 1e-9 {
		t.Errorf("Speed(1, 100) = %v, expected 2", got)
	}

	d.SetEnabled(false)
	if d.IsEnabled() {
		t.Error("IsEnabled() = true, expected false")
	}
	if got := d.Level(100, 0); got != 0.2 {
		t.Errorf("Level() disabled = %v, expected initial 0.2", got)
	}

	d.SetInitialLevel(3)
	if got := d.Level(0, 0); got != 1 {
		t.Errorf("SetInitialLevel(3) clamps to %v, expected 1", got)
	}
}

func TestDifficultyManagerTime(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 600},
	})
	if got := d.Level(1000, 300); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Level(_, 300) = %v, expected 0.5", got)
	}
}
