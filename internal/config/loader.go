package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory for configs, scores and logs.
const AppDir = ".hellhopper"

// LoadHellHopper loads Hell Hopper configuration.
// Search order: customPath -> ~/.hellhopper/configs/hellhopper.yaml -> ./configs/hellhopper.yaml -> embedded default
// Every file is decoded over the defaults, so keys it omits keep their default value.
func LoadHellHopper(customPath string) (HellHopperConfig, error) {
	cfg := DefaultHellHopperConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserPath("configs", "hellhopper.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultHellHopperConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/hellhopper.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultHellHopperConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultHellHopperYAML, &cfg); err != nil {
		return DefaultHellHopperConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// UserPath returns a path under ~/.hellhopper, or empty if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, AppDir}, elem...)...)
}

// ApplyHellHopperPreset modifies the config based on a difficulty preset.
func ApplyHellHopperPreset(cfg *HellHopperConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

// ApplyPractice switches the rules to practice mode: falling below the
// view bounces the character back instead of ending the run.
func ApplyPractice(cfg *HellHopperConfig) {
	cfg.Rules.FallDeath = false
}
