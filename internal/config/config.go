// Package config provides YAML-based game configuration loading and
// difficulty management for Hell Hopper.
package config

// HellHopperConfig contains all configuration for Hell Hopper.
type HellHopperConfig struct {
	Physics    HellHopperPhysics `yaml:"physics"`
	Camera     CameraConfig      `yaml:"camera"`
	Controls   ControlsConfig    `yaml:"controls"`
	Rules      RulesConfig       `yaml:"rules"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// HellHopperPhysics defines the character and platform physics. All values
// are in meters and seconds.
type HellHopperPhysics struct {
	Gravity         float64 `yaml:"gravity"`
	JumpSpeed       float64 `yaml:"jump_speed"`
	MaxFallSpeed    float64 `yaml:"max_fall_speed"`
	CrumbleDuration float64 `yaml:"crumble_duration"`
}

// CameraConfig defines how the view follows the character.
type CameraConfig struct {
	VisibleHeight float64 `yaml:"visible_height"` // Meters shown on screen
	FollowRatio   float64 `yaml:"follow_ratio"`   // Screen fraction the character may climb to before the view moves
}

// ControlsConfig defines steering.
type ControlsConfig struct {
	SteerSpeed float64 `yaml:"steer_speed"` // m/s while steering
	SteerHold  float64 `yaml:"steer_hold"`  // Seconds a key press keeps steering
}

// RulesConfig defines game rules.
type RulesConfig struct {
	FallDeath     bool    `yaml:"fall_death"`     // Die below the view; bounce back when false
	EndCountdown  float64 `yaml:"end_countdown"`  // Seconds from settling to the end of the run
	DyingDuration float64 `yaml:"dying_duration"` // Seconds of death animation
	PickupText    float64 `yaml:"pickup_text"`    // Seconds a pickup label stays visible
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "height", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Meters/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to platform speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	case "":
		return DifficultyNormal, true
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
