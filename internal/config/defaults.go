package config

import (
	_ "embed"
)

//go:embed defaults/hellhopper.yaml
var defaultHellHopperYAML []byte

// DefaultHellHopperConfig returns the default Hell Hopper configuration.
func DefaultHellHopperConfig() HellHopperConfig {
	return HellHopperConfig{
		Physics: HellHopperPhysics{
			Gravity:         35.0,
			JumpSpeed:       21.25,
			MaxFallSpeed:    21.25,
			CrumbleDuration: 1.0,
		},
		Camera: CameraConfig{
			VisibleHeight: 20,
			FollowRatio:   0.4,
		},
		Controls: ControlsConfig{
			SteerSpeed: 8,
			SteerHold:  0.15,
		},
		Rules: RulesConfig{
			FallDeath:     true,
			EndCountdown:  3.0,
			DyingDuration: 2.0,
			PickupText:    3.0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "height",
				MaxAt: 100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}
