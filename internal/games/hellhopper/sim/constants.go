package sim

import "github.com/vovakirdan/hellhopper/internal/games/hellhopper/level"

// World geometry in meters.
const (
	GameAreaWidth  = level.GameAreaWidth
	PlatformWidth  = level.PlatformWidth
	PlatformHeight = level.PlatformHeight

	CharacterWidth   = 1.0
	CharacterHeight  = 1.5
	CharacterCenterX = CharacterWidth / 2

	// Only the middle of the character's feet lands on platforms.
	CollisionWidth       = 0.6 * CharacterWidth
	CollisionWidthOffset = (CharacterWidth - CollisionWidth) / 2
	CollisionLineLength  = CollisionWidth + CollisionWidthOffset

	Epsilon = 1e-5
)

// Tuning holds the physics and rule parameters of a run.
type Tuning struct {
	Gravity      float64 // m/s²
	JumpSpeed    float64 // m/s, default take-off speed
	MaxFallSpeed float64 // m/s, magnitude of the terminal fall speed

	// FallDeath selects what happens when the character drops below the
	// visible area: die when true, bounce back up with JumpSpeed when false.
	FallDeath bool

	EndCountdown   float64 // seconds between settling and Finished
	EndRestitution float64 // bounce speed divisor at the end floor
	EndDecrement   float64 // subtracted after each end bounce

	DyingDuration      float64 // seconds of death animation
	PickupTextDuration float64 // seconds a pickup label is shown
	CrumbleDuration    float64 // seconds a crumbling platform keeps falling
}

// DefaultTuning returns the standard Hell Hopper parameters.
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:            35.0,
		JumpSpeed:          21.25,
		MaxFallSpeed:       21.25,
		FallDeath:          true,
		EndCountdown:       3.0,
		EndRestitution:     1.5,
		EndDecrement:       0.75,
		DyingDuration:      2.0,
		PickupTextDuration: 3.0,
		CrumbleDuration:    1.0,
	}
}

// normalized fills zero fields with defaults so partially specified tunings
// stay playable.
func (t Tuning) normalized() Tuning {
	d := DefaultTuning()
	if t.Gravity <= 0 {
		t.Gravity = d.Gravity
	}
	if t.JumpSpeed <= 0 {
		t.JumpSpeed = d.JumpSpeed
	}
	if t.MaxFallSpeed <= 0 {
		t.MaxFallSpeed = t.JumpSpeed
	}
	if t.EndCountdown <= 0 {
		t.EndCountdown = d.EndCountdown
	}
	if t.EndRestitution <= 1 {
		t.EndRestitution = d.EndRestitution
	}
	if t.EndDecrement <= 0 {
		t.EndDecrement = d.EndDecrement
	}
	if t.DyingDuration <= 0 {
		t.DyingDuration = d.DyingDuration
	}
	if t.PickupTextDuration <= 0 {
		t.PickupTextDuration = d.PickupTextDuration
	}
	if t.CrumbleDuration <= 0 {
		t.CrumbleDuration = d.CrumbleDuration
	}
	return t
}
