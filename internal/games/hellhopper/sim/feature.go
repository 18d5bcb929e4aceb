package sim

import (
	"fmt"

	"github.com/vovakirdan/hellhopper/internal/core"
	"github.com/vovakirdan/hellhopper/internal/games/hellhopper/level"
)

// CollisionEffect is one kind of effect a platform can report on contact.
type CollisionEffect uint8

const (
	EffectBurn CollisionEffect = 1 << iota
	EffectJumpBoost
	EffectRepositionPlatforms
	EffectVisibleOnJump
)

// CollisionEffects is the per-contact result of querying a platform's
// features. It is filled, consumed and cleared within a single update.
type CollisionEffects struct {
	set            CollisionEffect
	JumpBoostSpeed float64
}

// Set marks an effect as active.
func (e *CollisionEffects) Set(k CollisionEffect) {
	e.set |= k
}

// SetJumpBoost activates the jump boost with the given take-off speed.
func (e *CollisionEffects) SetJumpBoost(speed float64) {
	e.set |= EffectJumpBoost
	e.JumpBoostSpeed = speed
}

// Has reports whether an effect is active.
func (e *CollisionEffects) Has(k CollisionEffect) bool {
	return e.set&k != 0
}

// Empty reports whether no effect is active.
func (e *CollisionEffects) Empty() bool {
	return e.set == 0
}

// Clear resets the record for the next contact.
func (e *CollisionEffects) Clear() {
	*e = CollisionEffects{}
}

// Feature is a modifier attached to a platform and queried on contact.
// Implementations: JumpBoost, Flame, VisibleOnJump, Reposition.
type Feature interface {
	Kind() level.FeatureType
	Update(dt float64)

	// ApplyEffects adds the feature's effects for a contact whose feet
	// center lies localX meters right of the platform's left edge.
	ApplyEffects(localX float64, fx *CollisionEffects)
}

type featureFactory func() Feature

func compileFeature(f level.Feature, jumpSpeed float64) (featureFactory, error) {
	switch f.Type {
	case level.FeatureJumpBoost:
		offset, err := f.Properties.Float("offset", 3)
		if err != nil {
			return nil, err
		}
		speed, err := f.Properties.Float("speed", jumpSpeed*1.4)
		if err != nil {
			return nil, err
		}
		if offset < 0 || offset > level.PlatformWidthOffsets-JumpBoostWidthOffsets {
			return nil, fmt.Errorf("jumpboost: offset %v outside platform", offset)
		}
		return func() Feature {
			return NewJumpBoost(offset*level.OffsetWidth, speed)
		}, nil

	case level.FeatureFlame:
		on, err := f.Properties.Float("on", 1.5)
		if err != nil {
			return nil, err
		}
		off, err := f.Properties.Float("off", 2.0)
		if err != nil {
			return nil, err
		}
		delay, err := f.Properties.Float("delay", 0)
		if err != nil {
			return nil, err
		}
		if on <= 0 || off < 0 {
			return nil, fmt.Errorf("flame: invalid durations on=%v off=%v", on, off)
		}
		return func() Feature {
			return NewFlame(on, off, delay)
		}, nil

	case level.FeatureVisibleOnJump:
		return func() Feature { return VisibleOnJump{} }, nil

	case level.FeatureReposition:
		return func() Feature { return Reposition{} }, nil
	}

	return nil, fmt.Errorf("%w: %v", level.ErrUnknownFeature, f.Type)
}

// JumpBoostWidthOffsets is the width of a jump boost pad in grid offsets.
const JumpBoostWidthOffsets = 2

// JumpBoost launches the character with a higher speed when its feet touch
// the pad.
type JumpBoost struct {
	left  float64 // pad start, meters from the platform's left edge
	width float64
	speed float64
}

// NewJumpBoost creates a pad starting left meters into the platform.
func NewJumpBoost(left, speed float64) *JumpBoost {
	return &JumpBoost{
		left:  left,
		width: JumpBoostWidthOffsets * level.OffsetWidth,
		speed: speed,
	}
}

func (j *JumpBoost) Kind() level.FeatureType { return level.FeatureJumpBoost }
func (j *JumpBoost) Update(float64)          {}

func (j *JumpBoost) ApplyEffects(localX float64, fx *CollisionEffects) {
	feetLeft := localX - CollisionWidth/2
	feetRight := localX + CollisionWidth/2
	if feetRight > j.left && feetLeft < j.left+j.width {
		fx.SetJumpBoost(j.speed)
	}
}

// Span returns the pad's extent in meters from the platform's left edge.
func (j *JumpBoost) Span() (left, width float64) {
	return j.left, j.width
}

// Flame burns the whole platform while lit. It cycles on for On seconds
// and off for Off seconds after an initial Delay.
type Flame struct {
	on, off, delay float64
	elapsed        float64
}

// NewFlame creates a flame cycle.
func NewFlame(on, off, delay float64) *Flame {
	return &Flame{on: on, off: off, delay: delay}
}

func (f *Flame) Kind() level.FeatureType { return level.FeatureFlame }

func (f *Flame) Update(dt float64) {
	f.elapsed += dt
}

func (f *Flame) phase() (float64, bool) {
	if f.elapsed < f.delay {
		return 0, false
	}
	return core.PositiveMod(f.elapsed-f.delay, f.on+f.off), true
}

// Lit reports whether the flame is burning.
func (f *Flame) Lit() bool {
	p, started := f.phase()
	return started && p < f.on
}

// Igniting reports whether the flame is about to light up.
func (f *Flame) Igniting() bool {
	p, started := f.phase()
	if !started {
		return f.delay-f.elapsed < 0.5
	}
	return p >= f.on && p > f.on+f.off-0.5
}

func (f *Flame) ApplyEffects(_ float64, fx *CollisionEffects) {
	if f.Lit() {
		fx.Set(EffectBurn)
	}
}

// VisibleOnJump marks a platform that stays hidden until a character lands
// on a platform of its section that carries the same feature.
type VisibleOnJump struct{}

func (VisibleOnJump) Kind() level.FeatureType { return level.FeatureVisibleOnJump }
func (VisibleOnJump) Update(float64)          {}
func (VisibleOnJump) ApplyEffects(_ float64, fx *CollisionEffects) {
	fx.Set(EffectVisibleOnJump)
}

// Reposition shuffles the section's reposition platforms after each jump.
type Reposition struct{}

func (Reposition) Kind() level.FeatureType { return level.FeatureReposition }
func (Reposition) Update(float64)          {}
func (Reposition) ApplyEffects(_ float64, fx *CollisionEffects) {
	fx.Set(EffectRepositionPlatforms)
}
