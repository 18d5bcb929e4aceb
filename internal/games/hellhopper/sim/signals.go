package sim

import "github.com/vovakirdan/hellhopper/internal/core"

// Sound identifies a sound cue the simulation asks to be played.
type Sound int

const (
	SoundJump Sound = iota
	SoundJumpBoost
	SoundCrumble
	SoundBurn
	SoundFall
	SoundEnemy
	SoundPickup
	SoundShieldBlock
	SoundReveal
	SoundSheep
	SoundFinish
)

func (s Sound) String() string {
	switch s {
	case SoundJump:
		return "jump"
	case SoundJumpBoost:
		return "jumpboost"
	case SoundCrumble:
		return "crumble"
	case SoundBurn:
		return "burn"
	case SoundFall:
		return "fall"
	case SoundEnemy:
		return "enemy"
	case SoundPickup:
		return "pickup"
	case SoundShieldBlock:
		return "shieldblock"
	case SoundReveal:
		return "reveal"
	case SoundSheep:
		return "sheep"
	case SoundFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// Visual identifies a one-shot visual effect.
type Visual int

const (
	VisualBoost Visual = iota
	VisualBurn
	VisualCrumble
	VisualPickup
	VisualReveal
	VisualShieldBlock
)

// VisualEvent is a visual effect anchored at a world position.
type VisualEvent struct {
	Kind Visual
	At   core.Vec2
}

// Signals receives the simulation's outbound cues. Implementations must not
// block; the simulation never waits on them.
type Signals interface {
	PlaySound(s Sound)
	TriggerVisual(v Visual, at core.Vec2)
}

// SignalQueue buffers signals until the caller drains them.
type SignalQueue struct {
	sounds  []Sound
	visuals []VisualEvent
}

// PlaySound queues a sound cue.
func (q *SignalQueue) PlaySound(s Sound) {
	q.sounds = append(q.sounds, s)
}

// TriggerVisual queues a visual effect.
func (q *SignalQueue) TriggerVisual(v Visual, at core.Vec2) {
	q.visuals = append(q.visuals, VisualEvent{Kind: v, At: at})
}

// Drain returns the queued signals and empties the queue. The returned
// slices are only valid until the next call that queues a signal.
func (q *SignalQueue) Drain() ([]Sound, []VisualEvent) {
	sounds, visuals := q.sounds, q.visuals
	q.sounds = q.sounds[:0]
	q.visuals = q.visuals[:0]
	return sounds, visuals
}

type discardSignals struct{}

func (discardSignals) PlaySound(Sound)                {}
func (discardSignals) TriggerVisual(Visual, core.Vec2) {}
