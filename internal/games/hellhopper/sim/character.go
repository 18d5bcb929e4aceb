package sim

import (
	"github.com/vovakirdan/hellhopper/internal/core"
	"github.com/vovakirdan/hellhopper/internal/games/hellhopper/level"
)

// Outcome is how a run ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeGoal
	OutcomeFell
	OutcomeEnemy
	OutcomeBurned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGoal:
		return "goal"
	case OutcomeFell:
		return "fell"
	case OutcomeEnemy:
		return "enemy"
	case OutcomeBurned:
		return "burned"
	default:
		return "none"
	}
}

// Character is the player avatar. Its position is the bottom-left corner
// of the sprite; x is kept in [-CharacterCenterX, GameAreaWidth-CharacterCenterX).
type Character struct {
	area   *Area
	states *StateManager

	pos   core.Vec2
	speed core.Vec2

	maxHeight  float64
	shield     float64 // seconds left
	jumpFactor float64 // applied to the next jump, 1 when unused
	points     int
	outcome    Outcome

	fx CollisionEffects
}

func newCharacter(a *Area) *Character {
	c := &Character{area: a}
	c.states = NewStateManager(c, a.logger)
	return c
}

// Reset places the character on the ground and starts Normal.
func (c *Character) Reset() {
	c.pos = core.V(GameAreaWidth/2-CharacterCenterX, 0)
	c.speed = core.V(0, c.area.tuning.JumpSpeed)
	c.maxHeight = 0
	c.shield = 0
	c.jumpFactor = 1
	c.points = 0
	c.outcome = OutcomeNone
	c.fx.Clear()
	c.states.Reset()
}

// Position returns the bottom-left corner in meters.
func (c *Character) Position() core.Vec2 { return c.pos }

// Center returns the visual center of the feet line.
func (c *Character) Center() core.Vec2 { return core.V(c.pos.X+CharacterCenterX, c.pos.Y) }

// Speed returns the velocity in m/s.
func (c *Character) Speed() core.Vec2 { return c.speed }

// State returns the id of the active state.
func (c *Character) State() StateID { return c.states.CurrentID() }

// States returns the state manager.
func (c *Character) States() *StateManager { return c.states }

// MaxHeight returns the highest y reached.
func (c *Character) MaxHeight() float64 { return c.maxHeight }

// Shield returns the remaining shield time in seconds.
func (c *Character) Shield() float64 { return c.shield }

// JumpFactor returns the multiplier waiting for the next jump.
func (c *Character) JumpFactor() float64 { return c.jumpFactor }

// Points returns the points collected from items.
func (c *Character) Points() int { return c.points }

// Outcome returns how the run ended, OutcomeNone while it runs.
func (c *Character) Outcome() Outcome { return c.outcome }

// Alive reports whether the character is neither dying nor dead.
func (c *Character) Alive() bool {
	s := c.State()
	return !s.Dying() && (s != StateFinished || c.outcome == OutcomeGoal)
}

// ReachedEnd reports whether the character passed the rise height.
func (c *Character) ReachedEnd() bool { return c.outcome == OutcomeGoal }

// Update runs the active state for one tick.
func (c *Character) Update(data *UpdateData) {
	c.states.Update(data)
}

// Render draws the character through the active state.
func (c *Character) Render(data *RenderData) {
	c.states.Render(data)
}

func (c *Character) wrapX() {
	c.pos.X = core.WrapAround(c.pos.X, CharacterCenterX, GameAreaWidth)
}

func (c *Character) applyGravity(dt float64) {
	t := c.area.tuning
	c.speed.Y -= t.Gravity * dt
	if c.speed.Y < -t.MaxFallSpeed {
		c.speed.Y = -t.MaxFallSpeed
	}
}

// jump launches the character with speed, consuming a pending jump factor.
func (c *Character) jump(speed float64) {
	c.speed.Y = speed * c.jumpFactor
	c.jumpFactor = 1
}

func (c *Character) die(next StateID, outcome Outcome) {
	c.outcome = outcome
	c.states.ChangeState(next, &ChangeData{From: StateNormal, Speed: c.speed.Y})
}

// collect applies an item's effect.
func (c *Character) collect(it *Item) {
	switch it.kind {
	case level.ItemRuby:
		c.points += int(it.value)
	case level.ItemShield:
		c.shield = it.value
	case level.ItemHighJump:
		c.jumpFactor = it.value
	}
}
