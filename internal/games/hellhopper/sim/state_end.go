package sim

import (
	"math"

	"github.com/vovakirdan/hellhopper/internal/core"
)

// Restitution returns the bounce speed after hitting the end floor with
// speed v: |v|/divisor - decrement, never below zero.
func Restitution(v, divisor, decrement float64) float64 {
	return math.Max(math.Abs(v)/divisor-decrement, 0)
}

// EndState runs after the rise height was passed. The character bounces on
// the end floor until it settles, then a countdown leads to Finished.
type EndState struct {
	c *Character

	contacts  int
	settled   bool
	countdown float64
	sheep     float64 // seconds to the next sheep cue
}

func (s *EndState) ID() StateID { return StateEnd }

func (s *EndState) Reset() {
	s.contacts = 0
	s.settled = false
	s.countdown = 0
	s.sheep = 0
}

func (s *EndState) Start(*ChangeData) {
	s.Reset()
	s.countdown = s.c.area.tuning.EndCountdown
	s.scheduleSheep()
	s.c.area.signals.PlaySound(SoundFinish)
}

func (s *EndState) End() {}

// Settled reports whether the bounces have died out.
func (s *EndState) Settled() bool { return s.settled }

// Contacts returns the number of floor contacts so far.
func (s *EndState) Contacts() int { return s.contacts }

func (s *EndState) Update(d *UpdateData) {
	c := s.c
	dt := d.Delta

	if s.settled {
		s.countdown -= dt
		if s.countdown <= 0 {
			c.states.ChangeState(StateFinished, &ChangeData{From: StateEnd})
			return
		}
	} else {
		s.bounce(d)
	}

	s.sheep -= dt
	if s.sheep <= 0 {
		c.area.signals.PlaySound(SoundSheep)
		s.scheduleSheep()
	}
}

// bounce moves the character and bounces it off the end floor until the
// restitution leaves no upward speed.
func (s *EndState) bounce(d *UpdateData) {
	c := s.c
	a := c.area
	dt := d.Delta

	c.speed.X = d.HorizontalSpeed
	c.applyGravity(dt)
	c.pos = c.pos.Add(c.speed.Scale(dt))
	c.wrapX()

	floor := a.RiseHeight()
	if c.pos.Y > floor || c.speed.Y > 0 {
		return
	}
	c.pos.Y = floor
	if s.contacts == 0 {
		c.speed.Y = a.tuning.JumpSpeed
	} else {
		c.speed.Y = Restitution(c.speed.Y, a.tuning.EndRestitution, a.tuning.EndDecrement)
	}
	s.contacts++
	if c.speed.Y <= 0 {
		c.speed = core.Vec2{}
		s.settled = true
	}
}

func (s *EndState) scheduleSheep() {
	s.sheep = 0.5 + s.c.area.rng.Float64()*2.5
}

func (s *EndState) Render(d *RenderData) {
	drawCharacter(d, s.c.pos, characterNormal, core.ColorGreen)
}
