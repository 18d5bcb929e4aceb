package sim

import "github.com/vovakirdan/hellhopper/internal/core"

// DyingState plays a death animation. One implementation serves the three
// causes; the id selects the sound, the launch speed and the sprite color.
type DyingState struct {
	c       *Character
	id      StateID
	elapsed float64
}

func newDyingState(c *Character, id StateID) *DyingState {
	return &DyingState{c: c, id: id}
}

func (s *DyingState) ID() StateID { return s.id }
func (s *DyingState) Reset()      { s.elapsed = 0 }
func (s *DyingState) End()        {}

func (s *DyingState) Start(*ChangeData) {
	c := s.c
	a := c.area
	s.elapsed = 0

	switch s.id {
	case StateDyingFire:
		c.speed = core.V(0, a.tuning.JumpSpeed/2)
		a.signals.PlaySound(SoundBurn)
		a.signals.TriggerVisual(VisualBurn, c.Center())
	case StateDyingEnemy:
		c.speed = core.V(0, a.tuning.JumpSpeed/3)
		a.signals.PlaySound(SoundEnemy)
	default:
		c.speed.X = 0
		a.signals.PlaySound(SoundFall)
	}
}

// Elapsed returns the seconds since the death started.
func (s *DyingState) Elapsed() float64 { return s.elapsed }

func (s *DyingState) Update(d *UpdateData) {
	c := s.c
	s.elapsed += d.Delta
	c.applyGravity(d.Delta)
	c.pos = c.pos.Add(c.speed.Scale(d.Delta))
	c.wrapX()
	if s.elapsed >= c.area.tuning.DyingDuration {
		c.states.ChangeState(StateFinished, &ChangeData{From: s.id})
	}
}

func (s *DyingState) Render(d *RenderData) {
	color := core.ColorRed
	switch s.id {
	case StateDyingFire:
		color = core.ColorEmber
	case StateDyingEnemy:
		color = core.ColorMagenta
	}
	drawCharacter(d, s.c.pos, characterDead, color)
}
