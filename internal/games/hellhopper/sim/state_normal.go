package sim

import (
	"github.com/vovakirdan/hellhopper/internal/core"
)

// NormalState is the playing state: gravity, landings, pickups and hazards.
type NormalState struct {
	c *Character
}

func (s *NormalState) ID() StateID       { return StateNormal }
func (s *NormalState) Reset()            {}
func (s *NormalState) Start(*ChangeData) {}
func (s *NormalState) End()              {}

func (s *NormalState) Update(d *UpdateData) {
	if s.preUpdate(d) {
		return
	}
	s.step(d)
}

// preUpdate handles the ground and the bottom of the visible area. It
// reports whether the state changed.
func (s *NormalState) preUpdate(d *UpdateData) bool {
	c := s.c
	a := c.area

	switch {
	case c.pos.Y <= 0 && c.speed.Y <= 0:
		c.pos.Y = 0
		c.jump(a.tuning.JumpSpeed)
		a.signals.PlaySound(SoundJump)

	case c.pos.Y < d.VisibleBottom && c.speed.Y <= 0:
		if a.tuning.FallDeath {
			c.die(StateDyingFall, OutcomeFell)
			return true
		}
		c.jump(a.tuning.JumpSpeed)
		a.signals.PlaySound(SoundJump)
	}
	return false
}

func (s *NormalState) step(d *UpdateData) {
	c := s.c
	a := c.area
	dt := d.Delta

	c.speed.X = d.HorizontalSpeed
	c.applyGravity(dt)
	next := c.pos.Add(c.speed.Scale(dt))

	var (
		contact Contact
		hit     bool
	)
	if d.Contact != nil {
		contact, hit = *d.Contact, true
	} else if c.speed.Y <= 0 {
		contact, hit = sweepSections(a.sections, c.pos, next)
	}

	if hit {
		c.pos = contact.At
	} else {
		c.pos = next
	}
	c.wrapX()
	if hit && !s.land(contact) {
		return
	}

	if c.pos.Y > c.maxHeight {
		c.maxHeight = c.pos.Y
	}
	if c.shield > 0 {
		c.shield = max(c.shield-dt, 0)
	}

	if s.overlaps() {
		return
	}

	if c.pos.Y > a.RiseHeight() {
		c.outcome = OutcomeGoal
		c.states.ChangeState(StateEnd, &ChangeData{From: StateNormal, Speed: c.speed.Y})
	}
}

// land resolves a contact. It returns false when the character died.
func (s *NormalState) land(contact Contact) bool {
	c := s.c
	a := c.area
	p := contact.Platform
	fx := &c.fx
	defer fx.Clear()

	fx.Clear()
	p.CollisionEffects(c.pos.X, fx)

	if fx.Has(EffectBurn) {
		if c.shield <= 0 {
			c.die(StateDyingFire, OutcomeBurned)
			return false
		}
		a.signals.PlaySound(SoundShieldBlock)
		a.signals.TriggerVisual(VisualShieldBlock, c.Center())
	}

	if fx.Has(EffectJumpBoost) {
		c.jump(fx.JumpBoostSpeed)
		a.signals.PlaySound(SoundJumpBoost)
		a.signals.TriggerVisual(VisualBoost, c.Center())
	} else {
		c.jump(a.tuning.JumpSpeed)
		a.signals.PlaySound(SoundJump)
	}

	sec := a.sections[p.section]
	if fx.Has(EffectRepositionPlatforms) {
		sec.TriggerReposition(p.id)
	}
	if fx.Has(EffectVisibleOnJump) && sec.TriggerVisibleOnJump() {
		a.signals.PlaySound(SoundReveal)
		a.signals.TriggerVisual(VisualReveal, c.Center())
	}
	if p.onJump() {
		a.signals.PlaySound(SoundCrumble)
		a.signals.TriggerVisual(VisualCrumble, p.Position().Add(platformCenterOffset))
	}
	return true
}

// overlaps collects items and checks enemies. It reports whether the
// character died.
func (s *NormalState) overlaps() bool {
	c := s.c
	a := c.area

	for _, owner := range a.space.overlaps(c.pos, tagItem) {
		it, ok := owner.(*Item)
		if !ok || it.state != ItemExisting {
			continue
		}
		c.collect(it)
		it.pickUp(a.tuning.PickupTextDuration)
		a.space.remove(it.shape)
		a.signals.PlaySound(SoundPickup)
		a.signals.TriggerVisual(VisualPickup, it.Position())
		a.logger.Debug("item collected", "item", it.kind, "points", c.points)
	}

	if len(a.space.overlaps(c.pos, tagEnemy)) > 0 {
		c.die(StateDyingEnemy, OutcomeEnemy)
		return true
	}
	return false
}

func (s *NormalState) Render(d *RenderData) {
	c := s.c
	color := core.ColorYellow
	if c.shield > 0 {
		color = core.ColorCyan
	}
	drawCharacter(d, c.pos, characterNormal, color)
}
