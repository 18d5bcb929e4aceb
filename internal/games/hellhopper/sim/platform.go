package sim

import (
	"github.com/vovakirdan/hellhopper/internal/core"
	"github.com/vovakirdan/hellhopper/internal/games/hellhopper/level"
)

// Platform is a live platform inside an active rise section.
type Platform struct {
	id       int
	typ      level.PlatformType
	section  int // index into Area.sections
	initial  core.Vec2
	movement Movement
	features []Feature
	enemy    *Enemy

	prev      core.Vec2 // position before this tick's update
	lastDelta float64

	hidden     bool
	crumbling  bool
	crumbleAge float64
	fall       float64 // accumulated fall distance while crumbling
	fallSpeed  float64
	gone       bool
}

// ID returns the platform id from level data.
func (p *Platform) ID() int { return p.id }

// Type returns the platform type.
func (p *Platform) Type() level.PlatformType { return p.typ }

// Section returns the index of the owning rise section.
func (p *Platform) Section() int { return p.section }

// InitialPosition returns the position the platform was created at.
func (p *Platform) InitialPosition() core.Vec2 { return p.initial }

// Position returns the current position (bottom-left corner).
func (p *Platform) Position() core.Vec2 {
	pos := p.movement.Position()
	pos.Y -= p.fall
	return pos
}

// PreviousPosition returns the position before the latest update.
func (p *Platform) PreviousPosition() core.Vec2 { return p.prev }

// Velocity returns the platform's velocity over the latest update.
func (p *Platform) Velocity() core.Vec2 {
	if p.lastDelta <= 0 {
		return core.Vec2{}
	}
	return p.Position().Sub(p.prev).Scale(1 / p.lastDelta)
}

// HasVerticalMovement reports whether the movement strategy moves the
// platform vertically.
func (p *Platform) HasVerticalMovement() bool {
	return p.movement.HasVerticalMovement()
}

// Hidden reports whether the platform is invisible. Hidden platforms still
// collide.
func (p *Platform) Hidden() bool { return p.hidden }

// Collidable reports whether the character can land on the platform.
func (p *Platform) Collidable() bool { return !p.crumbling && !p.gone }

// Gone reports whether a crumbled platform has disappeared.
func (p *Platform) Gone() bool { return p.gone }

// Crumbling reports whether the platform is falling apart.
func (p *Platform) Crumbling() bool { return p.crumbling }

// Features returns the attached features.
func (p *Platform) Features() []Feature { return p.features }

// Update advances movement, features and crumbling by dt.
func (p *Platform) Update(dt float64, gravity float64, crumbleDuration float64) {
	p.prev = p.Position()
	p.lastDelta = dt

	if p.crumbling {
		p.crumbleAge += dt
		p.fallSpeed += gravity * dt
		p.fall += p.fallSpeed * dt
		if p.crumbleAge >= crumbleDuration {
			p.gone = true
		}
		return
	}

	p.movement.UpdatePosition(dt)
	for _, f := range p.features {
		f.Update(dt)
	}
	if p.enemy != nil {
		p.enemy.update(dt)
	}
}

// IsCollision tests the character's path from c1 to c2 against the
// platform's top line. The path is expressed in the platform's frame: c1
// relative to the previous platform position and c2 relative to the
// current one, so a platform that moved during the tick is swept too.
// Both positions are the character's bottom-left corner. It returns the
// character position at the contact.
func (p *Platform) IsCollision(c1, c2 core.Vec2) (core.Vec2, bool) {
	if !p.Collidable() {
		return core.Vec2{}, false
	}

	cur := p.Position()
	l1 := c1.Sub(p.prev)
	l2 := c2.Sub(cur)

	// The world wraps horizontally; test the path and its two neighbors.
	for _, shift := range [...]float64{0, -GameAreaWidth, GameAreaWidth} {
		a := core.V(l1.X+shift, l1.Y)
		b := core.V(l2.X+shift, l2.Y)
		x, ok := intersectTopLine(a, b)
		if ok {
			return core.V(cur.X+x-shift, cur.Y+PlatformHeight), true
		}
	}
	return core.Vec2{}, false
}

// intersectTopLine intersects the local path a→b with the platform's top
// line y = PlatformHeight, x in [-CollisionLineLength, PlatformWidth-CollisionWidthOffset].
// The line spans every character x whose feet overlap the platform.
func intersectTopLine(a, b core.Vec2) (float64, bool) {
	const top = PlatformHeight
	if a.Y < top || b.Y > top {
		return 0, false
	}
	// a.Y == b.Y only when the path rests exactly on the line.
	t := 0.0
	if dy := a.Y - b.Y; dy > 0 {
		t = (a.Y - top) / dy
	}
	x := a.X + t*(b.X-a.X)
	if x <= -CollisionLineLength || x >= PlatformWidth-CollisionWidthOffset {
		return 0, false
	}
	return x, true
}

// CollisionEffects fills fx with the effects active for a character whose
// bottom-left corner is at charX.
func (p *Platform) CollisionEffects(charX float64, fx *CollisionEffects) {
	localX := core.PositiveMod(charX+CharacterCenterX-p.Position().X, GameAreaWidth)
	// Contacts across the seam give a local x near GameAreaWidth.
	if localX > GameAreaWidth-CollisionLineLength {
		localX -= GameAreaWidth
	}
	for _, f := range p.features {
		f.ApplyEffects(localX, fx)
	}
}

// feetOverlap reports whether a character at x stands over the platform,
// using the same extent as the top collision line.
func (p *Platform) feetOverlap(x float64) bool {
	local := core.PositiveMod(x-p.Position().X+CollisionLineLength, GameAreaWidth) - CollisionLineLength
	return local > -CollisionLineLength && local < PlatformWidth-CollisionWidthOffset
}

// contactFromBelow reports whether the platform's top swept upward through
// a character standing at pos during the latest update. It is the
// reciprocal of IsCollision for platforms that carry the character.
func (p *Platform) contactFromBelow(pos core.Vec2) (core.Vec2, bool) {
	if !p.Collidable() || !p.HasVerticalMovement() {
		return core.Vec2{}, false
	}
	prevTop := p.prev.Y + PlatformHeight
	curTop := p.Position().Y + PlatformHeight
	if curTop <= prevTop {
		return core.Vec2{}, false
	}
	if pos.Y < prevTop-Epsilon || pos.Y > curTop {
		return core.Vec2{}, false
	}
	if !p.feetOverlap(pos.X) {
		return core.Vec2{}, false
	}
	return core.V(pos.X, curTop), true
}

// onJump is called after the character took off from the platform.
func (p *Platform) onJump() bool {
	if p.typ != level.PlatformCrumble || p.crumbling {
		return false
	}
	p.crumbling = true
	return true
}

// reveal makes a hidden platform visible.
func (p *Platform) reveal() bool {
	if !p.hidden {
		return false
	}
	p.hidden = false
	return true
}

// moveTo repositions the platform path so its current x equals x.
func (p *Platform) moveTo(x float64) {
	dx := x - p.Position().X
	p.movement.translate(dx)
	p.prev.X += dx
}

func (p *Platform) hasFeature(k level.FeatureType) bool {
	for _, f := range p.features {
		if f.Kind() == k {
			return true
		}
	}
	return false
}
