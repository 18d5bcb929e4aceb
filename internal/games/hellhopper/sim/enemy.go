package sim

import (
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/hellhopper/internal/core"
)

// Enemy size in meters.
const (
	EnemyWidth  = 0.6
	EnemyHeight = 0.8
)

// Enemy patrols the top of its platform. Touching it is fatal.
type Enemy struct {
	platform *Platform
	local    float64 // meters from the platform's left edge
	speed    float64
	forward  bool
	shape    resolv.IShape
}

func newEnemy(p *Platform, speed float64) *Enemy {
	return &Enemy{
		platform: p,
		local:    (PlatformWidth - EnemyWidth) / 2,
		speed:    speed,
		forward:  true,
	}
}

// Position returns the enemy's bottom-left corner.
func (e *Enemy) Position() core.Vec2 {
	return e.platform.Position().Add(core.V(e.local, PlatformHeight))
}

// Facing reports whether the enemy is walking right.
func (e *Enemy) Facing() bool { return e.forward }

func (e *Enemy) update(dt float64) {
	const maxLocal = PlatformWidth - EnemyWidth
	step := e.speed * dt
	if !e.forward {
		step = -step
	}
	e.local += step
	switch {
	case e.local > maxLocal:
		e.local = 2*maxLocal - e.local
		e.forward = false
	case e.local < 0:
		e.local = -e.local
		e.forward = true
	}
	e.local = core.ClampF(e.local, 0, maxLocal)
}
