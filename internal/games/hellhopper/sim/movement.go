package sim

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/hellhopper/internal/core"
	"github.com/vovakirdan/hellhopper/internal/games/hellhopper/level"
)

// platformCenterOffset is the vector from a platform's position (bottom-left)
// to its center.
var platformCenterOffset = core.V(PlatformWidth/2, PlatformHeight/2)

// Movement produces a platform's position each tick. The set of
// implementations is closed: Stationary, Circular and Linear.
type Movement interface {
	UpdatePosition(dt float64)
	Position() core.Vec2
	HasVerticalMovement() bool

	// translate shifts the whole path horizontally.
	translate(dx float64)
}

// movementFactory builds a movement for a platform's initial position.
type movementFactory func(initial core.Vec2) Movement

// compileMovement validates a movement record and returns a factory for it.
// Property errors are reported here, at level load, never while running.
func compileMovement(m level.Movement) (movementFactory, error) {
	switch m.Type {
	case level.MovementStationary:
		return func(initial core.Vec2) Movement {
			return NewStationary(initial)
		}, nil

	case level.MovementCircular:
		radius, err := m.Properties.Float("radius", 1)
		if err != nil {
			return nil, err
		}
		if radius <= 0 {
			return nil, fmt.Errorf("circular movement: radius must be positive, got %v", radius)
		}
		speed, err := m.Properties.Float("speed", 1)
		if err != nil {
			return nil, err
		}
		initialDegrees, err := m.Properties.Float("initialdegrees", 0)
		if err != nil {
			return nil, err
		}
		ccw := m.Properties.String("direction", "ccw") == "ccw"
		return func(initial core.Vec2) Movement {
			return NewCircular(initial, radius, speed, ccw, initialDegrees)
		}, nil

	case level.MovementLinear:
		angle, err := linearAngle(m.Properties.String("direction", "horizontal"))
		if err != nil {
			return nil, err
		}
		distance, err := m.Properties.Float("distance", 2)
		if err != nil {
			return nil, err
		}
		speed, err := m.Properties.Float("speed", 1)
		if err != nil {
			return nil, err
		}
		if distance <= 0 || speed < 0 {
			return nil, fmt.Errorf("linear movement: invalid distance %v or speed %v", distance, speed)
		}
		return func(initial core.Vec2) Movement {
			return NewLinear(initial, angle, distance, speed)
		}, nil
	}

	return nil, fmt.Errorf("%w: %v", level.ErrUnknownMovement, m.Type)
}

func linearAngle(direction string) (float64, error) {
	switch direction {
	case "horizontal", "right":
		return 0, nil
	case "left":
		return 180, nil
	case "vertical", "up":
		return 90, nil
	case "down":
		return 270, nil
	}
	deg, err := strconv.ParseFloat(direction, 64)
	if err != nil {
		return 0, fmt.Errorf("linear movement: bad direction %q", direction)
	}
	return deg, nil
}

// Stationary keeps a platform at its initial position.
type Stationary struct {
	pos core.Vec2
}

// NewStationary creates a stationary movement.
func NewStationary(initial core.Vec2) *Stationary {
	return &Stationary{pos: initial}
}

func (s *Stationary) UpdatePosition(float64)    {}
func (s *Stationary) Position() core.Vec2       { return s.pos }
func (s *Stationary) HasVerticalMovement() bool { return false }
func (s *Stationary) translate(dx float64)      { s.pos.X += dx }

// Circular moves a platform's center around a fixed rotation center. The
// position is recomputed from the canonical angle every update.
type Circular struct {
	center     core.Vec2
	radius     float64
	angleSpeed float64 // degrees per second, sign gives the direction
	angle      float64 // degrees in [0, 360)
	pos        core.Vec2
}

// NewCircular creates a circular movement. The rotation center lies radius
// meters to the right of the platform's initial center; speed is linear
// speed in m/s.
func NewCircular(initial core.Vec2, radius, speed float64, ccw bool, initialDegrees float64) *Circular {
	c := &Circular{
		center:     initial.Add(platformCenterOffset).Add(core.V(radius, 0)),
		radius:     radius,
		angleSpeed: speed / radius * 180 / math.Pi,
	}
	if !ccw {
		c.angleSpeed = -c.angleSpeed
	}
	c.changePosition(initialDegrees)
	return c
}

func (c *Circular) UpdatePosition(dt float64) {
	c.changePosition(c.angleSpeed * dt)
}

func (c *Circular) changePosition(change float64) {
	c.angle = core.PositiveMod(c.angle+change, 360)
	rad := c.angle * math.Pi / 180
	c.pos = core.Vec2{
		X: c.center.X + math.Cos(rad)*c.radius - platformCenterOffset.X,
		Y: c.center.Y + math.Sin(rad)*c.radius - platformCenterOffset.Y,
	}
}

func (c *Circular) Position() core.Vec2       { return c.pos }
func (c *Circular) HasVerticalMovement() bool { return true }

// Angle returns the current angle in degrees.
func (c *Circular) Angle() float64 { return c.angle }

func (c *Circular) translate(dx float64) {
	c.center.X += dx
	c.pos.X += dx
}

// Linear moves a platform back and forth along a straight line starting at
// its initial position.
type Linear struct {
	origin    core.Vec2
	dir       core.Vec2
	distance  float64
	speed     float64
	travelled float64 // in [0, distance]
	forward   bool
	pos       core.Vec2
}

// NewLinear creates a ping-pong movement along angle degrees.
func NewLinear(initial core.Vec2, angle, distance, speed float64) *Linear {
	rad := angle * math.Pi / 180
	dir := core.V(math.Cos(rad), math.Sin(rad))
	if math.Abs(dir.X) < 1e-12 {
		dir.X = 0
	}
	if math.Abs(dir.Y) < 1e-12 {
		dir.Y = 0
	}
	return &Linear{
		origin:   initial,
		dir:      dir,
		distance: distance,
		speed:    speed,
		forward:  true,
		pos:      initial,
	}
}

func (l *Linear) UpdatePosition(dt float64) {
	step := l.speed * dt
	if !l.forward {
		step = -step
	}
	t := l.travelled + step
	// Reflect at the ends; a single reflection suffices while step < distance.
	switch {
	case t > l.distance:
		t = 2*l.distance - t
		l.forward = false
	case t < 0:
		t = -t
		l.forward = true
	}
	l.travelled = core.ClampF(t, 0, l.distance)
	l.pos = l.origin.Add(l.dir.Scale(l.travelled))
}

func (l *Linear) Position() core.Vec2       { return l.pos }
func (l *Linear) HasVerticalMovement() bool { return l.dir.Y != 0 }

func (l *Linear) translate(dx float64) {
	l.origin.X += dx
	l.pos.X += dx
}
