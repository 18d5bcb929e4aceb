package hellhopper

import "github.com/vovakirdan/hellhopper/internal/config"

// Steering turns discrete key presses into a horizontal speed. Terminals
// report key presses but not releases, so each press steers for a short
// hold time; key repeat keeps it going.
type Steering struct {
	speed float64
	hold  float64
	dir   float64
	left  float64
}

// NewSteering creates steering from the controls configuration.
func NewSteering(cfg config.ControlsConfig) Steering {
	def := config.DefaultHellHopperConfig().Controls
	s := Steering{speed: cfg.SteerSpeed, hold: cfg.SteerHold}
	if s.speed <= 0 {
		s.speed = def.SteerSpeed
	}
	if s.hold <= 0 {
		s.hold = def.SteerHold
	}
	return s
}

// Press starts steering in dir (-1 left, 1 right). Pressing the opposite
// direction switches immediately.
func (s *Steering) Press(dir float64) {
	s.dir = dir
	s.left = s.hold
}

// Advance consumes dt seconds of hold time.
func (s *Steering) Advance(dt float64) {
	s.left -= dt
	if s.left <= 0 {
		s.left = 0
		s.dir = 0
	}
}

// Speed returns the current horizontal speed in m/s.
func (s Steering) Speed() float64 {
	return s.dir * s.speed
}
