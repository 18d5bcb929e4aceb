package sim

// Fixed-step timing.
const (
	MaxDelta = 0.1
	Step     = 1.0 / 60.0
	StepMax  = Step * 1.1
)

// Accumulator turns variable frame deltas into fixed physics sub-steps.
type Accumulator struct {
	remainder float64
}

// Advance adds a frame delta (clamped to MaxDelta) and calls step for every
// sub-step it covers. A remainder no larger than StepMax is consumed in one
// go; anything larger is consumed one Step at a time. It returns the number
// of sub-steps run.
func (a *Accumulator) Advance(delta float64, step func(dt float64)) int {
	if delta > MaxDelta {
		delta = MaxDelta
	}
	if delta > 0 {
		a.remainder += delta
	}

	n := 0
	for a.remainder > 0 {
		dt := Step
		if a.remainder <= StepMax {
			dt = a.remainder
		}
		step(dt)
		a.remainder -= dt
		n++
	}
	// Floating-point subtraction can leave a negative dust value.
	if a.remainder < 0 {
		a.remainder = 0
	}
	return n
}

// Reset drops any accumulated time.
func (a *Accumulator) Reset() {
	a.remainder = 0
}
