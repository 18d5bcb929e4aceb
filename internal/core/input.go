package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - steer left
	ActionRight          // D, Right arrow - steer right
	ActionUp             // W, Up arrow - menu navigation
	ActionDown           // S, Down arrow - menu navigation
	ActionConfirm        // Enter
	ActionBack           // B, Escape
	ActionRestart        // R after game over
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P, Escape
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the input for a single tick: the actions triggered since the
// previous tick and the wall-clock time that elapsed.
type InputFrame struct {
	Actions map[Action]bool

	// Elapsed is the real time covered by this frame. Zero means one nominal
	// tick of the configured TickRate.
	Elapsed time.Duration
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions and the elapsed time for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	f.Elapsed = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Elapsed = f.Elapsed
	return clone
}

// Mask packs the triggered actions into a bit set, one bit per Action.
func (f InputFrame) Mask() uint16 {
	var m uint16
	for a, on := range f.Actions {
		if on && a > ActionNone && a < 16 {
			m |= 1 << uint(a)
		}
	}
	return m
}

// FrameFromMask rebuilds an input frame from a Mask value.
func FrameFromMask(mask uint16, elapsed time.Duration) InputFrame {
	f := NewInputFrame()
	for a := ActionNone + 1; a < 16; a++ {
		if mask&(1<<uint(a)) != 0 {
			f.Set(a)
		}
	}
	f.Elapsed = elapsed
	return f
}

// ElapsedSeconds returns the frame duration in seconds, falling back to one
// tick at tickRate when Elapsed is unset.
func (f InputFrame) ElapsedSeconds(tickRate int) float64 {
	if f.Elapsed > 0 {
		return f.Elapsed.Seconds()
	}
	if tickRate <= 0 {
		tickRate = 60
	}
	return 1.0 / float64(tickRate)
}
