package sim

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hellhopper/internal/core"
)

// StateID names a character state.
type StateID int

const (
	StateNormal StateID = iota
	StateEnd
	StateDyingFall
	StateDyingEnemy
	StateDyingFire
	StateFinished
	numStates
)

func (s StateID) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateEnd:
		return "end"
	case StateDyingFall:
		return "dying_fall"
	case StateDyingEnemy:
		return "dying_enemy"
	case StateDyingFire:
		return "dying_fire"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Dying reports whether the state is one of the dying variants.
func (s StateID) Dying() bool {
	return s == StateDyingFall || s == StateDyingEnemy || s == StateDyingFire
}

// ChangeData is the optional payload handed to a state's Start.
type ChangeData struct {
	From StateID
	// Speed is the character speed at the moment of the transition.
	Speed float64
}

// UpdateData is the per-tick input of the active state.
type UpdateData struct {
	Delta           float64
	HorizontalSpeed float64
	VisibleBottom   float64
	VisibleHeight   float64

	// Contact is a precomputed platform-into-character contact, nil when
	// the platform side found none.
	Contact *Contact
}

// RenderData is handed to the active state's Render.
type RenderData struct {
	Screen   *core.Screen
	Viewport Viewport
}

// CharacterState is the contract every character state implements.
type CharacterState interface {
	ID() StateID
	Reset()
	Start(data *ChangeData)
	Update(data *UpdateData)
	Render(data *RenderData)
	End()
}

// StateManager owns the character states and performs transitions. Exactly
// one state is current at any time.
type StateManager struct {
	states  [numStates]CharacterState
	current CharacterState
	logger  *log.Logger

	transitions int
}

// NewStateManager wires the six states to a character.
func NewStateManager(c *Character, logger *log.Logger) *StateManager {
	m := &StateManager{logger: logger}
	m.states[StateNormal] = &NormalState{c: c}
	m.states[StateEnd] = &EndState{c: c}
	m.states[StateDyingFall] = newDyingState(c, StateDyingFall)
	m.states[StateDyingEnemy] = newDyingState(c, StateDyingEnemy)
	m.states[StateDyingFire] = newDyingState(c, StateDyingFire)
	m.states[StateFinished] = &FinishedState{c: c}
	return m
}

// Current returns the active state.
func (m *StateManager) Current() CharacterState { return m.current }

// CurrentID returns the id of the active state.
func (m *StateManager) CurrentID() StateID {
	if m.current == nil {
		return StateNormal
	}
	return m.current.ID()
}

// Transitions returns how many transitions happened since the last Reset.
func (m *StateManager) Transitions() int { return m.transitions }

// ChangeState ends the current state and starts the next one.
func (m *StateManager) ChangeState(next StateID, data *ChangeData) {
	from := m.CurrentID()
	if m.current != nil {
		m.current.End()
	}
	if m.logger != nil {
		m.logger.Debug("character state", "from", from, "to", next)
	}
	m.current = m.states[next]
	m.transitions++
	m.current.Start(data)
}

// Reset resets every state and starts Normal.
func (m *StateManager) Reset() {
	for _, s := range m.states {
		s.Reset()
	}
	m.current = m.states[StateNormal]
	m.transitions = 0
	m.current.Start(nil)
}

// Update delegates to the active state.
func (m *StateManager) Update(data *UpdateData) {
	m.current.Update(data)
}

// Render delegates to the active state.
func (m *StateManager) Render(data *RenderData) {
	m.current.Render(data)
}
