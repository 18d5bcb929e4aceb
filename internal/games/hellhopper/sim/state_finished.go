package sim

import "github.com/vovakirdan/hellhopper/internal/core"

// FinishedState is terminal. Nothing moves; the area reports the run as
// finished.
type FinishedState struct {
	c    *Character
	from StateID
}

func (s *FinishedState) ID() StateID        { return StateFinished }
func (s *FinishedState) Reset()             { s.from = StateNormal }
func (s *FinishedState) Update(*UpdateData) {}
func (s *FinishedState) End()               {}

func (s *FinishedState) Start(data *ChangeData) {
	if data != nil {
		s.from = data.From
	}
	s.c.speed = core.Vec2{}
}

// From returns the state that led here.
func (s *FinishedState) From() StateID { return s.from }

func (s *FinishedState) Render(d *RenderData) {
	if s.from == StateEnd {
		drawCharacter(d, s.c.pos, characterNormal, core.ColorGreen)
	}
}
