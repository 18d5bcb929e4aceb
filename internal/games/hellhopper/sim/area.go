// Package sim is the Hell Hopper simulation: a fixed-step physics loop
// that moves platforms, sweeps the character's path against them, applies
// platform effects and drives the character state machine.
//
// The simulation never blocks and never returns errors once an Area was
// built. Sound and visual cues leave through the Signals interface.
package sim

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hellhopper/internal/core"
	"github.com/vovakirdan/hellhopper/internal/games/hellhopper/level"
)

// Section lifecycle margins in meters.
const (
	activateAhead = 5.0  // sections are created this far above the view
	retireBehind  = 10.0 // and dropped this far below it
)

// ErrNoLevel is returned by NewArea when no level is given.
var ErrNoLevel = errors.New("sim: no level")

// Options configures an Area.
type Options struct {
	Tuning  Tuning
	Seed    int64
	Signals Signals
	Logger  *log.Logger
}

// FrameInput is the per-frame data provided by the session: steering and
// the visible area reported by the camera.
type FrameInput struct {
	HorizontalSpeed float64
	VisibleBottom   float64
	VisibleHeight   float64
}

// Area is one run through a level.
type Area struct {
	level   *level.Level
	tuning  Tuning
	signals Signals
	logger  *log.Logger
	seed    int64
	rng     *rand.Rand

	sections  []*RiseSection
	space     *overlapSpace
	character *Character

	acc       Accumulator
	input     FrameInput
	timeScale float64
	ticks     int
	elapsed   float64
}

// NewArea compiles the level and places the character on the ground.
// Unknown movement or feature types and bad property values fail here.
func NewArea(lvl *level.Level, opts Options) (*Area, error) {
	if lvl == nil {
		return nil, ErrNoLevel
	}

	a := &Area{
		level:   lvl,
		tuning:  opts.Tuning.normalized(),
		signals: opts.Signals,
		logger:  opts.Logger,
		seed:    opts.Seed,
	}
	if a.signals == nil {
		a.signals = discardSignals{}
	}
	if a.logger == nil {
		a.logger = log.New(io.Discard)
	}

	for _, s := range lvl.Sections {
		rs, err := compileSection(s, a.tuning.JumpSpeed)
		if err != nil {
			return nil, fmt.Errorf("sim: level %s: section %d: %w", lvl.ID, s.ID, err)
		}
		a.sections = append(a.sections, rs)
	}

	a.character = newCharacter(a)
	a.Reset()

	a.logger.Info("level loaded", "level", lvl.ID, "sections", len(a.sections), "platforms", lvl.PlatformCount())
	return a, nil
}

// Reset restarts the run with the same seed.
func (a *Area) Reset() {
	a.rng = rand.New(rand.NewSource(a.seed))
	a.space = newOverlapSpace(a.RiseHeight() + activateAhead)
	for _, s := range a.sections {
		s.platforms = nil
		s.pickups = nil
		s.state = sectionPending
		s.repositionPending = false
		s.revealed = false
	}
	a.acc.Reset()
	a.input = FrameInput{VisibleHeight: 20}
	a.timeScale = 1
	a.ticks = 0
	a.elapsed = 0
	a.character.Reset()
}

// Update advances the simulation by a frame delta in seconds and returns
// the number of physics steps run.
func (a *Area) Update(frameDelta float64, in FrameInput) int {
	a.input = in
	return a.acc.Advance(frameDelta, a.step)
}

func (a *Area) step(dt float64) {
	a.ticks++
	a.elapsed += dt

	a.updateSections()

	pdt := dt * a.timeScale
	for _, s := range a.sections {
		if !s.Active() {
			continue
		}
		for _, p := range s.platforms {
			p.Update(pdt, a.tuning.Gravity, a.tuning.CrumbleDuration)
			if p.gone && p.enemy != nil {
				a.space.remove(p.enemy.shape)
			}
		}
		s.syncShapes()
	}

	c := a.character
	data := UpdateData{
		Delta:           dt,
		HorizontalSpeed: a.input.HorizontalSpeed,
		VisibleBottom:   a.input.VisibleBottom,
		VisibleHeight:   a.input.VisibleHeight,
	}
	if c.State() == StateNormal && c.speed.Y <= 0 {
		if contact, ok := carriedContact(a.sections, c.pos); ok {
			data.Contact = &contact
		}
	}
	c.Update(&data)

	for _, s := range a.sections {
		for _, it := range s.pickups {
			it.update(dt)
			if it.state == ItemGone {
				a.space.remove(it.shape)
			}
		}
	}
}

func (a *Area) updateSections() {
	top := a.input.VisibleBottom + a.input.VisibleHeight + activateAhead
	bottom := a.input.VisibleBottom - retireBehind

	for i, s := range a.sections {
		switch s.state {
		case sectionPending:
			if s.bottom <= top {
				s.activate(i, a.space)
				a.logger.Debug("section activated", "section", s.id, "platforms", len(s.platforms))
			}
		case sectionActive:
			if s.top < bottom {
				s.retire(a.space)
				a.logger.Debug("section retired", "section", s.id)
				continue
			}
			if s.applyReposition(a.rng) {
				a.logger.Debug("section repositioned", "section", s.id)
			}
		}
	}
}

// Sweep tests a character path against the active sections.
func (a *Area) Sweep(c1, c2 core.Vec2) (Contact, bool) {
	return sweepSections(a.sections, c1, c2)
}

// SetTimeScale scales platform movement speed. Negative values are
// treated as zero.
func (a *Area) SetTimeScale(s float64) {
	a.timeScale = max(s, 0)
}

// TimeScale returns the platform movement scale.
func (a *Area) TimeScale() float64 { return a.timeScale }

// Level returns the level being played.
func (a *Area) Level() *level.Level { return a.level }

// Tuning returns the normalized tuning.
func (a *Area) Tuning() Tuning { return a.tuning }

// Character returns the character. Callers must treat it as read-only.
func (a *Area) Character() *Character { return a.character }

// Sections returns every rise section, active or not.
func (a *Area) Sections() []*RiseSection { return a.sections }

// RiseHeight returns the goal height in meters.
func (a *Area) RiseHeight() float64 { return a.level.RiseHeight() }

// Finished reports whether the character reached the terminal state.
func (a *Area) Finished() bool { return a.character.State() == StateFinished }

// Ticks returns the number of physics steps since Reset.
func (a *Area) Ticks() int { return a.ticks }

// Elapsed returns the simulated seconds since Reset.
func (a *Area) Elapsed() float64 { return a.elapsed }
