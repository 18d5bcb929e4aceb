package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hellhopper/internal/core"
	"github.com/vovakirdan/hellhopper/internal/games/hellhopper/level"
)

var view = FrameInput{VisibleHeight: 20}

func testLevel(steps int, platforms ...level.Platform) *level.Level {
	return &level.Level{
		ID:       "test",
		Sections: []level.Section{{ID: 0, Steps: steps, Platforms: platforms}},
	}
}

// plain is a stationary platform whose top sits at step+0.5 and whose left
// edge is at offset*0.25.
func plain(id, step, offset int, features ...level.Feature) level.Platform {
	return level.Platform{ID: id, Step: step, Offset: offset, Features: features}
}

func newTestArea(t *testing.T, lvl *level.Level, tuning Tuning) (*Area, *SignalQueue) {
	t.Helper()
	q := &SignalQueue{}
	a, err := NewArea(lvl, Options{Tuning: tuning, Seed: 7, Signals: q})
	require.NoError(t, err)
	a.Update(0, view) // nothing advances; sections stay pending
	return a, q
}

// dropOnto places the character just above the top of a platform at
// (step, offset) falling with speed vy, then runs one tick.
func dropOnto(a *Area, step, offset int, vy float64) {
	top := float64(step) + PlatformHeight
	x := float64(offset)*level.OffsetWidth + 0.5
	a.character.pos = core.V(x, top+0.05)
	a.character.speed = core.V(0, vy)
	a.Update(Step, view)
}

func countSound(sounds []Sound, s Sound) int {
	n := 0
	for _, got := range sounds {
		if got == s {
			n++
		}
	}
	return n
}

func runFor(a *Area, q *SignalQueue, seconds float64, in FrameInput) []Sound {
	var all []Sound
	for range int(seconds * 60) {
		a.Update(Step, in)
		sounds, _ := q.Drain()
		all = append(all, sounds...)
	}
	return all
}

func TestNewAreaRejectsBadLevels(t *testing.T) {
	_, err := NewArea(nil, Options{})
	assert.ErrorIs(t, err, ErrNoLevel)

	bad := testLevel(10, level.Platform{ID: 1, Step: 2, Movement: level.Movement{Type: level.MovementType(42)}})
	_, err = NewArea(bad, Options{})
	assert.True(t, errors.Is(err, level.ErrUnknownMovement), "error = %v", err)

	bad = testLevel(10, plain(1, 2, 0, level.Feature{Type: level.FeatureType(42)}))
	_, err = NewArea(bad, Options{})
	assert.True(t, errors.Is(err, level.ErrUnknownFeature), "error = %v", err)
}

func TestCharacterStartsOnGround(t *testing.T) {
	a, _ := newTestArea(t, testLevel(10), DefaultTuning())
	c := a.Character()
	assert.Equal(t, StateNormal, c.State())
	assert.Equal(t, 0.0, c.Position().Y)
	assert.Equal(t, DefaultTuning().JumpSpeed, c.Speed().Y)
	assert.InDelta(t, GameAreaWidth/2, c.Center().X, 1e-12)
}

func TestLandingOnStationaryPlatform(t *testing.T) {
	a, q := newTestArea(t, testLevel(20, plain(1, 2, 20)), DefaultTuning())
	dropOnto(a, 2, 20, -5)

	c := a.Character()
	assert.InDelta(t, 2.5, c.Position().Y, 1e-9)
	assert.Equal(t, 21.25, c.Speed().Y)
	assert.Equal(t, 0.0, c.Speed().X)
	assert.Equal(t, StateNormal, c.State())

	sounds, _ := q.Drain()
	assert.Equal(t, 1, countSound(sounds, SoundJump))
}

func TestLandingOnMovingPlatformKeepsSteeringSpeed(t *testing.T) {
	mv := level.Movement{Type: level.MovementLinear, Properties: level.Properties{"direction": "right", "distance": "5", "speed": "3"}}
	lvl := testLevel(20, level.Platform{ID: 1, Step: 2, Offset: 20, Movement: mv})
	a, _ := newTestArea(t, lvl, DefaultTuning())
	steer := FrameInput{HorizontalSpeed: 1, VisibleHeight: 20}

	a.character.pos = core.V(5.5, 2.55)
	a.character.speed = core.V(0, -5)
	a.Update(Step, steer)

	c := a.Character()
	plat := a.Sections()[0].Platforms()[0]
	require.InDelta(t, 2.5, c.Position().Y, 1e-9)
	require.InDelta(t, 3.0, plat.Velocity().X, 1e-9)
	assert.InDelta(t, 1.0, c.Speed().X, 1e-9, "platform speed is not added")

	x := c.Position().X
	a.Update(Step, steer)
	assert.InDelta(t, x+Step, c.Position().X, 1e-9)
}

func TestBurnKillsWithoutJump(t *testing.T) {
	flame := level.Feature{Type: level.FeatureFlame, Properties: level.Properties{"on": "10", "off": "1"}}
	a, q := newTestArea(t, testLevel(20, plain(1, 2, 20, flame)), DefaultTuning())
	dropOnto(a, 2, 20, -5)

	c := a.Character()
	assert.Equal(t, StateDyingFire, c.State())
	assert.Equal(t, OutcomeBurned, c.Outcome())
	assert.NotEqual(t, DefaultTuning().JumpSpeed, c.Speed().Y)
	assert.False(t, c.Alive())

	sounds, visuals := q.Drain()
	assert.Zero(t, countSound(sounds, SoundJump))
	assert.Equal(t, 1, countSound(sounds, SoundBurn))
	require.NotEmpty(t, visuals)
	assert.Equal(t, VisualBurn, visuals[0].Kind)

	runFor(a, q, 2.5, view)
	assert.Equal(t, StateFinished, c.State())
	assert.True(t, a.Finished())
}

func TestBurnAcrossSeamWrapsPosition(t *testing.T) {
	flame := level.Feature{Type: level.FeatureFlame, Properties: level.Properties{"on": "10", "off": "1"}}
	a, _ := newTestArea(t, testLevel(20, plain(1, 2, 0, flame)), DefaultTuning())
	a.Update(Step, view)

	// The path crosses the wrap point before it meets the platform top.
	a.character.pos = core.V(GameAreaWidth-CharacterCenterX-0.001, 2.55)
	a.character.speed = core.V(0, -5)
	a.Update(Step, FrameInput{HorizontalSpeed: 3, VisibleHeight: 20})

	c := a.Character()
	require.Equal(t, StateDyingFire, c.State())
	assert.GreaterOrEqual(t, c.Position().X, -CharacterCenterX)
	assert.Less(t, c.Position().X, GameAreaWidth-CharacterCenterX)
	assert.InDelta(t, 2.5, c.Position().Y, 1e-9)
}

func TestShieldBlocksBurn(t *testing.T) {
	flame := level.Feature{Type: level.FeatureFlame, Properties: level.Properties{"on": "10", "off": "1"}}
	a, q := newTestArea(t, testLevel(20, plain(1, 2, 20, flame)), DefaultTuning())
	a.character.shield = 5
	dropOnto(a, 2, 20, -5)

	c := a.Character()
	assert.Equal(t, StateNormal, c.State())
	assert.Equal(t, 21.25, c.Speed().Y)
	sounds, _ := q.Drain()
	assert.Equal(t, 1, countSound(sounds, SoundShieldBlock))
	assert.Less(t, c.Shield(), 5.0)
}

func TestJumpBoost(t *testing.T) {
	boost := level.Feature{Type: level.FeatureJumpBoost, Properties: level.Properties{"offset": "3", "speed": "28"}}
	a, q := newTestArea(t, testLevel(20, plain(1, 2, 20, boost)), DefaultTuning())
	dropOnto(a, 2, 20, -5)

	assert.Equal(t, 28.0, a.Character().Speed().Y)
	sounds, _ := q.Drain()
	assert.Equal(t, 1, countSound(sounds, SoundJumpBoost))
	assert.Zero(t, countSound(sounds, SoundJump))
}

func TestJumpBoostMissesOutsidePad(t *testing.T) {
	boost := level.Feature{Type: level.FeatureJumpBoost, Properties: level.Properties{"offset": "6", "speed": "28"}}
	a, _ := newTestArea(t, testLevel(20, plain(1, 2, 20, boost)), DefaultTuning())
	dropOnto(a, 2, 20, -5) // feet centered 1.0 m into the platform, pad starts at 1.5 m

	assert.Equal(t, 21.25, a.Character().Speed().Y)
}

func TestHighJumpAppliesOnce(t *testing.T) {
	a, _ := newTestArea(t, testLevel(20, plain(1, 2, 20)), DefaultTuning())
	a.character.jumpFactor = 1.5
	dropOnto(a, 2, 20, -5)

	c := a.Character()
	assert.InDelta(t, 21.25*1.5, c.Speed().Y, 1e-9)
	assert.Equal(t, 1.0, c.JumpFactor())
}

func TestReachingRiseHeightEntersEndOnce(t *testing.T) {
	a, q := newTestArea(t, testLevel(3), DefaultTuning())

	entered := 0
	prev := a.Character().State()
	for range 60 * 20 {
		a.Update(Step, view)
		cur := a.Character().State()
		if cur == StateEnd && prev != StateEnd {
			entered++
		}
		prev = cur
	}
	sounds, _ := q.Drain()

	c := a.Character()
	assert.Equal(t, 1, entered)
	assert.Equal(t, 1, countSound(sounds, SoundFinish))
	assert.Equal(t, StateFinished, c.State())
	assert.Equal(t, OutcomeGoal, c.Outcome())
	assert.True(t, c.Alive())
	assert.InDelta(t, 3.0, c.Position().Y, 1e-9, "settled on the end floor")
	assert.Positive(t, countSound(sounds, SoundSheep))
}

func TestEndStateBouncesDecay(t *testing.T) {
	a, _ := newTestArea(t, testLevel(3), DefaultTuning())
	a.character.pos = core.V(5, 3.1)
	a.character.speed = core.V(0, 1)
	a.Update(Step, view)
	require.Equal(t, StateEnd, a.Character().State())

	end := a.character.states.Current().(*EndState)
	var peaks []float64
	last := 0
	for range 60 * 10 {
		a.Update(Step, view)
		if end.Contacts() != last {
			last = end.Contacts()
			peaks = append(peaks, a.Character().Speed().Y)
		}
		if end.Settled() || a.Character().State() != StateEnd {
			break
		}
	}

	require.GreaterOrEqual(t, len(peaks), 2)
	assert.Equal(t, 21.25, peaks[0], "first contact sets the jump speed")
	for i := 1; i < len(peaks); i++ {
		assert.Less(t, peaks[i], peaks[i-1])
	}
	assert.True(t, end.Settled())
}

func TestSheepCuesWhileBouncing(t *testing.T) {
	tuning := DefaultTuning()
	tuning.EndRestitution = 1.2
	tuning.EndDecrement = 0.05
	a, q := newTestArea(t, testLevel(3), tuning)
	a.character.pos = core.V(5, 3.1)
	a.character.speed = core.V(0, 1)
	a.Update(Step, view)
	require.Equal(t, StateEnd, a.Character().State())

	end := a.character.states.Current().(*EndState)
	sheep := 0
	for range 60 * 15 {
		a.Update(Step, view)
		sounds, _ := q.Drain()
		sheep += countSound(sounds, SoundSheep)
		if end.Settled() {
			break
		}
	}

	require.True(t, end.Settled())
	assert.Greater(t, end.Contacts(), 3)
	assert.Positive(t, sheep, "sheep cues start before the bounces settle")
}

func TestFallDeathPolicy(t *testing.T) {
	below := FrameInput{VisibleBottom: 10, VisibleHeight: 20}

	a, q := newTestArea(t, testLevel(40), DefaultTuning())
	a.character.pos = core.V(5, 5)
	a.character.speed = core.V(0, -1)
	a.Update(Step, below)
	assert.Equal(t, StateDyingFall, a.Character().State())
	assert.Equal(t, OutcomeFell, a.Character().Outcome())
	sounds, _ := q.Drain()
	assert.Equal(t, 1, countSound(sounds, SoundFall))

	practice := DefaultTuning()
	practice.FallDeath = false
	a, _ = newTestArea(t, testLevel(40), practice)
	a.character.pos = core.V(5, 5)
	a.character.speed = core.V(0, -1)
	a.Update(Step, below)
	assert.Equal(t, StateNormal, a.Character().State())
	assert.Greater(t, a.Character().Speed().Y, 20.0)
}

func TestCrumblePlatform(t *testing.T) {
	p := plain(1, 2, 20)
	p.Type = level.PlatformCrumble
	a, q := newTestArea(t, testLevel(20, p), DefaultTuning())
	dropOnto(a, 2, 20, -5)

	plat := a.Sections()[0].Platforms()[0]
	assert.True(t, plat.Crumbling())
	sounds, _ := q.Drain()
	assert.Equal(t, 1, countSound(sounds, SoundCrumble))

	_, ok := a.Sweep(core.V(5.5, 2.6), core.V(5.5, 2.4))
	assert.False(t, ok, "a crumbling platform gives one jump only")

	runFor(a, q, 1.5, view)
	assert.True(t, plat.Gone())
}

func TestRepositionTrigger(t *testing.T) {
	repo := level.Feature{Type: level.FeatureReposition}
	lvl := testLevel(20, plain(1, 2, 20, repo), plain(2, 6, 0, repo), plain(3, 9, 4))

	run := func() (*Area, float64) {
		a, _ := newTestArea(t, lvl, DefaultTuning())
		dropOnto(a, 2, 20, -5)
		sec := a.Sections()[0]
		require.True(t, sec.repositionPending)
		a.Update(Step, view)
		assert.False(t, sec.repositionPending)

		ps := sec.Platforms()
		assert.Equal(t, 5.0, ps[0].Position().X, "the landed-on platform stays")
		assert.Equal(t, 1.0, ps[2].Position().X, "platforms without the feature stay")
		x := ps[1].Position().X
		assert.GreaterOrEqual(t, x, 0.0)
		assert.LessOrEqual(t, x, float64(level.MaxPlatformOffset)*level.OffsetWidth)
		assert.InDelta(t, math.Round(x/level.OffsetWidth), x/level.OffsetWidth, 1e-9, "x on the offset grid")
		return a, x
	}

	_, x1 := run()
	_, x2 := run()
	assert.Equal(t, x1, x2, "same seed, same shuffle")
}

func TestRepositionIsConsumedOnce(t *testing.T) {
	a, _ := newTestArea(t, testLevel(20, plain(1, 2, 20, level.Feature{Type: level.FeatureReposition})), DefaultTuning())
	a.Update(Step, view)
	sec := a.Sections()[0]
	sec.TriggerReposition(99)
	sec.TriggerReposition(99)
	assert.True(t, sec.applyReposition(a.rng))
	assert.False(t, sec.applyReposition(a.rng))
}

func TestVisibleOnJump(t *testing.T) {
	vis := level.Feature{Type: level.FeatureVisibleOnJump}
	a, q := newTestArea(t, testLevel(20, plain(1, 2, 20, vis), plain(2, 6, 0, vis), plain(3, 9, 4)), DefaultTuning())
	a.Update(Step, view)

	ps := a.Sections()[0].Platforms()
	assert.True(t, ps[0].Hidden())
	assert.True(t, ps[1].Hidden())
	assert.False(t, ps[2].Hidden())

	dropOnto(a, 2, 20, -5)
	assert.Equal(t, 21.25, a.Character().Speed().Y, "hidden platforms still collide")
	assert.False(t, ps[0].Hidden())
	assert.False(t, ps[1].Hidden())

	dropOnto(a, 2, 20, -5)
	sounds, _ := q.Drain()
	assert.Equal(t, 1, countSound(sounds, SoundReveal))
	assert.Equal(t, 2, countSound(sounds, SoundJump))
}

func TestItemPickup(t *testing.T) {
	lvl := testLevel(20, plain(1, 2, 20))
	lvl.Sections[0].Items = []level.Item{{Type: level.ItemRuby, Platform: 1, Offset: 3}}
	a, q := newTestArea(t, lvl, DefaultTuning())
	a.Update(Step, view)

	item := a.Sections()[0].Items()[0]
	assert.Equal(t, ItemExisting, item.State())
	assert.InDelta(t, 5.75, item.Position().X, 1e-12)
	assert.InDelta(t, 2.5, item.Position().Y, 1e-12)

	dropOnto(a, 2, 20, -5)
	assert.Equal(t, 50, a.Character().Points())
	assert.Equal(t, ItemText, item.State())
	assert.Equal(t, "+50", item.Text())
	sounds, _ := q.Drain()
	assert.Equal(t, 1, countSound(sounds, SoundPickup))

	runFor(a, q, 3.5, FrameInput{VisibleHeight: 20})
	assert.Equal(t, ItemGone, item.State())
	assert.Equal(t, 50, a.Character().Points(), "collected once")
}

func TestItemFollowsPlatform(t *testing.T) {
	mv := level.Movement{Type: level.MovementLinear, Properties: level.Properties{"direction": "up", "distance": "3", "speed": "1"}}
	lvl := testLevel(20, level.Platform{ID: 1, Step: 8, Offset: 0, Movement: mv})
	lvl.Sections[0].Items = []level.Item{{Type: level.ItemShield, Platform: 1, Offset: 2, Value: "4"}}
	a, _ := newTestArea(t, lvl, DefaultTuning())

	a.Update(Step, view)
	item := a.Sections()[0].Items()[0]
	plat := a.Sections()[0].Platforms()[0]
	for range 30 {
		a.Update(Step, view)
	}
	want := plat.Position().Add(core.V(0.5, PlatformHeight))
	assert.InDelta(t, want.X, item.Position().X, 1e-9)
	assert.InDelta(t, want.Y, item.Position().Y, 1e-9)
	assert.Greater(t, item.Position().Y, 8.5)
}

func TestEnemyContactKills(t *testing.T) {
	p := plain(1, 2, 20)
	p.Enemy = &level.Enemy{Properties: level.Properties{"speed": "0"}}
	a, q := newTestArea(t, testLevel(20, p), DefaultTuning())
	dropOnto(a, 2, 20, -5)

	assert.Equal(t, StateDyingEnemy, a.Character().State())
	assert.Equal(t, OutcomeEnemy, a.Character().Outcome())
	sounds, _ := q.Drain()
	assert.Equal(t, 1, countSound(sounds, SoundEnemy))
}

func TestItemPickupAcrossSeam(t *testing.T) {
	lvl := testLevel(20, plain(1, 2, 0))
	lvl.Sections[0].Items = []level.Item{{Type: level.ItemRuby, Platform: 1, Offset: 0}}

	tests := []struct {
		name string
		x    float64
	}{
		{"same side", 0},
		{"feet across the seam", GameAreaWidth - 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestArea(t, lvl, DefaultTuning())
			a.Update(Step, view)
			item := a.Sections()[0].Items()[0]
			require.InDelta(t, 0, item.Position().X, 1e-12)

			a.character.pos = core.V(tt.x, 2.55)
			a.character.speed = core.V(0, -5)
			a.Update(Step, view)

			assert.Equal(t, 50, a.Character().Points())
			assert.Equal(t, ItemText, item.State())
		})
	}
}

func TestEnemyContactAcrossSeam(t *testing.T) {
	p := plain(1, 2, level.MaxPlatformOffset)
	p.Enemy = &level.Enemy{Properties: level.Properties{"speed": "0"}}
	a, q := newTestArea(t, testLevel(20, p), DefaultTuning())
	a.Update(Step, view)

	// Straddle the seam like a circling platform can: the enemy covers
	// x 11.7..12.3, which wraps onto 0..0.3.
	plat := a.Sections()[0].Platforms()[0]
	plat.moveTo(11)

	a.character.pos = core.V(0, 3)
	a.character.speed = core.V(0, 1)
	a.Update(Step, view)

	assert.Equal(t, StateDyingEnemy, a.Character().State())
	assert.Equal(t, OutcomeEnemy, a.Character().Outcome())
	sounds, _ := q.Drain()
	assert.Equal(t, 1, countSound(sounds, SoundEnemy))
}

func TestPlatformCarriesCharacterUp(t *testing.T) {
	mv := level.Movement{Type: level.MovementLinear, Properties: level.Properties{"direction": "up", "distance": "4", "speed": "6"}}
	a, _ := newTestArea(t, testLevel(20, level.Platform{ID: 1, Step: 2, Offset: 20, Movement: mv}), DefaultTuning())

	a.character.pos = core.V(5.5, 2.52)
	a.character.speed = core.V(0, 0)
	a.Update(Step, view)

	c := a.Character()
	assert.InDelta(t, 2.6, c.Position().Y, 1e-9)
	assert.Equal(t, 21.25, c.Speed().Y)
}

func TestSectionLifecycle(t *testing.T) {
	lvl := &level.Level{ID: "three", Sections: []level.Section{
		{ID: 0, StartStep: 0, Steps: 20, Platforms: []level.Platform{plain(1, 2, 0)}},
		{ID: 1, StartStep: 20, Steps: 20, Platforms: []level.Platform{plain(2, 2, 0)}},
		{ID: 2, StartStep: 40, Steps: 20, Platforms: []level.Platform{plain(3, 2, 0)}},
	}}
	tuning := DefaultTuning()
	tuning.FallDeath = false
	a, _ := newTestArea(t, lvl, tuning)

	active := func() []bool {
		var out []bool
		for _, s := range a.Sections() {
			out = append(out, s.Active())
		}
		return out
	}

	a.Update(Step, view)
	assert.Equal(t, []bool{true, true, false}, active())

	a.Update(Step, FrameInput{VisibleBottom: 40, VisibleHeight: 20})
	assert.Equal(t, []bool{false, true, true}, active())

	a.Update(Step, view)
	assert.Equal(t, []bool{false, true, true}, active(), "retired sections stay retired")
	assert.Nil(t, a.Sections()[0].Platforms())
}

func TestWrapKeepsCenterInside(t *testing.T) {
	a, _ := newTestArea(t, testLevel(40), DefaultTuning())
	for _, steer := range []float64{-9, 9} {
		for range 300 {
			a.Update(Step, FrameInput{HorizontalSpeed: steer, VisibleHeight: 20})
			cx := a.Character().Center().X
			if cx < 0 || cx >= GameAreaWidth {
				t.Fatalf("center x = %v, expected [0, %v)", cx, GameAreaWidth)
			}
		}
	}
}

func TestAreaDeterminism(t *testing.T) {
	lvl, err := level.Builtin().LoadByID("02-burning-ring")
	require.NoError(t, err)

	run := func() (core.Vec2, StateID, int) {
		a, err := NewArea(&lvl, Options{Tuning: DefaultTuning(), Seed: 99})
		require.NoError(t, err)
		bottom := 0.0
		for i := range 60 * 30 {
			steer := 0.0
			switch (i / 40) % 3 {
			case 0:
				steer = 6
			case 1:
				steer = -6
			}
			c := a.Character()
			bottom = max(bottom, c.Position().Y-8)
			a.Update(Step, FrameInput{HorizontalSpeed: steer, VisibleBottom: bottom, VisibleHeight: 20})
			if a.Finished() {
				break
			}
		}
		return a.Character().Position(), a.Character().State(), a.Ticks()
	}

	p1, s1, n1 := run()
	p2, s2, n2 := run()
	assert.Equal(t, p1, p2)
	assert.Equal(t, s1, s2)
	assert.Equal(t, n1, n2)
}

func TestResetRestoresInitialState(t *testing.T) {
	a, _ := newTestArea(t, testLevel(20, plain(1, 2, 20)), DefaultTuning())
	dropOnto(a, 2, 20, -5)
	for range 100 {
		a.Update(Step, view)
	}
	a.Reset()

	c := a.Character()
	assert.Equal(t, StateNormal, c.State())
	assert.Equal(t, 0.0, c.Position().Y)
	assert.Equal(t, 0, a.Ticks())
	assert.False(t, a.Sections()[0].Active())
}
