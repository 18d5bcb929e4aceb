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

func TestCircularReturnsAfterFullTurn(t *testing.T) {
	start := core.V(4, 10)
	for _, ccw := range []bool{true, false} {
		c := NewCircular(start, 1.5, 3, ccw, 0)
		initial := c.Position()

		// Full turn = 2πr / speed seconds.
		period := 2 * math.Pi * 1.5 / 3
		steps := 600
		for range steps {
			c.UpdatePosition(period / float64(steps))
		}

		assert.InDelta(t, initial.X, c.Position().X, 1e-9, "ccw=%v", ccw)
		assert.InDelta(t, initial.Y, c.Position().Y, 1e-9, "ccw=%v", ccw)
		assert.GreaterOrEqual(t, c.Angle(), 0.0)
		assert.Less(t, c.Angle(), 360.0)
	}
}

func TestCircularStartsAtInitialPosition(t *testing.T) {
	start := core.V(2, 7)
	c := NewCircular(start, 1, 1, true, 180)
	// At 180° the platform sits at its initial position.
	assert.InDelta(t, start.X, c.Position().X, 1e-9)
	assert.InDelta(t, start.Y, c.Position().Y, 1e-9)
	assert.True(t, c.HasVerticalMovement())
}

func TestCircularAngleStaysNormalized(t *testing.T) {
	c := NewCircular(core.V(0, 0), 1, 100, false, 0)
	for range 1000 {
		c.UpdatePosition(Step)
		if c.Angle() < 0 || c.Angle() >= 360 {
			t.Fatalf("Angle() = %v, expected [0, 360)", c.Angle())
		}
	}
}

func TestLinearPingPong(t *testing.T) {
	l := NewLinear(core.V(1, 5), 0, 2, 1)
	assert.False(t, l.HasVerticalMovement())

	l.UpdatePosition(1)
	assert.InDelta(t, 2.0, l.Position().X, 1e-9)

	l.UpdatePosition(1.5) // reaches the end and turns back
	assert.InDelta(t, 2.5, l.Position().X, 1e-9)

	l.UpdatePosition(2.5) // back past the start and forward again
	assert.InDelta(t, 2.0, l.Position().X, 1e-9)
	assert.InDelta(t, 5.0, l.Position().Y, 1e-9)
}

func TestLinearVertical(t *testing.T) {
	l := NewLinear(core.V(1, 5), 90, 3, 2)
	assert.True(t, l.HasVerticalMovement())
	l.UpdatePosition(1)
	assert.InDelta(t, 1.0, l.Position().X, 1e-9)
	assert.InDelta(t, 7.0, l.Position().Y, 1e-9)
}

func TestCompileMovement(t *testing.T) {
	tests := []struct {
		name     string
		movement level.Movement
		wantErr  bool
		vertical bool
	}{
		{"stationary", level.Movement{Type: level.MovementStationary}, false, false},
		{"circular", level.Movement{Type: level.MovementCircular, Properties: level.Properties{"radius": "2", "speed": "1"}}, false, true},
		{"horizontal", level.Movement{Type: level.MovementLinear, Properties: level.Properties{"direction": "horizontal"}}, false, false},
		{"down", level.Movement{Type: level.MovementLinear, Properties: level.Properties{"direction": "down"}}, false, true},
		{"zero radius", level.Movement{Type: level.MovementCircular, Properties: level.Properties{"radius": "0"}}, true, false},
		{"bad speed", level.Movement{Type: level.MovementCircular, Properties: level.Properties{"speed": "fast"}}, true, false},
		{"bad direction", level.Movement{Type: level.MovementLinear, Properties: level.Properties{"direction": "sideways"}}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := compileMovement(tt.movement)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.vertical, f(core.V(0, 0)).HasVerticalMovement())
		})
	}
}

func TestCompileMovementUnknownType(t *testing.T) {
	_, err := compileMovement(level.Movement{Type: level.MovementType(99)})
	if !errors.Is(err, level.ErrUnknownMovement) {
		t.Errorf("compileMovement() error = %v, expected ErrUnknownMovement", err)
	}
}

func TestCompileFeatureUnknownType(t *testing.T) {
	_, err := compileFeature(level.Feature{Type: level.FeatureType(99)}, 21.25)
	if !errors.Is(err, level.ErrUnknownFeature) {
		t.Errorf("compileFeature() error = %v, expected ErrUnknownFeature", err)
	}
}

func TestJumpBoostSpan(t *testing.T) {
	j := NewJumpBoost(0.75, 30)
	tests := []struct {
		localX float64
		want   bool
	}{
		{0.2, false},
		{0.5, true},
		{1.0, true},
		{1.5, true},
		{1.6, false},
	}
	for _, tt := range tests {
		var fx CollisionEffects
		j.ApplyEffects(tt.localX, &fx)
		if got := fx.Has(EffectJumpBoost); got != tt.want {
			t.Errorf("ApplyEffects(%v) boost = %v, expected %v", tt.localX, got, tt.want)
		}
		if tt.want && fx.JumpBoostSpeed != 30 {
			t.Errorf("JumpBoostSpeed = %v, expected 30", fx.JumpBoostSpeed)
		}
	}
}

func TestFlameCycle(t *testing.T) {
	f := NewFlame(1, 2, 0.5)
	var fx CollisionEffects

	f.ApplyEffects(0, &fx)
	assert.False(t, fx.Has(EffectBurn), "not lit before the delay")

	f.Update(0.6)
	assert.True(t, f.Lit())
	f.ApplyEffects(0, &fx)
	assert.True(t, fx.Has(EffectBurn))

	fx.Clear()
	assert.True(t, fx.Empty())

	f.Update(1.0) // 1.1 s into the cycle, off
	assert.False(t, f.Lit())
	f.Update(1.5) // 2.6 s, about to light
	assert.True(t, f.Igniting())
	f.Update(0.5) // second cycle
	assert.True(t, f.Lit())
}
