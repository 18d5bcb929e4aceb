package replay

import (
	"github.com/vovakirdan/hellhopper/internal/core"
	"github.com/vovakirdan/hellhopper/internal/registry"
)

// Simulate resets the game with the recording's seed and tick rate and
// feeds it every recorded frame without a terminal. It returns the state
// after the last frame. The game must be configured (level, difficulty)
// the same way as when the recording was made.
func Simulate(game registry.Game, rec *Recording, screenW, screenH int) core.GameState {
	tickRate := rec.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	game.Reset(core.RuntimeConfig{
		ScreenW:  screenW,
		ScreenH:  screenH,
		TickRate: tickRate,
		Seed:     rec.Seed,
	})

	p := NewPlayer(rec)
	state := game.State()
	for {
		in, ok := p.Next()
		if !ok {
			return state
		}
		state = game.Step(in).State
	}
}
