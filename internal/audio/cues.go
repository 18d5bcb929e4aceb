package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/hellhopper/internal/games/hellhopper/sim"
)

// Cue builds the streamer for a sound cue at unity gain. Every cue is finite.
func Cue(s sim.Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case sim.SoundJump:
		return arpeggio([]float64{440, 660}, 50*time.Millisecond, WaveSquare, rate)
	case sim.SoundJumpBoost:
		return arpeggio([]float64{523.25, 659.25, 783.99, 1046.5}, 45*time.Millisecond, WaveSquare, rate)
	case sim.SoundCrumble:
		return note(0, 250*time.Millisecond, WaveNoise, rate)
	case sim.SoundBurn:
		return beep.Mix(
			newVolume(note(0, 400*time.Millisecond, WaveNoise, rate), 0.6),
			newVolume(note(90, 400*time.Millisecond, WaveSaw, rate), 0.4),
		)
	case sim.SoundFall:
		return arpeggio([]float64{440, 330, 247, 165}, 120*time.Millisecond, WaveSine, rate)
	case sim.SoundEnemy:
		return note(110, 300*time.Millisecond, WaveSquare, rate)
	case sim.SoundPickup:
		return beep.Mix(
			newVolume(note(880, 200*time.Millisecond, WaveSine, rate), 0.7),
			newVolume(note(1760, 200*time.Millisecond, WaveSine, rate), 0.3),
		)
	case sim.SoundShieldBlock:
		return arpeggio([]float64{220, 330}, 70*time.Millisecond, WaveSquare, rate)
	case sim.SoundReveal:
		return arpeggio([]float64{660, 880}, 90*time.Millisecond, WaveSine, rate)
	case sim.SoundSheep:
		d := 450 * time.Millisecond
		return NewEnvelope(newBleat(300, d, rate), d, 30*time.Millisecond, 150*time.Millisecond, rate)
	case sim.SoundFinish:
		return arpeggio([]float64{523.25, 659.25, 783.99, 1046.5, 1318.5}, 110*time.Millisecond, WaveSine, rate)
	default:
		return nil
	}
}
