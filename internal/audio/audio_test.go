package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/hellhopper/internal/games/hellhopper/sim"
)

// drain streams s to completion and returns every sample.
func drain(t *testing.T, s beep.Streamer, limit int) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for len(out) < limit {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatalf("streamer did not finish within %d samples", limit)
	return nil
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	tests := []struct {
		wave Wave
		freq float64
	}{
		{WaveSine, 440},
		{WaveSquare, 220},
		{WaveSaw, 110},
		{WaveNoise, 0},
	}

	for _, tt := range tests {
		got := drain(t, NewOscillator(tt.freq, 100*time.Millisecond, tt.wave, rate), 10000)
		if len(got) != 800 {
			t.Errorf("NewOscillator(%d) streamed %d samples, expected 800", tt.wave, len(got))
		}
		for i, s := range got {
			if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
				t.Fatalf("NewOscillator(%d) sample %d = %v, expected mono in [-1, 1]", tt.wave, i, s)
			}
		}
	}
}

func TestOscillatorSquareValues(t *testing.T) {
	got := drain(t, NewOscillator(220, 50*time.Millisecond, WaveSquare, 8000), 10000)
	for i, s := range got {
		if s[0] != -1.0 && s[0] != 1.0 {
			t.Fatalf("square sample %d = %f, expected -1 or 1", i, s[0])
		}
	}
}

func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	// Square at 0 Hz holds 1.0, so the output is the envelope itself.
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate)
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, rate)

	got := drain(t, env, 1000)
	if len(got) != 100 {
		t.Fatalf("envelope streamed %d samples, expected 100", len(got))
	}
	if got[0][0] != 0 {
		t.Errorf("envelope start = %v, expected 0", got[0][0])
	}
	if got[50][0] != 1 {
		t.Errorf("envelope sustain = %v, expected 1", got[50][0])
	}
	if got[99][0] <= 0 || got[99][0] > 0.1 {
		t.Errorf("envelope end = %v, expected a small positive value", got[99][0])
	}
}

func TestCuesAreFinite(t *testing.T) {
	sounds := []sim.Sound{
		sim.SoundJump, sim.SoundJumpBoost, sim.SoundCrumble, sim.SoundBurn,
		sim.SoundFall, sim.SoundEnemy, sim.SoundPickup, sim.SoundShieldBlock,
		sim.SoundReveal, sim.SoundSheep, sim.SoundFinish,
	}
	rate := beep.SampleRate(8000)

	for _, s := range sounds {
		cue := Cue(s, rate)
		if cue == nil {
			t.Errorf("Cue(%s) = nil, expected a streamer", s)
			continue
		}
		got := drain(t, cue, rate.N(2*time.Second))
		if len(got) == 0 {
			t.Errorf("Cue(%s) streamed no samples", s)
		}
		for i, v := range got {
			if math.IsNaN(v[0]) || math.Abs(v[0]) > 1.0001 {
				t.Fatalf("Cue(%s) sample %d = %v, expected within [-1, 1]", s, i, v[0])
			}
		}
	}

	if Cue(sim.Sound(99), rate) != nil {
		t.Error("Cue(unknown) != nil, expected nil")
	}
}

func TestPlayerIgnoresCuesBeforeInit(t *testing.T) {
	p := NewPlayer(DefaultVolume, nil)
	p.PlaySound(sim.SoundJump)
	if p.mixer.Len() != 0 {
		t.Errorf("mixer has %d streamers before Init, expected 0", p.mixer.Len())
	}
	p.Close()
}
