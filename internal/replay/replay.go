// Package replay records the per-tick input of a run and plays it back.
// Recordings are encoded with msgpack and stored alongside the run.
package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/hellhopper/internal/core"
)

// Version is the current recording format.
const Version = 1

// ErrVersion is returned when decoding a recording of an unknown format.
var ErrVersion = errors.New("replay: unsupported version")

// Frame is one tick of recorded input.
type Frame struct {
	Mask    uint16 `msgpack:"m"`
	Elapsed int64  `msgpack:"e"` // Nanoseconds
}

// Recording holds everything needed to re-simulate a run.
type Recording struct {
	Version    int     `msgpack:"v"`
	GameID     string  `msgpack:"game"`
	LevelID    string  `msgpack:"level"`
	Seed       int64   `msgpack:"seed"`
	TickRate   int     `msgpack:"tick_rate"`
	Difficulty string  `msgpack:"difficulty,omitempty"`
	Frames     []Frame `msgpack:"frames"`
}

// New starts an empty recording.
func New(gameID, levelID string, seed int64, tickRate int) *Recording {
	return &Recording{
		Version:  Version,
		GameID:   gameID,
		LevelID:  levelID,
		Seed:     seed,
		TickRate: tickRate,
	}
}

// Append records the input of one tick.
func (r *Recording) Append(in core.InputFrame) {
	r.Frames = append(r.Frames, Frame{Mask: in.Mask(), Elapsed: int64(in.Elapsed)})
}

// Len returns the number of recorded ticks.
func (r *Recording) Len() int {
	return len(r.Frames)
}

// Input rebuilds the input frame of tick i.
func (r *Recording) Input(i int) core.InputFrame {
	f := r.Frames[i]
	return core.FrameFromMask(f.Mask, time.Duration(f.Elapsed))
}

// Encode serializes a recording.
func Encode(r *Recording) ([]byte, error) {
	data, err := msgpack.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("replay: encode: %w", err)
	}
	return data, nil
}

// Decode parses a recording produced by Encode.
func Decode(data []byte) (*Recording, error) {
	var r Recording
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	if r.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, r.Version)
	}
	return &r, nil
}

// Player steps through a recording one tick at a time.
type Player struct {
	rec *Recording
	pos int
}

// NewPlayer creates a player positioned at the first tick.
func NewPlayer(rec *Recording) *Player {
	return &Player{rec: rec}
}

// Next returns the next input frame, or false when the recording is exhausted.
func (p *Player) Next() (core.InputFrame, bool) {
	if p.pos >= p.rec.Len() {
		return core.InputFrame{}, false
	}
	in := p.rec.Input(p.pos)
	p.pos++
	return in, true
}

// Done reports whether every frame has been played.
func (p *Player) Done() bool {
	return p.pos >= p.rec.Len()
}

// Progress returns the fraction of the recording already played.
func (p *Player) Progress() float64 {
	if p.rec.Len() == 0 {
		return 1
	}
	return float64(p.pos) / float64(p.rec.Len())
}
