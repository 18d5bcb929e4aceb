// Package hellhopper adapts the Hell Hopper simulation to the arcade
// platform: it loads the level and configuration, maps input actions to
// steering, moves the camera, forwards sound cues and draws the HUD.
package hellhopper

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hellhopper/internal/config"
	"github.com/vovakirdan/hellhopper/internal/core"
	"github.com/vovakirdan/hellhopper/internal/games/hellhopper/level"
	"github.com/vovakirdan/hellhopper/internal/games/hellhopper/sim"
	"github.com/vovakirdan/hellhopper/internal/registry"
)

// Registry IDs.
const (
	GameID         = "hellhopper"
	PracticeGameID = "hellhopper_practice"
)

// DefaultLevelID is played when no level was selected.
const DefaultLevelID = "01-first-steps"

// Layout limits in cells.
const (
	hudRows    = 1
	minScreenW = 24
	minScreenH = 12
)

// flashDuration is how long a visual cue stays on screen, in seconds.
const flashDuration = 0.35

// SoundSink receives sound cues. audio.Player implements it.
type SoundSink interface {
	PlaySound(s sim.Sound)
}

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	levelID          string
	levelFile        string
	logger           *log.Logger
	soundSink        SoundSink
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLevel selects a built-in level by ID.
func SetLevel(id string) {
	levelID = id
	levelFile = ""
}

// SetLevelFile selects a level file from disk; it wins over SetLevel.
func SetLevelFile(path string) {
	levelFile = path
}

// SetLogger sets the logger handed to new games.
func SetLogger(l *log.Logger) {
	logger = l
}

// SetSoundSink sets where sound cues go. nil mutes the game.
func SetSoundSink(s SoundSink) {
	soundSink = s
}

// SelectedLevel returns the level ID a new game would load.
func SelectedLevel() string {
	if levelID == "" {
		return DefaultLevelID
	}
	return levelID
}

// flash is an active visual cue.
type flash struct {
	kind sim.Visual
	at   core.Vec2
	ttl  float64
}

// Game implements registry.Game for Hell Hopper.
type Game struct {
	practice bool

	runtime    core.RuntimeConfig
	cfg        config.HellHopperConfig
	difficulty *config.DifficultyManager
	log        *log.Logger
	sink       SoundSink

	lvl     *level.Level
	area    *sim.Area
	signals sim.SignalQueue
	camera  Camera
	steer   Steering
	flashes []flash

	gameOver       bool
	paused         bool
	loadErr        error
	screenTooSmall bool
}

// New creates a new Hell Hopper game instance.
func New() *Game {
	return &Game{}
}

// NewPractice creates a game where falling below the view bounces the
// character back instead of ending the run.
func NewPractice() *Game {
	return &Game{practice: true}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.practice {
		return PracticeGameID
	}
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.practice {
		return "Hell Hopper (Practice)"
	}
	return "Hell Hopper"
}

// Reset loads configuration and level and starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.log = logger
	if g.log == nil {
		g.log = log.New(io.Discard)
	}
	g.sink = soundSink

	cfg, err := config.LoadHellHopper(configPath)
	if err != nil {
		g.log.Warn("config not loaded, using defaults", "error", err)
		cfg = config.DefaultHellHopperConfig()
	}
	if difficultyPreset != "" {
		config.ApplyHellHopperPreset(&cfg, difficultyPreset)
	}
	if g.practice {
		config.ApplyPractice(&cfg)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.screenTooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH
	g.gameOver = false
	g.paused = false
	g.flashes = g.flashes[:0]
	g.signals.Drain()
	g.steer = NewSteering(cfg.Controls)
	g.camera = NewCamera(cfg.Camera)

	g.loadErr = g.load(runtime.Seed)
	if g.loadErr != nil {
		g.log.Error("cannot start run", "error", g.loadErr)
		g.gameOver = true
	}
}

// load resolves the selected level and builds the simulation area.
func (g *Game) load(seed int64) error {
	var lvl level.Level
	var err error
	if levelFile != "" {
		lvl, err = level.LoadPath(levelFile)
	} else {
		lvl, err = level.Builtin().LoadByID(SelectedLevel())
	}
	if err != nil {
		return fmt.Errorf("hellhopper: %w", err)
	}

	area, err := sim.NewArea(&lvl, sim.Options{
		Tuning:  tuningFromConfig(g.cfg),
		Seed:    seed,
		Signals: &g.signals,
		Logger:  g.log,
	})
	if err != nil {
		return fmt.Errorf("hellhopper: %w", err)
	}

	g.lvl = &lvl
	g.area = area
	g.camera.SetLimit(lvl.RiseHeight())
	return nil
}

// tuningFromConfig maps the YAML configuration onto simulation parameters.
func tuningFromConfig(cfg config.HellHopperConfig) sim.Tuning {
	t := sim.DefaultTuning()
	t.Gravity = cfg.Physics.Gravity
	t.JumpSpeed = cfg.Physics.JumpSpeed
	t.MaxFallSpeed = cfg.Physics.MaxFallSpeed
	t.CrumbleDuration = cfg.Physics.CrumbleDuration
	t.FallDeath = cfg.Rules.FallDeath
	t.EndCountdown = cfg.Rules.EndCountdown
	t.DyingDuration = cfg.Rules.DyingDuration
	t.PickupTextDuration = cfg.Rules.PickupText
	return t
}

// Step advances the game by one input frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver || g.area == nil {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := in.ElapsedSeconds(g.runtime.TickRate)

	switch {
	case in.Has(core.ActionLeft):
		g.steer.Press(-1)
	case in.Has(core.ActionRight):
		g.steer.Press(1)
	}

	c := g.area.Character()
	g.area.SetTimeScale(g.difficulty.Speed(1, c.MaxHeight(), g.area.Ticks()))
	g.area.Update(dt, sim.FrameInput{
		HorizontalSpeed: g.steer.Speed(),
		VisibleBottom:   g.camera.Bottom(),
		VisibleHeight:   g.camera.Height(),
	})
	g.steer.Advance(dt)
	if c.Alive() {
		g.camera.Follow(c.Position().Y)
	}

	g.forwardSignals()
	g.updateFlashes(dt)

	if g.area.Finished() {
		g.gameOver = true
		g.log.Info("run finished",
			"level", g.lvl.ID,
			"outcome", c.Outcome(),
			"score", g.score(),
			"height", math.Floor(c.MaxHeight()),
			"ticks", g.area.Ticks())
	}

	return core.StepResult{State: g.State()}
}

// forwardSignals drains the simulation's cues: sounds go to the sink and
// visuals become short-lived flashes.
func (g *Game) forwardSignals() {
	sounds, visuals := g.signals.Drain()
	if g.sink != nil {
		for _, s := range sounds {
			g.sink.PlaySound(s)
		}
	}
	for _, v := range visuals {
		g.flashes = append(g.flashes, flash{kind: v.Kind, at: v.At, ttl: flashDuration})
	}
}

func (g *Game) updateFlashes(dt float64) {
	kept := g.flashes[:0]
	for _, f := range g.flashes {
		f.ttl -= dt
		if f.ttl > 0 {
			kept = append(kept, f)
		}
	}
	g.flashes = kept
}

// score is ten points per meter climbed plus item points.
func (g *Game) score() int {
	if g.area == nil {
		return 0
	}
	c := g.area.Character()
	return int(math.Floor(c.MaxHeight()))*10 + c.Points()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score(),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Summary describes the run for persistence. Runs that have not finished
// are reported as quit.
func (g *Game) Summary() core.RunSummary {
	if g.area == nil {
		return core.RunSummary{LevelID: SelectedLevel(), Outcome: "quit"}
	}
	c := g.area.Character()
	outcome := "quit"
	if g.area.Finished() {
		outcome = c.Outcome().String()
	}
	return core.RunSummary{
		LevelID: g.lvl.ID,
		Height:  c.MaxHeight(),
		Outcome: outcome,
	}
}

// Area returns the running simulation, nil when the level failed to load.
func (g *Game) Area() *sim.Area {
	return g.area
}

// Err returns the error that prevented the run from starting.
func (g *Game) Err() error {
	return g.loadErr
}

// Camera returns the camera.
func (g *Game) Camera() Camera {
	return g.camera
}

// Register the games with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(PracticeGameID, func() registry.Game {
		return NewPractice()
	})
}
