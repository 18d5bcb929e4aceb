package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hellhopper/internal/config"
	"github.com/vovakirdan/hellhopper/internal/core"
	"github.com/vovakirdan/hellhopper/internal/registry"
	"github.com/vovakirdan/hellhopper/internal/replay"
	"github.com/vovakirdan/hellhopper/internal/storage"
)

// maxFrameTime caps the wall-clock time a single frame may report, so a
// stalled terminal does not turn into one huge simulation step.
const maxFrameTime = 100 * time.Millisecond

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	quitting   bool
	runSaved   bool // Whether the run has been saved for current game over
	lastRunID  int64

	recording *replay.Recording
	player    *replay.Player // Non-nil while playing a recording back
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		logger:     logger,
		inputFrame: core.NewInputFrame(),
	}
}

// NewReplayModel creates a model that feeds a recording to the game instead
// of keyboard input.
func NewReplayModel(game registry.Game, rec *replay.Recording, cfg core.RuntimeConfig, logger *log.Logger) Model {
	cfg.Seed = rec.Seed
	if rec.TickRate > 0 {
		cfg.TickRate = rec.TickRate
	}
	m := NewModel(game, nil, cfg, logger)
	m.player = replay.NewPlayer(rec)
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	// Initialize the game
	m.game.Reset(m.config)
	// Note: gameState and the recording are set on first tick (value receiver limitation)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.saveRun()
		return m, tea.Quit
	}

	// Recorded input drives the game during playback
	if m.player != nil {
		return m, nil
	}

	switch action {
	case core.ActionNone:
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	// Update screen size
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Restart only while nothing has been played, a reset mid-run would
	// break the recording
	started := m.recording != nil && m.recording.Len() > 0
	if m.player != nil {
		started = m.player.Progress() > 0
	}
	if !started {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.recording == nil {
		m.recording = m.newRecording()
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.recording = m.newRecording()
		m.inputFrame.Clear()
		m.lastTick = now
		return m, tickCmd(m.config.TickRate)
	}

	var in core.InputFrame
	if m.player != nil {
		frame, ok := m.player.Next()
		if !ok {
			// Playback finished: keep showing the last frame
			return m, tickCmd(m.config.TickRate)
		}
		in = frame
	} else {
		m.inputFrame.Elapsed = m.frameTime(now)
		in = m.inputFrame
		if !m.gameState.GameOver {
			m.recording.Append(in)
		}
	}
	m.lastTick = now

	// Run game simulation
	result := m.game.Step(in)
	m.gameState = result.State

	// Save the run on game over (once)
	if m.gameState.GameOver {
		m.saveRun()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// frameTime returns the wall-clock time since the previous tick; zero on
// the first tick means one nominal tick.
func (m Model) frameTime(now time.Time) time.Duration {
	if m.lastTick.IsZero() {
		return 0
	}
	return min(max(now.Sub(m.lastTick), 0), maxFrameTime)
}

func (m Model) newRecording() *replay.Recording {
	rec := replay.New(m.game.ID(), m.levelID(), m.config.Seed, m.config.TickRate)
	rec.Difficulty = difficultyLabel
	return rec
}

// levelID returns the level of the current run, or the game ID for games
// that do not report runs.
func (m Model) levelID() string {
	if rr, ok := m.game.(registry.RunReporter); ok {
		return rr.Summary().LevelID
	}
	return m.game.ID()
}

// saveRun stores the current run with its recording. Playbacks, runs that
// never started and runs already saved are skipped.
func (m *Model) saveRun() {
	if m.runSaved || m.player != nil || m.store == nil || m.recording == nil || m.recording.Len() == 0 {
		return
	}
	m.runSaved = true

	run := storage.Run{
		GameID:  m.game.ID(),
		LevelID: m.game.ID(),
		Score:   m.gameState.Score,
		Outcome: "quit",
		Seed:    m.config.Seed,
		Ticks:   m.recording.Len(),
	}
	if m.gameState.GameOver {
		run.Outcome = "over"
	}
	if rr, ok := m.game.(registry.RunReporter); ok {
		sum := rr.Summary()
		run.LevelID = sum.LevelID
		run.Height = sum.Height
		run.Outcome = sum.Outcome
	}

	data, err := replay.Encode(m.recording)
	if err != nil {
		m.logger.Warn("replay not stored", "error", err)
	} else {
		run.Replay = data
	}

	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Error("cannot save run", "error", err)
		return
	}
	m.lastRunID = id
	m.logger.Info("run saved", "id", id, "level", run.LevelID, "score", run.Score, "outcome", run.Outcome)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := config.UserPath("screenshots")
	if dir == "" {
		return
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	if m.player != nil {
		label := fmt.Sprintf(" REPLAY %3.0f%% ", m.player.Progress()*100)
		if m.player.Done() {
			label = " REPLAY END - Q: quit "
		}
		m.screen.DrawTextWithColor(m.screen.Width()-len(label), m.screen.Height()-1, label, core.ColorBrightMagenta)
	}

	// Convert screen to string
	return RenderScreen(m.screen)
}

// LastRunID returns the ID of the most recently saved run, 0 if none.
func (m Model) LastRunID() int64 {
	return m.lastRunID
}

// difficultyLabel is stored with recordings for display.
var difficultyLabel string

// SetDifficultyLabel records the difficulty preset name in new recordings.
func SetDifficultyLabel(preset string) {
	difficultyLabel = preset
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

// RunReplay plays a recording back in the terminal.
func RunReplay(game registry.Game, rec *replay.Recording, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewReplayModel(game, rec, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
