package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/hellhopper/internal/audio"
	"github.com/vovakirdan/hellhopper/internal/core"
	"github.com/vovakirdan/hellhopper/internal/games/hellhopper"
	"github.com/vovakirdan/hellhopper/internal/platform/tui"
	"github.com/vovakirdan/hellhopper/internal/storage"
)

// newLogger returns the logger for a command. The TUI owns the terminal, so
// logs go to --log-file, or nowhere when it is empty. The returned func
// closes the file.
func newLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}

	if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "hellhopper",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, func() { f.Close() }
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the runs database. The game still works without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("could not open runs database", "error", err)
		return nil
	}
	return store
}

// configureGame applies the global and per-run selections to new games.
func configureGame(logger *log.Logger, difficulty string) {
	hellhopper.SetConfigPath(flagConfig)
	hellhopper.SetDifficultyPreset(difficulty)
	hellhopper.SetLogger(logger)
	tui.SetDifficultyLabel(difficulty)
}

// startSound opens the speaker and routes game cues to it. The returned
// func stops playback.
func startSound(enabled bool, volume float64, logger *log.Logger) func() {
	hellhopper.SetSoundSink(nil)
	if !enabled {
		return func() {}
	}

	player := audio.NewPlayer(volume, logger)
	if err := player.Init(); err != nil {
		logger.Warn("sound disabled", "error", err)
		return func() {}
	}
	hellhopper.SetSoundSink(player)
	return player.Close
}

// gameID returns the registry ID for normal or practice play.
func gameID(practice bool) string {
	if practice {
		return hellhopper.PracticeGameID
	}
	return hellhopper.GameID
}
