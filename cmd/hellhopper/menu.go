package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hellhopper/internal/games/hellhopper"
	"github.com/vovakirdan/hellhopper/internal/platform/tui"
	"github.com/vovakirdan/hellhopper/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a level picker menu",
	Long: `Start Hell Hopper in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a level.
After a run ends, you return to the menu to play again.
From the scoreboard (Tab), Enter plays back the selected run.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play level
  P            - Toggle practice mode
  Tab          - Scoreboard
  Q            - Quit

Examples:
  hellhopper menu
  hellhopper menu --fps 30 --difficulty hard
  hellhopper menu --db ./runs.db`,
	Run: runMenu,
}

func init() {
	// Uses global flags from main.go (--fps, --seed, --db, --config)
	addRunFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger()
	defer closeLog()

	// Open run storage
	store := openStore(logger)
	stopSound := startSound(flagSound, flagVolume, logger)
	defer stopSound()

	cfg := runtimeConfig()

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants scoreboard
		if menuResult.WantsScoreboard {
			sb, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if sb.ReplayRunID != 0 && store != nil {
				watchReplay(store, sb.ReplayRunID, cfg, logger)
			}
			if sb.GoBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.LevelID == "" {
			break
		}

		hellhopper.SetLevel(menuResult.LevelID)
		configureGame(logger, flagDifficulty)

		// Create game instance
		game, err := registry.Create(gameID(menuResult.Practice))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Update seed for each game
		cfg.Seed = time.Now().UnixNano()
		if flagSeed != 0 {
			cfg.Seed = flagSeed
		}

		// Run the game
		if err := tui.Run(game, store, cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
