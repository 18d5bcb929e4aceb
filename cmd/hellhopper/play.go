package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hellhopper/internal/audio"
	"github.com/vovakirdan/hellhopper/internal/games/hellhopper"
	"github.com/vovakirdan/hellhopper/internal/platform/tui"
	"github.com/vovakirdan/hellhopper/internal/registry"
)

var (
	flagDifficulty string
	flagPractice   bool
	flagLevelFile  string
	flagSound      bool
	flagVolume     float64
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the given built-in level. Without a level, a level
picker is shown first.

Controls:
  A/D, Left/Right, H/L  - Steer
  P/Esc                 - Pause
  R                     - Restart (after game over)
  Ctrl+S                - Save a screenshot
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Platforms start at normal speed and speed up as you climb
  normal - Start at 30% of the extra speed
  hard   - Start at 70% of the extra speed
  fixed  - No speed-up

Examples:
  hellhopper play
  hellhopper play 02-burning-ring --difficulty hard
  hellhopper play --practice
  hellhopper play --level-file ./my-level.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addRunFlags(playCmd)
	playCmd.Flags().BoolVar(&flagPractice, "practice", false, "Falling below the view bounces you back instead of ending the run")
	playCmd.Flags().StringVar(&flagLevelFile, "level-file", "", "Play a level YAML file instead of a built-in level")
}

// addRunFlags adds the flags shared by the commands that start runs.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().BoolVar(&flagSound, "sound", true, "Play sound effects")
	cmd.Flags().Float64Var(&flagVolume, "volume", audio.DefaultVolume, "Sound volume (0-1)")
}

func runPlay(cmd *cobra.Command, args []string) {
	if err := playLevel(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// playLevel runs one game; the deferred cleanup finishes before runPlay
// exits.
func playLevel(args []string) error {
	logger, closeLog := newLogger()
	defer closeLog()

	cfg := runtimeConfig()
	store := openStore(logger)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	practice := flagPractice
	switch {
	case flagLevelFile != "":
		hellhopper.SetLevelFile(flagLevelFile)
	case len(args) == 1:
		hellhopper.SetLevel(args[0])
	default:
		// Show the level picker
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		if menuResult.LevelID == "" {
			return nil
		}
		cfg = menuResult.Config
		practice = practice || menuResult.Practice
		hellhopper.SetLevel(menuResult.LevelID)
	}
	configureGame(logger, flagDifficulty)

	// Create game instance
	game, err := registry.Create(gameID(practice))
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// Fail before taking over the terminal if the level does not load
	game.Reset(cfg)
	if hg, ok := game.(*hellhopper.Game); ok && hg.Err() != nil {
		fmt.Fprintln(os.Stderr, "Run 'hellhopper levels' to see available levels.")
		return hg.Err()
	}

	stopSound := startSound(flagSound, flagVolume, logger)
	defer stopSound()

	// Run the game
	if err := tui.Run(game, store, cfg, logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
