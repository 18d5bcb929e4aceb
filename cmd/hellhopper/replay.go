package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hellhopper/internal/audio"
	"github.com/vovakirdan/hellhopper/internal/core"
	"github.com/vovakirdan/hellhopper/internal/games/hellhopper"
	"github.com/vovakirdan/hellhopper/internal/platform/tui"
	"github.com/vovakirdan/hellhopper/internal/registry"
	"github.com/vovakirdan/hellhopper/internal/replay"
	"github.com/vovakirdan/hellhopper/internal/storage"
)

var (
	flagHeadless        bool
	flagReplayLevelFile string
)

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Watch or verify a recorded run",
	Long: `Play back a run saved in the runs database. Run IDs are shown by
'hellhopper scores'.

With --headless the run is simulated without a terminal and its score is
checked against the stored one; the command fails if they differ.

Examples:
  hellhopper replay 12
  hellhopper replay 12 --headless`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Simulate without a terminal and verify the score")
	replayCmd.Flags().StringVar(&flagReplayLevelFile, "level-file", "", "Level YAML file the run was played on")
	replayCmd.Flags().BoolVar(&flagSound, "sound", true, "Play sound effects")
	replayCmd.Flags().Float64Var(&flagVolume, "volume", audio.DefaultVolume, "Sound volume (0-1)")
}

func runReplay(cmd *cobra.Command, args []string) {
	runID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid run ID %q\n", args[0])
		os.Exit(1)
	}

	logger, closeLog := newLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	run, game, rec, err := loadReplay(store, runID, flagReplayLevelFile, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagHeadless {
		if !verifyReplay(run, game, rec) {
			os.Exit(1)
		}
		return
	}

	stopSound := startSound(flagSound, flagVolume, logger)
	err = tui.RunReplay(game, rec, runtimeConfig(), logger)
	stopSound()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running replay: %v\n", err)
		os.Exit(1)
	}
}

// loadReplay reads a run with its recording and prepares a game configured
// the way the run was played.
func loadReplay(store *storage.Store, runID int64, levelFile string, logger *log.Logger) (storage.Run, registry.Game, *replay.Recording, error) {
	run, err := store.RunByID(runID)
	if err != nil {
		return storage.Run{}, nil, nil, err
	}
	if len(run.Replay) == 0 {
		return storage.Run{}, nil, nil, fmt.Errorf("run %d has no recording", runID)
	}

	rec, err := replay.Decode(run.Replay)
	if err != nil {
		return storage.Run{}, nil, nil, fmt.Errorf("run %d: %w", runID, err)
	}

	hellhopper.SetLevel(rec.LevelID)
	if levelFile != "" {
		hellhopper.SetLevelFile(levelFile)
	}
	configureGame(logger, rec.Difficulty)

	game, err := registry.Create(rec.GameID)
	if err != nil {
		return storage.Run{}, nil, nil, err
	}
	logger.Debug("replay loaded", "run", runID, "level", rec.LevelID, "frames", rec.Len(), "seed", rec.Seed)
	return run, game, rec, nil
}

// verifyReplay re-simulates the run and compares it with the stored result.
func verifyReplay(run storage.Run, game registry.Game, rec *replay.Recording) bool {
	def := core.DefaultConfig()
	state := replay.Simulate(game, rec, def.ScreenW, def.ScreenH)

	outcome := ""
	if rr, ok := game.(registry.RunReporter); ok {
		sum := rr.Summary()
		outcome = sum.Outcome
		fmt.Printf("Run %d on %s: %d frames, height %.1fm, %s\n", run.ID, sum.LevelID, rec.Len(), sum.Height, outcome)
	}
	fmt.Printf("Stored score: %d  Replayed score: %d\n", run.Score, state.Score)

	if state.Score != run.Score || (outcome != "" && outcome != run.Outcome) {
		fmt.Println("MISMATCH: the recording does not reproduce the stored run.")
		fmt.Println("The game config may have changed since the run was played.")
		return false
	}
	fmt.Println("OK: the recording reproduces the stored run.")
	return true
}

// watchReplay plays a stored run back in the terminal. Errors are reported
// and the caller carries on.
func watchReplay(store *storage.Store, runID int64, cfg core.RuntimeConfig, logger *log.Logger) {
	_, game, rec, err := loadReplay(store, runID, "", logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if err := tui.RunReplay(game, rec, cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error running replay: %v\n", err)
	}
}
