// hellhopper is a vertical platformer for the terminal: climb out of hell
// on fiery, moving and crumbling platforms.
//
// Usage:
//
//	hellhopper levels             - List built-in levels or validate level files
//	hellhopper play [level]       - Play a level
//	hellhopper menu               - Pick levels interactively
//	hellhopper scores [level]     - Show the best runs
//	hellhopper replay <run-id>    - Watch or verify a recorded run
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.hellhopper/runs.db)
//	--config <path>    - Use a custom game config YAML
//	--log-file <path>  - Set log file (default: ~/.hellhopper/hellhopper.log)
//	--debug            - Log debug messages
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hellhopper/internal/config"

	// Import the game to register it
	_ "github.com/vovakirdan/hellhopper/internal/games/hellhopper"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hellhopper",
	Short: "Hell Hopper - climb out of hell in your terminal",
	Long: `Hell Hopper is a terminal vertical platformer. The character jumps on
its own; steer left and right to land on platforms and climb to the exit.

Available commands:
  levels   - Show built-in levels, or validate level files
  play     - Play a level directly
  menu     - Interactive level picker
  scores   - View the best runs
  replay   - Watch or verify a recorded run

Examples:
  hellhopper levels
  hellhopper play 02-burning-ring --difficulty hard
  hellhopper menu
  hellhopper scores 01-first-steps
  hellhopper replay 12 --headless`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hellhopper/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", config.UserPath("hellhopper.log"), "Log file (empty disables logging)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug messages")

	// Add subcommands
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
}
