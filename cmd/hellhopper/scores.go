package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hellhopper/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show the best runs",
	Long: `Display the best runs for a level, or for every level when none is given.
The run ID can be passed to 'hellhopper replay'.

Examples:
  hellhopper scores
  hellhopper scores 01-first-steps --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) {
	levelID := ""
	title := "all levels"
	if len(args) == 1 {
		levelID = args[0]
		title = levelID
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Get top runs
	runs, err := store.TopRuns(levelID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	// Display runs
	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'hellhopper play' to set the first score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-18s  %-7s  %-7s  %-8s  %s\n", "Rank", "Run", "Level", "Score", "Height", "Outcome", "Date")
	fmt.Printf("  %-4s  %-6s  %-18s  %-7s  %-7s  %-8s  %s\n", "----", "---", "-----", "-----", "------", "-------", "----")

	// Print runs
	for i, r := range runs {
		dateStr := "-"
		if !r.CreatedAt.IsZero() {
			dateStr = r.CreatedAt.Format("2006-01-02 15:04")
		}
		level := r.LevelID
		if r.GameID != "" && r.GameID != "hellhopper" {
			level += "*"
		}
		fmt.Printf("  %-4d  %-6d  %-18s  %-7d  %-7s  %-8s  %s\n",
			i+1, r.ID, level, r.Score, fmt.Sprintf("%.1fm", r.Height), r.Outcome, dateStr)
	}

	// Show high score
	if levelID != "" {
		fmt.Println()
		if highScore, err := store.HighScore(levelID); err == nil {
			fmt.Printf("Best: %d\n", highScore)
		}
	}
	fmt.Println()
	fmt.Println("* practice run")
}
