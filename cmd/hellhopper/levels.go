package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hellhopper/internal/games/hellhopper/level"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [file...]",
	Short: "List built-in levels or validate level files",
	Long: `Without arguments, shows the levels built into the game.
With arguments, loads and validates each level file.

Examples:
  hellhopper levels
  hellhopper levels ./my-level.yaml`,
	Run: runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		validateLevels(args)
		return
	}

	levels, err := level.Builtin().LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	// Print header
	fmt.Printf("  %-*s  %-22s  %6s  %9s\n", maxIDLen, "ID", "Name", "Rise", "Platforms")
	fmt.Printf("  %-*s  %-22s  %6s  %9s\n", maxIDLen, "--", "----", "----", "---------")

	// Print levels
	for _, l := range levels {
		fmt.Printf("  %-*s  %-22s  %5.0fm  %9d\n", maxIDLen, l.ID, l.Name, l.RiseHeight(), l.PlatformCount())
		if l.Description != "" {
			fmt.Printf("  %-*s  %s\n", maxIDLen, "", l.Description)
		}
	}

	fmt.Println()
	fmt.Println("Run 'hellhopper play <id>' to play a level.")
}

func validateLevels(paths []string) {
	failed := 0
	for _, p := range paths {
		l, err := level.LoadPath(p)
		if err != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", p, err)
			continue
		}
		fmt.Printf("ok    %s: %s (%d sections, %d platforms, %.0fm)\n",
			p, l.ID, len(l.Sections), l.PlatformCount(), l.RiseHeight())
	}

	if failed > 0 {
		os.Exit(1)
	}
}
