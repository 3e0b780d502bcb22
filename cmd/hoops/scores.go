package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hoops/internal/platform/tui"
	"github.com/vovakirdan/tui-hoops/internal/storage"
)

var (
	flagScoresLimit       int
	flagScoresInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [profile]",
	Short: "Show the best runs of a profile",
	Long: `Display the best levels reached by a profile, one line per finished
session. Without an argument the --profile flag (default: $USER) is used.

Examples:
  hoops scores
  hoops scores alice --limit 20
  hoops scores --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Browse runs of all profiles in a table")
}

func runScores(_ *cobra.Command, args []string) error {
	profile := flagProfile
	if len(args) == 1 {
		profile = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open runs database: %w", err)
	}
	defer store.Close()

	if flagScoresInteractive {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, profile, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	runs, err := store.TopRuns(profile, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("cannot read runs: %w", err)
	}

	fmt.Printf("Best runs - %s\n", profile)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'hoops' and run out of shots to record your first run!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %s\n", "Rank", "Level", "Date")
	fmt.Printf("  %-4s  %-6s  %s\n", "----", "-----", "----")
	for i, entry := range runs {
		fmt.Printf("  %-4d  %-6d  %s\n", i+1, entry.Level, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetProfileStats(profile); err == nil {
		fmt.Printf("Best: %d   Runs: %d   Average: %.1f\n", stats.BestLevel, stats.RunsCount, stats.AvgLevel)
	}
	return nil
}
