package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hoops/internal/storage"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List profiles with recorded runs",
	Long:  `Shows every profile that has finished at least one session, with its best level.`,
	Args:  cobra.NoArgs,
	RunE:  runProfiles,
}

func runProfiles(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open runs database: %w", err)
	}
	defer store.Close()

	profiles, err := store.Profiles()
	if err != nil {
		return fmt.Errorf("cannot list profiles: %w", err)
	}

	if len(profiles) == 0 {
		fmt.Println("No profiles yet.")
		return nil
	}

	maxLen := len("Profile")
	for _, p := range profiles {
		maxLen = max(maxLen, len(p))
	}

	fmt.Printf("  %-*s  %-5s  %-4s  %s\n", maxLen, "Profile", "Best", "Runs", "Last played")
	fmt.Printf("  %-*s  %-5s  %-4s  %s\n", maxLen, "-------", "----", "----", "-----------")
	for _, p := range profiles {
		stats, err := store.GetProfileStats(p)
		if err != nil {
			fmt.Printf("  %-*s  (unavailable: %v)\n", maxLen, p, err)
			continue
		}
		last := "-"
		if !stats.LastPlayed.IsZero() {
			last = stats.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-*s  %-5d  %-4d  %s\n", maxLen, p, stats.BestLevel, stats.RunsCount, last)
	}

	fmt.Println()
	fmt.Println("Run 'hoops scores <profile>' for a profile's best runs.")
	return nil
}
