package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hoops/internal/progress"
)

var flagProgressReset bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset the saved level and shots",
	Long: `Print the level, best level and remaining shots saved for --profile.

With --reset the saved values are deleted, so the next session starts at
level 1 with a full set of shots. Recorded runs are kept.

Examples:
  hoops progress
  hoops progress --profile alice --reset
  hoops progress --backend gdata`,
	Args: cobra.NoArgs,
	RunE: runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagProgressReset, "reset", false, "Delete the saved progression")
}

func runProgress(_ *cobra.Command, _ []string) error {
	s, err := openSession(log.New(io.Discard), func() {})
	if err != nil {
		return err
	}
	defer s.Close()

	store := progress.NewStore(s.env.Progress, s.env.Rules, s.env.Logger)
	if flagProgressReset {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("cannot reset progress: %w", err)
		}
		fmt.Printf("Progress of %s reset.\n", flagProfile)
		return nil
	}

	sess, err := store.Load()
	if err != nil {
		return fmt.Errorf("cannot read progress: %w", err)
	}
	fmt.Printf("Profile: %s (%s)\n", flagProfile, flagBackend)
	fmt.Printf("Level:   %d\n", sess.Level)
	fmt.Printf("Best:    %d\n", sess.MaxLevel)
	fmt.Printf("Shots:   %d\n", sess.ShotsRemaining)
	return nil
}
