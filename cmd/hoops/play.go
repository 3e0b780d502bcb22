package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hoops/internal/platform/tui"
	"github.com/vovakirdan/tui-hoops/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play without the start menu",
	Long: `Start the game directly.

Controls:
  Mouse drag     - Pull the ball, release to shoot
  Space          - Grab the ball / shoot (keyboard aiming)
  Arrows/WASD    - Pull the grabbed ball
  Enter/Space    - Start a session from the game menu
  P              - Pause
  Esc/B          - End the session (from the game menu: quit)
  Ctrl+S         - Save a screenshot to ~/.hoops/screenshots
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - More shots, fewer obstacles, longer pull
  normal - Default rules, obstacles grow with the level
  hard   - Fewer shots, more and larger obstacles
  fixed  - Default rules, obstacles never grow

Examples:
  hoops play
  hoops play --difficulty hard
  hoops play --profile guest --backend memory
  hoops play --config ./my-hoops.yaml --log-file hoops.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	s, err := openSession(logger, closeLog)
	if err != nil {
		return err
	}
	defer s.Close()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}
	if err := tui.Run(game, s.env, runtimeConfig()); err != nil {
		return fmt.Errorf("cannot run game: %w", err)
	}
	return nil
}
