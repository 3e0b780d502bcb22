// hoops is an arcade basketball-shot game for the terminal.
//
// Usage:
//
//	hoops                    - Start the menu (play, high scores, reset progress)
//	hoops play               - Jump straight into the game
//	hoops serve              - Start SSH server for remote play
//	hoops scores [profile]   - Show the best runs of a profile
//	hoops profiles           - List profiles with recorded runs
//	hoops progress           - Show or reset the saved level and shots
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible layouts
//	--db <path>          - Set database path (default: ~/.hoops/hoops.db)
//	--backend <kind>     - Where progress is kept: sqlite, gdata, memory
//	--profile <name>     - Profile to play as
//	--config <path>      - Custom game config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-file <path>    - Write logs to a file while the game is running
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-hoops/internal/core"
	"github.com/vovakirdan/tui-hoops/internal/hoops"
	"github.com/vovakirdan/tui-hoops/internal/platform/tui"
	"github.com/vovakirdan/tui-hoops/internal/progress"
	"github.com/vovakirdan/tui-hoops/internal/storage"
)

const gameID = "hoops"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagBackend    string
	flagProfile    string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hoops",
	Short: "TUI Hoops - shoot hoops in your terminal",
	Long: `TUI Hoops is an arcade basketball-shot game for the terminal.

Drag the ball away from the launch point with the mouse (or grab it with
Space and pull with the arrow keys) and let go to shoot. Score on the
first shot of a hoop for 5 extra shots, on a later shot for 1. Every goal
moves you up a level; run out of shots and you start over from level 1.

Examples:
  hoops
  hoops play --difficulty easy
  hoops serve --ssh :2222
  hoops scores
  hoops progress --reset`,
	SilenceUsage: true,
	RunE:         runSession,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hoops/hoops.db", "Path to the runs and progress database")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", storage.BackendSQLite, "Progress backend: sqlite, gdata, memory")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", defaultProfile(), "Profile to play as")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the terminal is busy with the game)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(progressCmd)
}

func defaultProfile() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return tui.DefaultProfile
}

// newLogger builds the logger for w at the --log-level level.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "hoops",
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger
}

// tuiLogger logs to --log-file, or nowhere: stderr would draw over the game.
func tuiLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return newLogger(f), func() { f.Close() }, nil
}

// session is everything a local command needs to play or inspect progress.
type session struct {
	store   *storage.Store
	env     tui.Env
	cleanup func()
}

func (s *session) Close() {
	if s.store != nil {
		s.store.Close()
	}
	s.cleanup()
}

// openSession opens storage and scopes the progress backend to --profile.
func openSession(logger *log.Logger, cleanup func()) (*session, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, runs will not be recorded", "path", flagDBPath, "error", err)
		store = nil
	}

	backend, err := storage.OpenBackend(flagBackend, store, gameID)
	if err != nil {
		if store != nil {
			store.Close()
		}
		cleanup()
		return nil, fmt.Errorf("cannot open %s progress backend: %w", flagBackend, err)
	}

	hoops.SetLogger(logger)
	hoops.SetConfigPath(flagConfig)
	hoops.SetDifficultyPreset(flagDifficulty)

	return &session{
		store: store,
		env: tui.Env{
			Runs:     store,
			Progress: progress.Prefixed(flagProfile, backend),
			Rules:    hoops.Rules(),
			Profile:  flagProfile,
			Logger:   logger,
		},
		cleanup: cleanup,
	}, nil
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runSession(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	s, err := openSession(logger, closeLog)
	if err != nil {
		return err
	}
	defer s.Close()

	logger.Info("session starting", "profile", flagProfile, "backend", flagBackend)
	return tui.RunSession(s.env, gameID, runtimeConfig())
}
