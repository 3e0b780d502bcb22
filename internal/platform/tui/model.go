package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hoops/internal/core"
	"github.com/vovakirdan/tui-hoops/internal/progress"
	"github.com/vovakirdan/tui-hoops/internal/registry"
	"github.com/vovakirdan/tui-hoops/internal/storage"
)

// DefaultProfile is used when no profile name is given.
const DefaultProfile = "player"

// Env holds what every screen of a session needs.
type Env struct {
	Runs     *storage.Store   // Run history; nil disables it
	Progress progress.Backend // Progression, already scoped to Profile
	Rules    progress.Rules
	Profile  string
	Logger   *log.Logger
}

func (e Env) withDefaults() Env {
	if e.Progress == nil {
		e.Progress = progress.NewMemoryBackend()
	}
	if e.Rules == (progress.Rules{}) {
		e.Rules = progress.DefaultRules()
	}
	if e.Profile == "" {
		e.Profile = DefaultProfile
	}
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	return e
}

// progressStore opens the profile's progression with the env's rules.
func (e Env) progressStore() *progress.Store {
	return progress.NewStore(e.Progress, e.Rules, e.Logger)
}

// GameModel is the Bubble Tea model that runs a game.
type GameModel struct {
	game       registry.Game
	env        Env
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	standalone bool // Back from the game's own menu quits the program
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the run has been recorded for the current game over
}

// NewGameModel creates a model for the given game.
func NewGameModel(game registry.Game, env Env, cfg core.RuntimeConfig) GameModel {
	env = env.withDefaults()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if pa, ok := game.(registry.ProgressAware); ok {
		pa.UseProgress(env.Progress)
	}

	return GameModel{
		game:       game,
		env:        env,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if ev, ok := m.keyMapper.MapMouse(msg); ok {
			m.inputFrame.AddPointer(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		// The game keeps its progression, so a resize only rebuilds the field.
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves the game only from the game's own menu; during play it
	// ends the session in that menu.
	if action == core.ActionBack && m.inGameMenu() {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m GameModel) inGameMenu() bool {
	if ma, ok := m.game.(registry.MenuAware); ok {
		return ma.InMenu()
	}
	return m.gameState.GameOver || m.gameState.Paused
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case m.gameState.GameOver && !m.scoreSaved:
		if m.gameState.Score > 0 {
			m.saveRun(m.gameState.Score)
		}
		m.scoreSaved = true
	case !m.gameState.GameOver:
		m.scoreSaved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m GameModel) saveRun(level int) {
	if m.env.Runs == nil {
		return
	}
	if _, err := m.env.Runs.SaveRun(m.env.Profile, level); err != nil {
		m.env.Logger.Warn("cannot record run", "profile", m.env.Profile, "level", level, "error", err)
		return
	}
	m.env.Logger.Info("run recorded", "profile", m.env.Profile, "level", level)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.env.Logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".hoops", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.env.Logger.Warn("cannot save screenshot", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.env.Logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.env.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a game until the player quits or backs out of it.
func Run(game registry.Game, env Env, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, env, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
