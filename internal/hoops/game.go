package hoops

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hoops/internal/config"
	"github.com/vovakirdan/tui-hoops/internal/core"
	"github.com/vovakirdan/tui-hoops/internal/physics"
	"github.com/vovakirdan/tui-hoops/internal/progress"
	"github.com/vovakirdan/tui-hoops/internal/registry"
)

const gameID = "hoops"

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Rules returns the progression rules of the configured game, so that
// screens outside the game agree with it on defaults.
func Rules() progress.Rules {
	return rulesFrom(loadConfig())
}

func loadConfig() config.HoopsConfig {
	cfg, err := config.LoadHoops(configPath)
	if err != nil {
		logger.Warn("cannot load config, using defaults", "path", configPath, "error", err)
	}
	if difficultyPreset != "" {
		config.ApplyHoopsPreset(&cfg, difficultyPreset)
	}
	return cfg
}

func rulesFrom(cfg config.HoopsConfig) progress.Rules {
	return progress.Rules{
		InitialShots:   cfg.Rules.InitialShots,
		FirstShotBonus: cfg.Rules.FirstShotBonus,
		GoalReward:     cfg.Rules.GoalReward,
	}
}

// Game is the basketball shot game as seen by the platform.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.HoopsConfig
	backend progress.Backend

	store   *progress.Store
	session *progress.Session
	world   *physics.World
	sched   *core.Scheduler
	course  *Course
	hud     *HUD
	machine *Machine
	rng     *rand.Rand

	aim      physics.Vec // keyboard pointer position
	paused   bool
	tooSmall bool
	ended    bool // a session ran out of shots and nothing new started yet
	reached  int
}

// New creates a game that keeps its progress in memory until UseProgress
// is called.
func New() *Game {
	return &Game{backend: progress.NewMemoryBackend()}
}

func (g *Game) ID() string {
	return gameID
}

func (g *Game) Title() string {
	return "Hoops"
}

// UseProgress sets where the progression is persisted. Takes effect on
// the next Reset.
func (g *Game) UseProgress(b progress.Backend) {
	if b == nil {
		b = progress.NewMemoryBackend()
	}
	g.backend = b
}

// Reset loads the progression and lays out a field for the screen size.
// A session in progress is saved and ends in the menu; if that used up
// the last shot, the game reports it as over so the run is recorded.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	justEnded, reached := false, 0
	if g.machine != nil {
		wasEnded := g.ended
		g.machine.Abandon()
		justEnded, reached = g.ended && !wasEnded, g.reached
	}
	g.runtime = runtime

	cfg := loadConfig()
	g.cfg = cfg

	rows := runtime.ScreenH - cfg.Board.HUDRows
	g.tooSmall = runtime.ScreenW < cfg.Board.MinCols || runtime.ScreenH < cfg.Board.MinRows

	g.store = progress.NewStore(g.backend, rulesFrom(cfg), logger)
	sess, err := g.store.Load()
	if err != nil {
		logger.Warn("cannot load progress", "error", err)
	}
	g.session = &sess

	g.rng = rand.New(rand.NewPCG(uint64(runtime.Seed), 0x686f6f7073))
	g.course = NewCourse(cfg, runtime.ScreenW, max(rows, 1))
	g.world = physics.NewWorld(physics.Config{
		Gravity:          physics.V(0, cfg.Physics.Gravity),
		Substeps:         cfg.Physics.Substeps,
		PointerStiffness: cfg.Physics.PointerStiffness,
		PointerReach:     cfg.Physics.GrabReach,
	})
	g.sched = core.NewScheduler()
	g.hud = &HUD{}
	g.machine = NewMachine(MachineOptions{
		Engine:    g.world,
		Presenter: g.hud,
		Store:     g.store,
		Session:   g.session,
		Scheduler: g.sched,
		Course:    g.course,
		Hints:     cfg.Hints,
		Rand:      g.rng,
		Logger:    logger,
		Tuning:    TuningFromConfig(cfg),
		OnSessionEnd: func(level int) {
			g.ended = true
			g.reached = level
		},
	})

	g.aim = g.course.Launch
	g.paused = false
	g.ended = justEnded
	g.reached = 0
	if justEnded {
		g.reached = reached
	}
	g.hud.ShowMenu(g.course.Launch)
	g.machine.Refresh()
}

// InMenu reports whether the game shows its own menu, where Back leaves
// the game instead of ending the session.
func (g *Game) InMenu() bool {
	return g.machine == nil || g.machine.State() == StateSessionEnd
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.InMenu() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.InMenu() {
		if g.wantsStart(in) {
			g.ended = false
			g.reached = 0
			g.aim = g.course.Launch
			g.machine.Start()
		}
	} else if in.Has(core.ActionBack) {
		g.machine.Abandon()
	} else {
		g.handlePointer(in.Pointer)
		g.handleKeys(in)
	}

	g.world.Step()
	g.sched.Advance(g.runtime.TickDuration())

	return core.StepResult{State: g.State()}
}

func (g *Game) wantsStart(in core.InputFrame) bool {
	if in.Has(core.ActionShoot) || in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
		return true
	}
	for _, ev := range in.Pointer {
		if ev.Kind == core.PointerPress {
			return true
		}
	}
	return false
}

func (g *Game) handlePointer(events []core.PointerEvent) {
	for _, ev := range events {
		p := g.toWorld(ev.X, ev.Y)
		switch ev.Kind {
		case core.PointerPress:
			if g.machine.PointerPress(p) {
				g.aim = p
			}
		case core.PointerMove:
			g.aim = p
			g.machine.PointerMove(p)
		case core.PointerRelease:
			g.machine.PointerRelease()
		}
	}
}

// handleKeys lets the keyboard play: Shoot grabs the ball, the arrows
// pull it and Shoot again lets go.
func (g *Game) handleKeys(in core.InputFrame) {
	launch := g.course.Launch
	if in.Has(core.ActionShoot) {
		if g.world.PointerPressed() {
			g.machine.PointerRelease()
			return
		}
		if g.machine.PointerPress(launch) {
			g.aim = launch
		}
	}
	if !g.world.PointerPressed() {
		return
	}

	step := g.cfg.Physics.KeyStep
	var d physics.Vec
	if in.Has(core.ActionUp) {
		d.Y -= step
	}
	if in.Has(core.ActionDown) {
		d.Y += step
	}
	if in.Has(core.ActionLeft) {
		d.X -= step
	}
	if in.Has(core.ActionRight) {
		d.X += step
	}
	if d == (physics.Vec{}) {
		return
	}
	g.aim = g.machine.ClampPull(g.aim.Add(d))
	g.machine.PointerMove(g.aim)
}

// The terminal rows below the HUD show the world's viewport, one cell
// per CellWidth x CellHeight units starting at its top-left corner.

// toWorld converts a terminal cell to the world point at its centre.
func (g *Game) toWorld(col, row int) physics.Vec {
	b := g.cfg.Board
	origin := g.world.Viewport().Min
	return physics.V(
		origin.X+(float64(col)+0.5)*b.CellWidth,
		origin.Y+(float64(row-b.HUDRows)+0.5)*b.CellHeight,
	)
}

// toScreen converts a world point to the terminal cell containing it.
func (g *Game) toScreen(p physics.Vec) (int, int) {
	b := g.cfg.Board
	origin := g.world.Viewport().Min
	return floorDiv(p.X-origin.X, b.CellWidth), floorDiv(p.Y-origin.Y, b.CellHeight) + b.HUDRows
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.ended {
		score = g.reached
	} else if g.session != nil {
		score = g.session.Level
	}
	return core.GameState{
		Score:    score,
		GameOver: g.ended,
		Paused:   g.paused,
	}
}

// Session returns the current progression.
func (g *Game) Session() progress.Session {
	if g.session == nil {
		return progress.Session{}
	}
	return *g.session
}

func init() {
	registry.Register(gameID, func() registry.Game {
		return New()
	})
}

var (
	_ registry.Game          = (*Game)(nil)
	_ registry.ProgressAware = (*Game)(nil)
	_ registry.MenuAware     = (*Game)(nil)
)
