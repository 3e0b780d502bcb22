package hoops

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hoops/internal/config"
	"github.com/vovakirdan/tui-hoops/internal/core"
	"github.com/vovakirdan/tui-hoops/internal/physics"
	"github.com/vovakirdan/tui-hoops/internal/progress"
)

// State is the phase of the current ball.
type State int

const (
	StateArmed      State = iota // Ball frozen at the launch point, waiting for a pull
	StateInFlight                // Ball released and moving freely
	StateGoal                    // Goal scored, celebration running
	StateOut                     // Ball left the field; transient
	StateSessionEnd              // Out of shots or not started; the menu is showing
)

func (s State) String() string {
	switch s {
	case StateArmed:
		return "armed"
	case StateInFlight:
		return "in-flight"
	case StateGoal:
		return "goal"
	case StateOut:
		return "out"
	case StateSessionEnd:
		return "session-end"
	default:
		return "unknown"
	}
}

// Tuning holds the machine's thresholds and delays.
type Tuning struct {
	LaunchThreshold  float64
	MaxPull          float64
	GrabReach        float64
	CelebrationDelay time.Duration
	StuckDelay       time.Duration
	StuckRadius      float64
	NudgeForce       float64
}

// TuningFromConfig extracts the machine tuning from the game config.
func TuningFromConfig(cfg config.HoopsConfig) Tuning {
	return Tuning{
		LaunchThreshold:  cfg.Physics.LaunchThreshold,
		MaxPull:          cfg.Physics.MaxPull,
		GrabReach:        cfg.Physics.GrabReach,
		CelebrationDelay: time.Duration(cfg.Rules.CelebrationMS) * time.Millisecond,
		StuckDelay:       time.Duration(cfg.Rules.StuckMS) * time.Millisecond,
		StuckRadius:      cfg.Rules.StuckRadius,
		NudgeForce:       cfg.Rules.NudgeForce,
	}
}

// MachineOptions wires a Machine to its collaborators.
type MachineOptions struct {
	Engine    Engine
	Presenter Presenter
	Store     *progress.Store
	Session   *progress.Session
	Scheduler *core.Scheduler
	Course    *Course
	Hints     []string
	Rand      *rand.Rand
	Logger    *log.Logger
	Tuning    Tuning

	// OnSessionEnd is called with the level reached when the shots run out.
	OnSessionEnd func(levelReached int)
}

// Machine resolves shots: it arms the ball, detects the launch, tells
// goals from rim touches and turns floor contacts into misses.
// All methods must be called from the goroutine that steps the engine.
type Machine struct {
	engine    Engine
	presenter Presenter
	store     *progress.Store
	session   *progress.Session
	sched     *core.Scheduler
	course    *Course
	hints     []string
	rng       *rand.Rand
	logger    *log.Logger
	tuning    Tuning
	onEnd     func(int)

	state        State
	round        *round
	inputEnabled bool
	lastBall     physics.Vec
}

// NewMachine creates a machine in the menu state and subscribes it to
// the engine's notifications.
func NewMachine(opts MachineOptions) *Machine {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	m := &Machine{
		engine:    opts.Engine,
		presenter: opts.Presenter,
		store:     opts.Store,
		session:   opts.Session,
		sched:     opts.Scheduler,
		course:    opts.Course,
		hints:     opts.Hints,
		rng:       opts.Rand,
		logger:    logger,
		tuning:    opts.Tuning,
		onEnd:     opts.OnSessionEnd,
		state:     StateSessionEnd,
		lastBall:  opts.Course.Launch,
	}
	m.engine.OnCollisionStart(m.onCollisionStart)
	m.engine.OnCollisionEnd(m.onCollisionEnd)
	m.engine.OnAfterUpdate(m.onAfterUpdate)
	return m
}

// State returns the current phase.
func (m *Machine) State() State {
	return m.state
}

// Session returns a copy of the progression.
func (m *Machine) Session() progress.Session {
	return *m.session
}

// Ball returns the current ball, or nil before the first round.
func (m *Machine) Ball() *physics.Body {
	if m.round == nil {
		return nil
	}
	return m.round.ball
}

// LastBall is where the ball that ended the last session came to rest.
func (m *Machine) LastBall() physics.Vec {
	return m.lastBall
}

// Start leaves the menu and builds the first round.
func (m *Machine) Start() {
	if m.state != StateSessionEnd {
		return
	}
	m.presenter.HideMenu()
	m.inputEnabled = true
	m.buildRound()
	m.Refresh()
	m.logger.Info("session started", "level", m.session.Level, "shots", m.session.ShotsRemaining)
}

// Abandon returns to the menu mid-session. Progress is kept and saved.
// A ball still in the air counts as out, so leaving cannot undo a miss.
func (m *Machine) Abandon() {
	if m.state == StateSessionEnd {
		return
	}
	if m.state == StateInFlight {
		m.resolveOut()
		if m.state == StateSessionEnd {
			return
		}
	}
	m.sched.CancelAll()
	if m.session.IsCelebrating {
		m.presenter.HideGoal()
		m.session.IsCelebrating = false
	}
	m.inputEnabled = false
	m.engine.PointerUp()
	m.state = StateSessionEnd
	m.save()
	m.presenter.ShowMenu(m.ball())
	m.logger.Info("session left", "level", m.session.Level, "shots", m.session.ShotsRemaining)
}

// Refresh pushes the counters and a random hint to the presenter.
func (m *Machine) Refresh() {
	hint := ""
	if len(m.hints) > 0 {
		hint = m.hints[m.rng.IntN(len(m.hints))]
	}
	m.presenter.Refresh(m.session.Level, m.session.ShotsRemaining, hint)
}

// PointerPress grabs the armed ball if p is within reach of it.
// Reports whether the ball was grabbed.
func (m *Machine) PointerPress(p physics.Vec) bool {
	if !m.inputEnabled || m.state != StateArmed || m.round == nil {
		return false
	}
	ball := m.round.ball
	if ball.Position.Dist(p) > ball.Radius+m.tuning.GrabReach {
		return false
	}
	m.engine.SetStatic(ball, false)
	if m.engine.PointerDown(p) != ball {
		m.engine.PointerUp()
		m.engine.SetStatic(ball, true)
		return false
	}
	return true
}

// PointerMove drags a grabbed ball to ClampPull(p).
func (m *Machine) PointerMove(p physics.Vec) {
	if m.state == StateArmed && m.engine.PointerPressed() {
		p = m.ClampPull(p)
	}
	m.engine.PointerMove(p)
}

// ClampPull limits where a held ball may be dragged: at most MaxPull
// from the launch point, and inside the field so it never touches the
// floor sensor before it is launched.
func (m *Machine) ClampPull(p physics.Vec) physics.Vec {
	launch := m.course.Launch
	p = launch.Add(p.Sub(launch).ClampLen(m.tuning.MaxPull))
	r := m.course.cfg.Ball.Radius
	if m.round != nil {
		r = m.round.ball.Radius
	}
	p.X = core.ClampF(p.X, r, max(r, m.course.Width-r))
	p.Y = core.ClampF(p.Y, r, max(r, m.course.Height-r))
	return p
}

// PointerRelease lets go of the ball. The launch itself is detected on
// the next tick.
func (m *Machine) PointerRelease() {
	if m.engine.PointerPressed() {
		m.engine.PointerUp()
	}
}

func (m *Machine) buildRound() {
	m.round = m.course.build(m.engine, m.session.Level, m.rng)
	m.arm(true)
	m.logger.Debug("round built", "round", m.round.id, "level", m.session.Level)
}

// arm freezes the ball at the launch point and hooks the elastic back on.
// A fresh arm starts a new hoop, so the attempt counter restarts.
func (m *Machine) arm(fresh bool) {
	r := m.round
	m.cancelStuck()
	m.engine.SetStatic(r.ball, true)
	m.engine.SetPosition(r.ball, m.course.Launch)
	r.elastic.Attach(r.ball)
	r.onTopOfBasket = false
	r.nudged = false
	if fresh {
		m.session.ShotAttemptsThisBall = 0
	}
	m.state = StateArmed
}

// current returns the round an event belongs to, or nil if the event
// comes from a world generation that has since been cleared.
func (m *Machine) current(generation uint64) *round {
	if m.round == nil {
		return nil
	}
	if generation != m.round.id {
		m.logger.Debug("stale event ignored", "generation", generation, "round", m.round.id)
		return nil
	}
	return m.round
}

func (m *Machine) onCollisionStart(ev physics.CollisionEvent) {
	r := m.current(ev.Generation)
	if r == nil || m.state != StateInFlight {
		return
	}
	for _, p := range ev.Pairs {
		if p.Involves(r.ball, r.bar) && r.ball.Position.Y < r.bar.Position.Y {
			r.onTopOfBasket = true
		}
	}
}

func (m *Machine) onCollisionEnd(ev physics.CollisionEvent) {
	r := m.current(ev.Generation)
	if r == nil || m.state == StateSessionEnd {
		return
	}

	// Bar pairs first: a goal must start the celebration before a floor
	// contact from the same batch is looked at.
	for _, p := range ev.Pairs {
		if !p.Involves(r.ball, r.bar) {
			continue
		}
		if m.state == StateInFlight && r.onTopOfBasket && r.ball.Position.Y > r.bar.Position.Y {
			m.resolveGoal()
		}
		r.onTopOfBasket = false
	}
	for _, p := range ev.Pairs {
		if p.Involves(r.ball, r.floor) && !r.elastic.Attached() {
			m.resolveOut()
		}
	}

	m.Refresh()
}

func (m *Machine) onAfterUpdate(ev physics.TickEvent) {
	r := m.current(ev.Generation)
	if r == nil {
		return
	}
	switch m.state {
	case StateArmed:
		m.detectLaunch(r)
	case StateInFlight:
		m.watchStuck(r)
	}
}

// detectLaunch fires once the pointer has let go of a ball pulled past
// the threshold.
func (m *Machine) detectLaunch(r *round) {
	if m.engine.PointerPressed() || r.ball.Static || !r.elastic.Attached() {
		return
	}
	if r.elastic.Stretch() <= m.tuning.LaunchThreshold {
		// Let go without a real pull: freeze again.
		m.engine.SetStatic(r.ball, true)
		m.engine.SetPosition(r.ball, m.course.Launch)
		return
	}

	r.elastic.Detach()
	m.session.ShotAttemptsThisBall++
	m.state = StateInFlight
	m.logger.Debug("launch", "attempt", m.session.ShotAttemptsThisBall, "velocity", r.ball.Velocity)
}

// watchStuck restarts the idle timer whenever the ball leaves the circle
// it was idling in.
func (m *Machine) watchStuck(r *round) {
	if r.stuck.Pending() && r.ball.Position.Dist(r.stuckOrigin) <= m.tuning.StuckRadius {
		return
	}
	r.stuck.Cancel()
	r.stuckOrigin = r.ball.Position
	id := r.id
	r.stuck = m.sched.After(m.tuning.StuckDelay, func() { m.onStuck(id) })
}

// onStuck nudges an idle ball once; if it idles again it counts as out.
func (m *Machine) onStuck(id uint64) {
	r := m.round
	if r == nil || r.id != id || m.state != StateInFlight {
		return
	}
	if !r.nudged {
		r.nudged = true
		kick := physics.V((m.rng.Float64()*2-1)*m.tuning.NudgeForce, -m.tuning.NudgeForce)
		m.engine.ApplyForce(r.ball, kick.Scale(r.ball.Mass))
		m.logger.Debug("ball idle, nudging", "at", r.ball.Position)
		return
	}
	m.logger.Info("ball stuck, counting as out", "at", r.ball.Position)
	m.resolveOut()
}

func (m *Machine) cancelStuck() {
	if m.round != nil {
		m.round.stuck.Cancel()
	}
}

func (m *Machine) resolveGoal() {
	reward := m.store.RecordGoal(m.session)
	m.cancelStuck()
	m.state = StateGoal
	m.session.IsCelebrating = true
	m.save()
	m.presenter.ShowGoal(m.course.Center(), reward)
	m.sched.After(m.tuning.CelebrationDelay, m.finishCelebration)
	m.logger.Info("goal", "reward", reward, "level", m.session.Level, "shots", m.session.ShotsRemaining)
}

func (m *Machine) finishCelebration() {
	m.presenter.HideGoal()
	m.buildRound()
	m.session.IsCelebrating = false
}

// resolveOut handles a ball that left the field. During a celebration
// the goal has already settled the shot, so nothing changes.
func (m *Machine) resolveOut() {
	if !m.store.RecordMiss(m.session) {
		m.logger.Debug("floor contact during celebration ignored")
		return
	}
	r := m.round
	m.cancelStuck()
	m.state = StateOut
	m.logger.Info("out", "shots", m.session.ShotsRemaining)

	if m.session.ShotsRemaining > 0 {
		if !m.session.IsCelebrating && !r.elastic.Attached() {
			m.arm(false)
		}
		m.save()
		return
	}
	m.endSession()
}

func (m *Machine) endSession() {
	m.lastBall = m.ball()
	m.inputEnabled = false
	m.engine.PointerUp()
	reached := m.session.Level
	m.store.ResetSession(m.session)
	m.session.ShotAttemptsThisBall = 0
	m.state = StateSessionEnd
	m.save()
	m.presenter.ShowMenu(m.lastBall)
	m.logger.Info("session over", "level", reached, "best", m.session.MaxLevel)
	if m.onEnd != nil {
		m.onEnd(reached)
	}
}

func (m *Machine) ball() physics.Vec {
	if m.round == nil {
		return m.course.Launch
	}
	return m.round.ball.Position
}

func (m *Machine) save() {
	if err := m.store.Save(*m.session); err != nil {
		m.logger.Warn("cannot save progress", "error", err)
	}
}
