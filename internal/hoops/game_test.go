package hoops

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-hoops/internal/core"
	"github.com/vovakirdan/tui-hoops/internal/physics"
	"github.com/vovakirdan/tui-hoops/internal/progress"
	"github.com/vovakirdan/tui-hoops/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegistered(t *testing.T) {
	g, err := registry.Create("hoops")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, ok := g.(registry.ProgressAware); !ok {
		t.Error("hoops should accept a progress backend")
	}
}

func TestGameStartsInMenu(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	if !g.InMenu() {
		t.Fatal("game should start in its menu")
	}
	st := g.State()
	if st.GameOver || st.Paused {
		t.Errorf("State() = %+v", st)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "TUI HOOPS") {
		t.Error("menu not rendered")
	}
}

func TestGameStartAndBack(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	g.Step(frame(core.ActionConfirm))
	if g.InMenu() {
		t.Fatal("Confirm should start a session")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Level: 1") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}

	g.Step(frame(core.ActionBack))
	if !g.InMenu() {
		t.Error("Back should return to the menu")
	}
	if g.State().GameOver {
		t.Error("leaving a session is not game over")
	}
}

func TestGameKeyboardShot(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	g.Step(frame(core.ActionShoot))

	g.Step(frame(core.ActionShoot))
	if !g.world.PointerPressed() {
		t.Fatal("Shoot should grab the ball")
	}
	for range 5 {
		g.Step(frame(core.ActionDown, core.ActionLeft))
	}
	g.Step(frame(core.ActionShoot))
	g.Step(core.NewInputFrame())

	if g.machine.State() != StateInFlight {
		t.Errorf("State() = %v, want in-flight", g.machine.State())
	}
}

func TestGameKeyboardDownPullKeepsShot(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	g.Step(frame(core.ActionConfirm))

	g.Step(frame(core.ActionShoot))
	if !g.world.PointerPressed() {
		t.Fatal("Shoot should grab the ball")
	}
	for range 8 {
		g.Step(frame(core.ActionDown))
	}
	for range 40 {
		g.Step(core.NewInputFrame())
	}
	if limit := g.course.Height - g.cfg.Ball.Radius; g.world.PointerPosition().Y > limit {
		t.Errorf("aim y = %.1f, want at most %.1f", g.world.PointerPosition().Y, limit)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.ContainsRune(screen.String(), ElasticChar) {
		t.Error("a pulled ball should show the elastic")
	}

	g.Step(frame(core.ActionShoot))
	for range 5 {
		g.Step(core.NewInputFrame())
	}
	if g.machine.State() != StateInFlight {
		t.Errorf("State() = %v, want in-flight", g.machine.State())
	}
	if g.Session().ShotsRemaining != 10 {
		t.Errorf("shots = %d, want 10 right after the launch", g.Session().ShotsRemaining)
	}
}

func TestGamePause(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	g.Step(frame(core.ActionConfirm))

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected pause")
	}
	tick := g.world.Tick()
	g.Step(core.NewInputFrame())
	if g.world.Tick() != tick {
		t.Error("world advanced while paused")
	}
	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("expected resume")
	}
}

func TestGameWindowTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 60})

	g.Step(frame(core.ActionConfirm))
	if !g.InMenu() {
		t.Error("game should not start in a window that is too small")
	}
	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected the too-small message")
	}
}

func TestGameUsesProgress(t *testing.T) {
	b := progress.NewMemoryBackend()
	_ = b.Set(progress.KeyLevel, "4")
	_ = b.Set(progress.KeyMaxLevel, "7")
	_ = b.Set(progress.KeyShots, "3")

	g := New()
	g.UseProgress(b)
	g.Reset(testRuntime())

	want := progress.Session{ShotsRemaining: 3, Level: 4, MaxLevel: 7}
	if got := g.Session(); got != want {
		t.Errorf("Session() = %+v, want %+v", got, want)
	}
	if g.State().Score != 4 {
		t.Errorf("Score = %d, want the current level", g.State().Score)
	}
}

func TestGameResetSavesSession(t *testing.T) {
	b := progress.NewMemoryBackend()
	g := New()
	g.UseProgress(b)
	g.Reset(testRuntime())
	g.Step(frame(core.ActionConfirm))

	g.session.Level = 5
	g.session.MaxLevel = 5
	g.Reset(testRuntime())

	if got := b.Snapshot()[progress.KeyLevel]; got != "5" {
		t.Errorf("persisted level = %q, want 5", got)
	}
	if g.Session().Level != 5 {
		t.Errorf("reloaded level = %d, want 5", g.Session().Level)
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() string {
		g := New()
		g.Reset(testRuntime())
		g.Step(frame(core.ActionConfirm))
		screen := core.NewScreen(80, 24)
		g.Render(screen)
		return screen.String()
	}
	if run() != run() {
		t.Error("same seed produced different layouts")
	}
}

func TestToWorldRoundTrip(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	for _, c := range [][2]int{{0, 2}, {10, 5}, {79, 23}} {
		x, y := g.toScreen(g.toWorld(c[0], c[1]))
		if x != c[0] || y != c[1] {
			t.Errorf("cell %v maps back to (%d, %d)", c, x, y)
		}
	}
}

func TestScreenMappingFollowsViewport(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	if got := g.world.Viewport(); got != g.course.Bounds() {
		t.Fatalf("Viewport() = %v, want the course bounds %v", got, g.course.Bounds())
	}

	origin := physics.V(100, 40)
	g.world.LookAt(physics.Bounds{Min: origin, Max: origin.Add(physics.V(g.course.Width, g.course.Height))})
	x, y := g.toScreen(origin)
	if x != 0 || y != g.cfg.Board.HUDRows {
		t.Errorf("viewport corner maps to (%d, %d), want (0, %d)", x, y, g.cfg.Board.HUDRows)
	}
	if x, y := g.toScreen(g.toWorld(10, 5)); x != 10 || y != 5 {
		t.Errorf("cell (10, 5) maps back to (%d, %d)", x, y)
	}
}

func TestGameResizeDuringLastShotEndsRun(t *testing.T) {
	b := progress.NewMemoryBackend()
	_ = b.Set(progress.KeyLevel, "3")
	_ = b.Set(progress.KeyShots, "1")

	g := New()
	g.UseProgress(b)
	g.Reset(testRuntime())
	g.Step(frame(core.ActionConfirm))

	g.Step(frame(core.ActionShoot))
	for range 4 {
		g.Step(frame(core.ActionDown))
	}
	g.Step(frame(core.ActionShoot))
	g.Step(core.NewInputFrame())
	if g.machine.State() != StateInFlight {
		t.Fatalf("State() = %v, want in-flight", g.machine.State())
	}

	g.Reset(testRuntime())
	st := g.State()
	if !st.GameOver || st.Score != 3 {
		t.Errorf("State() = %+v, want game over at level 3", st)
	}
	if g.Session().ShotsRemaining != 10 || g.Session().Level != 1 {
		t.Errorf("Session() = %+v, want a fresh session", g.Session())
	}
}
