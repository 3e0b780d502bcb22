package hoops

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-hoops/internal/core"
	"github.com/vovakirdan/tui-hoops/internal/physics"
)

// Visual characters for rendering
const (
	WallChar     = '█'
	ObstacleChar = '▓'
	BarChar      = '═'
	RimChar      = 'O'
	NetVertChar  = '│'
	NetHorizChar = '─'
	ElasticChar  = '·'
	LaunchChar   = '+'
	BallChar     = '●'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		b := g.cfg.Board
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorRed)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", b.MinCols, b.MinRows), core.ColorGray)
		return
	}

	g.renderHUD(dst)
	g.renderBodies(dst)
	g.renderElastic(dst)

	if ball := g.machine.Ball(); ball != nil && !g.hud.MenuVisible {
		x, y := g.toScreen(ball.Position)
		dst.SetColored(x, y, BallChar, core.ColorOrange)
	}

	switch {
	case g.hud.MenuVisible:
		g.renderMenu(dst)
	case g.paused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume", core.ColorYellow)
	case g.hud.GoalVisible:
		x, y := g.toScreen(g.hud.GoalAt)
		drawBoxAt(dst, x, y, "GOAL!", fmt.Sprintf("+%d shots", g.hud.GoalReward), core.ColorGreen)
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	status := fmt.Sprintf("Level: %d  Shots: %d", g.hud.Level, g.hud.Shots)
	dst.DrawTextColored(1, 0, status, core.ColorBrightWhite)

	best := fmt.Sprintf("Best: %d", g.session.MaxLevel)
	dst.DrawTextColored(dst.Width()-len(best)-1, 0, best, core.ColorCyan)

	if g.hud.Hint != "" && g.cfg.Board.HUDRows > 1 {
		dst.DrawTextColored(1, 1, "Hint: "+g.hud.Hint, core.ColorGray)
	}
}

func (g *Game) renderBodies(dst *core.Screen) {
	for _, b := range g.world.Bodies() {
		switch b.Label {
		case LabelWall:
			dst.DrawRect(g.cellRect(b.Bounds()), WallChar, core.ColorGray)
		case LabelObstacle:
			dst.DrawRect(g.cellRect(b.Bounds()), ObstacleChar, core.ColorWhite)
		case LabelNet:
			glyph := NetHorizChar
			if b.Height > b.Width {
				glyph = NetVertChar
			}
			dst.DrawRect(g.cellRect(b.Bounds()), glyph, core.ColorDarkGray)
		}
	}

	// Hoop last so the net never hides it.
	for _, b := range g.world.Bodies() {
		switch b.Label {
		case LabelBar:
			dst.DrawRect(g.cellRect(b.Bounds()), BarChar, core.ColorRed)
		case LabelRim:
			x, y := g.toScreen(b.Position)
			dst.SetColored(x, y, RimChar, core.ColorRed)
		}
	}
}

func (g *Game) renderElastic(dst *core.Screen) {
	if g.machine.State() != StateArmed {
		return
	}
	for _, c := range g.world.Constraints() {
		if !c.Visible || c.BodyB == nil {
			continue
		}
		ax, ay := g.toScreen(c.PointA)
		bx, by := g.toScreen(c.BodyB.Position)
		if ax != bx || ay != by {
			dst.DrawLine(ax, ay, bx, by, ElasticChar, core.ColorYellow)
		}
	}
	lx, ly := g.toScreen(g.course.Launch)
	dst.SetColored(lx, ly, LaunchChar, core.ColorBrightYellow)
}

func (g *Game) renderMenu(dst *core.Screen) {
	x, y := g.toScreen(g.hud.LastBall)
	dst.SetColored(x, y, BallChar, core.ColorGray)

	lines := []string{
		"TUI HOOPS",
		"",
		fmt.Sprintf("Level %d  Shots %d", g.session.Level, g.session.ShotsRemaining),
		fmt.Sprintf("Best level: %d", g.session.MaxLevel),
	}
	if g.ended {
		lines = append(lines, fmt.Sprintf("Last run reached level %d", g.reached))
	}
	lines = append(lines,
		"",
		"SPACE / click: play",
		"Drag the ball, release to shoot",
		"ESC: back  Q: quit",
	)

	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	boxW := w + 4
	boxH := len(lines) + 2
	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, core.ColorCyan)
	for i, l := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = core.ColorBrightYellow
		}
		lx := r.X + (boxW-len([]rune(l)))/2
		dst.DrawTextColored(lx, r.Y+1+i, l, c)
	}
}

// cellRect returns the cells covered by world bounds, at least one cell.
func (g *Game) cellRect(b physics.Bounds) core.Rect {
	cw, ch := g.cfg.Board.CellWidth, g.cfg.Board.CellHeight
	origin := g.world.Viewport().Min
	x0 := floorDiv(b.Min.X-origin.X, cw)
	y0 := floorDiv(b.Min.Y-origin.Y, ch)
	x1 := max(x0+1, int(math.Ceil((b.Max.X-origin.X)/cw)))
	y1 := max(y0+1, int(math.Ceil((b.Max.Y-origin.Y)/ch)))
	return core.NewRect(x0, y0+g.cfg.Board.HUDRows, x1-x0, y1-y0)
}

func floorDiv(v, unit float64) int {
	return int(math.Floor(v / unit))
}

// drawCenteredBox draws a message box in the middle of the screen.
func drawCenteredBox(dst *core.Screen, title, subtitle string, c core.Color) {
	drawBoxAt(dst, dst.Width()/2, dst.Height()/2, title, subtitle, c)
}

// drawBoxAt draws a message box centred on (cx, cy), kept on screen.
func drawBoxAt(dst *core.Screen, cx, cy int, title, subtitle string, c core.Color) {
	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	x := core.Clamp(cx-boxW/2, 0, max(0, dst.Width()-boxW))
	y := core.Clamp(cy-boxH/2, 0, max(0, dst.Height()-boxH))
	r := core.NewRect(x, y, boxW, boxH)

	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, c)
	dst.DrawTextColored(x+(boxW-len(title))/2, y+1, title, c)
	dst.DrawTextColored(x+(boxW-len(subtitle))/2, y+3, subtitle, core.ColorWhite)
}
