package hoops

import (
	"math/rand/v2"

	"github.com/vovakirdan/tui-hoops/internal/config"
	"github.com/vovakirdan/tui-hoops/internal/core"
	"github.com/vovakirdan/tui-hoops/internal/physics"
)

// Body labels, used by the renderer.
const (
	LabelBall     = "ball"
	LabelBar      = "bar"
	LabelRim      = "rim"
	LabelNet      = "net"
	LabelWall     = "wall"
	LabelFloor    = "floor"
	LabelObstacle = "obstacle"
	LabelElastic  = "elastic"
)

// obstacleAttempts bounds the retries for an obstacle that would cover
// the launch point.
const obstacleAttempts = 10

// Course is the playing field geometry for one screen size.
type Course struct {
	cfg        config.HoopsConfig
	difficulty *config.DifficultyManager

	Width, Height float64
	Launch        physics.Vec
}

// NewCourse lays out a field of cols x rows terminal cells.
func NewCourse(cfg config.HoopsConfig, cols, rows int) *Course {
	w := float64(cols) * cfg.Board.CellWidth
	h := float64(rows) * cfg.Board.CellHeight
	return &Course{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		Width:      w,
		Height:     h,
		Launch:     physics.V(w/2, h-cfg.Ball.LaunchOffset),
	}
}

// Bounds returns the visible field.
func (c *Course) Bounds() physics.Bounds {
	return physics.Bounds{Max: physics.V(c.Width, c.Height)}
}

// Center returns the middle of the field.
func (c *Course) Center() physics.Vec {
	return c.Bounds().Center()
}

// BasketWidth is the distance between the two rims.
func (c *Course) BasketWidth() float64 {
	return c.cfg.Ball.Radius * c.cfg.Basket.BallRatio * 2
}

// hoopRange returns where the left rim may be placed.
func (c *Course) hoopRange() (minX, maxX, minY, maxY float64) {
	wall := c.cfg.Board.WallThickness
	t := c.cfg.Basket.Thickness
	r := c.cfg.Ball.Radius
	top := 2*r + c.cfg.Basket.TopMargin
	bottom := c.Height - c.Launch.Y + r + c.cfg.Basket.BottomMargin

	minX = t/2 + wall
	maxX = c.Width - c.BasketWidth() - wall - t/2
	minY = wall + t/2 + top
	maxY = c.Height - t - bottom
	return minX, max(minX, maxX), minY, max(minY, maxY)
}

// round holds everything that lives for one hoop placement.
type round struct {
	id uint64

	ball    *physics.Body
	bar     *physics.Body
	floor   *physics.Body
	elastic *physics.Constraint

	onTopOfBasket bool

	stuck       core.TaskHandle
	stuckOrigin physics.Vec
	nudged      bool
}

// build clears the engine and populates it with a fresh round.
func (c *Course) build(e Engine, level int, rng *rand.Rand) *round {
	e.Clear()

	cfg := c.cfg
	wall := cfg.Board.WallThickness
	r := cfg.Ball.Radius
	w, h := c.Width, c.Height
	sideH := h + 2*r + wall

	// Ceiling and side walls; the bottom is open.
	e.Add(
		physics.NewRectangle(w/2, wall/2, w, wall, physics.Options{Label: LabelWall, Static: true}),
		physics.NewRectangle(wall/2, sideH/2, wall, sideH, physics.Options{Label: LabelWall, Static: true}),
		physics.NewRectangle(w-wall/2, sideH/2, wall, sideH, physics.Options{Label: LabelWall, Static: true}),
	)

	floor := physics.NewRectangle(w/2, h+wall/2+2*r, w, wall, physics.Options{
		Label: LabelFloor, Static: true, Sensor: true,
	})
	ball := physics.NewCircle(c.Launch.X, c.Launch.Y, r, physics.Options{
		Label:       LabelBall,
		Restitution: cfg.Ball.Restitution,
		Density:     cfg.Ball.Density,
		AirFriction: cfg.Ball.AirFriction,
	})
	e.Add(floor, ball)

	elastic := physics.NewSpring(c.Launch, ball, cfg.Physics.ElasticStiffness)
	elastic.Label = LabelElastic
	e.AddConstraint(elastic)

	bar := c.addHoop(e, rng)
	c.addObstacles(e, level, rng)

	e.LookAt(c.Bounds())

	return &round{
		id:      e.Generation(),
		ball:    ball,
		bar:     bar,
		floor:   floor,
		elastic: elastic,
	}
}

// addHoop places two rims, the detection bar between them and the net.
func (c *Course) addHoop(e Engine, rng *rand.Rand) *physics.Body {
	b := c.cfg.Basket
	minX, maxX, minY, maxY := c.hoopRange()
	x := randRange(rng, minX, maxX)
	y := randRange(rng, minY, maxY)
	bw := c.BasketWidth()

	rim := physics.Options{Label: LabelRim, Static: true}
	bar := physics.NewRectangle(x+bw/2, y, bw, b.Thickness, physics.Options{
		Label: LabelBar, Static: true, Sensor: true,
	})
	e.Add(
		physics.NewCircle(x, y, b.Thickness/2, rim),
		physics.NewCircle(x+bw, y, b.Thickness/2, rim),
		bar,
	)

	net := physics.Options{Label: LabelNet, Static: true, Sensor: true}
	lineH := b.NetHeight + 20
	if b.NetColumns > 1 {
		for i := range b.NetColumns {
			nx := x + float64(i)*bw/float64(b.NetColumns-1)
			e.Add(physics.NewRectangle(nx, y+lineH/2, b.NetThickness, lineH, net))
		}
	}
	if b.NetRows > 1 {
		for j := range b.NetRows {
			ny := y + 5 + b.NetThickness/2 + float64(j)*b.NetHeight/float64(b.NetRows-1)
			e.Add(physics.NewRectangle(x+bw/2, ny, bw, b.NetThickness, net))
		}
	}
	return bar
}

// addObstacles scatters min(level, cap) static blocks over the field.
func (c *Course) addObstacles(e Engine, level int, rng *rand.Rand) {
	o := c.cfg.Obstacles
	wall := c.cfg.Board.WallThickness
	maxW := c.difficulty.ObstacleMaxSize(min(c.Width*o.MaxFraction, o.MaxSize), level)
	maxH := c.difficulty.ObstacleMaxSize(min(c.Height*o.MaxFraction, o.MaxSize), level)
	keepClear := physics.Bounds{
		Min: c.Launch.Sub(physics.V(c.cfg.Ball.Radius*2, c.cfg.Ball.Radius*2)),
		Max: c.Launch.Add(physics.V(c.cfg.Ball.Radius*2, c.cfg.Ball.Radius*2)),
	}

	for range config.ObstacleCount(level, o.Cap) {
		var block *physics.Body
		for range obstacleAttempts {
			block = physics.NewRectangle(
				randRange(rng, wall, c.Width),
				randRange(rng, wall, c.Height),
				randRange(rng, o.MinSize, maxW),
				randRange(rng, o.MinSize, maxH),
				physics.Options{Label: LabelObstacle, Static: true},
			)
			if !overlaps(block.Bounds(), keepClear) {
				break
			}
			block = nil
		}
		if block != nil {
			e.Add(block)
		}
	}
}

func overlaps(a, b physics.Bounds) bool {
	return a.Min.X < b.Max.X && b.Min.X < a.Max.X && a.Min.Y < b.Max.Y && b.Min.Y < a.Max.Y
}

// randRange returns a float in [lo, hi), swapping reversed bounds.
func randRange(rng *rand.Rand, lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + rng.Float64()*(hi-lo)
}
