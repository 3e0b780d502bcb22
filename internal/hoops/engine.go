// Package hoops implements the basketball shot game: the round layout,
// the shot state machine that classifies goals and misses, and the
// terminal presentation.
package hoops

import "github.com/vovakirdan/tui-hoops/internal/physics"

// Engine is the physics world the machine drives. *physics.World implements it.
type Engine interface {
	Clear()
	Add(bodies ...*physics.Body)
	AddConstraint(c *physics.Constraint)
	Generation() uint64

	SetStatic(b *physics.Body, static bool)
	SetPosition(b *physics.Body, p physics.Vec)
	ApplyForce(b *physics.Body, f physics.Vec)

	PointerDown(p physics.Vec) *physics.Body
	PointerMove(p physics.Vec)
	PointerUp()
	PointerPressed() bool

	LookAt(bounds physics.Bounds)

	OnCollisionStart(fn func(physics.CollisionEvent))
	OnCollisionEnd(fn func(physics.CollisionEvent))
	OnAfterUpdate(fn func(physics.TickEvent))
}

// Presenter shows the game state to the player.
type Presenter interface {
	// Refresh updates the level and shot counters and the hint line.
	Refresh(level, shots int, hint string)
	ShowGoal(at physics.Vec, reward int)
	HideGoal()
	// ShowMenu opens the menu; lastBall is where the final ball ended up.
	ShowMenu(lastBall physics.Vec)
	HideMenu()
}

var _ Engine = (*physics.World)(nil)
