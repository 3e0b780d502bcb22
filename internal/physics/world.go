package physics

import "math"

// CollisionEvent is a batch of pairs that started or stopped touching
// during one tick. Generation identifies the world contents the pairs
// belong to; it changes every time the world is cleared.
type CollisionEvent struct {
	Generation uint64
	Pairs      []Pair
}

// TickEvent is delivered after every completed step.
type TickEvent struct {
	Generation uint64
	Tick       uint64
}

// Config tunes a world.
type Config struct {
	Gravity          Vec     // Acceleration in units per tick squared
	Substeps         int     // Integration substeps per tick (default 1)
	PointerStiffness float64 // How fast a grabbed body follows the pointer
	PointerReach     float64 // Extra grab distance around a body's shape
}

type pointer struct {
	position Vec
	down     bool
	grabbed  *Body
}

// World owns bodies and constraints and advances them in fixed ticks.
// It is not safe for concurrent use.
type World struct {
	cfg         Config
	bodies      []*Body
	constraints []*Constraint
	contacts    *contactTracker
	pointer     pointer
	viewport    Bounds

	generation uint64
	nextID     BodyID
	tick       uint64

	onStart []func(CollisionEvent)
	onEnd   []func(CollisionEvent)
	onTick  []func(TickEvent)
}

// NewWorld creates an empty world.
func NewWorld(cfg Config) *World {
	if cfg.Substeps <= 0 {
		cfg.Substeps = 1
	}
	if cfg.PointerStiffness <= 0 {
		cfg.PointerStiffness = 0.2
	}
	return &World{
		cfg:        cfg,
		contacts:   newContactTracker(),
		generation: 1,
	}
}

// Generation returns the id of the current world contents.
func (w *World) Generation() uint64 {
	return w.generation
}

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	return w.tick
}

// Bodies returns the bodies in insertion order. The slice must not be modified.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Constraints returns the constraints in insertion order.
func (w *World) Constraints() []*Constraint {
	return w.constraints
}

// Clear removes every body and constraint and starts a new generation.
// Registered event handlers are kept; contacts are dropped without end events.
func (w *World) Clear() {
	w.bodies = nil
	w.constraints = nil
	w.contacts.reset()
	w.pointer.grabbed = nil
	w.pointer.down = false
	w.generation++
}

// Add inserts bodies into the world, assigning IDs.
func (w *World) Add(bodies ...*Body) {
	for _, b := range bodies {
		w.nextID++
		b.ID = w.nextID
		b.Generation = w.generation
		w.bodies = append(w.bodies, b)
	}
}

// Remove deletes a body. Its contacts vanish silently.
func (w *World) Remove(b *Body) {
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	w.contacts.forget(b.ID)
	if w.pointer.grabbed == b {
		w.pointer.grabbed = nil
	}
}

// AddConstraint inserts a constraint.
func (w *World) AddConstraint(c *Constraint) {
	w.constraints = append(w.constraints, c)
}

// SetStatic freezes or releases a body. Freezing stops it dead.
func (w *World) SetStatic(b *Body, static bool) {
	b.Static = static
	if static {
		b.Velocity = Vec{}
		b.force = Vec{}
		if w.pointer.grabbed == b {
			w.pointer.grabbed = nil
		}
	}
}

// SetPosition teleports a body without changing its velocity.
func (w *World) SetPosition(b *Body, p Vec) {
	b.Position = p
}

// ApplyForce adds a force to the body for the next step.
func (w *World) ApplyForce(b *Body, f Vec) {
	if b.Static {
		return
	}
	b.force = b.force.Add(f)
}

// LookAt sets the region of the world a renderer should fit on screen.
func (w *World) LookAt(bounds Bounds) {
	w.viewport = bounds
}

// Viewport returns the region set by LookAt.
func (w *World) Viewport() Bounds {
	return w.viewport
}

// PointerDown presses the pointer at p and grabs the first dynamic,
// non-sensor body under it. Returns the grabbed body, if any.
func (w *World) PointerDown(p Vec) *Body {
	w.pointer.position = p
	w.pointer.down = true
	w.pointer.grabbed = nil
	for _, b := range w.bodies {
		if b.Static || b.Sensor {
			continue
		}
		if b.ContainsPoint(p) || (b.Shape == ShapeCircle && b.Position.Dist(p) <= b.Radius+w.cfg.PointerReach) {
			w.pointer.grabbed = b
			break
		}
	}
	return w.pointer.grabbed
}

// PointerMove moves the pointer; a grabbed body follows on the next step.
func (w *World) PointerMove(p Vec) {
	w.pointer.position = p
}

// PointerUp releases the pointer and whatever it held.
func (w *World) PointerUp() {
	w.pointer.down = false
	w.pointer.grabbed = nil
}

// PointerPressed reports whether the pointer is held down.
func (w *World) PointerPressed() bool {
	return w.pointer.down
}

// PointerPosition returns the last pointer position.
func (w *World) PointerPosition() Vec {
	return w.pointer.position
}

// Grabbed returns the body held by the pointer, or nil.
func (w *World) Grabbed() *Body {
	return w.pointer.grabbed
}

// OnCollisionStart registers a handler for pairs that begin touching.
func (w *World) OnCollisionStart(fn func(CollisionEvent)) {
	w.onStart = append(w.onStart, fn)
}

// OnCollisionEnd registers a handler for pairs that stop touching.
func (w *World) OnCollisionEnd(fn func(CollisionEvent)) {
	w.onEnd = append(w.onEnd, fn)
}

// OnAfterUpdate registers a handler run at the end of every step.
func (w *World) OnAfterUpdate(fn func(TickEvent)) {
	w.onTick = append(w.onTick, fn)
}

// Step advances the simulation by one tick and delivers notifications:
// collision starts, then collision ends, then after-update.
func (w *World) Step() {
	for _, c := range w.constraints {
		if c.BodyB != nil && w.pointer.grabbed != c.BodyB {
			w.ApplyForce(c.BodyB, c.force())
		}
	}

	h := 1.0 / float64(w.cfg.Substeps)
	for range w.cfg.Substeps {
		w.integrate(h)
		w.collide()
	}
	for _, b := range w.bodies {
		b.force = Vec{}
	}
	w.tick++

	gen := w.generation
	started, ended := w.contacts.flush()
	if len(started) > 0 {
		ev := CollisionEvent{Generation: gen, Pairs: started}
		for _, fn := range w.onStart {
			fn(ev)
		}
	}
	if len(ended) > 0 {
		ev := CollisionEvent{Generation: gen, Pairs: ended}
		for _, fn := range w.onEnd {
			fn(ev)
		}
	}
	ev := TickEvent{Generation: gen, Tick: w.tick}
	for _, fn := range w.onTick {
		fn(ev)
	}
}

func (w *World) integrate(h float64) {
	for _, b := range w.bodies {
		if b.Static {
			continue
		}
		if b == w.pointer.grabbed {
			b.Velocity = w.pointer.position.Sub(b.Position).Scale(w.cfg.PointerStiffness)
		} else {
			acc := w.cfg.Gravity
			if b.Mass > 0 {
				acc = acc.Add(b.force.Scale(1 / b.Mass))
			}
			b.Velocity = b.Velocity.Add(acc.Scale(h))
			b.Velocity = b.Velocity.Scale(math.Pow(1-b.AirFriction, h))
		}
		b.Position = b.Position.Add(b.Velocity.Scale(h))
	}
}

func (w *World) collide() {
	for _, b := range w.bodies {
		if b.Static || b.Shape != ShapeCircle {
			continue
		}
		for _, o := range w.bodies {
			if o == b {
				continue
			}
			// Pairs of dynamic circles are visited twice; keep one.
			if !o.Static && o.ID < b.ID && o.Shape == ShapeCircle {
				continue
			}
			p, ok := overlap(b, o)
			if !ok {
				continue
			}
			w.contacts.touch(b, o)
			if b.Sensor || o.Sensor {
				continue
			}
			resolve(b, o, p)
		}
	}
}
