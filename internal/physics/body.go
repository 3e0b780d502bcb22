package physics

import "math"

// Shape is the collision geometry of a body.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeRect
)

// BodyID identifies a body inside a world. Zero means "not added yet".
type BodyID uint64

// Options configure a new body.
type Options struct {
	Label       string
	Static      bool    // Never moves; infinite mass
	Sensor      bool    // Reports contacts but is never pushed or pushes
	Restitution float64 // Bounciness, 0 = dead, 1 = perfectly elastic
	Density     float64 // Mass per square unit (default 0.001)
	AirFriction float64 // Fraction of velocity lost per tick (default 0.01)
}

// Body is a rigid body. Position is the body's center.
type Body struct {
	ID    BodyID
	Label string
	Shape Shape

	Position Vec
	Velocity Vec
	force    Vec

	Radius        float64 // Circles only
	Width, Height float64 // Rectangles only

	Static      bool
	Sensor      bool
	Restitution float64
	Density     float64
	Mass        float64
	AirFriction float64

	// Generation is the world generation the body was added in.
	Generation uint64
}

const (
	defaultDensity     = 0.001
	defaultAirFriction = 0.01
)

// NewCircle creates a circle centered at (x, y).
func NewCircle(x, y, radius float64, opts Options) *Body {
	b := newBody(ShapeCircle, x, y, opts)
	b.Radius = radius
	b.Mass = b.Density * math.Pi * radius * radius
	return b
}

// NewRectangle creates an axis-aligned rectangle centered at (x, y).
func NewRectangle(x, y, width, height float64, opts Options) *Body {
	b := newBody(ShapeRect, x, y, opts)
	b.Width = width
	b.Height = height
	b.Mass = b.Density * width * height
	return b
}

func newBody(shape Shape, x, y float64, opts Options) *Body {
	density := opts.Density
	if density <= 0 {
		density = defaultDensity
	}
	air := opts.AirFriction
	if air <= 0 {
		air = defaultAirFriction
	}
	return &Body{
		Label:       opts.Label,
		Shape:       shape,
		Position:    Vec{x, y},
		Static:      opts.Static,
		Sensor:      opts.Sensor,
		Restitution: opts.Restitution,
		Density:     density,
		AirFriction: air,
	}
}

// Dynamic reports whether the body is moved by the simulation.
func (b *Body) Dynamic() bool {
	return !b.Static
}

// Bounds returns the axis-aligned bounding box of the body.
func (b *Body) Bounds() Bounds {
	switch b.Shape {
	case ShapeCircle:
		r := Vec{b.Radius, b.Radius}
		return Bounds{Min: b.Position.Sub(r), Max: b.Position.Add(r)}
	default:
		half := Vec{b.Width / 2, b.Height / 2}
		return Bounds{Min: b.Position.Sub(half), Max: b.Position.Add(half)}
	}
}

// ContainsPoint reports whether p is inside the body's shape.
func (b *Body) ContainsPoint(p Vec) bool {
	if b.Shape == ShapeCircle {
		return b.Position.Dist(p) <= b.Radius
	}
	return b.Bounds().Contains(p)
}
