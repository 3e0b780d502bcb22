// Package physics is a small rigid-body world for arcade games.
//
// It supports dynamic circles moving among static circles and rectangles,
// sensor bodies that report contacts without resolving them, spring
// constraints, a pointer drag constraint, and collision start/end
// notifications. Velocities are expressed in world units per tick.
package physics

import "math"

// Vec is a 2D vector in world units. Y grows downwards.
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec) Scale(s float64) Vec {
	return Vec{v.X * s, v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and o.
func (v Vec) Dist(o Vec) float64 {
	return v.Sub(o).Len()
}

// ClampLen returns v shortened to at most max.
func (v Vec) ClampLen(max float64) Vec {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// Bounds is an axis-aligned box in world units.
type Bounds struct {
	Min, Max Vec
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the vertical extent.
func (b Bounds) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Center returns the middle of the box.
func (b Bounds) Center() Vec {
	return Vec{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

// Contains reports whether p lies inside the box (edges included).
func (b Bounds) Contains(p Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}
