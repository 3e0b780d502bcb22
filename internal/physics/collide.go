package physics

import "math"

// penetration describes how a moving circle overlaps another body.
// Normal points from the other body towards the circle.
type penetration struct {
	normal Vec
	depth  float64
}

// overlap tests a circle against any body.
func overlap(c, o *Body) (penetration, bool) {
	if o.Shape == ShapeCircle {
		return circleCircle(c, o)
	}
	return circleRect(c, o)
}

func circleCircle(c, o *Body) (penetration, bool) {
	d := c.Position.Sub(o.Position)
	dist := d.Len()
	rsum := c.Radius + o.Radius
	if dist >= rsum {
		return penetration{}, false
	}
	if dist == 0 {
		return penetration{normal: Vec{0, -1}, depth: rsum}, true
	}
	return penetration{normal: d.Scale(1 / dist), depth: rsum - dist}, true
}

func circleRect(c, o *Body) (penetration, bool) {
	box := o.Bounds()
	closest := Vec{
		X: math.Max(box.Min.X, math.Min(c.Position.X, box.Max.X)),
		Y: math.Max(box.Min.Y, math.Min(c.Position.Y, box.Max.Y)),
	}
	d := c.Position.Sub(closest)
	dist := d.Len()
	if dist > 0 {
		if dist >= c.Radius {
			return penetration{}, false
		}
		return penetration{normal: d.Scale(1 / dist), depth: c.Radius - dist}, true
	}

	// Center is inside the rectangle: push out along the shallowest side.
	left := c.Position.X - box.Min.X
	right := box.Max.X - c.Position.X
	top := c.Position.Y - box.Min.Y
	bottom := box.Max.Y - c.Position.Y

	p := penetration{normal: Vec{-1, 0}, depth: left + c.Radius}
	if right < left {
		p = penetration{normal: Vec{1, 0}, depth: right + c.Radius}
	}
	if top < math.Min(left, right) {
		p = penetration{normal: Vec{0, -1}, depth: top + c.Radius}
	}
	if bottom < math.Min(math.Min(left, right), top) {
		p = penetration{normal: Vec{0, 1}, depth: bottom + c.Radius}
	}
	return p, true
}

// resolve pushes the circle out of the other body and reflects its velocity.
func resolve(c, o *Body, p penetration) {
	c.Position = c.Position.Add(p.normal.Scale(p.depth))

	vn := c.Velocity.Dot(p.normal)
	if vn >= 0 {
		return
	}
	e := math.Max(c.Restitution, o.Restitution)
	c.Velocity = c.Velocity.Sub(p.normal.Scale((1 + e) * vn))
}
