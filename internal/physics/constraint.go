package physics

// Constraint is a spring between a fixed world point and a body.
// A constraint with no body attached is inert.
type Constraint struct {
	Label     string
	PointA    Vec
	BodyB     *Body
	Stiffness float64
	Visible   bool
}

// NewSpring creates a visible spring pulling body towards anchor.
func NewSpring(anchor Vec, body *Body, stiffness float64) *Constraint {
	return &Constraint{
		PointA:    anchor,
		BodyB:     body,
		Stiffness: stiffness,
		Visible:   true,
	}
}

// Attached reports whether a body hangs on the constraint.
func (c *Constraint) Attached() bool {
	return c.BodyB != nil
}

// Attach hooks body onto the constraint and shows it.
func (c *Constraint) Attach(body *Body) {
	c.BodyB = body
	c.Visible = true
}

// Detach releases the body and hides the constraint.
func (c *Constraint) Detach() {
	c.BodyB = nil
	c.Visible = false
}

// Stretch returns how far the attached body sits from the anchor.
func (c *Constraint) Stretch() float64 {
	if c.BodyB == nil {
		return 0
	}
	return c.BodyB.Position.Dist(c.PointA)
}

// force returns the spring force on BodyB. The force scales with mass so the
// resulting acceleration only depends on stiffness and stretch.
func (c *Constraint) force() Vec {
	if c.BodyB == nil || c.BodyB.Static {
		return Vec{}
	}
	return c.PointA.Sub(c.BodyB.Position).Scale(c.Stiffness * c.BodyB.Mass)
}
