package nbody

import "fmt"

// Body is a point mass. ID is assigned at creation and stable for the
// lifetime of the simulation; Mass never changes after construction.
// Position and Velocity are mutated only by an Integrator, both together
// within a single step.
//
// A Fixed body exerts gravity on others but is never moved by integration.
type Body struct {
	ID       int
	Name     string
	Mass     float64
	Position Vec3
	Velocity Vec3
	Fixed    bool
}

// NewBody validates and constructs a Body. Mass must be strictly positive;
// there is no massless-particle support.
func NewBody(id int, name string, mass float64, pos, vel Vec3) (Body, error) {
	if mass <= 0 {
		return Body{}, fmt.Errorf("%w: body %q mass must be positive, got %g", ErrInvalidParameter, name, mass)
	}
	return Body{
		ID:       id,
		Name:     name,
		Mass:     mass,
		Position: pos,
		Velocity: vel,
	}, nil
}

// IsFinite reports whether position and velocity are finite in every
// component.
func (b Body) IsFinite() bool {
	return b.Position.IsFinite() && b.Velocity.IsFinite()
}

// CloneBodies deep-copies a body slice. Body contains no reference types,
// so a slice copy is a full copy.
func CloneBodies(bodies []Body) []Body {
	c := make([]Body, len(bodies))
	copy(c, bodies)
	return c
}
