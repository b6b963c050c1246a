package integrator

import "github.com/W-A-James/G-SIM/internal/nbody"

// SymplecticEuler is the semi-implicit Euler scheme:
//
//	v' = v + a*dt
//	x' = x + v'*dt
//
// First order, but symplectic: energy error stays bounded over many orbits
// instead of growing secularly as it does with the explicit variant.
type SymplecticEuler struct {
	acc []nbody.Vec3
}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

func (s *SymplecticEuler) Name() string { return "symplectic_euler" }

func (s *SymplecticEuler) Step(model nbody.ForceModel, bodies []nbody.Body, dt float64) {
	if len(s.acc) != len(bodies) {
		s.acc = make([]nbody.Vec3, len(bodies))
	}
	model.Accelerations(bodies, s.acc)

	for i := range bodies {
		if bodies[i].Fixed {
			continue
		}
		bodies[i].Velocity = bodies[i].Velocity.Add(s.acc[i].Scale(dt))
		bodies[i].Position = bodies[i].Position.Add(bodies[i].Velocity.Scale(dt))
	}
}

// ExplicitEuler is the naive forward Euler scheme. It is kept for drift
// comparisons and benchmarks; its energy error grows without bound on
// orbital problems, so it is never the right production choice here.
type ExplicitEuler struct {
	acc []nbody.Vec3
}

func NewExplicitEuler() *ExplicitEuler {
	return &ExplicitEuler{}
}

func (e *ExplicitEuler) Name() string { return "explicit_euler" }

func (e *ExplicitEuler) Step(model nbody.ForceModel, bodies []nbody.Body, dt float64) {
	if len(e.acc) != len(bodies) {
		e.acc = make([]nbody.Vec3, len(bodies))
	}
	model.Accelerations(bodies, e.acc)

	for i := range bodies {
		if bodies[i].Fixed {
			continue
		}
		bodies[i].Position = bodies[i].Position.Add(bodies[i].Velocity.Scale(dt))
		bodies[i].Velocity = bodies[i].Velocity.Add(e.acc[i].Scale(dt))
	}
}
