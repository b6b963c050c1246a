// Package gravity implements pairwise Newtonian gravitation as a
// [nbody.ForceModel].
package gravity

import (
	"fmt"
	"math"
	"runtime"

	"github.com/W-A-James/G-SIM/internal/nbody"
)

// Newtonian computes accelerations by direct pairwise summation, O(n^2) per
// evaluation. That is acceptable for the planetary/stellar body counts this
// simulator targets; no spatial tree is used.
//
// Softening: any pair separation below Epsilon is clamped to Epsilon before
// cubing. This is a numerical-stability policy to avoid singular forces when
// bodies coincide or pass arbitrarily close, not a physical law.
type Newtonian struct {
	G       float64
	Epsilon float64

	// MinParallel is the body count at which the force loop is split
	// across workers. The force phase reads body state only, so chunking
	// the outer loop is race-free. Zero disables parallel evaluation.
	MinParallel int
}

// NewNewtonian validates and constructs a Newtonian model. Both the
// gravitational constant and the softening length must be strictly positive.
func NewNewtonian(g, epsilon float64) (*Newtonian, error) {
	if g <= 0 {
		return nil, fmt.Errorf("%w: gravitational constant must be positive, got %g", nbody.ErrInvalidParameter, g)
	}
	if epsilon <= 0 {
		return nil, fmt.Errorf("%w: softening length must be positive, got %g", nbody.ErrInvalidParameter, epsilon)
	}
	return &Newtonian{G: g, Epsilon: epsilon}, nil
}

// Accelerations writes the net gravitational acceleration on each body into
// acc. acc must have len(bodies) elements; prior contents are overwritten.
func (m *Newtonian) Accelerations(bodies []nbody.Body, acc []nbody.Vec3) {
	for i := range acc {
		acc[i] = nbody.Vec3{}
	}
	n := len(bodies)
	if n < 2 {
		return
	}
	if m.MinParallel > 0 && n >= m.MinParallel {
		m.accelerationsParallel(bodies, acc)
		return
	}

	// Symmetric half-loop: each unordered pair is visited once and the
	// contribution applied to both bodies with opposite sign, so Newton's
	// third law holds exactly in floating point.
	for i := 0; i < n; i++ {
		pi := bodies[i].Position
		for j := i + 1; j < n; j++ {
			r := bodies[j].Position.Sub(pi)
			d := r.Norm()
			if d < m.Epsilon {
				d = m.Epsilon
			}
			inv3 := 1 / (d * d * d)

			acc[i] = acc[i].Add(r.Scale(m.G * bodies[j].Mass * inv3))
			acc[j] = acc[j].Sub(r.Scale(m.G * bodies[i].Mass * inv3))
		}
	}
}

// accelerationsParallel partitions the outer loop across workers. Each
// worker computes the full inner sum for its own rows, so no two goroutines
// write the same acc element.
func (m *Newtonian) accelerationsParallel(bodies []nbody.Body, acc []nbody.Vec3) {
	n := len(bodies)
	parallelFor(n, runtime.GOMAXPROCS(0), func(start, end int) {
		for i := start; i < end; i++ {
			pi := bodies[i].Position
			var a nbody.Vec3
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				r := bodies[j].Position.Sub(pi)
				d := r.Norm()
				if d < m.Epsilon {
					d = m.Epsilon
				}
				inv3 := 1 / (d * d * d)
				a = a.Add(r.Scale(m.G * bodies[j].Mass * inv3))
			}
			acc[i] = a
		}
	})
}

// Energy returns the total mechanical energy (kinetic + potential) of the
// body set. Potential terms use the same clamped separation as the force
// computation so that drift measurements are consistent with the dynamics.
func (m *Newtonian) Energy(bodies []nbody.Body) float64 {
	ke := 0.0
	pe := 0.0
	for i := range bodies {
		ke += 0.5 * bodies[i].Mass * bodies[i].Velocity.NormSq()
		for j := i + 1; j < len(bodies); j++ {
			d := bodies[i].Position.Dist(bodies[j].Position)
			if d < m.Epsilon {
				d = m.Epsilon
			}
			pe -= m.G * bodies[i].Mass * bodies[j].Mass / d
		}
	}
	return ke + pe
}

// PairForce returns the force exerted on a by b. Exposed for diagnostics and
// tests; the acceleration path does not go through it.
func (m *Newtonian) PairForce(a, b nbody.Body) nbody.Vec3 {
	r := b.Position.Sub(a.Position)
	d := r.Norm()
	if d < m.Epsilon {
		d = m.Epsilon
	}
	return r.Scale(m.G * a.Mass * b.Mass / (d * d * d))
}

// CircularOrbitSpeed returns the speed of a circular orbit of radius r
// around a central mass, sqrt(G*M/r). Used by presets and tests.
func (m *Newtonian) CircularOrbitSpeed(centralMass, r float64) float64 {
	return math.Sqrt(m.G * centralMass / r)
}
