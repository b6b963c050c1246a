// Package metrics provides conservation-law diagnostics for simulation
// runs. Each metric is baseline-relative: the first observation anchors
// the reference value and later observations track the worst deviation.
package metrics

import (
	"math"

	"github.com/W-A-James/G-SIM/internal/nbody"
)

// EnergyDrift tracks the maximum relative deviation of total mechanical
// energy from its first observed value. For a symplectic integrator with a
// sane dt this stays small and bounded over many orbits.
type EnergyDrift struct {
	model    nbody.Hamiltonian
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(model nbody.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{model: model}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(bodies []nbody.Body, t float64) {
	energy := e.model.Energy(bodies)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// CenterOfMassDrift tracks the maximum distance of the system's center of
// mass from its first observed location. An isolated system's center of
// mass moves uniformly; with zero net momentum it should not move at all.
type CenterOfMassDrift struct {
	initial  nbody.Vec3
	maxDrift float64
	samples  int
}

func NewCenterOfMassDrift() *CenterOfMassDrift {
	return &CenterOfMassDrift{}
}

func (c *CenterOfMassDrift) Name() string { return "com_drift" }

func (c *CenterOfMassDrift) Observe(bodies []nbody.Body, t float64) {
	com := nbody.CenterOfMass(bodies)
	if c.samples == 0 {
		c.initial = com
	}
	c.samples++
	c.maxDrift = math.Max(c.maxDrift, com.Dist(c.initial))
}

func (c *CenterOfMassDrift) Value() float64 { return c.maxDrift }

func (c *CenterOfMassDrift) Reset() {
	c.initial = nbody.Vec3{}
	c.maxDrift = 0
	c.samples = 0
}

// MomentumDrift tracks the maximum deviation of total linear momentum from
// its first observed value. Newton's third law makes pairwise gravity
// conserve momentum exactly up to floating-point error.
type MomentumDrift struct {
	initial  nbody.Vec3
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{}
}

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(bodies []nbody.Body, t float64) {
	p := nbody.Momentum(bodies)
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, p.Dist(m.initial))
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = nbody.Vec3{}
	m.maxDrift = 0
	m.samples = 0
}
