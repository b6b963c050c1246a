// Package sim provides the simulation driver: it owns the body set, runs
// the force-model/integrator pair over discrete steps, and exposes
// point-in-time snapshots.
package sim

import (
	"context"
	"fmt"

	"github.com/W-A-James/G-SIM/internal/nbody"
)

// Metric accumulates a scalar diagnostic over the course of a run.
type Metric interface {
	Name() string
	Observe(bodies []nbody.Body, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed step with the post-step body
// states. The slice is owned by the simulation: observers must not mutate
// it or retain it past the call.
type Observer interface {
	OnStep(bodies []nbody.Body, t float64)
}

// Config holds the stepping policy for a run.
type Config struct {
	// Dt is the fixed timestep, required and strictly positive.
	Dt float64
	// ValidateState enables the post-step finite check. A step producing a
	// NaN or Inf component fails with nbody.ErrInstability instead of
	// propagating garbage into later steps.
	ValidateState bool
}

// DefaultConfig returns the stepping policy used when the caller has no
// opinion: dt of 0.01 in normalized units, with state validation on.
func DefaultConfig() Config {
	return Config{Dt: 0.01, ValidateState: true}
}

// Simulation advances a body set through time. It is not safe for
// concurrent use; callers must serialize access externally.
type Simulation struct {
	bodies  []nbody.Body
	scratch []nbody.Body
	model   nbody.ForceModel
	integ   nbody.Integrator
	cfg     Config

	time  float64
	steps int

	metrics   []Metric
	observers []Observer
}

// New validates the configuration and constructs a Simulation over a deep
// copy of bodies. Every body must carry a positive mass and a unique ID.
func New(bodies []nbody.Body, model nbody.ForceModel, integ nbody.Integrator, cfg Config) (*Simulation, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("%w: dt must be positive, got %g", nbody.ErrInvalidParameter, cfg.Dt)
	}
	if model == nil || integ == nil {
		return nil, fmt.Errorf("%w: force model and integrator are required", nbody.ErrInvalidParameter)
	}
	seen := make(map[int]bool, len(bodies))
	for _, b := range bodies {
		if b.Mass <= 0 {
			return nil, fmt.Errorf("%w: body %q mass must be positive, got %g", nbody.ErrInvalidParameter, b.Name, b.Mass)
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("%w: duplicate body ID %d", nbody.ErrInvalidParameter, b.ID)
		}
		seen[b.ID] = true
	}
	return &Simulation{
		bodies:  nbody.CloneBodies(bodies),
		scratch: make([]nbody.Body, len(bodies)),
		model:   model,
		integ:   integ,
		cfg:     cfg,
	}, nil
}

// AddMetric registers m and immediately observes the initial state, so
// baseline-relative metrics (energy drift, center-of-mass drift) anchor at
// t=0 rather than at the first step.
func (s *Simulation) AddMetric(m Metric) {
	m.Observe(s.bodies, s.time)
	s.metrics = append(s.metrics, m)
}

func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Step advances the simulation by exactly one dt. The new states are
// computed in a scratch buffer and swapped in only after the whole step
// succeeds, so no caller ever observes a mix of old and new positions.
func (s *Simulation) Step() error {
	copy(s.scratch, s.bodies)
	s.integ.Step(s.model, s.scratch, s.cfg.Dt)

	if s.cfg.ValidateState {
		for i := range s.scratch {
			if !s.scratch[i].IsFinite() {
				return &nbody.StepError{
					Step:    s.steps,
					Time:    s.time,
					Wrapped: fmt.Errorf("%w: body %q is non-finite", nbody.ErrInstability, s.scratch[i].Name),
				}
			}
		}
	}

	s.bodies, s.scratch = s.scratch, s.bodies
	s.time += s.cfg.Dt
	s.steps++

	for _, m := range s.metrics {
		m.Observe(s.bodies, s.time)
	}
	for _, o := range s.observers {
		o.OnStep(s.bodies, s.time)
	}
	return nil
}

// Run executes n steps, stopping at the first failed step and surfacing its
// error. Cancellation is checked between steps, never mid-step, so a
// canceled run still leaves the simulation in a consistent state.
func (s *Simulation) Run(ctx context.Context, n int) error {
	if n < 0 {
		return fmt.Errorf("%w: step count must be non-negative, got %d", nbody.ErrInvalidParameter, n)
	}
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot returns a deep copy of the body states in creation order. The
// copy is detached: mutating it has no effect on the simulation, and it
// never reflects an in-progress step.
func (s *Simulation) Snapshot() []nbody.Body {
	return nbody.CloneBodies(s.bodies)
}

// Time returns the current simulated time.
func (s *Simulation) Time() float64 { return s.time }

// StepCount returns the number of completed steps.
func (s *Simulation) StepCount() int { return s.steps }

// Dt returns the fixed timestep.
func (s *Simulation) Dt() float64 { return s.cfg.Dt }

// Energy returns the total mechanical energy when the force model can
// report it, with ok=false otherwise.
func (s *Simulation) Energy() (float64, bool) {
	if h, ok := s.model.(nbody.Hamiltonian); ok {
		return h.Energy(s.bodies), true
	}
	return 0, false
}

// MetricValues returns the current value of every registered metric.
func (s *Simulation) MetricValues() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
