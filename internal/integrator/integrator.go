// Package integrator provides interchangeable time-stepping schemes for the
// simulation driver. The choice of scheme is the highest-leverage numerical
// decision in the system: symplectic schemes bound long-term energy drift,
// which is what multi-orbit stability depends on.
package integrator

import (
	"fmt"

	"github.com/W-A-James/G-SIM/internal/nbody"
)

// New returns the integrator registered under name. Recognized names:
// "symplectic_euler" (default), "velocity_verlet", "explicit_euler".
func New(name string) (nbody.Integrator, error) {
	switch name {
	case "", "symplectic_euler":
		return NewSymplecticEuler(), nil
	case "velocity_verlet":
		return NewVelocityVerlet(), nil
	case "explicit_euler":
		return NewExplicitEuler(), nil
	default:
		return nil, fmt.Errorf("%w: unknown integrator %q", nbody.ErrInvalidParameter, name)
	}
}

// Names lists the recognized integrator names in preference order.
func Names() []string {
	return []string{"symplectic_euler", "velocity_verlet", "explicit_euler"}
}
