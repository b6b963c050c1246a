// Package nbody provides the core primitives for Newtonian gravitational
// simulation:
//
//   - [Vec3]: three-component vector used for position, velocity, acceleration
//   - [Body]: a point mass with identity, position, and velocity
//   - [ForceModel]: computes per-body accelerations at a single instant
//   - [Integrator]: advances body states by one timestep
//
// Force models implementing [Hamiltonian] expose total mechanical energy,
// which the simulation driver uses to monitor long-run drift:
//
//	model := gravity.NewNewtonian(1.0, 1e-6)
//	if h, ok := interface{}(model).(nbody.Hamiltonian); ok {
//	    energy := h.Energy(bodies)
//	}
package nbody
