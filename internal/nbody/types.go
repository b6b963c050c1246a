package nbody

// ForceModel computes, for each body, the net acceleration acting on it
// given the full body set at a single instant. Implementations write into
// acc, which the caller sizes to len(bodies). The body slice is read-only
// during evaluation.
type ForceModel interface {
	Accelerations(bodies []Body, acc []Vec3)
}

// Integrator advances every body in place by one timestep dt, using
// accelerations obtained from model. Implementations must update position
// and velocity together and must leave Fixed bodies untouched.
type Integrator interface {
	Step(model ForceModel, bodies []Body, dt float64)
	Name() string
}

// Hamiltonian is implemented by force models that can report the total
// mechanical energy (kinetic + potential) of a body set.
type Hamiltonian interface {
	Energy(bodies []Body) float64
}

// CenterOfMass returns the mass-weighted mean position of bodies.
// It returns the zero vector for an empty set.
func CenterOfMass(bodies []Body) Vec3 {
	var com Vec3
	total := 0.0
	for _, b := range bodies {
		com = com.Add(b.Position.Scale(b.Mass))
		total += b.Mass
	}
	if total == 0 {
		return Vec3{}
	}
	return com.Scale(1 / total)
}

// Momentum returns the total linear momentum of bodies.
func Momentum(bodies []Body) Vec3 {
	var p Vec3
	for _, b := range bodies {
		p = p.Add(b.Velocity.Scale(b.Mass))
	}
	return p
}

// AngularMomentum returns the total angular momentum of bodies about the
// origin.
func AngularMomentum(bodies []Body) Vec3 {
	var l Vec3
	for _, b := range bodies {
		l = l.Add(b.Position.Cross(b.Velocity.Scale(b.Mass)))
	}
	return l
}
