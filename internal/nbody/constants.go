package nbody

// Physical constants in SI units. G is the CODATA gravitational constant;
// the remaining values describe the Sun-Earth-Moon system and are used by
// the built-in presets.
const (
	G = 6.674e-11 // m^3 kg^-1 s^-2

	SunMass   = 1.993e30 // kg
	EarthMass = 6e24     // kg
	MoonMass  = 7.342e22 // kg

	AU              = 1.496e11 // m, mean Earth-Sun distance
	MoonOrbitRadius = 3.844e8  // m, mean Earth-Moon distance

	EarthOrbitalVelocity = 29806.079463282156 // m/s
	MoonOrbitalVelocity  = 1022.0             // m/s

	EarthYear = 31536e3 // s
)
