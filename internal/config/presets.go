package config

import (
	"sort"

	"github.com/W-A-James/G-SIM/internal/nbody"
)

// Presets are ready-to-run scenarios. The SI-unit systems use the measured
// constants from internal/nbody; figure-eight runs in normalized units
// (G=1, unit masses) where the choreography's initial conditions are known.
var Presets = map[string]*Config{
	"earth-sun": {
		Name: "earth-sun", G: nbody.G, Epsilon: 1e3,
		Dt: 3600, Steps: 8760, Integrator: "symplectic_euler",
		Bodies: []BodyConfig{
			{Name: "Sun", Mass: nbody.SunMass},
			{
				Name: "Earth", Mass: nbody.EarthMass,
				Position: [3]float64{nbody.AU, 0, 0},
				Velocity: [3]float64{0, nbody.EarthOrbitalVelocity, 0},
			},
		},
	},
	"earth-moon": {
		Name: "earth-moon", G: nbody.G, Epsilon: 1e3,
		Dt: 60, Steps: 39341, Integrator: "symplectic_euler",
		Bodies: []BodyConfig{
			{Name: "Earth", Mass: nbody.EarthMass, Fixed: true},
			{
				Name: "Moon", Mass: nbody.MoonMass,
				Position: [3]float64{nbody.MoonOrbitRadius, 0, 0},
				Velocity: [3]float64{0, nbody.MoonOrbitalVelocity, 0},
			},
		},
	},
	// A planet thrown into a binary pair of solar masses; chaotic and fun
	// to watch in the live view.
	"binary-suns": {
		Name: "binary-suns", G: nbody.G, Epsilon: 1e6,
		Dt: 1000, Steps: 63072, Integrator: "velocity_verlet",
		Bodies: []BodyConfig{
			{
				Name: "Earth", Mass: nbody.EarthMass,
				Position: [3]float64{-2 * nbody.AU, nbody.AU, 0},
				Velocity: [3]float64{1.2 * nbody.EarthOrbitalVelocity, 0, 0},
			},
			{
				Name: "Sun", Mass: nbody.SunMass,
				Position: [3]float64{-nbody.AU, 0, 0},
				Velocity: [3]float64{0, 0.75 * 21115.293390650815, 0},
			},
			{
				Name: "Sun2", Mass: nbody.SunMass,
				Position: [3]float64{nbody.AU, 0, 0},
				Velocity: [3]float64{0, -0.75 * 21115.293390650815, 0},
			},
		},
	},
	// Chenciner-Montgomery figure-eight choreography, period ~6.3259.
	"figure-eight": {
		Name: "figure-eight", G: 1, Epsilon: 1e-6,
		Dt: 0.001, Steps: 6326, Integrator: "velocity_verlet",
		Bodies: []BodyConfig{
			{
				Name: "a", Mass: 1,
				Position: [3]float64{0.97000436, -0.24308753, 0},
				Velocity: [3]float64{0.46620369, 0.43236573, 0},
			},
			{
				Name: "b", Mass: 1,
				Position: [3]float64{-0.97000436, 0.24308753, 0},
				Velocity: [3]float64{0.46620369, 0.43236573, 0},
			},
			{
				Name: "c", Mass: 1,
				Position: [3]float64{0, 0, 0},
				Velocity: [3]float64{-0.93240737, -0.86473146, 0},
			},
		},
	},
}

// GetPreset returns the named preset, or nil when it does not exist.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
