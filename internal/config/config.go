// Package config loads and saves simulation scenarios: the gravitational
// constant, softening length, timestep, and the initial body set.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/W-A-James/G-SIM/internal/nbody"
)

const (
	DefaultDt         = 0.01
	DefaultEpsilon    = 1e-6
	DefaultSteps      = 10000
	DefaultIntegrator = "symplectic_euler"
)

// Config is a complete scenario description. Recognized options follow the
// core's construction interface: g, epsilon, dt, plus the initial bodies.
type Config struct {
	Name       string       `yaml:"name"`
	G          float64      `yaml:"g"`
	Epsilon    float64      `yaml:"epsilon"`
	Dt         float64      `yaml:"dt"`
	Steps      int          `yaml:"steps"`
	Integrator string       `yaml:"integrator"`
	Bodies     []BodyConfig `yaml:"bodies"`
}

// BodyConfig is the on-disk form of one body: (mass, position, velocity)
// plus a label and the fixed flag.
type BodyConfig struct {
	Name     string     `yaml:"name"`
	Mass     float64    `yaml:"mass"`
	Position [3]float64 `yaml:"position"`
	Velocity [3]float64 `yaml:"velocity"`
	Fixed    bool       `yaml:"fixed,omitempty"`
}

// Default returns a scenario skeleton in normalized units (G=1) with no
// bodies. Callers overlay a file or preset on top of it.
func Default() *Config {
	return &Config{
		G:          1.0,
		Epsilon:    DefaultEpsilon,
		Dt:         DefaultDt,
		Steps:      DefaultSteps,
		Integrator: DefaultIntegrator,
	}
}

// Load reads a YAML scenario from path, overlaying it on Default so omitted
// fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildBodies converts the declared bodies into validated nbody.Body
// values, assigning IDs in declaration order.
func (c *Config) BuildBodies() ([]nbody.Body, error) {
	bodies := make([]nbody.Body, 0, len(c.Bodies))
	for i, bc := range c.Bodies {
		name := bc.Name
		if name == "" {
			name = fmt.Sprintf("body-%d", i)
		}
		b, err := nbody.NewBody(i, name, bc.Mass,
			nbody.Vec3{X: bc.Position[0], Y: bc.Position[1], Z: bc.Position[2]},
			nbody.Vec3{X: bc.Velocity[0], Y: bc.Velocity[1], Z: bc.Velocity[2]})
		if err != nil {
			return nil, err
		}
		b.Fixed = bc.Fixed
		bodies = append(bodies, b)
	}
	return bodies, nil
}
