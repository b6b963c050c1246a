package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/W-A-James/G-SIM/internal/config"
	"github.com/W-A-James/G-SIM/internal/gravity"
	"github.com/W-A-James/G-SIM/internal/integrator"
	"github.com/W-A-James/G-SIM/internal/metrics"
	"github.com/W-A-James/G-SIM/internal/nbody"
	"github.com/W-A-James/G-SIM/internal/sim"
)

// binaryPair returns two unit masses on a circular orbit about the origin:
// separation 2, G=1, orbital speed 0.5, period 4*pi.
func binaryPair() []nbody.Body {
	return []nbody.Body{
		{ID: 0, Name: "a", Mass: 1, Position: nbody.Vec3{X: -1}, Velocity: nbody.Vec3{Y: -0.5}},
		{ID: 1, Name: "b", Mass: 1, Position: nbody.Vec3{X: 1}, Velocity: nbody.Vec3{Y: 0.5}},
	}
}

func newtonian() *gravity.Newtonian {
	model, err := gravity.NewNewtonian(1.0, 1e-9)
	Expect(err).NotTo(HaveOccurred())
	return model
}

// nanField poisons every acceleration, forcing the instability path.
type nanField struct{}

func (nanField) Accelerations(bodies []nbody.Body, acc []nbody.Vec3) {
	for i := range acc {
		acc[i] = nbody.Vec3{X: math.NaN()}
	}
}

var _ = Describe("Simulation", func() {
	var cfg sim.Config

	BeforeEach(func() {
		cfg = sim.Config{Dt: 0.01, ValidateState: true}
	})

	Describe("construction", func() {
		It("rejects a non-positive dt", func() {
			for _, dt := range []float64{0, -0.5} {
				_, err := sim.New(binaryPair(), newtonian(), integrator.NewSymplecticEuler(), sim.Config{Dt: dt})
				Expect(err).To(MatchError(nbody.ErrInvalidParameter))
			}
		})

		It("rejects a missing force model or integrator", func() {
			_, err := sim.New(binaryPair(), nil, integrator.NewSymplecticEuler(), cfg)
			Expect(err).To(MatchError(nbody.ErrInvalidParameter))

			_, err = sim.New(binaryPair(), newtonian(), nil, cfg)
			Expect(err).To(MatchError(nbody.ErrInvalidParameter))
		})

		It("rejects non-positive masses", func() {
			bodies := binaryPair()
			bodies[1].Mass = 0
			_, err := sim.New(bodies, newtonian(), integrator.NewSymplecticEuler(), cfg)
			Expect(err).To(MatchError(nbody.ErrInvalidParameter))

			bodies[1].Mass = -3
			_, err = sim.New(bodies, newtonian(), integrator.NewSymplecticEuler(), cfg)
			Expect(err).To(MatchError(nbody.ErrInvalidParameter))
		})

		It("rejects duplicate body IDs", func() {
			bodies := binaryPair()
			bodies[1].ID = bodies[0].ID
			_, err := sim.New(bodies, newtonian(), integrator.NewSymplecticEuler(), cfg)
			Expect(err).To(MatchError(nbody.ErrInvalidParameter))
		})

		It("detaches from the caller's body slice", func() {
			bodies := binaryPair()
			s, err := sim.New(bodies, newtonian(), integrator.NewSymplecticEuler(), cfg)
			Expect(err).NotTo(HaveOccurred())

			bodies[0].Position = nbody.Vec3{X: 999}
			Expect(s.Snapshot()[0].Position.X).To(Equal(-1.0))
		})
	})

	Describe("stepping", func() {
		It("advances time and step count by exactly one dt per step", func() {
			s, err := sim.New(binaryPair(), newtonian(), integrator.NewSymplecticEuler(), cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Step()).To(Succeed())
			Expect(s.Step()).To(Succeed())

			Expect(s.StepCount()).To(Equal(2))
			Expect(s.Time()).To(BeNumerically("~", 0.02, 1e-15))
		})

		It("never raises on finite well-separated bodies", func() {
			s, err := sim.New(binaryPair(), newtonian(), integrator.NewSymplecticEuler(), cfg)
			Expect(err).NotTo(HaveOccurred())
			for i := 0; i < 1000; i++ {
				Expect(s.Step()).To(Succeed())
			}
		})

		It("returns snapshots that are detached copies", func() {
			s, err := sim.New(binaryPair(), newtonian(), integrator.NewSymplecticEuler(), cfg)
			Expect(err).NotTo(HaveOccurred())

			snap := s.Snapshot()
			snap[0].Position = nbody.Vec3{X: 42}
			Expect(s.Snapshot()[0].Position.X).To(Equal(-1.0))
		})

		It("surfaces instability and leaves the previous state intact", func() {
			s, err := sim.New(binaryPair(), nanField{}, integrator.NewSymplecticEuler(), cfg)
			Expect(err).NotTo(HaveOccurred())
			before := s.Snapshot()

			stepErr := s.Step()
			Expect(stepErr).To(MatchError(nbody.ErrInstability))

			var se *nbody.StepError
			Expect(errors.As(stepErr, &se)).To(BeTrue())
			Expect(se.Step).To(Equal(0))

			Expect(s.StepCount()).To(Equal(0))
			Expect(s.Time()).To(Equal(0.0))
			Expect(s.Snapshot()).To(Equal(before))
		})
	})

	Describe("running", func() {
		It("rejects a negative step count", func() {
			s, _ := sim.New(binaryPair(), newtonian(), integrator.NewSymplecticEuler(), cfg)
			Expect(s.Run(context.Background(), -1)).To(MatchError(nbody.ErrInvalidParameter))
		})

		It("stops between steps when the context is canceled", func() {
			s, _ := sim.New(binaryPair(), newtonian(), integrator.NewSymplecticEuler(), cfg)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			Expect(s.Run(ctx, 100)).To(MatchError(context.Canceled))
			Expect(s.StepCount()).To(Equal(0))
		})

		It("fails fast on the first bad step", func() {
			s, _ := sim.New(binaryPair(), nanField{}, integrator.NewSymplecticEuler(), cfg)
			Expect(s.Run(context.Background(), 100)).To(MatchError(nbody.ErrInstability))
			Expect(s.StepCount()).To(Equal(0))
		})

		It("is deterministic: Run(n) matches n individual steps", func() {
			a, _ := sim.New(binaryPair(), newtonian(), integrator.NewSymplecticEuler(), cfg)
			b, _ := sim.New(binaryPair(), newtonian(), integrator.NewSymplecticEuler(), cfg)

			Expect(a.Run(context.Background(), 500)).To(Succeed())
			for i := 0; i < 500; i++ {
				Expect(b.Step()).To(Succeed())
			}

			Expect(a.Snapshot()).To(Equal(b.Snapshot()))
			Expect(a.Time()).To(Equal(b.Time()))
		})
	})

	Describe("conservation laws", func() {
		It("returns a circular binary to its start after one period", func() {
			dt := 0.001
			period := 4 * math.Pi
			steps := int(math.Round(period / dt))

			s, err := sim.New(binaryPair(), newtonian(), integrator.NewVelocityVerlet(), sim.Config{Dt: dt, ValidateState: true})
			Expect(err).NotTo(HaveOccurred())
			start := s.Snapshot()

			Expect(s.Run(context.Background(), steps)).To(Succeed())

			final := s.Snapshot()
			for i := range start {
				Expect(final[i].Position.Dist(start[i].Position)).To(BeNumerically("<", 0.01))
			}
		})

		It("bounds energy drift with the symplectic integrator", func() {
			model := newtonian()
			s, err := sim.New(binaryPair(), model, integrator.NewSymplecticEuler(), cfg)
			Expect(err).NotTo(HaveOccurred())

			drift := metrics.NewEnergyDrift(model)
			s.AddMetric(drift)

			// Roughly four full orbits.
			Expect(s.Run(context.Background(), 5000)).To(Succeed())
			Expect(drift.Value()).To(BeNumerically("<", 0.05))
		})

		It("drifts less with symplectic Euler than with explicit Euler", func() {
			run := func(integ nbody.Integrator) float64 {
				model := newtonian()
				s, err := sim.New(binaryPair(), model, integ, cfg)
				Expect(err).NotTo(HaveOccurred())
				drift := metrics.NewEnergyDrift(model)
				s.AddMetric(drift)
				Expect(s.Run(context.Background(), 5000)).To(Succeed())
				return drift.Value()
			}

			symplectic := run(integrator.NewSymplecticEuler())
			explicit := run(integrator.NewExplicitEuler())
			Expect(symplectic).To(BeNumerically("<", explicit))
		})

		It("keeps the center of mass of a symmetric pair pinned", func() {
			s, err := sim.New(binaryPair(), newtonian(), integrator.NewSymplecticEuler(), cfg)
			Expect(err).NotTo(HaveOccurred())

			com := metrics.NewCenterOfMassDrift()
			momentum := metrics.NewMomentumDrift()
			s.AddMetric(com)
			s.AddMetric(momentum)

			Expect(s.Run(context.Background(), 2000)).To(Succeed())
			Expect(com.Value()).To(BeNumerically("<", 1e-12))
			Expect(momentum.Value()).To(BeNumerically("<", 1e-12))
		})

		It("closes the figure-eight choreography after one period", func() {
			preset := config.GetPreset("figure-eight")
			Expect(preset).NotTo(BeNil())

			bodies, err := preset.BuildBodies()
			Expect(err).NotTo(HaveOccurred())
			model, err := gravity.NewNewtonian(preset.G, preset.Epsilon)
			Expect(err).NotTo(HaveOccurred())
			integ, err := integrator.New(preset.Integrator)
			Expect(err).NotTo(HaveOccurred())

			s, err := sim.New(bodies, model, integ, sim.Config{Dt: preset.Dt, ValidateState: true})
			Expect(err).NotTo(HaveOccurred())
			start := s.Snapshot()

			Expect(s.Run(context.Background(), preset.Steps)).To(Succeed())

			final := s.Snapshot()
			for i := range start {
				Expect(final[i].Position.Dist(start[i].Position)).To(BeNumerically("<", 0.05))
			}
		})
	})

	Describe("observers and metrics", func() {
		It("anchors metrics at the initial state", func() {
			model := newtonian()
			s, _ := sim.New(binaryPair(), model, integrator.NewSymplecticEuler(), cfg)
			drift := metrics.NewEnergyDrift(model)
			s.AddMetric(drift)

			// No steps taken: baseline only, zero drift.
			Expect(drift.Value()).To(BeZero())
			Expect(s.MetricValues()).To(HaveKey("energy_drift"))
		})

		It("records a trajectory including t=0", func() {
			s, _ := sim.New(binaryPair(), newtonian(), integrator.NewSymplecticEuler(), cfg)
			rec := sim.NewRecorder(s, 1)
			s.AddObserver(rec)

			Expect(s.Run(context.Background(), 10)).To(Succeed())
			Expect(rec.Len()).To(Equal(11))
			Expect(rec.Times[0]).To(Equal(0.0))
			Expect(rec.Frames[10][0].Position).To(Equal(s.Snapshot()[0].Position))
		})

		It("downsamples with a recording stride", func() {
			s, _ := sim.New(binaryPair(), newtonian(), integrator.NewSymplecticEuler(), cfg)
			rec := sim.NewRecorder(s, 5)
			s.AddObserver(rec)

			Expect(s.Run(context.Background(), 20)).To(Succeed())
			// t=0 plus steps 5, 10, 15, 20.
			Expect(rec.Len()).To(Equal(5))
		})
	})
})
