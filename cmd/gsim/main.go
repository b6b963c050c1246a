package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/W-A-James/G-SIM/internal/config"
	"github.com/W-A-James/G-SIM/internal/gravity"
	"github.com/W-A-James/G-SIM/internal/integrator"
	"github.com/W-A-James/G-SIM/internal/metrics"
	"github.com/W-A-James/G-SIM/internal/nbody"
	"github.com/W-A-James/G-SIM/internal/sim"
	"github.com/W-A-James/G-SIM/internal/store"
	"github.com/W-A-James/G-SIM/internal/tui"
	"github.com/W-A-James/G-SIM/internal/viz"
)

var (
	dataDir      string
	configFile   string
	dtFlag       float64
	stepsFlag    int
	integFlag    string
	stride       int
	exportPath   string
	showPlot     bool
	minParallel  int
	stepsPerTick int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gsim",
		Short: "Newtonian n-body gravity simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gsim", "run data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario and record the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	runCmd.Flags().Float64Var(&dtFlag, "dt", 0, "override timestep")
	runCmd.Flags().IntVar(&stepsFlag, "steps", 0, "override step count")
	runCmd.Flags().StringVar(&integFlag, "integrator", "", "override integrator ("+strings.Join(integrator.Names(), ", ")+")")
	runCmd.Flags().IntVar(&stride, "stride", 1, "record every n-th step")
	runCmd.Flags().StringVar(&exportPath, "export", "", "export trajectory as json (- for stdout)")
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "print an orbit plot after the run")
	runCmd.Flags().IntVar(&minParallel, "parallel", 0, "parallelize force evaluation at this body count (0 = serial)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%-14s %d bodies, dt=%g, %d steps, %s\n",
					name, len(p.Bodies), p.Dt, p.Steps, p.Integrator)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run's orbits",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a recorded run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportPath, "out", "-", "output path (- for stdout)")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "watch a scenario evolve in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	liveCmd.Flags().StringVar(&integFlag, "integrator", "", "override integrator")
	liveCmd.Flags().IntVar(&stepsPerTick, "speed", 20, "integration steps per frame")

	rootCmd.AddCommand(runCmd, presetsCmd, listCmd, plotCmd, exportCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScenario resolves the scenario from --config or a preset name, then
// applies command-line overrides.
func loadScenario(args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, err
		}
	case len(args) == 1:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (try: %s)", args[0], strings.Join(config.ListPresets(), ", "))
		}
	default:
		return nil, fmt.Errorf("a preset name or --config file is required")
	}

	if dtFlag > 0 {
		cfg.Dt = dtFlag
	}
	if stepsFlag > 0 {
		cfg.Steps = stepsFlag
	}
	if integFlag != "" {
		cfg.Integrator = integFlag
	}
	return cfg, nil
}

// buildSimulation assembles the core from a scenario: bodies, force model,
// integrator, driver.
func buildSimulation(cfg *config.Config) (*sim.Simulation, *gravity.Newtonian, error) {
	bodies, err := cfg.BuildBodies()
	if err != nil {
		return nil, nil, err
	}
	model, err := gravity.NewNewtonian(cfg.G, cfg.Epsilon)
	if err != nil {
		return nil, nil, err
	}
	model.MinParallel = minParallel
	integ, err := integrator.New(cfg.Integrator)
	if err != nil {
		return nil, nil, err
	}
	s, err := sim.New(bodies, model, integ, sim.Config{Dt: cfg.Dt, ValidateState: true})
	if err != nil {
		return nil, nil, err
	}
	return s, model, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args)
	if err != nil {
		return err
	}
	s, model, err := buildSimulation(cfg)
	if err != nil {
		return err
	}

	s.AddMetric(metrics.NewEnergyDrift(model))
	s.AddMetric(metrics.NewCenterOfMassDrift())
	s.AddMetric(metrics.NewMomentumDrift())
	rec := sim.NewRecorder(s, stride)
	s.AddObserver(rec)
	hist := &driftHistory{model: model}
	if e, ok := s.Energy(); ok {
		hist.initial = e
	}
	s.AddObserver(hist)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := s.Run(ctx, cfg.Steps); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintf(os.Stderr, "interrupted after %d steps\n", s.StepCount())
		} else {
			return err
		}
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := runMetadata(cfg, s)
	runID, err := st.Save(meta, rec)
	if err != nil {
		return err
	}

	printSummary(runID, s)

	if exportPath != "" {
		meta.ID = runID
		if err := store.ExportJSON(exportPath, meta, rec); err != nil {
			return err
		}
	}
	if showPlot {
		fmt.Print(viz.OrbitPlot(rec.Frames, 70, 24))
		fmt.Print(viz.EnergyPlot(hist.series, 10))
	}
	return nil
}

// driftHistory samples relative energy drift once per step for the post-run
// plot.
type driftHistory struct {
	model   nbody.Hamiltonian
	initial float64
	series  []float64
}

func (d *driftHistory) OnStep(bodies []nbody.Body, t float64) {
	if d.initial == 0 {
		return
	}
	e := d.model.Energy(bodies)
	d.series = append(d.series, math.Abs(e-d.initial)/math.Abs(d.initial))
}

func runMetadata(cfg *config.Config, s *sim.Simulation) store.RunMetadata {
	names := make([]string, len(cfg.Bodies))
	for i, b := range cfg.Bodies {
		names[i] = b.Name
	}
	return store.RunMetadata{
		Scenario:   cfg.Name,
		G:          cfg.G,
		Epsilon:    cfg.Epsilon,
		Dt:         cfg.Dt,
		Steps:      s.StepCount(),
		Integrator: cfg.Integrator,
		Bodies:     names,
		Metrics:    s.MetricValues(),
	}
}

func printSummary(runID string, s *sim.Simulation) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "run\t%s\n", runID)
	fmt.Fprintf(w, "steps\t%d\n", s.StepCount())
	fmt.Fprintf(w, "time\t%g\n", s.Time())
	for name, v := range s.MetricValues() {
		fmt.Fprintf(w, "%s\t%.6e\n", name, v)
	}
	for _, b := range s.Snapshot() {
		fmt.Fprintf(w, "%s\tpos=(%.4g, %.4g, %.4g) vel=(%.4g, %.4g, %.4g)\n",
			b.Name,
			b.Position.X, b.Position.Y, b.Position.Z,
			b.Velocity.X, b.Velocity.Y, b.Velocity.Z)
	}
	w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store.New(dataDir).List()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tBODIES\tSTEPS\tDT\tINTEGRATOR")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%g\t%s\n",
			r.ID, r.Scenario, len(r.Bodies), r.Steps, r.Dt, r.Integrator)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := loadFrames(st, args[0], meta)
	if err != nil {
		return err
	}
	fmt.Print(viz.OrbitPlot(frames, 70, 24))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, rows, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	rec := &sim.Recorder{}
	for _, row := range rows {
		rec.Times = append(rec.Times, row[0])
		rec.Frames = append(rec.Frames, rowToBodies(row, meta))
	}
	return store.ExportJSON(exportPath, *meta, rec)
}

func loadFrames(st *store.Store, runID string, meta *store.RunMetadata) ([][]nbody.Body, error) {
	_, rows, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, err
	}
	frames := make([][]nbody.Body, 0, len(rows))
	for _, row := range rows {
		frames = append(frames, rowToBodies(row, meta))
	}
	return frames, nil
}

// rowToBodies reconstructs body states from one CSV row: time followed by
// six columns (position, velocity) per body, in metadata order.
func rowToBodies(row []float64, meta *store.RunMetadata) []nbody.Body {
	bodies := make([]nbody.Body, 0, len(meta.Bodies))
	for i, name := range meta.Bodies {
		off := 1 + i*6
		if off+5 >= len(row) {
			break
		}
		bodies = append(bodies, nbody.Body{
			ID:       i,
			Name:     name,
			Mass:     1, // mass is not stored per-frame; irrelevant for plotting
			Position: nbody.Vec3{X: row[off], Y: row[off+1], Z: row[off+2]},
			Velocity: nbody.Vec3{X: row[off+3], Y: row[off+4], Z: row[off+5]},
		})
	}
	return bodies
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args)
	if err != nil {
		return err
	}
	s, _, err := buildSimulation(cfg)
	if err != nil {
		return err
	}
	return tui.Run(s, cfg.Name, stepsPerTick)
}
