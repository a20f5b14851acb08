package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravsim/internal/analysis"
	"github.com/san-kum/gravsim/internal/catalog"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/storage"
	"github.com/san-kum/gravsim/internal/viz"
)

var (
	dataDir     string
	dt          float64
	duration    float64
	reportEvery int
	integrator  string
	workers     int
	softening   float64
	preset      string
	configFile  string
	saveRun     bool
	outFile     string
	svgFile     string
	trailEvery  int

	// catalog path picked up from a --config file when no positional
	// argument is given
	inputFromConfig string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "direct-sum gravitational n-body simulator",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [file]",
		Short: "integrate a cluster and report energy conservation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCluster,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run under the data directory")
	runCmd.Flags().StringVar(&svgFile, "svg", "", "export trajectories as an svg file")
	runCmd.Flags().IntVar(&trailEvery, "trail-every", 10, "steps between trajectory samples for --svg")

	energyCmd := &cobra.Command{
		Use:   "energy [file]",
		Short: "print the energy of a catalog without integrating",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showEnergy,
	}
	energyCmd.Flags().StringVar(&preset, "preset", "", "use a preset cluster instead of a file")
	energyCmd.Flags().Float64Var(&softening, "softening", 0, "minimum-distance floor (0 = exact kernel)")

	benchCmd := &cobra.Command{
		Use:   "bench [file]",
		Short: "step-throughput table across timestep sizes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchCluster,
	}
	benchCmd.Flags().StringVar(&preset, "preset", "", "use a preset cluster instead of a file")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "force-kernel goroutines (0 = sequential)")

	compareCmd := &cobra.Command{
		Use:   "compare [file] [integrators...]",
		Short: "energy drift of several integrators on the same cluster",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	addRunFlags(compareCmd)

	liveCmd := &cobra.Command{
		Use:   "live [file]",
		Short: "run with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the energy series of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the energy series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the energy series as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset clusters",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	makeCmd := &cobra.Command{
		Use:   "make [preset]",
		Short: "write a preset cluster as a catalog file",
		Args:  cobra.ExactArgs(1),
		RunE:  makeCatalog,
	}
	makeCmd.Flags().StringVarP(&outFile, "out", "o", "", "output path (default stdout)")

	rootCmd.AddCommand(runCmd, energyCmd, benchCmd, compareCmd, liveCmd,
		listCmd, plotCmd, exportCmd, exportCSVCmd, analyzeCmd, presetsCmd, makeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated end time")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&reportEvery, "every", config.DefaultReportEvery, "steps between energy reports")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integration scheme")
	cmd.Flags().IntVar(&workers, "workers", 0, "force-kernel goroutines (0 = sequential)")
	cmd.Flags().Float64Var(&softening, "softening", 0, "minimum-distance floor (0 = exact kernel)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a preset cluster instead of a file")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
}

// applyConfig folds a yaml config under the CLI flags: flags the user set
// explicitly always win.
func applyConfig(cmd *cobra.Command) error {
	if configFile == "" {
		return nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cmd.Flags().Changed("dt") {
		dt = cfg.Dt
	}
	if !cmd.Flags().Changed("time") {
		duration = cfg.Duration
	}
	if !cmd.Flags().Changed("every") && cfg.ReportEvery > 0 {
		reportEvery = cfg.ReportEvery
	}
	if !cmd.Flags().Changed("integrator") && cfg.Integrator != "" {
		integrator = cfg.Integrator
	}
	if !cmd.Flags().Changed("workers") {
		workers = cfg.Workers
	}
	if !cmd.Flags().Changed("softening") {
		softening = cfg.Softening
	}
	if !cmd.Flags().Changed("preset") && cfg.Preset != "" {
		preset = cfg.Preset
	}
	inputFromConfig = cfg.Input
	return nil
}

// loadCluster resolves the input source: an explicit catalog file wins,
// then a preset name. The input label is echoed into run metadata.
func loadCluster(args []string) (*physics.Cluster, string, error) {
	var bodies []physics.Particle
	var label string

	if len(args) == 0 && preset == "" && inputFromConfig != "" {
		args = []string{inputFromConfig}
	}

	switch {
	case len(args) > 0:
		var err error
		bodies, err = catalog.Load(args[0])
		if err != nil {
			return nil, "", err
		}
		label = args[0]
	case preset != "":
		bodies = config.GetPreset(preset)
		if bodies == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		label = "preset:" + preset
	default:
		return nil, "", fmt.Errorf("no input: give a catalog file or --preset")
	}

	c := physics.NewCluster(bodies)
	if softening > 0 {
		c.SetSoftening(softening)
	}
	return c, label, nil
}

func runCluster(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}

	c, label, err := loadCluster(args)
	if err != nil {
		return err
	}

	integ, err := integrators.New(integrator)
	if err != nil {
		return err
	}

	runner := sim.New(c, integ)
	runner.SetOutput(os.Stdout)
	runner.AddMetric(metrics.NewEnergyDrift())
	runner.AddMetric(metrics.NewMomentumDrift())

	var trails *sim.TrailRecorder
	if svgFile != "" {
		trails = sim.NewTrailRecorder(trailEvery)
		runner.AddObserver(trails)
	}

	cfg := sim.Config{
		Dt:            dt,
		Duration:      duration,
		ReportEvery:   reportEvery,
		Workers:       workers,
		ValidateState: true,
	}

	result, err := runner.Run(context.Background(), cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Final dE/E = %.6e\n", result.FinalDrift)
	fmt.Printf("run in %v\n", result.Elapsed)

	if trails != nil {
		if err := export.SaveTrajectories(svgFile, trails.Trails(), 800, 800); err != nil {
			return err
		}
		fmt.Printf("trajectories written to %s\n", svgFile)
	}

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(label, integrator, c.Len(), cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	return nil
}

func showEnergy(cmd *cobra.Command, args []string) error {
	c, label, err := loadCluster(args)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d bodies\n", label, c.Len())
	fmt.Printf("kinetic:   %.10f\n", c.Kinetic())
	fmt.Printf("potential: %.10f\n", c.Potential())
	fmt.Printf("total:     %.10f\n", c.Energy())
	fmt.Printf("|P| = %.6e, |L| = %.6e\n", c.Momentum().Norm(), c.AngularMomentum().Norm())
	return nil
}

func benchCluster(cmd *cobra.Command, args []string) error {
	c, label, err := loadCluster(args)
	if err != nil {
		return err
	}

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{0.001, 0.01, 0.1}

	fmt.Printf("benchmarking %s (%d bodies)\n\n", label, c.Len())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, stepSize := range dts {
			run, _, err := loadCluster(args)
			if err != nil {
				return err
			}
			runner := sim.New(run, integrators.NewVerlet())
			cfg := sim.Config{
				Dt:          stepSize,
				Duration:    dur,
				ReportEvery: 1 << 30, // throughput only, skip the energy samples
				Workers:     workers,
			}

			result, err := runner.Run(context.Background(), cfg)
			if err != nil {
				return err
			}

			stepsPerSec := float64(result.StepsTaken) / result.Elapsed.Seconds()
			fmt.Fprintf(w, "%.1f\t%.4f\t%d\t%v\t%.0f\n",
				dur, stepSize, result.StepsTaken, result.Elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}

	// With --preset every positional arg is an integrator name; otherwise
	// the first arg is the catalog file.
	var source []string
	names := args
	if preset == "" {
		source = args[:1]
		names = args[1:]
	}
	if len(names) == 0 {
		names = integrators.Names()
	}

	fmt.Printf("comparing integrators (dt=%.4f, time=%.1f)\n\n", dt, duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL dE/E\tMAX dE/E\tTIME")

	for _, name := range names {
		integ, err := integrators.New(name)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\n", name, err)
			continue
		}

		c, _, err := loadCluster(source)
		if err != nil {
			return err
		}
		runner := sim.New(c, integ)
		drift := metrics.NewEnergyDrift()
		runner.AddMetric(drift)

		cfg := sim.Config{
			Dt:            dt,
			Duration:      duration,
			ReportEvery:   reportEvery,
			Workers:       workers,
			ValidateState: true,
		}
		result, err := runner.Run(context.Background(), cfg)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\n", name, err)
			continue
		}

		fmt.Fprintf(w, "%s\t%.3e\t%.3e\t%v\n",
			name, result.FinalDrift, drift.Value(), result.Elapsed)
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}

	c, _, err := loadCluster(args)
	if err != nil {
		return err
	}
	c.SetWorkers(workers)

	integ, err := integrators.New(integrator)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(c, integ, dt))
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tINPUT\tBODIES\tDT\tDURATION\tFINAL dE/E")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\t%.2f\t%.3e\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Input,
			run.Bodies,
			run.Dt,
			run.Duration,
			run.FinalDrift,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no samples to plot")
	}

	fmt.Printf("run: %s (%s, %d bodies)\n\n", meta.ID, meta.Input, meta.Bodies)

	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = s.Energy
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("total energy vs sample"),
	)
	fmt.Println(graph)
	fmt.Printf("\nfinal dE/E: %.6e\n", meta.FinalDrift)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) < 4 {
		return fmt.Errorf("not enough samples to analyze")
	}

	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = s.Energy
	}

	fmt.Printf("frequency analysis: %s (%s)\n\n", meta.ID, meta.Input)

	ps := analysis.PowerSpectrum(analysis.PadPow2(data))
	graph := asciigraph.Plot(ps,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("energy power spectrum"),
	)
	fmt.Println(graph)

	// samples land at the report cadence, not every step
	sampleDt := meta.Dt * float64(meta.Steps) / float64(len(samples))
	if period := analysis.DominantPeriod(data, sampleDt); period > 0 {
		fmt.Printf("\ndominant period: %.3f time units\n", period)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"step", "time", "energy", "drift"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Step),
			strconv.FormatFloat(s.Time, 'f', 6, 64),
			strconv.FormatFloat(s.Energy, 'g', -1, 64),
			strconv.FormatFloat(s.Drift, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func makeCatalog(cmd *cobra.Command, args []string) error {
	bodies := config.GetPreset(args[0])
	if bodies == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}

	if outFile == "" {
		return catalog.Write(os.Stdout, bodies)
	}
	return catalog.Save(outFile, bodies)
}
