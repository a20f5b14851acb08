package sim

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
)

// Runner owns the stepping loop for one cluster. It performs the single
// warmup force evaluation that the integrator invariant requires, then
// advances the cluster a fixed number of steps, sampling the total energy
// at the report cadence.
type Runner struct {
	cluster    *physics.Cluster
	integrator integrators.Integrator
	metrics    []Metric
	observers  []Observer
	out        io.Writer
}

func New(c *physics.Cluster, integ integrators.Integrator) *Runner {
	return &Runner{cluster: c, integrator: integ}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// SetOutput directs progress lines to w. Nil (the default) keeps the run
// silent.
func (r *Runner) SetOutput(w io.Writer) { r.out = w }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	r.cluster.SetWorkers(cfg.Workers)
	for _, m := range r.metrics {
		m.Reset()
	}

	start := time.Now()

	// Warmup: one force evaluation so the first step sees accelerations
	// consistent with the initial positions.
	r.cluster.Accelerate()

	energy0 := r.cluster.Energy()
	prev := energy0
	last := energy0

	result := &Result{
		Samples: []Sample{{Step: 0, Time: 0, Energy: energy0}},
		Metrics: make(map[string]float64),
	}
	for _, m := range r.metrics {
		m.Observe(r.cluster, 0)
	}

	steps := int(cfg.Duration/cfg.Dt + 1)
	for step := 1; step < steps; step++ {
		select {
		case <-ctx.Done():
			result.Elapsed = time.Since(start)
			return result, ctx.Err()
		default:
		}

		r.integrator.Step(r.cluster, cfg.Dt)
		result.StepsTaken++
		t := cfg.Dt * float64(step)

		for _, obs := range r.observers {
			obs.OnStep(r.cluster, step, t)
		}

		if step%cfg.ReportEvery != 0 {
			continue
		}

		if cfg.ValidateState && !r.cluster.IsValid() {
			result.Elapsed = time.Since(start)
			return result, fmt.Errorf("step %d (t=%.4f): %w", step, t, physics.ErrDiverged)
		}

		energy := r.cluster.Energy()
		drift := 0.0
		if prev != 0 {
			drift = (energy - prev) / prev
		}
		result.Samples = append(result.Samples, Sample{
			Step:   step,
			Time:   t,
			Energy: energy,
			Drift:  drift,
		})
		if r.out != nil {
			fmt.Fprintf(r.out, "t = %.2f, E = %.10f, dE/E = %.10f\n", t, energy, drift)
		}

		for _, m := range r.metrics {
			m.Observe(r.cluster, t)
		}
		prev = energy
		last = energy
	}

	if energy0 != 0 {
		result.FinalDrift = (last - energy0) / energy0
	}
	result.Elapsed = time.Since(start)

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.ReportEvery <= 0 {
		return fmt.Errorf("report cadence must be positive, got %d", cfg.ReportEvery)
	}
	return nil
}
