package sim

import (
	"time"

	"github.com/san-kum/gravsim/internal/physics"
)

type Config struct {
	Dt            float64
	Duration      float64
	ReportEvery   int
	Workers       int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.001,
		Duration:      10.0,
		ReportEvery:   100,
		ValidateState: true,
	}
}

// Sample is one energy reading taken at the report cadence. Drift is the
// relative change since the previous sample.
type Sample struct {
	Step   int
	Time   float64
	Energy float64
	Drift  float64
}

type Result struct {
	Samples    []Sample
	StepsTaken int
	// FinalDrift is relative to the first post-warmup sample.
	FinalDrift float64
	Elapsed    time.Duration
	Metrics    map[string]float64
}

// Metric accumulates a scalar diagnostic over a run. Observed at the
// report cadence, not every step, since the interesting diagnostics are
// all O(n) or worse.
type Metric interface {
	Name() string
	Observe(c *physics.Cluster, t float64)
	Value() float64
	Reset()
}

// Observer sees the cluster after every step.
type Observer interface {
	OnStep(c *physics.Cluster, step int, t float64)
}
