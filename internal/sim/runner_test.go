package sim

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
)

func testBinary() *physics.Cluster {
	return physics.NewCluster([]physics.Particle{
		physics.NewParticle(1.0, physics.Vec3{X: 1}, physics.Vec3{Y: 0.5}),
		physics.NewParticle(1.0, physics.Vec3{X: -1}, physics.Vec3{Y: -0.5}),
	})
}

func TestRunStepCountAndSamples(t *testing.T) {
	runner := New(testBinary(), integrators.NewVerlet())
	cfg := Config{Dt: 0.001, Duration: 1.0, ReportEvery: 100, ValidateState: true}

	result, err := runner.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	// int(1.0/0.001 + 1) = 1001 bounds the loop at steps 1..1000.
	if result.StepsTaken != 1000 {
		t.Errorf("expected 1000 steps, got %d", result.StepsTaken)
	}
	// warmup sample plus one per 100 steps
	if len(result.Samples) != 11 {
		t.Errorf("expected 11 samples, got %d", len(result.Samples))
	}
	if result.Samples[0].Step != 0 || result.Samples[0].Time != 0 {
		t.Error("first sample should be the warmup state")
	}
	if last := result.Samples[len(result.Samples)-1]; last.Step != 1000 {
		t.Errorf("last sample at step %d, expected 1000", last.Step)
	}
}

func TestRunConservesEnergy(t *testing.T) {
	runner := New(testBinary(), integrators.NewVerlet())
	cfg := Config{Dt: 0.001, Duration: 5.0, ReportEvery: 100, ValidateState: true}

	result, err := runner.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(result.FinalDrift) > 1e-4 {
		t.Errorf("final drift %.3e exceeds 1e-4", result.FinalDrift)
	}
	if result.Samples[0].Energy == 0 {
		t.Error("warmup energy sample missing")
	}
}

func TestRunProgressOutput(t *testing.T) {
	var buf bytes.Buffer
	runner := New(testBinary(), integrators.NewVerlet())
	runner.SetOutput(&buf)

	cfg := Config{Dt: 0.001, Duration: 0.5, ReportEvery: 100, ValidateState: true}
	if _, err := runner.Run(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 progress lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "t = ") || !strings.Contains(line, "dE/E = ") {
			t.Errorf("malformed progress line: %q", line)
		}
	}
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := New(testBinary(), integrators.NewVerlet())
	cfg := Config{Dt: 0.001, Duration: 1.0, ReportEvery: 100}

	_, err := runner.Run(ctx, cfg)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunDetectsDivergence(t *testing.T) {
	coincident := physics.NewCluster([]physics.Particle{
		physics.NewParticle(1.0, physics.Vec3{X: 1}, physics.Vec3{}),
		physics.NewParticle(1.0, physics.Vec3{X: 1}, physics.Vec3{}),
	})

	runner := New(coincident, integrators.NewVerlet())
	cfg := Config{Dt: 0.001, Duration: 1.0, ReportEvery: 100, ValidateState: true}

	_, err := runner.Run(context.Background(), cfg)
	if !errors.Is(err, physics.ErrDiverged) {
		t.Errorf("expected ErrDiverged, got %v", err)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	runner := New(testBinary(), integrators.NewVerlet())

	cases := []Config{
		{Dt: 0, Duration: 1, ReportEvery: 100},
		{Dt: 0.001, Duration: -1, ReportEvery: 100},
		{Dt: 0.001, Duration: 1, ReportEvery: 0},
	}
	for _, cfg := range cases {
		if _, err := runner.Run(context.Background(), cfg); err == nil {
			t.Errorf("expected error for config %+v", cfg)
		}
	}
}

func TestRunEmptyCluster(t *testing.T) {
	runner := New(physics.NewCluster(nil), integrators.NewVerlet())
	cfg := Config{Dt: 0.001, Duration: 0.5, ReportEvery: 100, ValidateState: true}

	result, err := runner.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	// Zero energy means drift stays zero rather than dividing by zero.
	if result.FinalDrift != 0 {
		t.Errorf("expected zero drift for empty cluster, got %f", result.FinalDrift)
	}
}

func TestTrailRecorder(t *testing.T) {
	trails := NewTrailRecorder(10)
	runner := New(testBinary(), integrators.NewVerlet())
	runner.AddObserver(trails)

	cfg := Config{Dt: 0.001, Duration: 0.1, ReportEvery: 100}
	if _, err := runner.Run(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}

	got := trails.Trails()
	if len(got) != 2 {
		t.Fatalf("expected trails for 2 bodies, got %d", len(got))
	}
	// steps 10, 20, ..., 100
	if len(got[0]) != 10 {
		t.Errorf("expected 10 trail samples, got %d", len(got[0]))
	}
}

func TestMetricsObservedAtReportCadence(t *testing.T) {
	m := &countingMetric{}
	runner := New(testBinary(), integrators.NewVerlet())
	runner.AddMetric(m)

	cfg := Config{Dt: 0.001, Duration: 0.5, ReportEvery: 100}
	result, err := runner.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	// warmup observation plus 5 report-cadence observations
	if m.observed != 6 {
		t.Errorf("expected 6 observations, got %d", m.observed)
	}
	if _, ok := result.Metrics["counting"]; !ok {
		t.Error("metric value missing from result")
	}
}

type countingMetric struct {
	observed int
}

func (m *countingMetric) Name() string                          { return "counting" }
func (m *countingMetric) Observe(c *physics.Cluster, t float64) { m.observed++ }
func (m *countingMetric) Value() float64                        { return float64(m.observed) }
func (m *countingMetric) Reset()                                { m.observed = 0 }
