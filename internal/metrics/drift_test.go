package metrics

import (
	"testing"

	"github.com/san-kum/gravsim/internal/physics"
)

func driftCluster() *physics.Cluster {
	return physics.NewCluster([]physics.Particle{
		physics.NewParticle(1.0, physics.Vec3{X: 1}, physics.Vec3{Y: 0.5}),
		physics.NewParticle(1.0, physics.Vec3{X: -1}, physics.Vec3{Y: -0.5}),
	})
}

func TestEnergyDriftConstant(t *testing.T) {
	m := NewEnergyDrift()
	c := driftCluster()

	m.Observe(c, 0)
	m.Observe(c, 1)
	if m.Value() != 0 {
		t.Errorf("expected zero drift for unchanged cluster, got %e", m.Value())
	}
}

func TestEnergyDriftTracksWorstCase(t *testing.T) {
	m := NewEnergyDrift()
	c := driftCluster()

	m.Observe(c, 0)
	c.Bodies[0].Vel = c.Bodies[0].Vel.Scale(2) // inject an energy error
	m.Observe(c, 1)
	worst := m.Value()
	if worst <= 0 {
		t.Fatal("expected positive drift after velocity change")
	}

	c.Bodies[0].Vel = c.Bodies[0].Vel.Scale(0.5) // back to the original
	m.Observe(c, 2)
	if m.Value() != worst {
		t.Error("drift should keep the worst observed value")
	}
}

func TestEnergyDriftReset(t *testing.T) {
	m := NewEnergyDrift()
	c := driftCluster()

	m.Observe(c, 0)
	c.Bodies[0].Vel = c.Bodies[0].Vel.Scale(3)
	m.Observe(c, 1)

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestMomentumDrift(t *testing.T) {
	m := NewMomentumDrift()
	c := driftCluster()

	m.Observe(c, 0)
	m.Observe(c, 1)
	if m.Value() != 0 {
		t.Errorf("expected zero momentum drift, got %e", m.Value())
	}

	c.Bodies[0].Vel = c.Bodies[0].Vel.Add(physics.Vec3{X: 0.1})
	m.Observe(c, 2)
	if v := m.Value(); v < 0.0999 || v > 0.1001 {
		t.Errorf("expected drift ~0.1, got %f", v)
	}
}
