package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/physics"
)

// MomentumDrift tracks the worst absolute deviation of total linear
// momentum from the first observed value. The pairwise kernel conserves
// momentum exactly, so anything beyond rounding noise here points at a
// kernel bug.
type MomentumDrift struct {
	initial  physics.Vec3
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{}
}

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(c *physics.Cluster, t float64) {
	p := c.Momentum()
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++

	m.maxDrift = math.Max(m.maxDrift, p.Sub(m.initial).Norm())
}

func (m *MomentumDrift) Value() float64 {
	return m.maxDrift
}

func (m *MomentumDrift) Reset() {
	m.initial = physics.Vec3{}
	m.maxDrift = 0
	m.samples = 0
}
