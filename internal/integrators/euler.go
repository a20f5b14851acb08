package integrators

import "github.com/san-kum/gravsim/internal/physics"

// SymplecticEuler kicks velocities on the current accelerations and then
// drifts positions on the updated velocities. First order; drifts far
// more than Verlet at the same dt, which makes it a useful baseline in
// compare runs.
type SymplecticEuler struct{}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

func (e *SymplecticEuler) Step(c *physics.Cluster, dt float64) {
	for i := range c.Bodies {
		b := &c.Bodies[i]
		b.Vel = b.Vel.Add(b.Acc.Scale(dt))
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	}
	c.Accelerate()
}
