package integrators

import "github.com/san-kum/gravsim/internal/physics"

// Leapfrog is the kick-drift-kick form of the same symplectic scheme as
// Verlet. It traces identical trajectories up to floating-point rounding
// and exists for the compare command.
type Leapfrog struct{}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(c *physics.Cluster, dt float64) {
	halfDt := 0.5 * dt
	for i := range c.Bodies {
		b := &c.Bodies[i]
		b.Vel = b.Vel.Add(b.Acc.Scale(halfDt))
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	}

	c.Accelerate()

	for i := range c.Bodies {
		b := &c.Bodies[i]
		b.Vel = b.Vel.Add(b.Acc.Scale(halfDt))
	}
}
