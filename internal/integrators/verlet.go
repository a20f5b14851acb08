package integrators

import "github.com/san-kum/gravsim/internal/physics"

// Verlet is the velocity-Verlet scheme in Stoermer form: drift positions
// on the stored accelerations, re-evaluate forces once, then kick
// velocities on the average of old and new accelerations.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(c *physics.Cluster, dt float64) {
	halfDt2 := 0.5 * dt * dt
	for i := range c.Bodies {
		b := &c.Bodies[i]
		b.Pos = b.Pos.Add(b.Vel.Scale(dt)).Add(b.Acc.Scale(halfDt2))
	}

	// Moves the pre-drift accelerations into PrevAcc.
	c.Accelerate()

	halfDt := 0.5 * dt
	for i := range c.Bodies {
		b := &c.Bodies[i]
		b.Vel = b.Vel.Add(b.Acc.Add(b.PrevAcc).Scale(halfDt))
	}
}
