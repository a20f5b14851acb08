package physics

import (
	"math"
	"sync"
)

// Cluster is a fixed-size collection of particles under mutual gravity
// with G = 1. The body count never changes after construction; every
// Accelerate and every integrator step mutates the bodies in place.
type Cluster struct {
	Bodies []Particle

	softening float64
	workers   int
}

func NewCluster(bodies []Particle) *Cluster {
	return &Cluster{Bodies: bodies}
}

func (c *Cluster) Len() int { return len(c.Bodies) }

// SetSoftening enables a minimum-distance floor eps added in quadrature to
// every pairwise separation. Zero (the default) is the exact Newtonian
// kernel, which is singular for coincident particles.
func (c *Cluster) SetSoftening(eps float64) { c.softening = eps }

// SetWorkers selects the number of goroutines used by Accelerate.
// Values below 2 keep the kernel sequential.
func (c *Cluster) SetWorkers(n int) { c.workers = n }

// Accelerate recomputes the net gravitational acceleration of every body
// from the current positions. The previous accelerations are preserved in
// PrevAcc for the integrator's velocity update.
func (c *Cluster) Accelerate() {
	bodies := c.Bodies
	for i := range bodies {
		bodies[i].PrevAcc = bodies[i].Acc
		bodies[i].Acc = Vec3{}
	}

	if c.workers > 1 && len(bodies) >= 2*c.workers {
		c.accumulateParallel()
		return
	}
	c.accumulate()
}

// accumulate walks every unordered pair once, applying Newton's third law
// to credit both bodies from a single distance evaluation.
func (c *Cluster) accumulate() {
	bodies := c.Bodies
	eps2 := c.softening * c.softening

	for i := 0; i < len(bodies); i++ {
		pi := bodies[i].Pos
		for j := i + 1; j < len(bodies); j++ {
			d := pi.Sub(bodies[j].Pos)
			r2 := d.Norm2() + eps2
			r3 := r2 * math.Sqrt(r2)

			bodies[i].Acc = bodies[i].Acc.Sub(d.Scale(bodies[j].Mass / r3))
			bodies[j].Acc = bodies[j].Acc.Add(d.Scale(bodies[i].Mass / r3))
		}
	}
}

// accumulateParallel fans the pair loop out over strided rows. Each worker
// accumulates into its own buffer so that pairs sharing a body index never
// race; the buffers are reduced into Acc afterwards.
func (c *Cluster) accumulateParallel() {
	bodies := c.Bodies
	n := len(bodies)
	eps2 := c.softening * c.softening

	partials := make([][]Vec3, c.workers)
	var wg sync.WaitGroup
	for w := 0; w < c.workers; w++ {
		partials[w] = make([]Vec3, n)
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			acc := partials[w]
			for i := w; i < n; i += c.workers {
				pi := bodies[i].Pos
				for j := i + 1; j < n; j++ {
					d := pi.Sub(bodies[j].Pos)
					r2 := d.Norm2() + eps2
					r3 := r2 * math.Sqrt(r2)

					acc[i] = acc[i].Sub(d.Scale(bodies[j].Mass / r3))
					acc[j] = acc[j].Add(d.Scale(bodies[i].Mass / r3))
				}
			}
		}(w)
	}
	wg.Wait()

	for w := range partials {
		for i := range bodies {
			bodies[i].Acc = bodies[i].Acc.Add(partials[w][i])
		}
	}
}

// Energy returns the total mechanical energy, kinetic plus pairwise
// gravitational potential. Read-only; conservation of this value is the
// primary correctness signal for a run.
func (c *Cluster) Energy() float64 {
	return c.Kinetic() + c.Potential()
}

func (c *Cluster) Kinetic() float64 {
	ke := 0.0
	for i := range c.Bodies {
		ke += 0.5 * c.Bodies[i].Mass * c.Bodies[i].Vel.Norm2()
	}
	return ke
}

func (c *Cluster) Potential() float64 {
	bodies := c.Bodies
	eps2 := c.softening * c.softening

	pe := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			r := math.Sqrt(bodies[i].Pos.Sub(bodies[j].Pos).Norm2() + eps2)
			pe -= bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return pe
}

// Momentum returns the total linear momentum.
func (c *Cluster) Momentum() Vec3 {
	var p Vec3
	for i := range c.Bodies {
		p = p.Add(c.Bodies[i].Vel.Scale(c.Bodies[i].Mass))
	}
	return p
}

// AngularMomentum returns the total angular momentum about the origin.
func (c *Cluster) AngularMomentum() Vec3 {
	var l Vec3
	for i := range c.Bodies {
		l = l.Add(c.Bodies[i].Pos.Cross(c.Bodies[i].Vel).Scale(c.Bodies[i].Mass))
	}
	return l
}

// CenterOfMass returns the mass-weighted mean position.
func (c *Cluster) CenterOfMass() Vec3 {
	var com Vec3
	total := 0.0
	for i := range c.Bodies {
		com = com.Add(c.Bodies[i].Pos.Scale(c.Bodies[i].Mass))
		total += c.Bodies[i].Mass
	}
	if total == 0 {
		return Vec3{}
	}
	return com.Scale(1 / total)
}

// IsValid reports whether every position, velocity and acceleration is
// finite.
func (c *Cluster) IsValid() bool {
	for i := range c.Bodies {
		b := &c.Bodies[i]
		if !b.Pos.IsFinite() || !b.Vel.IsFinite() || !b.Acc.IsFinite() {
			return false
		}
	}
	return true
}
