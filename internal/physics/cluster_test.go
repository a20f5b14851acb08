package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/physics"
)

// binary returns two unit masses 2 apart with barycenter-circular
// velocities. By hand: KE = 2 · ½·1·0.25 = 0.25, PE = -1/2, E = -0.25.
func binary() *physics.Cluster {
	return physics.NewCluster([]physics.Particle{
		physics.NewParticle(1.0, physics.Vec3{X: 1}, physics.Vec3{Y: 0.5}),
		physics.NewParticle(1.0, physics.Vec3{X: -1}, physics.Vec3{Y: -0.5}),
	})
}

var _ = Describe("Cluster", func() {
	Describe("Accelerate", func() {
		It("computes the two-body acceleration magnitude", func() {
			c := binary()
			c.Accelerate()

			// |a| = m / d² = 1/4 toward the partner
			Expect(c.Bodies[0].Acc.X).To(BeNumerically("~", -0.25, 1e-12))
			Expect(c.Bodies[0].Acc.Y).To(BeNumerically("~", 0, 1e-12))
			Expect(c.Bodies[1].Acc.X).To(BeNumerically("~", 0.25, 1e-12))
		})

		It("obeys Newton's third law pairwise", func() {
			c := physics.NewCluster([]physics.Particle{
				physics.NewParticle(3.0, physics.Vec3{X: 0.3, Y: -1.1, Z: 0.4}, physics.Vec3{}),
				physics.NewParticle(0.7, physics.Vec3{X: -0.8, Y: 0.2, Z: 1.5}, physics.Vec3{}),
			})
			c.Accelerate()

			// m1·a1 + m2·a2 = 0
			f1 := c.Bodies[0].Acc.Scale(c.Bodies[0].Mass)
			f2 := c.Bodies[1].Acc.Scale(c.Bodies[1].Mass)
			Expect(f1.Add(f2).Norm()).To(BeNumerically("<", 1e-12))
		})

		It("conserves total momentum change across many bodies", func() {
			c := cluster9()
			c.Accelerate()

			var f physics.Vec3
			for i := range c.Bodies {
				f = f.Add(c.Bodies[i].Acc.Scale(c.Bodies[i].Mass))
			}
			Expect(f.Norm()).To(BeNumerically("<", 1e-10))
		})

		It("hands the previous accelerations into PrevAcc", func() {
			c := binary()
			c.Accelerate()
			first := []physics.Vec3{c.Bodies[0].Acc, c.Bodies[1].Acc}

			c.Accelerate()
			Expect(c.Bodies[0].PrevAcc).To(Equal(first[0]))
			Expect(c.Bodies[1].PrevAcc).To(Equal(first[1]))
		})

		It("is idempotent for unchanged positions", func() {
			c := binary()
			c.Accelerate()
			first := []physics.Vec3{c.Bodies[0].Acc, c.Bodies[1].Acc}

			c.Accelerate()
			Expect(c.Bodies[0].Acc).To(Equal(first[0]))
			Expect(c.Bodies[1].Acc).To(Equal(first[1]))
		})

		It("produces zero accelerations for empty and single-body clusters", func() {
			empty := physics.NewCluster(nil)
			empty.Accelerate()
			Expect(empty.Energy()).To(BeZero())

			single := physics.NewCluster([]physics.Particle{
				physics.NewParticle(2.0, physics.Vec3{X: 5}, physics.Vec3{Y: 3}),
			})
			single.Accelerate()
			Expect(single.Bodies[0].Acc).To(Equal(physics.Vec3{}))
			Expect(single.Potential()).To(BeZero())
			Expect(single.Kinetic()).To(BeNumerically("~", 9.0, 1e-12))
		})

		It("diverges on exactly coincident particles", func() {
			c := physics.NewCluster([]physics.Particle{
				physics.NewParticle(1.0, physics.Vec3{X: 1}, physics.Vec3{}),
				physics.NewParticle(1.0, physics.Vec3{X: 1}, physics.Vec3{}),
			})
			c.Accelerate()
			Expect(c.IsValid()).To(BeFalse())
		})

		It("stays finite for coincident particles with softening enabled", func() {
			c := physics.NewCluster([]physics.Particle{
				physics.NewParticle(1.0, physics.Vec3{X: 1}, physics.Vec3{}),
				physics.NewParticle(1.0, physics.Vec3{X: 1}, physics.Vec3{}),
			})
			c.SetSoftening(0.01)
			c.Accelerate()
			Expect(c.IsValid()).To(BeTrue())
		})

		It("matches the sequential kernel when parallel", func() {
			serial := cluster9()
			serial.Accelerate()

			parallel := cluster9()
			parallel.SetWorkers(4)
			parallel.Accelerate()

			for i := range serial.Bodies {
				Expect(parallel.Bodies[i].Acc.Sub(serial.Bodies[i].Acc).Norm()).
					To(BeNumerically("<", 1e-12))
			}
		})
	})

	Describe("Energy", func() {
		It("matches the hand-computed binary value", func() {
			Expect(binary().Energy()).To(BeNumerically("~", -0.25, 1e-12))
		})

		It("splits into kinetic and potential", func() {
			c := binary()
			Expect(c.Kinetic()).To(BeNumerically("~", 0.25, 1e-12))
			Expect(c.Potential()).To(BeNumerically("~", -0.5, 1e-12))
		})

		It("does not mutate the cluster", func() {
			c := binary()
			c.Accelerate()
			before := c.Bodies[0]
			c.Energy()
			Expect(c.Bodies[0]).To(Equal(before))
		})
	})

	Describe("bulk quantities", func() {
		It("reports zero net momentum for the binary", func() {
			Expect(binary().Momentum().Norm()).To(BeNumerically("<", 1e-12))
		})

		It("places the binary barycenter at the origin", func() {
			Expect(binary().CenterOfMass().Norm()).To(BeNumerically("<", 1e-12))
		})

		It("reports the binary angular momentum", func() {
			// L = 2 · m·r·v = 2 · 1·1·0.5 about z
			l := binary().AngularMomentum()
			Expect(l.Z).To(BeNumerically("~", 1.0, 1e-12))
			Expect(l.X).To(BeZero())
			Expect(l.Y).To(BeZero())
		})
	})
})

// cluster9 is a fixed, asymmetric 9-body configuration.
func cluster9() *physics.Cluster {
	bodies := make([]physics.Particle, 0, 9)
	for i := 0; i < 9; i++ {
		f := float64(i)
		bodies = append(bodies, physics.NewParticle(
			0.5+0.1*f,
			physics.Vec3{X: f * 0.7, Y: f*f*0.05 - 1, Z: -f * 0.3},
			physics.Vec3{X: -f * 0.02, Y: 0.1, Z: f * 0.01},
		))
	}
	return physics.NewCluster(bodies)
}
