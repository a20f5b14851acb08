package physics

// Particle is one point mass. Mass is fixed after creation; Pos and Vel
// are advanced every step, Acc and PrevAcc are owned by the force kernel
// and the integrator handoff.
type Particle struct {
	Mass    float64
	Pos     Vec3
	Vel     Vec3
	Acc     Vec3
	PrevAcc Vec3
}

// NewParticle returns a particle at rest in acceleration space; Acc and
// PrevAcc start at zero and become meaningful after the first Accelerate.
func NewParticle(mass float64, pos, vel Vec3) Particle {
	return Particle{Mass: mass, Pos: pos, Vel: vel}
}
