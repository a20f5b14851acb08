package config

import (
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/gravsim/internal/physics"
)

// Named initial conditions for runs without a catalog file. All presets
// use the dimensionless G = 1 units of the force kernel.
var presets = map[string]func() []physics.Particle{
	"binary":  binaryPreset,
	"figure8": figureEightPreset,
	"solar":   solarPreset,
	"sphere":  spherePreset,
}

// GetPreset returns the bodies for a named preset, or nil when the name
// is unknown.
func GetPreset(name string) []physics.Particle {
	fn, ok := presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// binaryPreset is two unit masses on a circular orbit about their
// barycenter: separation 2, orbital period 4π.
func binaryPreset() []physics.Particle {
	return []physics.Particle{
		physics.NewParticle(1.0, physics.Vec3{X: 1}, physics.Vec3{Y: 0.5}),
		physics.NewParticle(1.0, physics.Vec3{X: -1}, physics.Vec3{Y: -0.5}),
	}
}

// figureEightPreset is the Chenciner-Montgomery three-body choreography:
// three unit masses chasing each other around a figure-eight orbit.
func figureEightPreset() []physics.Particle {
	pos := physics.Vec3{X: 0.97000436, Y: -0.24308753}
	vel := physics.Vec3{X: -0.93240737, Y: -0.86473146}
	half := vel.Scale(-0.5)
	return []physics.Particle{
		physics.NewParticle(1.0, pos, half),
		physics.NewParticle(1.0, pos.Scale(-1), half),
		physics.NewParticle(1.0, physics.Vec3{}, vel),
	}
}

// solarPreset is the sun and the four outer planets in units of AU,
// years and solar masses (so G = 1 becomes solarMass = 4π²). The sun
// picks up a compensating momentum so the barycenter stays put.
func solarPreset() []physics.Particle {
	const (
		solarMass   = 4 * math.Pi * math.Pi
		daysPerYear = 365.24
	)

	bodies := []physics.Particle{
		physics.NewParticle(solarMass, physics.Vec3{}, physics.Vec3{}),
		physics.NewParticle(9.54791938424326609e-04*solarMass,
			physics.Vec3{X: 4.84143144246472090e+00, Y: -1.16032004402742839e+00, Z: -1.03622044471123109e-01},
			physics.Vec3{X: 1.66007664274403694e-03 * daysPerYear, Y: 7.69901118419740425e-03 * daysPerYear, Z: -6.90460016972063023e-05 * daysPerYear}),
		physics.NewParticle(2.85885980666130812e-04*solarMass,
			physics.Vec3{X: 8.34336671824457987e+00, Y: 4.12479856412430479e+00, Z: -4.03523417114321381e-01},
			physics.Vec3{X: -2.76742510726862411e-03 * daysPerYear, Y: 4.99852801234917238e-03 * daysPerYear, Z: 2.30417297573763929e-05 * daysPerYear}),
		physics.NewParticle(4.36624404335156298e-05*solarMass,
			physics.Vec3{X: 1.28943695621391310e+01, Y: -1.51111514016986312e+01, Z: -2.23307578892655734e-01},
			physics.Vec3{X: 2.96460137564761618e-03 * daysPerYear, Y: 2.37847173959480950e-03 * daysPerYear, Z: -2.96589568540237556e-05 * daysPerYear}),
		physics.NewParticle(5.15138902046611451e-05*solarMass,
			physics.Vec3{X: 1.53796971148509165e+01, Y: -2.59193146099879641e+01, Z: 1.79258772950371181e-01},
			physics.Vec3{X: 2.68067772490389322e-03 * daysPerYear, Y: 1.62824170038242295e-03 * daysPerYear, Z: -9.51592254519715870e-05 * daysPerYear}),
	}

	var p physics.Vec3
	for _, b := range bodies[1:] {
		p = p.Add(b.Vel.Scale(b.Mass))
	}
	bodies[0].Vel = p.Scale(-1 / solarMass)

	return bodies
}

// spherePreset is 64 light bodies scattered through a unit sphere with
// small tangential velocities. Seeded so runs are reproducible.
func spherePreset() []physics.Particle {
	const n = 64
	rng := rand.New(rand.NewSource(42))

	bodies := make([]physics.Particle, 0, n)
	for len(bodies) < n {
		pos := physics.Vec3{
			X: rng.Float64()*2 - 1,
			Y: rng.Float64()*2 - 1,
			Z: rng.Float64()*2 - 1,
		}
		if pos.Norm2() > 1 {
			continue
		}
		vel := physics.Vec3{X: -pos.Y, Y: pos.X}.Scale(0.3)
		bodies = append(bodies, physics.NewParticle(1.0/n, pos, vel))
	}
	return bodies
}
