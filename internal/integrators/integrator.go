package integrators

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/physics"
)

// Integrator advances a cluster by one fixed time increment. Every scheme
// here expects the cluster's accelerations to be consistent with its
// positions at entry (one Accelerate after construction, then maintained
// by the steps themselves).
type Integrator interface {
	Step(c *physics.Cluster, dt float64)
}

// New returns the named integrator. Verlet is the baseline scheme.
func New(name string) (Integrator, error) {
	switch name {
	case "verlet":
		return NewVerlet(), nil
	case "leapfrog":
		return NewLeapfrog(), nil
	case "euler":
		return NewSymplecticEuler(), nil
	}
	return nil, fmt.Errorf("unknown integrator: %s", name)
}

// Names lists the registered integrators.
func Names() []string {
	return []string{"verlet", "leapfrog", "euler"}
}
