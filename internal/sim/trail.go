package sim

import "github.com/san-kum/gravsim/internal/physics"

// TrailRecorder is an Observer that samples every body's position at a
// fixed step cadence, for trajectory export. Memory grows with
// steps/cadence, so pick the cadence accordingly for long runs.
type TrailRecorder struct {
	every  int
	trails [][]physics.Vec3
}

func NewTrailRecorder(every int) *TrailRecorder {
	if every < 1 {
		every = 1
	}
	return &TrailRecorder{every: every}
}

func (r *TrailRecorder) OnStep(c *physics.Cluster, step int, t float64) {
	if step%r.every != 0 {
		return
	}
	if r.trails == nil {
		r.trails = make([][]physics.Vec3, c.Len())
	}
	for i := range c.Bodies {
		r.trails[i] = append(r.trails[i], c.Bodies[i].Pos)
	}
}

// Trails returns one position series per body, in body order.
func (r *TrailRecorder) Trails() [][]physics.Vec3 {
	return r.trails
}
