package physics

import "errors"

// Domain errors for cluster state.
var (
	// ErrDiverged indicates a non-finite position, velocity or acceleration,
	// usually the aftermath of two particles passing through the same point.
	ErrDiverged = errors.New("physics: cluster state diverged (NaN or Inf)")
)
