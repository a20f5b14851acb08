// Package physics holds the particle state model and the O(n²) direct
// gravitational force kernel.
//
// A [Cluster] owns a fixed slice of [Particle] values and exposes
// Accelerate (the pairwise kernel), Energy (the conservation diagnostic)
// and a handful of read-only bulk quantities. Units are dimensionless
// with G = 1.
//
// Coincident particles are a genuine singularity of the exact kernel and
// are not handled; the optional SetSoftening floor is an opt-in
// regularization, not part of the baseline contract.
package physics
