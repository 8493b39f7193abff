// Package cells builds on internal/geom to place non-overlapping cell
// populations in 3D space: even and random generators, cube-bucketed
// collision resolution, and the neuron/glia role split. It does not touch
// the RNG directly — stream injection happens in the caller, passed
// straight through to geom.BallRandom.
package cells
