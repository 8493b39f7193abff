// Package topology synthesizes a 3D biological-style neural network
// topology from geometry: cells are placed inside a sphere, directed
// synaptic connections are discovered by casting rays between candidate
// neuron pairs and rejecting any segment occluded by intervening cells,
// and the resulting sparse directed graph is pruned to remove cycles
// relative to its input and output cohorts.
//
// The pipeline is organized leaves-first:
//
//	internal/geom      — point generators, cube queries, pairwise overlap, line-sphere intersection
//	internal/cells     — cohort placement and spatial-bucketed collision resolution
//	internal/sparse    — COO membership, dedup-and-sort, bitmap unique
//	internal/raytrace  — randomized locality-driven connectivity synthesis
//	internal/graphtopo — forward/backward reachability, connectivity check, loop deletion
//	build              — the end-to-end Model pipeline composing the packages above
//	export             — bridges a synthesized topology to core.Graph/matrix.Dense
//	cmd/raybnntopo     — CLI entry point
//
// See DESIGN.md for how each package is grounded and SPEC_FULL.md for the
// full specification this module implements.
package topology
