// Package geom implements the deterministic and randomized point
// generators, axis-aligned cube queries, pairwise overlap detection, and
// line–sphere intersection kernels that internal/cells and
// internal/raytrace build on.
//
// Position tensors are represented as Points ([][3]float32): shape [N,3],
// row index is the cell's stable identity within its cohort and is never
// reordered after placement (spec.md §3). Reduction kernels (squared
// distance, dot products) are expressed with gonum.org/v1/gonum/floats
// over a float64 accumulator, matching the pack's own numeric code (e.g.
// go-matrixprofile), then narrowed back to float32 for storage.
package geom
