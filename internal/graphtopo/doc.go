// Package graphtopo implements forward/backward BFS-style reachability
// over a sparse.COO adjacency, connectivity verification between input
// and output id sets, and loop deletion relative to those anchor sets.
// Edges are read as column (source) to row (destination); every
// operation here requires its input COO to already satisfy
// sparse.COO.Validate, and returns the error Validate reports otherwise
// (sparse.ErrPreconditionViolated for unsorted, duplicate or
// out-of-range edges). Traversal is written as plain functions over the
// raw COO int64 slices rather than over an adjacency list.
package graphtopo
