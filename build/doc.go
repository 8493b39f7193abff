// Package build sequences internal/cells, internal/raytrace, and
// internal/graphtopo into the single end-to-end topology synthesis
// pipeline: place cells, resolve collisions, split neuron/glia roles,
// grow connectivity, then verify and de-cycle it. It follows a single
// entry point/sequential-constructor pattern (BuildGraph(opts, cons
// ...Constructor)), generalized from *core.Graph to a *build.State
// carrying cell positions and a sparse.COO instead.
package build
