// Package raytrace synthesizes directed synaptic connectivity between
// cell populations: ball-filtering candidate senders/receivers around a
// randomly chosen locality, enumerating cross-product ray segments
// between them, and rejecting segments occluded by too many blocking
// cells (hidden neurons or glia), checked in memory-bounded batches with
// adaptive pruning. The synthesis driver, RaytraceDistanceLimited, is the
// module's single consumer of internal/rng (besides cells.BallRandom).
package raytrace
