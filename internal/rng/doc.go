// Package rng provides the single injectable randomness stream consumed by
// cells.BallRandom and raytrace.RaytraceDistanceLimited.
//
// Exactly one RNG stream is exposed as an injected seed rather than drawn
// from a hidden global, so that a fixed seed makes an entire build
// deterministic end to end. This follows a WithSeed(...)/cfg.rng
// *rand.Rand functional-option idiom, pulled into a small standalone type
// since this module's array-oriented domain has no *core.Graph-shaped
// constructor config to carry it.
package rng
