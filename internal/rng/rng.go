package rng

import "math/rand"

// Stream wraps a single *rand.Rand so every randomized operation in this
// module draws from one injected source instead of the package-level
// global. A Stream is not safe for concurrent use — the core is
// single-threaded cooperative per spec.md §5, so callers never need it to
// be.
type Stream struct {
	r *rand.Rand
}

// New seeds a fresh Stream. The same seed always produces the same
// sequence of draws, which is what makes cell placement and ray-trace
// synthesis reproducible given fixed inputs.
func New(seed int64) *Stream {
	return &Stream{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a pseudo-random number in [0.0, 1.0).
func (s *Stream) Float64() float64 {
	return s.r.Float64()
}

// Intn returns a pseudo-random number in [0, n).
func (s *Stream) Intn(n int) int {
	return s.r.Intn(n)
}
