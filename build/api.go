package build

import (
	"fmt"

	"github.com/raybnn/topology/internal/rng"
	"github.com/raybnn/topology/internal/sparse"
)

// Stage mutates State, optionally drawing from stream: a single step in a
// sequential-constructor pipeline, in the style of a
// func(*core.Graph, config) error constructor generalized from a
// string-keyed graph ADT to this module's cohort-position-plus-COO domain.
type Stage func(s *State, stream *rng.Stream) error

// Model runs cfg through stages in order, starting from a zero State,
// and returns the final State. prior, if non-nil, is folded into the
// result by GrowConnectivity, extending a previously synthesized
// topology instead of starting over. With no stages given, it runs
// DefaultStages. Each stage's error is wrapped with its index, matching
// BuildGraph's "nil constructor at index %d"/"%w" wrapping style so a
// failure names exactly which pipeline step produced it.
func Model(cfg Config, stream *rng.Stream, prior *sparse.COO, stages ...Stage) (*State, error) {
	if stream == nil {
		return nil, fmt.Errorf("%w: stream must not be nil", ErrInvalidArgument)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		stages = DefaultStages()
	}

	s := &State{Cfg: cfg, Prior: prior}
	for i, stage := range stages {
		if stage == nil {
			return nil, fmt.Errorf("Model: nil stage at index %d: %w", i, ErrInvalidArgument)
		}
		if err := stage(s, stream); err != nil {
			return nil, fmt.Errorf("Model: stage %d: %w", i, err)
		}
	}
	return s, nil
}
