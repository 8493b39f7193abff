package build

import (
	"github.com/raybnn/topology/internal/geom"
	"github.com/raybnn/topology/internal/sparse"
)

// State is the accumulator threaded through a Model run: cell positions
// per cohort, their assigned global ids, and the sparse adjacency grown
// and pruned by later stages. Cohort ids partition [0, NeuronSize) in
// input, output, hidden order (spec.md §3's "global id = local row +
// cohort base offset"); glia are never part of that domain, since they
// never appear as rows or columns of the weight matrix, only as
// occluders consulted during connectivity synthesis.
type State struct {
	Cfg Config

	InputPos  geom.Points
	InputIdx  []int64
	OutputPos geom.Points
	OutputIdx []int64
	HiddenPos geom.Points
	HiddenIdx []int64
	GliaPos   geom.Points

	COO sparse.COO

	// Prior, if set by Model, is an existing COO folded into the final
	// GrowConnectivity result — extending a previously synthesized
	// topology rather than starting over, mirroring
	// raytrace.RaytraceDistanceLimited's own prior parameter.
	Prior *sparse.COO

	// Connected reports the outcome of the last CheckConnected call made
	// during VerifyAndDecycle.
	Connected bool
	// Stagnated reports whether any GrowConnectivity round hit its
	// max_same_counter stagnation window before ray_max_rounds elapsed.
	Stagnated bool
}

// NeuronSize returns the effective neuron-domain bound used by the COO:
// input + output + the hidden cohort actually surviving placement, which
// may differ from Cfg.Model.NeuronSize since collision resolution and
// role split are randomized (see Config.BodyCandidates).
func (s *State) NeuronSize() int64 {
	return int64(len(s.InputPos)) + int64(len(s.OutputPos)) + int64(len(s.HiddenPos))
}
