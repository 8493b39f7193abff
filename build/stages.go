package build

import (
	"fmt"

	"github.com/raybnn/topology/internal/cells"
	"github.com/raybnn/topology/internal/geom"
	"github.com/raybnn/topology/internal/graphtopo"
	"github.com/raybnn/topology/internal/raytrace"
	"github.com/raybnn/topology/internal/rng"
	"github.com/raybnn/topology/internal/sparse"
)

func idRange(base, n int64) []int64 {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = base + int64(i)
	}
	return ids
}

// PlaceBoundary places the input cohort on the sphere surface and the
// output cohort likewise: spec.md §4.1 only names input neurons as
// sphere_even-placed, but input and output are both boundary cohorts in
// this topology (the graph's entry and exit points), while hidden neurons
// and glia fill the interior (PlaceBody) — the decision recorded in
// DESIGN.md's Open Questions.
func PlaceBoundary() Stage {
	return func(s *State, _ *rng.Stream) error {
		inputPos, err := cells.SphereEven(int(s.Cfg.Model.InputSize), s.Cfg.Model.SphereRad)
		if err != nil {
			return fmt.Errorf("PlaceBoundary: input cohort: %w", err)
		}
		outputPos, err := cells.SphereEven(int(s.Cfg.Model.OutputSize), s.Cfg.Model.SphereRad)
		if err != nil {
			return fmt.Errorf("PlaceBoundary: output cohort: %w", err)
		}
		s.InputPos = inputPos
		s.InputIdx = idRange(0, int64(len(inputPos)))
		s.OutputPos = outputPos
		s.OutputIdx = idRange(s.Cfg.Model.InputSize, int64(len(outputPos)))
		return nil
	}
}

// PlaceBody places BodyCandidates cells uniformly through the ball,
// removes overlaps via the collision-resolution pass, then splits the
// survivors into hidden neurons and glia by NeuronFraction.
func PlaceBody() Stage {
	return func(s *State, stream *rng.Stream) error {
		raw, err := cells.BallRandom(int(s.Cfg.BodyCandidates), s.Cfg.Model.SphereRad, stream)
		if err != nil {
			return fmt.Errorf("PlaceBody: placement: %w", err)
		}
		survivors, err := cells.CheckAllCollisionMinibatch(raw, s.Cfg.Model.SphereRad, s.Cfg.Model.NeuronRad)
		if err != nil {
			return fmt.Errorf("PlaceBody: collision resolution: %w", err)
		}
		hiddenPos, gliaPos, err := cells.SplitRoles(s.Cfg.NeuronFraction, survivors)
		if err != nil {
			return fmt.Errorf("PlaceBody: role split: %w", err)
		}
		s.HiddenPos = hiddenPos
		s.HiddenIdx = idRange(s.Cfg.Model.InputSize+s.Cfg.Model.OutputSize, int64(len(hiddenPos)))
		s.GliaPos = gliaPos
		return nil
	}
}

// raytraceLeg runs one RaytraceDistanceLimited round between a sender and
// a receiver cohort, against the model sized to the effective
// (post-placement) neuron domain, folding in prior as a starting COO.
func raytraceLeg(s *State, stream *rng.Stream, senderPos, receiverPos geom.Points, senderIdx, receiverIdx []int64, prior *sparse.COO) (sparse.COO, bool, error) {
	cfg := s.Cfg.Model
	cfg.NeuronSize = s.NeuronSize()
	return raytrace.RaytraceDistanceLimited(cfg, stream, s.GliaPos, senderPos, receiverPos, senderIdx, receiverIdx, prior)
}

// GrowConnectivity runs three ray-traced synthesis legs in sequence —
// input to hidden, hidden to hidden, hidden to output — each extending
// the previous leg's COO via its prior parameter, mirroring how a
// layered sensory-to-motor topology is actually wired one cohort pair at
// a time rather than in one undifferentiated sender/receiver pool.
func GrowConnectivity() Stage {
	return func(s *State, stream *rng.Stream) error {
		stagnated := false

		coo, stag, err := raytraceLeg(s, stream, s.InputPos, s.HiddenPos, s.InputIdx, s.HiddenIdx, nil)
		if err != nil {
			return fmt.Errorf("GrowConnectivity: input->hidden: %w", err)
		}
		stagnated = stagnated || stag

		coo, stag, err = raytraceLeg(s, stream, s.HiddenPos, s.HiddenPos, s.HiddenIdx, s.HiddenIdx, &coo)
		if err != nil {
			return fmt.Errorf("GrowConnectivity: hidden->hidden: %w", err)
		}
		stagnated = stagnated || stag

		coo, stag, err = raytraceLeg(s, stream, s.HiddenPos, s.OutputPos, s.HiddenIdx, s.OutputIdx, &coo)
		if err != nil {
			return fmt.Errorf("GrowConnectivity: hidden->output: %w", err)
		}
		stagnated = stagnated || stag

		if s.Prior != nil {
			rows := append(append([]int64{}, coo.Rows...), s.Prior.Rows...)
			cols := append(append([]int64{}, coo.Cols...), s.Prior.Cols...)
			vals := append(append([]float32{}, coo.Vals...), s.Prior.Vals...)
			merged, err := sparse.DedupAndSort(rows, cols, vals, s.NeuronSize())
			if err != nil {
				return fmt.Errorf("GrowConnectivity: merge prior: %w", err)
			}
			coo = merged
		}

		s.COO = coo
		s.Stagnated = stagnated
		return nil
	}
}

// VerifyAndDecycle checks connectivity from every input to every output,
// then removes edges that would let an output path back to an input
// within Cfg.LoopDeleteDepth hops.
func VerifyAndDecycle() Stage {
	return func(s *State, _ *rng.Stream) error {
		connected, err := graphtopo.CheckConnected(s.COO, s.InputIdx, s.OutputIdx, s.Cfg.LoopDeleteDepth)
		if err != nil {
			return fmt.Errorf("VerifyAndDecycle: check connected: %w", err)
		}
		s.Connected = connected

		pruned, err := graphtopo.DeleteLoops(s.COO, s.OutputIdx, s.InputIdx, s.Cfg.LoopDeleteDepth)
		if err != nil {
			return fmt.Errorf("VerifyAndDecycle: delete loops: %w", err)
		}
		s.COO = pruned
		return nil
	}
}

// DefaultStages returns the standard four-stage pipeline: place the
// sphere-surface boundary cohorts, place and resolve the interior body,
// grow connectivity, then verify and de-cycle.
func DefaultStages() []Stage {
	return []Stage{PlaceBoundary(), PlaceBody(), GrowConnectivity(), VerifyAndDecycle()}
}
