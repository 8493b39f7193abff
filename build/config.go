package build

import (
	"fmt"

	"github.com/raybnn/topology/model"
)

// Config is the plain-data input to Model. It embeds the core model
// parameters and adds the build-pipeline-only knobs that spec.md's
// model-parameter table does not itself enumerate: how many candidate
// cells to place in the ball before collision resolution and role split,
// and how deep to walk when verifying connectivity and deleting loops.
type Config struct {
	Model model.ModelData

	// BodyCandidates is the number of cells placed uniformly in the ball
	// before collision resolution and the neuron/glia role split. It is
	// deliberately independent of Model.HiddenSize(): collision removal
	// and the role split are both randomized, so the final hidden cohort
	// size is a consequence of placement, not a parameter fixed in
	// advance. Callers wanting roughly Model.HiddenSize() hidden neurons
	// should over-provision BodyCandidates accordingly.
	BodyCandidates int64

	// NeuronFraction is the fraction of surviving body cells kept as
	// hidden neurons; the remainder becomes glia (cells.SplitRoles).
	NeuronFraction float32

	// LoopDeleteDepth bounds both the connectivity check and the loop
	// deletion backward walk (graphtopo.CheckConnected/DeleteLoops).
	LoopDeleteDepth int64
}

// Validate reports ErrInvalidArgument for any field outside its legal
// domain, including a Model that fails its own Validate.
func (c Config) Validate() error {
	if err := c.Model.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if c.BodyCandidates <= 0 {
		return fmt.Errorf("%w: body_candidates must be positive, got %d", ErrInvalidArgument, c.BodyCandidates)
	}
	if c.NeuronFraction < 0 || c.NeuronFraction > 1 {
		return fmt.Errorf("%w: neuron_fraction must be in [0,1], got %g", ErrInvalidArgument, c.NeuronFraction)
	}
	if c.LoopDeleteDepth <= 0 {
		return fmt.Errorf("%w: loop_delete_depth must be positive, got %d", ErrInvalidArgument, c.LoopDeleteDepth)
	}
	return nil
}
