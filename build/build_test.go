package build_test

import (
	"testing"

	"github.com/raybnn/topology/build"
	"github.com/raybnn/topology/internal/rng"
	"github.com/raybnn/topology/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) build.Config {
	t.Helper()
	m, err := model.New(10, 2, 2, 10.0, 0.3, 6.0, 30)
	require.NoError(t, err)
	return build.Config{
		Model:           m,
		BodyCandidates:  8,
		NeuronFraction:  0.7,
		LoopDeleteDepth: 4,
	}
}

func TestModelProducesValidTopology(t *testing.T) {
	cfg := testConfig(t)
	state, err := build.Model(cfg, rng.New(1), nil)
	require.NoError(t, err)

	assert.Len(t, state.InputPos, 2)
	assert.Len(t, state.OutputPos, 2)
	assert.NotEmpty(t, state.HiddenPos)
	require.NoError(t, state.COO.Validate())

	// Every edge id must lie in the effective neuron domain.
	for _, id := range append(append([]int64{}, state.COO.Rows...), state.COO.Cols...) {
		assert.GreaterOrEqual(t, id, int64(0))
		assert.Less(t, id, state.NeuronSize())
	}
}

func TestModelDeterministicGivenSeed(t *testing.T) {
	cfg := testConfig(t)

	a, err := build.Model(cfg, rng.New(7), nil)
	require.NoError(t, err)
	b, err := build.Model(cfg, rng.New(7), nil)
	require.NoError(t, err)

	assert.Equal(t, a.COO.Rows, b.COO.Rows)
	assert.Equal(t, a.COO.Cols, b.COO.Cols)
	assert.Equal(t, a.HiddenPos, b.HiddenPos)
}

func TestModelRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.BodyCandidates = 0
	_, err := build.Model(cfg, rng.New(1), nil)
	require.ErrorIs(t, err, build.ErrInvalidArgument)
}

func TestModelRejectsNilStream(t *testing.T) {
	cfg := testConfig(t)
	_, err := build.Model(cfg, nil, nil)
	require.ErrorIs(t, err, build.ErrInvalidArgument)
}

func TestModelRejectsNilStage(t *testing.T) {
	cfg := testConfig(t)
	_, err := build.Model(cfg, rng.New(1), nil, nil)
	require.ErrorIs(t, err, build.ErrInvalidArgument)
}

func TestModelFoldsInPriorCOO(t *testing.T) {
	cfg := testConfig(t)
	first, err := build.Model(cfg, rng.New(3), nil)
	require.NoError(t, err)
	require.NotEmpty(t, first.COO.Rows)

	second, err := build.Model(cfg, rng.New(3), &first.COO)
	require.NoError(t, err)
	require.NoError(t, second.COO.Validate())

	// Every edge the first run found must survive in the second: the same
	// seed regrows the same edges, DedupAndSort only ever unions them with
	// the prior, and DeleteLoops then sees the same edge set as in the
	// first run.
	seen := make(map[[2]int64]bool, len(second.COO.Rows))
	for i := range second.COO.Rows {
		seen[[2]int64{second.COO.Rows[i], second.COO.Cols[i]}] = true
	}
	for i := range first.COO.Rows {
		assert.True(t, seen[[2]int64{first.COO.Rows[i], first.COO.Cols[i]}])
	}
}
