package raytrace_test

import (
	"testing"

	"github.com/raybnn/topology/internal/geom"
	"github.com/raybnn/topology/internal/raytrace"
	"github.com/raybnn/topology/internal/rng"
	"github.com/raybnn/topology/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterRays(t *testing.T) {
	pts := geom.Points{{0, 0, 0}, {5, 0, 0}, {0.5, 0, 0}}
	idx := []int64{10, 11, 12}

	gotPts, gotIdx, err := raytrace.FilterRays(1.0, geom.Point{0, 0, 0}, pts, idx)
	require.NoError(t, err)
	assert.Equal(t, geom.Points{{0, 0, 0}, {0.5, 0, 0}}, gotPts)
	assert.Equal(t, []int64{10, 12}, gotIdx)
}

func TestRaysFromAToB(t *testing.T) {
	posA := geom.Points{{0, 0, 0}, {10, 10, 10}}
	posB := geom.Points{{0.5, 0, 0}}
	idxA := []int64{0, 1}
	idxB := []int64{100}

	start, end, sender, receiver, err := raytrace.RaysFromAToB(1.0, posA, posB, idxA, idxB)
	require.NoError(t, err)
	require.Len(t, start, 1)
	assert.Equal(t, geom.Point{0, 0, 0}, start[0])
	assert.Equal(t, geom.Point{0.5, 0, 0}, end[0])
	assert.Equal(t, int64(0), sender[0])
	assert.Equal(t, int64(100), receiver[0])
}

func TestLineSphereIntersectBatchOcclusion(t *testing.T) {
	lineStart := geom.Points{{0, 0, 0}}
	lineEnd := geom.Points{{10, 0, 0}}
	indexStart := []int64{0}
	indexEnd := []int64{1}

	blockCells := geom.Points{{5, 0, 0}}
	blockRadius := []float32{1.0}

	_, _, _, remainingEnd, err := raytrace.LineSphereIntersectBatch(10, 0, blockCells, blockRadius, lineStart, lineEnd, indexStart, indexEnd)
	require.NoError(t, err)
	assert.Empty(t, remainingEnd)
}

func TestLineSphereIntersectBatchTolerance(t *testing.T) {
	lineStart := geom.Points{{0, 0, 0}}
	lineEnd := geom.Points{{10, 0, 0}}
	indexStart := []int64{0}
	indexEnd := []int64{1}

	blockCells := geom.Points{{5, 0, 0}}
	blockRadius := []float32{1.0}

	gotStart, _, _, _, err := raytrace.LineSphereIntersectBatch(10, 2, blockCells, blockRadius, lineStart, lineEnd, indexStart, indexEnd)
	require.NoError(t, err)
	assert.Len(t, gotStart, 1)
}

func TestRaytraceDistanceLimitedProducesValidCOO(t *testing.T) {
	cfg, err := model.New(20, 5, 5, 10.0, 0.5, 3.0, 50)
	require.NoError(t, err)

	stream := rng.New(123)
	senderPos, err := geom.SphereEven(5, 10.0)
	require.NoError(t, err)
	senderIdx := []int64{0, 1, 2, 3, 4}

	hiddenPos, err := geom.BallRandom(10, 10.0, rng.New(7))
	require.NoError(t, err)
	hiddenIdx := make([]int64, 10)
	for i := range hiddenIdx {
		hiddenIdx[i] = int64(5 + i)
	}

	coo, stagnated, err := raytrace.RaytraceDistanceLimited(cfg, stream, geom.Points{}, senderPos, hiddenPos, senderIdx, hiddenIdx, nil)
	require.NoError(t, err)
	assert.True(t, stagnated || coo.Len() >= 0)
	assert.NoError(t, coo.Validate())
}

func TestRaytraceDistanceLimitedDeterministic(t *testing.T) {
	cfg, err := model.New(20, 5, 5, 10.0, 0.5, 3.0, 50)
	require.NoError(t, err)

	senderPos, err := geom.SphereEven(5, 10.0)
	require.NoError(t, err)
	senderIdx := []int64{0, 1, 2, 3, 4}
	hiddenPos, err := geom.BallRandom(10, 10.0, rng.New(7))
	require.NoError(t, err)
	hiddenIdx := make([]int64, 10)
	for i := range hiddenIdx {
		hiddenIdx[i] = int64(5 + i)
	}

	a, _, err := raytrace.RaytraceDistanceLimited(cfg, rng.New(55), geom.Points{}, senderPos, hiddenPos, senderIdx, hiddenIdx, nil)
	require.NoError(t, err)
	b, _, err := raytrace.RaytraceDistanceLimited(cfg, rng.New(55), geom.Points{}, senderPos, hiddenPos, senderIdx, hiddenIdx, nil)
	require.NoError(t, err)

	assert.Equal(t, a.Rows, b.Rows)
	assert.Equal(t, a.Cols, b.Cols)
}
