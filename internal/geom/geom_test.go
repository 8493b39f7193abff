package geom_test

import (
	"math"
	"testing"

	"github.com/raybnn/topology/internal/geom"
	"github.com/raybnn/topology/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereEvenShape(t *testing.T) {
	pts, err := geom.SphereEven(50, 5.0)
	require.NoError(t, err)
	require.Len(t, pts, 50)

	for _, p := range pts {
		d := math.Sqrt(float64(p[0])*float64(p[0]) + float64(p[1])*float64(p[1]) + float64(p[2])*float64(p[2]))
		assert.InDelta(t, 5.0, d, 1e-3)
	}
}

func TestSphereEvenRejectsBadInput(t *testing.T) {
	_, err := geom.SphereEven(0, 5.0)
	require.ErrorIs(t, err, geom.ErrInvalidArgument)

	_, err = geom.SphereEven(10, 0)
	require.ErrorIs(t, err, geom.ErrInvalidArgument)
}

func TestBallRandomContainment(t *testing.T) {
	stream := rng.New(11)
	pts, err := geom.BallRandom(200, 3.0, stream)
	require.NoError(t, err)
	require.Len(t, pts, 200)

	for _, p := range pts {
		d := math.Sqrt(float64(p[0])*float64(p[0]) + float64(p[1])*float64(p[1]) + float64(p[2])*float64(p[2]))
		assert.LessOrEqual(t, d, 3.0+1e-6)
	}
}

func TestBallRandomDeterministicGivenSeed(t *testing.T) {
	a, err := geom.BallRandom(20, 2.0, rng.New(99))
	require.NoError(t, err)
	b, err := geom.BallRandom(20, 2.0, rng.New(99))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFindInCube(t *testing.T) {
	points := geom.Points{
		{1.5, 2.5, 2.5}, // inside [1,3)x[2,4)x[2,4)
		{1.0, 2.0, 2.0}, // inside, lower faces included
		{3.0, 2.0, 2.0}, // outside, upper face excluded on x
		{0.5, 2.0, 2.0}, // outside, below lower face on x
	}
	pivot := geom.Point{1, 2, 2}

	got := geom.FindInCube(points, pivot, 2.0)
	assert.Equal(t, []int64{0, 1}, got)

	gotTight := geom.FindInCube(points, pivot, 0.1)
	assert.Equal(t, []int64{1}, gotTight)
}

func TestSelectOverlap(t *testing.T) {
	points := geom.Points{
		{0, 0, 0},
		{1, 0, 0},
		{2, 0, 0},
		{100, 100, 100},
	}
	got := geom.SelectOverlap(points, 10.0)
	assert.Equal(t, []int64{0, 1, 2}, got)
}

func TestSelectOverlapNoSelfTrigger(t *testing.T) {
	points := geom.Points{{0, 0, 0}}
	got := geom.SelectOverlap(points, 1000.0)
	assert.Empty(t, got)
}

func TestGeneratePivotsCoversDomain(t *testing.T) {
	pivots, err := geom.GeneratePivots(4.0, 2.0)
	require.NoError(t, err)
	require.NotEmpty(t, pivots)

	for _, p := range pivots {
		for d := 0; d < 3; d++ {
			assert.GreaterOrEqual(t, p[d], float32(-4.0))
			assert.LessOrEqual(t, p[d], float32(4.0+1e-4))
		}
	}
}

func TestLineSphereIntersect(t *testing.T) {
	lineStart := geom.Points{{0, 0, 0}}
	lineEnd := geom.Points{{10, 0, 0}}
	blockCells := geom.Points{
		{5, 0, 0},  // directly on the segment
		{5, 100, 0}, // far off the segment
		{-5, 0, 0}, // behind the segment start
	}
	blockRadius := []float32{1.0, 1.0, 1.0}

	mask, err := geom.LineSphereIntersect(lineStart, lineEnd, blockCells, blockRadius)
	require.NoError(t, err)
	require.Len(t, mask, 3)

	assert.True(t, mask[0][0])
	assert.False(t, mask[1][0])
	assert.False(t, mask[2][0])
}

func TestLineSphereIntersectCoincidentEndpoints(t *testing.T) {
	lineStart := geom.Points{{1, 1, 1}}
	lineEnd := geom.Points{{1, 1, 1}}
	blockCells := geom.Points{{0, 0, 0}}
	blockRadius := []float32{1.0}

	_, err := geom.LineSphereIntersect(lineStart, lineEnd, blockCells, blockRadius)
	require.ErrorIs(t, err, geom.ErrCoincidentEndpoints)
}

func TestLineSphereIntersectLengthMismatch(t *testing.T) {
	lineStart := geom.Points{{0, 0, 0}}
	lineEnd := geom.Points{{1, 0, 0}, {2, 0, 0}}
	blockCells := geom.Points{{0, 0, 0}}
	blockRadius := []float32{1.0}

	_, err := geom.LineSphereIntersect(lineStart, lineEnd, blockCells, blockRadius)
	require.ErrorIs(t, err, geom.ErrInvalidArgument)
}
