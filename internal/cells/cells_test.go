package cells_test

import (
	"testing"

	"github.com/raybnn/topology/internal/cells"
	"github.com/raybnn/topology/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePivotTensorNonEmpty(t *testing.T) {
	pivots, err := cells.GeneratePivotTensor(100, 5.0, 1.0)
	require.NoError(t, err)
	assert.NotEmpty(t, pivots)
}

func TestCheckAllCollisionMinibatchDropsOverlap(t *testing.T) {
	// A 3x3x3 lattice at unit spacing (neighbors 1.0 apart, outside the 0.9
	// radius) plus one point at the center of the lattice cell [0,1]^3: it
	// lies sqrt(0.75) ~ 0.87 from that cell's eight corners, so it and
	// those corners are dropped as colliding.
	var grid geom.Points
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				grid = append(grid, geom.Point{float32(x), float32(y), float32(z)})
			}
		}
	}
	grid = append(grid, geom.Point{0.5, 0.5, 0.5})

	kept, err := cells.CheckAllCollisionMinibatch(grid, 1.0, 0.9)
	require.NoError(t, err)
	assert.Less(t, len(kept), len(grid))
}

func TestCheckAllCollisionMinibatchEmptyInput(t *testing.T) {
	kept, err := cells.CheckAllCollisionMinibatch(geom.Points{}, 1.0, 0.5)
	require.NoError(t, err)
	assert.Empty(t, kept)
}

func TestSplitRoles(t *testing.T) {
	points := make(geom.Points, 9)
	for i := range points {
		idx := float32(i * 3)
		points[i] = geom.Point{idx, idx + 1, idx + 2}
	}

	neuronPos, gliaPos, err := cells.SplitRoles(0.5, points)
	require.NoError(t, err)
	assert.Len(t, neuronPos, 4)
	assert.Len(t, gliaPos, 5)
	assert.Equal(t, points[:4], neuronPos)
	assert.Equal(t, points[4:], gliaPos)
}

func TestSplitRolesRejectsOutOfRangeFraction(t *testing.T) {
	_, _, err := cells.SplitRoles(1.5, geom.Points{{0, 0, 0}})
	require.ErrorIs(t, err, cells.ErrInvalidArgument)
}
