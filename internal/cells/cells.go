package cells

import (
	"fmt"
	"math"

	"github.com/raybnn/topology/internal/geom"
	"github.com/raybnn/topology/internal/rng"
	"github.com/raybnn/topology/model"
)

// SphereEven places n cells evenly on the surface of a sphere. Thin
// pass-through to geom.SphereEven — kept as a named entry point so callers
// import one package per concern (cells for placement, geom for the
// underlying kernels).
func SphereEven(n int, radius float32) (geom.Points, error) {
	return geom.SphereEven(n, radius)
}

// BallRandom places n cells uniformly through the volume of a sphere,
// drawing from stream.
func BallRandom(n int, radius float32, stream *rng.Stream) (geom.Points, error) {
	return geom.BallRandom(n, radius, stream)
}

// bucketStep computes the pivot spacing and collision-cube size for n
// cells packed at model.TargetDensity inside a sphere of sphereRad,
// checked at neuronRad. Matches cells.cpp's check_all_collision_minibatch
// sizing exactly: step is the sphere volume times model.TargetDensity
// divided by n, and cubeSize adds 2.05*neuronRad*model.NeuronRadFactor to
// step so neighboring cubes overlap and a close pair is never split
// across buckets.
func bucketStep(n int, sphereRad, neuronRad float32) (step, cubeSize float32) {
	volume := (4.0 / 3.0) * math.Pi * float64(sphereRad) * float64(sphereRad) * float64(sphereRad)
	step = float32(volume * float64(model.TargetDensity) / float64(n))
	cubeSize = 2.05*neuronRad*model.NeuronRadFactor + step
	return step, cubeSize
}

// GeneratePivotTensor returns the pivot grid used to bucket n cells packed
// at model.TargetDensity inside a sphere of sphereRad, checked at
// neuronRad.
func GeneratePivotTensor(n int, sphereRad, neuronRad float32) (geom.Points, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive, got %d", ErrInvalidArgument, n)
	}
	step, _ := bucketStep(n, sphereRad, neuronRad)
	return geom.GeneratePivots(sphereRad, step)
}

// CheckAllCollisionMinibatch returns the subset of cellPos with no
// overlapping neighbor within neuronRad, resolved by bucketing cellPos
// into cube-shaped pivots sized for sphereRad and checking overlap only
// within each bucket — avoiding an O(N^2) all-pairs scan over the whole
// population. A cell flagged as colliding by any bucket it falls into is
// dropped, matching check_all_collision_minibatch's index_put_(..., false)
// accumulation.
func CheckAllCollisionMinibatch(cellPos geom.Points, sphereRad, neuronRad float32) (geom.Points, error) {
	if sphereRad <= 0 {
		return nil, fmt.Errorf("%w: sphere_rad must be positive, got %g", ErrInvalidArgument, sphereRad)
	}
	if neuronRad <= 0 {
		return nil, fmt.Errorf("%w: neuron_rad must be positive, got %g", ErrInvalidArgument, neuronRad)
	}
	if len(cellPos) == 0 {
		return geom.Points{}, nil
	}

	_, cubeSize := bucketStep(len(cellPos), sphereRad, neuronRad)
	pivots, err := GeneratePivotTensor(len(cellPos), sphereRad, neuronRad)
	if err != nil {
		return nil, err
	}

	keep := make([]bool, len(cellPos))
	for i := range keep {
		keep[i] = true
	}

	for _, pivot := range pivots {
		indicesCur := geom.FindInCube(cellPos, pivot, cubeSize)
		if len(indicesCur) < 2 {
			continue
		}
		pointsInCube := make(geom.Points, len(indicesCur))
		for k, idx := range indicesCur {
			pointsInCube[k] = cellPos[idx]
		}
		overlapLocal := geom.SelectOverlap(pointsInCube, neuronRad)
		for _, localIdx := range overlapLocal {
			keep[indicesCur[localIdx]] = false
		}
	}

	out := make(geom.Points, 0, len(cellPos))
	for i, p := range cellPos {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out, nil
}

// SplitRoles splits points into a neuron cohort (the first
// floor(fraction*len(points)) entries) and a glia cohort (the remainder),
// preserving input order within each cohort. fraction must be in [0,1].
func SplitRoles(fraction float32, points geom.Points) (neuronPos, gliaPos geom.Points, err error) {
	if fraction < 0 || fraction > 1 {
		return nil, nil, fmt.Errorf("%w: fraction must be in [0,1], got %g", ErrInvalidArgument, fraction)
	}
	cut := int(fraction * float32(len(points)))
	neuronPos = append(geom.Points{}, points[:cut]...)
	gliaPos = append(geom.Points{}, points[cut:]...)
	return neuronPos, gliaPos, nil
}
