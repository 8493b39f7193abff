package geom

import (
	"fmt"
	"math"

	"github.com/raybnn/topology/internal/rng"
	"gonum.org/v1/gonum/floats"
)

// Point is a single 3D position. Points is an ordered position tensor:
// shape [N,3], row index is the cell's stable identity within its cohort.
type Point = [3]float32

// Points is an ordered sequence of 3D positions, never reordered after
// placement.
type Points [][3]float32

// sub returns a-b as a float64 triple, widened for the reduction kernels
// below (gonum/floats operates on float64).
func sub(a, b Point) [3]float64 {
	return [3]float64{float64(a[0]) - float64(b[0]), float64(a[1]) - float64(b[1]), float64(a[2]) - float64(b[2])}
}

func sqNorm(v [3]float64) float64 {
	s := v[:]
	return floats.Dot(s, s)
}

// SphereEven produces n points evenly distributed on a sphere of the given
// radius using the golden-spiral (Fibonacci-lattice) construction.
// Deterministic given n: for i in [0,n), phi = arccos(1-2i/n),
// theta = i*pi*(3-sqrt(5)).
func SphereEven(n int, radius float32) (Points, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive, got %d", ErrInvalidArgument, n)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %g", ErrInvalidArgument, radius)
	}

	pts := make(Points, n)
	goldenAngle := math.Pi * (3.0 - math.Sqrt(5.0))
	fn := float64(n)
	for i := 0; i < n; i++ {
		phi := math.Acos(1.0 - 2.0*float64(i)/fn)
		theta := goldenAngle * float64(i)
		sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
		sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)
		r := float64(radius)
		pts[i] = Point{
			float32(r * sinPhi * cosTheta),
			float32(r * sinPhi * sinTheta),
			float32(r * cosPhi),
		}
	}
	return pts, nil
}

// BallRandom produces n points uniformly distributed in the open ball of
// the given radius, drawing exclusively from stream (spec.md §5/§9: one
// injectable RNG, never a hidden global).
func BallRandom(n int, radius float32, stream *rng.Stream) (Points, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive, got %d", ErrInvalidArgument, n)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %g", ErrInvalidArgument, radius)
	}
	if stream == nil {
		return nil, fmt.Errorf("%w: stream must not be nil", ErrInvalidArgument)
	}

	pts := make(Points, n)
	r := float64(radius)
	for i := 0; i < n; i++ {
		u := stream.Float64()
		v := stream.Float64()
		w := stream.Float64()

		radiusI := r * math.Cbrt(u)
		theta := 2.0 * math.Pi * v
		phi := math.Pi * w

		sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
		sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)
		pts[i] = Point{
			float32(radiusI * sinPhi * cosTheta),
			float32(radiusI * sinPhi * sinTheta),
			float32(radiusI * cosPhi),
		}
	}
	return pts, nil
}

// FindInCube returns the indices of points within the half-open
// axis-aligned cube [pivot, pivot+length) per axis — the lower face is
// included, the upper face excluded. This asymmetry is load-bearing (see
// spec.md §9 Open Question (b)): overlapping pivot cubes must cover the
// domain exactly once per axis, which only holds for a half-open test.
func FindInCube(points Points, pivot Point, length float32) []int64 {
	out := make([]int64, 0)
	for i, p := range points {
		inside := true
		for d := 0; d < 3; d++ {
			delta := p[d] - pivot[d]
			if !(delta < length && delta >= 0) {
				inside = false
				break
			}
		}
		if inside {
			out = append(out, int64(i))
		}
	}
	return out
}

// SelectOverlap returns the indices i such that there exists j != i with
// ||p_i - p_j|| < radius. The pair j == i is skipped, so a point never
// overlaps itself.
func SelectOverlap(points Points, radius float32) []int64 {
	n := len(points)
	radius2 := float64(radius) * float64(radius)
	out := make([]int64, 0)
	for i := 0; i < n; i++ {
		overlaps := false
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if sqNorm(sub(points[i], points[j])) < radius2 {
				overlaps = true
				break
			}
		}
		if overlaps {
			out = append(out, int64(i))
		}
	}
	return out
}

// GeneratePivots returns a deterministic [S^3,3] grid of pivot points
// covering [-sphereRad, sphereRad]^3 with the given step, used to bucket
// collision checks; each pivot is the lower corner of the cube FindInCube
// tests against it. Never persisted by callers.
func GeneratePivots(sphereRad, step float32) (Points, error) {
	if sphereRad <= 0 {
		return nil, fmt.Errorf("%w: sphere_rad must be positive, got %g", ErrInvalidArgument, sphereRad)
	}
	if step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive, got %g", ErrInvalidArgument, step)
	}

	const eps = 1e-5
	var axis []float32
	for v := -sphereRad; v <= sphereRad+eps; v += step {
		axis = append(axis, v)
	}
	s := len(axis)

	pivots := make(Points, 0, s*s*s)
	for _, x := range axis {
		for _, y := range axis {
			for _, z := range axis {
				pivots = append(pivots, Point{x, y, z})
			}
		}
	}
	return pivots, nil
}

// LineSphereIntersect tests each line segment [lineStart[i], lineEnd[i]]
// against each blocking sphere (blockCells[j], blockRadius[j]) by
// projecting (blockCells[j] - lineStart[i]) onto the segment direction,
// clamping the projection parameter to [0,1], and comparing the distance
// from the closest point on the segment to blockCells[j] against
// blockRadius[j]. Returns an [M,N] mask (M = len(blockCells), N =
// len(lineStart)) where mask[j][i] is true iff the segment intersects
// sphere j.
//
// lineStart[i] and lineEnd[i] must differ for every i; a coincident pair
// would divide by zero while computing the projection parameter and
// returns ErrCoincidentEndpoints instead. Spec.md §7 makes avoiding this
// the caller's responsibility via the con_rad filter applied to distinct
// neurons.
func LineSphereIntersect(lineStart, lineEnd, blockCells Points, blockRadius []float32) ([][]bool, error) {
	n := len(lineStart)
	if len(lineEnd) != n {
		return nil, fmt.Errorf("%w: lineStart/lineEnd length mismatch (%d vs %d)", ErrInvalidArgument, n, len(lineEnd))
	}
	m := len(blockCells)
	if len(blockRadius) != m {
		return nil, fmt.Errorf("%w: blockCells/blockRadius length mismatch (%d vs %d)", ErrInvalidArgument, m, len(blockRadius))
	}

	lineDir := make([][3]float64, n)
	lineDirSq := make([]float64, n)
	for i := 0; i < n; i++ {
		d := sub(lineEnd[i], lineStart[i])
		if d[0] == 0 && d[1] == 0 && d[2] == 0 {
			return nil, fmt.Errorf("%w: segment %d", ErrCoincidentEndpoints, i)
		}
		lineDir[i] = d
		lineDirSq[i] = sqNorm(d)
	}

	mask := make([][]bool, m)
	for j := 0; j < m; j++ {
		mask[j] = make([]bool, n)
		r2 := float64(blockRadius[j]) * float64(blockRadius[j])
		for i := 0; i < n; i++ {
			startToBlock := sub(blockCells[j], lineStart[i])
			dot := floats.Dot(startToBlock[:], lineDir[i][:])
			t := dot / lineDirSq[i]
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
			var closest [3]float64
			for d := 0; d < 3; d++ {
				closest[d] = float64(lineStart[i][d]) + t*lineDir[i][d]
			}
			blockToClosest := [3]float64{
				closest[0] - float64(blockCells[j][0]),
				closest[1] - float64(blockCells[j][1]),
				closest[2] - float64(blockCells[j][2]),
			}
			if sqNorm(blockToClosest) <= r2 {
				mask[j][i] = true
			}
		}
	}
	return mask, nil
}
