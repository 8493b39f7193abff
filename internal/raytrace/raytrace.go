package raytrace

import (
	"fmt"

	"github.com/raybnn/topology/internal/geom"
	"github.com/raybnn/topology/internal/rng"
	"github.com/raybnn/topology/internal/sparse"
	"github.com/raybnn/topology/model"
)

func distSq(a, b geom.Point) float64 {
	dx := float64(a[0]) - float64(b[0])
	dy := float64(a[1]) - float64(b[1])
	dz := float64(a[2]) - float64(b[2])
	return dx*dx + dy*dy + dz*dz
}

// FilterRays returns the subset of pts/idx within radius of target,
// ‖p − target‖² < radius², in input order. No sorting.
func FilterRays(radius float32, target geom.Point, pts geom.Points, idx []int64) (geom.Points, []int64, error) {
	if len(pts) != len(idx) {
		return nil, nil, fmt.Errorf("%w: pts/idx length mismatch (%d vs %d)", ErrInvalidArgument, len(pts), len(idx))
	}
	r2 := float64(radius) * float64(radius)

	var outPts geom.Points
	var outIdx []int64
	for i, p := range pts {
		if distSq(p, target) < r2 {
			outPts = append(outPts, p)
			outIdx = append(outIdx, idx[i])
		}
	}
	return outPts, outIdx, nil
}

// RaysFromAToB enumerates the cross-product of posA (senders) and posB
// (receivers) whose distance is below radius, returning four parallel
// arrays: tiled start (sender) positions, tiled end (receiver) positions,
// tiled sender ids, tiled receiver ids. Iteration order is receiver-major,
// sender-minor, matching a row-major scan of the [len(posB), len(posA)]
// pairwise mask.
func RaysFromAToB(radius float32, posA, posB geom.Points, idxA, idxB []int64) (lineStart, lineEnd geom.Points, senderIdx, receiverIdx []int64, err error) {
	if len(posA) != len(idxA) {
		return nil, nil, nil, nil, fmt.Errorf("%w: posA/idxA length mismatch (%d vs %d)", ErrInvalidArgument, len(posA), len(idxA))
	}
	if len(posB) != len(idxB) {
		return nil, nil, nil, nil, fmt.Errorf("%w: posB/idxB length mismatch (%d vs %d)", ErrInvalidArgument, len(posB), len(idxB))
	}
	r2 := float64(radius) * float64(radius)

	for m, b := range posB {
		for n, a := range posA {
			if distSq(a, b) < r2 {
				lineStart = append(lineStart, a)
				lineEnd = append(lineEnd, b)
				senderIdx = append(senderIdx, idxA[n])
				receiverIdx = append(receiverIdx, idxB[m])
			}
		}
	}
	return lineStart, lineEnd, senderIdx, receiverIdx, nil
}

// LineSphereIntersectBatch filters rays (lineStart, lineEnd, indexStart,
// indexEnd) down to those whose accumulated hit count against blockCells
// (radius blockRadius) does not exceed maxAllowedHits, processing
// blockCells in batches of batchSize along its own axis. Every
// prune_period batches — self-tuned as model.PruneCountLimit divided by
// the per-batch mask element count — rays already over threshold are
// dropped early, bounding both the remaining batches' work and peak
// memory. A final filter pass after the last batch enforces the
// threshold exactly.
func LineSphereIntersectBatch(batchSize, maxAllowedHits int64, blockCells geom.Points, blockRadius []float32, lineStart, lineEnd geom.Points, indexStart, indexEnd []int64) (geom.Points, geom.Points, []int64, []int64, error) {
	if len(blockCells) != len(blockRadius) {
		return nil, nil, nil, nil, fmt.Errorf("%w: blockCells/blockRadius length mismatch (%d vs %d)", ErrInvalidArgument, len(blockCells), len(blockRadius))
	}
	if len(lineStart) != len(lineEnd) || len(lineStart) != len(indexStart) || len(lineStart) != len(indexEnd) {
		return nil, nil, nil, nil, fmt.Errorf("%w: lineStart/lineEnd/indexStart/indexEnd length mismatch", ErrInvalidArgument)
	}
	if batchSize <= 0 {
		return nil, nil, nil, nil, fmt.Errorf("%w: batch_size must be positive, got %d", ErrInvalidArgument, batchSize)
	}

	hits := make([]int64, len(lineStart))
	numBlockCells := int64(len(blockCells))

	prunePeriod := int64(-1)
	pruneCount := int64(0)

	for i := int64(0); i < numBlockCells; i += batchSize {
		end := i + batchSize
		if end > numBlockCells {
			end = numBlockCells
		}
		batchCells := blockCells[i:end]
		batchRadius := blockRadius[i:end]

		if len(lineStart) == 0 {
			break
		}
		mask, err := geom.LineSphereIntersect(lineStart, lineEnd, batchCells, batchRadius)
		if err != nil {
			return nil, nil, nil, nil, err
		}

		numel := int64(len(batchCells)) * int64(len(lineStart))
		if prunePeriod == -1 {
			if numel > 0 {
				prunePeriod = model.PruneCountLimit / numel
				if prunePeriod < 1 {
					prunePeriod = 1
				}
			} else {
				prunePeriod = model.PruneCountLimit
			}
		}

		for j := range batchCells {
			for k := range lineStart {
				if mask[j][k] {
					hits[k]++
				}
			}
		}

		pruneCount++
		if pruneCount > prunePeriod && end < numBlockCells {
			lineStart, lineEnd, indexStart, indexEnd, hits = pruneByHits(lineStart, lineEnd, indexStart, indexEnd, hits, maxAllowedHits)
			pruneCount = 0
			prunePeriod = -1
		}
	}

	lineStart, lineEnd, indexStart, indexEnd, _ = pruneByHits(lineStart, lineEnd, indexStart, indexEnd, hits, maxAllowedHits)
	return lineStart, lineEnd, indexStart, indexEnd, nil
}

func pruneByHits(lineStart, lineEnd geom.Points, indexStart, indexEnd []int64, hits []int64, maxAllowedHits int64) (geom.Points, geom.Points, []int64, []int64, []int64) {
	outStart := make(geom.Points, 0, len(lineStart))
	outEnd := make(geom.Points, 0, len(lineEnd))
	outIdxStart := make([]int64, 0, len(indexStart))
	outIdxEnd := make([]int64, 0, len(indexEnd))
	outHits := make([]int64, 0, len(hits))

	for k := range lineStart {
		if hits[k] <= maxAllowedHits {
			outStart = append(outStart, lineStart[k])
			outEnd = append(outEnd, lineEnd[k])
			outIdxStart = append(outIdxStart, indexStart[k])
			outIdxEnd = append(outIdxEnd, indexEnd[k])
			outHits = append(outHits, hits[k])
		}
	}
	return outStart, outEnd, outIdxStart, outIdxEnd, outHits
}

// batchSize returns 1 + limit/n, the batching formula used throughout
// spec.md §4.3/§4.4 to bound an O(n*m) intermediate against a fixed
// element-count budget.
func batchSize(limit, n int64) int64 {
	if n <= 0 {
		return limit
	}
	return 1 + limit/n
}

// RaytraceDistanceLimited is the synthesis driver: it repeatedly samples a
// random locality, enumerates candidate sender-to-hidden rays within
// cfg.ConRad, rejects rays occluded by too many hidden neurons or glia,
// and appends the survivors to a growing COO, until cfg.RayMaxRounds
// elapses or more than cfg.MaxSameCounter consecutive rounds that reach
// the append step add nothing new (stagnation). If prior is non-nil its edges are merged in before the
// final dedup-and-sort. Returns the resulting COO and whether the loop
// ended via stagnation (true) or round exhaustion (false) — stagnation is
// normal control flow, not an error (spec.md §7).
func RaytraceDistanceLimited(cfg model.ModelData, stream *rng.Stream, gliaPos, senderPos, hiddenPos geom.Points, senderIdx, hiddenIdx []int64, prior *sparse.COO) (sparse.COO, bool, error) {
	if stream == nil {
		return sparse.COO{}, false, fmt.Errorf("%w: stream must not be nil", ErrInvalidArgument)
	}
	if len(senderPos) == 0 {
		return sparse.COO{}, false, fmt.Errorf("%w: senderPos must not be empty", ErrInvalidArgument)
	}
	if len(hiddenPos) != len(hiddenIdx) || len(senderPos) != len(senderIdx) {
		return sparse.COO{}, false, fmt.Errorf("%w: position/id length mismatch", ErrInvalidArgument)
	}

	var rows, cols []int64
	var vals []float32
	prevCount := 0
	stagnation := int64(0)
	stagnated := false

	gliaRadius := make([]float32, len(gliaPos))
	for i := range gliaRadius {
		gliaRadius[i] = cfg.NeuronRad
	}
	hiddenRadius := make([]float32, len(hiddenPos))
	for i := range hiddenRadius {
		hiddenRadius[i] = cfg.NeuronRad
	}

	for round := int64(0); round < cfg.RayMaxRounds; round++ {
		center := senderPos[stream.Intn(len(senderPos))]

		sPos, sIdx, err := FilterRays(2*cfg.ConRad, center, senderPos, senderIdx)
		if err != nil {
			return sparse.COO{}, false, err
		}
		if len(sPos) == 0 {
			continue
		}

		hPos, hIdx, err := FilterRays(cfg.ConRad, center, hiddenPos, hiddenIdx)
		if err != nil {
			return sparse.COO{}, false, err
		}
		if len(hPos) == 0 {
			continue
		}

		lineStart, lineEnd, candSender, candReceiver, err := RaysFromAToB(cfg.ConRad, sPos, hPos, sIdx, hIdx)
		if err != nil {
			return sparse.COO{}, false, err
		}
		if len(lineStart) == 0 {
			continue
		}

		if cfg.RayNeuronIntersect {
			b := batchSize(model.RaytraceLimit, int64(len(lineStart)))
			lineStart, lineEnd, candSender, candReceiver, err = LineSphereIntersectBatch(b, cfg.MaxAllowedHitsNeuron, hiddenPos, hiddenRadius, lineStart, lineEnd, candSender, candReceiver)
			if err != nil {
				return sparse.COO{}, false, err
			}
			if len(lineStart) == 0 {
				continue
			}
		}

		if len(gliaPos) > 0 {
			b := batchSize(model.RaytraceLimit, int64(len(lineStart)))
			lineStart, lineEnd, candSender, candReceiver, err = LineSphereIntersectBatch(b, cfg.MaxAllowedHitsGlia, gliaPos, gliaRadius, lineStart, lineEnd, candSender, candReceiver)
			if err != nil {
				return sparse.COO{}, false, err
			}
			if len(lineStart) == 0 {
				continue
			}
		}

		for k := range candSender {
			rows = append(rows, candReceiver[k])
			cols = append(cols, candSender[k])
			vals = append(vals, 0)
		}

		deduped, err := sparse.DedupAndSort(rows, cols, vals, cfg.NeuronSize)
		if err != nil {
			return sparse.COO{}, false, err
		}
		rows, cols, vals = deduped.Rows, deduped.Cols, deduped.Vals

		if len(rows) > prevCount {
			prevCount = len(rows)
			stagnation = 0
		} else {
			stagnation++
			if stagnation > cfg.MaxSameCounter {
				stagnated = true
				break
			}
		}
	}

	if prior != nil {
		rows = append(rows, prior.Rows...)
		cols = append(cols, prior.Cols...)
		vals = append(vals, prior.Vals...)
		deduped, err := sparse.DedupAndSort(rows, cols, vals, cfg.NeuronSize)
		if err != nil {
			return sparse.COO{}, false, err
		}
		return deduped, stagnated, nil
	}

	final, err := sparse.DedupAndSort(rows, cols, vals, cfg.NeuronSize)
	if err != nil {
		return sparse.COO{}, false, err
	}
	return final, stagnated, nil
}
