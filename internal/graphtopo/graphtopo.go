package graphtopo

import (
	"fmt"
	"sort"

	"github.com/raybnn/topology/internal/sparse"
	"github.com/raybnn/topology/model"
)

// cooBatchSize returns the 1+limit/n batching formula shared by every COO
// membership test in this package (spec.md §4.4).
func cooBatchSize(n int) int64 {
	if n <= 0 {
		return model.CooFindLimit
	}
	return 1 + model.CooFindLimit/int64(n)
}

// TraverseForward returns the frontier reached by walking depth steps
// forward (column → row) from startIDs: at each step, collect the Rows of
// every edge whose Col is in the current frontier, deduplicate via
// sparse.FindUnique, and continue. Returns the frontier after depth
// steps, or the last nonempty frontier if it empties early.
func TraverseForward(coo sparse.COO, startIDs []int64, depth int64) ([]int64, error) {
	return traverse(coo, coo.Cols, coo.Rows, startIDs, depth)
}

// TraverseBackward is symmetric to TraverseForward, swapping the roles of
// row and column: it walks from a frontier to its predecessors (row →
// column).
func TraverseBackward(coo sparse.COO, startIDs []int64, depth int64) ([]int64, error) {
	return traverse(coo, coo.Rows, coo.Cols, startIDs, depth)
}

func traverse(coo sparse.COO, matchAgainst, collectFrom, startIDs []int64, depth int64) ([]int64, error) {
	if err := coo.Validate(); err != nil {
		return nil, err
	}
	if depth < 0 {
		return nil, fmt.Errorf("%w: depth must be non-negative, got %d", ErrInvalidArgument, depth)
	}

	outIdx := append([]int64{}, startIDs...)
	if len(matchAgainst) == 0 {
		return outIdx, nil
	}
	batchSize := cooBatchSize(len(matchAgainst))

	for d := int64(0); d < depth; d++ {
		valsel := sparse.FindBatch(outIdx, matchAgainst, batchSize)
		if len(valsel) == 0 {
			break
		}
		next := make([]int64, len(valsel))
		for i, edgeIdx := range valsel {
			next[i] = collectFrom[edgeIdx]
		}

		unique, err := sparse.FindUnique(next, coo.NeuronSize)
		if err != nil {
			return nil, err
		}
		if len(unique) == 0 {
			break
		}
		outIdx = unique
	}
	return outIdx, nil
}

// CheckConnected runs forward BFS from each input id separately to depth
// and, using batched COO membership, asserts that every output id appears
// in the reached frontier. Returns true iff all inputs reach all outputs.
func CheckConnected(coo sparse.COO, inputIDs, outputIDs []int64, depth int64) (bool, error) {
	if err := coo.Validate(); err != nil {
		return false, err
	}
	if len(outputIDs) == 0 {
		return false, fmt.Errorf("%w: outputIDs must not be empty", ErrInvalidArgument)
	}
	batchSize := cooBatchSize(len(outputIDs))

	for _, inputID := range inputIDs {
		reached, err := TraverseForward(coo, []int64{inputID}, depth)
		if err != nil {
			return false, err
		}
		detected := sparse.FindBatch(outputIDs, reached, batchSize)
		if len(detected) < len(outputIDs) {
			return false, nil
		}
	}
	return true, nil
}

// DeleteLoops removes edges that, within depth steps, would let a node in
// lastIDs path backward to a node in firstIDs. It walks backward
// (row → column) from lastIDs, tracking filterIdx = firstIDs ∪ lastIDs ∪
// visited intermediates; any predecessor already in filterIdx marks a
// back-edge (current node, predecessor) for deletion. After depth steps,
// the surviving edges are emitted in ascending composite-key order as a
// fresh sparse.COO.
func DeleteLoops(coo sparse.COO, lastIDs, firstIDs []int64, depth int64) (sparse.COO, error) {
	if err := coo.Validate(); err != nil {
		return sparse.COO{}, err
	}
	if depth < 0 {
		return sparse.COO{}, fmt.Errorf("%w: depth must be non-negative, got %d", ErrInvalidArgument, depth)
	}

	curIdx := append([]int64{}, lastIDs...)
	filterIdx := append(append([]int64{}, firstIDs...), lastIDs...)

	var killRows, killCols []int64

	for j := int64(0); j < depth; j++ {
		var nextIdx []int64
		for _, u := range curIdx {
			tempFirst, err := TraverseBackward(coo, []int64{u}, 1)
			if err != nil {
				return sparse.COO{}, err
			}
			if len(tempFirst) == 0 {
				continue
			}

			batchSize := cooBatchSize(len(tempFirst))
			detect := sparse.FindBatch(filterIdx, tempFirst, batchSize)
			if len(detect) > 0 {
				detected := make(map[int64]bool, len(detect))
				for _, edgeIdx := range detect {
					p := tempFirst[edgeIdx]
					killRows = append(killRows, u)
					killCols = append(killCols, p)
					detected[edgeIdx] = true
				}
				var kept []int64
				for i, v := range tempFirst {
					if !detected[int64(i)] {
						kept = append(kept, v)
					}
				}
				if len(kept) == 0 {
					continue
				}
				tempFirst = kept
			}

			nextIdx = append(nextIdx, tempFirst...)
			unique, err := sparse.FindUnique(nextIdx, coo.NeuronSize)
			if err != nil {
				return sparse.COO{}, err
			}
			nextIdx = unique
		}

		curIdx = append([]int64{}, nextIdx...)
		merged, err := sparse.FindUnique(append(append([]int64{}, nextIdx...), filterIdx...), coo.NeuronSize)
		if err != nil {
			return sparse.COO{}, err
		}
		filterIdx = merged
	}

	type edgeVal struct {
		row, col int64
		val      float32
	}
	full := make(map[int64]edgeVal, coo.Len())
	for k := range coo.Rows {
		key := coo.Rows[k]*coo.NeuronSize + coo.Cols[k]
		full[key] = edgeVal{coo.Rows[k], coo.Cols[k], coo.Vals[k]}
	}
	for i := range killRows {
		key := killRows[i]*coo.NeuronSize + killCols[i]
		delete(full, key)
	}

	keys := make([]int64, 0, len(full))
	for k := range full {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	outRows := make([]int64, len(keys))
	outCols := make([]int64, len(keys))
	outVals := make([]float32, len(keys))
	for i, k := range keys {
		e := full[k]
		outRows[i] = e.row
		outCols[i] = e.col
		outVals[i] = e.val
	}

	return sparse.COO{Rows: outRows, Cols: outCols, Vals: outVals, NeuronSize: coo.NeuronSize}, nil
}
