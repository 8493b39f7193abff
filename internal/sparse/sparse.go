package sparse

import (
	"fmt"
	"sort"
)

// COO is a coordinate-list sparse adjacency: three parallel slices of
// equal length K. Rows[k]/Cols[k] are destination/source neuron global
// ids; Vals[k] is the edge weight. NeuronSize bounds every id to
// [0, NeuronSize).
type COO struct {
	Rows       []int64
	Cols       []int64
	Vals       []float32
	NeuronSize int64
}

// New builds a COO from parallel slices and validates it against its own
// canonical-form invariants before returning.
func New(rows, cols []int64, vals []float32, neuronSize int64) (COO, error) {
	c := COO{Rows: rows, Cols: cols, Vals: vals, NeuronSize: neuronSize}
	if err := c.Validate(); err != nil {
		return COO{}, err
	}
	return c, nil
}

// Len returns the edge count K.
func (c COO) Len() int { return len(c.Rows) }

// compositeKey returns the canonical sort/uniqueness key for edge k:
// row*NeuronSize + col.
func (c COO) compositeKey(k int) int64 {
	return c.Rows[k]*c.NeuronSize + c.Cols[k]
}

// Validate reports ErrPreconditionViolated unless the triple is unique on
// (Rows, Cols), sorted ascending by the composite key, and every id lies
// in [0, NeuronSize). It does not reject self-loops (Rows[k] == Cols[k]):
// that exclusion is a property of how raytrace enumerates candidate
// pairs, not of the COO's own canonical form — dedup-and-sort's own
// round-trip (spec.md testable property 7) produces a self-loop pair
// when given one.
func (c COO) Validate() error {
	if len(c.Rows) != len(c.Cols) || len(c.Rows) != len(c.Vals) {
		return fmt.Errorf("%w: Rows/Cols/Vals length mismatch (%d/%d/%d)", ErrInvalidArgument, len(c.Rows), len(c.Cols), len(c.Vals))
	}
	if c.NeuronSize <= 0 {
		return fmt.Errorf("%w: neuron_size must be positive, got %d", ErrInvalidArgument, c.NeuronSize)
	}
	var prevKey int64
	for k := range c.Rows {
		if c.Rows[k] < 0 || c.Rows[k] >= c.NeuronSize || c.Cols[k] < 0 || c.Cols[k] >= c.NeuronSize {
			return fmt.Errorf("%w: edge %d out of bounds (row=%d, col=%d, neuron_size=%d)", ErrPreconditionViolated, k, c.Rows[k], c.Cols[k], c.NeuronSize)
		}
		key := c.compositeKey(k)
		if k > 0 {
			if key == prevKey {
				return fmt.Errorf("%w: duplicate edge at composite key %d", ErrPreconditionViolated, key)
			}
			if key < prevKey {
				return fmt.Errorf("%w: edges not sorted ascending by composite key (at index %d)", ErrPreconditionViolated, k)
			}
		}
		prevKey = key
	}
	return nil
}

// FindBatch returns the indices into needles whose value equals some
// element of haystack, sorted descending. haystack is loaded once into a
// hash set and needles are checked against it in chunks of batchSize, one
// lookup per needle; the result is exact and does not depend on the
// chunking.
func FindBatch(haystack, needles []int64, batchSize int64) []int64 {
	if batchSize <= 0 {
		batchSize = int64(len(needles))
		if batchSize == 0 {
			batchSize = 1
		}
	}

	present := make(map[int64]struct{}, len(haystack))
	for _, v := range haystack {
		present[v] = struct{}{}
	}

	var out []int64
	for start := int64(0); start < int64(len(needles)); start += batchSize {
		end := start + batchSize
		if end > int64(len(needles)) {
			end = int64(len(needles))
		}
		for i := start; i < end; i++ {
			if _, ok := present[needles[i]]; ok {
				out = append(out, i)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

// FindUnique marks every value of arr in a boolean table of length
// domainSize and returns the indices of set bits in ascending order.
func FindUnique(arr []int64, domainSize int64) ([]int64, error) {
	if domainSize <= 0 {
		return nil, fmt.Errorf("%w: domain_size must be positive, got %d", ErrInvalidArgument, domainSize)
	}
	table := make([]bool, domainSize)
	for _, v := range arr {
		if v < 0 || v >= domainSize {
			return nil, fmt.Errorf("%w: value %d out of domain [0,%d)", ErrInvalidArgument, v, domainSize)
		}
		table[v] = true
	}
	out := make([]int64, 0, len(arr))
	for i, set := range table {
		if set {
			out = append(out, int64(i))
		}
	}
	return out, nil
}

// DedupAndSort reduces parallel (row, col, val) arrays to their unique
// (row, col) pairs in ascending composite-key order via the hash-key
// reduction h = row*(neuronSize+1) + col: the modulus neuronSize+1 must
// strictly exceed the maximum observed col to avoid aliasing between
// distinct pairs, which holds here since every col is a valid neuron id
// in [0, neuronSize). When duplicate pairs carry different values, the
// first occurrence in input order wins.
func DedupAndSort(rows, cols []int64, vals []float32, neuronSize int64) (COO, error) {
	if len(rows) != len(cols) || len(rows) != len(vals) {
		return COO{}, fmt.Errorf("%w: rows/cols/vals length mismatch (%d/%d/%d)", ErrInvalidArgument, len(rows), len(cols), len(vals))
	}
	modulus := neuronSize + 1

	firstVal := make(map[int64]float32, len(rows))
	keys := make([]int64, 0, len(rows))
	seen := make(map[int64]bool, len(rows))
	for k := range rows {
		if cols[k] >= modulus {
			return COO{}, fmt.Errorf("%w: col %d exceeds hash modulus %d", ErrInvalidArgument, cols[k], modulus)
		}
		h := rows[k]*modulus + cols[k]
		if !seen[h] {
			seen[h] = true
			firstVal[h] = vals[k]
			keys = append(keys, h)
		}
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	outRows := make([]int64, len(keys))
	outCols := make([]int64, len(keys))
	outVals := make([]float32, len(keys))
	for i, h := range keys {
		outRows[i] = h / modulus
		outCols[i] = h % modulus
		outVals[i] = firstVal[h]
	}

	return COO{Rows: outRows, Cols: outCols, Vals: outVals, NeuronSize: neuronSize}, nil
}
