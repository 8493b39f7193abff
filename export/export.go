package export

import (
	"fmt"
	"math"
	"strconv"

	"github.com/raybnn/topology/core"
	"github.com/raybnn/topology/internal/sparse"
	"github.com/raybnn/topology/matrix"
)

// ToDense re-expresses coo as a dense NeuronSize x NeuronSize matrix,
// entry [row][col] = the edge weight from col (source) to row
// (destination), 0 where no edge exists. Intended for small topologies
// in tests and diagnostics; a synthesized network's NeuronSize makes a
// full dense allocation impractical at production scale.
func ToDense(coo sparse.COO) (*matrix.Dense, error) {
	if err := coo.Validate(); err != nil {
		return nil, err
	}
	n := int(coo.NeuronSize)
	dense, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	for k := range coo.Rows {
		if err := dense.Set(int(coo.Rows[k]), int(coo.Cols[k]), float64(coo.Vals[k])); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
	}
	return dense, nil
}

// ToCoreGraph builds a directed, weighted *core.Graph from coo: every
// global neuron id in [0, NeuronSize) becomes a vertex named by
// strconv.FormatInt, and every edge col->row (source to destination) is
// added with its weight rounded to the nearest int64, since core.Graph's
// edge weight is integral — this bridge is lossy by construction and is
// meant for connectivity cross-checks against an independent traversal,
// not for carrying synthesized weights faithfully.
func ToCoreGraph(coo sparse.COO) (*core.Graph, error) {
	if err := coo.Validate(); err != nil {
		return nil, err
	}

	g := core.NewGraph(core.WithDirected(true), core.WithWeighted(), core.WithLoops())
	for id := int64(0); id < coo.NeuronSize; id++ {
		if err := g.AddVertex(strconv.FormatInt(id, 10)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
	}
	for k := range coo.Rows {
		src := strconv.FormatInt(coo.Cols[k], 10)
		dst := strconv.FormatInt(coo.Rows[k], 10)
		weight := int64(math.Round(float64(coo.Vals[k])))
		if _, err := g.AddEdge(src, dst, weight); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
	}
	return g, nil
}
