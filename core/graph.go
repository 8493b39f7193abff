// Package core holds the small directed-graph surface export needs to
// stand up an independent traversal oracle: just enough of a Graph
// (vertices, directed/weighted/looped edges) to let a test walk it with
// its own breadth-first search, none of the clone/view/adjacency-query
// machinery that nothing here exercises.
package core

import (
	"errors"
	"fmt"
	"sort"
)

// ErrEmptyVertexID indicates that the provided vertex ID is empty.
var ErrEmptyVertexID = errors.New("core: vertex ID is empty")

// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
var ErrVertexNotFound = errors.New("core: vertex not found")

// ErrBadWeight indicates a non-zero weight provided to an unweighted graph.
var ErrBadWeight = errors.New("core: bad weight for unweighted graph")

// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
var ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

// ErrDuplicateEdge indicates a parallel edge was attempted; this Graph never
// permits multi-edges.
var ErrDuplicateEdge = errors.New("core: parallel edge not allowed")

// GraphOption configures a Graph at construction time.
type GraphOption func(g *Graph)

// WithDirected sets the default directedness for all new edges.
func WithDirected(directed bool) GraphOption {
	return func(g *Graph) { g.directed = directed }
}

// WithWeighted allows non-zero edge weights in the Graph.
func WithWeighted() GraphOption {
	return func(g *Graph) { g.weighted = true }
}

// WithLoops permits self-loops (edges from a vertex to itself).
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// Graph is a minimal in-memory directed graph: vertex set plus an
// adjacency map from vertex to its outgoing edge weights.
type Graph struct {
	directed   bool
	weighted   bool
	allowLoops bool

	order     []string
	vertices  map[string]bool
	adjacency map[string]map[string]int64
}

// NewGraph creates an empty Graph with the given options applied in order.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices:  make(map[string]bool),
		adjacency: make(map[string]map[string]int64),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Weighted reports whether the graph treats edge weights as meaningful.
func (g *Graph) Weighted() bool { return g.weighted }

// AddVertex inserts a vertex if missing; idempotent.
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	if g.vertices[id] {
		return nil
	}
	g.vertices[id] = true
	g.order = append(g.order, id)
	g.adjacency[id] = make(map[string]int64)
	return nil
}

// HasVertex reports whether the vertex ID exists.
func (g *Graph) HasVertex(id string) bool {
	return g.vertices[id]
}

// Vertices returns all vertex IDs, sorted lexicographically for
// deterministic enumeration.
func (g *Graph) Vertices() []string {
	out := append([]string(nil), g.order...)
	sort.Strings(out)
	return out
}

// AddEdge adds a weighted edge from -> to, creating either endpoint vertex
// if it does not already exist, and mirroring the edge when the graph is
// undirected. It returns a stable edge identifier.
func (g *Graph) AddEdge(from, to string, weight int64) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if !g.weighted && weight != 0 {
		return "", ErrBadWeight
	}
	if from == to && !g.allowLoops {
		return "", ErrLoopNotAllowed
	}
	if err := g.AddVertex(from); err != nil {
		return "", err
	}
	if err := g.AddVertex(to); err != nil {
		return "", err
	}

	if _, exists := g.adjacency[from][to]; exists {
		return "", ErrDuplicateEdge
	}
	g.adjacency[from][to] = weight
	if !g.directed && from != to {
		g.adjacency[to][from] = weight
	}
	return fmt.Sprintf("%s->%s", from, to), nil
}

// NeighborIDs returns the sorted IDs reachable from id by one outgoing edge.
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	adj, ok := g.adjacency[id]
	if !ok {
		return nil, ErrVertexNotFound
	}
	out := make([]string, 0, len(adj))
	for to := range adj {
		out = append(out, to)
	}
	sort.Strings(out)
	return out, nil
}
