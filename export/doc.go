// Package export bridges a synthesized sparse.COO topology to the
// minimal core.Graph/matrix.Dense types for small-topology introspection
// and as an independent cross-check: ToDense re-expresses a COO as a
// matrix.Dense, and ToCoreGraph builds a *core.Graph that export_test.go
// walks with its own breadth-first search to cross-check
// internal/graphtopo's traversal.
package export
