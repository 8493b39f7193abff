// Package sparse implements the coordinate-list (COO) sparse adjacency
// primitives the rest of this module builds on: batched membership tests,
// bitmap-based unique reconstruction, and hash-key dedup-and-sort. The COO
// type itself is a plain three-parallel-slice record, shaped like
// james-bowman/sparse's coordinate matrix but narrowed to this module's
// int64 row/col, float32 value domain.
package sparse
