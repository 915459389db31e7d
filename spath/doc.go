// Package spath implements the bidirectional generalized shortest-path
// engine: forward label propagation (valid on hyper-graphs), backward
// label propagation (simple arcs only), the derived min-unit-flow queries
// used by the pricing oracle, and a Generator that caches the
// topologically-sorted traversal order and label buffers across repeated
// solves with new arc costs — the inner loop of column-generation pricing.
package spath
