// Package network holds the Network type: an ordered collection of
// vertices and arcs derived from a problem, plus the structural queries
// column generation and pricing depend on — O(1) arc-membership testing,
// per-vertex outgoing-arc lists, topological ordering, and the hyper-graph
// flag (true iff any member arc has two or more tails).
//
// Topological sort is adapted from the teacher's dfs.TopologicalSort
// (white/gray/black DFS with on-stack cycle detection), generalized from
// single-tail edges to multi-tail arcs: a hyper-arc sits in every one of
// its tails' out-lists, so the reversed DFS post-order places each of its
// tails, not just one predecessor, before its head.
package network
