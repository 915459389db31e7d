// Package idxmap provides dense, allocation-free containers keyed by small
// non-negative integer indices: IndexedMap[K,V] and LinkedListMap[T].
//
// Both containers exist to keep pricing and constraint bookkeeping
// allocation-free in hot loops (column generation re-solves the shortest
// path subproblem and rebuilds row coefficients every iteration); a
// map[int]V allocation per iteration would dominate runtime at the arc
// counts this library targets.
//
// IndexedMap trades memory (one slot per possible index, not per live key)
// for O(1) point access and O(1) logical Reset via a generation counter:
// Reset does not zero the backing array, it just bumps a counter so stale
// slots read back as the configured default until they are written again
// under the new generation.
//
// LinkedListMap keeps, for a fixed domain of integer list-ids, a family of
// singly-linked lists that all share one backing node arena. Nodes are only
// ever appended at the head, so undoing a batch of appends (as the
// constraint stack's push/pop does) is just walking from the head and
// popping nodes that match a predicate.
package idxmap
