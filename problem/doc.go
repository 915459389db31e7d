// Package problem defines Problem: the immutable frame (network, per-arc
// cost/capacity/var-type, commodities) plus a mutable side-constraint
// stack that supports push/pop for branch-and-bound's right-branch
// constraint discipline.
//
// Problem exclusively owns vertices, arcs, side-constraint coefficient
// arrays and commodities (see Data Model, Ownership); every other
// component references them by index only.
//
// The per-arc secondary index of side-constraint coefficients
// ({(constraint-index, coefficient)} per arc) is kept in an
// idxmap.LinkedListMap so that popping a constraint is an O(k) walk that
// removes exactly the entries that constraint's push added, in LIFO
// order — never a full rescan of every arc.
package problem
