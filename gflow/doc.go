// Package gflow defines the generalized (hyper-)graph value types shared by
// every other package in genflow: Vertex, Arc, HyperTree and Path.
//
// Following the teacher's rule for decoupling ownership from reference
// (see DESIGN.md), Vertex and Arc are plain value types carrying a dense
// integer index; all relational and attribute data (cost, capacity,
// var-type, side-constraint coefficients) lives in IndexedMaps owned by
// the problem package, keyed by these indices. This avoids the cyclic
// object-reference graphs that the original network model used.
//
// A simple arc has exactly one (tail, multiplier) pair; a hyper-arc has
// two or more. The per-tail multiplier is the amount of flow consumed at
// that tail to produce one unit of flow arriving at the arc's head
// (generalized flow with gain/loss).
package gflow
