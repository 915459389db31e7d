// Package branch implements the unbalanced branch-and-bound coordinator:
// solve the LP relaxation by column generation, apply reduced-cost
// variable fixing, check integer feasibility, fall back to an exact MIP
// solve when branching is disabled, or else partition arcs into families
// and branch on which families carry no flow at the fractional optimum.
//
// Run is structurally the generalized-flow analogue of the
// teacher's tsp.bbEngine: prune by bound (here, reduced-cost variable
// fixing instead of a degree-1 relaxation), branch over a precomputed
// order (here, arc families instead of tour neighbors), and record an
// incumbent (here, obj_cutoff instead of bestCost).
package branch
