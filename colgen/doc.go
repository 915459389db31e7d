// Package colgen implements the restricted master problem (RMP), its
// Column objects, the reduced-cost pricing oracle, the Lagrangian dual
// bound, and the column-generation driver loop that together compute the
// LP relaxation of a multi-commodity generalized-flow Problem.
//
// The RMP's rows are demand/capacity per commodity, flow-conservation per
// (commodity, intermediate vertex) touched by at least one column,
// arc-capacity per capacitated arc, and one row per pushed side
// constraint; every row that can be violated at all carries a
// penalty-weighted artificial so the RMP is always feasible by
// construction. Run builds its own black-box lpmodel.Engine per call and
// uses it for the whole loop; the Engine interface has no release method,
// so nothing is torn down explicitly when Run returns.
package colgen
