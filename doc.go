// Package genflow solves multi-commodity generalized-flow problems —
// networks where an arc may consume or deliver flow at a ratio other than
// 1:1, and where flow can be required to route through multi-tail
// hyper-arcs rather than simple edges — by column generation over a
// restricted master problem, with branch-and-bound for integrality.
//
// Build a problem with problem.Builder, pick an lpmodel.Engine
// constructor, and call Optimize:
//
//	b := problem.NewBuilder()
//	s := b.NewVertex()
//	t := b.NewVertex()
//	_, _ = b.NewArc(s, t, problem.WithCost(1))
//	_, _ = b.NewCommodity(s, t, 5, 5)
//	p, _ := b.Build()
//
//	newEngine := func() lpmodel.Engine { return lpmodel.NewGonumEngine() }
//	sol, obj, err := genflow.Optimize(p, newEngine, genflow.Params{...})
//
// Subpackages:
//
//	gflow/    — arc, hyper-tree and vertex primitives shared everywhere
//	network/  — the arc-indexed topology a Problem is built over
//	problem/  — commodities, side constraints, and the builder façade
//	spath/    — generalized shortest-path pricing over a Network
//	colgen/   — the restricted master problem and its column-generation loop
//	branch/   — reduced-cost variable fixing and branch-and-bound
//	lpmodel/  — the black-box LP/MIP engine abstraction
//	solution/ — arc-flow and path-flow solution types and decomposition
package genflow
