// Package solution holds the four solution value types — ArcFlowSolution,
// PathFlowSolution, PrimalSolution, DualSolution — and the arithmetic over
// them: flow-conservation checking, objective evaluation, and the flow
// decomposition that turns an ArcFlowSolution into an equivalent
// PathFlowSolution.
//
// Solutions own only their flow maps; they hold keys (ArcIndex,
// CommodityIndex) into the owning Problem's arcs and commodities, never
// copies of Problem data, matching the Ownership rule in the data model.
package solution
