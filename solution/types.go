package solution

import (
	"errors"

	"github.com/flowlattice/genflow/gflow"
	"github.com/flowlattice/genflow/problem"
)

// Sentinel errors for solution construction and decomposition.
var (
	// ErrConservationViolated indicates an ArcFlowSolution fails the
	// per-vertex balance invariant at some intermediate vertex.
	ErrConservationViolated = errors.New("solution: flow conservation violated")

	// ErrDecompositionStuck indicates flow decomposition reached a vertex
	// that is neither the commodity source nor the head of any arc with
	// remaining residual flow.
	ErrDecompositionStuck = errors.New("solution: decomposition stuck at non-source vertex")

	// ErrNegativeFlow indicates a negative arc flow was supplied, which
	// is never valid for either a primal flow or a decomposed path value.
	ErrNegativeFlow = errors.New("solution: negative flow value")
)

// conservationEpsilon is the tolerance used when comparing inflow to
// outflow and when declaring a residual flow exhausted during
// decomposition.
const conservationEpsilon = 1e-7

// ArcFlowSolution is a single commodity's flow, expressed per arc: Flow[a]
// is the quantity delivered at a.Head (see gflow's multiplier convention —
// tail consumption is Flow[a] * the arc's per-tail multiplier).
type ArcFlowSolution struct {
	Commodity    problem.CommodityIndex
	Source, Sink gflow.VertexIndex
	Flow         map[gflow.ArcIndex]float64
}

// PathFlowEntry is one decomposed hyper-tree and the intensity at which it
// is used.
type PathFlowEntry struct {
	Tree  *gflow.HyperTree
	Value float64
}

// PathFlowSolution is a commodity's flow expressed as a sum of hyper-trees,
// each carrying a non-negative flow value, equivalent under flow
// decomposition to some ArcFlowSolution over the same commodity.
type PathFlowSolution struct {
	Commodity    problem.CommodityIndex
	Source, Sink gflow.VertexIndex
	Entries      []PathFlowEntry
}

// PrimalSolution collects one ArcFlowSolution per commodity.
type PrimalSolution map[problem.CommodityIndex]ArcFlowSolution

// DualSolution collects the dual multipliers produced by the restricted
// master problem: one per commodity demand row, one per commodity capacity
// row, one per side constraint, and one per capacitated arc.
type DualSolution struct {
	DemandDual      map[problem.CommodityIndex]float64
	CapacityDual    map[problem.CommodityIndex]float64
	ConstraintDual  map[problem.ConstraintIndex]float64
	ArcCapacityDual map[gflow.ArcIndex]float64
}
