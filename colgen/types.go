package colgen

import (
	"errors"

	"github.com/flowlattice/genflow/gflow"
	"github.com/flowlattice/genflow/problem"
)

// Sentinel errors for column generation.
var (
	// ErrNoGenerator indicates Price found no cached shortest-path
	// generator for a commodity (one absent when the Oracle was built).
	// Errors from building a generator, such as a cyclic network, are
	// returned by NewOracle as-is.
	ErrNoGenerator = errors.New("colgen: could not build shortest-path generator for commodity")
)

// BasisKind selects what an RMP variable represents.
type BasisKind int

const (
	// PathFlowBasis: one RMP variable per priced hyper-tree/path.
	PathFlowBasis BasisKind = iota
	// ArcFlowBasis: every priced path is split into one RMP variable per
	// constituent arc before being added (spec §4.6 step 5, "basis
	// projection").
	ArcFlowBasis
)

// PricingKind selects which pricing heuristics run each iteration.
type PricingKind int

const (
	// OptimalOnly prices only the cheapest s->t column per commodity.
	OptimalOnly PricingKind = iota
	// OptimalPlusMultiPath additionally runs the multi-path
	// pseudo-complementary heuristic over side constraints (skipped on
	// hyper-graphs regardless of this setting).
	OptimalPlusMultiPath
)

// Column is a (hyper-tree, commodity, var-type, cost) quadruple priced
// against the current dual solution and offered to the RMP.
type Column struct {
	Tree      *gflow.HyperTree
	Commodity problem.CommodityIndex
	VarType   gflow.VarType
	Cost      float64
}

// Params configures one column-generation run.
type Params struct {
	Basis   BasisKind
	Pricing PricingKind

	// MinReducedCostToStop is the (negative) reduced-cost tolerance: a
	// column prices in only if its reduced cost is strictly below this
	// value. A typical value is a small negative number, e.g. -1e-6.
	MinReducedCostToStop float64

	// NumZeroFlowIterDeleteColumn: columns with value 0 for more than
	// this many consecutive iterations become eligible for deletion.
	NumZeroFlowIterDeleteColumn int

	// DualRoundingPrecision is the number of decimal digits primal and
	// dual values are rounded to on extraction, for numerical stability.
	DualRoundingPrecision int

	// MaxIterations bounds the loop as a defensive backstop against a
	// pricing/retention cycle that never converges due to numerical
	// noise; it is not part of the termination rule itself (that is
	// "no improving columns"), purely an engineering safety net in the
	// spirit of the teacher's sparse deadline-check idiom.
	MaxIterations int
}
