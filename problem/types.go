package problem

import (
	"errors"

	"github.com/flowlattice/genflow/gflow"
)

// Sentinel errors for problem construction.
var (
	// ErrInvalidDemandCapacity indicates demand > capacity, demand < 0, or
	// an infinite capacity was supplied to a commodity.
	ErrInvalidDemandCapacity = errors.New("problem: invalid demand/capacity for commodity")

	// ErrInvalidBounds indicates a constraint's lb > ub, or lb and ub are
	// both infinite, or the bounds are otherwise infeasible.
	ErrInvalidBounds = errors.New("problem: invalid constraint bounds")

	// ErrEmptyPop indicates Pop was called on an empty constraint stack.
	ErrEmptyPop = errors.New("problem: constraint stack is empty")
)

// CommodityIndex identifies a Commodity.
type CommodityIndex int

// Index implements idxmap.Indexed.
func (c CommodityIndex) Index() int { return int(c) }

// Commodity is a single-commodity flow requirement: source, sink, a
// minimum demand that must be delivered, a maximum capacity that may be
// delivered, and a penalty charged per unit of artificial slack if demand
// or capacity cannot be met exactly by priced columns.
//
// Invariant: 0 <= Demand <= Capacity < +Inf. Commodities are created with
// the problem and never mutated after Builder.Build.
type Commodity struct {
	Index            CommodityIndex
	Source, Sink     gflow.VertexIndex
	Demand, Capacity float64
	ViolationPenalty float64
}

// ConstraintType is the row sense of a SideConstraint.
type ConstraintType int

const (
	// GE is a >= RHS row.
	GE ConstraintType = iota
	// LE is a <= RHS row.
	LE
	// EQ is a = RHS row.
	EQ
)

func (t ConstraintType) String() string {
	switch t {
	case GE:
		return ">="
	case LE:
		return "<="
	case EQ:
		return "="
	default:
		return "?"
	}
}

// ConstraintIndex identifies a SideConstraint row.
type ConstraintIndex int

// Index implements idxmap.Indexed.
func (c ConstraintIndex) Index() int { return int(c) }

// SideConstraint is one generic linear row over arc flow variables:
// coefficients (arc -> real), a sense, an RHS, and a penalty on its
// artificial slack variable.
type SideConstraint struct {
	Index            ConstraintIndex
	Coeffs           map[gflow.ArcIndex]float64
	Type             ConstraintType
	RHS              float64
	ViolationPenalty float64
}
