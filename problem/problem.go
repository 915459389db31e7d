package problem

import (
	"math"

	"github.com/flowlattice/genflow/gflow"
	"github.com/flowlattice/genflow/idxmap"
	"github.com/flowlattice/genflow/network"
)

// ArcCoeff is one node of an arc's per-constraint coefficient
// list, as stored in Problem.arcConstraints.
type ArcCoeff struct {
	Constraint ConstraintIndex
	Coeff      float64
}

// Problem is the immutable frame (network, per-arc cost/capacity/var-type,
// commodities) plus a mutable side-constraint stack. The frame never
// changes after construction; only Push/Pop mutate the constraint stack,
// and only in matched pairs (the branch-and-bound coordinator is the sole
// caller that exercises this).
type Problem struct {
	net *network.Network

	cost     *idxmap.IndexedMap[gflow.ArcIndex, float64]
	capacity *idxmap.IndexedMap[gflow.ArcIndex, float64]
	varType  *idxmap.IndexedMap[gflow.ArcIndex, gflow.VarType]

	commodities []Commodity

	constraints    []SideConstraint
	arcConstraints *idxmap.LinkedListMap[ArcCoeff]
}

// New builds a Problem frame from a network and per-arc attribute maps.
// Any arc in net without an explicit entry in cost/capacity/varType
// defaults to cost 0, capacity +Inf, Continuous — mirroring the
// problem-builder façade's defaults (§6).
func New(
	net *network.Network,
	cost map[gflow.ArcIndex]float64,
	capacity map[gflow.ArcIndex]float64,
	varType map[gflow.ArcIndex]gflow.VarType,
	commodities []Commodity,
) (*Problem, error) {
	for _, c := range commodities {
		if err := validateCommodity(c); err != nil {
			return nil, err
		}
	}

	p := &Problem{
		net:            net,
		cost:           idxmap.NewIndexedMap[gflow.ArcIndex, float64](0),
		capacity:       idxmap.NewIndexedMap[gflow.ArcIndex, float64](math.Inf(1)),
		varType:        idxmap.NewIndexedMap[gflow.ArcIndex, gflow.VarType](gflow.Continuous),
		commodities:    append([]Commodity(nil), commodities...),
		arcConstraints: idxmap.NewLinkedListMap[ArcCoeff](len(net.ArcIndices())),
	}
	for idx, c := range cost {
		p.cost.Set(idx, c)
	}
	for idx, c := range capacity {
		p.capacity.Set(idx, c)
	}
	for idx, v := range varType {
		p.varType.Set(idx, v)
	}

	return p, nil
}

func validateCommodity(c Commodity) error {
	if c.Demand < 0 || c.Demand > c.Capacity || math.IsInf(c.Capacity, 1) {
		return ErrInvalidDemandCapacity
	}

	return nil
}

// Network returns the problem's (unfiltered) network frame.
func (p *Problem) Network() *network.Network { return p.net }

// Arc implements gflow.ArcLookup by delegating to the network.
func (p *Problem) Arc(a gflow.ArcIndex) (gflow.Arc, bool) { return p.net.Arc(a) }

// Cost returns arc a's cost coefficient.
func (p *Problem) Cost(a gflow.ArcIndex) float64 { return p.cost.Get(a) }

// Capacity returns arc a's capacity (may be +Inf, meaning uncapacitated).
func (p *Problem) Capacity(a gflow.ArcIndex) float64 { return p.capacity.Get(a) }

// IsCapacitated reports whether arc a has a finite capacity.
func (p *Problem) IsCapacitated(a gflow.ArcIndex) bool { return !math.IsInf(p.capacity.Get(a), 1) }

// VarType returns arc a's variable domain (Continuous or Integer).
func (p *Problem) VarType(a gflow.ArcIndex) gflow.VarType { return p.varType.Get(a) }

// Commodities returns every commodity in the problem, in creation order.
func (p *Problem) Commodities() []Commodity { return p.commodities }

// Commodity returns the commodity at idx.
func (p *Problem) Commodity(idx CommodityIndex) Commodity { return p.commodities[idx] }

// Constraints returns the currently pushed side constraints, bottom of
// stack first.
func (p *Problem) Constraints() []SideConstraint { return p.constraints }

// ArcConstraintCoeffs returns, for arc a, the (constraint, coefficient)
// pairs of every currently pushed constraint touching a, in
// reverse-push order (most recently pushed first).
func (p *Problem) ArcConstraintCoeffs(a gflow.ArcIndex) []ArcCoeff {
	return p.arcConstraints.Values(int(a))
}

// Push appends a side constraint to the stack, assigning it the next
// constraint index, and records its per-arc coefficients in the secondary
// index. Validates bounds are already resolved into a coherent
// (Type, RHS) by the caller (see Builder.NewConstraint for the
// lb/ub-to-rows resolution).
func (p *Problem) Push(coeffs map[gflow.ArcIndex]float64, typ ConstraintType, rhs float64, penalty float64) ConstraintIndex {
	idx := ConstraintIndex(len(p.constraints))
	sc := SideConstraint{Index: idx, Coeffs: coeffs, Type: typ, RHS: rhs, ViolationPenalty: penalty}
	p.constraints = append(p.constraints, sc)
	for arcIdx, coeff := range coeffs {
		p.arcConstraints.PushHead(int(arcIdx), ArcCoeff{Constraint: idx, Coeff: coeff})
	}

	return idx
}

// Pop removes the most recently pushed side constraint and its per-arc
// secondary-index entries, restoring the constraint list and the per-arc
// index to their exact pre-push state (property: matched push/pop pairs
// leave both bit-equal to before).
func (p *Problem) Pop() error {
	if len(p.constraints) == 0 {
		return ErrEmptyPop
	}
	top := p.constraints[len(p.constraints)-1]
	for arcIdx := range top.Coeffs {
		p.arcConstraints.PopHeadWhere(int(arcIdx), func(e ArcCoeff) bool {
			return e.Constraint == top.Index
		})
	}
	p.constraints = p.constraints[:len(p.constraints)-1]
	if len(p.constraints) == 0 {
		p.constraints = nil
	}

	return nil
}
