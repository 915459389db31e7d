package colgen

import (
	"math"

	"github.com/flowlattice/genflow/gflow"
	"github.com/flowlattice/genflow/problem"
	"github.com/flowlattice/genflow/solution"
	"github.com/flowlattice/genflow/spath"
)

// Oracle holds one cached spath.Generator per commodity, reused across
// every column-generation iteration (spec §5: "ShortestPathGenerator is
// allocated once per commodity and reused across pricing iterations").
type Oracle struct {
	problem *problem.Problem
	gens    map[problem.CommodityIndex]*spath.Generator
}

// NewOracle builds a generator for every commodity in p.
func NewOracle(p *problem.Problem) (*Oracle, error) {
	gens := make(map[problem.CommodityIndex]*spath.Generator, len(p.Commodities()))
	for _, c := range p.Commodities() {
		gen, err := spath.NewGenerator(p.Network(), c.Source, c.Sink)
		if err != nil {
			return nil, err
		}
		gens[c.Index] = gen
	}

	return &Oracle{problem: p, gens: gens}, nil
}

// reducedCostFn builds the per-arc reduced cost function of spec §4.6
// step 1: cost(a) minus the side-constraint duals weighted by a's
// coefficients, minus the arc-capacity dual if a is capacitated.
func (o *Oracle) reducedCostFn(dual solution.DualSolution) spath.CostFn {
	return func(a gflow.ArcIndex) float64 {
		c := o.problem.Cost(a)
		for _, ac := range o.problem.ArcConstraintCoeffs(a) {
			c -= ac.Coeff * dual.ConstraintDual[ac.Constraint]
		}
		if o.problem.IsCapacitated(a) {
			c -= dual.ArcCapacityDual[a]
		}

		return c
	}
}

// columnVarType assigns the column's own LP integrality: Integer if any
// member arc is Integer (a fractional use of that arc would otherwise be
// representable through a fractional column variable), Continuous
// otherwise. This resolves an Open Question left unspecified by spec §4.5
// ("a (HyperTree, commodity, var-type, cost) quadruple" does not say how
// var-type is derived from the tree's member arcs).
func columnVarType(tree *gflow.HyperTree, p *problem.Problem) gflow.VarType {
	for _, a := range tree.Arcs() {
		if p.VarType(a) == gflow.Integer {
			return gflow.Integer
		}
	}

	return gflow.Continuous
}

func treeCost(tree *gflow.HyperTree, p *problem.Problem) float64 {
	var sum float64
	for _, a := range tree.Arcs() {
		mult, _ := tree.Multiplicity(a)
		sum += mult * p.Cost(a)
	}

	return sum
}

// reducedCostOfTree evaluates tree's own reduced cost against dual under
// rc: the sum of its member arcs' reduced costs weighted by multiplicity
// (which already prices in side-constraint and arc-capacity duals via
// rc), minus the commodity's demand+capacity dual contribution when the
// tree's head is that commodity's sink — the only row pair any column's
// head ever has a nonzero coefficient in besides conservation rows, which
// spec §4.6's reduced-cost formula does not price (their RHS is always 0
// and their dual contribution telescopes to zero across a column's own
// internal arcs, per the hyper-tree balance invariant).
func reducedCostOfTree(tree *gflow.HyperTree, commodity problem.Commodity, dual solution.DualSolution, rc spath.CostFn) float64 {
	var sum float64
	for _, a := range tree.Arcs() {
		mult, _ := tree.Multiplicity(a)
		sum += mult * rc(a)
	}
	if tree.Head() == commodity.Sink {
		sum -= dual.DemandDual[commodity.Index] + dual.CapacityDual[commodity.Index]
	}

	return sum
}

// PriceResult is one pricing pass's output: the columns to offer the RMP,
// plus the per-commodity state needed to compute the Lagrangian dual
// bound and per-arc min-objective for RCVF (spec §4.6).
type PriceResult struct {
	Columns        []Column
	SinkLabelValue map[problem.CommodityIndex]float64
	Solutions      map[problem.CommodityIndex]*spath.Solution
	CostFn         spath.CostFn
}

// Price runs the pricing oracle of spec §4.6 against dual: for each
// commodity, solves the cached generator under reduced costs, extracts
// the optimal s->t column, optionally runs the multi-path
// pseudo-complementary heuristic (skipped on hyper-graphs), projects
// columns to the configured basis, and filters to columns whose reduced
// cost is below minRC.
func (o *Oracle) Price(dual solution.DualSolution, basis BasisKind, pricing PricingKind, minRC float64) (PriceResult, error) {
	rc := o.reducedCostFn(dual)
	net := o.problem.Network()

	result := PriceResult{
		SinkLabelValue: make(map[problem.CommodityIndex]float64, len(o.gens)),
		Solutions:      make(map[problem.CommodityIndex]*spath.Solution, len(o.gens)),
		CostFn:         rc,
	}

	var candidates []*gflow.HyperTree
	var candidateCommodity []problem.CommodityIndex

	for _, commodity := range o.problem.Commodities() {
		gen, ok := o.gens[commodity.Index]
		if !ok {
			return PriceResult{}, ErrNoGenerator
		}
		sol := gen.Solve(rc)
		result.Solutions[commodity.Index] = sol
		result.SinkLabelValue[commodity.Index] = sol.ForwardLabel(commodity.Sink).Value

		if tree, err := sol.OptimalHyperTree(commodity.Sink, net); err == nil {
			candidates = append(candidates, tree)
			candidateCommodity = append(candidateCommodity, commodity.Index)
		}

		if pricing == OptimalPlusMultiPath && !net.IsHyperGraph() {
			for _, sc := range o.problem.Constraints() {
				arc, ok := bestSideConstraintArc(o.problem, sc, sol, net, rc)
				if !ok {
					continue
				}
				path, err := sol.MinUnitFlowPath(arc, net)
				if err != nil {
					continue
				}
				candidates = append(candidates, &path.HyperTree)
				candidateCommodity = append(candidateCommodity, commodity.Index)
			}
		}
	}

	if basis == ArcFlowBasis {
		candidates, candidateCommodity = projectToArcFlow(candidates, candidateCommodity, net)
	}

	for i, tree := range candidates {
		commodity := o.problem.Commodity(candidateCommodity[i])
		if reducedCostOfTree(tree, commodity, dual, rc) >= minRC {
			continue
		}
		result.Columns = append(result.Columns, Column{
			Tree:      tree,
			Commodity: commodity.Index,
			VarType:   columnVarType(tree, o.problem),
			Cost:      treeCost(tree, o.problem),
		})
	}

	return result, nil
}

// bestSideConstraintArc finds the arc with nonzero coefficient in sc and
// minimal min_unit_flow_cost under sol, per spec §4.6 step 4.
func bestSideConstraintArc(p *problem.Problem, sc problem.SideConstraint, sol *spath.Solution, net interface {
	HasArc(gflow.ArcIndex) bool
}, rc spath.CostFn) (gflow.ArcIndex, bool) {
	best := math.Inf(1)
	var bestArc gflow.ArcIndex
	found := false

	for a, coeff := range sc.Coeffs {
		if coeff == 0 || !net.HasArc(a) {
			continue
		}
		c, err := sol.MinUnitFlowCost(a, p.Network(), rc)
		if err != nil {
			continue
		}
		if c < best {
			best = c
			bestArc = a
			found = true
		}
	}

	return bestArc, found
}

// projectToArcFlow splits every candidate hyper-tree into one single-arc
// tree per member arc, per spec §4.6 step 5: "if the RMP basis is
// arc-flow, split each priced path into its constituent arc columns".
func projectToArcFlow(trees []*gflow.HyperTree, commodities []problem.CommodityIndex, lookup gflow.ArcLookup) ([]*gflow.HyperTree, []problem.CommodityIndex) {
	var outTrees []*gflow.HyperTree
	var outCommodities []problem.CommodityIndex

	for i, tree := range trees {
		for _, a := range tree.Arcs() {
			single, err := gflow.NewHyperTree(map[gflow.ArcIndex]float64{a: 1}, lookup)
			if err != nil {
				continue
			}
			outTrees = append(outTrees, single)
			outCommodities = append(outCommodities, commodities[i])
		}
	}

	return outTrees, outCommodities
}
