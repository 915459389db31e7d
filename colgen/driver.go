package colgen

import (
	"log/slog"
	"math"

	"github.com/flowlattice/genflow/gflow"
	"github.com/flowlattice/genflow/internal/gio"
	"github.com/flowlattice/genflow/lpmodel"
	"github.com/flowlattice/genflow/problem"
	"github.com/flowlattice/genflow/solution"
)

// Result is one column-generation run's output: the LP relaxation's
// primal and dual solutions, the Lagrangian dual bound, and a per-arc
// min-objective query for reduced-cost variable fixing, per spec §4.7.
type Result struct {
	Primal          solution.PrimalSolution
	Dual            solution.DualSolution
	LagrangianBound float64
	Iterations      int

	minObj func(gflow.ArcIndex) float64
}

// MinObj returns the per-arc min-objective bound used for RCVF (spec
// §4.6's "per-arc min objective"): any arc with MinObj(a) > cutoff can be
// removed without discarding any feasible solution better than cutoff.
func (r Result) MinObj(a gflow.ArcIndex) float64 {
	if r.minObj == nil {
		return r.LagrangianBound
	}

	return r.minObj(a)
}

// Run executes the column-generation loop of spec §4.7 against p: builds
// a fresh lpmodel.Engine via newEngine for this call only (Run keeps no
// reference to it afterwards; the Engine interface has no release
// method, so no explicit release happens on any exit path), seeds the RMP with
// initialColumns, then alternates solving the RMP and pricing until
// pricing returns no improving columns or no priced column is actually
// new.
func Run(p *problem.Problem, newEngine func() lpmodel.Engine, params Params, initialColumns []Column, logger *slog.Logger) (result Result, err error) {
	if logger == nil {
		logger = gio.Discard()
	}

	oracle, err := NewOracle(p)
	if err != nil {
		return Result{}, err
	}

	engine := newEngine()
	rmp := NewRMP(p, engine)
	for _, c := range initialColumns {
		if _, addErr := rmp.AddColumn(c); addErr != nil {
			return Result{}, addErr
		}
	}

	maxIter := params.MaxIterations
	if maxIter <= 0 {
		maxIter = 10000
	}

	var (
		ldual float64
		price PriceResult
	)

	iterations := 0
	for ; iterations < maxIter; iterations++ {
		if _, solveErr := rmp.Solve(lpmodel.SolveOptions{LinearRelaxation: true}); solveErr != nil {
			return Result{}, solveErr
		}

		dual := rmp.ExtractDual(params.DualRoundingPrecision)

		price, err = oracle.Price(dual, params.Basis, params.Pricing, params.MinReducedCostToStop)
		if err != nil {
			return Result{}, err
		}
		ldual = lagrangianBound(p, dual, price.SinkLabelValue)

		logger.Info("colgen iteration",
			"iter", iterations,
			"ldual", ldual,
			"columns_priced", len(price.Columns))

		if len(price.Columns) == 0 {
			break
		}

		addedAny := false
		for _, c := range price.Columns {
			added, addErr := rmp.AddColumn(c)
			if addErr != nil {
				return Result{}, addErr
			}
			if added {
				addedAny = true
			}
		}
		if !addedAny {
			break
		}

		rmp.ApplyRetention(params.NumZeroFlowIterDeleteColumn)
	}

	if _, solveErr := rmp.Solve(lpmodel.SolveOptions{LinearRelaxation: true}); solveErr != nil {
		return Result{}, solveErr
	}

	result = Result{
		Primal:          rmp.ExtractPrimal(params.DualRoundingPrecision),
		Dual:            rmp.ExtractDual(params.DualRoundingPrecision),
		LagrangianBound: ldual,
		Iterations:      iterations,
		minObj:          buildMinObj(p, ldual, price),
	}

	return result, nil
}

// lagrangianBound implements spec §4.6's formula: the dual objective
// excluding commodity rows (arc-capacity and side-constraint rows; the
// conservation rows' RHS is always 0 so they never contribute) plus, per
// commodity, cost_k*capacity_k if cost_k is negative or cost_k*demand_k
// otherwise, where cost_k is that commodity's forward sink label under
// reduced costs.
func lagrangianBound(p *problem.Problem, dual solution.DualSolution, sinkLabel map[problem.CommodityIndex]float64) float64 {
	var sum float64
	for a, capacity := range arcCapacities(p) {
		sum += dual.ArcCapacityDual[a] * capacity
	}
	for _, sc := range p.Constraints() {
		sum += dual.ConstraintDual[sc.Index] * sc.RHS
	}
	for _, c := range p.Commodities() {
		costK := sinkLabel[c.Index]
		if costK < 0 {
			sum += costK * c.Capacity
		} else {
			sum += costK * c.Demand
		}
	}

	return sum
}

func arcCapacities(p *problem.Problem) map[gflow.ArcIndex]float64 {
	out := make(map[gflow.ArcIndex]float64)
	for _, a := range p.Network().ArcIndices() {
		if p.IsCapacitated(a) {
			out[a] = p.Capacity(a)
		}
	}

	return out
}

// buildMinObj closes over the last pricing pass's per-commodity
// solutions to implement spec §4.6's "per-arc min objective": for an
// integer-variable arc in a non-hyper graph, Ldual plus the minimum over
// commodities of that commodity's min_unit_flow_cost(a) under reduced
// costs; Ldual alone otherwise.
func buildMinObj(p *problem.Problem, ldual float64, price PriceResult) func(gflow.ArcIndex) float64 {
	return func(a gflow.ArcIndex) float64 {
		if p.Network().IsHyperGraph() || p.VarType(a) != gflow.Integer {
			return ldual
		}
		best := math.Inf(1)
		for _, sol := range price.Solutions {
			c, err := sol.MinUnitFlowCost(a, p.Network(), price.CostFn)
			if err == nil && c < best {
				best = c
			}
		}
		if math.IsInf(best, 1) {
			return ldual
		}

		return ldual + best
	}
}
