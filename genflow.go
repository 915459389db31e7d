// Package genflow re-exports the multi-commodity generalized-flow solver's
// external contract as a single import surface, in the manner of the
// teacher's root `graph` package re-exporting `core`/`matrix`/`algorithms`:
// a caller building problems with `problem.Builder` only needs this package
// and `lpmodel` (for the engine constructor) to solve and query a result.
package genflow

import (
	"time"

	"github.com/flowlattice/genflow/branch"
	"github.com/flowlattice/genflow/colgen"
	"github.com/flowlattice/genflow/gflow"
	"github.com/flowlattice/genflow/lpmodel"
	"github.com/flowlattice/genflow/problem"
	"github.com/flowlattice/genflow/solution"
)

// NewEngine constructs one scoped lpmodel.Engine per solve call. Callers
// pass this as the mip_solver parameter everywhere below.
type NewEngine = func() lpmodel.Engine

// Params configures Optimize's full branch-and-bound coordinator. The zero
// value is not usable: ArcToFamily must be supplied, and MaxBranchingLevels
// <= 0 degrades Optimize to a single exact MIP solve over the RCVF-filtered
// problem with no branching at all.
type Params = branch.Params

// OptimizeOption configures one Optimize call.
type OptimizeOption func(*Params)

// WithInitialColumns seeds every column-generation solve with a known-good
// set of columns (spec §6's optional initial_paths).
func WithInitialColumns(cols []colgen.Column) OptimizeOption {
	return func(p *Params) { p.InitialColumns = cols }
}

// WithObjCutoff overrides the starting incumbent bound used by reduced-cost
// variable fixing (spec §6's optional obj_cutoff). Default is whatever
// params.ObjCutoff already carries (+Inf for an unconstrained search).
func WithObjCutoff(cutoff float64) OptimizeOption {
	return func(p *Params) { p.ObjCutoff = cutoff }
}

// Optimize solves p to (within MaxBranchingLevels) provable optimality via
// the full branch-and-bound coordinator: LP relaxation by column
// generation, reduced-cost variable fixing, and unbalanced branching.
func Optimize(p *problem.Problem, newEngine NewEngine, params Params, opts ...OptimizeOption) (solution.PrimalSolution, float64, error) {
	for _, opt := range opts {
		opt(&params)
	}

	return branch.Run(p, params, newEngine)
}

// OptimizeByMIPSolver solves p directly as a single MIP, bypassing column
// generation and branching entirely: every arc in the network gets its own
// single-arc column, and the restricted master problem is solved once.
func OptimizeByMIPSolver(p *problem.Problem, newEngine NewEngine, timeLimit time.Duration) (solution.PrimalSolution, float64, error) {
	return branch.ExactMIP(p, newEngine, timeLimit, 6, false)
}

// OptimizeLinearRelaxation solves p's LP relaxation only, optionally via
// column generation (useColumnGeneration=true, the scalable path for large
// networks) or by enumerating one column per arc up front and solving a
// single relaxation directly (useColumnGeneration=false, simpler but only
// viable on small networks).
func OptimizeLinearRelaxation(p *problem.Problem, newEngine NewEngine, params colgen.Params, useColumnGeneration bool) (solution.PrimalSolution, float64, error) {
	if useColumnGeneration {
		res, err := colgen.Run(p, newEngine, params, nil, nil)
		if err != nil {
			return nil, 0, err
		}

		return res.Primal, res.Primal.ObjectiveValue(p.Cost), nil
	}

	return branch.ExactMIP(p, newEngine, 0, params.DualRoundingPrecision, true)
}

// FilterArcsByReducedCost solves p's LP relaxation by column generation and
// returns a Problem restricted to arcs whose per-arc min-objective does not
// exceed cutoff — reduced-cost variable fixing (spec §4.6) exposed as a
// standalone preprocessing step.
func FilterArcsByReducedCost(p *problem.Problem, newEngine NewEngine, cutoff float64) (*problem.Problem, error) {
	res, err := colgen.Run(p, newEngine, colgen.Params{
		Basis:                       colgen.PathFlowBasis,
		Pricing:                     colgen.OptimalOnly,
		MinReducedCostToStop:        -1e-6,
		NumZeroFlowIterDeleteColumn: 3,
		DualRoundingPrecision:       6,
	}, nil, nil)
	if err != nil {
		return nil, err
	}

	filteredNet := p.Network().FilterArcs(func(a gflow.Arc) bool {
		return res.MinObj(a.Index) <= cutoff
	})

	return branch.RebuildProblem(p, filteredNet)
}

// GetFlow returns the flow on arc a, summed across every commodity in sol.
func GetFlow(sol solution.PrimalSolution, a gflow.ArcIndex) float64 {
	return sol.TotalArcFlow(a)
}

// GetCommodityFlow returns commodity k's own flow on arc a in sol.
func GetCommodityFlow(sol solution.PrimalSolution, k problem.CommodityIndex, a gflow.ArcIndex) float64 {
	return sol[k].Flow[a]
}

// GetObjVal returns sol's total objective value under p's cost function.
func GetObjVal(p *problem.Problem, sol solution.PrimalSolution) float64 {
	return sol.ObjectiveValue(p.Cost)
}

// GetPathToFlowMap decomposes commodity k's arc-flow solution into a
// PathFlowSolution: a set of hyper-trees with non-negative intensities,
// equivalent under flow conservation to sol[k]'s per-arc flow.
func GetPathToFlowMap(p *problem.Problem, sol solution.PrimalSolution, k problem.CommodityIndex) (solution.PathFlowSolution, error) {
	return solution.Decompose(sol[k], p.Network())
}
