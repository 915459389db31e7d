package branch

import (
	"math"
	"time"

	"github.com/flowlattice/genflow/colgen"
	"github.com/flowlattice/genflow/gflow"
	"github.com/flowlattice/genflow/internal/gio"
	"github.com/flowlattice/genflow/lpmodel"
	"github.com/flowlattice/genflow/network"
	"github.com/flowlattice/genflow/problem"
	"github.com/flowlattice/genflow/solution"
)

// Run is the entry point of spec §4.8's branch-and-bound coordinator.
func Run(p *problem.Problem, params Params, newEngine func() lpmodel.Engine) (solution.PrimalSolution, float64, error) {
	if len(p.Commodities()) == 0 {
		return nil, 0, ErrNoCommodities
	}
	if len(p.Network().ArcIndices()) == 0 {
		return emptySolution(p), 0, nil
	}

	logger := params.Logger
	if logger == nil {
		logger = gio.Discard()
	}

	cg, err := colgen.Run(p, newEngine, params.CG, params.InitialColumns, logger)
	if err != nil {
		return nil, 0, err
	}

	filteredNet := p.Network().FilterArcs(func(a gflow.Arc) bool {
		return cg.MinObj(a.Index) <= params.ObjCutoff
	})
	if len(filteredNet.ArcIndices()) == 0 {
		return emptySolution(p), 0, nil
	}
	filtered, err := RebuildProblem(p, filteredNet)
	if err != nil {
		return nil, 0, err
	}

	if integerFeasible(cg.Primal, filtered, params.FeasTol) {
		return cg.Primal, cg.Primal.ObjectiveValue(filtered.Cost), nil
	}

	if params.MaxBranchingLevels <= 0 {
		return ExactMIP(filtered, newEngine, params.MIPTimeLimit, params.CG.DualRoundingPrecision, false)
	}

	return unbalancedBranch(filtered, params, cg.Primal, newEngine)
}

func emptySolution(p *problem.Problem) solution.PrimalSolution {
	out := make(solution.PrimalSolution, len(p.Commodities()))
	for _, c := range p.Commodities() {
		out[c.Index] = solution.ArcFlowSolution{
			Commodity: c.Index,
			Source:    c.Source,
			Sink:      c.Sink,
			Flow:      map[gflow.ArcIndex]float64{},
		}
	}

	return out
}

// integerFeasible checks that each commodity's own flow on every
// Integer-typed arc is within FeasTol of an integer (spec §4.8 step 5).
func integerFeasible(p solution.PrimalSolution, prob *problem.Problem, tol float64) bool {
	for _, entry := range p {
		for a, v := range entry.Flow {
			if prob.VarType(a) != gflow.Integer {
				continue
			}
			if math.Abs(v-math.Round(v)) > tol {
				return false
			}
		}
	}

	return true
}

// RebuildProblem constructs a new Problem over net carrying forward p's
// cost/capacity/var-type for every arc net contains, and replaying p's
// currently pushed side constraints in order, so FilterArcs'd networks
// (RCVF, left/right branches) stay coherent Problems.
func RebuildProblem(p *problem.Problem, net *network.Network) (*problem.Problem, error) {
	cost := make(map[gflow.ArcIndex]float64, len(net.ArcIndices()))
	capacity := make(map[gflow.ArcIndex]float64, len(net.ArcIndices()))
	varType := make(map[gflow.ArcIndex]gflow.VarType, len(net.ArcIndices()))
	for _, a := range net.ArcIndices() {
		cost[a] = p.Cost(a)
		capacity[a] = p.Capacity(a)
		varType[a] = p.VarType(a)
	}

	out, err := problem.New(net, cost, capacity, varType, p.Commodities())
	if err != nil {
		return nil, err
	}
	for _, sc := range p.Constraints() {
		out.Push(sc.Coeffs, sc.Type, sc.RHS, sc.ViolationPenalty)
	}

	return out, nil
}

// ExactMIP builds a non-restricted RMP with one column per (commodity,
// arc) and solves it directly, per spec §4.8 step 6. It reuses colgen.RMP
// rather than duplicating row-construction logic: a direct solve over a
// fixed arc set is exactly a restricted master problem whose column set
// happens to be "every arc", so no pricing iteration is needed. When
// relaxed is true the integrality of every arc is ignored (used by
// OptimizeLinearRelaxation's non-column-generation path); otherwise
// GonumEngine dispatches to its branch-and-bound MIP search whenever any
// arc is Integer.
func ExactMIP(p *problem.Problem, newEngine func() lpmodel.Engine, timeLimit time.Duration, precision int, relaxed bool) (solution.PrimalSolution, float64, error) {
	engine := newEngine()
	rmp := colgen.NewRMP(p, engine)

	for _, a := range p.Network().ArcIndices() {
		tree, err := gflow.NewHyperTree(map[gflow.ArcIndex]float64{a: 1}, p.Network())
		if err != nil {
			continue
		}
		for _, c := range p.Commodities() {
			_, _ = rmp.AddColumn(colgen.Column{
				Tree:      tree,
				Commodity: c.Index,
				VarType:   p.VarType(a),
				Cost:      p.Cost(a),
			})
		}
	}

	res, err := rmp.Solve(lpmodel.SolveOptions{TimeLimit: timeLimit, LinearRelaxation: relaxed})
	if err != nil {
		return nil, 0, err
	}

	return rmp.ExtractPrimal(precision), res.ObjectiveValue, nil
}

func unbalancedBranch(p *problem.Problem, params Params, lpPrimal solution.PrimalSolution, newEngine func() lpmodel.Engine) (solution.PrimalSolution, float64, error) {
	totals := make(map[int]float64)
	for _, entry := range lpPrimal {
		for a, v := range entry.Flow {
			totals[params.ArcToFamily(a)] += v
		}
	}

	var branchSet []gflow.ArcIndex
	branching := make(map[gflow.ArcIndex]bool)
	for _, a := range p.Network().ArcIndices() {
		if totals[params.ArcToFamily(a)] < params.FeasTol {
			branchSet = append(branchSet, a)
			branching[a] = true
		}
	}

	leftNet := p.Network().FilterArcs(func(a gflow.Arc) bool { return !branching[a.Index] })
	leftProblem, err := RebuildProblem(p, leftNet)
	if err != nil {
		return nil, 0, err
	}
	leftPrimal, leftObj, leftErr := ExactMIP(leftProblem, newEngine, params.MIPTimeLimit, params.CG.DualRoundingPrecision, false)

	newCutoff := params.ObjCutoff
	if leftErr == nil {
		adjusted := leftObj
		if params.IntegerValued {
			adjusted--
		}
		if adjusted < newCutoff {
			newCutoff = adjusted
		}
	}

	coeffs := make(map[gflow.ArcIndex]float64, len(branchSet))
	for _, a := range branchSet {
		coeffs[a] = 1
	}
	p.Push(coeffs, problem.GE, 1, params.RightBranchPenalty)
	rightParams := params
	rightParams.MaxBranchingLevels--
	rightParams.ObjCutoff = newCutoff
	rightPrimal, rightObj, rightErr := Run(p, rightParams, newEngine)
	_ = p.Pop()

	switch {
	case leftErr != nil && rightErr != nil:
		return nil, 0, leftErr
	case leftErr != nil:
		return rightPrimal, rightObj, nil
	case rightErr != nil:
		return leftPrimal, leftObj, nil
	case rightObj < leftObj:
		return rightPrimal, rightObj, nil
	default:
		return leftPrimal, leftObj, nil
	}
}
