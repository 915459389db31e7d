package lpmodel

import (
	"math"
	"time"
)

// solveMIP runs branch-and-bound over the LP relaxation, branching on the
// most-fractional integer variable and pruning by bound, grounded on the
// GoMILP reference's enumerationTree/startSearch shape (a stack of
// sub-problems expressed purely as extra variable bound overrides, so no
// row ever needs to be added or removed from the stored model).
func (e *GonumEngine) solveMIP(opts SolveOptions) (Result, error) {
	deadline := time.Time{}
	if opts.TimeLimit > 0 {
		deadline = time.Now().Add(opts.TimeLimit)
	}

	type node struct {
		overrides map[VarHandle]bound
	}

	stack := []node{{overrides: map[VarHandle]bound{}}}

	var (
		haveIncumbent bool
		incumbentObj  = math.Inf(1)
		incumbentX    []float64
		timedOut      bool
	)

	for len(stack) > 0 {
		if !deadline.IsZero() && time.Now().After(deadline) {
			timedOut = true
			break
		}

		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		res, err := e.solveRelaxation(cur.overrides, SolveOptions{LinearRelaxation: true})
		if err != nil {
			continue // infeasible sub-problem, prune
		}
		if haveIncumbent && res.ObjectiveValue >= incumbentObj {
			continue // bound prune
		}

		branchVar, frac, ok := e.mostFractional(cur.overrides)
		if !ok {
			// integer-feasible: candidate incumbent
			haveIncumbent = true
			incumbentObj = res.ObjectiveValue
			incumbentX = append([]float64(nil), e.primal...)

			continue
		}

		floor := math.Floor(frac)
		ceil := floor + 1

		left := cloneOverrides(cur.overrides)
		leftB := e.effectiveBound(branchVar, cur.overrides)
		leftB.ub = floor
		left[branchVar] = leftB

		right := cloneOverrides(cur.overrides)
		rightB := e.effectiveBound(branchVar, cur.overrides)
		rightB.lb = ceil
		right[branchVar] = rightB

		stack = append(stack, node{overrides: left}, node{overrides: right})
	}

	if !haveIncumbent {
		return Result{Status: StatusInfeasible}, ErrInfeasible
	}

	e.primal = incumbentX
	status := StatusOptimal
	if timedOut {
		status = StatusTimeLimit
	}

	return Result{Status: status, ObjectiveValue: incumbentObj}, nil
}

// mostFractional returns the integer variable whose relaxed value is
// farthest from an integer, for branching. ok is false when every integer
// variable is already integral (to the solver's tolerance).
func (e *GonumEngine) mostFractional(overrides map[VarHandle]bound) (VarHandle, float64, bool) {
	const tol = 1e-6

	best := VarHandle(-1)
	bestDist := tol
	bestVal := 0.0

	for i, v := range e.vars {
		if v.kind != VarInteger {
			continue
		}
		val := e.primal[i]
		dist := math.Abs(val - math.Round(val))
		if dist > bestDist {
			bestDist = dist
			best = VarHandle(i)
			bestVal = val
		}
	}

	if best < 0 {
		return 0, 0, false
	}

	return best, bestVal, true
}

func cloneOverrides(src map[VarHandle]bound) map[VarHandle]bound {
	out := make(map[VarHandle]bound, len(src)+1)
	for k, v := range src {
		out[k] = v
	}

	return out
}
