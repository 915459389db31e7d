package lpmodel

import "math"

// varRecord is one variable's current lb=0/ub/cost; rows reference
// variables by their stable VarHandle (slice index), never by name.
type varRecord struct {
	kind VarKind
	ub   float64
	cost float64
}

// rowRecord is one user-declared row.
type rowRecord struct {
	sense  RowSense
	rhs    float64
	coeffs map[VarHandle]float64
}

// GonumEngine implements Engine over gonum's dense simplex solver
// (gonum.org/v1/gonum/optimize/convex/lp), converting `>=`/`<=` rows and
// variable upper bounds to equalities via slack variables exactly as the
// GoMILP reference's convertToEqualities does, and falling back to a
// branch-and-bound search over the LP relaxation for integer variables
// (solveMIP, reached through Solve), grounded on GoMILP's enumerationTree.
type GonumEngine struct {
	vars []varRecord
	rows []rowRecord

	primal []float64
	dual   []float64
}

// NewGonumEngine creates an empty model.
func NewGonumEngine() *GonumEngine {
	return &GonumEngine{}
}

// NewVariable implements Engine.
func (e *GonumEngine) NewVariable(kind VarKind, ub, cost float64) VarHandle {
	idx := VarHandle(len(e.vars))
	e.vars = append(e.vars, varRecord{kind: kind, ub: ub, cost: cost})

	return idx
}

// NewRow implements Engine.
func (e *GonumEngine) NewRow(sense RowSense, rhs float64) RowHandle {
	idx := RowHandle(len(e.rows))
	e.rows = append(e.rows, rowRecord{sense: sense, rhs: rhs, coeffs: make(map[VarHandle]float64)})

	return idx
}

// SetCoefficient implements Engine.
func (e *GonumEngine) SetCoefficient(row RowHandle, v VarHandle, coeff float64) {
	e.rows[row].coeffs[v] = coeff
}

// SetObjectiveCoefficient implements Engine.
func (e *GonumEngine) SetObjectiveCoefficient(v VarHandle, cost float64) {
	e.vars[v].cost = cost
}

// SetUpperBound implements Engine.
func (e *GonumEngine) SetUpperBound(v VarHandle, ub float64) {
	e.vars[v].ub = ub
}

// PrimalValue implements Engine.
func (e *GonumEngine) PrimalValue(v VarHandle) float64 {
	if int(v) >= len(e.primal) {
		return 0
	}

	return e.primal[v]
}

// RowDual implements Engine.
func (e *GonumEngine) RowDual(row RowHandle) float64 {
	if int(row) >= len(e.dual) {
		return 0
	}

	return e.dual[row]
}

func (e *GonumEngine) hasIntegerVars() bool {
	for _, v := range e.vars {
		if v.kind == VarInteger {
			return true
		}
	}

	return false
}

// Solve implements Engine, dispatching to the MIP branch-and-bound search
// unless the relaxation is explicitly requested or no variable is integral.
func (e *GonumEngine) Solve(opts SolveOptions) (Result, error) {
	if opts.LinearRelaxation || !e.hasIntegerVars() {
		return e.solveRelaxation(nil, opts)
	}

	return e.solveMIP(opts)
}

// bound is a variable's effective [lb, ub] for one solve, after any
// branch-and-bound tightening (lb defaults to 0, the model's universal
// lower bound).
type bound struct {
	lb, ub float64
}

func (e *GonumEngine) effectiveBound(v VarHandle, overrides map[VarHandle]bound) bound {
	if b, ok := overrides[v]; ok {
		return b
	}

	return bound{lb: 0, ub: e.vars[v].ub}
}

func isFinite(x float64) bool { return !math.IsInf(x, 1) && !math.IsInf(x, -1) }
