package lpmodel

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// slackRow is one row of the standard-form system built by solveRelaxation,
// shared with solveDual since the dual only ever operates on a sub-slice of
// the same rows.
type slackRow struct {
	coeffs map[int]float64 // column -> coefficient, columns < n are original vars
	rhs    float64
}

// solveRelaxation builds the standard-form system min c^Tx s.t. Ax=b, x>=0
// by converting every user row's sense and every variable's upper bound
// into an equality with a slack/surplus column, exactly as the GoMILP
// reference's convertToEqualities does, then calls gonum's dense simplex.
// overrides tightens bounds for one branch-and-bound node without touching
// the stored model.
func (e *GonumEngine) solveRelaxation(overrides map[VarHandle]bound, _ SolveOptions) (Result, error) {
	n := len(e.vars)

	var rows []slackRow
	nextCol := n

	// User-declared rows first, in row-handle order, so dual[i] lines up
	// with RowHandle(i) after solving.
	for _, r := range e.rows {
		sr := slackRow{coeffs: make(map[int]float64, len(r.coeffs)+1), rhs: r.rhs}
		for v, c := range r.coeffs {
			sr.coeffs[int(v)] = c
		}
		switch r.sense {
		case RowGE:
			// ax - surplus = b, surplus >= 0
			sr.coeffs[nextCol] = -1
			nextCol++
		case RowLE:
			// ax + slack = b, slack >= 0
			sr.coeffs[nextCol] = 1
			nextCol++
		case RowEQ:
			// no slack needed
		}
		rows = append(rows, sr)
	}
	declaredRows := len(rows)

	// Finite upper bounds (model or branch override) become extra equality
	// rows x_i + slack = ub, since gonum's Simplex has no native bounds.
	// A nonzero lower bound is folded in as a shifted upper bound on
	// (x_i - lb) by tightening the row's rhs; x_i itself still ranges over
	// [0, ub] in the column space and the lb is enforced by an added row
	// x_i >= lb converted the same way as a user RowGE row would be.
	for i := 0; i < n; i++ {
		b := e.effectiveBound(VarHandle(i), overrides)
		if isFinite(b.ub) {
			sr := slackRow{coeffs: map[int]float64{i: 1, nextCol: 1}, rhs: b.ub}
			nextCol++
			rows = append(rows, sr)
		}
		if b.lb > 0 {
			sr := slackRow{coeffs: map[int]float64{i: 1, nextCol: -1}, rhs: b.lb}
			nextCol++
			rows = append(rows, sr)
		}
	}

	totalCols := nextCol
	A := mat.NewDense(len(rows), totalCols, nil)
	b := make([]float64, len(rows))
	c := make([]float64, totalCols)
	for i := 0; i < n; i++ {
		c[i] = e.vars[i].cost
	}
	for i, r := range rows {
		rhs := r.rhs
		coeffs := r.coeffs
		if rhs < 0 {
			// gonum's Simplex assumes b >= 0; flip the row's sign.
			rhs = -rhs
			flipped := make(map[int]float64, len(coeffs))
			for col, v := range coeffs {
				flipped[col] = -v
			}
			coeffs = flipped
		}
		b[i] = rhs
		for col, v := range coeffs {
			A.Set(i, col, v)
		}
	}

	z, x, err := lp.Simplex(nil, c, A, b, 0)
	if err != nil {
		return Result{Status: StatusInfeasible}, ErrInfeasible
	}

	e.primal = make([]float64, n)
	copy(e.primal, x[:n])

	e.dual = make([]float64, declaredRows)
	dualY, dualErr := e.solveDual(rows[:declaredRows], c, totalCols)
	if dualErr == nil {
		copy(e.dual, dualY)
	}

	return Result{Status: StatusOptimal, ObjectiveValue: z}, nil
}

// solveDual recovers shadow prices for the declared rows by solving the
// LP dual max b^Ty s.t. A^Ty <= c (y free) as a second simplex call, with
// y split into its positive and negative parts since gonum's Simplex
// requires nonnegative variables. Only the declared rows participate: the
// bound-encoding rows added by solveRelaxation have no spec-level meaning
// and are folded into the dual's c vector as fixed contributions of zero
// since their rhs columns aren't part of b^Ty here.
func (e *GonumEngine) solveDual(declared []slackRow, primalCost []float64, totalCols int) ([]float64, error) {
	m := len(declared)
	if m == 0 {
		return nil, nil
	}

	// columns: y+_0..y+_{m-1}, y-_0..y-_{m-1}, one slack per original
	// column's constraint sum_i A_ij (y+_i - y-_i) <= c_j.
	n := totalCols
	cols := 2*m + n
	A := mat.NewDense(n, cols, nil)
	rhs := make([]float64, n)
	obj := make([]float64, cols)
	bvec := make([]float64, m)
	for i, row := range declared {
		bvec[i] = row.rhs
		obj[i] = -row.rhs   // minimize -b^T y+
		obj[m+i] = row.rhs  // + b^T y- term
	}
	for j := 0; j < n; j++ {
		rhs[j] = primalCost[j]
		for i, row := range declared {
			v, ok := row.coeffs[j]
			if !ok {
				continue
			}
			A.Set(j, i, v)
			A.Set(j, m+i, -v)
		}
		A.Set(j, 2*m+j, 1) // slack
	}
	for j := 0; j < n; j++ {
		if rhs[j] < 0 {
			rhs[j] = -rhs[j]
			for k := 0; k < cols; k++ {
				A.Set(j, k, -A.At(j, k))
			}
		}
	}

	_, y, err := lp.Simplex(nil, obj, A, rhs, 0)
	if err != nil {
		return nil, err
	}

	out := make([]float64, m)
	for i := 0; i < m; i++ {
		out[i] = y[i] - y[m+i]
	}

	return out, nil
}
