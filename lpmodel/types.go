package lpmodel

import (
	"errors"
	"time"
)

// Sentinel errors for the LP/MIP engine.
var (
	// ErrUnknownVariable indicates a VarHandle not created by this Engine.
	ErrUnknownVariable = errors.New("lpmodel: unknown variable handle")

	// ErrUnknownRow indicates a RowHandle not created by this Engine.
	ErrUnknownRow = errors.New("lpmodel: unknown row handle")

	// ErrInfeasible indicates the model (or its integer relaxation) has no
	// feasible point.
	ErrInfeasible = errors.New("lpmodel: infeasible")

	// ErrUnbounded indicates the model's objective is unbounded below.
	ErrUnbounded = errors.New("lpmodel: unbounded")
)

// VarKind is a variable's integrality domain.
type VarKind int

const (
	// VarContinuous allows any value in [lb, ub].
	VarContinuous VarKind = iota
	// VarInteger restricts the variable to integers in [lb, ub].
	VarInteger
)

// RowSense is a row's comparison operator against its right-hand side.
type RowSense int

const (
	RowGE RowSense = iota
	RowLE
	RowEQ
)

// VarHandle identifies a variable created by Engine.NewVariable.
type VarHandle int

// RowHandle identifies a row created by Engine.NewRow.
type RowHandle int

// Status classifies a Solve outcome.
type Status int

const (
	// StatusOptimal: a provably optimal solution was found.
	StatusOptimal Status = iota
	// StatusTimeLimit: the time limit was reached before proving
	// optimality; Result still carries the best incumbent found, if any.
	StatusTimeLimit
	// StatusInfeasible: no feasible point exists.
	StatusInfeasible
	// StatusUnbounded: the objective is unbounded below.
	StatusUnbounded
)

// SolveOptions configures one Solve call.
type SolveOptions struct {
	// LinearRelaxation, when true, ignores every variable's integrality
	// and solves the continuous relaxation.
	LinearRelaxation bool
	// TimeLimit bounds wall-clock solve time; zero means unbounded.
	TimeLimit time.Duration
	// Silent suppresses any engine-internal diagnostic output.
	Silent bool
}

// Result is a Solve call's outcome.
type Result struct {
	Status         Status
	ObjectiveValue float64
}

// Engine is the black-box LP/MIP capability set required by column
// generation and branch-and-bound (spec §6): variable and row creation,
// coefficient/bound editing, solve (optionally as a pure linear
// relaxation), and primal/dual retrieval.
type Engine interface {
	// NewVariable adds a variable with lb=0, the given upper bound
	// (+Inf for unbounded) and objective cost, with zero coefficient in
	// every existing row.
	NewVariable(kind VarKind, ub, cost float64) VarHandle

	// NewRow adds a row ax {>=,<=,=} rhs with zero coefficients.
	NewRow(sense RowSense, rhs float64) RowHandle

	// SetCoefficient sets v's coefficient in row.
	SetCoefficient(row RowHandle, v VarHandle, coeff float64)

	// SetObjectiveCoefficient sets v's cost coefficient.
	SetObjectiveCoefficient(v VarHandle, cost float64)

	// SetUpperBound sets v's upper bound (+Inf for unbounded).
	SetUpperBound(v VarHandle, ub float64)

	// Solve solves the current model under opts.
	Solve(opts SolveOptions) (Result, error)

	// PrimalValue returns v's value in the last Solve's solution.
	PrimalValue(v VarHandle) float64

	// RowDual returns row's dual (shadow price) in the last Solve's
	// solution. Meaningful only after a non-integer (relaxation) solve.
	RowDual(row RowHandle) float64
}
