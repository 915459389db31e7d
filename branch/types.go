package branch

import (
	"errors"
	"log/slog"
	"time"

	"github.com/flowlattice/genflow/colgen"
	"github.com/flowlattice/genflow/gflow"
)

// Sentinel errors for the branch-and-bound coordinator.
var (
	// ErrNoCommodities indicates a Problem with no commodities was
	// passed to Run (spec §4.8 step 1).
	ErrNoCommodities = errors.New("branch: problem has no commodities")
)

// FamilyFn classifies an arc into an integer family id for unbalanced
// branching (spec §4.8 step 7: "partition arcs into families by
// arc_to_family").
type FamilyFn func(gflow.ArcIndex) int

// Params configures one branch-and-bound run.
type Params struct {
	// CG configures the column-generation LP relaxation solved at every
	// node.
	CG colgen.Params

	// ObjCutoff is the incumbent upper bound; arcs with
	// min_obj(a) > ObjCutoff are fixed out by RCVF. Start at +Inf for an
	// unconstrained search.
	ObjCutoff float64

	// RightBranchPenalty is the violation penalty on the artificial
	// side constraint pushed by the right branch.
	RightBranchPenalty float64

	// FeasTol is the tolerance used both for "is this LP solution
	// integer-feasible" and "does this family carry zero flow".
	FeasTol float64

	// ArcToFamily classifies arcs for unbalanced branching.
	ArcToFamily FamilyFn

	// InitialColumns seeds every column-generation solve at every branch
	// level, letting a caller warm-start from a known-good path set.
	InitialColumns []colgen.Column

	// MaxBranchingLevels bounds recursion depth; <= 0 means "solve the
	// filtered problem exactly, right here, with the MIP solver" (spec
	// §4.8 step 6).
	MaxBranchingLevels int

	// MIPTimeLimit bounds the exact MIP solver's wall-clock time at
	// leaves and at the max-branching-levels fallback.
	MIPTimeLimit time.Duration

	// IntegerValued, when true, means every cost/demand/capacity in the
	// problem is integral, so a left-branch incumbent's objective can be
	// tightened by 1 when updating ObjCutoff (spec §4.8 step 7's "minus
	// 1 if the problem is certified integer-valued").
	IntegerValued bool

	// Logger receives one line per column-generation iteration at every
	// node; nil means discard.
	Logger *slog.Logger
}
