package branch_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/flowlattice/genflow/branch"
	"github.com/flowlattice/genflow/colgen"
	"github.com/flowlattice/genflow/gflow"
	"github.com/flowlattice/genflow/lpmodel"
	"github.com/flowlattice/genflow/problem"
)

func buildChainProblem(t *testing.T) *problem.Problem {
	t.Helper()
	b := problem.NewBuilder()
	v0 := b.NewVertex()
	v1 := b.NewVertex()
	v2 := b.NewVertex()

	_, err := b.NewArc(v0, v1, problem.WithCost(1))
	require.NoError(t, err)
	_, err = b.NewArc(v1, v2, problem.WithCost(1))
	require.NoError(t, err)

	_, err = b.NewCommodity(v0, v2, 5, 5)
	require.NoError(t, err)

	p, err := b.Build()
	require.NoError(t, err)

	return p
}

func defaultParams() branch.Params {
	return branch.Params{
		CG: colgen.Params{
			Basis:                       colgen.PathFlowBasis,
			Pricing:                     colgen.OptimalOnly,
			MinReducedCostToStop:        -1e-6,
			NumZeroFlowIterDeleteColumn: 3,
			DualRoundingPrecision:       6,
			MaxIterations:               50,
		},
		ObjCutoff:          1e9,
		RightBranchPenalty: 1e3,
		FeasTol:            1e-6,
		ArcToFamily:        func(a gflow.ArcIndex) int { return int(a) },
		MaxBranchingLevels: 3,
		MIPTimeLimit:       time.Second,
	}
}

func newEngine() lpmodel.Engine { return lpmodel.NewGonumEngine() }

func TestRun_NoCommodities(t *testing.T) {
	b := problem.NewBuilder()
	v0 := b.NewVertex()
	v1 := b.NewVertex()
	_, err := b.NewArc(v0, v1)
	require.NoError(t, err)
	p, err := b.Build()
	require.NoError(t, err)

	_, _, err = branch.Run(p, defaultParams(), newEngine)
	require.ErrorIs(t, err, branch.ErrNoCommodities)
}

func TestRun_ContinuousChainIsIntegerFeasibleAtRoot(t *testing.T) {
	p := buildChainProblem(t)

	primal, obj, err := branch.Run(p, defaultParams(), newEngine)
	require.NoError(t, err)
	require.InDelta(t, 10.0, obj, 1e-4)

	total := 0.0
	for _, f := range primal[0].Flow {
		total += f
	}
	require.InDelta(t, 10.0, total, 1e-4)
}

func TestRun_BranchingDisabledStillSolvesAnIntegerFeasibleRoot(t *testing.T) {
	p := buildChainProblem(t)
	params := defaultParams()
	params.MaxBranchingLevels = 0

	primal, obj, err := branch.Run(p, params, newEngine)
	require.NoError(t, err)
	require.InDelta(t, 10.0, obj, 1e-4)
	require.NotEmpty(t, primal[0].Flow)
}

func TestRun_IntegerArcRespectsVarType(t *testing.T) {
	b := problem.NewBuilder()
	v0 := b.NewVertex()
	v1 := b.NewVertex()

	_, err := b.NewArc(v0, v1, problem.WithCost(2), problem.WithVarType(gflow.Integer))
	require.NoError(t, err)

	_, err = b.NewCommodity(v0, v1, 3, 3)
	require.NoError(t, err)

	p, err := b.Build()
	require.NoError(t, err)

	params := defaultParams()
	primal, obj, err := branch.Run(p, params, newEngine)
	require.NoError(t, err)
	require.InDelta(t, 6.0, obj, 1e-4)

	total := 0.0
	for _, f := range primal[0].Flow {
		total += f
	}
	require.InDelta(t, 3.0, total, 1e-4)
}
