package colgen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowlattice/genflow/colgen"
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

func defaultParams() colgen.Params {
	return colgen.Params{
		Basis:                       colgen.PathFlowBasis,
		Pricing:                     colgen.OptimalOnly,
		MinReducedCostToStop:        -1e-6,
		NumZeroFlowIterDeleteColumn: 3,
		DualRoundingPrecision:       6,
		MaxIterations:               50,
	}
}

func TestRun_SimpleChainConverges(t *testing.T) {
	p := buildChainProblem(t)

	res, err := colgen.Run(p, func() lpmodel.Engine { return lpmodel.NewGonumEngine() }, defaultParams(), nil, nil)
	require.NoError(t, err)
	require.Greater(t, res.Iterations, 0)

	total := 0.0
	for _, f := range res.Primal[0].Flow {
		total += f
	}
	require.Greater(t, total, 0.0)
}

func TestRun_ArcFlowBasisStillDeliversDemand(t *testing.T) {
	p := buildChainProblem(t)
	params := defaultParams()
	params.Basis = colgen.ArcFlowBasis

	res, err := colgen.Run(p, func() lpmodel.Engine { return lpmodel.NewGonumEngine() }, params, nil, nil)
	require.NoError(t, err)

	entry := res.Primal[0]
	require.NoError(t, entry.CheckConservation(p.Network()))
}
