package problem_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowlattice/genflow/gflow"
	"github.com/flowlattice/genflow/problem"
)

func TestBuilder_SimpleChainWithCommodity(t *testing.T) {
	b := problem.NewBuilder()
	v1 := b.NewVertex()
	v2 := b.NewVertex()
	v3 := b.NewVertex()

	a1, err := b.NewArc(v1, v2, problem.WithCost(1))
	require.NoError(t, err)
	_, err = b.NewArc(v2, v3, problem.WithCost(2))
	require.NoError(t, err)

	_, err = b.NewCommodity(v1, v3, 5, 5)
	require.NoError(t, err)

	p, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 1.0, p.Cost(a1))
	require.Len(t, p.Commodities(), 1)
}

func TestBuilder_RejectsDemandGreaterThanCapacity(t *testing.T) {
	b := problem.NewBuilder()
	v1 := b.NewVertex()
	v2 := b.NewVertex()
	_, err := b.NewCommodity(v1, v2, 10, 5)
	require.ErrorIs(t, err, problem.ErrInvalidDemandCapacity)
}

func TestBuilder_RangedConstraintProducesTwoRows(t *testing.T) {
	b := problem.NewBuilder()
	v1 := b.NewVertex()
	v2 := b.NewVertex()
	a1, err := b.NewArc(v1, v2)
	require.NoError(t, err)

	h, err := b.NewConstraint(2, 8)
	require.NoError(t, err)
	b.SetConstraintCoefficient(h, a1, 1)

	p, err := b.Build()
	require.NoError(t, err)
	require.Len(t, p.Constraints(), 2)
}

func TestBuilder_EqualBoundsProduceEqualityRow(t *testing.T) {
	b := problem.NewBuilder()
	v1 := b.NewVertex()
	v2 := b.NewVertex()
	a1, err := b.NewArc(v1, v2)
	require.NoError(t, err)

	h, err := b.NewConstraint(5, 5)
	require.NoError(t, err)
	b.SetConstraintCoefficient(h, a1, 1)

	p, err := b.Build()
	require.NoError(t, err)
	require.Len(t, p.Constraints(), 1)
	require.Equal(t, problem.EQ, p.Constraints()[0].Type)
}

func TestProblem_PushPopRestoresExactState(t *testing.T) {
	b := problem.NewBuilder()
	v1 := b.NewVertex()
	v2 := b.NewVertex()
	a1, err := b.NewArc(v1, v2)
	require.NoError(t, err)

	p, err := b.Build()
	require.NoError(t, err)

	before := append([]problem.SideConstraint(nil), p.Constraints()...)
	beforeArcCoeffs := append([]problem.ArcCoeff(nil), p.ArcConstraintCoeffs(a1)...)

	p.Push(map[gflow.ArcIndex]float64{a1: 1}, problem.GE, 1, 1e4)
	require.NoError(t, p.Pop())

	require.Equal(t, before, p.Constraints())
	require.Equal(t, beforeArcCoeffs, p.ArcConstraintCoeffs(a1))
}

func TestProblem_PopEmptyStack(t *testing.T) {
	b := problem.NewBuilder()
	p, err := b.Build()
	require.NoError(t, err)
	require.ErrorIs(t, p.Pop(), problem.ErrEmptyPop)
}
