package spath_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowlattice/genflow/gflow"
	"github.com/flowlattice/genflow/network"
	"github.com/flowlattice/genflow/spath"
)

const (
	v0 = gflow.VertexIndex(0)
	v1 = gflow.VertexIndex(1)
	v2 = gflow.VertexIndex(2)
	v3 = gflow.VertexIndex(3)
)

func buildChain(t *testing.T) (*network.Network, []gflow.Arc) {
	t.Helper()
	a0, err := gflow.NewSimpleArc(0, v0, 1, v1)
	require.NoError(t, err)
	a1, err := gflow.NewSimpleArc(1, v1, 1, v2)
	require.NoError(t, err)
	a2, err := gflow.NewSimpleArc(2, v0, 1, v2) // shortcut arc, cost will be higher
	require.NoError(t, err)

	net, err := network.New([]gflow.VertexIndex{v0, v1, v2}, []gflow.Arc{a0, a1, a2})
	require.NoError(t, err)

	return net, []gflow.Arc{a0, a1, a2}
}

func TestGenerator_ForwardPicksCheaperRoute(t *testing.T) {
	net, _ := buildChain(t)
	gen, err := spath.NewGenerator(net, v0, v2)
	require.NoError(t, err)

	cost := func(a gflow.ArcIndex) float64 {
		switch a {
		case 0:
			return 1
		case 1:
			return 1
		case 2:
			return 10
		}

		return 0
	}
	sol := gen.Solve(cost)
	require.InDelta(t, 2.0, sol.ForwardLabel(v2).Value, 1e-9)
	require.Equal(t, gflow.ArcIndex(1), sol.ForwardLabel(v2).Arc)
}

func TestGenerator_BackwardAndMinUnitFlow(t *testing.T) {
	net, _ := buildChain(t)
	gen, err := spath.NewGenerator(net, v0, v2)
	require.NoError(t, err)

	cost := func(a gflow.ArcIndex) float64 {
		switch a {
		case 0:
			return 1
		case 1:
			return 1
		case 2:
			return 10
		}

		return 0
	}
	sol := gen.Solve(cost)
	require.False(t, sol.HyperGraph)
	require.InDelta(t, 0.0, sol.BackwardLabel(v2).Value, 1e-9)
	require.InDelta(t, 1.0, sol.BackwardLabel(v1).Value, 1e-9)

	mufc, err := sol.MinUnitFlowCost(0, net, cost)
	require.NoError(t, err)
	require.InDelta(t, 2.0, mufc, 1e-9) // forward[v0]=0, backward[v1]=1, cost(a0)=1

	path, err := sol.MinUnitFlowPath(0, net)
	require.NoError(t, err)
	require.Equal(t, []gflow.ArcIndex{0, 1}, path.Sequence)
}

func TestGenerator_ReuseAcrossSolves(t *testing.T) {
	net, _ := buildChain(t)
	gen, err := spath.NewGenerator(net, v0, v2)
	require.NoError(t, err)

	first := gen.Solve(func(gflow.ArcIndex) float64 { return 1 })
	require.InDelta(t, 1.0, first.ForwardLabel(v2).Value, 1e-9) // shortcut a2 at cost 1 beats a0+a1 at cost 2

	second := gen.Solve(func(a gflow.ArcIndex) float64 {
		if a == 2 {
			return 0.5
		}

		return 1
	})
	require.InDelta(t, 0.5, second.ForwardLabel(v2).Value, 1e-9)
	require.Equal(t, gflow.ArcIndex(2), second.ForwardLabel(v2).Arc)
}

func TestSolution_OptimalHyperTree(t *testing.T) {
	hyperArc, err := gflow.NewArc(2, []gflow.TailRef{{Vertex: v1, Mult: 1}, {Vertex: v2, Mult: 1}}, v3)
	require.NoError(t, err)
	a0, err := gflow.NewSimpleArc(0, v0, 1, v1)
	require.NoError(t, err)
	a1, err := gflow.NewSimpleArc(1, v0, 1, v2)
	require.NoError(t, err)

	net, err := network.New([]gflow.VertexIndex{v0, v1, v2, v3}, []gflow.Arc{a0, a1, hyperArc})
	require.NoError(t, err)
	require.True(t, net.IsHyperGraph())

	gen, err := spath.NewGenerator(net, v0, v3)
	require.NoError(t, err)
	sol := gen.Solve(func(gflow.ArcIndex) float64 { return 1 })
	require.True(t, sol.HyperGraph)

	tree, err := sol.OptimalHyperTree(v3, net)
	require.NoError(t, err)
	m0, ok := tree.Multiplicity(0)
	require.True(t, ok)
	require.InDelta(t, 1.0, m0, 1e-9)
	m2, ok := tree.Multiplicity(2)
	require.True(t, ok)
	require.InDelta(t, 1.0, m2, 1e-9)

	_, err = sol.MinUnitFlowCost(0, net, func(gflow.ArcIndex) float64 { return 1 })
	require.ErrorIs(t, err, spath.ErrHyperGraphUnsupported)
}
