package network_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowlattice/genflow/gflow"
	"github.com/flowlattice/genflow/network"
)

func arc(t *testing.T, idx gflow.ArcIndex, tail gflow.VertexIndex, mult float64, head gflow.VertexIndex) gflow.Arc {
	t.Helper()
	a, err := gflow.NewSimpleArc(idx, tail, mult, head)
	require.NoError(t, err)

	return a
}

func TestNetwork_OutgoingIndexAndHyperFlag(t *testing.T) {
	vs := []gflow.VertexIndex{0, 1, 2}
	a0 := arc(t, 0, 0, 1, 1)
	a1 := arc(t, 1, 1, 1, 2)
	n, err := network.New(vs, []gflow.Arc{a0, a1})
	require.NoError(t, err)
	require.False(t, n.IsHyperGraph())
	require.Equal(t, []gflow.ArcIndex{0}, n.OutgoingArcs(0))
	require.True(t, n.HasArc(0))
	require.False(t, n.HasArc(5))
}

func TestNetwork_HyperArcAppearsInEveryTailOutList(t *testing.T) {
	vs := []gflow.VertexIndex{0, 1, 2}
	hyper, err := gflow.NewArc(0, []gflow.TailRef{{Vertex: 0, Mult: 1}, {Vertex: 1, Mult: 1}}, 2)
	require.NoError(t, err)
	n, err := network.New(vs, []gflow.Arc{hyper})
	require.NoError(t, err)
	require.True(t, n.IsHyperGraph())
	require.Equal(t, []gflow.ArcIndex{0}, n.OutgoingArcs(0))
	require.Equal(t, []gflow.ArcIndex{0}, n.OutgoingArcs(1))
}

func TestNetwork_DanglingEndpointRejected(t *testing.T) {
	a0 := arc(t, 0, 0, 1, 9)
	_, err := network.New([]gflow.VertexIndex{0, 1}, []gflow.Arc{a0})
	require.ErrorIs(t, err, network.ErrDanglingEndpoint)
}

func TestNetwork_TopologicalSortOrdersChain(t *testing.T) {
	vs := []gflow.VertexIndex{0, 1, 2}
	a0 := arc(t, 0, 0, 1, 1)
	a1 := arc(t, 1, 1, 1, 2)
	n, err := network.New(vs, []gflow.Arc{a0, a1})
	require.NoError(t, err)
	order, err := n.TopologicalSort(n.Vertices())
	require.NoError(t, err)
	pos := map[gflow.VertexIndex]int{}
	for i, v := range order {
		pos[v] = i
	}
	require.Less(t, pos[0], pos[1])
	require.Less(t, pos[1], pos[2])
}

func TestNetwork_TopologicalSortDetectsCycle(t *testing.T) {
	vs := []gflow.VertexIndex{0, 1}
	a0 := arc(t, 0, 0, 1, 1)
	a1 := arc(t, 1, 1, 1, 0)
	n, err := network.New(vs, []gflow.Arc{a0, a1})
	require.NoError(t, err)
	_, err = n.TopologicalSort(n.Vertices())
	require.ErrorIs(t, err, network.ErrCycleDetected)
}

func TestNetwork_FilterArcsPreservesIndices(t *testing.T) {
	vs := []gflow.VertexIndex{0, 1, 2}
	a0 := arc(t, 0, 0, 1, 1)
	a1 := arc(t, 1, 1, 1, 2)
	n, err := network.New(vs, []gflow.Arc{a0, a1})
	require.NoError(t, err)
	filtered := n.FilterArcs(func(a gflow.Arc) bool { return a.Index == 1 })
	require.False(t, filtered.HasArc(0))
	require.True(t, filtered.HasArc(1))
	require.Equal(t, []gflow.VertexIndex{0, 1, 2}, filtered.Vertices())
}
