package gflow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowlattice/genflow/gflow"
)

// fakeLookup is a minimal ArcLookup for unit tests that don't need a full
// network package.
type fakeLookup map[gflow.ArcIndex]gflow.Arc

func (f fakeLookup) Arc(idx gflow.ArcIndex) (gflow.Arc, bool) {
	a, ok := f[idx]

	return a, ok
}

func mustArc(t *testing.T, idx gflow.ArcIndex, tail gflow.VertexIndex, mult float64, head gflow.VertexIndex) gflow.Arc {
	t.Helper()
	a, err := gflow.NewSimpleArc(idx, tail, mult, head)
	require.NoError(t, err)

	return a
}

func TestHyperTree_SimpleChainBalances(t *testing.T) {
	// v0 --a0(1)--> v1 --a1(1)--> v2
	a0 := mustArc(t, 0, 0, 1, 1)
	a1 := mustArc(t, 1, 1, 1, 2)
	lookup := fakeLookup{0: a0, 1: a1}

	tree, err := gflow.NewHyperTree(map[gflow.ArcIndex]float64{0: 1, 1: 1}, lookup)
	require.NoError(t, err)
	require.Equal(t, gflow.VertexIndex(2), tree.Head())
	m, ok := tree.TailMultiplier(0)
	require.True(t, ok)
	require.Equal(t, 1.0, m)
}

func TestHyperTree_RejectsNoHead(t *testing.T) {
	a0 := mustArc(t, 0, 0, 1, 1)
	lookup := fakeLookup{0: a0}
	// Multiplicity 0.5 on the only arc gives head balance 0.5, not 1.
	_, err := gflow.NewHyperTree(map[gflow.ArcIndex]float64{0: 0.5}, lookup)
	require.Error(t, err)
}

func TestPath_FromSequenceCompoundsMultiplicities(t *testing.T) {
	// v0 --a0(tail mult 2)--> v1 --a1(tail mult 5)--> v2
	a0 := mustArc(t, 0, 0, 2, 1)
	a1 := mustArc(t, 1, 1, 5, 2)
	lookup := fakeLookup{0: a0, 1: a1}

	p, err := gflow.NewPathFromSequence([]gflow.ArcIndex{0, 1}, lookup)
	require.NoError(t, err)
	m1, ok := p.Multiplicity(1)
	require.True(t, ok)
	require.Equal(t, 1.0, m1)
	m0, ok := p.Multiplicity(0)
	require.True(t, ok)
	require.Equal(t, 5.0, m0) // compounds by downstream arc's tail multiplier
}

func TestPath_RejectsNonChaining(t *testing.T) {
	a0 := mustArc(t, 0, 0, 1, 1)
	a1 := mustArc(t, 1, 5, 1, 2) // tail 5, not 1: does not chain
	lookup := fakeLookup{0: a0, 1: a1}

	_, err := gflow.NewPathFromSequence([]gflow.ArcIndex{0, 1}, lookup)
	require.Error(t, err)
}
