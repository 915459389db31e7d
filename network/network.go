package network

import (
	"fmt"

	"github.com/flowlattice/genflow/gflow"
	"github.com/flowlattice/genflow/idxmap"
)

// Network is an ordered collection of vertices and arcs. It derives, at
// construction time: an O(1) arc-membership test, an outgoing-arc index
// per vertex, and the hyper-graph flag. All endpoints of contained arcs
// must be contained vertices.
type Network struct {
	vertices []gflow.VertexIndex
	arcs     []gflow.ArcIndex

	vertexSet *idxmap.IndexedMap[gflow.VertexIndex, bool]
	arcTable  *idxmap.IndexedMap[gflow.ArcIndex, gflow.Arc]
	outgoing  *idxmap.IndexedMap[gflow.VertexIndex, []gflow.ArcIndex]

	hyperGraph bool
}

// New builds a Network from a vertex set and arc list, validating that
// every arc endpoint (every tail and the head) is a contained vertex.
func New(vertices []gflow.VertexIndex, arcs []gflow.Arc) (*Network, error) {
	n := &Network{
		vertices:  append([]gflow.VertexIndex(nil), vertices...),
		vertexSet: idxmap.NewIndexedMap[gflow.VertexIndex, bool](false),
		arcTable:  idxmap.NewIndexedMap[gflow.ArcIndex, gflow.Arc](gflow.Arc{}),
		outgoing:  idxmap.NewIndexedMap[gflow.VertexIndex, []gflow.ArcIndex](nil),
	}
	for _, v := range vertices {
		n.vertexSet.Set(v, true)
	}
	for _, a := range arcs {
		if !n.vertexSet.Get(a.Head) {
			return nil, fmt.Errorf("network: arc %d: %w", a.Index, ErrDanglingEndpoint)
		}
		for _, t := range a.Tails() {
			if !n.vertexSet.Get(t.Vertex) {
				return nil, fmt.Errorf("network: arc %d: %w", a.Index, ErrDanglingEndpoint)
			}
		}
		n.addArc(a)
	}

	return n, nil
}

func (n *Network) addArc(a gflow.Arc) {
	n.arcs = append(n.arcs, a.Index)
	n.arcTable.Set(a.Index, a)
	if a.IsHyperArc() {
		n.hyperGraph = true
	}
	for _, t := range a.Tails() {
		n.outgoing.Set(t.Vertex, append(n.outgoing.Get(t.Vertex), a.Index))
	}
}

// Vertices returns the network's vertices in construction order.
func (n *Network) Vertices() []gflow.VertexIndex { return n.vertices }

// ArcIndices returns the network's member arc indices in construction
// order.
func (n *Network) ArcIndices() []gflow.ArcIndex { return n.arcs }

// HasVertex reports O(1) whether v is in the network.
func (n *Network) HasVertex(v gflow.VertexIndex) bool { return n.vertexSet.Get(v) }

// HasArc reports O(1) whether a is a member arc of the network.
func (n *Network) HasArc(a gflow.ArcIndex) bool { return n.arcTable.Has(a) }

// Arc resolves an ArcIndex to its Arc, implementing gflow.ArcLookup.
// Returns ok=false for arcs outside this network (RCVF-pruned arcs, most
// commonly).
func (n *Network) Arc(a gflow.ArcIndex) (gflow.Arc, bool) {
	if !n.arcTable.Has(a) {
		return gflow.Arc{}, false
	}

	return n.arcTable.Get(a), true
}

// OutgoingArcs returns the arcs in which v appears as a tail, in the order
// they were added to the network. Multi-tail arcs appear in every one of
// their tails' out-lists.
func (n *Network) OutgoingArcs(v gflow.VertexIndex) []gflow.ArcIndex {
	return n.outgoing.Get(v)
}

// IsHyperGraph reports whether any member arc has two or more tails.
func (n *Network) IsHyperGraph() bool { return n.hyperGraph }

// FilterArcs produces a new Network sharing the same vertex set but
// containing only arcs for which keep returns true. Arc metadata (cost,
// capacity, var-type, side-constraint coefficients) lives in the problem
// package keyed by ArcIndex, so it is automatically "reused unchanged": a
// filtered Network's surviving arcs keep their original indices.
func (n *Network) FilterArcs(keep func(gflow.Arc) bool) *Network {
	out := &Network{
		vertices:  n.vertices,
		vertexSet: n.vertexSet,
		arcTable:  idxmap.NewIndexedMap[gflow.ArcIndex, gflow.Arc](gflow.Arc{}),
		outgoing:  idxmap.NewIndexedMap[gflow.VertexIndex, []gflow.ArcIndex](nil),
	}
	for _, idx := range n.arcs {
		a, _ := n.Arc(idx)
		if keep(a) {
			out.addArc(a)
		}
	}

	return out
}
