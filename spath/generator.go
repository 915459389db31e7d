package spath

import (
	"github.com/flowlattice/genflow/gflow"
	"github.com/flowlattice/genflow/idxmap"
	"github.com/flowlattice/genflow/network"
)

// Generator caches a network's topological order and incoming-arc index,
// and reuses its label buffers across repeated Solve calls with new arc
// costs — the access pattern column-generation pricing exercises once per
// commodity per CG iteration. Solve resets both IndexedMap buffers in O(1)
// via their generation counters rather than reallocating them.
type Generator struct {
	net          *network.Network
	source, sink gflow.VertexIndex

	topoOrder []gflow.VertexIndex
	incoming  map[gflow.VertexIndex][]gflow.ArcIndex

	forward  *idxmap.IndexedMap[gflow.VertexIndex, Label]
	backward *idxmap.IndexedMap[gflow.VertexIndex, Label]
}

// NewGenerator builds a Generator for net between source and sink, failing
// if net is not acyclic (network.ErrCycleDetected).
func NewGenerator(net *network.Network, source, sink gflow.VertexIndex) (*Generator, error) {
	order, err := net.TopologicalSort(net.Vertices())
	if err != nil {
		return nil, err
	}

	incoming := make(map[gflow.VertexIndex][]gflow.ArcIndex)
	for _, arcIdx := range net.ArcIndices() {
		arc, _ := net.Arc(arcIdx)
		incoming[arc.Head] = append(incoming[arc.Head], arcIdx)
	}

	return &Generator{
		net:       net,
		source:    source,
		sink:      sink,
		topoOrder: order,
		incoming:  incoming,
		forward:   idxmap.NewIndexedMap[gflow.VertexIndex, Label](Label{}),
		backward:  idxmap.NewIndexedMap[gflow.VertexIndex, Label](Label{}),
	}, nil
}

// Solve runs the forward sweep (and, for non-hyper networks, the backward
// sweep) under cost, resetting the generator's label buffers first.
func (g *Generator) Solve(cost CostFn) *Solution {
	g.forward.Reset()
	g.backward.Reset()

	g.forward.Set(g.source, Label{Value: 0, Hops: 0, Reachable: true})
	for _, v := range g.topoOrder {
		for _, arcIdx := range g.incoming[v] {
			arc, _ := g.net.Arc(arcIdx)
			cand, ok := g.forwardCandidate(arc, cost)
			if !ok {
				continue
			}
			if dominates(cand, g.forward.Get(v)) {
				cand.Arc = arcIdx
				cand.HasArc = true
				g.forward.Set(v, cand)
			}
		}
	}

	hyper := g.net.IsHyperGraph()
	if hyper {
		return &Solution{Source: g.source, Sink: g.sink, HyperGraph: true, Forward: g.forward}
	}

	g.backward.Set(g.sink, Label{Value: 0, Hops: 0, Reachable: true})
	for i := len(g.topoOrder) - 1; i >= 0; i-- {
		v := g.topoOrder[i]
		for _, arcIdx := range g.net.OutgoingArcs(v) {
			arc, _ := g.net.Arc(arcIdx)
			cand, ok := g.backwardCandidate(v, arc, cost)
			if !ok {
				continue
			}
			if dominates(cand, g.backward.Get(v)) {
				cand.Arc = arcIdx
				cand.HasArc = true
				g.backward.Set(v, cand)
			}
		}
	}

	return &Solution{Source: g.source, Sink: g.sink, HyperGraph: false, Forward: g.forward, Backward: g.backward}
}

// forwardCandidate computes arc's contribution toward arc.Head's forward
// label: cost(arc) + Σ_tails μ·forward[tail].value, valid for any tail
// count (hyper-arcs included). Returns ok=false if any tail is not yet
// reachable.
func (g *Generator) forwardCandidate(arc gflow.Arc, cost CostFn) (Label, bool) {
	var value float64
	hops := 0
	for _, t := range arc.Tails() {
		tl := g.forward.Get(t.Vertex)
		if !tl.Reachable {
			return Label{}, false
		}
		value += t.Mult * tl.Value
		hops += tl.Hops
	}

	return Label{Value: value + cost(arc.Index), Hops: hops + 1, Reachable: true}, true
}

// backwardCandidate computes arc's contribution toward v (arc's sole
// tail)'s backward label: (backward[arc.Head].value + cost(arc)) / μ.
// Simple arcs only (single-tail).
func (g *Generator) backwardCandidate(v gflow.VertexIndex, arc gflow.Arc, cost CostFn) (Label, bool) {
	mult, isTail := arc.TailMultiplier(v)
	if !isTail {
		return Label{}, false
	}
	hl := g.backward.Get(arc.Head)
	if !hl.Reachable {
		return Label{}, false
	}

	return Label{Value: (hl.Value + cost(arc.Index)) / mult, Hops: hl.Hops + 1, Reachable: true}, true
}
