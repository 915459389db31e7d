package spath

import (
	"github.com/flowlattice/genflow/gflow"
)

// MinUnitFlowCost returns the minimum cost among unit-delivering
// source->sink flows that use exactly one unit of arc a, valid only on
// non-hyper-graph solutions.
func (s *Solution) MinUnitFlowCost(a gflow.ArcIndex, lookup gflow.ArcLookup, cost CostFn) (float64, error) {
	if s.HyperGraph {
		return 0, ErrHyperGraphUnsupported
	}
	arc, ok := lookup.Arc(a)
	if !ok {
		return 0, ErrUnreachable
	}

	tails := arc.Tails()
	tl := s.Forward.Get(tails[0].Vertex)
	hl := s.Backward.Get(arc.Head)
	if !tl.Reachable || !hl.Reachable {
		return 0, ErrUnreachable
	}

	return tails[0].Mult*tl.Value + hl.Value + cost(a), nil
}

// MinUnitFlowPath returns the Path realising MinUnitFlowCost(a): the
// upstream arcs from source to a's tail (via forward labels), a itself,
// and the downstream arcs from a's head to sink (via backward labels).
func (s *Solution) MinUnitFlowPath(a gflow.ArcIndex, lookup gflow.ArcLookup) (*gflow.Path, error) {
	if s.HyperGraph {
		return nil, ErrHyperGraphUnsupported
	}
	arc, ok := lookup.Arc(a)
	if !ok {
		return nil, ErrUnreachable
	}
	tail := arc.Tails()[0].Vertex

	upstream, err := s.walkForward(tail, lookup)
	if err != nil {
		return nil, err
	}
	downstream, err := s.walkBackward(arc.Head, lookup)
	if err != nil {
		return nil, err
	}

	seq := make([]gflow.ArcIndex, 0, len(upstream)+1+len(downstream))
	seq = append(seq, upstream...)
	seq = append(seq, a)
	seq = append(seq, downstream...)

	return gflow.NewPathFromSequence(seq, lookup)
}

// walkForward collects, in source-to-v order, the entering-arc chain that
// established v's forward label.
func (s *Solution) walkForward(v gflow.VertexIndex, lookup gflow.ArcLookup) ([]gflow.ArcIndex, error) {
	var arcs []gflow.ArcIndex
	visited := map[gflow.VertexIndex]bool{v: true}
	for v != s.Source {
		lbl := s.Forward.Get(v)
		if !lbl.Reachable || !lbl.HasArc {
			return nil, ErrUnreachable
		}
		arcs = append([]gflow.ArcIndex{lbl.Arc}, arcs...)
		arc, _ := lookup.Arc(lbl.Arc)
		v = arc.Tails()[0].Vertex
		if visited[v] {
			return nil, ErrPathCycle
		}
		visited[v] = true
	}

	return arcs, nil
}

// walkBackward collects, in v-to-sink order, the exiting-arc chain that
// established v's backward label.
func (s *Solution) walkBackward(v gflow.VertexIndex, lookup gflow.ArcLookup) ([]gflow.ArcIndex, error) {
	var arcs []gflow.ArcIndex
	visited := map[gflow.VertexIndex]bool{v: true}
	for v != s.Sink {
		lbl := s.Backward.Get(v)
		if !lbl.Reachable || !lbl.HasArc {
			return nil, ErrUnreachable
		}
		arcs = append(arcs, lbl.Arc)
		arc, _ := lookup.Arc(lbl.Arc)
		v = arc.Head
		if visited[v] {
			return nil, ErrPathCycle
		}
		visited[v] = true
	}

	return arcs, nil
}

// OptimalHyperTree reconstructs the hyper-tree realising the forward
// solution's optimal unit delivery at t: a DFS from t following each
// visited vertex's entering arc, recursing into every one of that arc's
// tails (branching, for genuine hyper-arcs), accumulating the
// arc->multiplicity map the same way gflow.HyperTree's balance invariant
// requires. Valid for both hyper- and non-hyper networks (forward labels
// are always computed).
func (s *Solution) OptimalHyperTree(t gflow.VertexIndex, lookup gflow.ArcLookup) (*gflow.HyperTree, error) {
	mult := make(map[gflow.ArcIndex]float64)
	if err := s.accumulate(t, 1, lookup, mult); err != nil {
		return nil, err
	}

	return gflow.NewHyperTree(mult, lookup)
}

func (s *Solution) accumulate(v gflow.VertexIndex, demand float64, lookup gflow.ArcLookup, mult map[gflow.ArcIndex]float64) error {
	if v == s.Source {
		return nil
	}
	lbl := s.Forward.Get(v)
	if !lbl.Reachable || !lbl.HasArc {
		return ErrUnreachable
	}
	mult[lbl.Arc] += demand
	arc, _ := lookup.Arc(lbl.Arc)
	for _, tr := range arc.Tails() {
		if err := s.accumulate(tr.Vertex, demand*tr.Mult, lookup, mult); err != nil {
			return err
		}
	}

	return nil
}
