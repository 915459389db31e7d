package network

import (
	"github.com/flowlattice/genflow/gflow"
	"github.com/flowlattice/genflow/idxmap"
)

// topoSorter encapsulates DFS state for a topological sort, mirroring the
// teacher's dfs.topoSorter (white/gray/black colors, post-order then
// reversed).
type topoSorter struct {
	net    *Network
	color  *idxmap.IndexedMap[gflow.VertexIndex, dfsColor]
	order  []gflow.VertexIndex
	cycled bool
}

func (s *topoSorter) visit(v gflow.VertexIndex) error {
	s.color.Set(v, gray)
	for _, arcIdx := range s.net.OutgoingArcs(v) {
		arc, _ := s.net.Arc(arcIdx)
		switch s.color.Get(arc.Head) {
		case white:
			if err := s.visit(arc.Head); err != nil {
				return err
			}
		case gray:
			return ErrCycleDetected
		case black:
			// already finished, nothing to do
		}
	}
	s.color.Set(v, black)
	s.order = append(s.order, v)

	return nil
}

// TopologicalSort produces a vertex order such that for every arc, all of
// its tails precede its head, driving DFS from each vertex in entryPoints
// (skipping already-visited vertices) to guarantee full coverage
// regardless of how many disconnected source components the network has.
// Returns ErrCycleDetected if the network is not acyclic — the
// shortest-path engine and column generation presume acyclicity.
func (n *Network) TopologicalSort(entryPoints []gflow.VertexIndex) ([]gflow.VertexIndex, error) {
	s := &topoSorter{
		net:   n,
		color: idxmap.NewIndexedMap[gflow.VertexIndex, dfsColor](white),
		order: make([]gflow.VertexIndex, 0, len(n.vertices)),
	}
	for _, v := range entryPoints {
		if s.color.Get(v) == white {
			if err := s.visit(v); err != nil {
				return nil, err
			}
		}
	}
	for i, j := 0, len(s.order)-1; i < j; i, j = i+1, j-1 {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	}

	return s.order, nil
}
