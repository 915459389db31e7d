package spath

import (
	"errors"

	"github.com/flowlattice/genflow/gflow"
	"github.com/flowlattice/genflow/idxmap"
)

// Sentinel errors for the shortest-path engine.
var (
	// ErrHyperGraphUnsupported indicates a simple-graph-only query
	// (min_unit_flow_cost, min_unit_flow_path) was asked of a solution
	// computed over a hyper-graph network.
	ErrHyperGraphUnsupported = errors.New("spath: query requires a non-hyper-graph network")

	// ErrUnreachable indicates a label query was made against a vertex
	// with no finite forward or backward label.
	ErrUnreachable = errors.New("spath: vertex not reachable")

	// ErrPathCycle indicates path reconstruction revisited a vertex,
	// which would violate the engine's acyclicity precondition.
	ErrPathCycle = errors.New("spath: cycle encountered during path reconstruction")
)

// CostFn returns an arc's cost for a single shortest-path solve.
type CostFn func(gflow.ArcIndex) float64

// Label is one vertex's best-known value in a forward or backward sweep:
// the accumulated cost, the hop count used only to break ties, and the arc
// that established it (the incoming arc, for a forward label; the
// outgoing arc chosen toward the sink, for a backward label).
type Label struct {
	Value     float64
	Hops      int
	Arc       gflow.ArcIndex
	HasArc    bool
	Reachable bool
}

// dominates reports whether candidate strictly improves on incumbent,
// per the engine's dominance rule: value strictly less, or value equal and
// hops strictly less.
func dominates(candidate, incumbent Label) bool {
	if !incumbent.Reachable {
		return true
	}
	if candidate.Value < incumbent.Value {
		return true
	}

	return candidate.Value == incumbent.Value && candidate.Hops < incumbent.Hops
}

// Solution is the output of one shortest-path solve: forward labels (and,
// for non-hyper networks, backward labels) from/to a fixed (source, sink)
// pair, over a fixed network topology.
type Solution struct {
	Source, Sink gflow.VertexIndex
	HyperGraph   bool

	Forward  *idxmap.IndexedMap[gflow.VertexIndex, Label]
	Backward *idxmap.IndexedMap[gflow.VertexIndex, Label] // nil when HyperGraph
}

// ForwardLabel returns v's forward label.
func (s *Solution) ForwardLabel(v gflow.VertexIndex) Label { return s.Forward.Get(v) }

// BackwardLabel returns v's backward label. Panics-free: returns a
// non-reachable zero Label if the solution has no backward labels
// (hyper-graph network).
func (s *Solution) BackwardLabel(v gflow.VertexIndex) Label {
	if s.Backward == nil {
		return Label{}
	}

	return s.Backward.Get(v)
}
