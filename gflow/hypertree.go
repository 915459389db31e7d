package gflow

import "sort"

// ArcLookup resolves an ArcIndex to its Arc. Network implements this; it is
// defined here (rather than imported) so gflow has no dependency on the
// network package, matching the teacher's leaf-first dependency order.
type ArcLookup interface {
	Arc(ArcIndex) (Arc, bool)
}

// HyperTree is a mapping from arcs to non-negative rational multiplicities
// satisfying the balance invariant: exactly one vertex (the head) has net
// inflow balance +1; vertices that are never incoming targets (the tails)
// may carry arbitrary non-zero balance, representing the tree's resource
// consumption there; every other vertex has balance exactly 0.
type HyperTree struct {
	mult     map[ArcIndex]float64
	head     VertexIndex
	hasHead  bool
	tailMult map[VertexIndex]float64
}

// NewHyperTree validates and builds a HyperTree from an arc->multiplicity
// mapping, resolving arc topology via lookup.
func NewHyperTree(mult map[ArcIndex]float64, lookup ArcLookup) (*HyperTree, error) {
	balance := make(map[VertexIndex]float64)
	incomingTarget := make(map[VertexIndex]bool)

	for arcIdx, m := range mult {
		arc, ok := lookup.Arc(arcIdx)
		if !ok {
			return nil, &InvariantError{ObjectKind: "hyper-tree", Index: int(arcIdx), Reason: ErrUnbalancedTree}
		}
		balance[arc.Head] += m
		incomingTarget[arc.Head] = true
		for _, t := range arc.Tails() {
			balance[t.Vertex] -= m * t.Mult
			if _, seen := incomingTarget[t.Vertex]; !seen {
				incomingTarget[t.Vertex] = false
			}
		}
	}

	var head VertexIndex
	headCount := 0
	for v, b := range balance {
		if b == 1 {
			head = v
			headCount++
		}
	}
	if headCount != 1 {
		return nil, &InvariantError{ObjectKind: "hyper-tree", Index: -1, Reason: ErrUnbalancedTree}
	}

	tailMult := make(map[VertexIndex]float64)
	for v, b := range balance {
		if v == head {
			continue
		}
		if incomingTarget[v] {
			if b != 0 {
				return nil, &InvariantError{ObjectKind: "hyper-tree", Index: int(v), Reason: ErrUnbalancedTree}
			}
			continue
		}
		// v is never an incoming target: it is a tail.
		if b == 0 {
			return nil, &InvariantError{ObjectKind: "hyper-tree", Index: int(v), Reason: ErrUnbalancedTree}
		}
		tailMult[v] = -b
	}

	return &HyperTree{mult: mult, head: head, hasHead: true, tailMult: tailMult}, nil
}

// Head returns the hyper-tree's unique balance-+1 vertex.
func (t *HyperTree) Head() VertexIndex { return t.head }

// TailMultiplier returns the aggregated multiplier the tree consumes at
// tail v to deliver 1 unit at its head, and whether v is a tail at all.
func (t *HyperTree) TailMultiplier(v VertexIndex) (float64, bool) {
	m, ok := t.tailMult[v]

	return m, ok
}

// Tails returns the tree's tail vertices in a deterministic (sorted) order.
func (t *HyperTree) Tails() []VertexIndex {
	out := make([]VertexIndex, 0, len(t.tailMult))
	for v := range t.tailMult {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Multiplicity returns the multiplicity assigned to arc a in this tree, and
// whether a is a member of the tree at all.
func (t *HyperTree) Multiplicity(a ArcIndex) (float64, bool) {
	m, ok := t.mult[a]

	return m, ok
}

// Arcs returns the tree's member arc indices in a deterministic (sorted)
// order.
func (t *HyperTree) Arcs() []ArcIndex {
	out := make([]ArcIndex, 0, len(t.mult))
	for a := range t.mult {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Equal reports whether t and other have identical arc-multiplicity
// mappings, per spec: two hyper-trees are equal iff their mappings are
// equal.
func (t *HyperTree) Equal(other *HyperTree) bool {
	if other == nil || len(t.mult) != len(other.mult) {
		return false
	}
	for a, m := range t.mult {
		om, ok := other.mult[a]
		if !ok || om != m {
			return false
		}
	}

	return true
}

// CostFn returns an arc's own cost component (independent of the tree).
type CostFn func(ArcIndex) float64

// VertexCostFn returns a tail vertex's external resource cost.
type VertexCostFn func(VertexIndex) float64

// PropagateCost computes, by memoised recursion from the tree's head, the
// vertex->cost map used to score columns and compute Lagrangian
// contributions of hyper-arc columns (§4.3):
//
//	cost(v) = tail_cost(v)                                         if v is a tail
//	cost(v) = (arc_cost(a) + Σ_t tail_cost_recursive(t)·μ(a,t)) · m(a)  otherwise
//
// where a is v's unique incoming arc in the tree and m(a) is v's
// multiplicity in the tree.
func (t *HyperTree) PropagateCost(arcCost CostFn, tailCost VertexCostFn, lookup ArcLookup) map[VertexIndex]float64 {
	memo := make(map[VertexIndex]float64, len(t.mult)+len(t.tailMult))
	incoming := make(map[VertexIndex]ArcIndex, len(t.mult))
	for a := range t.mult {
		arc, ok := lookup.Arc(a)
		if !ok {
			continue
		}
		incoming[arc.Head] = a
	}

	var recur func(v VertexIndex) float64
	recur = func(v VertexIndex) float64 {
		if c, ok := memo[v]; ok {
			return c
		}
		if _, isTail := t.tailMult[v]; isTail && v != t.head {
			c := tailCost(v)
			memo[v] = c

			return c
		}
		arcIdx, ok := incoming[v]
		if !ok {
			// No incoming arc recorded and not a recognised tail: treat as
			// an external resource vertex (defensive default for vertices
			// touched only incidentally, e.g. via PropagateCost reuse).
			c := tailCost(v)
			memo[v] = c

			return c
		}
		arc, _ := lookup.Arc(arcIdx)
		m, _ := t.mult[arcIdx]
		sum := arcCost(arcIdx)
		for _, tr := range arc.Tails() {
			sum += recur(tr.Vertex) * tr.Mult
		}
		c := sum * m
		memo[v] = c

		return c
	}

	out := make(map[VertexIndex]float64, len(incoming)+len(t.tailMult))
	for v := range incoming {
		out[v] = recur(v)
	}
	for v := range t.tailMult {
		out[v] = recur(v)
	}

	return out
}
