package gflow

import "errors"

// Sentinel errors for gflow construction and arithmetic.
var (
	// ErrEmptyTails indicates an arc was constructed with no tails.
	ErrEmptyTails = errors.New("gflow: arc must have at least one tail")

	// ErrNonPositiveMultiplier indicates a tail multiplier was <= 0.
	ErrNonPositiveMultiplier = errors.New("gflow: tail multiplier must be positive")

	// ErrBadPathSequence indicates consecutive arcs in a path do not chain
	// head-to-tail.
	ErrBadPathSequence = errors.New("gflow: path arc sequence does not chain head-to-tail")

	// ErrUnbalancedTree indicates a HyperTree failed its balance invariant
	// (exactly one head with balance +1, every other vertex 0, tails free).
	ErrUnbalancedTree = errors.New("gflow: hyper-tree balance invariant violated")
)

// InvariantError reports a violated invariant against a specific object,
// identified by kind and index, so the caller can pinpoint the offender.
type InvariantError struct {
	ObjectKind string // e.g. "arc", "hyper-tree", "path"
	Index      int    // offending object's index, or -1 if not applicable
	Reason     error
}

func (e *InvariantError) Error() string {
	return "gflow: " + e.ObjectKind + " invariant violated: " + e.Reason.Error()
}

func (e *InvariantError) Unwrap() error { return e.Reason }

// VertexIndex identifies a Vertex. Vertex identity is a dense non-negative
// integer index assigned once by the problem builder; vertices are
// immutable after creation.
type VertexIndex int

// Index implements idxmap.Indexed.
func (v VertexIndex) Index() int { return int(v) }

// ArcIndex identifies an Arc. Arc identity is a dense positive integer
// index assigned once by the problem builder.
type ArcIndex int

// Index implements idxmap.Indexed.
func (a ArcIndex) Index() int { return int(a) }

// VarType is the domain of an arc's flow variable in the LP/MIP model.
type VarType int

const (
	// Continuous allows any non-negative real flow value.
	Continuous VarType = iota
	// Integer restricts flow on the arc to non-negative integers.
	Integer
)

// TailRef is one (tail-vertex, multiplier) pair of an Arc.
type TailRef struct {
	Vertex VertexIndex
	Mult   float64 // units consumed at Vertex per unit of flow delivered at Head
}

// inlineTailCap sizes the fixed-size fast path for the overwhelmingly common
// simple arc (exactly one tail); Arc falls back to an overflow slice only
// for genuine hyper-arcs, matching the teacher's small-vector-over-
// inheritance guidance for multi-variant data (see Design Notes §9).
const inlineTailCap = 1

// Arc is a single- or multi-tail directed hyper-arc: an ordered,
// non-empty list of (tail, multiplier) pairs and a head vertex.
//
// Arc carries only topology. Cost, capacity and variable domain are
// external attributes stored per-arc-index by problem.Problem, not here,
// so that an Arc's identity and shape never change once built.
type Arc struct {
	Index ArcIndex
	Head  VertexIndex

	inline   [inlineTailCap]TailRef
	overflow []TailRef // used only when len(tails) > inlineTailCap
	numTails int
}

// NewSimpleArc builds a single-tail Arc: tail --(mult)--> head.
func NewSimpleArc(index ArcIndex, tail VertexIndex, mult float64, head VertexIndex) (Arc, error) {
	return NewArc(index, []TailRef{{Vertex: tail, Mult: mult}}, head)
}

// NewArc builds an Arc from an ordered, non-empty list of (tail,
// multiplier) pairs and a head vertex. Rejects an empty tail list or any
// non-positive multiplier.
func NewArc(index ArcIndex, tails []TailRef, head VertexIndex) (Arc, error) {
	if len(tails) == 0 {
		return Arc{}, &InvariantError{ObjectKind: "arc", Index: int(index), Reason: ErrEmptyTails}
	}
	for _, t := range tails {
		if t.Mult <= 0 {
			return Arc{}, &InvariantError{ObjectKind: "arc", Index: int(index), Reason: ErrNonPositiveMultiplier}
		}
	}

	a := Arc{Index: index, Head: head, numTails: len(tails)}
	if len(tails) <= inlineTailCap {
		copy(a.inline[:], tails)
	} else {
		a.overflow = append([]TailRef(nil), tails...)
	}

	return a, nil
}

// Tails returns the arc's (tail, multiplier) pairs in construction order.
func (a *Arc) Tails() []TailRef {
	if a.numTails <= inlineTailCap {
		return a.inline[:a.numTails]
	}

	return a.overflow
}

// IsHyperArc reports whether the arc has two or more tails.
func (a *Arc) IsHyperArc() bool { return a.numTails >= 2 }

// TailMultiplier returns the multiplier of v as a tail of a, and whether v
// actually appears among a's tails.
func (a *Arc) TailMultiplier(v VertexIndex) (float64, bool) {
	for _, t := range a.Tails() {
		if t.Vertex == v {
			return t.Mult, true
		}
	}

	return 0, false
}
