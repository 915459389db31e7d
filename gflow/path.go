package gflow

// Path is a HyperTree whose underlying graph reduces to a single directed
// simple chain of single-tail arcs. It additionally remembers the ordered
// arc sequence it was built from, when built that way; Path built directly
// from a multiplicity map has a nil Sequence.
type Path struct {
	HyperTree
	Sequence []ArcIndex
}

// NewPathFromSequence builds a Path from an ordered arc sequence where
// arc[i].Head must equal arc[i+1]'s sole tail vertex. The last arc gets
// multiplicity 1; each earlier arc's multiplicity is the product of every
// downstream arc's tail multiplier at the shared vertex (so that 1 unit
// delivered at the final head implies exactly arc[i]'s multiplicity units
// must flow out of arc[i], per the generalized flow algebra of §4.3).
func NewPathFromSequence(seq []ArcIndex, lookup ArcLookup) (*Path, error) {
	if len(seq) == 0 {
		return nil, &InvariantError{ObjectKind: "path", Index: -1, Reason: ErrEmptyTails}
	}
	arcs := make([]Arc, len(seq))
	for i, idx := range seq {
		a, ok := lookup.Arc(idx)
		if !ok {
			return nil, &InvariantError{ObjectKind: "path", Index: int(idx), Reason: ErrBadPathSequence}
		}
		if a.IsHyperArc() {
			return nil, &InvariantError{ObjectKind: "path", Index: int(idx), Reason: ErrBadPathSequence}
		}
		arcs[i] = a
	}
	for i := 0; i < len(arcs)-1; i++ {
		tails := arcs[i+1].Tails()
		if len(tails) != 1 || tails[0].Vertex != arcs[i].Head {
			return nil, &InvariantError{ObjectKind: "path", Index: int(seq[i]), Reason: ErrBadPathSequence}
		}
	}

	mult := make(map[ArcIndex]float64, len(seq))
	last := len(seq) - 1
	mult[seq[last]] = 1
	acc := 1.0
	for i := last - 1; i >= 0; i-- {
		downstream := arcs[i+1]
		tailMultAtJoin := downstream.Tails()[0].Mult
		acc *= tailMultAtJoin
		mult[seq[i]] = acc
	}

	tree, err := NewHyperTree(mult, lookup)
	if err != nil {
		return nil, err
	}

	return &Path{HyperTree: *tree, Sequence: append([]ArcIndex(nil), seq...)}, nil
}

// NewPathFromMultiplicities builds a Path directly from an arc->multiplicity
// map, validating the HyperTree balance invariant but leaving Sequence nil.
func NewPathFromMultiplicities(mult map[ArcIndex]float64, lookup ArcLookup) (*Path, error) {
	tree, err := NewHyperTree(mult, lookup)
	if err != nil {
		return nil, err
	}

	return &Path{HyperTree: *tree}, nil
}
