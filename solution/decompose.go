package solution

import (
	"math"
	"sort"

	"github.com/flowlattice/genflow/gflow"
)

// Decompose turns an ArcFlowSolution into an equivalent PathFlowSolution: a
// sum of hyper-trees, each rooted at s.Sink and bottoming out at s.Source,
// such that re-aggregating Σ entry.Value * entry.Tree.Multiplicity(a) over
// every entry reproduces s.Flow (up to conservationEpsilon) — the "flow
// decomposition" law.
//
// Each iteration fixes one tree: walking back from the sink, picking a
// single lowest-index incoming arc with positive residual per vertex
// (deterministic for the iteration, since residual does not change until
// the tree is complete), recursively accumulating demand into that arc's
// multiplicity. A vertex consumed by two different arcs within the same
// tree is visited twice and its chosen arc's multiplicity accumulates both
// demands, so the tree stays correctly balanced even with reconvergence.
// The tree's intensity is the tightest residual-to-multiplicity ratio
// among its member arcs.
func Decompose(s ArcFlowSolution, lookup gflow.ArcLookup) (PathFlowSolution, error) {
	residual := make(map[gflow.ArcIndex]float64, len(s.Flow))
	incomingArcs := make(map[gflow.VertexIndex][]gflow.ArcIndex)
	for arcIdx, f := range s.Flow {
		if f <= conservationEpsilon {
			continue
		}
		residual[arcIdx] = f
		arc, ok := lookup.Arc(arcIdx)
		if !ok {
			continue
		}
		incomingArcs[arc.Head] = append(incomingArcs[arc.Head], arcIdx)
	}
	sortArcIndices(incomingArcs)

	out := PathFlowSolution{Commodity: s.Commodity, Source: s.Source, Sink: s.Sink}

	for hasResidual(residual) {
		mult := make(map[gflow.ArcIndex]float64)
		if err := accumulateDemand(s.Sink, 1, s.Source, lookup, residual, incomingArcs, mult); err != nil {
			return PathFlowSolution{}, err
		}
		if len(mult) == 0 {
			break
		}

		p := math.Inf(1)
		for arcIdx, m := range mult {
			if m <= 0 {
				continue
			}
			if ratio := residual[arcIdx] / m; ratio < p {
				p = ratio
			}
		}
		if math.IsInf(p, 1) || p <= conservationEpsilon {
			break
		}

		for arcIdx, m := range mult {
			residual[arcIdx] -= p * m
		}

		tree, err := gflow.NewHyperTree(mult, lookup)
		if err != nil {
			return PathFlowSolution{}, err
		}
		out.Entries = append(out.Entries, PathFlowEntry{Tree: tree, Value: p})
	}

	return out, nil
}

func hasResidual(residual map[gflow.ArcIndex]float64) bool {
	for _, f := range residual {
		if f > conservationEpsilon {
			return true
		}
	}

	return false
}

func sortArcIndices(byVertex map[gflow.VertexIndex][]gflow.ArcIndex) {
	for _, arcs := range byVertex {
		sort.Slice(arcs, func(i, j int) bool { return arcs[i] < arcs[j] })
	}
}

// accumulateDemand recursively assigns demand units to v's chosen incoming
// arc (the lowest-index arc at v with positive residual), accumulating
// rather than overwriting so a vertex reached more than once within the
// same tree sums every visit's demand before its own arc's multiplicity is
// read by the caller.
func accumulateDemand(
	v gflow.VertexIndex,
	demand float64,
	source gflow.VertexIndex,
	lookup gflow.ArcLookup,
	residual map[gflow.ArcIndex]float64,
	incomingArcs map[gflow.VertexIndex][]gflow.ArcIndex,
	mult map[gflow.ArcIndex]float64,
) error {
	if v == source {
		return nil
	}

	var chosen gflow.ArcIndex
	found := false
	for _, candidate := range incomingArcs[v] {
		if residual[candidate] > conservationEpsilon {
			chosen = candidate
			found = true

			break
		}
	}
	if !found {
		return ErrDecompositionStuck
	}

	mult[chosen] += demand
	arc, _ := lookup.Arc(chosen)
	for _, t := range arc.Tails() {
		if err := accumulateDemand(t.Vertex, demand*t.Mult, source, lookup, residual, incomingArcs, mult); err != nil {
			return err
		}
	}

	return nil
}

// Recompose re-aggregates a PathFlowSolution back into per-arc flow, the
// inverse direction of Decompose; used to check the flow decomposition law
// (ArcFlowSolution -> PathFlowSolution -> ArcFlowSolution is a fixed point
// up to floating-point tolerance).
func Recompose(p PathFlowSolution) ArcFlowSolution {
	flow := make(map[gflow.ArcIndex]float64)
	for _, e := range p.Entries {
		for _, a := range e.Tree.Arcs() {
			m, _ := e.Tree.Multiplicity(a)
			flow[a] += e.Value * m
		}
	}

	return ArcFlowSolution{Commodity: p.Commodity, Source: p.Source, Sink: p.Sink, Flow: flow}
}
