package solution

import (
	"math"

	"github.com/flowlattice/genflow/gflow"
)

// CheckConservation verifies the per-vertex balance invariant: for every
// vertex other than Source and Sink, inflow (sum of Flow[a] over arcs whose
// head is v) must equal outflow (sum of Flow[a]*mult over arcs where v is a
// tail). Negative flow values are rejected outright.
func (s ArcFlowSolution) CheckConservation(lookup gflow.ArcLookup) error {
	inflow := make(map[gflow.VertexIndex]float64)
	outflow := make(map[gflow.VertexIndex]float64)

	for arcIdx, f := range s.Flow {
		if f < -conservationEpsilon {
			return ErrNegativeFlow
		}
		arc, ok := lookup.Arc(arcIdx)
		if !ok {
			continue
		}
		inflow[arc.Head] += f
		for _, t := range arc.Tails() {
			outflow[t.Vertex] += f * t.Mult
		}
	}

	seen := make(map[gflow.VertexIndex]bool, len(inflow)+len(outflow))
	for v := range inflow {
		seen[v] = true
	}
	for v := range outflow {
		seen[v] = true
	}
	for v := range seen {
		if v == s.Source || v == s.Sink {
			continue
		}
		if math.Abs(inflow[v]-outflow[v]) > conservationEpsilon {
			return ErrConservationViolated
		}
	}

	return nil
}

// TotalDelivered returns the flow delivered at the sink: the sum of Flow[a]
// over every arc whose head is Sink.
func (s ArcFlowSolution) TotalDelivered(lookup gflow.ArcLookup) float64 {
	var total float64
	for arcIdx, f := range s.Flow {
		arc, ok := lookup.Arc(arcIdx)
		if !ok {
			continue
		}
		if arc.Head == s.Sink {
			total += f
		}
	}

	return total
}

// ObjectiveValue returns Σ cost(a)*Flow[a] over the commodity's own arcs.
func (s ArcFlowSolution) ObjectiveValue(cost gflow.CostFn) float64 {
	var total float64
	for arcIdx, f := range s.Flow {
		total += cost(arcIdx) * f
	}

	return total
}

// ObjectiveValue sums every commodity's ObjectiveValue.
func (p PrimalSolution) ObjectiveValue(cost gflow.CostFn) float64 {
	var total float64
	for _, s := range p {
		total += s.ObjectiveValue(cost)
	}

	return total
}

// TotalArcFlow sums Flow[a] across every commodity's solution, the quantity
// side constraints and arc-capacity rows are stated over.
func (p PrimalSolution) TotalArcFlow(a gflow.ArcIndex) float64 {
	var total float64
	for _, s := range p {
		total += s.Flow[a]
	}

	return total
}
