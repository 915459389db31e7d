package colgen

import (
	"fmt"
	"math"
	"strings"

	"github.com/flowlattice/genflow/gflow"
	"github.com/flowlattice/genflow/lpmodel"
	"github.com/flowlattice/genflow/problem"
	"github.com/flowlattice/genflow/solution"
)

type conservKey struct {
	commodity problem.CommodityIndex
	vertex    gflow.VertexIndex
}

type columnKey string

// varKind maps a Column's arc-level VarType to the LP/MIP engine's own
// integrality enum; the two are distinct defined types by design (gflow
// stays free of any lpmodel import) so every engine.NewVariable call site
// must convert explicitly.
func varKind(vt gflow.VarType) lpmodel.VarKind {
	if vt == gflow.Integer {
		return lpmodel.VarInteger
	}

	return lpmodel.VarContinuous
}

// keyFor derives a stable identity key from (commodity, hyper-tree),
// matching the spec's "identity on (hyper-tree, commodity)" column
// equality rule: two columns with the same arc-multiplicity mapping for
// the same commodity are the same column.
func keyFor(commodity problem.CommodityIndex, tree *gflow.HyperTree) columnKey {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|", commodity)
	for _, a := range tree.Arcs() {
		m, _ := tree.Multiplicity(a)
		fmt.Fprintf(&b, "%d:%.12g,", a, m)
	}

	return columnKey(b.String())
}

type columnRecord struct {
	column    Column
	varHandle lpmodel.VarHandle
	zeroIters int
	active    bool
}

// RMP is the restricted master problem: an lpmodel.Engine plus the row
// bookkeeping described in spec §4.5. Flow-conservation rows are created
// lazily, the first time a column touches a (commodity, vertex) pair that
// is neither that commodity's source nor sink.
type RMP struct {
	problem *problem.Problem
	engine  lpmodel.Engine

	demandRow   map[problem.CommodityIndex]lpmodel.RowHandle
	capacityRow map[problem.CommodityIndex]lpmodel.RowHandle
	arcCapRow   map[gflow.ArcIndex]lpmodel.RowHandle
	sideRow     map[problem.ConstraintIndex]lpmodel.RowHandle
	conservRow  map[conservKey]lpmodel.RowHandle

	columns map[columnKey]*columnRecord
	order   []columnKey
}

// NewRMP builds an RMP over p's commodities, capacitated arcs, and
// currently pushed side constraints, installing a penalised artificial in
// every row that spec §4.5 requires one for, so the RMP is feasible by
// construction regardless of which columns ever get added.
func NewRMP(p *problem.Problem, engine lpmodel.Engine) *RMP {
	r := &RMP{
		problem:     p,
		engine:      engine,
		demandRow:   make(map[problem.CommodityIndex]lpmodel.RowHandle),
		capacityRow: make(map[problem.CommodityIndex]lpmodel.RowHandle),
		arcCapRow:   make(map[gflow.ArcIndex]lpmodel.RowHandle),
		sideRow:     make(map[problem.ConstraintIndex]lpmodel.RowHandle),
		conservRow:  make(map[conservKey]lpmodel.RowHandle),
		columns:     make(map[columnKey]*columnRecord),
	}

	for _, c := range p.Commodities() {
		demand := engine.NewRow(lpmodel.RowGE, c.Demand)
		art := engine.NewVariable(lpmodel.VarContinuous, math.Inf(1), c.ViolationPenalty)
		engine.SetCoefficient(demand, art, 1)
		r.demandRow[c.Index] = demand

		capacity := engine.NewRow(lpmodel.RowLE, c.Capacity)
		art2 := engine.NewVariable(lpmodel.VarContinuous, math.Inf(1), c.ViolationPenalty)
		engine.SetCoefficient(capacity, art2, -1)
		r.capacityRow[c.Index] = capacity
	}

	for _, a := range p.Network().ArcIndices() {
		if !p.IsCapacitated(a) {
			continue
		}
		row := engine.NewRow(lpmodel.RowLE, p.Capacity(a))
		art := engine.NewVariable(lpmodel.VarContinuous, math.Inf(1), 1e6) // arc-capacity violation is never expected to price in; kept finite to avoid an unbounded dual
		engine.SetCoefficient(row, art, -1)
		r.arcCapRow[a] = row
	}

	for _, sc := range p.Constraints() {
		r.sideRow[sc.Index] = r.newSideRow(sc)
	}

	return r
}

func (r *RMP) newSideRow(sc problem.SideConstraint) lpmodel.RowHandle {
	row := r.engine.NewRow(lpmodel.RowSense(sc.Type), sc.RHS)
	switch sc.Type {
	case problem.GE:
		art := r.engine.NewVariable(lpmodel.VarContinuous, math.Inf(1), sc.ViolationPenalty)
		r.engine.SetCoefficient(row, art, 1)
	case problem.LE:
		art := r.engine.NewVariable(lpmodel.VarContinuous, math.Inf(1), sc.ViolationPenalty)
		r.engine.SetCoefficient(row, art, -1)
	case problem.EQ:
		pos := r.engine.NewVariable(lpmodel.VarContinuous, math.Inf(1), sc.ViolationPenalty)
		neg := r.engine.NewVariable(lpmodel.VarContinuous, math.Inf(1), sc.ViolationPenalty)
		r.engine.SetCoefficient(row, pos, 1)
		r.engine.SetCoefficient(row, neg, -1)
	}

	return row
}

func (r *RMP) conservationRow(commodity problem.CommodityIndex, v gflow.VertexIndex) lpmodel.RowHandle {
	key := conservKey{commodity: commodity, vertex: v}
	if row, ok := r.conservRow[key]; ok {
		return row
	}
	row := r.engine.NewRow(lpmodel.RowEQ, 0)
	r.conservRow[key] = row

	return row
}

// AddColumn installs c as a new RMP variable, wiring its coefficients into
// every row its hyper-tree touches, per spec §4.5. It is a no-op (added
// = false) if c's tree references an arc outside the current network
// (RCVF-pruned) or an identical (tree, commodity) column already exists.
func (r *RMP) AddColumn(c Column) (bool, error) {
	for _, a := range c.Tree.Arcs() {
		if !r.problem.Network().HasArc(a) {
			return false, nil
		}
	}

	key := keyFor(c.Commodity, c.Tree)
	if _, exists := r.columns[key]; exists {
		return false, nil
	}

	commodity := r.problem.Commodity(c.Commodity)
	v := r.engine.NewVariable(varKind(c.VarType), math.Inf(1), c.Cost)

	head := c.Tree.Head()
	if head == commodity.Sink {
		r.engine.SetCoefficient(r.demandRow[c.Commodity], v, 1)
		r.engine.SetCoefficient(r.capacityRow[c.Commodity], v, 1)
	} else {
		row := r.conservationRow(c.Commodity, head)
		r.engine.SetCoefficient(row, v, 1)
	}

	for _, tail := range c.Tree.Tails() {
		if tail == commodity.Source {
			continue
		}
		mult, _ := c.Tree.TailMultiplier(tail)
		row := r.conservationRow(c.Commodity, tail)
		r.engine.SetCoefficient(row, v, -mult)
	}

	sideAgg := make(map[problem.ConstraintIndex]float64)
	for _, a := range c.Tree.Arcs() {
		mult, _ := c.Tree.Multiplicity(a)
		if row, ok := r.arcCapRow[a]; ok {
			r.engine.SetCoefficient(row, v, mult)
		}
		for _, ac := range r.problem.ArcConstraintCoeffs(a) {
			sideAgg[ac.Constraint] += mult * ac.Coeff
		}
	}
	for idx, coeff := range sideAgg {
		if row, ok := r.sideRow[idx]; ok {
			r.engine.SetCoefficient(row, v, coeff)
		}
	}

	r.columns[key] = &columnRecord{column: c, varHandle: v, active: true}
	r.order = append(r.order, key)

	return true, nil
}

// Solve solves the RMP under opts.
func (r *RMP) Solve(opts lpmodel.SolveOptions) (lpmodel.Result, error) {
	return r.engine.Solve(opts)
}

func round(x float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))

	return math.Round(x*scale) / scale
}

// ExtractPrimal sums, for each commodity, every active column's rounded
// variable value times each member arc's multiplicity in that column's
// hyper-tree, per spec §4.5.
func (r *RMP) ExtractPrimal(precision int) solution.PrimalSolution {
	out := make(solution.PrimalSolution, len(r.problem.Commodities()))
	for _, c := range r.problem.Commodities() {
		out[c.Index] = solution.ArcFlowSolution{
			Commodity: c.Index,
			Source:    c.Source,
			Sink:      c.Sink,
			Flow:      make(map[gflow.ArcIndex]float64),
		}
	}

	for _, key := range r.order {
		rec := r.columns[key]
		if !rec.active {
			continue
		}
		val := round(r.engine.PrimalValue(rec.varHandle), precision)
		if val == 0 {
			continue
		}
		entry := out[rec.column.Commodity]
		for _, a := range rec.column.Tree.Arcs() {
			mult, _ := rec.column.Tree.Multiplicity(a)
			entry.Flow[a] += val * mult
		}
	}

	return out
}

// ExtractDual retrieves every row's dual, rounded to precision, defined
// only when the RMP's last solve was a pure linear relaxation.
func (r *RMP) ExtractDual(precision int) solution.DualSolution {
	d := solution.DualSolution{
		DemandDual:      make(map[problem.CommodityIndex]float64, len(r.demandRow)),
		CapacityDual:    make(map[problem.CommodityIndex]float64, len(r.capacityRow)),
		ConstraintDual:  make(map[problem.ConstraintIndex]float64, len(r.sideRow)),
		ArcCapacityDual: make(map[gflow.ArcIndex]float64, len(r.arcCapRow)),
	}
	for k, row := range r.demandRow {
		d.DemandDual[k] = round(r.engine.RowDual(row), precision)
	}
	for k, row := range r.capacityRow {
		d.CapacityDual[k] = round(r.engine.RowDual(row), precision)
	}
	for idx, row := range r.sideRow {
		d.ConstraintDual[idx] = round(r.engine.RowDual(row), precision)
	}
	for a, row := range r.arcCapRow {
		d.ArcCapacityDual[a] = round(r.engine.RowDual(row), precision)
	}

	return d
}

// ApplyRetention deletes (fixes upper bound to 0, drops from the active
// map) every column whose variable has been 0 for more than maxZeroIters
// consecutive ApplyRetention calls (one per column-generation iteration),
// per spec §4.7 step 6.
func (r *RMP) ApplyRetention(maxZeroIters int) {
	for _, key := range r.order {
		rec := r.columns[key]
		if !rec.active {
			continue
		}
		if r.engine.PrimalValue(rec.varHandle) == 0 {
			rec.zeroIters++
		} else {
			rec.zeroIters = 0
		}
		if rec.zeroIters > maxZeroIters {
			r.engine.SetUpperBound(rec.varHandle, 0)
			rec.active = false
		}
	}
}
