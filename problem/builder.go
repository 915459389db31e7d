package problem

import (
	"errors"
	"math"

	"github.com/flowlattice/genflow/gflow"
	"github.com/flowlattice/genflow/network"
)

// Sentinel errors for the builder façade.
var (
	// ErrNilConstructor mirrors the teacher's builder package: a
	// defensive guard, not expected in practice.
	ErrNilConstructor = errors.New("problem: nil constructor")
)

// ArcOption configures optional per-arc attributes at NewArc time, in the
// style of the teacher's EdgeOption.
type ArcOption func(*arcAttrs)

type arcAttrs struct {
	cost     float64
	capacity float64
	varType  gflow.VarType
}

func defaultArcAttrs() arcAttrs {
	return arcAttrs{cost: 0, capacity: math.Inf(1), varType: gflow.Continuous}
}

// WithCost sets an arc's cost coefficient (default 0).
func WithCost(cost float64) ArcOption { return func(a *arcAttrs) { a.cost = cost } }

// WithCapacity sets an arc's capacity (default +Inf, uncapacitated).
func WithCapacity(cap float64) ArcOption { return func(a *arcAttrs) { a.capacity = cap } }

// WithVarType sets an arc's variable domain (default Continuous).
func WithVarType(vt gflow.VarType) ArcOption { return func(a *arcAttrs) { a.varType = vt } }

// CommodityOption configures optional commodity attributes.
type CommodityOption func(*Commodity)

// WithViolationPenalty overrides a commodity's default violation penalty
// of 1e3 (constraints use WithConstraintPenalty).
func WithViolationPenalty(p float64) CommodityOption {
	return func(c *Commodity) { c.ViolationPenalty = p }
}

// ConstraintOption configures optional constraint attributes.
type ConstraintOption func(*constraintAttrs)

type constraintAttrs struct {
	penalty float64
}

// WithConstraintPenalty overrides a constraint's default violation penalty
// of 1e3.
func WithConstraintPenalty(p float64) ConstraintOption {
	return func(a *constraintAttrs) { a.penalty = p }
}

// ConstraintHandle refers to the one or two SideConstraint rows produced by
// a single NewConstraint call: equal bounds produce one equality row; a
// genuine range [lb, ub] produces a >= row and a <= row, both tracked so
// SetConstraintCoefficient can fan a single coefficient out to both.
type ConstraintHandle struct {
	ge *ConstraintIndex
	le *ConstraintIndex
}

// pendingConstraint accumulates coefficients for one row before Build.
type pendingConstraint struct {
	typ     ConstraintType
	rhs     float64
	penalty float64
	coeffs  map[gflow.ArcIndex]float64
}

// Builder is the thin problem-building façade described by spec §6: it
// assigns dense indices to vertices/arcs/commodities/constraints and
// materialises a Problem via Build. It is not a general-purpose fluent
// topology DSL (that lives outside this library's scope); it exists only
// to make the external contract of §6 constructible end to end.
type Builder struct {
	nextVertex gflow.VertexIndex
	nextArc    gflow.ArcIndex

	vertices []gflow.VertexIndex
	arcs     []gflow.Arc
	attrs    map[gflow.ArcIndex]arcAttrs

	commodities []Commodity

	handles    []ConstraintHandle
	pendingRow []pendingConstraint // parallel to row indices assigned below
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{attrs: make(map[gflow.ArcIndex]arcAttrs)}
}

// NewVertex assigns and returns the next dense vertex index.
func (b *Builder) NewVertex() gflow.VertexIndex {
	v := b.nextVertex
	b.nextVertex++
	b.vertices = append(b.vertices, v)

	return v
}

func (b *Builder) addArc(a gflow.Arc, opts []ArcOption) gflow.ArcIndex {
	attrs := defaultArcAttrs()
	for _, opt := range opts {
		opt(&attrs)
	}
	b.attrs[a.Index] = attrs
	b.arcs = append(b.arcs, a)

	return a.Index
}

// NewArc is the single-simple-tail overload: tail --(1)--> head.
func (b *Builder) NewArc(tail, head gflow.VertexIndex, opts ...ArcOption) (gflow.ArcIndex, error) {
	idx := b.nextArc
	a, err := gflow.NewSimpleArc(idx, tail, 1, head)
	if err != nil {
		return 0, err
	}
	b.nextArc++

	return b.addArc(a, opts), nil
}

// NewArcWithMultiplier is the (tail, multiplier) overload.
func (b *Builder) NewArcWithMultiplier(tail gflow.VertexIndex, mult float64, head gflow.VertexIndex, opts ...ArcOption) (gflow.ArcIndex, error) {
	idx := b.nextArc
	a, err := gflow.NewSimpleArc(idx, tail, mult, head)
	if err != nil {
		return 0, err
	}
	b.nextArc++

	return b.addArc(a, opts), nil
}

// NewHyperArc is the tail->multiplier-map overload, for genuine hyper-arcs
// with two or more tails.
func (b *Builder) NewHyperArc(tails map[gflow.VertexIndex]float64, head gflow.VertexIndex, opts ...ArcOption) (gflow.ArcIndex, error) {
	refs := make([]gflow.TailRef, 0, len(tails))
	for v, m := range tails {
		refs = append(refs, gflow.TailRef{Vertex: v, Mult: m})
	}
	idx := b.nextArc
	a, err := gflow.NewArc(idx, refs, head)
	if err != nil {
		return 0, err
	}
	b.nextArc++

	return b.addArc(a, opts), nil
}

// NewCommodity creates a commodity, rejecting demand>capacity, negative
// demand, or infinite capacity, per spec §6.
func (b *Builder) NewCommodity(source, sink gflow.VertexIndex, demand, capacity float64, opts ...CommodityOption) (CommodityIndex, error) {
	idx := CommodityIndex(len(b.commodities))
	c := Commodity{Index: idx, Source: source, Sink: sink, Demand: demand, Capacity: capacity, ViolationPenalty: 1e3}
	for _, opt := range opts {
		opt(&c)
	}
	if err := validateCommodity(c); err != nil {
		return 0, err
	}
	b.commodities = append(b.commodities, c)

	return idx, nil
}

// NewConstraint creates a constraint handle for bounds [lb, ub], rejecting
// lb>ub, both infinite, or infeasible infinities. Equal bounds produce a
// single equality row; otherwise a >= lb row and/or a <= ub row are
// produced, per spec §6.
func (b *Builder) NewConstraint(lb, ub float64, opts ...ConstraintOption) (ConstraintHandle, error) {
	if lb > ub {
		return ConstraintHandle{}, ErrInvalidBounds
	}
	if math.IsInf(lb, -1) && math.IsInf(ub, 1) {
		return ConstraintHandle{}, ErrInvalidBounds
	}
	if math.IsInf(lb, 1) || math.IsInf(ub, -1) {
		return ConstraintHandle{}, ErrInvalidBounds
	}

	attrs := constraintAttrs{penalty: 1e3}
	for _, opt := range opts {
		opt(&attrs)
	}

	if lb == ub {
		idx := b.newRow(EQ, lb, attrs.penalty)

		return ConstraintHandle{ge: &idx}, nil
	}

	var h ConstraintHandle
	if !math.IsInf(lb, -1) {
		idx := b.newRow(GE, lb, attrs.penalty)
		h.ge = &idx
	}
	if !math.IsInf(ub, 1) {
		idx := b.newRow(LE, ub, attrs.penalty)
		h.le = &idx
	}

	return h, nil
}

func (b *Builder) newRow(typ ConstraintType, rhs, penalty float64) ConstraintIndex {
	idx := ConstraintIndex(len(b.pendingRow))
	b.pendingRow = append(b.pendingRow, pendingConstraint{typ: typ, rhs: rhs, penalty: penalty, coeffs: make(map[gflow.ArcIndex]float64)})

	return idx
}

// SetCost overrides an arc's cost coefficient.
func (b *Builder) SetCost(a gflow.ArcIndex, cost float64) {
	attrs := b.attrs[a]
	attrs.cost = cost
	b.attrs[a] = attrs
}

// SetCapacity overrides an arc's capacity.
func (b *Builder) SetCapacity(a gflow.ArcIndex, cap float64) {
	attrs := b.attrs[a]
	attrs.capacity = cap
	b.attrs[a] = attrs
}

// SetVarType overrides an arc's variable domain.
func (b *Builder) SetVarType(a gflow.ArcIndex, vt gflow.VarType) {
	attrs := b.attrs[a]
	attrs.varType = vt
	b.attrs[a] = attrs
}

// SetConstraintCoefficient sets arc a's coefficient in every row
// referenced by handle.
func (b *Builder) SetConstraintCoefficient(h ConstraintHandle, a gflow.ArcIndex, coeff float64) {
	if h.ge != nil {
		b.pendingRow[int(*h.ge)].coeffs[a] = coeff
	}
	if h.le != nil {
		b.pendingRow[int(*h.le)].coeffs[a] = coeff
	}
}

// Build materialises the accumulated vertices/arcs/commodities/constraints
// into a Problem, constructing its Network and pushing every builder-level
// constraint as the base layer of the constraint stack.
func (b *Builder) Build() (*Problem, error) {
	net, err := network.New(b.vertices, b.arcs)
	if err != nil {
		return nil, err
	}

	cost := make(map[gflow.ArcIndex]float64, len(b.attrs))
	capacity := make(map[gflow.ArcIndex]float64, len(b.attrs))
	varType := make(map[gflow.ArcIndex]gflow.VarType, len(b.attrs))
	for idx, a := range b.attrs {
		cost[idx] = a.cost
		capacity[idx] = a.capacity
		varType[idx] = a.varType
	}

	p, err := New(net, cost, capacity, varType, b.commodities)
	if err != nil {
		return nil, err
	}
	for _, row := range b.pendingRow {
		p.Push(row.coeffs, row.typ, row.rhs, row.penalty)
	}

	return p, nil
}
