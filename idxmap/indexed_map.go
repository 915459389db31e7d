package idxmap

// IndexedMap is a dense array keyed by K.Index(), with O(1) logical Reset
// via a generation counter. Reads of a slot whose stamp is behind the
// current generation return the configured default instead of the stale
// value that is still physically sitting in the backing array.
//
// Complexity: Get/Set are O(1) once the slot exists; Reset is O(1); a Set
// beyond the current maximum index reallocates the backing arrays to
// exactly that index plus one and copies them, which is O(n).
type IndexedMap[K Indexed, V any] struct {
	values     []V
	stamps     []uint64
	generation uint64
	def        V
}

// NewIndexedMap creates an empty IndexedMap with the given default value
// returned for any key that has never been written (or was written before
// the last Reset).
func NewIndexedMap[K Indexed, V any](def V) *IndexedMap[K, V] {
	return &IndexedMap[K, V]{generation: 1, def: def}
}

// NewIndexedMapFrom bulk-constructs an IndexedMap from a set of keys and a
// per-key value function, marking every produced entry with the current
// generation so subsequent Resets behave identically to entries written one
// at a time.
func NewIndexedMapFrom[K Indexed, V any](def V, keys []K, fn func(K) V) *IndexedMap[K, V] {
	m := NewIndexedMap[K, V](def)
	for _, k := range keys {
		m.Set(k, fn(k))
	}

	return m
}

func (m *IndexedMap[K, V]) grow(n int) {
	if n < len(m.values) {
		return
	}
	newLen := n + 1
	values := make([]V, newLen)
	stamps := make([]uint64, newLen)
	copy(values, m.values)
	copy(stamps, m.stamps)
	m.values = values
	m.stamps = stamps
}

// Get returns the value stored for k, or the configured default if k was
// never written under the current generation.
func (m *IndexedMap[K, V]) Get(k K) V {
	i := k.Index()
	if i < 0 || i >= len(m.values) || m.stamps[i] != m.generation {
		return m.def
	}

	return m.values[i]
}

// Has reports whether k has a live value under the current generation.
func (m *IndexedMap[K, V]) Has(k K) bool {
	i := k.Index()

	return i >= 0 && i < len(m.values) && m.stamps[i] == m.generation
}

// Set stores v for k, growing the backing array if necessary.
func (m *IndexedMap[K, V]) Set(k K, v V) {
	i := k.Index()
	if i < 0 {
		return
	}
	m.grow(i)
	m.values[i] = v
	m.stamps[i] = m.generation
}

// Reset logically clears every entry in O(1) by incrementing the
// generation counter. The backing array is not touched; stale slots will
// be overwritten lazily as new values are Set.
func (m *IndexedMap[K, V]) Reset() {
	m.generation++
}

// Default returns the configured default value.
func (m *IndexedMap[K, V]) Default() V {
	return m.def
}
