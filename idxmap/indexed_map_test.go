package idxmap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowlattice/genflow/idxmap"
)

type intKey int

func (k intKey) Index() int { return int(k) }

func TestIndexedMap_GetSetDefault(t *testing.T) {
	m := idxmap.NewIndexedMap[intKey, float64](-1)
	require.Equal(t, -1.0, m.Get(intKey(3)))

	m.Set(intKey(3), 42.0)
	require.Equal(t, 42.0, m.Get(intKey(3)))
	require.True(t, m.Has(intKey(3)))
	require.False(t, m.Has(intKey(4)))
}

func TestIndexedMap_ResetIsO1AndStale(t *testing.T) {
	m := idxmap.NewIndexedMap[intKey, int](0)
	m.Set(intKey(0), 1)
	m.Set(intKey(1), 2)

	m.Reset()

	// Reads of keys not written since Reset return the configured default.
	require.Equal(t, 0, m.Get(intKey(0)))
	require.Equal(t, 0, m.Get(intKey(1)))
	require.False(t, m.Has(intKey(0)))

	m.Set(intKey(0), 99)
	require.Equal(t, 99, m.Get(intKey(0)))
	require.Equal(t, 0, m.Get(intKey(1)))
}

func TestIndexedMap_BulkConstruct(t *testing.T) {
	keys := []intKey{0, 1, 2, 3}
	m := idxmap.NewIndexedMapFrom[intKey, int](-1, keys, func(k intKey) int { return int(k) * 10 })
	require.Equal(t, 20, m.Get(intKey(2)))
	require.Equal(t, -1, m.Get(intKey(5)))
}
