// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package fastmap

import (
	"maps"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexMapZeroValue(t *testing.T) {
	t.Parallel()
	var m IndexMap[string]

	assert.True(t, m.IsEmpty())
	_, ok := m.Get(0)
	assert.False(t, ok)
	_, ok = m.Delete(0)
	assert.False(t, ok)
	_, _, ok = m.First()
	assert.False(t, ok)
	_, _, ok = m.Floor(math.MaxUint32)
	assert.False(t, ok)

	_, exists := m.Put(0, "zero")
	assert.False(t, exists)
	assert.Equal(t, 1, m.Size())
}

func TestIndexMapNested(t *testing.T) {
	t.Parallel()
	var m IndexMap[string]

	m.Put(1, "a")
	m.Put(0x10, "b")
	m.Put(0x11, "c")

	assert.Equal(t, []uint32{1, 0x10, 0x11}, collect2(m.All()))
	assert.Equal(t, []uint32{0x11, 0x10, 1}, collect2(m.Backward()))

	i, v, ok := m.Ceiling(2)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x10), i)
	assert.Equal(t, "b", v)

	i, _, ok = m.Floor(0xf)
	assert.True(t, ok)
	assert.Equal(t, uint32(1), i)

	_, _, ok = m.Ceiling(0x12)
	assert.False(t, ok)

	assert.Equal(t, []uint32{0x10, 0x11}, collect2(m.AllFrom(2)))
	assert.Equal(t, []uint32{0x10, 1}, collect2(m.BackwardFrom(0x10)))

	old, exists := m.Put(0x10, "B")
	assert.True(t, exists)
	assert.Equal(t, "b", old)

	v, ok = m.Delete(0x10)
	assert.True(t, ok)
	assert.Equal(t, "B", v)
	assert.Equal(t, []uint32{1, 0x11}, collect2(m.All()))
	require.NoError(t, m.trie.Validate())
}

func TestIndexMapExtremes(t *testing.T) {
	t.Parallel()
	var m IndexMap[int]

	m.Put(0, 0)
	m.Put(math.MaxUint32, -1)

	assert.Equal(t, []uint32{0, math.MaxUint32}, collect2(m.All()))
	assert.Equal(t, []uint32{math.MaxUint32}, collect2(m.AllFrom(1)))
	assert.Equal(t, []uint32{0}, collect2(m.BackwardFrom(math.MaxUint32-1)))

	i, _, ok := m.Last()
	assert.True(t, ok)
	assert.Equal(t, uint32(math.MaxUint32), i)
}

func TestIndexMapRandom(t *testing.T) {
	t.Parallel()
	prng := rand.New(rand.NewPCG(13, 13))

	var m IndexMap[uint32]
	gold := map[uint32]uint32{}

	for range workLoadN() {
		i := prng.Uint32() >> prng.IntN(32)
		switch prng.IntN(3) {
		case 0:
			_, wantOK := gold[i]
			_, ok := m.Delete(i)
			require.Equal(t, wantOK, ok)
			delete(gold, i)
		default:
			m.Put(i, ^i)
			gold[i] = ^i
		}
	}

	require.Equal(t, len(gold), m.Size())
	require.NoError(t, m.trie.Validate())

	want := slices.Sorted(maps.Keys(gold))
	if diff := cmp.Diff(want, collect2(m.All())); diff != "" {
		t.Fatalf("All() mismatch (-want +got):\n%s", diff)
	}

	for i, v := range m.All() {
		require.Equal(t, ^i, v)
	}

	c := m.Clone()
	assert.True(t, m.Equal(c))
	c.Put(want[0], ^want[0]+1)
	assert.False(t, m.Equal(c))

	m.Clear()
	assert.True(t, m.IsEmpty())
	assert.Equal(t, len(gold), c.Size())
}
