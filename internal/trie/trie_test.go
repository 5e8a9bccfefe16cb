// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package trie

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var workLoadN = func() int {
	if testing.Short() {
		return 1_000
	}
	return 50_000
}

func indices[E any](t *Trie[E]) []uint32 {
	var got []uint32
	for leaf := range t.All() {
		got = append(got, leaf.Index)
	}
	return got
}

func TestTrieZeroValue(t *testing.T) {
	t.Parallel()
	var tr Trie[int]

	assert.True(t, tr.IsEmpty())
	assert.Nil(t, tr.Get(0))
	assert.Nil(t, tr.Delete(0))
	assert.Nil(t, tr.First())
	assert.Nil(t, tr.Last())
	assert.Nil(t, tr.Ceiling(42))
	assert.Nil(t, tr.Floor(42))
	assert.NoError(t, tr.Validate())
	assert.Equal(t, Stats{}, tr.Stats())
}

func TestTrieCommonShift(t *testing.T) {
	t.Parallel()
	tests := []struct {
		i, j uint32
		want uint8
	}{
		{0x1, 0x0, 0},
		{0xf, 0x0, 0},
		{0x10, 0x1, 4},
		{0x11, 0x10, 0},
		{0xff, 0x100, 8},
		{0x1000, 0x0, 12},
		{0x10000, 0x0, 16},
		{0x100000, 0x0, 20},
		{0x1000000, 0x0, 24},
		{0x80000000, 0x7fffffff, 28},
		{math.MaxUint32, 0, 28},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, commonShift(tt.i, tt.j), "commonShift(%#x, %#x)", tt.i, tt.j)
		assert.Equal(t, tt.want, commonShift(tt.j, tt.i), "commonShift(%#x, %#x)", tt.j, tt.i)
	}

	assert.Panics(t, func() { commonShift(7, 7) })
}

// The scenario from the docs: indices 0x1, 0x10, 0x11 give a
// branch at shift 4 with a nested branch at shift 0.
func TestTrieNestedBranches(t *testing.T) {
	t.Parallel()
	var tr Trie[string]

	for _, idx := range []uint32{0x1, 0x10, 0x11} {
		leaf, created := tr.Entry(idx)
		require.True(t, created)
		leaf.Item = "x"
	}

	root, ok := tr.root.(*branch[string])
	require.True(t, ok, "root must be a branch")
	assert.Equal(t, uint8(4), root.shift)
	assert.Equal(t, uint32(0), root.prefix)
	assert.Equal(t, 2, root.children.Len())

	nested, ok := root.children.MustGet(1).(*branch[string])
	require.True(t, ok, "slot 1 must be a branch")
	assert.Equal(t, uint8(0), nested.shift)
	assert.Equal(t, uint32(1), nested.prefix)

	assert.Equal(t, Stats{Branches: 2, Leaves: 3, MaxDepth: 2}, tr.Stats())
	assert.Equal(t, []uint32{0x1, 0x10, 0x11}, indices(&tr))
	require.NoError(t, tr.Validate())

	// delete collapses the nested branch onto its survivor
	require.NotNil(t, tr.Delete(0x11))
	assert.Equal(t, Stats{Branches: 1, Leaves: 2, MaxDepth: 1}, tr.Stats())
	require.NoError(t, tr.Validate())

	// and the root onto the last leaf
	require.NotNil(t, tr.Delete(0x1))
	leaf, ok := tr.root.(*Leaf[string])
	require.True(t, ok, "root must be a leaf")
	assert.Equal(t, uint32(0x10), leaf.Index)

	require.NotNil(t, tr.Delete(0x10))
	assert.True(t, tr.IsEmpty())
}

func TestTrieEntryExisting(t *testing.T) {
	t.Parallel()
	var tr Trie[int]

	leaf, created := tr.Entry(7)
	require.True(t, created)
	leaf.Item = 42

	leaf, created = tr.Entry(7)
	require.False(t, created)
	assert.Equal(t, 42, leaf.Item)
}

func TestTrieExtremes(t *testing.T) {
	t.Parallel()
	var tr Trie[int]

	for _, idx := range []uint32{0, math.MaxUint32, 0x80000000, 0x7fffffff} {
		tr.Entry(idx)
	}
	require.NoError(t, tr.Validate())

	assert.Equal(t, []uint32{0, 0x7fffffff, 0x80000000, math.MaxUint32}, indices(&tr))
	assert.Equal(t, uint32(0), tr.First().Index)
	assert.Equal(t, uint32(math.MaxUint32), tr.Last().Index)
	assert.Equal(t, uint32(0x80000000), tr.Ceiling(0x7fffffff+1).Index)
	assert.Equal(t, uint32(0x7fffffff), tr.Floor(0x80000000-1).Index)
	assert.Equal(t, uint32(math.MaxUint32), tr.Ceiling(math.MaxUint32).Index)
}

func TestTrieCeilingFloor(t *testing.T) {
	t.Parallel()
	var tr Trie[int]

	// 0x100, 0x200, ... 0x1000
	for i := uint32(1); i <= 16; i++ {
		tr.Entry(i << 8)
	}

	tests := []struct {
		index   uint32
		ceiling uint32
		cOK     bool
		floor   uint32
		fOK     bool
	}{
		{0, 0x100, true, 0, false},
		{0x100, 0x100, true, 0x100, true},
		{0x101, 0x200, true, 0x100, true},
		{0x2ff, 0x300, true, 0x200, true},
		{0x1000, 0x1000, true, 0x1000, true},
		{0x1001, 0, false, 0x1000, true},
		{math.MaxUint32, 0, false, 0x1000, true},
	}

	for _, tt := range tests {
		c := tr.Ceiling(tt.index)
		if assert.Equal(t, tt.cOK, c != nil, "Ceiling(%#x)", tt.index) && c != nil {
			assert.Equal(t, tt.ceiling, c.Index, "Ceiling(%#x)", tt.index)
		}
		f := tr.Floor(tt.index)
		if assert.Equal(t, tt.fOK, f != nil, "Floor(%#x)", tt.index) && f != nil {
			assert.Equal(t, tt.floor, f.Index, "Floor(%#x)", tt.index)
		}
	}
}

func TestTrieRandom(t *testing.T) {
	t.Parallel()
	prng := rand.New(rand.NewPCG(42, 42))
	n := workLoadN()

	var tr Trie[uint32]
	gold := map[uint32]bool{}

	for range n {
		// mix dense and sparse indices
		idx := prng.Uint32()
		if prng.IntN(2) == 0 {
			idx &= 0xfff
		}
		leaf, created := tr.Entry(idx)
		require.Equal(t, !gold[idx], created, "Entry(%#x)", idx)
		leaf.Item = idx
		gold[idx] = true
	}
	require.NoError(t, tr.Validate())

	want := make([]uint32, 0, len(gold))
	for idx := range gold {
		want = append(want, idx)
	}
	slices.Sort(want)

	if diff := cmp.Diff(want, indices(&tr)); diff != "" {
		t.Fatalf("All() mismatch (-want +got):\n%s", diff)
	}

	var backward []uint32
	for leaf := range tr.Backward() {
		backward = append(backward, leaf.Index)
	}
	slices.Reverse(backward)
	if diff := cmp.Diff(want, backward); diff != "" {
		t.Fatalf("Backward() mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, want[0], tr.First().Index)
	require.Equal(t, want[len(want)-1], tr.Last().Index)

	// ceiling and floor against binary search
	for range 1_000 {
		idx := prng.Uint32()
		if prng.IntN(2) == 0 {
			idx &= 0xfff
		}
		pos, found := slices.BinarySearch(want, idx)

		c := tr.Ceiling(idx)
		if pos < len(want) {
			require.NotNil(t, c, "Ceiling(%#x)", idx)
			require.Equal(t, want[pos], c.Index, "Ceiling(%#x)", idx)
		} else {
			require.Nil(t, c, "Ceiling(%#x)", idx)
		}

		f := tr.Floor(idx)
		if !found {
			pos--
		}
		if pos >= 0 {
			require.NotNil(t, f, "Floor(%#x)", idx)
			require.Equal(t, want[pos], f.Index, "Floor(%#x)", idx)
		} else {
			require.Nil(t, f, "Floor(%#x)", idx)
		}
	}

	// minimality: every branch has >= 2 children, so branches < leaves
	st := tr.Stats()
	require.Equal(t, len(gold), st.Leaves)
	require.Less(t, st.Branches, st.Leaves)
	require.LessOrEqual(t, st.MaxDepth, 8)

	// delete in random order, validate the structure along the way
	prng.Shuffle(len(want), func(i, j int) { want[i], want[j] = want[j], want[i] })
	for i, idx := range want {
		leaf := tr.Delete(idx)
		require.NotNil(t, leaf, "Delete(%#x)", idx)
		require.Equal(t, idx, leaf.Item)
		require.Nil(t, tr.Get(idx))
		require.Nil(t, tr.Delete(idx), "Delete(%#x) twice", idx)

		if i%97 == 0 {
			require.NoError(t, tr.Validate())
			st := tr.Stats()
			require.Equal(t, len(want)-i-1, st.Leaves)
		}
	}
	require.True(t, tr.IsEmpty())
}

func TestTrieDeleteMissing(t *testing.T) {
	t.Parallel()
	var tr Trie[int]

	for _, idx := range []uint32{0x10, 0x20, 0x21} {
		tr.Entry(idx)
	}
	before := tr.Stats()

	for _, idx := range []uint32{0x0, 0x11, 0x22, 0x1000, math.MaxUint32} {
		assert.Nil(t, tr.Delete(idx), "Delete(%#x)", idx)
	}
	assert.Equal(t, before, tr.Stats())
	assert.NoError(t, tr.Validate())
}

func TestTrieAllStop(t *testing.T) {
	t.Parallel()
	var tr Trie[int]
	for i := range uint32(100) {
		tr.Entry(i * 3)
	}

	n := 0
	for range tr.All() {
		n++
		if n == 10 {
			break
		}
	}
	assert.Equal(t, 10, n)

	n = 0
	for range tr.Backward() {
		n++
		if n == 10 {
			break
		}
	}
	assert.Equal(t, 10, n)
}

func TestTrieClone(t *testing.T) {
	t.Parallel()
	var tr Trie[[]int]

	for i := range uint32(1_000) {
		leaf, _ := tr.Entry(i * 7919)
		leaf.Item = []int{int(i)}
	}

	deep := func(s []int) []int { return slices.Clone(s) }
	clone := tr.Clone(deep)
	require.NoError(t, clone.Validate())
	require.Equal(t, tr.Stats(), clone.Stats())

	// structure is independent
	clone.Delete(0)
	require.NotNil(t, tr.Get(0))

	// items are deep copies
	clone.Get(7919).Item[0] = -1
	require.Equal(t, 1, tr.Get(7919).Item[0])

	// without cloneFn the items are shallow copies
	shallow := tr.Clone(nil)
	shallow.Get(7919).Item[0] = -1
	require.Equal(t, -1, tr.Get(7919).Item[0])
}

func TestTrieValidateCorrupt(t *testing.T) {
	t.Parallel()

	// a branch with a single child must have been downsized
	b := &branch[int]{shift: 4}
	b.children.InsertAt(3, &Leaf[int]{Index: 0x30})

	tr := Trie[int]{root: b}
	err := tr.Validate()
	require.ErrorIs(t, err, errCorrupt)
	assert.Contains(t, err.Error(), "1 children in slots [3]")

	// misplaced leaf
	b.children.InsertAt(5, &Leaf[int]{Index: 0x40})
	err = tr.Validate()
	require.ErrorIs(t, err, errCorrupt)
	assert.Contains(t, err.Error(), "leaf 0x40 misplaced")
}

func FuzzTrie(f *testing.F) {
	f.Add(uint32(1), uint32(0x10), uint32(0x11), uint32(0x11))
	f.Add(uint32(0), uint32(math.MaxUint32), uint32(0x80000000), uint32(0))

	f.Fuzz(func(t *testing.T, a, b, c, del uint32) {
		var tr Trie[uint32]
		gold := map[uint32]bool{}
		for _, idx := range []uint32{a, b, c} {
			tr.Entry(idx)
			gold[idx] = true
		}
		if err := tr.Validate(); err != nil {
			t.Fatal(err)
		}

		leaf := tr.Delete(del)
		if (leaf != nil) != gold[del] {
			t.Fatalf("Delete(%#x), expected found=%v", del, gold[del])
		}
		delete(gold, del)

		if err := tr.Validate(); err != nil {
			t.Fatal(err)
		}
		if st := tr.Stats(); st.Leaves != len(gold) {
			t.Fatalf("Leaves, expected %d, got %d", len(gold), st.Leaves)
		}
	})
}
