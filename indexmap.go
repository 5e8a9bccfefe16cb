// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package fastmap

import (
	"iter"
	"math"

	"github.com/gaissmai/fastmap/internal/trie"
	"github.com/gaissmai/fastmap/internal/value"
)

// IndexMap is a sparse map from uint32 indices to values V,
// ordered by index. Every index has its own trie leaf, there are
// no collisions.
//
// The zero value is an empty map, ready to use.
//
// An IndexMap is safe for concurrent readers, concurrent reads and
// writes must be externally synchronized.
type IndexMap[V any] struct {
	trie trie.Trie[V]
	size int
}

// Size returns the number of entries.
func (m *IndexMap[V]) Size() int {
	if m == nil {
		return 0
	}
	return m.size
}

// IsEmpty reports whether the map has no entries.
func (m *IndexMap[V]) IsEmpty() bool {
	return m.Size() == 0
}

// Clear removes all entries.
func (m *IndexMap[V]) Clear() {
	m.trie.Clear()
	m.size = 0
}

// Get returns the value at index i and true, or the zero value and false.
func (m *IndexMap[V]) Get(i uint32) (val V, ok bool) {
	if leaf := m.trie.Get(i); leaf != nil {
		return leaf.Item, true
	}
	return
}

// Contains reports whether index i is present.
func (m *IndexMap[V]) Contains(i uint32) bool {
	return m.trie.Get(i) != nil
}

// Put stores val at index i. It returns the previous value and true
// if i was already present, the zero value and false otherwise.
func (m *IndexMap[V]) Put(i uint32, val V) (old V, exists bool) {
	leaf, created := m.trie.Entry(i)
	if created {
		m.size++
	}
	old, leaf.Item = leaf.Item, val
	return old, !created
}

// Delete removes index i and returns its value and true,
// or the zero value and false if i is not present.
func (m *IndexMap[V]) Delete(i uint32) (val V, ok bool) {
	if leaf := m.trie.Delete(i); leaf != nil {
		m.size--
		return leaf.Item, true
	}
	return
}

// All returns an iterator over all entries in ascending index order.
//
// The map must not be modified during the iteration.
func (m *IndexMap[V]) All() iter.Seq2[uint32, V] {
	return func(yield func(uint32, V) bool) {
		for leaf := range m.trie.All() {
			if !yield(leaf.Index, leaf.Item) {
				return
			}
		}
	}
}

// AllFrom returns an iterator over all entries with index >= i in
// ascending order.
func (m *IndexMap[V]) AllFrom(i uint32) iter.Seq2[uint32, V] {
	return func(yield func(uint32, V) bool) {
		for leaf := m.trie.Ceiling(i); leaf != nil; {
			if !yield(leaf.Index, leaf.Item) || leaf.Index == math.MaxUint32 {
				return
			}
			leaf = m.trie.Ceiling(leaf.Index + 1)
		}
	}
}

// Backward returns an iterator over all entries in descending index order.
func (m *IndexMap[V]) Backward() iter.Seq2[uint32, V] {
	return func(yield func(uint32, V) bool) {
		for leaf := range m.trie.Backward() {
			if !yield(leaf.Index, leaf.Item) {
				return
			}
		}
	}
}

// BackwardFrom returns an iterator over all entries with index <= i in
// descending order.
func (m *IndexMap[V]) BackwardFrom(i uint32) iter.Seq2[uint32, V] {
	return func(yield func(uint32, V) bool) {
		for leaf := m.trie.Floor(i); leaf != nil; {
			if !yield(leaf.Index, leaf.Item) || leaf.Index == 0 {
				return
			}
			leaf = m.trie.Floor(leaf.Index - 1)
		}
	}
}

// First returns the entry with the smallest index.
func (m *IndexMap[V]) First() (i uint32, val V, ok bool) {
	return unpack(m.trie.First())
}

// Last returns the entry with the largest index.
func (m *IndexMap[V]) Last() (i uint32, val V, ok bool) {
	return unpack(m.trie.Last())
}

// Ceiling returns the entry with the smallest index >= i.
func (m *IndexMap[V]) Ceiling(i uint32) (uint32, V, bool) {
	return unpack(m.trie.Ceiling(i))
}

// Floor returns the entry with the largest index <= i.
func (m *IndexMap[V]) Floor(i uint32) (uint32, V, bool) {
	return unpack(m.trie.Floor(i))
}

func unpack[V any](leaf *trie.Leaf[V]) (i uint32, val V, ok bool) {
	if leaf == nil {
		return
	}
	return leaf.Index, leaf.Item, true
}

// Clone returns a deep copy of the map.
// Values implementing [Cloner] are cloned, all others are copied.
func (m *IndexMap[V]) Clone() *IndexMap[V] {
	if m == nil {
		return nil
	}
	return &IndexMap[V]{
		trie: m.trie.Clone(value.ClonerOf[V]()),
		size: m.size,
	}
}

// Equal reports whether both maps have the same indices with equal values.
func (m *IndexMap[V]) Equal(o *IndexMap[V]) bool {
	if m == o {
		return true
	}
	if m.Size() != o.Size() {
		return false
	}
	if m.Size() == 0 {
		return true
	}

	for i, v := range m.All() {
		ov, ok := o.Get(i)
		if !ok || !value.Equal(v, ov) {
			return false
		}
	}
	return true
}
