// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package fastmap

import (
	"iter"
	"math"

	"github.com/gaissmai/fastmap/internal/trie"
	"github.com/gaissmai/fastmap/internal/value"
	"github.com/gaissmai/fastmap/order"
)

// Map is an ordered map from keys K to values V.
//
// The keys are placed in a 16-ary radix trie by the index of their
// [order.Order]. Keys with the same index are kept in a nested map
// ordered by the sub-order of the colliding key, or in a linear
// collision chain when the order has no sub-order.
//
// Iteration is in ascending index order, within a nested map in the
// order of the sub-order. For lexical and integer orders this is the
// natural order of the keys, for hashed orders it is arbitrary but stable.
//
// A Map is safe for concurrent readers, concurrent reads and writes
// must be externally synchronized. Use [Map.Clone] to publish
// immutable snapshots.
type Map[K, V any] struct {
	order order.Order[K]
	trie  trie.Trie[slot[K, V]]
	size  int
}

// slot is the trie item of a Map, a single entry or the
// nested collisions of all keys with the same index.
type slot[K, V any] struct {
	key   K
	value V
	sub   collisions[K, V]
}

// NewMap returns an empty map with the placement order ord.
// NewMap panics if ord is nil.
func NewMap[K, V any](ord order.Order[K]) *Map[K, V] {
	if ord == nil {
		panic("fastmap: NewMap with nil order")
	}
	return &Map[K, V]{order: ord}
}

// Order returns the placement order of the map.
func (m *Map[K, V]) Order() order.Order[K] {
	return m.order
}

// Size returns the number of entries.
func (m *Map[K, V]) Size() int {
	if m == nil {
		return 0
	}
	return m.size
}

// IsEmpty reports whether the map has no entries.
func (m *Map[K, V]) IsEmpty() bool {
	return m.Size() == 0
}

// Clear removes all entries.
func (m *Map[K, V]) Clear() {
	m.trie.Clear()
	m.size = 0
}

// Get returns the value for key and true, or the zero value and false.
func (m *Map[K, V]) Get(key K) (val V, ok bool) {
	leaf := m.trie.Get(m.order.Index(key))
	if leaf == nil {
		return
	}

	s := &leaf.Item
	if s.sub != nil {
		return s.sub.get(key)
	}
	if m.order.Equal(s.key, key) {
		return s.value, true
	}
	return
}

// Contains reports whether key is in the map.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Put stores val for key. It returns the previous value and true
// if key was already present, the zero value and false otherwise.
func (m *Map[K, V]) Put(key K, val V) (old V, exists bool) {
	leaf, created := m.trie.Entry(m.order.Index(key))
	s := &leaf.Item

	switch {
	case created:
		s.key, s.value = key, val
		m.size++
		return old, false

	case s.sub != nil:
		if c, ok := s.sub.(*chain[K, V]); ok {
			if sub := m.order.SubOrder(key); sub != nil {
				// key can be told apart from the chained keys, promote
				s.sub = c.promote(sub)
			}
		}
		old, exists = s.sub.put(key, val)
		if !exists {
			m.size++
		}
		return old, exists

	case m.order.Equal(s.key, key):
		old, s.value = s.value, val
		return old, true
	}

	// collision, promote the slot to a nested map
	// with the dislodged entry and the new one
	sub := m.newCollisions(key, s.key)
	sub.put(s.key, s.value)
	sub.put(key, val)

	*s = slot[K, V]{sub: sub}
	m.size++

	return old, false
}

// PutIfAbsent stores val for key only if key is not present.
// It returns the present value and true, or val and false if
// val was stored.
func (m *Map[K, V]) PutIfAbsent(key K, val V) (actual V, loaded bool) {
	if actual, loaded = m.Get(key); loaded {
		return actual, true
	}
	m.Put(key, val)
	return val, false
}

// Replace stores val for key only if key is present.
// It returns the previous value and true, or the zero value
// and false if key is not present and nothing was stored.
func (m *Map[K, V]) Replace(key K, val V) (old V, ok bool) {
	if _, ok = m.Get(key); !ok {
		return
	}
	return m.Put(key, val)
}

// CompareAndSwap stores newVal for key if key is present with a
// value equal to oldVal. Values are compared like in [Map.Equal].
func (m *Map[K, V]) CompareAndSwap(key K, oldVal, newVal V) bool {
	if v, ok := m.Get(key); !ok || !value.Equal(v, oldVal) {
		return false
	}
	m.Put(key, newVal)
	return true
}

// CompareAndDelete removes key if it is present with a
// value equal to oldVal. Values are compared like in [Map.Equal].
func (m *Map[K, V]) CompareAndDelete(key K, oldVal V) bool {
	if v, ok := m.Get(key); !ok || !value.Equal(v, oldVal) {
		return false
	}
	m.Delete(key)
	return true
}

// newCollisions returns the nested map for the colliding keys a and b.
// The sub-order of either key will do, a chain is only needed
// if the order can't tell both keys apart at the next level.
func (m *Map[K, V]) newCollisions(a, b K) collisions[K, V] {
	if sub := m.order.SubOrder(a); sub != nil {
		return NewMap[K, V](sub)
	}
	if sub := m.order.SubOrder(b); sub != nil {
		return NewMap[K, V](sub)
	}
	return newChain[K, V](m.order)
}

// Delete removes key and returns its value and true,
// or the zero value and false if key is not present.
//
// A nested map left empty is removed from the trie, a nested map
// with a single remaining entry stays nested.
func (m *Map[K, V]) Delete(key K) (val V, ok bool) {
	index := m.order.Index(key)

	leaf := m.trie.Get(index)
	if leaf == nil {
		return
	}

	s := &leaf.Item
	if s.sub != nil {
		if val, ok = s.sub.remove(key); !ok {
			return
		}
		m.size--
		if s.sub.count() == 0 {
			m.trie.Delete(index)
		}
		return val, true
	}

	if !m.order.Equal(s.key, key) {
		return
	}

	m.trie.Delete(index)
	m.size--

	return s.value, true
}

// All returns an iterator over all entries in ascending order.
//
// The map must not be modified during the iteration.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.ascend(yield)
	}
}

// AllFrom returns an iterator over all entries in ascending order,
// starting with key or the entry following key.
func (m *Map[K, V]) AllFrom(key K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.ascendFrom(key, yield)
	}
}

// Backward returns an iterator over all entries in descending order.
func (m *Map[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.descend(yield)
	}
}

// BackwardFrom returns an iterator over all entries in descending order,
// starting with key or the entry preceding key.
func (m *Map[K, V]) BackwardFrom(key K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.descendFrom(key, yield)
	}
}

// Keys returns an iterator over all keys in ascending order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over all values in ascending key order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// First returns the smallest entry.
func (m *Map[K, V]) First() (key K, val V, ok bool) {
	for k, v := range m.All() {
		return k, v, true
	}
	return
}

// Last returns the greatest entry.
func (m *Map[K, V]) Last() (key K, val V, ok bool) {
	for k, v := range m.Backward() {
		return k, v, true
	}
	return
}

// PollFirst removes and returns the smallest entry.
func (m *Map[K, V]) PollFirst() (key K, val V, ok bool) {
	if key, val, ok = m.First(); ok {
		m.Delete(key)
	}
	return
}

// PollLast removes and returns the greatest entry.
func (m *Map[K, V]) PollLast() (key K, val V, ok bool) {
	if key, val, ok = m.Last(); ok {
		m.Delete(key)
	}
	return
}

// Ceiling returns the entry for key, or the first entry following key.
func (m *Map[K, V]) Ceiling(key K) (K, V, bool) {
	for k, v := range m.AllFrom(key) {
		return k, v, true
	}
	var zeroK K
	var zeroV V
	return zeroK, zeroV, false
}

// Floor returns the entry for key, or the last entry preceding key.
func (m *Map[K, V]) Floor(key K) (K, V, bool) {
	for k, v := range m.BackwardFrom(key) {
		return k, v, true
	}
	var zeroK K
	var zeroV V
	return zeroK, zeroV, false
}

// Higher returns the first entry following key.
func (m *Map[K, V]) Higher(key K) (K, V, bool) {
	for k, v := range m.AllFrom(key) {
		if !m.order.Equal(k, key) {
			return k, v, true
		}
	}
	var zeroK K
	var zeroV V
	return zeroK, zeroV, false
}

// Lower returns the last entry preceding key.
func (m *Map[K, V]) Lower(key K) (K, V, bool) {
	for k, v := range m.BackwardFrom(key) {
		if !m.order.Equal(k, key) {
			return k, v, true
		}
	}
	var zeroK K
	var zeroV V
	return zeroK, zeroV, false
}

// Clone returns a deep copy of the map, the order is shared.
// Values implementing [Cloner] are cloned, all others are copied.
func (m *Map[K, V]) Clone() *Map[K, V] {
	if m == nil {
		return nil
	}
	return m.cloneMap(value.ClonerOf[V]())
}

func (m *Map[K, V]) cloneMap(cloneFn value.CloneFunc[V]) *Map[K, V] {
	c := &Map[K, V]{order: m.order, size: m.size}
	c.trie = m.trie.Clone(func(s slot[K, V]) slot[K, V] {
		if s.sub != nil {
			s.sub = s.sub.cloneWith(cloneFn)
			return s
		}
		if cloneFn != nil {
			s.value = cloneFn(s.value)
		}
		return s
	})
	return c
}

// Equal reports whether both maps have the same keys with equal values.
// Values implementing [Equaler] decide for themselves, all others are
// compared with reflect.DeepEqual.
func (m *Map[K, V]) Equal(o *Map[K, V]) bool {
	if m == o {
		return true
	}
	if m.Size() != o.Size() {
		return false
	}
	if m.Size() == 0 {
		return true
	}

	for k, v := range m.All() {
		ov, ok := o.Get(k)
		if !ok || !value.Equal(v, ov) {
			return false
		}
	}
	return true
}

// ###################################################################
// iteration, the trie is stepped by index with Ceiling and Floor,
// nested maps are flattened in place.

func (m *Map[K, V]) next(index uint32) *trie.Leaf[slot[K, V]] {
	if index == math.MaxUint32 {
		return nil
	}
	return m.trie.Ceiling(index + 1)
}

func (m *Map[K, V]) prev(index uint32) *trie.Leaf[slot[K, V]] {
	if index == 0 {
		return nil
	}
	return m.trie.Floor(index - 1)
}

func (m *Map[K, V]) ascend(yield func(K, V) bool) bool {
	for lf := m.trie.First(); lf != nil; lf = m.next(lf.Index) {
		s := &lf.Item
		if s.sub != nil {
			if !s.sub.ascend(yield) {
				return false
			}
			continue
		}
		if !yield(s.key, s.value) {
			return false
		}
	}
	return true
}

// ascendFrom starts at the index of from, only the nested map or
// entry at exactly this index is filtered by from.
func (m *Map[K, V]) ascendFrom(from K, yield func(K, V) bool) bool {
	index := m.order.Index(from)

	for lf := m.trie.Ceiling(index); lf != nil; lf = m.next(lf.Index) {
		s := &lf.Item
		atFrom := lf.Index == index

		switch {
		case s.sub != nil && atFrom:
			if !s.sub.ascendFrom(from, yield) {
				return false
			}
		case s.sub != nil:
			if !s.sub.ascend(yield) {
				return false
			}
		case atFrom && !m.order.Equal(s.key, from) && m.order.Compare(s.key, from) < 0:
			// same index, but below from
		default:
			if !yield(s.key, s.value) {
				return false
			}
		}
	}
	return true
}

func (m *Map[K, V]) descend(yield func(K, V) bool) bool {
	for lf := m.trie.Last(); lf != nil; lf = m.prev(lf.Index) {
		s := &lf.Item
		if s.sub != nil {
			if !s.sub.descend(yield) {
				return false
			}
			continue
		}
		if !yield(s.key, s.value) {
			return false
		}
	}
	return true
}

func (m *Map[K, V]) descendFrom(from K, yield func(K, V) bool) bool {
	index := m.order.Index(from)

	for lf := m.trie.Floor(index); lf != nil; lf = m.prev(lf.Index) {
		s := &lf.Item
		atFrom := lf.Index == index

		switch {
		case s.sub != nil && atFrom:
			if !s.sub.descendFrom(from, yield) {
				return false
			}
		case s.sub != nil:
			if !s.sub.descend(yield) {
				return false
			}
		case atFrom && !m.order.Equal(s.key, from) && m.order.Compare(s.key, from) > 0:
			// same index, but above from
		default:
			if !yield(s.key, s.value) {
				return false
			}
		}
	}
	return true
}

// ###################################################################
// a nested Map is a collisions implementation

func (m *Map[K, V]) get(key K) (V, bool)        { return m.Get(key) }
func (m *Map[K, V]) put(key K, val V) (V, bool) { return m.Put(key, val) }
func (m *Map[K, V]) remove(key K) (V, bool)     { return m.Delete(key) }
func (m *Map[K, V]) count() int                 { return m.size }

func (m *Map[K, V]) cloneWith(cloneFn value.CloneFunc[V]) collisions[K, V] {
	return m.cloneMap(cloneFn)
}
