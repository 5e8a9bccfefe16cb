// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package fastmap

import (
	"iter"

	"github.com/gaissmai/fastmap/order"
)

// Set is an ordered set of elements K, a [Map] without values.
type Set[K any] struct {
	m *Map[K, struct{}]
}

// NewSet returns an empty set with the placement order ord.
// NewSet panics if ord is nil.
func NewSet[K any](ord order.Order[K]) *Set[K] {
	return &Set[K]{m: NewMap[K, struct{}](ord)}
}

// Order returns the placement order of the set.
func (s *Set[K]) Order() order.Order[K] { return s.m.Order() }

// Size returns the number of elements.
func (s *Set[K]) Size() int {
	if s == nil {
		return 0
	}
	return s.m.Size()
}

// IsEmpty reports whether the set has no elements.
func (s *Set[K]) IsEmpty() bool { return s.Size() == 0 }

// Clear removes all elements.
func (s *Set[K]) Clear() { s.m.Clear() }

// Contains reports whether k is in the set.
func (s *Set[K]) Contains(k K) bool { return s.m.Contains(k) }

// Add inserts k and reports whether it was not yet present.
func (s *Set[K]) Add(k K) bool {
	_, exists := s.m.Put(k, struct{}{})
	return !exists
}

// Delete removes k and reports whether it was present.
func (s *Set[K]) Delete(k K) bool {
	_, ok := s.m.Delete(k)
	return ok
}

// All returns an iterator over all elements in ascending order.
func (s *Set[K]) All() iter.Seq[K] { return s.m.Keys() }

// AllFrom returns an iterator over all elements in ascending order,
// starting with k or the element following k.
func (s *Set[K]) AllFrom(k K) iter.Seq[K] { return keys(s.m.AllFrom(k)) }

// Backward returns an iterator over all elements in descending order.
func (s *Set[K]) Backward() iter.Seq[K] { return keys(s.m.Backward()) }

// BackwardFrom returns an iterator over all elements in descending order,
// starting with k or the element preceding k.
func (s *Set[K]) BackwardFrom(k K) iter.Seq[K] { return keys(s.m.BackwardFrom(k)) }

// First returns the smallest element.
func (s *Set[K]) First() (K, bool) {
	k, _, ok := s.m.First()
	return k, ok
}

// Last returns the greatest element.
func (s *Set[K]) Last() (K, bool) {
	k, _, ok := s.m.Last()
	return k, ok
}

// PollFirst removes and returns the smallest element.
func (s *Set[K]) PollFirst() (K, bool) {
	k, _, ok := s.m.PollFirst()
	return k, ok
}

// PollLast removes and returns the greatest element.
func (s *Set[K]) PollLast() (K, bool) {
	k, _, ok := s.m.PollLast()
	return k, ok
}

// Ceiling returns k if present, or the first element following k.
func (s *Set[K]) Ceiling(k K) (K, bool) {
	c, _, ok := s.m.Ceiling(k)
	return c, ok
}

// Floor returns k if present, or the last element preceding k.
func (s *Set[K]) Floor(k K) (K, bool) {
	f, _, ok := s.m.Floor(k)
	return f, ok
}

// Clone returns a copy of the set, the order is shared.
func (s *Set[K]) Clone() *Set[K] {
	if s == nil {
		return nil
	}
	return &Set[K]{m: s.m.Clone()}
}

// Equal reports whether both sets have the same elements.
func (s *Set[K]) Equal(o *Set[K]) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return s.Size() == o.Size()
	}
	return s.m.Equal(o.m)
}

func keys[K, V any](seq iter.Seq2[K, V]) iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range seq {
			if !yield(k) {
				return
			}
		}
	}
}
