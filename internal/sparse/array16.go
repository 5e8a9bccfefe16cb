// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package sparse implements a generic sparse array
// with popcount compression for the 16 child slots
// of a trie branch.
package sparse

import (
	"slices"

	"github.com/gaissmai/fastmap/internal/bitset"
)

// Array16 is a generic implementation of a sparse array
// with popcount compression for max. 16 items with payload T.
type Array16[T any] struct {
	bitset.BitSet16
	Items []T
}

// Len returns the number of items in sparse array.
func (s *Array16[T]) Len() int {
	return len(s.Items)
}

// Copy returns a shallow copy of the Array.
// The elements are copied using assignment, this is no deep clone.
func (s *Array16[T]) Copy() *Array16[T] {
	if s == nil {
		return nil
	}

	return &Array16[T]{
		BitSet16: s.BitSet16,
		Items:    append(s.Items[:0:0], s.Items...),
	}
}

// InsertAt stores val in slot i, an occupied slot is overwritten
// and reported with exists.
func (s *Array16[T]) InsertAt(i uint, val T) (exists bool) {
	if s.Test(i) {
		s.Items[s.Rank0(i)] = val
		return true
	}

	s.MustSet(i)
	s.insertItem(val, s.Rank0(i))
	return false
}

// DeleteAt empties slot i and returns the removed value.
func (s *Array16[T]) DeleteAt(i uint) (T, bool) {
	var zero T
	if !s.Test(i) {
		return zero, false
	}

	rnk := s.Rank0(i)
	val := s.Items[rnk]

	s.deleteItem(rnk)
	s.MustClear(i)

	return val, true
}

// Get returns the value in slot i.
func (s *Array16[T]) Get(i uint) (val T, ok bool) {
	if s.Test(i) {
		return s.Items[s.Rank0(i)], true
	}

	return val, false
}

// MustGet returns the value in slot i, the slot must be occupied.
func (s *Array16[T]) MustGet(i uint) T {
	return s.Items[s.Rank0(i)]
}

// insertItem inserts the item at rank i.
func (s *Array16[T]) insertItem(item T, i int) {
	s.Items = slices.Insert(s.Items, i, item)
}

// deleteItem removes the item at rank i, the vacated tail is zeroed.
// A branch that lost half of its children releases the spare capacity.
func (s *Array16[T]) deleteItem(i int) {
	s.Items = slices.Delete(s.Items, i, i+1)
	if cap(s.Items) >= 2*len(s.Items) {
		s.Items = slices.Clip(s.Items)
	}
}
