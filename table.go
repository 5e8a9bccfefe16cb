// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package fastmap

import (
	"fmt"
	"iter"
	"math"

	"github.com/gaissmai/fastmap/internal/segment"
	"github.com/gaissmai/fastmap/internal/value"
)

// maxTableSize, the positions of a Table are uint32.
const maxTableSize = math.MaxUint32

// Table is a positional list of elements E.
//
// Insertion and removal at any position are cheap: the elements are
// kept in a segmented array of rotating ring buffers, shifting a window
// of elements rotates the fully covered segments instead of moving their
// elements one by one.
//
// The zero value is an empty table, ready to use.
//
// A Table is safe for concurrent readers, concurrent reads and
// writes must be externally synchronized.
type Table[E any] struct {
	array segment.Array[E]
	size  int
}

// Size returns the number of elements.
func (t *Table[E]) Size() int {
	if t == nil {
		return 0
	}
	return t.size
}

// IsEmpty reports whether the table has no elements.
func (t *Table[E]) IsEmpty() bool {
	return t.Size() == 0
}

// checkIndex panics like a slice access for i out of [0, bound).
func (t *Table[E]) checkIndex(method string, i, bound int) {
	if i < 0 || i >= bound {
		panic(fmt.Sprintf("fastmap: Table.%s index %d out of range [0:%d]", method, i, bound))
	}
}

// Get returns the element at position i.
// Get panics if i is out of range.
func (t *Table[E]) Get(i int) E {
	t.checkIndex("Get", i, t.size)
	return t.array.Get(uint32(i))
}

// Set replaces the element at position i and returns the previous one.
// Set panics if i is out of range.
func (t *Table[E]) Set(i int, e E) E {
	t.checkIndex("Set", i, t.size)
	return t.array.Set(uint32(i), e)
}

// Add inserts e at position i, the elements at i and above move up.
// Add panics if i is not in [0, Size()].
func (t *Table[E]) Add(i int, e E) {
	t.checkIndex("Add", i, t.size+1)
	if uint64(t.size) >= maxTableSize {
		panic("fastmap: Table is full")
	}

	t.array.ShiftRight(e, uint32(i), uint32(t.size-i))
	t.size++
}

// AddFirst inserts e in front of all elements.
func (t *Table[E]) AddFirst(e E) {
	t.Add(0, e)
}

// AddLast appends e behind all elements.
func (t *Table[E]) AddLast(e E) {
	t.Add(t.size, e)
}

// Remove deletes the element at position i and returns it,
// the elements above i move down.
// Remove panics if i is out of range.
func (t *Table[E]) Remove(i int) E {
	t.checkIndex("Remove", i, t.size)

	var zero E
	removed := t.array.Get(uint32(i))

	last := uint32(t.size - 1)
	t.array.ShiftLeft(zero, last, last-uint32(i))
	t.size--
	t.array.Trim(uint64(t.size))

	return removed
}

// RemoveFirst deletes the first element and returns it,
// or the zero value and false if the table is empty.
func (t *Table[E]) RemoveFirst() (e E, ok bool) {
	if t.size == 0 {
		return
	}
	return t.Remove(0), true
}

// RemoveLast deletes the last element and returns it,
// or the zero value and false if the table is empty.
func (t *Table[E]) RemoveLast() (e E, ok bool) {
	if t.size == 0 {
		return
	}

	var zero E
	t.size--
	e = t.array.Set(uint32(t.size), zero)
	t.array.Trim(uint64(t.size))

	return e, true
}

// First returns the first element,
// or the zero value and false if the table is empty.
func (t *Table[E]) First() (e E, ok bool) {
	if t.Size() == 0 {
		return
	}
	return t.array.Get(0), true
}

// Last returns the last element,
// or the zero value and false if the table is empty.
func (t *Table[E]) Last() (e E, ok bool) {
	if t.Size() == 0 {
		return
	}
	return t.array.Get(uint32(t.size - 1)), true
}

// Clear removes all elements and releases the storage.
func (t *Table[E]) Clear() {
	t.array = segment.Array[E]{}
	t.size = 0
}

// IndexFunc returns the first position i satisfying f(Get(i)), or -1.
func (t *Table[E]) IndexFunc(f func(E) bool) int {
	for i := range t.Size() {
		if f(t.array.Get(uint32(i))) {
			return i
		}
	}
	return -1
}

// LastIndexFunc returns the last position i satisfying f(Get(i)), or -1.
func (t *Table[E]) LastIndexFunc(f func(E) bool) int {
	for i := t.Size() - 1; i >= 0; i-- {
		if f(t.array.Get(uint32(i))) {
			return i
		}
	}
	return -1
}

// DeleteFunc removes all elements satisfying del and returns their number.
// The remaining elements keep their order.
func (t *Table[E]) DeleteFunc(del func(E) bool) int {
	// compact in place, then cut the tail
	j := 0
	for i := range t.Size() {
		e := t.array.Get(uint32(i))
		if del(e) {
			continue
		}
		if i != j {
			t.array.Set(uint32(j), e)
		}
		j++
	}

	removed := t.size - j
	for t.size > j {
		t.RemoveLast()
	}
	return removed
}

// BinarySearchFunc searches e in a table sorted by cmp, like
// [slices.BinarySearchFunc]. It returns the position of the first
// element not less than e and whether an equal element was found.
func (t *Table[E]) BinarySearchFunc(e E, cmp func(E, E) int) (int, bool) {
	lo, hi := 0, t.Size()
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if cmp(t.array.Get(uint32(mid)), e) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, lo < t.Size() && cmp(t.array.Get(uint32(lo)), e) == 0
}

// InsertSorted inserts e into a table sorted by cmp, in front of all
// equal elements, and returns its position.
func (t *Table[E]) InsertSorted(e E, cmp func(E, E) int) int {
	i, _ := t.BinarySearchFunc(e, cmp)
	t.Add(i, e)
	return i
}

// RemoveSorted removes the first element equal to e from a table sorted
// by cmp. It returns the position of the removed element and true, or
// the position e would be inserted at and false.
func (t *Table[E]) RemoveSorted(e E, cmp func(E, E) int) (int, bool) {
	i, found := t.BinarySearchFunc(e, cmp)
	if found {
		t.Remove(i)
	}
	return i, found
}

// All returns an iterator over positions and elements in ascending order.
//
// The table must not be modified during the iteration.
func (t *Table[E]) All() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		for i := range t.Size() {
			if !yield(i, t.array.Get(uint32(i))) {
				return
			}
		}
	}
}

// Backward returns an iterator over positions and elements in descending order.
func (t *Table[E]) Backward() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		for i := t.Size() - 1; i >= 0; i-- {
			if !yield(i, t.array.Get(uint32(i))) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in ascending order.
func (t *Table[E]) Values() iter.Seq[E] {
	return func(yield func(E) bool) {
		for _, e := range t.All() {
			if !yield(e) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the table.
// Elements implementing [Cloner] are cloned, all others are copied.
func (t *Table[E]) Clone() *Table[E] {
	if t == nil {
		return nil
	}
	c := t.cloneWith(value.ClonerOf[E]())
	return &c
}

func (t *Table[E]) cloneWith(cloneFn func(E) E) Table[E] {
	return Table[E]{
		array: *t.array.Clone(cloneFn),
		size:  t.size,
	}
}

// Equal reports whether both tables have equal elements at equal positions.
func (t *Table[E]) Equal(o *Table[E]) bool {
	if t == o {
		return true
	}
	if t.Size() != o.Size() {
		return false
	}
	for i := range t.Size() {
		if !value.Equal(t.array.Get(uint32(i)), o.array.Get(uint32(i))) {
			return false
		}
	}
	return true
}

// String returns the elements in the format of a slice, e.g. [A B C].
func (t *Table[E]) String() string {
	elems := make([]E, 0, t.Size())
	for e := range t.Values() {
		elems = append(elems, e)
	}
	return fmt.Sprint(elems)
}
