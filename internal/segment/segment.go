// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package segment implements a positional array over the uint32 index space
// with cheap shifts of arbitrary index windows.
//
// The array is a tree of rotating circular buffers. A leaf segment holds up
// to 256 items in a ring, an inner segment holds up to 256 child segments of
// equal capacity. Every segment has an offset, the physical position of its
// logical index 0. Shifting a window that covers a whole segment just moves
// its offset by one and carries a single element across the boundary, only
// the two partially covered children at the window ends are shifted element
// by element, recursively. A shift therefore costs at most
// O(fan-out * depth) regardless of the number of elements moved.
package segment

import (
	"fmt"
	"math"
	"math/bits"
)

const (
	leafBits = 8             // log2 of the max leaf capacity
	fanBits  = 8             // log2 of the max child count
	leafMin  = 16            // min capacity of the array
	leafMax  = 1 << leafBits // 256
	fanMax   = 1 << fanBits  // 256
)

// maxCap, capacity of the full uint32 index space.
const maxCap = uint64(math.MaxUint32) + 1

// seg is a leaf (shift == 0, items) or an inner segment (kids).
//
// The capacity is always a power of two. The children of an inner
// segment have exactly the capacity 1<<shift.
type seg[E any] struct {
	shift  uint8
	offset uint64
	items  []E
	kids   []*seg[E]
}

// newSeg returns an empty segment with capacity c, c must be a power of two.
// The shape of the children is canonical, leaves are full and inner
// children have the max fan-out.
func newSeg[E any](c uint64) *seg[E] {
	if c <= leafMax {
		return &seg[E]{items: make([]E, c)}
	}

	k := uint8(bits.TrailingZeros64(c))

	// the largest multiple of 8 below k is the child shift
	shift := (k - 1) / fanBits * fanBits
	return &seg[E]{
		shift: shift,
		kids:  make([]*seg[E], 1<<(k-shift)),
	}
}

func (s *seg[E]) isLeaf() bool {
	return s.kids == nil
}

func (s *seg[E]) capacity() uint64 {
	if s.isLeaf() {
		return uint64(len(s.items))
	}
	return uint64(len(s.kids)) << s.shift
}

// kid returns the child at c, allocating it if needed.
func (s *seg[E]) kid(c uint64) *seg[E] {
	k := s.kids[c]
	if k == nil {
		k = newSeg[E](1 << s.shift)
		s.kids[c] = k
	}
	return k
}

func (s *seg[E]) get(i uint64) E {
	p := (i + s.offset) & (s.capacity() - 1)
	if s.isLeaf() {
		return s.items[p]
	}

	k := s.kids[p>>s.shift]
	if k == nil {
		var zero E
		return zero
	}
	return k.get(p & (1<<s.shift - 1))
}

func (s *seg[E]) set(i uint64, v E) E {
	p := (i + s.offset) & (s.capacity() - 1)
	if s.isLeaf() {
		old := s.items[p]
		s.items[p] = v
		return old
	}

	return s.kid(p>>s.shift).set(p&(1<<s.shift-1), v)
}

// insertShift moves the elements at [first, last] one position up,
// stores inserted at first and returns the element pushed out at last.
func (s *seg[E]) insertShift(inserted E, first, last uint64) E {
	capa := s.capacity()
	mask := capa - 1

	// the whole segment, just rotate
	if first == 0 && last == mask {
		out := s.get(last)
		s.offset = (s.offset - 1) & mask
		s.set(0, inserted)
		return out
	}

	if s.isLeaf() {
		out := s.items[(last+s.offset)&mask]
		for k := last; k > first; k-- {
			s.items[(k+s.offset)&mask] = s.items[(k-1+s.offset)&mask]
		}
		s.items[(first+s.offset)&mask] = inserted
		return out
	}

	// walk the children upwards in physical order, the element pushed
	// out of one child is carried into the next one
	childMask := uint64(1)<<s.shift - 1
	rem := last - first
	p := (first + s.offset) & mask
	carry := inserted

	for {
		lo := p & childMask
		hi := childMask
		if rem <= childMask-lo {
			hi = lo + rem
		}

		carry = s.kid(p>>s.shift).insertShift(carry, lo, hi)

		span := hi - lo
		if span == rem {
			return carry
		}
		rem -= span + 1
		p = (p + span + 1) & mask
	}
}

// appendShift moves the elements at [first, last] one position down,
// stores inserted at last and returns the element pushed out at first.
func (s *seg[E]) appendShift(inserted E, first, last uint64) E {
	capa := s.capacity()
	mask := capa - 1

	// the whole segment, just rotate
	if first == 0 && last == mask {
		out := s.get(0)
		s.offset = (s.offset + 1) & mask
		s.set(last, inserted)
		return out
	}

	if s.isLeaf() {
		out := s.items[(first+s.offset)&mask]
		for k := first; k < last; k++ {
			s.items[(k+s.offset)&mask] = s.items[(k+1+s.offset)&mask]
		}
		s.items[(last+s.offset)&mask] = inserted
		return out
	}

	// walk the children downwards in physical order
	childMask := uint64(1)<<s.shift - 1
	rem := last - first
	p := (last + s.offset) & mask
	carry := inserted

	for {
		hi := p & childMask
		lo := uint64(0)
		if rem <= hi {
			lo = hi - rem
		}

		carry = s.kid(p>>s.shift).appendShift(carry, lo, hi)

		span := hi - lo
		if span == rem {
			return carry
		}
		rem -= span + 1
		p = (p - span - 1) & mask
	}
}

// clone returns a deep copy, items are copied with cloneFn if not nil.
func (s *seg[E]) clone(cloneFn func(E) E) *seg[E] {
	if s == nil {
		return nil
	}

	c := &seg[E]{shift: s.shift, offset: s.offset}
	if s.isLeaf() {
		c.items = make([]E, len(s.items))
		if cloneFn == nil {
			copy(c.items, s.items)
			return c
		}
		for i, item := range s.items {
			c.items[i] = cloneFn(item)
		}
		return c
	}

	c.kids = make([]*seg[E], len(s.kids))
	for i, k := range s.kids {
		c.kids[i] = k.clone(cloneFn)
	}
	return c
}

// copyTo copies the logical elements [0, n) into dst.
func (s *seg[E]) copyTo(dst *seg[E], n uint64) {
	for i := range n {
		dst.set(i, s.get(i))
	}
}

// grow doubles the capacity, the logical content is unchanged.
func (s *seg[E]) grow() *seg[E] {
	capa := s.capacity()

	switch {
	case s.isLeaf() && capa < leafMax:
		// double the ring, normalized to offset 0
		g := newSeg[E](capa * 2)
		for i := range capa {
			g.items[i] = s.items[(i+s.offset)&(capa-1)]
		}
		return g

	case s.isLeaf() || len(s.kids) == fanMax:
		// full fan-out, stack a new level on top,
		// the old segment is the first child
		g := newSeg[E](capa * 2)
		g.kids[0] = s
		return g

	case s.offset&(1<<s.shift-1) == 0:
		// offset at a child boundary, rotate the kids
		g := newSeg[E](capa * 2)
		first := s.offset >> s.shift
		n := uint64(len(s.kids))
		for j := range n {
			g.kids[j] = s.kids[(j+first)%n]
		}
		return g

	default:
		g := newSeg[E](capa * 2)
		s.copyTo(g, capa)
		return g
	}
}

// Array is a positional array of elements E over the uint32 index space.
// Elements never set are the zero value of E.
//
// The zero value is an empty array, ready to use.
type Array[E any] struct {
	root *seg[E]
}

// Cap returns the current capacity, all indices below are backed by storage.
func (a *Array[E]) Cap() uint64 {
	if a.root == nil {
		return 0
	}
	return a.root.capacity()
}

// ensure grows the capacity until index i is covered.
func (a *Array[E]) ensure(i uint64) {
	if i >= maxCap {
		panic(fmt.Sprintf("segment: index %d out of the uint32 range", i))
	}
	if a.root == nil {
		a.root = newSeg[E](leafMin)
	}
	for a.root.capacity() <= i {
		a.root = a.root.grow()
	}
}

// Get returns the element at i.
func (a *Array[E]) Get(i uint32) E {
	if uint64(i) >= a.Cap() {
		var zero E
		return zero
	}
	return a.root.get(uint64(i))
}

// Set stores the element at i and returns the previous element.
func (a *Array[E]) Set(i uint32, e E) E {
	a.ensure(uint64(i))
	return a.root.set(uint64(i), e)
}

// ShiftRight moves the elements at [first, first+length) one position up,
// the element at first+length is overwritten and inserted is stored at first.
func (a *Array[E]) ShiftRight(inserted E, first, length uint32) {
	last := uint64(first) + uint64(length)
	a.ensure(last)
	a.root.insertShift(inserted, uint64(first), last)
}

// ShiftLeft moves the elements at (last-length, last] one position down,
// the element at last-length is overwritten and inserted is stored at last.
func (a *Array[E]) ShiftLeft(inserted E, last, length uint32) {
	if length > last {
		panic(fmt.Sprintf("segment: ShiftLeft window length %d exceeds last %d", length, last))
	}
	a.ensure(uint64(last))
	a.root.appendShift(inserted, uint64(last-length), uint64(last))
}

// Trim releases storage while the capacity is at least
// four times the used length. Elements at indices >= length
// must be zero.
func (a *Array[E]) Trim(length uint64) {
	if a.root == nil {
		return
	}
	if length == 0 {
		a.root = nil
		return
	}

	capa := a.root.capacity()
	if capa <= leafMin || capa < 4*length {
		return
	}

	target := capa
	for target > leafMin && target >= 4*length {
		target /= 2
	}

	trimmed := newSeg[E](target)
	a.root.copyTo(trimmed, length)
	a.root = trimmed
}

// Clone returns a deep copy, the elements are copied with cloneFn if not nil.
func (a *Array[E]) Clone(cloneFn func(E) E) *Array[E] {
	return &Array[E]{root: a.root.clone(cloneFn)}
}
