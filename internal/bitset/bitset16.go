// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package bitset implements the 16 bit occupancy set of a trie branch.
//
// A branch has exactly 16 child slots, so the whole set fits into a
// single uint16 and every method is a handful of math/bits instructions.
// All methods are inlineable.
package bitset

import (
	"fmt"
	"math/bits"
)

// BitSet16 represents a fixed size bitset from [0..15]
type BitSet16 uint16

func (b BitSet16) String() string {
	return fmt.Sprint(b.All())
}

// MustSet sets the bit, bits > 15 are silently masked.
func (b *BitSet16) MustSet(bit uint) {
	*b |= 1 << (bit & 15)
}

// MustClear clears the bit, bits > 15 are silently masked.
func (b *BitSet16) MustClear(bit uint) {
	*b &^= 1 << (bit & 15)
}

// Test if the bit is set.
func (b BitSet16) Test(bit uint) bool {
	return bit < 16 && b&(1<<bit) != 0
}

// Size is the number of set bits (popcount).
func (b BitSet16) Size() int {
	return bits.OnesCount16(uint16(b))
}

// IsEmpty returns true if no bit is set.
func (b BitSet16) IsEmpty() bool {
	return b == 0
}

// FirstSet returns the first bit set along with an ok code.
func (b BitSet16) FirstSet() (uint, bool) {
	if b == 0 {
		return 0, false
	}
	return uint(bits.TrailingZeros16(uint16(b))), true
}

// LastSet returns the last bit set along with an ok code.
func (b BitSet16) LastSet() (uint, bool) {
	if b == 0 {
		return 0, false
	}
	return uint(15 - bits.LeadingZeros16(uint16(b))), true
}

// NextSet returns the next bit set from the specified start bit,
// including possibly the current bit along with an ok code.
func (b BitSet16) NextSet(bit uint) (uint, bool) {
	if bit > 15 {
		return 0, false
	}
	w := uint16(b) >> bit
	if w == 0 {
		return 0, false
	}
	return bit + uint(bits.TrailingZeros16(w)), true
}

// PrevSet returns the previous bit set from the specified start bit,
// including possibly the current bit along with an ok code.
func (b BitSet16) PrevSet(bit uint) (uint, bool) {
	if bit > 15 {
		bit = 15
	}
	w := uint16(b) << (15 - bit)
	if w == 0 {
		return 0, false
	}
	return bit - uint(bits.LeadingZeros16(w)), true
}

// Rank0 is the set bits count in [0,idx] minus 1,
// the slice index of bit idx in a popcount compressed array.
func (b BitSet16) Rank0(idx uint) int {
	if idx > 15 {
		idx = 15
	}
	return bits.OnesCount32(uint32(b)&(uint32(2)<<idx-1)) - 1
}

// All returns all set bits in ascending order.
func (b BitSet16) All() []uint {
	buf := make([]uint, 0, b.Size())
	for w := uint16(b); w != 0; w &= w - 1 {
		buf = append(buf, uint(bits.TrailingZeros16(w)))
	}
	return buf
}
