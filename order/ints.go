// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package order

import (
	"cmp"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// signBit32 flips the int32 range onto the unsigned range,
// math.MinInt32 becomes 0 and math.MaxInt32 becomes math.MaxUint32.
const signBit32 = 1 << 31

type uint32Order struct{}

// Uint32 returns the identity order for uint32 keys, it never collides.
func Uint32() Order[uint32] { return uint32Order{} }

func (uint32Order) Index(key uint32) uint32       { return key }
func (uint32Order) Equal(a, b uint32) bool        { return a == b }
func (uint32Order) Compare(a, b uint32) int       { return cmp.Compare(a, b) }
func (uint32Order) SubOrder(uint32) Order[uint32] { return nil }

type int32Order struct{}

// Int32 returns the order for int32 keys, negative keys first.
// It never collides.
func Int32() Order[int32] { return int32Order{} }

func (int32Order) Index(key int32) uint32      { return uint32(key) ^ signBit32 }
func (int32Order) Equal(a, b int32) bool       { return a == b }
func (int32Order) Compare(a, b int32) int      { return cmp.Compare(a, b) }
func (int32Order) SubOrder(int32) Order[int32] { return nil }

// wide orders place 64-bit keys in two levels,
// first the upper half then the lower half.
type wide[T constraints.Integer] struct {
	lower  bool
	signed bool
}

// Unsigned returns the order for unsigned integer keys.
//
// Keys of up to 32 bits are placed 1:1. Keys wider than 32 bits are placed
// by their upper 32 bits, keys sharing the upper half are resolved in a
// nested map by the lower 32 bits.
func Unsigned[T constraints.Unsigned]() Order[T] {
	return wide[T]{}
}

// Signed returns the order for signed integer keys, negative keys first.
// Placement is as with Unsigned on the sign flipped value.
func Signed[T constraints.Signed]() Order[T] {
	return wide[T]{signed: true}
}

// is64 reports whether T needs two levels.
func (w wide[T]) is64() bool {
	var zero T
	return unsafe.Sizeof(zero) > 4
}

func (w wide[T]) bits(key T) uint64 {
	if !w.signed {
		return uint64(key)
	}
	if w.is64() {
		return uint64(int64(key)) ^ (1 << 63)
	}
	return uint64(uint32(int32(key)) ^ signBit32)
}

func (w wide[T]) Index(key T) uint32 {
	u := w.bits(key)
	if w.is64() && !w.lower {
		return uint32(u >> 32)
	}
	return uint32(u)
}

func (w wide[T]) Equal(a, b T) bool { return a == b }

func (w wide[T]) Compare(a, b T) int { return cmp.Compare(a, b) }

func (w wide[T]) SubOrder(T) Order[T] {
	if !w.is64() || w.lower {
		return nil
	}
	return wide[T]{lower: true, signed: w.signed}
}
