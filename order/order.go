// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package order provides the placement strategies for the ordered
// containers of fastmap.
//
// An Order maps every key to a 32-bit unsigned index, the position of the
// key in the radix trie. Keys with different indices are ordered by their
// unsigned index. Keys with equal indices collide, the container then asks
// the Order for a SubOrder to place the colliding keys in a nested map, or
// falls back to a linear collision chain if there is none.
//
// Stock orders:
//
//	Uint32, Int32        1:1 placement, never collide
//	Unsigned, Signed     any integer type, 64-bit keys collide on the upper half
//	Lexical, LexicalFold strings, 4 bytes per level
//	Hash, StringHash     hashed placement, unordered
//	BytesHash            hashed placement for []byte keys, unordered
//	Funcs                user supplied functions
package order

// Order is the placement strategy for keys of type K.
//
// Implementations must be consistent:
//
//	Equal(a, b)              => Index(a) == Index(b)
//	Index(a) < Index(b)      => Compare(a, b) < 0
//	Equal(a, b)              => Compare(a, b) == 0
//
// Orders are stateless or immutable and safe for concurrent use.
type Order[K any] interface {
	// Index returns the placement index of key.
	Index(key K) uint32

	// Equal reports whether a and b are the same key.
	Equal(a, b K) bool

	// Compare returns a negative number when a < b, a positive number
	// when a > b and zero when a and b are not distinguished by this order.
	Compare(a, b K) int

	// SubOrder returns the order for keys colliding with key at this
	// level, or nil if key can't be told apart any further.
	// A non-nil SubOrder must place all keys colliding with key,
	// the collisions are only chained if both colliding keys say nil.
	SubOrder(key K) Order[K]
}

// Funcs is an Order made of user functions.
// IndexFn and EqualFn are mandatory.
//
// CompareFn defaults to the unsigned comparison of the indices,
// SubOrderFn defaults to none, collisions are chained.
type Funcs[K any] struct {
	IndexFn    func(key K) uint32
	EqualFn    func(a, b K) bool
	CompareFn  func(a, b K) int
	SubOrderFn func(key K) Order[K]
}

func (f Funcs[K]) Index(key K) uint32 {
	return f.IndexFn(key)
}

func (f Funcs[K]) Equal(a, b K) bool {
	return f.EqualFn(a, b)
}

func (f Funcs[K]) Compare(a, b K) int {
	if f.CompareFn != nil {
		return f.CompareFn(a, b)
	}
	return compareIndex(f.IndexFn(a), f.IndexFn(b))
}

func (f Funcs[K]) SubOrder(key K) Order[K] {
	if f.SubOrderFn == nil {
		return nil
	}
	return f.SubOrderFn(key)
}

func compareIndex(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
