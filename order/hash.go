// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package order

import (
	"bytes"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

// hashed orders compare by index only, equal indices compare as 0.
// Iteration order is arbitrary but stable for a given order value.

type comparableHash[K comparable] struct {
	seed maphash.Seed
}

// Hash returns a hashed order for any comparable key type, seeded
// with a random seed. Collisions are chained.
func Hash[K comparable]() Order[K] {
	return comparableHash[K]{seed: maphash.MakeSeed()}
}

func (h comparableHash[K]) Index(key K) uint32 {
	return uint32(maphash.Comparable(h.seed, key))
}

func (h comparableHash[K]) Equal(a, b K) bool { return a == b }

func (h comparableHash[K]) Compare(a, b K) int {
	return compareIndex(h.Index(a), h.Index(b))
}

func (h comparableHash[K]) SubOrder(K) Order[K] { return nil }

type stringHash struct{}

// StringHash returns a hashed order for string keys with the
// 32-bit murmur3 hash. Unlike Hash it is deterministic across runs.
func StringHash() Order[string] { return stringHash{} }

func (stringHash) Index(key string) uint32 {
	return murmur3.Sum32([]byte(key))
}

func (stringHash) Equal(a, b string) bool { return a == b }

func (s stringHash) Compare(a, b string) int {
	return compareIndex(s.Index(a), s.Index(b))
}

func (stringHash) SubOrder(string) Order[string] { return nil }

type bytesHash struct{}

// BytesHash returns a hashed order for []byte keys with xxhash,
// folded to 32 bits. A nil and an empty slice are the same key.
//
// Keys must not be modified while in a container.
func BytesHash() Order[[]byte] { return bytesHash{} }

func (bytesHash) Index(key []byte) uint32 {
	h := xxhash.Sum64(key)
	return uint32(h>>32) ^ uint32(h)
}

func (bytesHash) Equal(a, b []byte) bool { return bytes.Equal(a, b) }

func (b bytesHash) Compare(x, y []byte) int {
	return compareIndex(b.Index(x), b.Index(y))
}

func (bytesHash) SubOrder([]byte) Order[[]byte] { return nil }
