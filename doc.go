// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package fastmap provides ordered maps, sets and positional tables with
// bounded operation costs, built on two engines:
//
//   - a 16-ary radix trie over the uint32 index space, path compressed,
//     with popcount compressed branches
//   - a segmented array of rotating ring buffers, where shifting a window
//     of elements rotates whole segments instead of moving every element
//
// The containers:
//
//   - IndexMap: sparse map from uint32 indices to values, 1:1 over the trie
//   - Map:      ordered map for any key type, placed by an [order.Order]
//   - Set:      ordered set, a Map without values
//   - Table:    positional list with cheap insert and remove at any position
//
// A Map places every key at the index its Order assigns. Keys sharing an
// index are kept in a nested Map with the sub-order of the Order, e.g. the
// next 4 bytes of a string key, or in a linear collision chain for hashed
// orders. The nesting is transparent for all operations and iterators.
//
// The containers are not safe for concurrent writers. Concurrent readers
// are fine, and the deep Clone methods allow the copy-on-write pattern,
// see the SyncMap example.
package fastmap
