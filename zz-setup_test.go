// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package fastmap

import (
	"iter"
	"math/rand/v2"
	"testing"
)

// this file contains helpers for other test functions

// workLoadN to adjust loops for tests with -short
func workLoadN() int {
	if testing.Short() {
		return 100
	}
	return 5_000
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s must panic", name)
		}
	}()
	fn()
}

func noPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("%s panicked: %v", name, r)
		}
	}()
	fn()
}

// collect2 gathers the keys of a key/value sequence.
func collect2[K, V any](seq iter.Seq2[K, V]) []K {
	var keys []K
	for k := range seq {
		keys = append(keys, k)
	}
	return keys
}

// randomWord returns a lower case word of 0..maxLen letters from a
// small alphabet, many words share prefixes and collide lexically.
func randomWord(prng *rand.Rand, maxLen int) string {
	b := make([]byte, prng.IntN(maxLen+1))
	for i := range b {
		b[i] = "abcd"[prng.IntN(4)]
	}
	return string(b)
}
