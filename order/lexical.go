// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package order

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// window is the number of key bytes placed per level.
const window = 4

// lexical places strings by 4 bytes per level, starting at offset.
type lexical struct {
	offset int
	fold   bool
}

// Lexical returns the lexicographic order for string keys.
//
// The index of a key is made of the 4 bytes at the current offset, big
// endian and zero padded. Keys sharing these bytes are placed in a nested
// map at the next 4 bytes. Iteration follows the byte wise order of the
// keys, as with strings.Compare.
func Lexical() Order[string] {
	return lexical{}
}

// LexicalFold returns a case insensitive lexicographic order for string
// keys. Keys are compared by their Unicode simple case folding, keys with
// equal folding are the same key.
func LexicalFold() Order[string] {
	return lexical{fold: true}
}

// folders recycles the case folding Casers. A Caser is stateful,
// it must not be shared between goroutines.
var folders = sync.Pool{
	New: func() any {
		c := cases.Fold()
		return &c
	},
}

// folded returns the case folded keys, all with the same Caser.
func (l lexical) folded(a, b string) (string, string) {
	if !l.fold {
		return a, b
	}

	c := folders.Get().(*cases.Caser)
	defer folders.Put(c)

	a = c.String(a)
	if b != "" {
		b = c.String(b)
	}
	return a, b
}

func (l lexical) Index(key string) uint32 {
	key, _ = l.folded(key, "")

	var idx uint32
	for i := range window {
		idx <<= 8
		if pos := l.offset + i; pos < len(key) {
			idx |= uint32(key[pos])
		}
	}
	return idx
}

func (l lexical) Equal(a, b string) bool {
	if a == b {
		return true
	}
	if !l.fold {
		return false
	}
	a, b = l.folded(a, b)
	return a == b
}

// Compare uses the whole keys at every level.
func (l lexical) Compare(a, b string) int {
	if a == b {
		return 0
	}
	return strings.Compare(l.folded(a, b))
}

// SubOrder returns the next window, or nil when key has no bytes beyond
// the current window. An exhausted key is placed at index 0 by the next
// window, only keys equal up to zero padding end in a chain.
func (l lexical) SubOrder(key string) Order[string] {
	next := l.offset + window
	if key, _ = l.folded(key, ""); len(key) <= next {
		return nil
	}
	return lexical{offset: next, fold: l.fold}
}
