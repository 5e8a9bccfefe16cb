// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package trie implements a 16-ary radix trie over the uint32 index space.
//
// A trie is either empty (nil root), a single *Leaf or a branch. A branch
// consumes 4 bits of the index at its shift and stores up to 16 children in
// a popcount compressed sparse array. Branches are path compressed: a branch
// sits directly at the highest 4-bit aligned shift where the indices below
// it differ, the bits above are kept in its prefix.
//
// Structural edits report resize needs to the parent with an explicit status,
// the parent (or the Trie handle at the root) performs the upsize or downsize.
//
// Outside of an edit every branch has at least two children.
package trie

import (
	"fmt"
	"iter"
	"math/bits"

	"github.com/gaissmai/fastmap/internal/sparse"
)

// stride is the number of index bits consumed per level.
const (
	stride   = 4
	slotMask = 1<<stride - 1
)

// Leaf holds one item at an immutable index.
type Leaf[E any] struct {
	Index uint32
	Item  E
}

// branch is an inner node of the trie.
//
// All indices below a branch share the bits above shift+stride,
// they are stored right aligned in prefix.
type branch[E any] struct {
	shift    uint8
	prefix   uint32
	children sparse.Array16[any] // *Leaf[E] or *branch[E]
}

// status is the outcome of a structural edit, returned to the parent.
type status uint8

const (
	statusOK       status = iota // done, nothing to do for the parent
	statusUpsize                 // index outside of this subtree, parent must upsize it
	statusDownsize               // subtree has a single survivor, parent must downsize it
)

// Trie is the handle of a radix trie with items of type E.
// The zero value is an empty trie, ready to use.
//
// A Trie is safe for concurrent readers, concurrent reads and
// writes must be externally synchronized.
type Trie[E any] struct {
	root any // nil, *Leaf[E] or *branch[E]
}

// IsEmpty reports whether the trie holds no leaf.
func (t *Trie[E]) IsEmpty() bool {
	return t.root == nil
}

// Clear removes all leaves.
func (t *Trie[E]) Clear() {
	t.root = nil
}

// Get returns the leaf at index or nil.
func (t *Trie[E]) Get(index uint32) *Leaf[E] {
	n := t.root
	for {
		switch kid := n.(type) {
		case nil:
			return nil
		case *Leaf[E]:
			if kid.Index == index {
				return kid
			}
			return nil
		case *branch[E]:
			// no prefix check on the way down, the leaf confirms the index
			c, ok := kid.children.Get(kid.slot(index))
			if !ok {
				return nil
			}
			n = c
		default:
			panic("logic error, wrong node type")
		}
	}
}

// Entry returns the leaf at index, creating it if absent.
// A created leaf has the zero Item, the caller fills it.
func (t *Trie[E]) Entry(index uint32) (leaf *Leaf[E], created bool) {
	if t.root == nil {
		leaf = &Leaf[E]{Index: index}
		t.root = leaf
		return leaf, true
	}

	leaf, created, st := entry[E](t.root, index)
	if st == statusUpsize {
		t.root = upsize[E](t.root, index)
		leaf, created, st = entry[E](t.root, index)
	}

	if st != statusOK {
		panic(fmt.Sprintf("trie corruption: entry(%#x) leaked status %d", index, st))
	}
	return leaf, created
}

// Delete removes and returns the leaf at index or nil if absent.
func (t *Trie[E]) Delete(index uint32) *Leaf[E] {
	switch root := t.root.(type) {
	case nil:
		return nil
	case *Leaf[E]:
		if root.Index != index {
			return nil
		}
		t.root = nil
		return root
	case *branch[E]:
		leaf, st := root.delete(index)
		if st == statusDownsize {
			t.root = root.downsize(index)
		}
		return leaf
	default:
		panic("logic error, wrong node type")
	}
}

// Ceiling returns the leaf with the smallest index >= index, or nil.
func (t *Trie[E]) Ceiling(index uint32) *Leaf[E] {
	return ceiling[E](t.root, index)
}

// Floor returns the leaf with the largest index <= index, or nil.
func (t *Trie[E]) Floor(index uint32) *Leaf[E] {
	return floor[E](t.root, index)
}

// First returns the leaf with the smallest index, or nil.
func (t *Trie[E]) First() *Leaf[E] {
	n := t.root
	for {
		switch kid := n.(type) {
		case nil:
			return nil
		case *Leaf[E]:
			return kid
		case *branch[E]:
			i, _ := kid.children.FirstSet()
			n = kid.children.MustGet(i)
		default:
			panic("logic error, wrong node type")
		}
	}
}

// Last returns the leaf with the largest index, or nil.
func (t *Trie[E]) Last() *Leaf[E] {
	n := t.root
	for {
		switch kid := n.(type) {
		case nil:
			return nil
		case *Leaf[E]:
			return kid
		case *branch[E]:
			i, _ := kid.children.LastSet()
			n = kid.children.MustGet(i)
		default:
			panic("logic error, wrong node type")
		}
	}
}

// All returns an iterator over all leaves in ascending index order.
func (t *Trie[E]) All() iter.Seq[*Leaf[E]] {
	return func(yield func(*Leaf[E]) bool) {
		allRec[E](t.root, yield)
	}
}

// Backward returns an iterator over all leaves in descending index order.
func (t *Trie[E]) Backward() iter.Seq[*Leaf[E]] {
	return func(yield func(*Leaf[E]) bool) {
		backwardRec[E](t.root, yield)
	}
}

// Clone returns a deep copy of the trie structure.
// If cloneFn is not nil, the items are copied with cloneFn.
func (t *Trie[E]) Clone(cloneFn func(E) E) Trie[E] {
	return Trie[E]{root: cloneRec[E](t.root, cloneFn)}
}

// #####################################################################

// slot returns the child position of index in this branch.
func (b *branch[E]) slot(index uint32) uint {
	return uint(index>>b.shift) & slotMask
}

// contains reports whether index shares the prefix of this branch.
// The shift by 32 for the top branch yields 0 in Go, as needed.
func (b *branch[E]) contains(index uint32) bool {
	return index>>(b.shift+stride) == b.prefix
}

// lowest returns the smallest index covered by this branch.
func (b *branch[E]) lowest() uint32 {
	return b.prefix << (b.shift + stride)
}

// highest returns the largest index covered by this branch.
func (b *branch[E]) highest() uint32 {
	// (prefix+1)<<32 wraps to 0 for the top branch, minus 1 is MaxUint32
	return (b.prefix+1)<<(b.shift+stride) - 1
}

// commonShift returns the greatest 4 bit aligned shift at which i and j differ.
// i and j must not be equal.
func commonShift(i, j uint32) uint8 {
	x := i ^ j
	if x == 0 {
		panic(fmt.Sprintf("trie corruption: no common shift for equal indices %#x", i))
	}
	return uint8(bits.Len32(x)-1) &^ (stride - 1)
}

// representative returns an index covered by node n.
func representative[E any](n any) uint32 {
	switch n := n.(type) {
	case *Leaf[E]:
		return n.Index
	case *branch[E]:
		return n.lowest()
	default:
		panic("logic error, wrong node type")
	}
}

// upsize returns a new branch with n as the sole initial child, placed
// at the minimal shift where n and indexAdded diverge. The caller adds
// the second child for indexAdded right away.
func upsize[E any](n any, indexAdded uint32) *branch[E] {
	rep := representative[E](n)
	shift := commonShift(rep, indexAdded)

	b := &branch[E]{
		shift:  shift,
		prefix: rep >> (shift + stride),
	}
	b.children.InsertAt(b.slot(rep), n)
	return b
}

// entry is the recursive get-or-create.
func entry[E any](n any, index uint32) (*Leaf[E], bool, status) {
	switch n := n.(type) {
	case *Leaf[E]:
		if n.Index == index {
			return n, false, statusOK
		}
		return nil, false, statusUpsize
	case *branch[E]:
		return n.entry(index)
	default:
		panic("logic error, wrong node type")
	}
}

func (b *branch[E]) entry(index uint32) (*Leaf[E], bool, status) {
	if !b.contains(index) {
		return nil, false, statusUpsize
	}

	i := b.slot(index)
	kid, ok := b.children.Get(i)
	if !ok {
		leaf := &Leaf[E]{Index: index}
		b.children.InsertAt(i, leaf)
		return leaf, true, statusOK
	}

	leaf, created, st := entry[E](kid, index)
	if st != statusUpsize {
		return leaf, created, st
	}

	// index lies in slot i but outside of the subtree, grow the subtree
	grown := upsize[E](kid, index)
	b.children.InsertAt(i, grown)

	return grown.entry(index)
}

// delete removes index below b. It answers statusDownsize if b
// is left with a single child, the parent must replace b by it.
func (b *branch[E]) delete(index uint32) (*Leaf[E], status) {
	if !b.contains(index) {
		return nil, statusOK
	}

	if n := b.children.Len(); n < 2 {
		panic(fmt.Sprintf("trie corruption: branch(shift %d, prefix %#x) with %d children", b.shift, b.prefix, n))
	}

	i := b.slot(index)
	kid, ok := b.children.Get(i)
	if !ok {
		return nil, statusOK
	}

	switch kid := kid.(type) {
	case *Leaf[E]:
		if kid.Index != index {
			return nil, statusOK
		}
		if b.children.Len() == 2 {
			// leave the slot, the parent collapses b onto the sibling
			return kid, statusDownsize
		}
		b.children.DeleteAt(i)
		return kid, statusOK

	case *branch[E]:
		leaf, st := kid.delete(index)
		if st == statusDownsize {
			b.children.InsertAt(i, kid.downsize(index))
		}
		return leaf, statusOK

	default:
		panic("logic error, wrong node type")
	}
}

// downsize returns the sole surviving child after indexRemoved is gone.
func (b *branch[E]) downsize(indexRemoved uint32) any {
	if n := b.children.Len(); n != 2 {
		panic(fmt.Sprintf("trie corruption: downsize of branch with %d children", n))
	}

	survivors := b.children.BitSet16
	survivors.MustClear(b.slot(indexRemoved))
	if survivors.IsEmpty() {
		panic("trie corruption: downsize without surviving sibling")
	}

	i, _ := survivors.FirstSet()
	return b.children.MustGet(i)
}

func ceiling[E any](n any, index uint32) *Leaf[E] {
	switch n := n.(type) {
	case nil:
		return nil
	case *Leaf[E]:
		if n.Index >= index {
			return n
		}
		return nil
	case *branch[E]:
		return n.ceiling(index)
	default:
		panic("logic error, wrong node type")
	}
}

func (b *branch[E]) ceiling(index uint32) *Leaf[E] {
	switch hi := index >> (b.shift + stride); {
	case hi > b.prefix:
		return nil
	case hi < b.prefix:
		index = b.lowest()
	}

	for i, ok := b.children.NextSet(b.slot(index)); ok; i, ok = b.children.NextSet(i + 1) {
		if leaf := ceiling[E](b.children.MustGet(i), index); leaf != nil {
			return leaf
		}
	}
	return nil
}

func floor[E any](n any, index uint32) *Leaf[E] {
	switch n := n.(type) {
	case nil:
		return nil
	case *Leaf[E]:
		if n.Index <= index {
			return n
		}
		return nil
	case *branch[E]:
		return n.floor(index)
	default:
		panic("logic error, wrong node type")
	}
}

func (b *branch[E]) floor(index uint32) *Leaf[E] {
	switch hi := index >> (b.shift + stride); {
	case hi < b.prefix:
		return nil
	case hi > b.prefix:
		index = b.highest()
	}

	for i, ok := b.children.PrevSet(b.slot(index)); ok; i, ok = b.children.PrevSet(i - 1) {
		if leaf := floor[E](b.children.MustGet(i), index); leaf != nil {
			return leaf
		}
		if i == 0 {
			break
		}
	}
	return nil
}

func allRec[E any](n any, yield func(*Leaf[E]) bool) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Leaf[E]:
		return yield(n)
	case *branch[E]:
		for _, kid := range n.children.Items {
			if !allRec[E](kid, yield) {
				return false
			}
		}
		return true
	default:
		panic("logic error, wrong node type")
	}
}

func backwardRec[E any](n any, yield func(*Leaf[E]) bool) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Leaf[E]:
		return yield(n)
	case *branch[E]:
		for j := len(n.children.Items) - 1; j >= 0; j-- {
			if !backwardRec[E](n.children.Items[j], yield) {
				return false
			}
		}
		return true
	default:
		panic("logic error, wrong node type")
	}
}

func cloneRec[E any](n any, cloneFn func(E) E) any {
	switch n := n.(type) {
	case nil:
		return nil
	case *Leaf[E]:
		c := &Leaf[E]{Index: n.Index, Item: n.Item}
		if cloneFn != nil {
			c.Item = cloneFn(n.Item)
		}
		return c
	case *branch[E]:
		if n.children.Len() != n.children.Size() {
			panic(fmt.Sprintf("trie corruption: branch with %d items but slots %v",
				n.children.Len(), n.children.BitSet16))
		}
		// shallow copy of the shell, the kids are replaced by their clones
		c := &branch[E]{shift: n.shift, prefix: n.prefix, children: *n.children.Copy()}
		for j, kid := range c.children.Items {
			c.children.Items[j] = cloneRec[E](kid, cloneFn)
		}
		return c
	default:
		panic("logic error, wrong node type")
	}
}
