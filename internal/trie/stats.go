// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package trie

import (
	"errors"
	"fmt"

	"github.com/xlab/treeprint"
)

// Stats, some statistics about the trie structure.
type Stats struct {
	Branches int
	Leaves   int
	MaxDepth int // leaf depth, a single leaf root has depth 0
}

// Stats walks the trie and counts branches and leaves.
func (t *Trie[E]) Stats() Stats {
	var s Stats
	statsRec[E](t.root, 0, &s)
	return s
}

func statsRec[E any](n any, depth int, s *Stats) {
	switch n := n.(type) {
	case nil:
	case *Leaf[E]:
		s.Leaves++
		s.MaxDepth = max(s.MaxDepth, depth)
	case *branch[E]:
		s.Branches++
		for _, kid := range n.children.Items {
			statsRec[E](kid, depth+1, s)
		}
	default:
		panic("logic error, wrong node type")
	}
}

// errCorrupt wraps all structural violations reported by Validate.
var errCorrupt = errors.New("trie corruption")

// Validate checks the structural invariants of the trie: every branch has
// at least two children, every child lies inside the prefix and slot of its
// parent and nested branches have a strictly smaller shift.
func (t *Trie[E]) Validate() error {
	return validateRec[E](t.root, nil, 0)
}

func validateRec[E any](n any, parent *branch[E], slot uint) error {
	switch n := n.(type) {
	case nil:
		if parent != nil {
			return fmt.Errorf("%w: nil child in slot %d", errCorrupt, slot)
		}
		return nil

	case *Leaf[E]:
		if parent != nil && (!parent.contains(n.Index) || parent.slot(n.Index) != slot) {
			return fmt.Errorf("%w: leaf %#x misplaced in branch(shift %d, prefix %#x) slot %d",
				errCorrupt, n.Index, parent.shift, parent.prefix, slot)
		}
		return nil

	case *branch[E]:
		if n.shift%stride != 0 || n.shift > 32-stride {
			return fmt.Errorf("%w: branch with illegal shift %d", errCorrupt, n.shift)
		}
		if n.children.Len() < 2 || n.children.Len() != n.children.Size() {
			return fmt.Errorf("%w: branch(shift %d, prefix %#x) with %d children in slots %v",
				errCorrupt, n.shift, n.prefix, n.children.Len(), n.children.BitSet16)
		}
		if parent != nil {
			if n.shift >= parent.shift {
				return fmt.Errorf("%w: branch shift %d below shift %d", errCorrupt, n.shift, parent.shift)
			}
			if low := n.lowest(); !parent.contains(low) || parent.slot(low) != slot {
				return fmt.Errorf("%w: branch(shift %d, prefix %#x) misplaced in slot %d",
					errCorrupt, n.shift, n.prefix, slot)
			}
		}
		for _, i := range n.children.All() {
			if err := validateRec[E](n.children.MustGet(i), n, i); err != nil {
				return err
			}
		}
		return nil

	default:
		panic("logic error, wrong node type")
	}
}

// Dump adds the trie structure to tree. Branches become treeprint branches,
// for every leaf the callback addLeaf is called with the enclosing tree.
func (t *Trie[E]) Dump(tree treeprint.Tree, addLeaf func(treeprint.Tree, *Leaf[E])) {
	dumpRec[E](t.root, tree, addLeaf)
}

func dumpRec[E any](n any, tree treeprint.Tree, addLeaf func(treeprint.Tree, *Leaf[E])) {
	switch n := n.(type) {
	case nil:
	case *Leaf[E]:
		addLeaf(tree, n)
	case *branch[E]:
		sub := tree.AddBranch(fmt.Sprintf("[%08x-%08x] shift(%d) children(%d)",
			n.lowest(), n.highest(), n.shift, n.children.Len()))
		for _, kid := range n.children.Items {
			dumpRec[E](kid, sub, addLeaf)
		}
	default:
		panic("logic error, wrong node type")
	}
}
