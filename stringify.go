// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package fastmap

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/gaissmai/fastmap/internal/trie"
	"github.com/gaissmai/fastmap/internal/value"
)

// MarshalText implements the [encoding.TextMarshaler] interface,
// just a wrapper for [Map.Fprint].
func (m *Map[K, V]) MarshalText() ([]byte, error) {
	w := new(bytes.Buffer)
	if err := m.Fprint(w); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// String returns the tree diagram of the map as string,
// just a wrapper for [Map.Fprint].
// If Fprint returns an error, String panics.
func (m *Map[K, V]) String() string {
	w := new(strings.Builder)
	if err := m.Fprint(w); err != nil {
		panic(err)
	}

	return w.String()
}

// Fprint writes a tree diagram of the map structure to w.
//
// Every trie branch is shown with its index range, every entry with
// its index, key and value. Nested collision maps are shown below the
// index of the collision. Zero sized values, as in a [Set], are omitted.
//
//	Map size(3)
//	└── [00000000-00000fff] shift(8) children(2)
//	    ├── [00000000-0000000f] shift(0) children(2)
//	    │   ├── 00000001 1 (one)
//	    │   └── 00000002 2 (two)
//	    └── 00000100 256 (x)
func (m *Map[K, V]) Fprint(w io.Writer) error {
	return m.fprint(w, "Map")
}

func (m *Map[K, V]) fprint(w io.Writer, title string) error {
	if w == nil {
		return fmt.Errorf("nil writer")
	}

	tree := treeprint.NewWithRoot(fmt.Sprintf("%s size(%d)", title, m.Size()))
	if m != nil {
		m.dump(tree)
	}

	_, err := io.WriteString(w, tree.String())
	return err
}

// dump adds the trie of m to tree, nested maps recursively.
func (m *Map[K, V]) dump(tree treeprint.Tree) {
	printVals := !value.IsZST[V]()

	m.trie.Dump(tree, func(t treeprint.Tree, leaf *trie.Leaf[slot[K, V]]) {
		s := leaf.Item
		if s.sub != nil {
			sub := t.AddBranch(fmt.Sprintf("%08x collisions(%d)", leaf.Index, s.sub.count()))
			s.sub.dump(sub)
			return
		}

		if printVals {
			t.AddNode(fmt.Sprintf("%08x %v (%v)", leaf.Index, s.key, s.value))
			return
		}
		t.AddNode(fmt.Sprintf("%08x %v", leaf.Index, s.key))
	})
}

// String returns the tree diagram of the set as string,
// see [Map.Fprint].
func (s *Set[K]) String() string {
	w := new(strings.Builder)
	if err := s.Fprint(w); err != nil {
		panic(err)
	}

	return w.String()
}

// Fprint writes a tree diagram of the set structure to w,
// see [Map.Fprint].
func (s *Set[K]) Fprint(w io.Writer) error {
	if s == nil {
		return (*Map[K, struct{}])(nil).fprint(w, "Set")
	}
	return s.m.fprint(w, "Set")
}

// String returns the tree diagram of the map as string,
// just a wrapper for [IndexMap.Fprint].
func (m *IndexMap[V]) String() string {
	w := new(strings.Builder)
	if err := m.Fprint(w); err != nil {
		panic(err)
	}

	return w.String()
}

// Fprint writes a tree diagram of the map structure to w,
// see [Map.Fprint].
func (m *IndexMap[V]) Fprint(w io.Writer) error {
	if w == nil {
		return fmt.Errorf("nil writer")
	}

	tree := treeprint.NewWithRoot(fmt.Sprintf("IndexMap size(%d)", m.Size()))
	if m != nil {
		printVals := !value.IsZST[V]()
		m.trie.Dump(tree, func(t treeprint.Tree, leaf *trie.Leaf[V]) {
			if printVals {
				t.AddNode(fmt.Sprintf("%08x (%v)", leaf.Index, leaf.Item))
				return
			}
			t.AddNode(fmt.Sprintf("%08x", leaf.Index))
		})
	}

	_, err := io.WriteString(w, tree.String())
	return err
}
