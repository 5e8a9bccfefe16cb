// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package fastmap

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/gaissmai/fastmap/internal/value"
	"github.com/gaissmai/fastmap/order"
)

// collisions holds all entries of a Map with the same index, either
// a nested *Map with the sub-order or a linear *chain.
type collisions[K, V any] interface {
	get(key K) (V, bool)
	put(key K, val V) (V, bool)
	remove(key K) (V, bool)
	count() int

	ascend(yield func(K, V) bool) bool
	ascendFrom(from K, yield func(K, V) bool) bool
	descend(yield func(K, V) bool) bool
	descendFrom(from K, yield func(K, V) bool) bool

	cloneWith(cloneFn value.CloneFunc[V]) collisions[K, V]
	dump(tree treeprint.Tree)
}

// entry is a key/value pair of a chain.
type entry[K, V any] struct {
	key   K
	value V
}

// chain is the linear collision map for orders without sub-order.
// Keys are found by Equal, new keys are inserted behind all keys
// not greater by Compare, for hashed orders this is always the end.
type chain[K, V any] struct {
	order   order.Order[K]
	entries Table[entry[K, V]]
}

func newChain[K, V any](ord order.Order[K]) *chain[K, V] {
	return &chain[K, V]{order: ord}
}

// find returns the position of key or -1.
func (c *chain[K, V]) find(key K) int {
	return c.entries.IndexFunc(func(e entry[K, V]) bool {
		return c.order.Equal(e.key, key)
	})
}

func (c *chain[K, V]) count() int {
	return c.entries.Size()
}

func (c *chain[K, V]) get(key K) (val V, ok bool) {
	if i := c.find(key); i >= 0 {
		return c.entries.Get(i).value, true
	}
	return
}

func (c *chain[K, V]) put(key K, val V) (old V, exists bool) {
	if i := c.find(key); i >= 0 {
		e := c.entries.Get(i)
		old, e.value = e.value, val
		c.entries.Set(i, e)
		return old, true
	}

	pos := c.entries.Size()
	for pos > 0 && c.order.Compare(c.entries.Get(pos-1).key, key) > 0 {
		pos--
	}
	c.entries.Add(pos, entry[K, V]{key: key, value: val})

	return old, false
}

// promote moves all entries into a nested map with the sub-order.
func (c *chain[K, V]) promote(sub order.Order[K]) *Map[K, V] {
	m := NewMap[K, V](sub)
	for _, e := range c.entries.All() {
		m.Put(e.key, e.value)
	}
	return m
}

func (c *chain[K, V]) remove(key K) (val V, ok bool) {
	i := c.find(key)
	if i < 0 {
		return
	}
	return c.entries.Remove(i).value, true
}

func (c *chain[K, V]) ascend(yield func(K, V) bool) bool {
	return c.ascendAt(0, yield)
}

func (c *chain[K, V]) ascendAt(start int, yield func(K, V) bool) bool {
	for i := start; i < c.entries.Size(); i++ {
		e := c.entries.Get(i)
		if !yield(e.key, e.value) {
			return false
		}
	}
	return true
}

// ascendFrom starts at the position of from if present,
// else at the first key not less than from.
func (c *chain[K, V]) ascendFrom(from K, yield func(K, V) bool) bool {
	start := c.find(from)
	if start < 0 {
		start = 0
		for start < c.entries.Size() && c.order.Compare(c.entries.Get(start).key, from) < 0 {
			start++
		}
	}
	return c.ascendAt(start, yield)
}

func (c *chain[K, V]) descend(yield func(K, V) bool) bool {
	return c.descendAt(c.entries.Size()-1, yield)
}

func (c *chain[K, V]) descendAt(start int, yield func(K, V) bool) bool {
	for i := start; i >= 0; i-- {
		e := c.entries.Get(i)
		if !yield(e.key, e.value) {
			return false
		}
	}
	return true
}

// descendFrom starts at the position of from if present,
// else at the last key not greater than from.
func (c *chain[K, V]) descendFrom(from K, yield func(K, V) bool) bool {
	start := c.find(from)
	if start < 0 {
		start = c.entries.Size() - 1
		for start >= 0 && c.order.Compare(c.entries.Get(start).key, from) > 0 {
			start--
		}
	}
	return c.descendAt(start, yield)
}

func (c *chain[K, V]) cloneWith(cloneFn value.CloneFunc[V]) collisions[K, V] {
	var fn func(entry[K, V]) entry[K, V]
	if cloneFn != nil {
		fn = func(e entry[K, V]) entry[K, V] {
			e.value = cloneFn(e.value)
			return e
		}
	}
	return &chain[K, V]{
		order:   c.order,
		entries: c.entries.cloneWith(fn),
	}
}

func (c *chain[K, V]) dump(tree treeprint.Tree) {
	printVals := !value.IsZST[V]()
	for _, e := range c.entries.All() {
		if printVals {
			tree.AddNode(fmt.Sprintf("%v (%v)", e.key, e.value))
			continue
		}
		tree.AddNode(fmt.Sprint(e.key))
	}
}
