// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package golden provides simple and slow reference containers,
// the golden models for the fastmap tests.
package golden

import (
	"fmt"
	"slices"
)

// GoldMap is a simple and slow ordered map, implemented as a slice of
// items kept sorted by Cmp, as a golden reference for fastmap.Map.
type GoldMap[K, V any] struct {
	Cmp   func(a, b K) int
	Items []GoldMapItem[K, V]
}

type GoldMapItem[K, V any] struct {
	Key K
	Val V
}

func (g GoldMapItem[K, V]) String() string {
	return fmt.Sprintf("(%v, %v)", g.Key, g.Val)
}

// NewGoldMap returns an empty GoldMap ordered by cmp.
func NewGoldMap[K, V any](cmp func(a, b K) int) *GoldMap[K, V] {
	return &GoldMap[K, V]{Cmp: cmp}
}

func (t *GoldMap[K, V]) search(key K) (int, bool) {
	return slices.BinarySearchFunc(t.Items, key, func(item GoldMapItem[K, V], k K) int {
		return t.Cmp(item.Key, k)
	})
}

func (t *GoldMap[K, V]) Put(key K, val V) (old V, exists bool) {
	i, found := t.search(key)
	if found {
		old, t.Items[i].Val = t.Items[i].Val, val // de-dupe
		return old, true
	}
	t.Items = slices.Insert(t.Items, i, GoldMapItem[K, V]{key, val})
	return old, false
}

func (t *GoldMap[K, V]) Delete(key K) (val V, exists bool) {
	i, found := t.search(key)
	if !found {
		return val, false
	}
	val = t.Items[i].Val
	t.Items = slices.Delete(t.Items, i, i+1)
	return val, true
}

func (t *GoldMap[K, V]) Get(key K) (val V, ok bool) {
	if i, found := t.search(key); found {
		return t.Items[i].Val, true
	}
	return val, false
}

func (t *GoldMap[K, V]) Size() int {
	return len(t.Items)
}

// Keys returns all keys in ascending order.
func (t *GoldMap[K, V]) Keys() []K {
	var result []K
	for _, item := range t.Items {
		result = append(result, item.Key)
	}
	return result
}

// KeysFrom returns all keys >= key in ascending order.
func (t *GoldMap[K, V]) KeysFrom(key K) []K {
	i, _ := t.search(key)

	var result []K
	for _, item := range t.Items[i:] {
		result = append(result, item.Key)
	}
	return result
}

// KeysBackwardFrom returns all keys <= key in descending order.
func (t *GoldMap[K, V]) KeysBackwardFrom(key K) []K {
	i, found := t.search(key)
	if found {
		i++
	}

	var result []K
	for j := i - 1; j >= 0; j-- {
		result = append(result, t.Items[j].Key)
	}
	return result
}

// Ceiling returns the smallest key >= key.
func (t *GoldMap[K, V]) Ceiling(key K) (k K, ok bool) {
	if keys := t.KeysFrom(key); len(keys) > 0 {
		return keys[0], true
	}
	return k, false
}

// Floor returns the largest key <= key.
func (t *GoldMap[K, V]) Floor(key K) (k K, ok bool) {
	if keys := t.KeysBackwardFrom(key); len(keys) > 0 {
		return keys[0], true
	}
	return k, false
}

// Higher returns the smallest key > key.
func (t *GoldMap[K, V]) Higher(key K) (k K, ok bool) {
	for _, item := range t.Items {
		if t.Cmp(item.Key, key) > 0 {
			return item.Key, true
		}
	}
	return k, false
}

// Lower returns the largest key < key.
func (t *GoldMap[K, V]) Lower(key K) (k K, ok bool) {
	for i := len(t.Items) - 1; i >= 0; i-- {
		if t.Cmp(t.Items[i].Key, key) < 0 {
			return t.Items[i].Key, true
		}
	}
	return k, false
}

// GoldTable is a slice as golden reference for the positional fastmap.Table.
type GoldTable[E any] []E

func (t *GoldTable[E]) Add(i int, e E) {
	*t = slices.Insert(*t, i, e)
}

func (t *GoldTable[E]) Remove(i int) E {
	e := (*t)[i]
	*t = slices.Delete(*t, i, i+1)
	return e
}
