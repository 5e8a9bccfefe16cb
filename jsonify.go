// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package fastmap

import (
	"encoding/json"
)

// MapEntry is the JSON element of a [Map].
type MapEntry[K, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

// IndexEntry is the JSON element of an [IndexMap].
type IndexEntry[V any] struct {
	Index uint32 `json:"index"`
	Value V      `json:"value"`
}

// MarshalJSON dumps the map as array of key/value objects,
// an array and not an object, because the order matters
// and the keys need not be strings.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	list := make([]MapEntry[K, V], 0, m.Size())
	if m != nil {
		for k, v := range m.All() {
			list = append(list, MapEntry[K, V]{Key: k, Value: v})
		}
	}

	return json.Marshal(list)
}

// MarshalJSON dumps the set as ordered array of elements.
func (s *Set[K]) MarshalJSON() ([]byte, error) {
	list := make([]K, 0, s.Size())
	if s != nil {
		for k := range s.All() {
			list = append(list, k)
		}
	}

	return json.Marshal(list)
}

// MarshalJSON dumps the map as array of index/value objects in index order.
func (m *IndexMap[V]) MarshalJSON() ([]byte, error) {
	list := make([]IndexEntry[V], 0, m.Size())
	if m != nil {
		for i, v := range m.All() {
			list = append(list, IndexEntry[V]{Index: i, Value: v})
		}
	}

	return json.Marshal(list)
}

// MarshalJSON dumps the table as array of elements.
func (t *Table[E]) MarshalJSON() ([]byte, error) {
	list := make([]E, 0, t.Size())
	if t != nil {
		for e := range t.Values() {
			list = append(list, e)
		}
	}

	return json.Marshal(list)
}
