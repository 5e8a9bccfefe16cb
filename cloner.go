// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package fastmap

// Cloner is an interface that enables deep cloning of values of type V.
// If a value implements Cloner[V], the Clone methods of [Map],
// [IndexMap] and [Table] use it to perform deep copies.
type Cloner[V any] interface {
	Clone() V
}

// Equaler is an interface for values that decide their own equality.
// If a value implements Equaler[V], the Equal methods of the containers
// use it instead of the potentially expensive reflect.DeepEqual.
type Equaler[V any] interface {
	Equal(other V) bool
}
