// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package value decides at runtime how the payload of a container is
// compared, cloned and printed.
//
// A payload type may bring its own Equal or Clone method, the containers
// ask for it once per operation and fall back to reflect.DeepEqual and
// plain assignment.
package value

import (
	"reflect"
	"unsafe"
)

// IsZST reports whether V occupies no memory, like the
// struct{} payload of a set. Dumps omit such payloads.
func IsZST[V any]() bool {
	var zero V
	return unsafe.Sizeof(zero) == 0
}

// Equaler is implemented by payloads with their own equality.
type Equaler[V any] interface {
	Equal(other V) bool
}

// Equal reports whether a and b are equal, by the Equal method
// of a if V implements [Equaler], else by reflect.DeepEqual.
func Equal[V any](a, b V) bool {
	if eq, ok := any(a).(Equaler[V]); ok {
		return eq.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}

// Cloner is implemented by payloads with a deep copy.
type Cloner[V any] interface {
	Clone() V
}

// CloneFunc copies a payload, nil stands for plain assignment.
type CloneFunc[V any] func(V) V

// ClonerOf returns [Clone] if V implements [Cloner], else nil.
// The check is made once per type, not per payload.
func ClonerOf[V any]() CloneFunc[V] {
	var zero V
	if _, ok := any(zero).(Cloner[V]); !ok {
		return nil
	}
	return Clone[V]
}

// Clone returns the deep copy of v, or v itself if V
// does not implement [Cloner].
//
// A nil pointer payload is passed to its Clone method,
// the method must handle the nil receiver.
func Clone[V any](v V) V {
	if c, ok := any(v).(Cloner[V]); ok {
		return c.Clone()
	}
	return v
}
