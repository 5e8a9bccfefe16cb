// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package fastmap_test

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gaissmai/fastmap"
	"github.com/gaissmai/fastmap/order"
)

// SyncMap demonstrates how to wrap a [fastmap.Map] for safe concurrent access.
//
// Readers load the current version lock-free via an atomic pointer.
// Writers are serialized by a mutex, they modify a clone and publish it.
// This copy-on-write pattern pays off when reads are frequent and writes
// are rare.
type SyncMap[K, V any] struct {
	// current immutable version, never modified after Store
	atomicPtr atomic.Pointer[fastmap.Map[K, V]]

	// serializes the writers
	mutex sync.Mutex
}

// NewSyncMap returns an empty SyncMap with the placement order ord.
func NewSyncMap[K, V any](ord order.Order[K]) *SyncMap[K, V] {
	sm := new(SyncMap[K, V])
	sm.atomicPtr.Store(fastmap.NewMap[K, V](ord))
	return sm
}

// Get is a sync adapter for [fastmap.Map.Get].
func (sm *SyncMap[K, V]) Get(key K) (V, bool) {
	return sm.atomicPtr.Load().Get(key)
}

// Size is a sync adapter for [fastmap.Map.Size].
func (sm *SyncMap[K, V]) Size() int {
	return sm.atomicPtr.Load().Size()
}

// Put is a sync adapter for [fastmap.Map.Put].
func (sm *SyncMap[K, V]) Put(key K, val V) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	next := sm.atomicPtr.Load().Clone()
	next.Put(key, val)

	sm.atomicPtr.Store(next)
}

// Delete is a sync adapter for [fastmap.Map.Delete].
func (sm *SyncMap[K, V]) Delete(key K) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	next := sm.atomicPtr.Load().Clone()
	next.Delete(key)

	sm.atomicPtr.Store(next)
}

// ExampleMap_concurrent demonstrates the copy-on-write usage of fastmap.
// Run it with the race detector enabled
// (use `go test -race -run=ExampleMap_concurrent`).
func ExampleMap_concurrent() {
	wg := sync.WaitGroup{}

	sm := NewSyncMap[string, int](order.Lexical())

	keys := make([]string, 100)
	for i := range keys {
		keys[i] = "key-" + strconv.Itoa(i)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i, k := range keys {
			sm.Put(k, i)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, k := range keys[:50] {
			sm.Delete(k)
		}
	}()

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, k := range keys {
				sm.Get(k)
			}
		}()
	}

	wg.Wait()

	// all puts are done, delete the first half once more
	for _, k := range keys[:50] {
		sm.Delete(k)
	}
	fmt.Println(sm.Size())

	// Output:
	// 50
}
