// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"
	"sync/atomic"
	"time"

	cli "github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/gaissmai/fastmap"
	"github.com/gaissmai/fastmap/order"
)

var cowCmd = &cli.Command{
	Name:  "cow",
	Usage: "concurrent readers over cloned snapshots published by a single writer",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "n",
			Usage:   "number of keys",
			Value:   10_000,
			EnvVars: []string{"FASTBENCH_N"},
		},
		&cli.IntFlag{
			Name:    "readers",
			Usage:   "number of concurrent readers",
			Value:   4,
			EnvVars: []string{"FASTBENCH_READERS"},
		},
		&cli.IntFlag{
			Name:    "batch",
			Usage:   "number of writes per published snapshot",
			Value:   100,
			EnvVars: []string{"FASTBENCH_BATCH"},
		},
	},
	Action: runCow,
}

// syncMap publishes immutable snapshots of a Map,
// readers are lock-free, writers are serialized.
type syncMap struct {
	atomic.Pointer[fastmap.Map[string, int]]
	sync.Mutex
}

func newSyncMap() *syncMap {
	sm := new(syncMap)
	sm.Store(fastmap.NewMap[string, int](order.Lexical()))
	return sm
}

func (sm *syncMap) Get(key string) (int, bool) {
	return sm.Load().Get(key)
}

// Update applies fn to a clone of the current version and publishes it.
func (sm *syncMap) Update(fn func(m *fastmap.Map[string, int])) {
	sm.Lock() // acquire writer lock to exclude other writers
	defer sm.Unlock()

	next := sm.Load().Clone()
	fn(next)

	sm.Store(next) // atomically publish new version for readers
	snapshotsPublished.Inc()
}

func runCow(cctx *cli.Context) error {
	logger := configLogger(cctx, os.Stderr)
	prng := rand.New(rand.NewPCG(cctx.Uint64("seed"), 42))

	n, readers, batch := cctx.Int("n"), cctx.Int("readers"), cctx.Int("batch")
	if n <= 0 || readers <= 0 || batch <= 0 {
		return fmt.Errorf("n, readers and batch must be positive")
	}

	words := randomWords(prng, n)
	sm := newSyncMap()

	ctx, cancel := context.WithCancel(cctx.Context)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	start := time.Now()

	var reads atomic.Int64
	for r := range readers {
		eg.Go(func() error {
			rprng := rand.New(rand.NewPCG(uint64(r), 7))
			for ctx.Err() == nil {
				sm.Get(words[rprng.IntN(len(words))])
				reads.Add(1)
				snapshotReads.Inc()
			}
			return nil
		})
	}

	// the writer stops the readers when done
	if err := writeSnapshots(sm, words, batch); err != nil {
		cancel()
		_ = eg.Wait()
		return err
	}
	cancel()

	if err := eg.Wait(); err != nil {
		return err
	}

	logger.Info("cow done",
		"keys", n,
		"readers", readers,
		"batch", batch,
		"reads", reads.Load(),
		"elapsed", time.Since(start),
	)
	return nil
}

// writeSnapshots puts all words and deletes them again,
// batch writes per published snapshot.
func writeSnapshots(sm *syncMap, words []string, batch int) error {
	for lo := 0; lo < len(words); lo += batch {
		hi := min(lo+batch, len(words))
		sm.Update(func(m *fastmap.Map[string, int]) {
			for i, w := range words[lo:hi] {
				m.Put(w, lo+i)
			}
		})
	}

	if got := sm.Load().Size(); got != len(words) {
		return fmt.Errorf("snapshot size after puts: %d, want %d", got, len(words))
	}

	for lo := 0; lo < len(words); lo += batch {
		hi := min(lo+batch, len(words))
		sm.Update(func(m *fastmap.Map[string, int]) {
			for _, w := range words[lo:hi] {
				m.Delete(w)
			}
		})
	}

	if got := sm.Load().Size(); got != 0 {
		return fmt.Errorf("snapshot size after deletes: %d, want 0", got)
	}
	return nil
}
