// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	cli "github.com/urfave/cli/v2"

	"github.com/gaissmai/fastmap"
	"github.com/gaissmai/fastmap/order"
)

var benchCmd = &cli.Command{
	Name:  "bench",
	Usage: "run put/get/delete workloads against the containers and the builtin types",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "n",
			Usage:   "number of keys per workload",
			Value:   100_000,
			EnvVars: []string{"FASTBENCH_N"},
		},
		&cli.IntFlag{
			Name:    "rounds",
			Usage:   "number of rounds per workload",
			Value:   3,
			EnvVars: []string{"FASTBENCH_ROUNDS"},
		},
		&cli.StringFlag{
			Name:    "keys",
			Usage:   "file with one string key per line, gzipped if *.gz, '-' for stdin",
			EnvVars: []string{"FASTBENCH_KEYS"},
		},
		&cli.StringSliceFlag{
			Name:    "only",
			Usage:   "run only the named workloads",
			EnvVars: []string{"FASTBENCH_ONLY"},
		},
		&cli.StringFlag{
			Name:    "metrics-listen",
			Usage:   "IP or address, and port, to listen on for metrics APIs, keeps running until interrupted",
			EnvVars: []string{"FASTBENCH_METRICS_LISTEN"},
		},
	},
	Action: runBench,
}

// workload is a container under test, addressed by the
// position of the key in the generated key list.
type workload struct {
	name  string
	count int
	reset func()
	put   func(i int)
	get   func(i int) bool
	del   func(i int)
	size  func() int
}

func runBench(cctx *cli.Context) error {
	ctx, stop := signal.NotifyContext(cctx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := configLogger(cctx, os.Stderr)
	prng := rand.New(rand.NewPCG(cctx.Uint64("seed"), 42))

	n := cctx.Int("n")
	if n <= 0 {
		return fmt.Errorf("invalid number of keys: %d", n)
	}

	words := randomWords(prng, n)
	if path := cctx.String("keys"); path != "" {
		var err error
		if words, err = readKeys(path); err != nil {
			return err
		}
		words = slices.Compact(slices.Sorted(slices.Values(words)))
		prng.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
		logger.Info("keys loaded", "path", path, "distinct", len(words))
	}

	indices := randomIndices(prng, n)
	positions := make([]int, n)
	for i := range positions {
		positions[i] = prng.IntN(i + 1)
	}

	var srv *http.Server
	if addr := cctx.String("metrics-listen"); addr != "" {
		srv = &http.Server{
			Addr:    addr,
			Handler: promhttp.Handler(),
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "err", err)
			}
		}()
		logger.Info("serving metrics", "addr", addr)
	}

	only := cctx.StringSlice("only")
	for _, wl := range workloads(words, indices, positions) {
		if len(only) > 0 && !slices.Contains(only, wl.name) {
			continue
		}
		for round := range cctx.Int("rounds") {
			if err := ctx.Err(); err != nil {
				return err
			}
			runWorkload(logger, wl, round)
		}
	}

	if srv == nil {
		return nil
	}

	logger.Info("workloads done, waiting for interrupt")
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runWorkload(logger *slog.Logger, wl workload, round int) {
	wl.reset()

	n := 0
	phase := func(op string, fn func(i int)) {
		start := time.Now()
		for i := range n {
			fn(i)
		}
		elapsed := time.Since(start)

		perOp := elapsed / time.Duration(max(n, 1))
		opDuration.WithLabelValues(wl.name, op).Observe(perOp.Seconds())
		opCount.WithLabelValues(wl.name, op).Add(float64(n))

		logger.Info("workload phase", "workload", wl.name, "round", round, "op", op, "n", n, "per_op", perOp)
	}

	n = wl.count
	phase("put", wl.put)
	containerSize.WithLabelValues(wl.name).Set(float64(wl.size()))

	misses := 0
	phase("get", func(i int) {
		if !wl.get(i) {
			misses++
		}
	})
	if misses > 0 {
		logger.Warn("lookup misses", "workload", wl.name, "misses", misses)
	}

	phase("delete", wl.del)
	if size := wl.size(); size != 0 {
		logger.Warn("container not empty after delete phase", "workload", wl.name, "size", size)
	}
}

func workloads(words []string, indices []uint32, positions []int) []workload {
	var wls []workload

	for _, o := range []struct {
		name string
		ord  order.Order[string]
	}{
		{"map/lexical", order.Lexical()},
		{"map/lexical-fold", order.LexicalFold()},
		{"map/stringhash", order.StringHash()},
		{"map/hash", order.Hash[string]()},
	} {
		var m *fastmap.Map[string, int]
		wls = append(wls, workload{
			name:  o.name,
			reset: func() { m = fastmap.NewMap[string, int](o.ord) },
			put:   func(i int) { m.Put(words[i], i) },
			get:   func(i int) bool { _, ok := m.Get(words[i]); return ok },
			del:   func(i int) { m.Delete(words[i]) },
			size:  func() int { return m.Size() },
			count: len(words),
		})
	}

	var gs map[string]int
	wls = append(wls, workload{
		name:  "builtin/map-string",
		reset: func() { gs = make(map[string]int) },
		put:   func(i int) { gs[words[i]] = i },
		get:   func(i int) bool { _, ok := gs[words[i]]; return ok },
		del:   func(i int) { delete(gs, words[i]) },
		size:  func() int { return len(gs) },
		count: len(words),
	})

	var mu *fastmap.Map[uint32, int]
	wls = append(wls, workload{
		name:  "map/uint32",
		reset: func() { mu = fastmap.NewMap[uint32, int](order.Uint32()) },
		put:   func(i int) { mu.Put(indices[i], i) },
		get:   func(i int) bool { _, ok := mu.Get(indices[i]); return ok },
		del:   func(i int) { mu.Delete(indices[i]) },
		size:  func() int { return mu.Size() },
		count: len(indices),
	})

	var im *fastmap.IndexMap[int]
	wls = append(wls, workload{
		name:  "indexmap",
		reset: func() { im = new(fastmap.IndexMap[int]) },
		put:   func(i int) { im.Put(indices[i], i) },
		get:   func(i int) bool { _, ok := im.Get(indices[i]); return ok },
		del:   func(i int) { im.Delete(indices[i]) },
		size:  func() int { return im.Size() },
		count: len(indices),
	})

	var gu map[uint32]int
	wls = append(wls, workload{
		name:  "builtin/map-uint32",
		reset: func() { gu = make(map[uint32]int) },
		put:   func(i int) { gu[indices[i]] = i },
		get:   func(i int) bool { _, ok := gu[indices[i]]; return ok },
		del:   func(i int) { delete(gu, indices[i]) },
		size:  func() int { return len(gu) },
		count: len(indices),
	})

	// positional workloads insert at positions[i] <= i, get and delete
	// walk the positions backwards to stay in range
	var tbl *fastmap.Table[int]
	wls = append(wls, workload{
		name:  "table",
		reset: func() { tbl = new(fastmap.Table[int]) },
		put:   func(i int) { tbl.Add(positions[i], i) },
		get:   func(i int) bool { return tbl.Get(positions[i]) >= 0 },
		del:   func(i int) { tbl.Remove(positions[len(positions)-1-i]) },
		size:  func() int { return tbl.Size() },
		count: len(positions),
	})

	var sl []int
	wls = append(wls, workload{
		name:  "builtin/slice",
		reset: func() { sl = nil },
		put:   func(i int) { sl = slices.Insert(sl, positions[i], i) },
		get:   func(i int) bool { return sl[positions[i]] >= 0 },
		del: func(i int) {
			pos := positions[len(positions)-1-i]
			sl = slices.Delete(sl, pos, pos+1)
		},
		size:  func() int { return len(sl) },
		count: len(positions),
	})

	return wls
}
