// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var opDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "fastbench_op_duration_seconds",
	Help:    "Time per container operation, averaged over a workload round",
	Buckets: prometheus.ExponentialBucketsRange(1e-9, 1e-4, 20),
}, []string{"container", "op"})

var opCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "fastbench_ops_total",
	Help: "Number of container operations executed",
}, []string{"container", "op"})

var containerSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "fastbench_container_size",
	Help: "Number of entries after the put phase of a workload",
}, []string{"container"})

var snapshotsPublished = promauto.NewCounter(prometheus.CounterOpts{
	Name: "fastbench_cow_snapshots_total",
	Help: "Number of cloned snapshots published by the cow writer",
})

var snapshotReads = promauto.NewCounter(prometheus.CounterOpts{
	Name: "fastbench_cow_reads_total",
	Help: "Number of lookups served from published snapshots",
})
