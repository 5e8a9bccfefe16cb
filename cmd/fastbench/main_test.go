// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"compress/gzip"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadKeys(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	plain := filepath.Join(dir, "keys.txt")
	require.NoError(t, os.WriteFile(plain, []byte("b\n\n  a  \nc\n"), 0o600))

	keys, err := readKeys(plain)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, keys)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err = zw.Write([]byte("x\ny\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	gz := filepath.Join(dir, "keys.txt.gz")
	require.NoError(t, os.WriteFile(gz, buf.Bytes(), 0o600))

	keys, err = readKeys(gz)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, keys)

	_, err = readKeys(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRandomKeys(t *testing.T) {
	t.Parallel()
	prng := rand.New(rand.NewPCG(1, 2))

	words := randomWords(prng, 1000)
	assert.Len(t, words, 1000)

	seen := map[string]bool{}
	for _, w := range words {
		require.False(t, seen[w], "duplicate %q", w)
		seen[w] = true
	}

	indices := randomIndices(prng, 1000)
	assert.Len(t, indices, 1000)
}

func TestWorkloads(t *testing.T) {
	t.Parallel()
	prng := rand.New(rand.NewPCG(3, 4))

	n := 500
	words := randomWords(prng, n)
	indices := randomIndices(prng, n)
	positions := make([]int, n)
	for i := range positions {
		positions[i] = prng.IntN(i + 1)
	}

	var logs strings.Builder
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))

	for _, wl := range workloads(words, indices, positions) {
		runWorkload(logger, wl, 0)
		assert.Equal(t, 0, wl.size(), wl.name)
	}
	assert.Empty(t, logs.String(), "no misses, no leftovers")
}

func TestWriteSnapshots(t *testing.T) {
	t.Parallel()
	prng := rand.New(rand.NewPCG(5, 6))

	sm := newSyncMap()
	require.NoError(t, writeSnapshots(sm, randomWords(prng, 300), 7))
	assert.True(t, sm.Load().IsEmpty())
}

func TestRunDump(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.txt")
	require.NoError(t, os.WriteFile(path, []byte("banana\napple\napplesauce\n"), 0o600))

	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"dump", path}, []string{"Set size(3)", "collisions(2)", "banana"}},
		{[]string{"dump", "--json", path}, []string{`"apple"`, `"applesauce"`, `"banana"`}},
	}

	for _, tt := range tests {
		out := captureStdout(t, func() {
			require.NoError(t, run(append([]string{"fastbench"}, tt.args...)))
		})
		for _, w := range tt.want {
			assert.Contains(t, out, w, tt.args)
		}
	}

	assert.Error(t, run([]string{"fastbench", "dump", "--order", "nope", path}))
}

// captureStdout redirects os.Stdout, the default writer of the app.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	done := make(chan string)
	go func() {
		b, _ := io.ReadAll(r)
		done <- string(b)
	}()

	fn()
	require.NoError(t, w.Close())
	return <-done
}
