// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
)

// readKeys returns the non empty lines of the file at path, gunzipped
// if the name ends in ".gz". The path "-" reads from stdin.
func readKeys(path string) (keys []string, err error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening keys: %w", err)
		}
		defer file.Close()
		r = file
	}

	if strings.HasSuffix(path, ".gz") {
		rgz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		defer rgz.Close()
		r = rgz
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		keys = append(keys, line)
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return keys, nil
}

// randomWords returns n distinct words, about half of them sharing
// a prefix with an earlier word.
func randomWords(prng *rand.Rand, n int) []string {
	set := make(map[string]bool, n)
	words := make([]string, 0, n)

	for len(words) < n {
		var w string
		if len(words) > 0 && prng.IntN(2) == 0 {
			base := words[prng.IntN(len(words))]
			w = base[:prng.IntN(len(base)+1)] + randomWord(prng, 1+prng.IntN(8))
		} else {
			w = randomWord(prng, 1+prng.IntN(16))
		}

		if !set[w] {
			set[w] = true
			words = append(words, w)
		}
	}
	return words
}

func randomWord(prng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + prng.IntN(26))
	}
	return string(b)
}

// randomIndices returns n distinct indices, clustered in
// a few random blocks of 64K like real world id spaces.
func randomIndices(prng *rand.Rand, n int) []uint32 {
	blocks := make([]uint32, 1+n/10_000)
	for i := range blocks {
		blocks[i] = prng.Uint32() &^ 0xffff
	}

	set := make(map[uint32]bool, n)
	idx := make([]uint32, 0, n)

	for len(idx) < n {
		i := blocks[prng.IntN(len(blocks))] | prng.Uint32N(1<<16)
		if !set[i] {
			set[i] = true
			idx = append(idx, i)
		}
	}
	return idx
}
