// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	cli "github.com/urfave/cli/v2"

	"github.com/gaissmai/fastmap"
	"github.com/gaissmai/fastmap/order"
)

var dumpCmd = &cli.Command{
	Name:      "dump",
	Usage:     "read keys and print the structure of the container",
	ArgsUsage: `<file>...`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "order",
			Usage:   "placement order: lexical, fold, stringhash or uint32",
			Value:   "lexical",
			EnvVars: []string{"FASTBENCH_ORDER"},
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print the entries as JSON instead of the tree diagram",
		},
	},
	Action: runDump,
}

func runDump(cctx *cli.Context) error {
	logger := configLogger(cctx, cctx.App.ErrWriter)

	paths := cctx.Args().Slice()
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	var keys []string
	for _, path := range paths {
		more, err := readKeys(path)
		if err != nil {
			return err
		}
		keys = append(keys, more...)
	}
	logger.Debug("keys read", "files", len(paths), "keys", len(keys))

	w := cctx.App.Writer
	asJSON := cctx.Bool("json")

	switch ord := cctx.String("order"); ord {
	case "lexical", "fold", "stringhash":
		s := fastmap.NewSet[string](stringOrder(ord))
		for _, k := range keys {
			s.Add(k)
		}
		return printContainer(w, s, asJSON)

	case "uint32":
		var m fastmap.IndexMap[int]
		for line, k := range keys {
			i, err := strconv.ParseUint(k, 0, 32)
			if err != nil {
				return fmt.Errorf("parsing key %q: %w", k, err)
			}
			m.Put(uint32(i), line+1)
		}
		return printContainer(w, &m, asJSON)

	default:
		return fmt.Errorf("unknown order: %q", ord)
	}
}

func stringOrder(name string) order.Order[string] {
	switch name {
	case "fold":
		return order.LexicalFold()
	case "stringhash":
		return order.StringHash()
	}
	return order.Lexical()
}

type printer interface {
	Fprint(w io.Writer) error
	json.Marshaler
}

func printContainer(w io.Writer, p printer, asJSON bool) error {
	if !asJSON {
		return p.Fprint(w)
	}

	buf, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(buf))
	return err
}
