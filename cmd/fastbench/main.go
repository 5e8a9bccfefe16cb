// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command fastbench runs workloads against the fastmap containers and
// dumps their structure.
package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/carlmjohnson/versioninfo"
	cli "github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(-1)
	}
}

func run(args []string) error {
	app := cli.App{
		Name:    "fastbench",
		Usage:   "workloads and structure dumps for the fastmap containers",
		Version: versioninfo.Short(),
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log verbosity level (eg: warn, info, debug)",
			EnvVars: []string{"FASTBENCH_LOG_LEVEL", "GO_LOG_LEVEL", "LOG_LEVEL"},
		},
		&cli.Uint64Flag{
			Name:    "seed",
			Usage:   "seed of the random key generator",
			Value:   42,
			EnvVars: []string{"FASTBENCH_SEED"},
		},
	}

	app.Commands = []*cli.Command{
		benchCmd,
		dumpCmd,
		cowCmd,
	}

	return app.Run(args)
}

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}
