// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command tokentree builds prefix statistics of text corpora and queries them.
//
//	tokentree build -o corpus.snap a.txt b.txt
//	tokentree top -s corpus.snap -n 20 --min-len 2
//	tokentree find -s corpus.snap "the cat"
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/gaissmai/tokentree/internal/config"
	"github.com/gaissmai/tokentree/internal/logger"
)

var version = "dev"

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// app is the state shared by all commands, set up in the Before hook.
type app struct {
	stdout io.Writer
	stderr io.Writer

	cfg config.Config
	log *zap.Logger
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, log: zap.NewNop()}

	root := &cli.Command{
		Name:      "tokentree",
		Version:   version,
		Usage:     "counts token sequences of text corpora in a prefix tree",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "config",
				Aliases:   []string{"c"},
				Usage:     "YAML config file",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: debug, info, warn, error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format: console, json",
			},
		},
		Before: a.setup,
		After: func(context.Context, *cli.Command) error {
			_ = a.log.Sync()
			return nil
		},
		Commands: []*cli.Command{
			a.buildCommand(),
			a.statsCommand(),
			a.topCommand(),
			a.findCommand(),
			a.dumpCommand(),
		},
	}

	// errors are reported below, never call os.Exit from inside cli
	root.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	if err := root.Run(ctx, args); err != nil {
		fmt.Fprintf(stderr, "tokentree: %v\n", err)
		return 1
	}
	return 0
}

// setup loads the config file and applies the global flags,
// the command flags are applied by the commands.
func (a *app) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}

	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.Log.Format = cmd.String("log-format")
	}
	if err := cfg.Validate(); err != nil {
		return ctx, err
	}

	a.cfg = cfg
	a.log = logger.NewWriter(cfg.Log, a.stderr)

	return ctx, nil
}
