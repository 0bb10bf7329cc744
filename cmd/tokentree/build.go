// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gaissmai/tokentree"
	"github.com/gaissmai/tokentree/internal/config"
	"github.com/gaissmai/tokentree/internal/corpus"
	"github.com/gaissmai/tokentree/internal/snapshot"
)

func (a *app) buildCommand() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "reads corpus files and writes a snapshot",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "output",
				Aliases:   []string{"o"},
				Usage:     "snapshot file to write",
				Value:     "tokentree.snap",
				TakesFile: true,
			},
			&cli.StringFlag{Name: "mode", Usage: "tokenizer: words, runes"},
			&cli.StringFlag{Name: "encoding", Usage: "input encoding: utf-8, latin1, windows-1252"},
			&cli.StringFlag{Name: "normalize", Usage: "unicode normalization: nfc, nfkc, none"},
			&cli.BoolFlag{Name: "lowercase", Usage: "fold the input to lower case"},
			&cli.IntFlag{Name: "max-len", Usage: "n-gram window, 0 inserts whole lines"},
			&cli.IntFlag{Name: "workers", Usage: "number of concurrent file readers"},
		},
		Action: a.build,
	}
}

func (a *app) build(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return errors.New("build: no input files")
	}

	cfg := a.cfg
	if cmd.IsSet("mode") {
		cfg.Corpus.Mode = cmd.String("mode")
	}
	if cmd.IsSet("encoding") {
		cfg.Corpus.Encoding = cmd.String("encoding")
	}
	if cmd.IsSet("normalize") {
		cfg.Corpus.Normalize = cmd.String("normalize")
	}
	if cmd.IsSet("lowercase") {
		cfg.Corpus.Lowercase = cmd.Bool("lowercase")
	}
	if cmd.IsSet("max-len") {
		cfg.Corpus.MaxLen = cmd.Int("max-len")
	}
	if cmd.IsSet("workers") {
		cfg.Workers = cmd.Int("workers")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	start := time.Now()

	snap, err := buildSnapshot(ctx, cfg, files, a.log)
	if err != nil {
		return err
	}

	out := cmd.String("output")
	if err := snap.Save(out); err != nil {
		return fmt.Errorf("build: %w", err)
	}

	a.log.Info("snapshot written",
		zap.String("file", out),
		zap.Int("files", len(files)),
		zap.Int("lines", snap.Header.Lines),
		zap.Int("count", snap.Tree.Count()),
		zap.Int("nodes", snap.Tree.Size()),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// item is a token sequence on its way to the tree writer.
type item struct {
	seq    []tokentree.Token
	source string
}

func corpusOptions(c config.CorpusConfig) corpus.Options {
	return corpus.Options{
		Mode:      corpus.Mode(c.Mode),
		Encoding:  c.Encoding,
		Normalize: c.Normalize,
		Lowercase: c.Lowercase,
		MaxLen:    c.MaxLen,
	}
}

// buildSnapshot reads the files concurrently, at most cfg.Workers at a time.
// The readers share the vocabulary, the tree has a single writer.
func buildSnapshot(ctx context.Context, cfg config.Config, files []string, log *zap.Logger) (*snapshot.Snapshot, error) {
	opts := corpusOptions(cfg.Corpus)
	vocab := corpus.NewVocabulary()
	tree := snapshot.NewTree()

	items := make(chan item, 1024)
	written := make(chan struct{})

	go func() {
		defer close(written)
		for it := range items {
			tree.Add(it.seq, it.source)
		}
	}()

	var (
		mu    sync.Mutex
		lines int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for _, path := range files {
		g.Go(func() error {
			r, err := corpus.NewReader(opts, vocab)
			if err != nil {
				return err
			}

			stats, err := r.ReadFile(gctx, path, func(seq []tokentree.Token) error {
				select {
				case items <- item{seq: seq, source: path}:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			log.Debug("file read",
				zap.String("file", path),
				zap.Int("lines", stats.Lines),
				zap.Int("tokens", stats.Tokens),
				zap.Int("sequences", stats.Sequences),
			)

			mu.Lock()
			lines += stats.Lines
			mu.Unlock()

			return nil
		})
	}

	err := g.Wait()
	close(items)
	<-written

	if err != nil {
		return nil, err
	}

	return &snapshot.Snapshot{
		Header: snapshot.Header{
			Options: opts,
			Sources: files,
			Lines:   lines,
			Created: time.Now().UTC(),
		},
		Vocab: vocab,
		Tree:  tree,
	}, nil
}
