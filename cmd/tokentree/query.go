// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"github.com/gaissmai/tokentree"
	"github.com/gaissmai/tokentree/internal/corpus"
	"github.com/gaissmai/tokentree/internal/ranking"
	"github.com/gaissmai/tokentree/internal/snapshot"
)

func snapshotFlag() cli.Flag {
	return &cli.StringFlag{
		Name:      "snapshot",
		Aliases:   []string{"s"},
		Usage:     "snapshot file written by build",
		Value:     "tokentree.snap",
		TakesFile: true,
	}
}

// open loads the snapshot and its tokenizer.
func (a *app) open(cmd *cli.Command) (*snapshot.Snapshot, *corpus.Tokenizer, error) {
	snap, err := snapshot.Load(cmd.String("snapshot"))
	if err != nil {
		return nil, nil, err
	}

	tk, err := corpus.NewTokenizer(snap.Header.Options, snap.Vocab)
	if err != nil {
		return nil, nil, err
	}

	return snap, tk, nil
}

func (a *app) statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "prints the numbers of a snapshot",
		Flags: []cli.Flag{snapshotFlag(), formatFlag()},
		Action: func(_ context.Context, cmd *cli.Command) error {
			snap, _, err := a.open(cmd)
			if err != nil {
				return err
			}
			tree := snap.Tree
			hdr := snap.Header

			tw := newTable(a.stdout, table.Row{"Key", "Value"})
			tw.AppendRows([]table.Row{
				{"mode", hdr.Options.Mode},
				{"max len", hdr.Options.MaxLen},
				{"files", len(hdr.Sources)},
				{"lines", hdr.Lines},
				{"sequences", tree.Count()},
				{"distinct", tree.Distinct()},
				{"nodes", tree.Size()},
				{"tokens", tree.NumTokens()},
				{"created", hdr.Created.Format("2006-01-02 15:04:05")},
			})
			render(tw, cmd.String("format"))

			// per source sequences, from the root payload
			perSource := tree.Root().Extra()
			sw := newTable(a.stdout, table.Row{"Source", "Sequences"})
			alignNumbers(sw, 2)
			for _, src := range slices.Sorted(maps.Keys(perSource)) {
				sw.AppendRow(table.Row{src, perSource[src]})
			}
			render(sw, cmd.String("format"))

			return nil
		},
	}
}

func (a *app) topCommand() *cli.Command {
	return &cli.Command{
		Name:  "top",
		Usage: "prints the most frequent sequences",
		Flags: []cli.Flag{
			snapshotFlag(),
			formatFlag(),
			&cli.IntFlag{Name: "n", Usage: "number of sequences", Value: 10},
			&cli.IntFlag{Name: "min-len", Usage: "minimum sequence length"},
			&cli.IntFlag{Name: "max-len", Usage: "maximum sequence length"},
			&cli.StringFlag{Name: "prefix", Usage: "only sequences below this prefix"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			snap, tk, err := a.open(cmd)
			if err != nil {
				return err
			}

			var prefix []tokentree.Token
			if p := cmd.String("prefix"); p != "" {
				var ok bool
				if prefix, ok = tk.Parse(p); !ok {
					return fmt.Errorf("top: unknown prefix %q", p)
				}
			}

			filter := ranking.Filter{MinLen: cmd.Int("min-len"), MaxLen: cmd.Int("max-len")}
			entries := ranking.Top(snap.Tree.Subtree(prefix), cmd.Int("n"), filter)

			tw := newTable(a.stdout, table.Row{"#", "Sequence", "Count", "Share", "Sources"})
			alignNumbers(tw, 1, 3, 4, 5)

			total := snap.Tree.Count()
			for i, e := range entries {
				n, _ := snap.Tree.Find(e.Path)
				tw.AppendRow(table.Row{
					i + 1,
					tk.Format(e.Path),
					e.Count,
					fmt.Sprintf("%.2f%%", share(e.Count, total)),
					len(n.Extra()),
				})
			}
			render(tw, cmd.String("format"))

			return nil
		},
	}
}

func (a *app) findCommand() *cli.Command {
	return &cli.Command{
		Name:      "find",
		Usage:     "prints the counts of a sequence and its most frequent continuations",
		ArgsUsage: "QUERY",
		Flags: []cli.Flag{
			snapshotFlag(),
			formatFlag(),
			&cli.IntFlag{Name: "n", Usage: "number of continuations", Value: 5},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			query := strings.Join(cmd.Args().Slice(), " ")
			if query == "" {
				return errors.New("find: missing query")
			}

			snap, tk, err := a.open(cmd)
			if err != nil {
				return err
			}

			seq, ok := tk.Parse(query)
			if !ok {
				return fmt.Errorf("find: %q not found", query)
			}
			n, ok := snap.Tree.Find(seq)
			if !ok {
				return fmt.Errorf("find: %q not found", query)
			}

			tw := newTable(a.stdout, table.Row{"Source", "Count"})
			alignNumbers(tw, 2)
			for _, src := range slices.Sorted(maps.Keys(n.Extra())) {
				tw.AppendRow(table.Row{src, n.Extra()[src]})
			}
			tw.AppendFooter(table.Row{"total", n.Count()})
			render(tw, cmd.String("format"))

			// next tokens, ranked by count
			next := len(seq) + 1
			entries := ranking.Top(snap.Tree.Subtree(seq), cmd.Int("n"), ranking.Filter{MinLen: next, MaxLen: next})
			if len(entries) == 0 {
				return nil
			}

			cw := newTable(a.stdout, table.Row{"Continuation", "Count", "Share"})
			alignNumbers(cw, 2, 3)
			for _, e := range entries {
				cw.AppendRow(table.Row{
					tk.Format(e.Path),
					e.Count,
					fmt.Sprintf("%.2f%%", share(e.Count, n.Count())),
				})
			}
			render(cw, cmd.String("format"))

			return nil
		},
	}
}

func (a *app) dumpCommand() *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "prints the tree of a snapshot",
		Flags: []cli.Flag{
			snapshotFlag(),
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of the tree diagram"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			snap, tk, err := a.open(cmd)
			if err != nil {
				return err
			}

			if cmd.Bool("json") {
				data, err := snap.Tree.MarshalJSON()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(a.stdout, "%s\n", data)
				return err
			}

			return snap.Tree.FprintFunc(a.stdout, func(tok tokentree.Token) string {
				return tk.Format([]tokentree.Token{tok})
			})
		},
	}
}

func share(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}
