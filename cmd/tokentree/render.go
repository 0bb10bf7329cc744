// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/urfave/cli/v3"
)

var formats = []string{"text", "markdown", "csv"}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Usage: fmt.Sprintf("table format: %v", formats),
		Value: formats[0],
		Validator: func(s string) error {
			if slices.Contains(formats, s) {
				return nil
			}
			return fmt.Errorf("unsupported format %q, want one of %v", s, formats)
		},
	}
}

// newTable returns a table writer mirrored to w.
func newTable(w io.Writer, header table.Row) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(header)
	return tw
}

// alignNumbers right aligns the numeric columns, numbered from 1.
func alignNumbers(tw table.Writer, cols ...int) {
	configs := make([]table.ColumnConfig, 0, len(cols))
	for _, c := range cols {
		configs = append(configs, table.ColumnConfig{Number: c, Align: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)
}

func render(tw table.Writer, format string) {
	switch format {
	case "markdown":
		tw.RenderMarkdown()
	case "csv":
		tw.RenderCSV()
	default:
		tw.Render()
	}
}
