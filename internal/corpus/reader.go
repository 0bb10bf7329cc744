// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package corpus

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gaissmai/tokentree"
)

// maxLineSize is the maximum accepted line length in bytes.
const maxLineSize = 10 * 1024 * 1024

// Stats are the numbers of a single read.
type Stats struct {
	Lines     int
	Sequences int
	Tokens    int
}

// Reader reads corpus files and emits token sequences.
type Reader struct {
	opts   Options
	decode func(io.Reader) io.Reader
	tk     *Tokenizer
}

// NewReader returns a reader for opts, sharing vocab with other readers.
// A Reader is not safe for concurrent use.
func NewReader(opts Options, vocab *Vocabulary) (*Reader, error) {
	decode, err := decoder(opts.Encoding)
	if err != nil {
		return nil, err
	}

	tk, err := NewTokenizer(opts, vocab)
	if err != nil {
		return nil, err
	}

	return &Reader{opts: opts, decode: decode, tk: tk}, nil
}

// ReadFile opens path and calls Read.
func (r *Reader) ReadFile(ctx context.Context, path string, emit func([]tokentree.Token) error) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, err
	}
	defer f.Close()

	return r.Read(ctx, f, emit)
}

// Read scans src line by line, tokenizes every line and calls emit for
// every n-gram window. Empty lines are skipped. The emitted slices
// share memory and must not be modified. Read stops at the first error of emit or when
// ctx is done.
func (r *Reader) Read(ctx context.Context, src io.Reader, emit func([]tokentree.Token) error) (Stats, error) {
	var stats Stats

	scanner := bufio.NewScanner(r.decode(src))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		stats.Lines++

		seq := r.tk.Tokens(scanner.Text())
		if len(seq) == 0 {
			continue
		}
		stats.Tokens += len(seq)

		err := Windows(seq, r.opts.MaxLen, func(win []tokentree.Token) error {
			stats.Sequences++
			return emit(win)
		})
		if err != nil {
			return stats, err
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scan line %d: %w", stats.Lines+1, err)
	}

	return stats, nil
}

// Tokenizer returns the tokenizer of the reader.
func (r *Reader) Tokenizer() *Tokenizer {
	return r.tk
}
