// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package corpus reads text files and turns their lines into
// token sequences for the token tree.
package corpus

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/gaissmai/tokentree"
)

// Mode selects the tokenizer.
type Mode string

const (
	// Words splits lines at white space, tokens are vocabulary ids.
	Words Mode = "words"
	// Runes uses every code point as token.
	Runes Mode = "runes"
)

// Options control decoding and tokenizing.
type Options struct {
	Mode      Mode
	Encoding  string // utf-8, latin1, windows-1252
	Normalize string // nfc, nfkc, none
	Lowercase bool
	MaxLen    int // n-gram window, 0 for whole lines
}

// decoder returns a reader decoding enc to UTF-8.
func decoder(enc string) (func(io.Reader) io.Reader, error) {
	switch strings.ToLower(enc) {
	case "", "utf-8", "utf8":
		return func(r io.Reader) io.Reader { return r }, nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder().Reader, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
}

// normalizer returns the transformer for the normalization form
// and the case folding, nil if the text is used as is.
func normalizer(form string, lower bool) (transform.Transformer, error) {
	var ts []transform.Transformer

	switch strings.ToLower(form) {
	case "", "none":
	case "nfc":
		ts = append(ts, norm.NFC)
	case "nfkc":
		ts = append(ts, norm.NFKC)
	default:
		return nil, fmt.Errorf("unsupported normalization %q", form)
	}

	if lower {
		ts = append(ts, cases.Lower(language.Und))
	}

	if len(ts) == 0 {
		return nil, nil
	}
	return transform.Chain(ts...), nil
}

// Tokenizer turns a line of text into a token sequence.
//
// A Tokenizer is not safe for concurrent use, the case folding is
// stateful. Use one tokenizer per goroutine, they may share the vocabulary.
type Tokenizer struct {
	mode  Mode
	vocab *Vocabulary
	norm  transform.Transformer
}

// NewTokenizer returns a tokenizer for opts. The vocabulary is only
// used in Words mode and must not be nil there.
func NewTokenizer(opts Options, vocab *Vocabulary) (*Tokenizer, error) {
	if opts.Mode != Words && opts.Mode != Runes {
		return nil, fmt.Errorf("unsupported mode %q", opts.Mode)
	}
	if opts.Mode == Words && vocab == nil {
		return nil, fmt.Errorf("mode %q needs a vocabulary", opts.Mode)
	}

	t, err := normalizer(opts.Normalize, opts.Lowercase)
	if err != nil {
		return nil, err
	}

	return &Tokenizer{mode: opts.Mode, vocab: vocab, norm: t}, nil
}

// Normalize applies the normalization form and case folding to s.
func (tk *Tokenizer) Normalize(s string) string {
	if tk.norm == nil {
		return s
	}
	out, _, err := transform.String(tk.norm, s)
	if err != nil {
		return s
	}
	return out
}

// Tokens returns the token sequence for line.
func (tk *Tokenizer) Tokens(line string) []tokentree.Token {
	line = tk.Normalize(line)

	if tk.mode == Runes {
		return []tokentree.Token(strings.TrimRightFunc(line, unicode.IsSpace))
	}

	fields := strings.Fields(line)
	seq := make([]tokentree.Token, 0, len(fields))
	for _, w := range fields {
		seq = append(seq, tk.vocab.Add(w))
	}
	return seq
}

// Format returns the human readable form of seq.
func (tk *Tokenizer) Format(seq []tokentree.Token) string {
	if tk.mode == Runes {
		return string([]rune(seq))
	}
	return tk.vocab.Format(seq)
}

// Parse is the inverse of Format for a query string, it reports false
// if a word is not in the vocabulary. Parse never adds words.
func (tk *Tokenizer) Parse(query string) ([]tokentree.Token, bool) {
	query = tk.Normalize(query)

	if tk.mode == Runes {
		return []tokentree.Token(query), true
	}
	return tk.vocab.Lookup(strings.Fields(query))
}

// Windows calls fn for every window of at most maxLen tokens,
// starting at every position of seq. The windows share the backing
// array of seq. A maxLen <= 0 calls fn once with seq.
func Windows(seq []tokentree.Token, maxLen int, fn func([]tokentree.Token) error) error {
	if maxLen <= 0 {
		return fn(seq)
	}

	for i := range seq {
		end := min(i+maxLen, len(seq))
		if err := fn(seq[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func itoa(id tokentree.Token) string {
	return strconv.FormatInt(int64(id), 10)
}
