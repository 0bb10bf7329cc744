// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package snapshot persists a built token tree together with the
// vocabulary and the corpus options needed to query it.
//
// A snapshot file is a gzip compressed gob stream of a single file
// record, the tree is embedded in its own binary format.
package snapshot

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gaissmai/tokentree"
	"github.com/gaissmai/tokentree/internal/corpus"
)

const magic = "tokentree-snapshot"

// ErrFormat is returned for files that are not snapshots.
var ErrFormat = errors.New("not a tokentree snapshot")

// Tree is the tree of the command: every node counts the weighted
// insertions per source label.
type Tree = tokentree.Tree[map[string]int, string]

// NewTree returns an empty tree with per source counting.
func NewTree() *Tree {
	return tokentree.New(tokentree.CountByArg[string], tokentree.WithSlab[map[string]int](0))
}

// Header describes how the tree was built.
type Header struct {
	Options corpus.Options
	Sources []string
	Lines   int
	Created time.Time
}

// Snapshot is a built tree with its vocabulary.
type Snapshot struct {
	Header Header
	Vocab  *corpus.Vocabulary
	Tree   *Tree
}

// file is the gob record.
type file struct {
	Magic  string
	Header Header
	Words  []string
	Tree   []byte
}

// Write writes s gzip compressed to w.
func (s *Snapshot) Write(w io.Writer) error {
	treeBytes, err := s.Tree.MarshalBinary()
	if err != nil {
		return err
	}

	var words []string
	if s.Vocab != nil {
		words = s.Vocab.Words()
	}

	zw := gzip.NewWriter(w)
	if err := gob.NewEncoder(zw).Encode(file{
		Magic:  magic,
		Header: s.Header,
		Words:  words,
		Tree:   treeBytes,
	}); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	return zw.Close()
}

// Read reads a snapshot written by Write.
func Read(r io.Reader) (*Snapshot, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	defer zr.Close()

	var f file
	if err := gob.NewDecoder(zr).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if f.Magic != magic {
		return nil, ErrFormat
	}

	tree := NewTree()
	if err := tree.UnmarshalBinary(f.Tree); err != nil {
		return nil, err
	}

	return &Snapshot{
		Header: f.Header,
		Vocab:  corpus.NewVocabulary(f.Words...),
		Tree:   tree,
	}, nil
}

// Save writes s to path, the file is replaced atomically.
func (s *Snapshot) Save(path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = s.Write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// Load reads the snapshot at path.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
