// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tokentree

import (
	"math/rand/v2"
	"testing"

	"github.com/gaissmai/tokentree/internal/golden"
)

// this file contains helpers for other test functions

// workLoadN to adjust loops for tests with -short
func workLoadN() int {
	if testing.Short() {
		return 100
	}
	return 1_000
}

// sampleTree, the reference scenario:
//
//	(1,2,4) x1, (3,2,1) x4, (1,3,4) x1, (3,2) x1
func sampleTree() *Counter {
	t := new(Counter)
	t.Add([]Token{1, 2, 4}, struct{}{})
	for range 4 {
		t.Add([]Token{3, 2, 1}, struct{}{})
	}
	t.Add([]Token{1, 3, 4}, struct{}{})
	t.Add([]Token{3, 2}, struct{}{})
	return t
}

// randomSeq returns a sequence of length [0..maxLen] with tokens
// in [0..alphabet), small alphabets give many shared prefixes.
func randomSeq(prng *rand.Rand, maxLen, alphabet int) []Token {
	seq := make([]Token, prng.IntN(maxLen+1))
	for i := range seq {
		seq[i] = Token(prng.IntN(alphabet))
	}
	return seq
}

// randomItems returns n random weighted insertions.
func randomItems(prng *rand.Rand, n int) []golden.Item {
	items := make([]golden.Item, 0, n)
	for range n {
		items = append(items, golden.Item{
			Seq:   randomSeq(prng, 8, 10),
			Count: 1 + prng.IntN(5),
		})
	}
	return items
}

// buildBoth inserts the items into a Counter and into the golden tree.
func buildBoth(t *testing.T, items []golden.Item) (*Counter, golden.Tree) {
	t.Helper()

	tree := new(Counter)
	var gold golden.Tree

	for _, item := range items {
		if _, err := tree.Insert(item.Seq, item.Count); err != nil {
			t.Fatalf("Insert(%v, %d): %v", item.Seq, item.Count, err)
		}
		gold.Add(item.Seq, item.Count)
	}
	return tree, gold
}

// collect the paths of an iterator.
func collectPaths[E any](seq func(yield func([]Token, *Node[E]) bool)) [][]Token {
	var paths [][]Token
	for path := range seq {
		paths = append(paths, path)
	}
	return paths
}
