// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package golden is a simple and slow token tree, implemented as a slice
// of insertions, as golden reference in the tests of tokentree.
package golden

import (
	"fmt"
	"slices"
)

// Tree remembers every insertion, all answers are computed by brute force.
type Tree []Item

// Item is a single weighted insertion.
type Item struct {
	Seq   []int32
	Count int
}

func (i Item) String() string {
	return fmt.Sprintf("(%v, %d)", i.Seq, i.Count)
}

// Add remembers a copy of seq with weight count.
func (t *Tree) Add(seq []int32, count int) {
	*t = append(*t, Item{Seq: slices.Clone(seq), Count: count})
}

// Count returns the sum of all weights.
func (t Tree) Count() int {
	var sum int
	for _, item := range t {
		sum += item.Count
	}
	return sum
}

// TokenCount returns the weighted number of positions equal to tok.
func (t Tree) TokenCount(tok int32) int {
	var sum int
	for _, item := range t {
		for _, x := range item.Seq {
			if x == tok {
				sum += item.Count
			}
		}
	}
	return sum
}

// PrefixCount returns the sum of weights of all insertions with prefix p
// and whether any insertion has prefix p at all.
func (t Tree) PrefixCount(p []int32) (sum int, ok bool) {
	for _, item := range t {
		if HasPrefix(item.Seq, p) {
			sum += item.Count
			ok = true
		}
	}
	return sum, ok
}

// Distinct returns the number of insertions that added a previously
// unseen non-empty prefix, replayed in insertion order.
func (t Tree) Distinct() int {
	seen := map[string]bool{}
	distinct := 0

	for _, item := range t {
		created := false
		for i := 1; i <= len(item.Seq); i++ {
			key := fmt.Sprint(item.Seq[:i])
			if !seen[key] {
				seen[key] = true
				created = true
			}
		}
		if created {
			distinct++
		}
	}
	return distinct
}

// AllSorted returns all distinct non-empty prefixes of all insertions,
// in lexicographic token order, which is the pre-order of a trie
// with ascending siblings.
func (t Tree) AllSorted() [][]int32 {
	seen := map[string]bool{}
	var result [][]int32

	for _, item := range t {
		for i := 1; i <= len(item.Seq); i++ {
			key := fmt.Sprint(item.Seq[:i])
			if seen[key] {
				continue
			}
			seen[key] = true
			result = append(result, slices.Clone(item.Seq[:i]))
		}
	}

	slices.SortFunc(result, CmpSeq)
	return result
}

// HasPrefix reports whether seq starts with p.
func HasPrefix(seq, p []int32) bool {
	return len(p) <= len(seq) && slices.Equal(seq[:len(p)], p)
}

// CmpSeq, lexicographic compare, a prefix sorts before its extensions.
func CmpSeq(a, b []int32) int {
	return slices.Compare(a, b)
}

