// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package ranking selects the most frequent prefixes of a token tree.
package ranking

import (
	"iter"
	"slices"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/emirpasic/gods/utils"

	"github.com/gaissmai/tokentree"
)

// Entry is a ranked prefix.
type Entry struct {
	Path  []tokentree.Token
	Count int
}

// Filter restricts the ranked prefixes by length, 0 means no limit.
type Filter struct {
	MinLen int
	MaxLen int
}

func (f Filter) accept(path []tokentree.Token) bool {
	if f.MinLen > 0 && len(path) < f.MinLen {
		return false
	}
	if f.MaxLen > 0 && len(path) > f.MaxLen {
		return false
	}
	return true
}

// worseFirst orders the heap with the weakest entry on top:
// lower count first, for equal counts the greater path.
var worseFirst utils.Comparator = func(a, b any) int {
	x, y := a.(Entry), b.(Entry)
	if x.Count != y.Count {
		if x.Count < y.Count {
			return -1
		}
		return 1
	}
	return -slices.Compare(x.Path, y.Path)
}

// Top returns the n prefixes with the highest counts of all pairs,
// sorted by count descending, ties by ascending path.
// A n <= 0 returns nil. The paths are retained, the iterators of
// the tree yield fresh slices.
func Top[E any](all iter.Seq2[[]tokentree.Token, *tokentree.Node[E]], n int, f Filter) []Entry {
	if n <= 0 {
		return nil
	}

	heap := binaryheap.NewWith(worseFirst)

	for path, node := range all {
		if !f.accept(path) {
			continue
		}

		e := Entry{Path: path, Count: node.Count()}
		if heap.Size() < n {
			heap.Push(e)
			continue
		}

		// replace the weakest if e is better
		weakest, _ := heap.Peek()
		if worseFirst(e, weakest) > 0 {
			heap.Pop()
			heap.Push(e)
		}
	}

	out := make([]Entry, heap.Size())
	for i := len(out) - 1; i >= 0; i-- {
		v, _ := heap.Pop()
		out[i] = v.(Entry)
	}
	return out
}
