// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tokentree

import (
	"cmp"
	"slices"
)

// trieItem, a node has no path information about its predecessors,
// we collect this during the descent.
type trieItem[E any] struct {
	path []Token
	n    *Node[E]
}

// All returns an iterator over all (path, node) pairs of the tree,
// the root excluded.
//
// The iteration is in pre-order, a node is yielded before its descendants,
// siblings are visited in ascending token order. The order only depends on
// the insertion history, not on the iteration order of a Go map.
//
// If the tree has no node besides the root, but at least one empty
// sequence was inserted, the iterator yields exactly one pair,
// the empty path and the root.
//
// Every yielded path is a fresh slice, owned by the caller.
// The tree must not be modified during the iteration.
func (t *Tree[E, A]) All() func(yield func([]Token, *Node[E]) bool) {
	return func(yield func([]Token, *Node[E]) bool) {
		t.init()

		if !t.root.HasChildren() {
			if t.root.count > 0 {
				yield([]Token{}, t.root)
			}
			return
		}

		preorder(t.root, nil, yield)
	}
}

// Subtree returns an iterator over all (path, node) pairs strictly below
// prefix, in the same order as All. The paths are full paths from the root.
// If prefix is not in the tree, the iterator yields nothing.
func (t *Tree[E, A]) Subtree(prefix []Token) func(yield func([]Token, *Node[E]) bool) {
	return func(yield func([]Token, *Node[E]) bool) {
		n, ok := t.Find(prefix)
		if !ok {
			return
		}

		preorder(n, slices.Clone(prefix), yield)
	}
}

// preorder, iterative depth-first traversal with an explicit stack.
// The kids are pushed in descending token order, so the LIFO pop
// yields them in ascending order.
func preorder[E any](start *Node[E], base []Token, yield func([]Token, *Node[E]) bool) {
	stack := pushKids(nil, start, base)

	for len(stack) > 0 {
		// pop
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !yield(item.path, item.n) {
			return
		}

		stack = pushKids(stack, item.n, item.path)
	}
}

// pushKids pushes the children of n in descending token order.
// Each child path is a new slice with exact capacity, so no two
// stack items share a backing array.
func pushKids[E any](stack []trieItem[E], n *Node[E], path []Token) []trieItem[E] {
	sorted := n.SortedChildren()

	for i := len(sorted) - 1; i >= 0; i-- {
		kid := sorted[i]

		kidPath := make([]Token, len(path)+1)
		copy(kidPath, path)
		kidPath[len(path)] = kid.token

		stack = append(stack, trieItem[E]{path: kidPath, n: kid})
	}

	return stack
}

// TokenCounts returns an iterator over all seen tokens and their
// weighted counts, in ascending token order.
func (t *Tree[E, A]) TokenCounts() func(yield func(Token, int) bool) {
	return func(yield func(Token, int) bool) {
		t.init()

		toks := make([]Token, 0, len(t.tokenCounts))
		for tok := range t.tokenCounts {
			toks = append(toks, tok)
		}
		slices.SortFunc(toks, cmp.Compare[Token])

		for _, tok := range toks {
			if !yield(tok, t.tokenCounts[tok]) {
				return
			}
		}
	}
}
