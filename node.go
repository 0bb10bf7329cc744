// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tokentree

import (
	"cmp"
	"slices"
)

// Token is the label on a trie edge, e.g. a word id or a code point.
// It is an alias, so a []rune is a valid token sequence.
type Token = int32

// Node is a vertex in the token tree.
//
// A node knows its own token, the number of weighted insertions passing
// through it and the merged payload of type E. It has no path information
// about its predecessors, the path is collected during traversal.
//
// The children are stored in one of three shapes, see kids.
type Node[E any] struct {
	kids  kids[E]
	extra E
	count int
	token Token
	root  bool
}

// kids is the compact child storage of a node, a tagged union with
// three states:
//
//	null:   one == nil && many == nil
//	single: one != nil && many == nil, no container allocated
//	multi:  one == nil && many != nil
//
// The overwhelming majority of nodes in a token tree are leaves or
// have exactly one child. The map is only allocated when a second
// distinct token shows up; there is no transition back.
type kids[E any] struct {
	one  *Node[E]
	many map[Token]*Node[E]
}

// NewNode is the default node factory, it returns a plain node for tok
// with zero count and the zero value of E as payload.
func NewNode[E any](tok Token) *Node[E] {
	return &Node[E]{token: tok}
}

// newRoot returns the sentinel root node.
func newRoot[E any](creator func(Token) *Node[E]) *Node[E] {
	n := creator(0)
	n.root = true
	n.count = 0
	return n
}

// Token returns the token on the edge leading to this node.
// The root has no token, the returned value is meaningless for the root.
func (n *Node[E]) Token() Token {
	return n.token
}

// IsRoot reports whether n is the sentinel root node of a tree.
func (n *Node[E]) IsRoot() bool {
	return n.root
}

// Count returns the number of weighted insertions whose sequence
// has this node's prefix as a prefix.
func (n *Node[E]) Count() int {
	return n.count
}

// Extra returns the merged payload.
func (n *Node[E]) Extra() E {
	return n.extra
}

// SetExtra overwrites the merged payload.
func (n *Node[E]) SetExtra(extra E) {
	n.extra = extra
}

// HasChildren reports whether n has at least one child.
func (n *Node[E]) HasChildren() bool {
	return n.kids.one != nil || len(n.kids.many) != 0
}

// NumChildren returns the number of direct children.
func (n *Node[E]) NumChildren() int {
	if n.kids.one != nil {
		return 1
	}
	return len(n.kids.many)
}

// Step returns the child for tok, if any. Step never mutates.
func (n *Node[E]) Step(tok Token) (*Node[E], bool) {
	if one := n.kids.one; one != nil {
		if one.token == tok {
			return one, true
		}
		return nil, false
	}

	// a lookup in a nil map is fine
	kid, ok := n.kids.many[tok]
	return kid, ok
}

// InsertChild attaches kid to n. The caller guarantees that no child
// with kid's token exists yet, otherwise the behavior is undefined.
func (n *Node[E]) InsertChild(kid *Node[E]) {
	switch {
	case n.kids.many != nil:
		n.kids.many[kid.token] = kid
	case n.kids.one == nil:
		n.kids.one = kid
	default:
		// single -> multi, exactly once
		n.kids.many = map[Token]*Node[E]{
			n.kids.one.token: n.kids.one,
			kid.token:        kid,
		}
		n.kids.one = nil
	}
}

// Children returns an iterator over the direct children of n.
// The order is unspecified, use SortedChildren for ascending tokens.
func (n *Node[E]) Children() func(yield func(*Node[E]) bool) {
	return func(yield func(*Node[E]) bool) {
		if one := n.kids.one; one != nil {
			yield(one)
			return
		}
		for _, kid := range n.kids.many {
			if !yield(kid) {
				return
			}
		}
	}
}

// SortedChildren returns the direct children of n in ascending token order.
func (n *Node[E]) SortedChildren() []*Node[E] {
	if one := n.kids.one; one != nil {
		return []*Node[E]{one}
	}
	if len(n.kids.many) == 0 {
		return nil
	}

	sorted := make([]*Node[E], 0, len(n.kids.many))
	for _, kid := range n.kids.many {
		sorted = append(sorted, kid)
	}
	slices.SortFunc(sorted, cmpNode[E])

	return sorted
}

// cmpNode, compare func for sorting nodes by token.
func cmpNode[E any](a, b *Node[E]) int {
	return cmp.Compare(a.token, b.token)
}
