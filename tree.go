// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tokentree

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidCount is returned if an insertion weight is zero or negative.
var ErrInvalidCount = errors.New("tokentree: count must be positive")

// MergeFunc combines the current payload old of a node with the argument
// arg of an Add call. It is called for every node on the insertion path,
// from the root (depth 0) down to the terminal node (depth len(seq)),
// count is the weight of the call.
//
// The returned value replaces the payload of the node. MergeFunc may
// mutate and return old, e.g. a map.
type MergeFunc[E, A any] func(seq []Token, depth int, old E, arg A, count int) E

// Option configures a Tree.
type Option[E any] func(*options[E])

type options[E any] struct {
	creator  func(Token) *Node[E]
	slabSize int
}

// WithCreator sets the node factory. The factory is called exactly once
// for every new node, with the token on the edge to that node.
// The tree sets the count of the returned node.
func WithCreator[E any](creator func(Token) *Node[E]) Option[E] {
	return func(o *options[E]) {
		if creator != nil {
			o.creator = creator
			o.slabSize = 0
		}
	}
}

// WithSlab allocates nodes in chunks of size n, reducing the number
// of heap allocations for large trees. Nodes are never freed
// individually, a chunk lives as long as any of its nodes.
// A clone of the tree gets its own slab.
func WithSlab[E any](n int) Option[E] {
	return func(o *options[E]) {
		if n <= 0 {
			n = defaultSlabSize
		}
		o.creator = nil
		o.slabSize = n
	}
}

// Tree is a trie of token sequences with pass-through counts and
// merged payloads of type E at every node. A is the type of the
// argument passed to Add and handed to the merge function.
//
// The zero value is ready to use, with a no-op merge function.
//
// A Tree is not safe for concurrent modification. After the build phase
// all read methods are safe for concurrent use, see also SyncTree.
type Tree[E, A any] struct {
	root        *Node[E]
	tokenCounts map[Token]int
	distinct    int
	size        int

	merge    MergeFunc[E, A]
	creator  func(Token) *Node[E]
	slabSize int

	// simple API, no constructor needed
	initOnce sync.Once
}

// New returns a tree with the merge function and options.
// A nil merge function leaves all payloads at the zero value of E.
func New[E, A any](merge MergeFunc[E, A], opts ...Option[E]) *Tree[E, A] {
	o := options[E]{}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Tree[E, A]{
		merge:    merge,
		creator:  o.creator,
		slabSize: o.slabSize,
	}
	if o.slabSize > 0 {
		t.creator = newSlab[E](o.slabSize).get
	}
	t.init()

	return t
}

// init once, so no constructor is needed.
func (t *Tree[E, A]) init() {
	t.initOnce.Do(func() {
		if t.creator == nil {
			t.creator = NewNode[E]
		}
		if t.root == nil {
			t.root = newRoot(t.creator)
		}
		if t.tokenCounts == nil {
			t.tokenCounts = make(map[Token]int)
		}
	})
}

// Add inserts seq with weight 1, see AddN.
func (t *Tree[E, A]) Add(seq []Token, arg A) *Node[E] {
	return t.add(seq, arg, 1, true)
}

// AddN inserts seq with weight count and returns the terminal node,
// the root for an empty seq.
//
// Every node on the path, including the root, gets its count incremented
// by count and its payload merged with arg. Missing nodes are created.
// Each token position in seq adds count to the token counts.
//
// A count <= 0 returns ErrInvalidCount and the tree is not modified.
func (t *Tree[E, A]) AddN(seq []Token, arg A, count int) (*Node[E], error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidCount, count)
	}
	return t.add(seq, arg, count, true), nil
}

// Insert is the counting-only fast path of AddN, the merge function
// is not called and the payloads are left untouched.
func (t *Tree[E, A]) Insert(seq []Token, count int) (*Node[E], error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidCount, count)
	}
	var zero A
	return t.add(seq, zero, count, false), nil
}

func (t *Tree[E, A]) add(seq []Token, arg A, count int, withMerge bool) *Node[E] {
	t.init()

	merge := t.merge
	if !withMerge {
		merge = nil
	}

	n := t.root
	n.count += count
	if merge != nil {
		n.extra = merge(seq, 0, n.extra, arg, count)
	}

	created := false
	for i, tok := range seq {
		t.tokenCounts[tok] += count

		kid, ok := n.Step(tok)
		if !ok {
			kid = t.creator(tok)
			kid.token = tok
			kid.count = count
			n.InsertChild(kid)

			t.size++
			created = true
		} else {
			kid.count += count
		}

		// go down
		n = kid
		if merge != nil {
			n.extra = merge(seq, i+1, n.extra, arg, count)
		}
	}

	if created {
		t.distinct++
	}

	return n
}

// Find returns the node for the exact prefix seq, the root for an
// empty seq. Find never creates nodes.
func (t *Tree[E, A]) Find(seq []Token) (*Node[E], bool) {
	t.init()

	n := t.root
	for _, tok := range seq {
		kid, ok := n.Step(tok)
		if !ok {
			return nil, false
		}
		n = kid
	}
	return n, true
}

// Root returns the root node of the tree.
func (t *Tree[E, A]) Root() *Node[E] {
	t.init()
	return t.root
}

// Count returns the sum of the weights of all insertions,
// including insertions of the empty sequence.
func (t *Tree[E, A]) Count() int {
	t.init()
	return t.root.count
}

// TokenCount returns the weighted number of occurrences of tok
// at any position of any inserted sequence, 0 if never seen.
func (t *Tree[E, A]) TokenCount(tok Token) int {
	t.init()
	return t.tokenCounts[tok]
}

// NumTokens returns the number of distinct token values seen.
func (t *Tree[E, A]) NumTokens() int {
	t.init()
	return len(t.tokenCounts)
}

// Distinct returns the number of insertions that created at least one new node.
func (t *Tree[E, A]) Distinct() int {
	t.init()
	return t.distinct
}

// Size returns the number of nodes in the tree, the root excluded.
func (t *Tree[E, A]) Size() int {
	t.init()
	return t.size
}
