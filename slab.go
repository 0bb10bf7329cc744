// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tokentree

// defaultSlabSize is used for non-positive chunk sizes.
const defaultSlabSize = 1024

// slab is a chunked allocator for *Node[E] instances.
//
// The tree is append-only, nodes are never returned, so a slab is
// simpler than a sync.Pool: it hands out consecutive elements of a
// preallocated chunk and allocates the next chunk when exhausted.
//
// Not safe for concurrent use, the tree has a single writer anyway.
type slab[E any] struct {
	chunk []Node[E]
	size  int

	// statistics, useful during development and testing
	chunks int
	nodes  int
}

// newSlab creates and returns a new slab with chunks of n nodes.
func newSlab[E any](n int) *slab[E] {
	if n <= 0 {
		n = defaultSlabSize
	}
	return &slab[E]{size: n}
}

// get returns a fresh node for tok from the current chunk.
// The signature matches the node factory of the tree.
func (s *slab[E]) get(tok Token) *Node[E] {
	if len(s.chunk) == 0 {
		s.chunk = make([]Node[E], s.size)
		s.chunks++
	}

	n := &s.chunk[0]
	s.chunk = s.chunk[1:]
	s.nodes++

	n.token = tok
	return n
}

// stats returns the number of allocated chunks and handed out nodes.
func (s *slab[E]) stats() (chunks, nodes int) {
	if s == nil {
		return 0, 0
	}
	return s.chunks, s.nodes
}
