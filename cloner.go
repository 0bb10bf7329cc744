// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tokentree

import (
	"maps"

	"github.com/gaissmai/tokentree/internal/value"
)

// Cloner is an interface that enables deep cloning of payloads of type E.
// If a payload implements Cloner[E], [Tree.Clone] uses its Clone method
// to perform deep copies, otherwise the payload is copied by assignment.
type Cloner[E any] = value.Cloner[E]

// Clone returns a deep copy of the tree, with the same merge function
// and node factory. The new nodes are created by the node factory,
// a tree created WithSlab gets a new slab.
func (t *Tree[E, A]) Clone() *Tree[E, A] {
	if t == nil {
		return nil
	}
	t.init()

	cloneFn := value.CloneFnFactory[E]()
	if cloneFn == nil {
		cloneFn = value.CopyVal[E]
	}

	c := &Tree[E, A]{
		merge:       t.merge,
		creator:     t.creator,
		slabSize:    t.slabSize,
		tokenCounts: maps.Clone(t.tokenCounts),
		distinct:    t.distinct,
		size:        t.size,
	}
	if c.slabSize > 0 {
		c.creator = newSlab[E](c.slabSize).get
	}
	c.root = newRoot(c.creator)
	c.init()

	c.root.count = t.root.count
	c.root.extra = cloneFn(t.root.extra)

	// explicit stack of (source, copy) pairs, no recursion
	type pair struct{ src, dst *Node[E] }

	stack := []pair{{t.root, c.root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for kid := range p.src.Children() {
			dup := c.creator(kid.token)
			dup.token = kid.token
			dup.count = kid.count
			dup.extra = cloneFn(kid.extra)

			p.dst.InsertChild(dup)
			stack = append(stack, pair{kid, dup})
		}
	}

	return c
}
