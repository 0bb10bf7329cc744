// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tokentree

import (
	"github.com/gaissmai/tokentree/internal/value"
)

// Equaler is a generic interface for types that can decide their own
// equality logic. It can be used to override the potentially expensive
// default comparison with [reflect.DeepEqual].
type Equaler[E any] = value.Equaler[E]

// Equal reports whether t and o have the same structure, the same counts,
// token counts and distinct counter and equal payloads at every node.
// Payloads are compared with Equaler[E] if implemented, otherwise with
// [reflect.DeepEqual]. The merge functions and node factories are ignored.
func (t *Tree[E, A]) Equal(o *Tree[E, A]) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t == o {
		return true
	}

	t.init()
	o.init()

	if t.distinct != o.distinct || t.size != o.size {
		return false
	}

	if len(t.tokenCounts) != len(o.tokenCounts) {
		return false
	}
	for tok, cnt := range t.tokenCounts {
		if o.tokenCounts[tok] != cnt {
			return false
		}
	}

	return equalRec(t.root, o.root)
}

// equalRec compares two nodes recursively, the storage shape of
// the kids is irrelevant, only the tokens count.
func equalRec[E any](n, o *Node[E]) bool {
	if n == o {
		return true
	}

	if n.token != o.token || n.count != o.count || n.root != o.root {
		return false
	}

	if n.NumChildren() != o.NumChildren() {
		return false
	}

	if !value.Equal(n.extra, o.extra) {
		return false
	}

	for nKid := range n.Children() {
		oKid, ok := o.Step(nKid.token)
		if !ok {
			return false
		}

		// compare rec-descent
		if !equalRec(nKid, oKid) {
			return false
		}
	}

	return true
}
