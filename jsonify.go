// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tokentree

import (
	"encoding/json"
)

// DumpListNode contains Token, Count, Extra and Kids, representing the trie
// in a sorted, recursive representation, especially useful for serialization.
type DumpListNode[E any] struct {
	Token Token             `json:"token"`
	Count int               `json:"count"`
	Extra E                 `json:"extra"`
	Kids  []DumpListNode[E] `json:"kids,omitempty"`
}

// MarshalJSON dumps the tree as JSON object with the total count,
// the number of distinct insertions and the ordered list of root kids.
// Every list is an array, not a map, because the order matters.
func (t *Tree[E, A]) MarshalJSON() ([]byte, error) {
	t.init()

	result := struct {
		Count    int               `json:"count"`
		Distinct int               `json:"distinct"`
		Extra    E                 `json:"extra"`
		Kids     []DumpListNode[E] `json:"kids,omitempty"`
	}{
		Count:    t.root.count,
		Distinct: t.distinct,
		Extra:    t.root.extra,
		Kids:     t.DumpList(),
	}

	return json.Marshal(result)
}

// DumpList dumps the tree below the root into a list of kids
// and their kids, in ascending token order.
func (t *Tree[E, A]) DumpList() []DumpListNode[E] {
	t.init()
	return dumpListRec(t.root)
}

// dumpListRec, build the data structure rec-descent.
func dumpListRec[E any](n *Node[E]) []DumpListNode[E] {
	sorted := n.SortedChildren()
	if len(sorted) == 0 {
		return nil
	}

	nodes := make([]DumpListNode[E], 0, len(sorted))
	for _, kid := range sorted {
		nodes = append(nodes, DumpListNode[E]{
			Token: kid.token,
			Count: kid.count,
			Extra: kid.extra,
			// build it rec-descent
			Kids: dumpListRec(kid),
		})
	}

	return nodes
}
