// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tokentree

import (
	"fmt"
	"io"
	"strings"
)

type nodeType byte

const (
	nullNode   nodeType = iota // no kids
	singleNode                 // one inline kid
	multiNode                  // kids in a map
)

func (nt nodeType) String() string {
	switch nt {
	case nullNode:
		return "NULL"
	case singleNode:
		return "SINGLE"
	case multiNode:
		return "MULTI"
	default:
		return "unreachable"
	}
}

// ##################################################
//  useful during development, debugging and testing
// ##################################################

// dumpString is just a wrapper for dump.
func (t *Tree[E, A]) dumpString() string {
	w := new(strings.Builder)
	t.dump(w)

	return w.String()
}

// dump the tree structure and all the nodes to w.
func (t *Tree[E, A]) dump(w io.Writer) {
	if t == nil {
		return
	}
	t.init()

	s := t.root.nodeStatsRec()
	fmt.Fprintf(w, "### count(%d), distinct(%d), size(%d), tokens(%d)\n",
		t.root.count, t.distinct, t.size, len(t.tokenCounts))
	fmt.Fprintf(w, "### null(%d), single(%d), multi(%d)\n", s.null, s.single, s.multi)

	t.root.dumpRec(w, nil)
}

// dumpRec, rec-descent the trie in token order.
func (n *Node[E]) dumpRec(w io.Writer, path []Token) {
	n.dump(w, path)

	for _, kid := range n.SortedChildren() {
		kid.dumpRec(w, append(path, kid.token))
	}
}

// dump the node to w.
func (n *Node[E]) dump(w io.Writer, path []Token) {
	indent := strings.Repeat(".", len(path))

	fmt.Fprintf(w, "%s[%s] depth: %d path: %v count: %d", indent, n.hasType(), len(path), path, n.count)

	if nKids := n.NumChildren(); nKids != 0 {
		fmt.Fprintf(w, " kids(#%d):", nKids)
		for _, kid := range n.SortedChildren() {
			fmt.Fprintf(w, " %d", kid.token)
		}
	}

	fmt.Fprintln(w)
}

// hasType returns the storage shape of the kids.
func (n *Node[E]) hasType() nodeType {
	switch {
	case n.kids.one != nil && n.kids.many != nil:
		panic("logic error, single and multi kids at the same time")
	case n.kids.one != nil:
		return singleNode
	case n.kids.many != nil:
		return multiNode
	default:
		return nullNode
	}
}

// nodeStats, number of nodes per storage shape, the root included.
type nodeStats struct {
	null   int
	single int
	multi  int
}

// nodeStatsRec, calculate the storage shape statistics rec-descent.
func (n *Node[E]) nodeStatsRec() nodeStats {
	var s nodeStats

	switch n.hasType() {
	case nullNode:
		s.null++
	case singleNode:
		s.single++
	case multiNode:
		s.multi++
	}

	for kid := range n.Children() {
		ks := kid.nodeStatsRec()
		s.null += ks.null
		s.single += ks.single
		s.multi += ks.multi
	}

	return s
}
