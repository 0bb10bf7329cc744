// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tokentree

// Counter is a tree without payloads, only counts.
// The zero value is ready to use.
type Counter = Tree[struct{}, struct{}]

// CountByArg is a ready-made MergeFunc, it sums the weights per
// distinct argument at every node, e.g. per source document:
//
//	tree := tokentree.New(tokentree.CountByArg[string])
//	tree.AddN(seq, "doc-1", 3)
//
// The map is allocated lazily on the first merge of a node.
func CountByArg[K comparable](_ []Token, _ int, old map[K]int, arg K, count int) map[K]int {
	if old == nil {
		return map[K]int{arg: count}
	}
	old[arg] += count
	return old
}
