// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package tokentree provides a memory-compact trie of integer token
// sequences, for corpus statistics like word n-gram or symbol counts.
//
// Every distinct prefix ever added has exactly one node. A node carries
// a pass-through count, the weighted number of insertions with this prefix,
// and a payload of type E, merged by a user supplied [MergeFunc] at every
// node on the insertion path, the root included.
//
// Most nodes of a token tree are leaves or have a single child. The kids
// of a node are therefore stored in one of three shapes: none, one inline
// child without any container, or a map for two and more children.
//
// The tree is append-only, there is no deletion. Iteration is in pre-order
// with ascending sibling tokens, independent of the Go map order.
//
// A Tree has a single writer. After the build phase all read methods are
// safe for concurrent use, [SyncTree] serializes concurrent writers.
package tokentree
