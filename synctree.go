// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tokentree

import (
	"sync"
)

// SyncTree wraps a Tree for concurrent use, writers are serialized,
// readers share the lock.
//
// Nodes returned by Add and Find are shared with the tree, their count
// and payload may change under a concurrent writer. Copy what you need
// inside Read.
type SyncTree[E, A any] struct {
	mu   sync.RWMutex
	tree *Tree[E, A]
}

// NewSyncTree returns a SyncTree around a new tree, see New.
func NewSyncTree[E, A any](merge MergeFunc[E, A], opts ...Option[E]) *SyncTree[E, A] {
	return &SyncTree[E, A]{tree: New(merge, opts...)}
}

// AddN inserts seq under the write lock, see Tree.AddN.
func (st *SyncTree[E, A]) AddN(seq []Token, arg A, count int) error {
	st.mu.Lock() // acquire writer lock to exclude other writers and readers
	defer st.mu.Unlock()

	_, err := st.tree.AddN(seq, arg, count)
	return err
}

// Add inserts seq with weight 1 under the write lock.
func (st *SyncTree[E, A]) Add(seq []Token, arg A) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.tree.Add(seq, arg)
}

// Count returns the total weight of all insertions.
func (st *SyncTree[E, A]) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return st.tree.Count()
}

// TokenCount returns the weighted number of occurrences of tok.
func (st *SyncTree[E, A]) TokenCount(tok Token) int {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return st.tree.TokenCount(tok)
}

// PrefixCount returns the count of the node for seq, 0 if seq is unknown.
func (st *SyncTree[E, A]) PrefixCount(seq []Token) int {
	st.mu.RLock()
	defer st.mu.RUnlock()

	n, ok := st.tree.Find(seq)
	if !ok {
		return 0
	}
	return n.count
}

// Read calls fn with the wrapped tree under the read lock.
// fn must not modify the tree or retain it.
func (st *SyncTree[E, A]) Read(fn func(*Tree[E, A])) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	fn(st.tree)
}

// Snapshot returns a deep copy of the wrapped tree, taken under the
// read lock. The copy is owned by the caller.
func (st *SyncTree[E, A]) Snapshot() *Tree[E, A] {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return st.tree.Clone()
}
