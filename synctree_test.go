// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tokentree

import (
	"errors"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestSyncTreeConcurrent(t *testing.T) {
	t.Parallel()

	st := NewSyncTree(CountByArg[int])

	const writers = 8
	n := workLoadN()

	var g errgroup.Group
	for w := range writers {
		g.Go(func() error {
			for i := range n {
				seq := []Token{Token(i % 10), Token(w)}
				if err := st.AddN(seq, w, 1); err != nil {
					return err
				}
			}
			return nil
		})
	}

	// concurrent readers
	for range 4 {
		g.Go(func() error {
			for range n {
				_ = st.Count()
				_ = st.TokenCount(3)
				_ = st.PrefixCount([]Token{3})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	if got, want := st.Count(), writers*n; got != want {
		t.Errorf("Count, want %d, got %d", want, got)
	}

	st.Read(func(tree *Tree[map[int]int, int]) {
		if got := len(tree.Root().Extra()); got != writers {
			t.Errorf("root extra, want %d writers, got %d", writers, got)
		}
	})

	snap := st.Snapshot()
	st.Add([]Token{77}, 0)
	if _, ok := snap.Find([]Token{77}); ok {
		t.Error("Snapshot, want independent structure")
	}
	if st.PrefixCount([]Token{77}) != 1 || st.PrefixCount([]Token{78}) != 0 {
		t.Error("PrefixCount after Add")
	}
}

func TestSyncTreeInvalidCount(t *testing.T) {
	t.Parallel()

	st := NewSyncTree[struct{}, struct{}](nil)
	if err := st.AddN([]Token{1}, struct{}{}, 0); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("AddN(count=0), want ErrInvalidCount, got %v", err)
	}
	if st.Count() != 0 {
		t.Errorf("Count, want 0, got %d", st.Count())
	}
}
