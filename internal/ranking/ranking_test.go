// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaissmai/tokentree"
)

func sample(t *testing.T) *tokentree.Counter {
	t.Helper()

	tree := new(tokentree.Counter)
	for _, it := range []struct {
		seq   []tokentree.Token
		count int
	}{
		{[]tokentree.Token{1, 2, 4}, 1},
		{[]tokentree.Token{1, 3, 4}, 1},
		{[]tokentree.Token{3, 2, 1}, 4},
		{[]tokentree.Token{3, 2}, 1},
	} {
		_, err := tree.Insert(it.seq, it.count)
		require.NoError(t, err)
	}
	return tree
}

func TestTop(t *testing.T) {
	tree := sample(t)

	got := Top(tree.All(), 3, Filter{})
	want := []Entry{
		{Path: []tokentree.Token{3}, Count: 5},
		{Path: []tokentree.Token{3, 2}, Count: 5},
		{Path: []tokentree.Token{3, 2, 1}, Count: 4},
	}
	assert.Equal(t, want, got)
}

func TestTopTies(t *testing.T) {
	tree := sample(t)

	// all count 1 prefixes below 1, ties by ascending path
	got := Top(tree.Subtree([]tokentree.Token{1}), 10, Filter{MinLen: 2})
	want := []Entry{
		{Path: []tokentree.Token{1, 2}, Count: 1},
		{Path: []tokentree.Token{1, 2, 4}, Count: 1},
		{Path: []tokentree.Token{1, 3}, Count: 1},
		{Path: []tokentree.Token{1, 3, 4}, Count: 1},
	}
	assert.Equal(t, want, got)
}

func TestTopFilter(t *testing.T) {
	tree := sample(t)

	got := Top(tree.All(), 2, Filter{MaxLen: 1})
	want := []Entry{
		{Path: []tokentree.Token{3}, Count: 5},
		{Path: []tokentree.Token{1}, Count: 2},
	}
	assert.Equal(t, want, got)
}

func TestTopEmpty(t *testing.T) {
	tree := sample(t)

	assert.Nil(t, Top(tree.All(), 0, Filter{}))
	assert.Empty(t, Top(new(tokentree.Counter).All(), 5, Filter{}))
	assert.Empty(t, Top(tree.All(), 5, Filter{MinLen: 4}))
}
