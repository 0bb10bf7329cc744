// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tokentree

import (
	"math/rand/v2"
	"testing"
)

func TestEqual(t *testing.T) {
	t.Parallel()

	a := sampleTree()
	b := sampleTree()

	if !a.Equal(a) || !a.Equal(b) || !b.Equal(a) {
		t.Error("same insertions, want equal")
	}

	var nilTree *Counter
	if a.Equal(nil) || !nilTree.Equal(nil) {
		t.Error("nil handling")
	}

	tests := []struct {
		name string
		mod  func(*Counter)
	}{
		{"count only", func(c *Counter) { c.Add([]Token{3, 2}, struct{}{}) }},
		{"new node", func(c *Counter) { c.Add([]Token{3, 2, 9}, struct{}{}) }},
		{"root only", func(c *Counter) { c.Add(nil, struct{}{}) }},
	}

	for _, tt := range tests {
		c := sampleTree()
		tt.mod(c)
		if a.Equal(c) {
			t.Errorf("%s: want not equal", tt.name)
		}
	}
}

func TestEqualExtra(t *testing.T) {
	t.Parallel()

	a := New(CountByArg[string])
	b := New(CountByArg[string])

	a.Add([]Token{1, 2}, "x")
	b.Add([]Token{1, 2}, "y")

	if a.Equal(b) {
		t.Error("different payloads, want not equal")
	}
}

func TestEqualShapeIndependent(t *testing.T) {
	t.Parallel()

	// same nodes, inserted in different order
	a := new(Counter)
	b := new(Counter)
	for _, s := range [][]Token{{1}, {2}, {3}} {
		a.Add(s, struct{}{})
	}
	for _, s := range [][]Token{{3}, {2}, {1}} {
		b.Add(s, struct{}{})
	}

	if !a.Equal(b) {
		t.Error("insertion order, want equal")
	}
}

func TestClone(t *testing.T) {
	t.Parallel()

	tree := New(CountByArg[string])
	prng := rand.New(rand.NewPCG(42, 42))
	for range workLoadN() {
		tree.Add(randomSeq(prng, 5, 6), "a")
	}

	c := tree.Clone()
	if !tree.Equal(c) {
		t.Fatal("Clone, want equal")
	}

	// payloads are maps without Cloner, copied by assignment,
	// the structure is independent
	c.Add([]Token{99}, "b")
	if _, ok := tree.Find([]Token{99}); ok {
		t.Error("Clone shares structure with the original")
	}
	if tree.TokenCount(99) != 0 {
		t.Error("Clone shares token counts with the original")
	}

	var nilTree *Counter
	if nilTree.Clone() != nil {
		t.Error("Clone of nil, want nil")
	}
}

// bag is a payload with deep copy.
type bag map[string]int

func (b bag) Clone() bag {
	c := make(bag, len(b))
	for k, v := range b {
		c[k] = v
	}
	return c
}

func TestCloneDeep(t *testing.T) {
	t.Parallel()

	merge := func(_ []Token, _ int, old bag, arg string, count int) bag {
		if old == nil {
			old = bag{}
		}
		old[arg] += count
		return old
	}

	tree := New(merge)
	tree.Add([]Token{1, 2}, "a")

	c := tree.Clone()
	c.Add([]Token{1}, "a")

	if n, _ := tree.Find([]Token{1}); n.Extra()["a"] != 1 {
		t.Errorf("deep clone, original payload changed to %v", n.Extra())
	}
	if n, _ := c.Find([]Token{1}); n.Extra()["a"] != 2 {
		t.Errorf("deep clone, clone payload want 2, got %v", n.Extra())
	}
}
