// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tokentree

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type entry[E any] struct {
	Path  []Token
	Count int
	Extra E
}

func entries[E, A any](tree *Tree[E, A]) []entry[E] {
	var out []entry[E]
	for path, n := range tree.All() {
		out = append(out, entry[E]{path, n.Count(), n.Extra()})
	}
	return out
}

func TestSerializeSample(t *testing.T) {
	t.Parallel()

	tree := sampleTree()

	data, err := tree.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	dt := new(Counter)
	if err = dt.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}

	if len(entries(tree)) != len(entries(dt)) {
		t.Errorf("round trip, want %d entries, got %d", len(entries(tree)), len(entries(dt)))
	}
	if diff := cmp.Diff(entries(tree), entries(dt)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if !tree.Equal(dt) {
		t.Error("round trip, want equal trees")
	}
	if dt.Count() != 7 || dt.Distinct() != 3 || dt.TokenCount(1) != 6 {
		t.Errorf("round trip, got count %d distinct %d tokens(1) %d", dt.Count(), dt.Distinct(), dt.TokenCount(1))
	}
}

func TestSerializeExtra(t *testing.T) {
	t.Parallel()

	tree := New(CountByArg[string])
	prng := rand.New(rand.NewPCG(42, 42))
	for i := range workLoadN() {
		seq := randomSeq(prng, 6, 8)
		mustAddN(t, tree, seq, fmt.Sprintf("doc%d", i%7), 1+prng.IntN(3))
	}

	buf := new(bytes.Buffer)
	if err := tree.Encode(buf); err != nil {
		t.Fatal(err)
	}

	dt := New(CountByArg[string])
	if err := dt.Decode(buf); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(entries(tree), entries(dt)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(tree.Root().Extra(), dt.Root().Extra()); diff != "" {
		t.Errorf("root extra mismatch (-want +got):\n%s", diff)
	}

	// the decoded tree keeps its merge function
	mustAddN(t, dt, []Token{1}, "new", 2)
	if n, _ := dt.Find([]Token{1}); n.Extra()["new"] != 2 {
		t.Errorf("merge after decode, got %v", n.Extra())
	}
}

func TestSerializeEmpty(t *testing.T) {
	t.Parallel()

	for _, tree := range []*Counter{new(Counter), func() *Counter {
		c := new(Counter)
		c.Add(nil, struct{}{})
		c.Add(nil, struct{}{})
		return c
	}()} {
		data, err := tree.MarshalBinary()
		if err != nil {
			t.Fatal(err)
		}

		dt := new(Counter)
		if err = dt.UnmarshalBinary(data); err != nil {
			t.Fatal(err)
		}
		if !tree.Equal(dt) {
			t.Errorf("round trip of %d root insertions, want equal", tree.Count())
		}
		if len(collectPaths(tree.All())) != len(collectPaths(dt.All())) {
			t.Error("round trip, traversal lengths differ")
		}
	}
}

func TestSerializeCorrupt(t *testing.T) {
	t.Parallel()

	tree := sampleTree()
	data, err := tree.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	target := new(Counter)
	target.Add([]Token{42}, struct{}{})
	before := target.Clone()

	// truncated streams
	for _, n := range []int{0, 1, len(data) / 2, len(data) - 1} {
		if err := target.UnmarshalBinary(data[:n]); err == nil {
			t.Errorf("truncated at %d, want error", n)
		}
		if !target.Equal(before) {
			t.Fatalf("truncated at %d, target modified", n)
		}
	}

	// wrong version
	bad := new(bytes.Buffer)
	if err := gob.NewEncoder(bad).Encode(streamHeader{Version: 99}); err != nil {
		t.Fatal(err)
	}
	if err := target.Decode(bad); !errors.Is(err, ErrCorrupt) {
		t.Errorf("wrong version, want ErrCorrupt, got %v", err)
	}

	// payload type mismatch, stream without extras into a map payload
	other := New(CountByArg[string])
	if err := other.UnmarshalBinary(data); !errors.Is(err, ErrCorrupt) {
		t.Errorf("payload mismatch, want ErrCorrupt, got %v", err)
	}

	// size mismatch
	bad.Reset()
	enc := gob.NewEncoder(bad)
	_ = enc.Encode(streamHeader{Version: formatVersion, Count: 1, Size: 5})
	_ = enc.Encode(nodeRecord{Count: 1, Kids: 1})
	_ = enc.Encode(nodeRecord{Token: 3, Count: 1})
	if err := target.Decode(bad); !errors.Is(err, ErrCorrupt) {
		t.Errorf("size mismatch, want ErrCorrupt, got %v", err)
	}

	// duplicate kid token
	bad.Reset()
	enc = gob.NewEncoder(bad)
	_ = enc.Encode(streamHeader{Version: formatVersion, Count: 2, Size: 2})
	_ = enc.Encode(nodeRecord{Count: 2, Kids: 2})
	_ = enc.Encode(nodeRecord{Token: 3, Count: 1})
	_ = enc.Encode(nodeRecord{Token: 3, Count: 1})
	if err := target.Decode(bad); !errors.Is(err, ErrCorrupt) {
		t.Errorf("duplicate token, want ErrCorrupt, got %v", err)
	}

	if !target.Equal(before) {
		t.Error("failed decodes modified the target")
	}
}
