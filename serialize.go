// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tokentree

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"

	"github.com/gaissmai/tokentree/internal/value"
)

// formatVersion is incremented on incompatible changes of the stream.
const formatVersion = 1

// ErrCorrupt is returned by Decode for streams not written by Encode.
var ErrCorrupt = errors.New("tokentree: corrupt stream")

// streamHeader is the first gob value in the stream.
type streamHeader struct {
	Version     int
	Count       int
	Distinct    int
	Size        int
	Tokens      []Token
	TokenCounts []int
	HasExtra    bool
}

// nodeRecord is written for every node in pre-order, the root first.
// Kids is the number of direct children, the records of the
// children follow recursively.
type nodeRecord struct {
	Token Token
	Count int
	Kids  int
}

// extraRecord follows every nodeRecord if the payload type is not zero-sized.
// gob can't encode zero-sized types like struct{}.
type extraRecord[E any] struct {
	Extra E
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface,
// just a wrapper for [Tree.Encode].
func (t *Tree[E, A]) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := t.Encode(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface,
// just a wrapper for [Tree.Decode].
func (t *Tree[E, A]) UnmarshalBinary(data []byte) error {
	return t.Decode(bytes.NewReader(data))
}

// Encode writes the tree as gob stream to w.
//
// The payloads are encoded with gob, interface types stored in E
// must be registered with [gob.Register]. The merge function
// and the node factory are not part of the stream.
func (t *Tree[E, A]) Encode(w io.Writer) error {
	t.init()

	hdr := streamHeader{
		Version:     formatVersion,
		Count:       t.root.count,
		Distinct:    t.distinct,
		Size:        t.size,
		Tokens:      make([]Token, 0, len(t.tokenCounts)),
		TokenCounts: make([]int, 0, len(t.tokenCounts)),
		HasExtra:    !value.IsZST[E](),
	}
	for tok, cnt := range t.TokenCounts() {
		hdr.Tokens = append(hdr.Tokens, tok)
		hdr.TokenCounts = append(hdr.TokenCounts, cnt)
	}

	enc := gob.NewEncoder(w)
	if err := enc.Encode(hdr); err != nil {
		return fmt.Errorf("tokentree: encode header: %w", err)
	}

	// pre-order with explicit stack, the order of the kids
	// is irrelevant for the reconstruction but keeps the stream stable
	stack := []*Node[E]{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		rec := nodeRecord{Token: n.token, Count: n.count, Kids: n.NumChildren()}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("tokentree: encode node: %w", err)
		}

		if hdr.HasExtra {
			if err := enc.Encode(extraRecord[E]{Extra: n.extra}); err != nil {
				return fmt.Errorf("tokentree: encode extra: %w", err)
			}
		}

		sorted := n.SortedChildren()
		for i := len(sorted) - 1; i >= 0; i-- {
			stack = append(stack, sorted[i])
		}
	}

	return nil
}

// Decode replaces the content of t with the tree read from r.
// The merge function and the node factory of t are kept.
//
// On error t is left unchanged.
func (t *Tree[E, A]) Decode(r io.Reader) error {
	t.init()

	dec := gob.NewDecoder(r)

	var hdr streamHeader
	if err := dec.Decode(&hdr); err != nil {
		return fmt.Errorf("tokentree: decode header: %w", err)
	}

	if hdr.Version != formatVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrCorrupt, hdr.Version)
	}
	if len(hdr.Tokens) != len(hdr.TokenCounts) {
		return fmt.Errorf("%w: token counts mismatch", ErrCorrupt)
	}
	if hdr.HasExtra == value.IsZST[E]() {
		return fmt.Errorf("%w: payload type mismatch", ErrCorrupt)
	}

	readNode := func(n *Node[E]) (kids int, err error) {
		var rec nodeRecord
		if err = dec.Decode(&rec); err != nil {
			return 0, fmt.Errorf("tokentree: decode node: %w", err)
		}
		if rec.Count < 0 || rec.Kids < 0 {
			return 0, fmt.Errorf("%w: negative count", ErrCorrupt)
		}

		n.token = rec.Token
		n.count = rec.Count

		if hdr.HasExtra {
			var x extraRecord[E]
			if err = dec.Decode(&x); err != nil {
				return 0, fmt.Errorf("tokentree: decode extra: %w", err)
			}
			n.extra = x.Extra
		}
		return rec.Kids, nil
	}

	root := newRoot(t.creator)
	kids, err := readNode(root)
	if err != nil {
		return err
	}
	root.token = 0
	if root.count != hdr.Count {
		return fmt.Errorf("%w: root count %d, want %d", ErrCorrupt, root.count, hdr.Count)
	}

	type frame struct {
		n    *Node[E]
		kids int
	}

	size := 0
	stack := []frame{{root, kids}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.kids == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		top.kids--
		parent := top.n

		kid := t.creator(0)
		kids, err := readNode(kid)
		if err != nil {
			return err
		}
		if _, exists := parent.Step(kid.token); exists {
			return fmt.Errorf("%w: duplicate token %d", ErrCorrupt, kid.token)
		}
		parent.InsertChild(kid)
		size++

		// attention: top is invalid after append
		stack = append(stack, frame{kid, kids})
	}

	if size != hdr.Size {
		return fmt.Errorf("%w: size %d, want %d", ErrCorrupt, size, hdr.Size)
	}

	tokenCounts := make(map[Token]int, len(hdr.Tokens))
	for i, tok := range hdr.Tokens {
		tokenCounts[tok] = hdr.TokenCounts[i]
	}

	t.root = root
	t.tokenCounts = tokenCounts
	t.distinct = hdr.Distinct
	t.size = size

	return nil
}
