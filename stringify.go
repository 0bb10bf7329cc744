// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tokentree

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gaissmai/tokentree/internal/value"
)

// MarshalText implements the [encoding.TextMarshaler] interface,
// just a wrapper for [Tree.Fprint].
func (t *Tree[E, A]) MarshalText() ([]byte, error) {
	w := new(bytes.Buffer)
	if err := t.Fprint(w); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// String returns a hierarchical tree diagram of the ordered tokens
// as string, just a wrapper for [Tree.Fprint].
// If Fprint returns an error, String panics.
func (t *Tree[E, A]) String() string {
	w := new(strings.Builder)
	if err := t.Fprint(w); err != nil {
		panic(err)
	}

	return w.String()
}

// Fprint writes a hierarchical tree diagram of the tokens with counts
// and default formatted payload E to w. If w is nil, Fprint panics.
// Zero-sized payloads like struct{} are not printed.
//
// The siblings are in ascending token order, the first line is the root.
//
//	▼ (7)
//	├─ 1 (2)
//	│  ├─ 2 (1)
//	│  │  └─ 4 (1)
//	│  └─ 3 (1)
//	│     └─ 4 (1)
//	└─ 3 (5)
//	   └─ 2 (5)
//	      └─ 1 (4)
func (t *Tree[E, A]) Fprint(w io.Writer) error {
	return t.FprintFunc(w, nil)
}

// FprintFunc is like Fprint, but the tokens are printed with label.
// A nil label prints the tokens as decimal numbers.
func (t *Tree[E, A]) FprintFunc(w io.Writer, label func(Token) string) error {
	t.init()

	if label == nil {
		label = decimal
	}

	if t.root.count == 0 && !t.root.HasChildren() {
		return nil
	}

	printVals := !value.IsZST[E]()

	var err error
	if printVals {
		_, err = fmt.Fprintf(w, "▼ (%d) %v\n", t.root.count, t.root.extra)
	} else {
		_, err = fmt.Fprintf(w, "▼ (%d)\n", t.root.count)
	}
	if err != nil {
		return err
	}

	return fprintRec(w, t.root, "", label, printVals)
}

func decimal(tok Token) string {
	return strconv.FormatInt(int64(tok), 10)
}

// fprintRec recursively prints the children of n, padded with pad.
func fprintRec[E any](w io.Writer, n *Node[E], pad string, label func(Token) string, printVals bool) error {
	sorted := n.SortedChildren()

	// symbols used in tree
	glyph := "├─ "
	space := "│  "

	for i, kid := range sorted {
		// ... treat last kid special
		if i == len(sorted)-1 {
			glyph = "└─ "
			space = "   "
		}

		var err error
		switch {
		case !printVals:
			_, err = fmt.Fprintf(w, "%s%s (%d)\n", pad+glyph, label(kid.token), kid.count)
		default:
			_, err = fmt.Fprintf(w, "%s%s (%d) %v\n", pad+glyph, label(kid.token), kid.count, kid.extra)
		}
		if err != nil {
			return err
		}

		// rec-descent with this kid as parent
		if err = fprintRec(w, kid, pad+space, label, printVals); err != nil {
			return err
		}
	}

	return nil
}
