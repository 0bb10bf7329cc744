// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package tokentree

import (
	"encoding/json"
	"testing"
)

func TestJSONEmpty(t *testing.T) {
	t.Parallel()

	tree := new(Tree[any, any])
	checkJSON(t, tree, `{"count":0,"distinct":0,"extra":null}`)
}

func TestJSONSample(t *testing.T) {
	t.Parallel()

	tree := New(CountByArg[string])
	mustAddN(t, tree, []Token{1, 2}, "a", 3)
	mustAddN(t, tree, []Token{1, 3}, "b", 1)

	/*
	   {
	     "count": 4,
	     "distinct": 2,
	     "extra": {"a": 3, "b": 1},
	     "kids": [
	       {
	         "token": 1,
	         "count": 4,
	         "extra": {"a": 3, "b": 1},
	         "kids": [
	           { "token": 2, "count": 3, "extra": {"a": 3} },
	           { "token": 3, "count": 1, "extra": {"b": 1} }
	         ]
	       }
	     ]
	   }
	*/
	want := `{"count":4,"distinct":2,"extra":{"a":3,"b":1},"kids":[` +
		`{"token":1,"count":4,"extra":{"a":3,"b":1},"kids":[` +
		`{"token":2,"count":3,"extra":{"a":3}},` +
		`{"token":3,"count":1,"extra":{"b":1}}]}]}`

	checkJSON(t, tree, want)
}

func TestDumpList(t *testing.T) {
	t.Parallel()

	tree := sampleTree()
	list := tree.DumpList()

	if len(list) != 2 || list[0].Token != 1 || list[1].Token != 3 {
		t.Fatalf("DumpList roots, want tokens 1 and 3, got %+v", list)
	}
	if list[1].Count != 5 || len(list[1].Kids) != 1 || list[1].Kids[0].Kids[0].Count != 4 {
		t.Errorf("DumpList (3,2,1), got %+v", list[1])
	}
}

func checkJSON[E, A any](t *testing.T, tree *Tree[E, A], want string) {
	t.Helper()

	jsonBuffer, err := json.Marshal(tree)
	if err != nil {
		t.Fatal(err)
	}

	if got := string(jsonBuffer); got != want {
		t.Errorf("Marshal JSON\nwant:\n%s\ngot:\n%s", want, got)
	}
}
