// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package corpus

import (
	"strings"
	"sync"

	"github.com/gaissmai/tokentree"
)

// Vocabulary maps words to dense token ids, in order of first appearance.
// It is safe for concurrent use, the file readers share one vocabulary.
type Vocabulary struct {
	mu    sync.RWMutex
	ids   map[string]tokentree.Token
	words []string
}

// NewVocabulary returns a vocabulary with the words at their index as ids.
// Duplicate words keep their first id.
func NewVocabulary(words ...string) *Vocabulary {
	v := &Vocabulary{ids: make(map[string]tokentree.Token, len(words))}
	for _, w := range words {
		v.Add(w)
	}
	return v
}

// Add returns the id of word, a new id for an unknown word.
func (v *Vocabulary) Add(word string) tokentree.Token {
	v.mu.RLock()
	id, ok := v.ids[word]
	v.mu.RUnlock()
	if ok {
		return id
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	// double check, another writer may have been faster
	if id, ok = v.ids[word]; ok {
		return id
	}

	id = tokentree.Token(len(v.words))
	v.ids[word] = id
	v.words = append(v.words, word)

	return id
}

// ID returns the id of word, if known.
func (v *Vocabulary) ID(word string) (tokentree.Token, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	id, ok := v.ids[word]
	return id, ok
}

// Word returns the word for id, if known.
func (v *Vocabulary) Word(id tokentree.Token) (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if id < 0 || int(id) >= len(v.words) {
		return "", false
	}
	return v.words[id], true
}

// Len returns the number of words.
func (v *Vocabulary) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return len(v.words)
}

// Words returns a copy of all words, indexed by id.
func (v *Vocabulary) Words() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return append([]string(nil), v.words...)
}

// Lookup maps all words to ids and reports false if any word is unknown.
func (v *Vocabulary) Lookup(words []string) ([]tokentree.Token, bool) {
	seq := make([]tokentree.Token, 0, len(words))
	for _, w := range words {
		id, ok := v.ID(w)
		if !ok {
			return nil, false
		}
		seq = append(seq, id)
	}
	return seq, true
}

// Format returns the words for seq, joined by a space.
// Unknown ids are printed as #id.
func (v *Vocabulary) Format(seq []tokentree.Token) string {
	parts := make([]string, 0, len(seq))
	for _, id := range seq {
		w, ok := v.Word(id)
		if !ok {
			w = "#" + itoa(id)
		}
		parts = append(parts, w)
	}
	return strings.Join(parts, " ")
}
