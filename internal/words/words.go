// Package words holds the guessing vocabulary. The server treats it as an
// injected finite list: the built-in set can be replaced wholesale from a
// YAML file without touching game logic.
package words

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// minSize is the smallest usable vocabulary: choice mode offers three
// distinct options, so anything smaller cannot run a round.
const minSize = 3

var defaultWords = []string{
	"apple", "cat", "house", "tree", "car", "dog", "star", "flower",
	"plane", "bottle", "phone", "chair", "sun", "moon", "pizza", "fish",
	"elephant", "guitar", "book", "rocket", "computer", "ball", "mountain",
	"beach", "umbrella", "camera", "butterfly", "football",
}

// Vocabulary is an immutable, lower-cased word list.
type Vocabulary struct {
	words []string
	index map[string]struct{}
}

// Default returns the built-in vocabulary.
func Default() *Vocabulary {
	v, _ := New(defaultWords)
	return v
}

// New builds a vocabulary from the given words, lower-casing and
// de-duplicating them.
func New(list []string) (*Vocabulary, error) {
	v := &Vocabulary{index: make(map[string]struct{}, len(list))}
	for _, w := range list {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := v.index[w]; dup {
			continue
		}
		v.index[w] = struct{}{}
		v.words = append(v.words, w)
	}
	if len(v.words) < minSize {
		return nil, fmt.Errorf("vocabulary needs at least %d words, got %d", minSize, len(v.words))
	}
	return v, nil
}

// FromFile loads a vocabulary from a YAML file containing a list of strings.
func FromFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read words file: %w", err)
	}
	var list []string
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse words file: %w", err)
	}
	v, err := New(list)
	if err != nil {
		return nil, fmt.Errorf("words file %s: %w", path, err)
	}
	return v, nil
}

// Pick returns one word drawn uniformly at random.
func (v *Vocabulary) Pick() string {
	return v.words[rand.IntN(len(v.words))]
}

// Sample returns n distinct words drawn without replacement. When n exceeds
// the vocabulary size the whole list is returned in random order.
func (v *Vocabulary) Sample(n int) []string {
	if n > len(v.words) {
		n = len(v.words)
	}
	picked := rand.Perm(len(v.words))[:n]
	out := make([]string, n)
	for i, idx := range picked {
		out[i] = v.words[idx]
	}
	return out
}

// Contains reports whether the lower-cased word is part of the vocabulary.
func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.index[strings.ToLower(word)]
	return ok
}

// Len returns the vocabulary size.
func (v *Vocabulary) Len() int {
	return len(v.words)
}
