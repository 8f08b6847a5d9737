/*
Package dictionary loads and holds the word list used for seed phrase detection.

A Dictionary is an immutable set of words stored in a Patricia trie. It is
built once, either from a newline-delimited word list on disk or from the
builtin BIP39 English list, and then shared read-only across any number of
detector calls:

	dict, err := dictionary.Load("english.txt")
	if err != nil {
		// dict is empty, detection is disabled
	}
	dict.Contains("abandon") // true

Load never returns a nil Dictionary. When the file is missing or unreadable
the result is empty and the error describes why; callers treat an empty
dictionary as "nothing can match".
*/
package dictionary

import (
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Dictionary is an immutable word set. The zero value is an empty dictionary.
type Dictionary struct {
	trie  *patricia.Trie
	count int
}

// New builds a dictionary from words in order.
// Empty strings are skipped and duplicates are stored once.
func New(words []string) *Dictionary {
	d := &Dictionary{trie: patricia.NewTrie()}
	for _, w := range words {
		d.insert(w)
	}
	return d
}

// insert is only called while a dictionary is being built.
func (d *Dictionary) insert(word string) {
	if word == "" {
		return
	}
	// Item is the word's position in the source list (BIP39 index for the canonical list)
	if d.trie.Insert(patricia.Prefix(word), d.count) {
		d.count++
	}
}

// Contains reports whether word is in the dictionary. Lookups are exact and case sensitive.
func (d *Dictionary) Contains(word string) bool {
	if d == nil || d.trie == nil || word == "" {
		return false
	}
	return d.trie.Match(patricia.Prefix(word))
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return d.count
}

// Empty reports whether the dictionary has no words.
// Detection against an empty dictionary is disabled.
func (d *Dictionary) Empty() bool {
	return d.Len() == 0
}

// WithPrefix returns the sorted words that start with prefix.
func (d *Dictionary) WithPrefix(prefix string) []string {
	if d.Empty() {
		return nil
	}
	var words []string
	_ = d.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, _ patricia.Item) error {
		words = append(words, string(p))
		return nil
	})
	sort.Strings(words)
	return words
}

// Words returns every word, sorted.
func (d *Dictionary) Words() []string {
	return d.WithPrefix("")
}
