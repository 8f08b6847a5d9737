package detect

import (
	"slices"
	"strings"

	"github.com/bastiangx/seedguard/pkg/dictionary"
	"github.com/samber/lo"
)

// ExtractPhrases returns the candidate seed phrases found in text, deduplicated
// and sorted. Contiguous dictionary runs of at least MinWords are returned whole;
// for every dense window only its dictionary tokens are joined.
// Returns nil when nothing qualifies.
func (d *Detector) ExtractPhrases(text string) []string {
	return d.extract(d.match(text))
}

func (d *Detector) extract(m matched) []string {
	if !d.admissible(m) {
		return nil
	}

	phrases := make(map[string]struct{})

	var run []string
	flush := func() {
		if len(run) >= d.minWords {
			phrases[strings.Join(run, " ")] = struct{}{}
		}
		run = run[:0]
	}
	for i, t := range m.tokens {
		if m.mask[i] {
			run = append(run, t)
			continue
		}
		flush()
	}
	flush()

	for start, hits := range m.windowHits(d.minWords) {
		if !d.denseWindow(hits) {
			continue
		}
		words := make([]string, 0, hits)
		for i := start; i < start+d.minWords; i++ {
			if m.mask[i] {
				words = append(words, m.tokens[i])
			}
		}
		phrases[strings.Join(words, " ")] = struct{}{}
	}

	if len(phrases) == 0 {
		return nil
	}
	out := lo.Keys(phrases)
	slices.Sort(out)
	return out
}

// IsCandidate classifies text against dict with DefaultMinWords.
func IsCandidate(text string, dict *dictionary.Dictionary) bool {
	return New(dict, DefaultMinWords).IsCandidate(text)
}

// ExtractPhrases extracts phrases from text against dict with DefaultMinWords.
func ExtractPhrases(text string, dict *dictionary.Dictionary) []string {
	return New(dict, DefaultMinWords).ExtractPhrases(text)
}
