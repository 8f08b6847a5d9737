/*
Package detect decides whether free-form text embeds a BIP39 seed phrase.

Text is tokenized into lowercase ASCII words, each token is matched against a
dictionary, and three signals are combined with a logical OR:

  - a contiguous run of at least MinWords dictionary words
  - a window of MinWords consecutive tokens with at least 90% dictionary words
  - at least MinWords dictionary words making up half of all tokens

Any text with fewer than MinWords tokens, or fewer than MinWords dictionary
hits, is rejected up front. An empty dictionary never matches.

ExtractPhrases re-scans with the contiguous and window signals and returns the
matching substrings. It never returns phrases for a text IsCandidate rejects.
*/
package detect

import (
	"github.com/bastiangx/seedguard/pkg/dictionary"
	"github.com/charmbracelet/log"
)

const (
	// DefaultMinWords matches the shortest standard BIP39 phrase.
	DefaultMinWords = 12

	windowRatio  = 0.9
	densityRatio = 0.5
)

// Detector classifies text against a fixed dictionary. It holds no mutable
// state and is safe for concurrent use.
type Detector struct {
	dict     *dictionary.Dictionary
	minWords int
}

// Result is the outcome of Analyze.
type Result struct {
	Candidate  bool
	Strategy   Strategy
	Tokens     int
	Hits       int
	LongestRun int
	Phrases    []string
}

// New returns a Detector. minWords below 1 falls back to DefaultMinWords.
func New(dict *dictionary.Dictionary, minWords int) *Detector {
	if minWords < 1 {
		minWords = DefaultMinWords
	}
	return &Detector{dict: dict, minWords: minWords}
}

// MinWords returns the configured minimum seed word count.
func (d *Detector) MinWords() int { return d.minWords }

// Dictionary returns the dictionary the detector matches against.
func (d *Detector) Dictionary() *dictionary.Dictionary { return d.dict }

// Enabled reports whether the detector can match anything at all.
func (d *Detector) Enabled() bool { return !d.dict.Empty() }

// IsCandidate reports whether text very likely contains a seed phrase.
func (d *Detector) IsCandidate(text string) bool {
	return d.classify(d.match(text)) != StrategyNone
}

// Analyze classifies text and, when it is a candidate, extracts its phrases.
func (d *Detector) Analyze(text string) Result {
	m := d.match(text)
	strategy := d.classify(m)

	res := Result{
		Candidate:  strategy != StrategyNone,
		Strategy:   strategy,
		Tokens:     len(m.tokens),
		Hits:       m.hits,
		LongestRun: m.longestRun(),
	}
	if res.Candidate {
		res.Phrases = d.extract(m)
	}
	return res
}

// matched is a token sequence with its dictionary membership mask.
type matched struct {
	tokens []string
	mask   []bool
	hits   int
}

func (d *Detector) match(text string) matched {
	tokens := Tokenize(text)
	m := matched{tokens: tokens, mask: make([]bool, len(tokens))}
	if !d.Enabled() {
		return m
	}
	for i, t := range tokens {
		if d.dict.Contains(t) {
			m.mask[i] = true
			m.hits++
		}
	}
	return m
}

// longestRun returns the longest stretch of consecutive dictionary tokens.
func (m matched) longestRun() int {
	run, best := 0, 0
	for _, hit := range m.mask {
		if !hit {
			run = 0
			continue
		}
		run++
		if run > best {
			best = run
		}
	}
	return best
}

// windowHits returns the hit count of every window of size n, indexed by start.
func (m matched) windowHits(n int) []int {
	if n <= 0 || len(m.mask) < n {
		return nil
	}
	counts := make([]int, len(m.mask)-n+1)
	sum := 0
	for i, hit := range m.mask {
		if hit {
			sum++
		}
		if i >= n && m.mask[i-n] {
			sum--
		}
		if i >= n-1 {
			counts[i-n+1] = sum
		}
	}
	return counts
}

// admissible applies the fast rejects shared by classification and extraction.
func (d *Detector) admissible(m matched) bool {
	return d.Enabled() && len(m.tokens) >= d.minWords && m.hits >= d.minWords
}

// denseWindow reports whether hits meets the 90% window threshold.
// The threshold is compared as a real number, never floored.
func (d *Detector) denseWindow(hits int) bool {
	return float64(hits) >= float64(d.minWords)*windowRatio
}

func (d *Detector) classify(m matched) Strategy {
	if !d.admissible(m) {
		return StrategyNone
	}

	if run := m.longestRun(); run >= d.minWords {
		log.Debugf("Found %d consecutive dictionary words", run)
		return StrategyContiguous
	}

	for start, hits := range m.windowHits(d.minWords) {
		if d.denseWindow(hits) {
			log.Debug("Found dense dictionary window", "start", start, "hits", hits, "window", d.minWords)
			return StrategyDenseWindow
		}
	}

	if float64(m.hits)/float64(len(m.tokens)) >= densityRatio {
		log.Debug("Found high dictionary density", "hits", m.hits, "tokens", len(m.tokens))
		return StrategyDensity
	}
	return StrategyNone
}
