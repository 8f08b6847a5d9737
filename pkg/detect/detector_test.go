package detect

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/bastiangx/seedguard/pkg/dictionary"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var seedWords = []string{
	"abandon", "ability", "able", "about", "above", "absent",
	"absorb", "abstract", "absurd", "abuse", "access", "accident",
}

var phrase12 = strings.Join(seedWords, " ")

func testDict() *dictionary.Dictionary {
	return dictionary.New(seedWords)
}

func repeat(word string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = word
	}
	return out
}

func TestTokenize(t *testing.T) {
	testCases := []struct {
		input    string
		expected []string
	}{
		{"", []string{}},
		{"   \t\n", []string{}},
		{"1234 !!! ??", []string{}},
		{"Hello World", []string{"hello", "world"}},
		{"abc123def", []string{"abc", "def"}},
		{"one,two.three", []string{"one", "two", "three"}},
		{"中文abandon中文ability", []string{"abandon", "ability"}},
		{"{body decorate}。ankle", []string{"body", "decorate", "ankle"}},
		{"café naïve", []string{"caf", "na", "ve"}},
		{"\xffabandon\xfe", []string{"abandon"}},
		{"ABANDON\tAbility\r\nable", []string{"abandon", "ability", "able"}},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := Tokenize(tc.input)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, got, Tokenize(tc.input), "tokenize must be deterministic")
			for _, tok := range got {
				for _, r := range tok {
					assert.True(t, 'a' <= r && r <= 'z', "token %q has non a-z rune %q", tok, r)
				}
			}
		})
	}
}

func TestExactPhraseIsContiguous(t *testing.T) {
	d := New(testDict(), DefaultMinWords)

	res := d.Analyze(phrase12)
	assert.True(t, res.Candidate)
	assert.Equal(t, StrategyContiguous, res.Strategy)
	assert.Equal(t, 12, res.Tokens)
	assert.Equal(t, 12, res.Hits)
	assert.Equal(t, 12, res.LongestRun)
	assert.Equal(t, []string{phrase12}, res.Phrases)

	assert.True(t, d.IsCandidate(phrase12))
	assert.Equal(t, []string{phrase12}, d.ExtractPhrases(phrase12))
}

func TestUnrelatedText(t *testing.T) {
	d := New(testDict(), DefaultMinWords)
	text := "hello world this is not related at all"

	assert.False(t, d.IsCandidate(text))
	assert.Empty(t, d.ExtractPhrases(text))
	assert.Equal(t, StrategyNone, d.Analyze(text).Strategy)
}

func TestDenseWindowToleratesNoise(t *testing.T) {
	d := New(testDict(), DefaultMinWords)
	text := "abandon ability able xyz about above absent absorb abstract absurd abuse access accident"

	res := d.Analyze(text)
	require.True(t, res.Candidate)
	assert.Equal(t, StrategyDenseWindow, res.Strategy)
	assert.Equal(t, 13, res.Tokens)
	assert.Equal(t, 12, res.Hits)
	assert.Equal(t, 9, res.LongestRun)
	assert.Equal(t, []string{
		"abandon ability able about above absent absorb abstract absurd abuse access",
		"ability able about above absent absorb abstract absurd abuse access accident",
	}, res.Phrases)
}

// Eleven hits in twelve tokens fails the hit-count fast reject even though
// the window ratio alone would pass.
func TestElevenHitsInTwelveTokensIsRejected(t *testing.T) {
	d := New(testDict(), DefaultMinWords)
	text := "abandon ability able xyz about above absent absorb abstract absurd abuse access"

	assert.False(t, d.IsCandidate(text))
	assert.Empty(t, d.ExtractPhrases(text))
}

func TestEmbeddedPhraseIsIsolated(t *testing.T) {
	d := New(testDict(), DefaultMinWords)
	text := "thanks for the great video! my wallet words are: " + phrase12 +
		" -- how do I move the funds to another exchange please help"

	require.True(t, d.IsCandidate(text))
	phrases := d.ExtractPhrases(text)
	assert.Contains(t, phrases, phrase12)
	for _, p := range phrases {
		for _, w := range strings.Fields(p) {
			assert.Contains(t, seedWords, w, "phrase %q leaked filler", p)
		}
	}
}

func TestBoundaryHitCounts(t *testing.T) {
	d := New(testDict(), DefaultMinWords)
	eleven := seedWords[:11]

	testCases := []struct {
		name     string
		text     string
		expected bool
	}{
		{"eleven contiguous alone", strings.Join(eleven, " "), false},
		{"eleven contiguous with filler", "so " + strings.Join(eleven, " ") + " then what", false},
		{"eleven interleaved", strings.Join(eleven, " x ") + " x", false},
		{"eleven then repeated filler", strings.Join(append(eleven, repeat("xyz", 30)...), " "), false},
		{"twelve contiguous", phrase12, true},
		{"twelve contiguous with filler", strings.Join(append(repeat("xyz", 40), seedWords...), " "), true},
		{"twelve repeated word", strings.Join(repeat("abandon", 12), " "), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, d.IsCandidate(tc.text))
			if !tc.expected {
				assert.Empty(t, d.ExtractPhrases(tc.text))
			}
		})
	}
}

func TestDensityFallback(t *testing.T) {
	d := New(testDict(), DefaultMinWords)
	// every other token is a seed word: no run, no dense window, density 0.5
	text := strings.Join(seedWords, " filler ") + " filler"

	res := d.Analyze(text)
	require.True(t, res.Candidate)
	assert.Equal(t, StrategyDensity, res.Strategy)
	assert.Equal(t, 24, res.Tokens)
	assert.Equal(t, 12, res.Hits)
	assert.Equal(t, 1, res.LongestRun)
	assert.Empty(t, res.Phrases)

	// one more filler token drops density below half
	assert.False(t, d.IsCandidate(text+" filler"))
}

// With 15 words the window threshold is 13.5: 13 hits must fail, 14 must pass.
func TestWindowThresholdIsNotFloored(t *testing.T) {
	d := New(testDict(), 15)
	tail := strings.Join(repeat("xyz", 20), " ") + " abandon xyz abandon"

	thirteen := "abandon abandon abandon abandon abandon abandon xyz " +
		"abandon abandon abandon abandon abandon abandon abandon xyz " + tail
	assert.False(t, d.IsCandidate(thirteen))
	assert.Empty(t, d.ExtractPhrases(thirteen))

	fourteen := strings.Join(repeat("abandon", 14), " ") + " xyz " + tail
	res := d.Analyze(fourteen)
	assert.True(t, res.Candidate)
	assert.Equal(t, StrategyDenseWindow, res.Strategy)
	assert.Equal(t, []string{strings.Join(repeat("abandon", 14), " ")}, res.Phrases)
}

func TestEmptyDictionaryNeverMatches(t *testing.T) {
	texts := []string{
		"",
		phrase12,
		strings.Join(repeat("abandon", 50), " "),
		"中文 1234 !!!",
	}
	for _, dict := range []*dictionary.Dictionary{nil, dictionary.New(nil), {}} {
		d := New(dict, DefaultMinWords)
		assert.False(t, d.Enabled())
		for _, text := range texts {
			assert.False(t, d.IsCandidate(text))
			assert.Empty(t, d.ExtractPhrases(text))
			assert.False(t, IsCandidate(text, dict))
		}
	}
}

func TestExtractionImpliesCandidate(t *testing.T) {
	d := New(testDict(), DefaultMinWords)
	texts := []string{
		"",
		phrase12,
		phrase12 + " " + phrase12,
		"abandon ability able xyz about above absent absorb abstract absurd abuse access",
		"abandon ability able xyz about above absent absorb abstract absurd abuse access accident",
		strings.Join(seedWords, " filler "),
		strings.Join(repeat("abandon", 11), " "),
		"%%%" + strings.Join(seedWords, "123") + "!!!",
	}
	for _, text := range texts {
		phrases := d.ExtractPhrases(text)
		if len(phrases) > 0 {
			assert.True(t, d.IsCandidate(text), text)
		}
		if !d.IsCandidate(text) {
			assert.Empty(t, phrases, text)
		}
		assert.Equal(t, phrases, d.ExtractPhrases(text), "extraction must be repeatable")
	}
}

func TestLargeMixedInput(t *testing.T) {
	d := New(testDict(), DefaultMinWords)
	// two hits in six tokens per chunk stays under every threshold
	chunk := "中文テキストの説明 \xff\xfe\xc3 12345 abandon 漢字 ability hello !!! café world \x80zz "

	var sb strings.Builder
	for sb.Len() < 3<<20 {
		sb.WriteString(chunk)
	}
	noise := sb.String()

	assert.NotPanics(t, func() {
		res := d.Analyze(noise)
		assert.False(t, res.Candidate)
		assert.Empty(t, d.ExtractPhrases(noise))
	})

	text := noise + phrase12 + " " + noise
	assert.NotPanics(t, func() {
		res := d.Analyze(text)
		require.True(t, res.Candidate)
		assert.Equal(t, StrategyContiguous, res.Strategy)
		assert.Contains(t, res.Phrases, phrase12)
		assert.True(t, d.IsCandidate(text))
	})
}

func TestRandomTextsKeepExtractionConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(20240611))
	pieces := []string{"filler", "xyz", "12", "!!", "中文", "\xff", "-", "ok"}
	pieces = append(pieces, seedWords...)
	pieces = append(pieces, seedWords...)

	for minWords := 1; minWords <= 15; minWords++ {
		d := New(testDict(), minWords)
		for i := 0; i < 3000; i++ {
			n := rng.Intn(3 * minWords)
			parts := make([]string, n)
			for j := range parts {
				parts[j] = pieces[rng.Intn(len(pieces))]
			}
			sep := []string{" ", ",", "\n", "."}[rng.Intn(4)]
			text := strings.Join(parts, sep)

			phrases := d.ExtractPhrases(text)
			candidate := d.IsCandidate(text)
			if len(phrases) > 0 {
				require.True(t, candidate, "min=%d text=%q", minWords, text)
			}
			if !candidate {
				require.Empty(t, phrases, "min=%d text=%q", minWords, text)
			}

			res := d.Analyze(text)
			require.Equal(t, candidate, res.Candidate, "min=%d text=%q", minWords, text)
			if res.Candidate {
				require.Equal(t, phrases, res.Phrases, "min=%d text=%q", minWords, text)
			}
		}
	}
}

func TestPunctuationDoesNotBridgeWords(t *testing.T) {
	d := New(testDict(), DefaultMinWords)
	// digits separate but do not count as tokens, so the run stays intact
	text := strings.Join(seedWords, "1")
	assert.True(t, d.IsCandidate(text))
	assert.Equal(t, []string{phrase12}, d.ExtractPhrases(text))

	// glued words form one non-dictionary token
	glued := "abandonability able about above absent absorb abstract absurd abuse access accident"
	assert.False(t, d.IsCandidate(glued))
}

func TestMultiplePhrases(t *testing.T) {
	d := New(testDict(), DefaultMinWords)
	other := strings.Join(repeat("abandon", 12), " ")
	text := phrase12 + " and also " + other

	phrases := d.ExtractPhrases(text)
	assert.Contains(t, phrases, phrase12)
	assert.Contains(t, phrases, other)
	assert.IsIncreasing(t, phrases)
}

func TestNewDefaultsMinWords(t *testing.T) {
	assert.Equal(t, DefaultMinWords, New(testDict(), 0).MinWords())
	assert.Equal(t, DefaultMinWords, New(testDict(), -3).MinWords())
	assert.Equal(t, 24, New(testDict(), 24).MinWords())
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "none", StrategyNone.String())
	assert.Equal(t, "contiguous", StrategyContiguous.String())
	assert.Equal(t, "dense_window", StrategyDenseWindow.String())
	assert.Equal(t, "density", StrategyDensity.String())
	assert.Equal(t, "unknown", Strategy(42).String())
}

func TestScamCommentsWithBuiltinList(t *testing.T) {
	d := New(dictionary.Builtin(), DefaultMinWords)

	testCases := []struct {
		text   string
		phrase string
	}{
		{
			"感谢您的分享！ 只是我有一个简单的题外话问题： 我的OKX钱包里有TRC20 USDT，并且我有恢复短语：" +
				"{body decorate ankle journey apart rain predict warm track fly symptom mad}。 将它们转移到Binance的最佳方法是什么？",
			"body decorate ankle journey apart rain predict warm track fly symptom mad",
		},
		{
			"我尝试了很多方法，但是都不行。我的助记词是 iron observe slam major mad decorate feed photo awesome vast kitchen faint，请问该怎么办？",
			"iron observe slam major mad decorate feed photo awesome vast kitchen faint",
		},
	}

	for _, tc := range testCases {
		res := d.Analyze(tc.text)
		require.True(t, res.Candidate, tc.text)
		assert.Equal(t, StrategyContiguous, res.Strategy)
		assert.Contains(t, res.Phrases, tc.phrase)
	}

	assert.False(t, d.IsCandidate("这不是助记词短语 this is not a seed phrase"))
}
