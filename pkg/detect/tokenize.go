package detect

import (
	"strings"
	"unicode"
)

// Tokenize splits text into lowercase ASCII-alphabetic words.
//
// Every rune that is neither an ASCII letter nor whitespace becomes a single space,
// so digits, punctuation and non-Latin scripts separate words instead of joining them.
// The result keeps input order and may contain duplicates. It is empty, never nil,
// for text without letters.
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if isASCIILetter(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, text)

	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, strings.ToLower(f))
	}
	return tokens
}

func isASCIILetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
