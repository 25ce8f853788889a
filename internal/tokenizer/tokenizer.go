// Package tokenizer splits paths, identifiers, and queries into normalized
// terms for indexing and scoring.
package tokenizer

import (
	"sort"
	"strings"
	"unicode"
)

// stopWords is the fixed, alphabetically sorted English function-word list
// filtered out of every tokenization. Kept sorted so lookups can
// binary-search it.
var stopWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "but", "by", "do", "for", "from",
	"had", "has", "have", "he", "her", "his", "how", "i", "if", "in", "into",
	"is", "it", "its", "just", "me", "my", "no", "not", "of", "on", "or",
	"our", "out", "so", "than", "that", "the", "their", "them", "then",
	"there", "these", "they", "this", "to", "up", "us", "was", "we", "were",
	"what", "when", "which", "who", "will", "with", "would", "you", "your",
}

func isStopWord(word string) bool {
	i := sort.SearchStrings(stopWords, word)
	return i < len(stopWords) && stopWords[i] == word
}

// Tokenize splits input into normalized, lowercased terms: it splits on
// whitespace and the separators '/', '.', '-', then splits each fragment
// on '_' (snake_case), then splits each piece again on case boundaries
// (camelCase and acronym runs), and finally drops pieces shorter than two
// characters or in the stop-word set. Output preserves input order,
// including duplicates — downstream BM25F counts multiplicity, not set
// membership.
func Tokenize(input string) []string {
	var tokens []string

	for _, word := range splitOnSeparators(input) {
		for _, part := range strings.Split(word, "_") {
			if part == "" {
				continue
			}
			for _, piece := range splitCaseBoundaries(part) {
				lower := strings.ToLower(piece)
				if len(lower) >= 2 && !isStopWord(lower) {
					tokens = append(tokens, lower)
				}
			}
		}
	}

	return tokens
}

// splitOnSeparators splits on whitespace and '/', '.', '-', discarding
// empty fragments.
func splitOnSeparators(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return unicode.IsSpace(r) || r == '/' || r == '.' || r == '-'
	})
	return fields
}

// splitCaseBoundaries splits a word on camelCase and acronym boundaries:
//   - lower->upper: split before the upper rune (camelCase).
//   - upper-run->lower: split one rune back, so an acronym followed by a
//     capitalized word keeps the acronym whole (e.g. "HTTPResponse" ->
//     "HTTP", "Response").
func splitCaseBoundaries(s string) []string {
	if s == "" {
		return nil
	}

	runes := []rune(s)
	var parts []string
	start := 0

	for i := 1; i < len(runes); i++ {
		prevUpper := unicode.IsUpper(runes[i-1])
		currUpper := unicode.IsUpper(runes[i])
		currLower := unicode.IsLower(runes[i])

		splitCamel := !prevUpper && currUpper
		splitAcronym := prevUpper && currLower && i >= 2 && unicode.IsUpper(runes[i-2])

		if splitCamel {
			if start < i {
				parts = append(parts, string(runes[start:i]))
			}
			start = i
		} else if splitAcronym {
			if start < i-1 {
				parts = append(parts, string(runes[start:i-1]))
			}
			start = i - 1
		}
	}

	if start < len(runes) {
		parts = append(parts, string(runes[start:]))
	}

	return parts
}
