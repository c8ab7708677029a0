// Package nlp implements the text-side of the query pipeline: normalization,
// entity extraction, and intent classification. Everything here is pure and
// safe for concurrent use; the pattern tables and vocabularies are fixed at
// process start and never mutated.
package nlp

import (
	"strings"
	"unicode"
)

// stopWords holds articles, auxiliary verbs, and question words that carry no
// lookup value. Matches are dropped from the keyword set, not from the
// normalized text.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"do": {}, "does": {}, "did": {}, "can": {}, "could": {}, "will": {}, "would": {},
	"what": {}, "which": {}, "who": {}, "when": {}, "where": {}, "why": {}, "how": {},
	"much": {}, "many": {}, "for": {}, "of": {}, "to": {}, "in": {}, "on": {},
	"my": {}, "me": {}, "i": {}, "please": {}, "tell": {}, "about": {},
}

// Normalize lowercases the input, strips punctuation, and tokenizes on
// whitespace. It returns the normalized text and the ordered keyword set
// (tokens minus stop-words, first occurrence wins). Empty input yields an
// empty keyword set.
func Normalize(text string) (string, []string) {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		default:
			sb.WriteRune(' ')
		}
	}

	tokens := strings.Fields(sb.String())
	normalized := strings.Join(tokens, " ")

	keywords := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if _, stop := stopWords[token]; stop {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
	}

	return normalized, keywords
}
