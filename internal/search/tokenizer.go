package search

import (
	"strings"
	"unicode"
)

const (
	// minTokenLength is the shortest token worth indexing; anything at or
	// below this length is noise for note-sized corpora.
	minTokenLength = 2
	// stemThreshold is the minimum token length that produces a prefix stem.
	stemThreshold = 3
	// minStemLength is the floor applied when truncating a token into a stem.
	minStemLength = 3
)

// stopWords holds common English function words excluded from the index and
// from queries. Matching is performed on lowercased tokens.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "any": {}, "can": {}, "had": {}, "her": {},
	"was": {}, "one": {}, "our": {}, "out": {}, "his": {}, "has": {},
	"have": {}, "this": {}, "that": {}, "with": {}, "from": {}, "they": {},
	"been": {}, "were": {}, "their": {}, "them": {}, "then": {}, "there": {},
	"these": {}, "those": {}, "what": {}, "when": {}, "where": {}, "which": {},
	"while": {}, "will": {}, "would": {}, "could": {}, "should": {},
	"about": {}, "above": {}, "after": {}, "again": {}, "against": {},
	"before": {}, "being": {}, "below": {}, "between": {}, "both": {},
	"down": {}, "during": {}, "each": {}, "into": {}, "more": {}, "most": {},
	"only": {}, "other": {}, "over": {}, "same": {}, "some": {}, "such": {},
	"than": {}, "through": {}, "under": {}, "until": {}, "very": {},
	"your": {}, "just": {}, "once": {}, "here": {}, "does": {}, "doing": {},
}

// Tokenize splits text into lowercased, stop-word filtered tokens and always
// emits a truncated prefix stem alongside tokens longer than three runes.
// This is the variant used when building index entries, where broader recall
// is preferred.
func Tokenize(text string) []string {
	return tokenize(text, true)
}

// TokenizeQuery tokenizes a search query. Stems are emitted only when fuzzy
// matching is requested so that strict queries stay strict.
func TokenizeQuery(text string, fuzzy bool) []string {
	return tokenize(text, fuzzy)
}

func tokenize(text string, stems bool) []string {
	normalized := normalizeText(text)
	if normalized == "" {
		return nil
	}

	words := strings.Fields(normalized)
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		runes := []rune(word)
		if len(runes) <= minTokenLength {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}

		tokens = append(tokens, word)
		if stems && len(runes) > stemThreshold {
			tokens = append(tokens, stem(runes))
		}
	}
	return tokens
}

// stem truncates a token to max(3, len-2) runes. This is a deliberate
// recall heuristic, not linguistic stemming.
func stem(runes []rune) string {
	cut := len(runes) - 2
	if cut < minStemLength {
		cut = minStemLength
	}
	return string(runes[:cut])
}

// normalizeText lowercases the input and replaces every rune that is not a
// word character or whitespace with a space so punctuation never glues words
// together.
func normalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}
