package search

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

const (
	// titleWeight multiplies the title text score relative to the body.
	titleWeight = 3
	// exactMatchScore is awarded per exact substring occurrence of a token.
	exactMatchScore = 2
	// fuzzyMatchScore is awarded per accepted fuzzy word match.
	fuzzyMatchScore = 1
	// phraseTitleBonus and phraseBodyBonus reward the full query appearing
	// verbatim in the title or body.
	phraseTitleBonus = 5
	phraseBodyBonus  = 2
	// fuzzyLengthSlack is the maximum length difference between a query
	// token and a candidate word considered for fuzzy matching.
	fuzzyLengthSlack = 2
	// fuzzySpanGap suppresses fuzzy highlights landing within this many
	// characters of an already recorded span.
	fuzzySpanGap = 3
)

type scoredDocument struct {
	doc        Document
	score      int
	titleSpans []Highlight
	bodySpans  []Highlight
}

// Search evaluates a query against the index and returns presentation-ready
// results ordered by descending score. An empty or whitespace query yields an
// empty slice; malformed filters degrade to matching nothing rather than
// failing.
func (e *Engine) Search(req Request) []Result {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return []Result{}
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	queryTokens := TokenizeQuery(query, req.Fuzzy)
	if len(queryTokens) == 0 {
		return []Result{}
	}
	// The phrase is rebuilt from the strict tokens so emitted stems never
	// poison the verbatim phrase check.
	phrase := strings.Join(TokenizeQuery(query, false), " ")

	matches := make([]scoredDocument, 0)
	for _, id := range e.order {
		doc := e.docs[id]
		if !e.matchesFilters(doc, req.Filters) {
			continue
		}

		scored := e.scoreDocument(doc, queryTokens, phrase, req.Fuzzy)
		if scored.score <= 0 {
			continue
		}
		matches = append(matches, scored)
	}

	sortByScore(matches)
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}

	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		results = append(results, e.formatResult(m))
	}
	return results
}

func (e *Engine) scoreDocument(doc Document, queryTokens []string, phrase string, fuzzy bool) scoredDocument {
	titleScore, titleSpans := scoreText(doc.Title, queryTokens, fuzzy)
	bodyScore, bodySpans := scoreText(doc.Content, queryTokens, fuzzy)

	score := titleScore*titleWeight + bodyScore

	if phrase != "" {
		if strings.Contains(strings.ToLower(doc.Title), phrase) {
			score += phraseTitleBonus
		}
		if strings.Contains(strings.ToLower(doc.Content), phrase) {
			score += phraseBodyBonus
		}
	}

	// Recency only breaks ties between textual matches; a document that
	// matched nothing stays at zero and is excluded.
	if score > 0 {
		score += e.recencyBonus(doc.UpdatedAt)
	}

	return scoredDocument{
		doc:        doc,
		score:      score,
		titleSpans: titleSpans,
		bodySpans:  bodySpans,
	}
}

// scoreText scores one text (title or body) against the deduplicated query
// tokens. Exact substring occurrences score 2 apiece; when fuzzy matching is
// on and a token had no exact occurrence, whitespace-split words within edit
// distance tolerance score 1 apiece.
func scoreText(text string, queryTokens []string, fuzzy bool) (int, []Highlight) {
	if text == "" {
		return 0, nil
	}

	lowered := foldCase(text)
	score := 0
	var spans []Highlight

	for _, token := range uniqueTokens(queryTokens) {
		exact := 0
		for from := 0; ; {
			idx := strings.Index(lowered[from:], token)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(token)
			spans = append(spans, highlightAt(text, start, end))
			exact++
			from = end
		}
		score += exact * exactMatchScore

		if exact > 0 || !fuzzy {
			continue
		}

		matched, fuzzySpans := fuzzyMatches(text, lowered, token, spans)
		score += matched * fuzzyMatchScore
		spans = append(spans, fuzzySpans...)
	}

	return score, spans
}

// fuzzyMatches scans the whitespace-split words of text for near matches of
// token. A word qualifies when its length is within two characters of the
// token and the Levenshtein distance is at most max(1, 30% of the token
// length). Lengths are counted in runes, not bytes. Spans landing within
// three characters of an existing span are dropped to avoid near-duplicate
// highlights.
func fuzzyMatches(text, lowered, token string, existing []Highlight) (int, []Highlight) {
	tokenLen := utf8.RuneCountInString(token)
	tolerance := tokenLen * 3 / 10
	if tolerance < 1 {
		tolerance = 1
	}

	matched := 0
	var spans []Highlight

	for _, w := range splitWords(lowered) {
		delta := utf8.RuneCountInString(w.text) - tokenLen
		if delta < -fuzzyLengthSlack || delta > fuzzyLengthSlack {
			continue
		}
		if edlib.LevenshteinDistance(w.text, token) > tolerance {
			continue
		}
		if nearExistingSpan(w.start, existing) || nearExistingSpan(w.start, spans) {
			continue
		}
		spans = append(spans, highlightAt(text, w.start, w.start+len(w.text)))
		matched++
	}

	return matched, spans
}

// foldCase lowercases text while keeping every byte offset identical to the
// original: a rune whose lowercase form encodes to a different byte length
// (U+0130, the Kelvin sign) is left as is. strings.ToLower would shift every
// offset after such a rune and misplace the highlight spans built from them.
func foldCase(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		l := unicode.ToLower(r)
		if utf8.RuneLen(l) != utf8.RuneLen(r) {
			l = r
		}
		b.WriteRune(l)
	}
	return b.String()
}

func nearExistingSpan(start int, spans []Highlight) bool {
	for _, s := range spans {
		if start >= s.Start-fuzzySpanGap && start <= s.End+fuzzySpanGap {
			return true
		}
	}
	return false
}

type word struct {
	text  string
	start int
}

// splitWords returns the whitespace-delimited words of text along with their
// byte offsets.
func splitWords(text string) []word {
	var words []word
	start := -1
	for i, r := range text {
		space := r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
		if space {
			if start >= 0 {
				words = append(words, word{text: text[start:i], start: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, word{text: text[start:], start: start})
	}
	return words
}

func highlightAt(text string, start, end int) Highlight {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	return Highlight{Start: start, End: end, Text: text[start:end]}
}

func uniqueTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// recencyBonus rewards freshly edited documents: same day +5, within a week
// +3, within a month +1.
func (e *Engine) recencyBonus(updatedAt time.Time) int {
	age := e.now().Sub(updatedAt)
	switch {
	case age < 24*time.Hour:
		return 5
	case age < 7*24*time.Hour:
		return 3
	case age < 30*24*time.Hour:
		return 1
	default:
		return 0
	}
}

func sortByScore(matches []scoredDocument) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
}

// matchesFilters applies the optional container, date-range, and tag filters.
// A document failing any supplied filter is skipped before scoring.
func (e *Engine) matchesFilters(doc Document, f *Filters) bool {
	if f == nil {
		return true
	}

	if f.ContainerID != "" && !e.inContainerTree(doc.ContainerID, f.ContainerID) {
		return false
	}

	if f.DateRange != nil {
		if doc.UpdatedAt.Before(f.DateRange.Start) || doc.UpdatedAt.After(f.DateRange.End) {
			return false
		}
	}

	if len(f.Tags) > 0 && !matchesTags(doc.Tags, f.Tags) {
		return false
	}

	return true
}

// inContainerTree reports whether containerID equals root or descends from it
// through parent links. Dangling or cyclic parent references terminate the
// walk instead of looping.
func (e *Engine) inContainerTree(containerID, root string) bool {
	visited := make(map[string]struct{})
	for current := containerID; current != ""; {
		if current == root {
			return true
		}
		if _, seen := visited[current]; seen {
			return false
		}
		visited[current] = struct{}{}

		c, ok := e.containers[current]
		if !ok {
			return false
		}
		current = c.ParentID
	}
	return false
}

func matchesTags(docTags, filterTags []string) bool {
	for _, docTag := range docTags {
		lowered := strings.ToLower(docTag)
		for _, want := range filterTags {
			if want == "" {
				continue
			}
			if strings.Contains(lowered, strings.ToLower(want)) {
				return true
			}
		}
	}
	return false
}
