package search

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// snippetLength bounds the generated context snippet.
	snippetLength = 150
	// snippetPadding is the context pulled in on each side of the earliest
	// body match when building a snippet.
	snippetPadding = 30
	// highlightMergeGap absorbs a span starting within this many characters
	// of the previous span's end into that span.
	highlightMergeGap = 5
	// containerPathSeparator joins container names root-to-leaf.
	containerPathSeparator = " > "
)

// formatResult turns a scored document into a presentation-ready Result:
// snippet extraction, highlight deduplication, and folder path rendering.
func (e *Engine) formatResult(m scoredDocument) Result {
	highlights := mergeHighlights(m.titleSpans, m.bodySpans)
	return Result{
		DocumentID:    m.doc.ID,
		Title:         m.doc.Title,
		Snippet:       buildSnippet(m.doc.Content, m.bodySpans),
		MatchCount:    len(highlights),
		ContainerPath: e.containerPath(m.doc.ContainerID),
		LastModified:  m.doc.UpdatedAt,
		Highlights:    highlights,
	}
}

// buildSnippet extracts a context window around the earliest body match. With
// no body matches the snippet is simply the head of the body. Window edges are
// clamped to rune starts so a multibyte character is never cut in half.
func buildSnippet(body string, bodySpans []Highlight) string {
	if len(bodySpans) == 0 {
		if len(body) <= snippetLength {
			return body
		}
		return body[:runeFloor(body, snippetLength)] + "..."
	}

	first := bodySpans[0]
	for _, s := range bodySpans[1:] {
		if s.Start < first.Start {
			first = s
		}
	}

	start := runeFloor(body, first.Start-snippetPadding)
	end := runeFloor(body, first.End+snippetPadding)

	snippet := body[start:end]
	if len(snippet) > snippetLength {
		end = runeFloor(body, start+snippetLength)
		snippet = body[start:end]
	}

	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(body) {
		snippet += "..."
	}
	return snippet
}

// runeFloor clamps i into [0, len(s)] and then backs it off to the nearest
// rune start, so slicing s at the result stays valid UTF-8.
func runeFloor(s string, i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// mergeHighlights combines title and body spans, orders them by start offset,
// and absorbs any span starting within highlightMergeGap characters of the
// previous span's end. The returned spans never overlap.
func mergeHighlights(titleSpans, bodySpans []Highlight) []Highlight {
	combined := make([]Highlight, 0, len(titleSpans)+len(bodySpans))
	combined = append(combined, titleSpans...)
	combined = append(combined, bodySpans...)
	if len(combined) == 0 {
		return combined
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Start < combined[j].Start
	})

	merged := make([]Highlight, 0, len(combined))
	merged = append(merged, combined[0])
	for _, span := range combined[1:] {
		last := &merged[len(merged)-1]
		if span.Start <= last.End+highlightMergeGap {
			if span.End > last.End {
				last.End = span.End
			}
			continue
		}
		merged = append(merged, span)
	}
	return merged
}

// containerPath renders the folder path for a container by walking parent
// links to the root. Missing containers terminate the walk and cycles are
// broken by tracking visited ids, so a damaged tree never loops.
func (e *Engine) containerPath(containerID string) string {
	var names []string
	visited := make(map[string]struct{})

	for current := containerID; current != ""; {
		if _, seen := visited[current]; seen {
			break
		}
		visited[current] = struct{}{}

		c, ok := e.containers[current]
		if !ok {
			break
		}
		names = append(names, c.Name)
		current = c.ParentID
	}

	// Collected leaf-first; the rendered path reads root-to-leaf.
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, containerPathSeparator)
}
