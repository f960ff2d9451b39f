package search

import (
	"testing"
	"time"
)

func TestSearchEmptyQueryReturnsNothing(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	e.IndexDocument(testDoc("note", "Anything", "anything at all"))

	for _, query := range []string{"", "   ", "\t\n"} {
		if results := e.Search(NewRequest(query)); len(results) != 0 {
			t.Fatalf("expected no results for query %q, got %+v", query, results)
		}
	}
}

func TestSearchTitleMatchesOutweighBodyMatches(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)

	inTitle := testDoc("in-title", "Roadmap Planning", "we keep one roadmap for the team")
	inBody := testDoc("in-body", "Planning Notes", "we keep one roadmap for the team")
	e.IndexDocument(inBody)
	e.IndexDocument(inTitle)

	results := e.Search(NewRequest("roadmap"))
	if len(results) != 2 {
		t.Fatalf("expected both documents to match, got %d", len(results))
	}
	if results[0].DocumentID != "in-title" {
		t.Fatalf("expected title match to rank first, got %s", results[0].DocumentID)
	}
}

func TestSearchFilterExclusivity(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	doc := testDoc("note", "Kubernetes Deployment", "perfect match on the title")
	doc.UpdatedAt = time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	e.IndexDocument(doc)

	req := NewRequest("kubernetes")
	req.Filters = &Filters{
		DateRange: &DateRange{
			Start: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	if results := e.Search(req); len(results) != 0 {
		t.Fatalf("expected date filter to exclude textual match, got %+v", results)
	}
}

func TestSearchInvertedDateRangeMatchesNothing(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	e.IndexDocument(testDoc("note", "Kubernetes", "content"))

	req := NewRequest("kubernetes")
	req.Filters = &Filters{
		DateRange: &DateRange{
			Start: testNow,
			End:   testNow.AddDate(-1, 0, 0),
		},
	}

	if results := e.Search(req); len(results) != 0 {
		t.Fatalf("expected inverted range to match nothing, got %+v", results)
	}
}

func TestSearchContainerFilterIncludesDescendants(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	e.UpdateContainers([]Container{
		{ID: "dev", Name: "Development"},
		{ID: "dev/go", Name: "Go", ParentID: "dev"},
		{ID: "misc", Name: "Misc"},
	})

	inChild := testDoc("in-child", "Generics Guide", "type parameters")
	inChild.ContainerID = "dev/go"
	other := testDoc("elsewhere", "Generics Guide", "type parameters")
	other.ContainerID = "misc"
	e.IndexDocument(inChild)
	e.IndexDocument(other)

	req := NewRequest("generics")
	req.Filters = &Filters{ContainerID: "dev"}

	results := e.Search(req)
	if len(results) != 1 || results[0].DocumentID != "in-child" {
		t.Fatalf("expected only the descendant-container document, got %+v", results)
	}
}

func TestSearchTagFilterIsSubstringAndCaseInsensitive(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	tagged := testDoc("tagged", "Weekly Review", "review notes")
	tagged.Tags = []string{"Work-Journal"}
	untagged := testDoc("untagged", "Weekly Review", "review notes")
	e.IndexDocument(tagged)
	e.IndexDocument(untagged)

	req := NewRequest("review")
	req.Filters = &Filters{Tags: []string{"journal"}}

	results := e.Search(req)
	if len(results) != 1 || results[0].DocumentID != "tagged" {
		t.Fatalf("expected tag filter to keep only the tagged document, got %+v", results)
	}
}

func TestSearchFuzzyToggle(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	e.IndexDocument(testDoc("js", "JavaScript Basics", "variables, functions, and scope"))

	fuzzy := NewRequest("Javascrpt")
	results := e.Search(fuzzy)
	if len(results) != 1 || results[0].DocumentID != "js" {
		t.Fatalf("expected fuzzy search to find the document, got %+v", results)
	}

	strict := NewRequest("Javascrpt")
	strict.Fuzzy = false
	if results := e.Search(strict); len(results) != 0 {
		t.Fatalf("expected strict search to miss the misspelling, got %+v", results)
	}
}

func TestSearchHighlightOffsetsSurviveCaseFolding(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	// U+0130 lowercases to a longer byte sequence; offsets computed against
	// a plain ToLower copy would shift everything after it.
	e.IndexDocument(testDoc("note", "İstanbul Travel Log", ""))

	strict := NewRequest("travel")
	strict.Fuzzy = false
	results := e.Search(strict)
	if len(results) != 1 {
		t.Fatalf("expected one result, got %+v", results)
	}
	if len(results[0].Highlights) == 0 {
		t.Fatalf("expected a title highlight")
	}
	if got := results[0].Highlights[0].Text; got != "Travel" {
		t.Fatalf("highlight text = %q, want %q", got, "Travel")
	}
}

func TestSearchFuzzyCountsLengthsInRunes(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	e.IndexDocument(testDoc("bistro", "Bistro Orders", "the café menu is handwritten"))
	e.IndexDocument(testDoc("cv", "Career Notes", "resume feedback from the review"))

	// "cafe" is one substitution from "café"; both are four runes long.
	results := e.Search(NewRequest("cafe"))
	if len(results) != 1 || results[0].DocumentID != "bistro" {
		t.Fatalf("expected the accented word to fuzzy-match, got %+v", results)
	}

	// "résumé" is six runes, so its tolerance is 1; "resume" sits at edit
	// distance 2. Counting bytes would stretch the tolerance to 2 and match.
	if results := e.Search(NewRequest("résumé")); len(results) != 0 {
		t.Fatalf("expected no fuzzy match at distance 2, got %+v", results)
	}
}

func TestSearchMaxResultsBound(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	for _, id := range []string{"a", "b", "c"} {
		e.IndexDocument(testDoc(id, "Programming Notes "+id, "programming content"))
	}

	req := NewRequest("programming")
	req.MaxResults = 1
	if results := e.Search(req); len(results) > 1 {
		t.Fatalf("expected at most 1 result, got %d", len(results))
	}
}

func TestSearchRecencyBreaksTies(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)

	older := testDoc("older", "Design Concepts", "core concepts explained")
	older.UpdatedAt = testNow.AddDate(0, 0, -20)
	fresh := testDoc("fresh", "Design Concepts", "core concepts explained")
	fresh.UpdatedAt = testNow.Add(-2 * time.Hour)

	e.IndexDocument(older)
	e.IndexDocument(fresh)

	results := e.Search(NewRequest("concepts"))
	if len(results) != 2 {
		t.Fatalf("expected both documents to match, got %d", len(results))
	}
	if results[0].DocumentID != "fresh" {
		t.Fatalf("expected the recently edited document first, got %s", results[0].DocumentID)
	}
}

func TestSearchEqualScoresPreserveInsertionOrder(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	for _, id := range []string{"first", "second", "third"} {
		e.IndexDocument(testDoc(id, "Identical Title", "identical content"))
	}

	results := e.Search(NewRequest("identical"))
	if len(results) != 3 {
		t.Fatalf("expected all documents to match, got %d", len(results))
	}
	for i, want := range []string{"first", "second", "third"} {
		if results[i].DocumentID != want {
			t.Fatalf("expected insertion order at position %d: got %s, want %s", i, results[i].DocumentID, want)
		}
	}
}

func TestSearchPhraseBonusFavorsVerbatimTitle(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)

	verbatim := testDoc("verbatim", "error handling patterns", "assorted notes")
	scattered := testDoc("scattered", "handling every error", "assorted notes")
	e.IndexDocument(scattered)
	e.IndexDocument(verbatim)

	results := e.Search(NewRequest("error handling"))
	if len(results) != 2 {
		t.Fatalf("expected both documents to match, got %d", len(results))
	}
	if results[0].DocumentID != "verbatim" {
		t.Fatalf("expected the verbatim phrase to rank first, got %s", results[0].DocumentID)
	}
}

func TestSearchUnindexedTermReturnsNothing(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	e.IndexDocument(testDoc("note", "Gardening", "tomatoes and compost"))

	strict := NewRequest("spacecraft")
	strict.Fuzzy = false
	if results := e.Search(strict); len(results) != 0 {
		t.Fatalf("expected zero-score documents to be excluded, got %+v", results)
	}
}
