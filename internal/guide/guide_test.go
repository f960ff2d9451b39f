package guide

import (
	"strings"
	"testing"
)

func TestLoadIndexesEveryEmbeddedSection(t *testing.T) {
	t.Parallel()

	g, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	sections := g.Sections()
	if len(sections) == 0 {
		t.Fatalf("expected embedded sections to load")
	}
	for _, s := range sections {
		if s.Title == "" || s.Category == "" || s.Body == "" {
			t.Fatalf("incomplete section: %+v", s)
		}
	}
}

func TestGuideSearchFindsRelevantSection(t *testing.T) {
	t.Parallel()

	g, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	results := g.Search("fuzzy typos")
	if len(results) == 0 {
		t.Fatalf("expected a match for fuzzy search help")
	}
	if results[0].Title != "Fuzzy Matching" {
		t.Fatalf("expected the fuzzy matching section first, got %q", results[0].Title)
	}
	if !strings.Contains(results[0].ContainerPath, "Search") {
		t.Fatalf("expected category path, got %q", results[0].ContainerPath)
	}
}

func TestGuideSectionLookup(t *testing.T) {
	t.Parallel()

	g, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	s, ok := g.Section("search/fuzzy-matching.md")
	if !ok {
		t.Fatalf("expected section lookup by id to succeed")
	}
	if s.Category != "search" {
		t.Fatalf("unexpected category: %q", s.Category)
	}

	if _, ok := g.Section("missing.md"); ok {
		t.Fatalf("expected lookup of unknown section to fail")
	}
}
