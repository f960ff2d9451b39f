package index

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quillmd/quill/internal/search"
	"github.com/quillmd/quill/internal/vault"
)

func writeTestNote(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestServiceSearchAppliesPendingUpdates(t *testing.T) {
	dir := t.TempDir()
	note := writeTestNote(t, dir, "note.md", "---\ntitle: First\n---\noriginal content")

	svc := NewService(vault.New(dir, nil))

	results, err := svc.Search(search.NewRequest("original"))
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected initial content to be indexed, got %+v", results)
	}

	if err := os.WriteFile(note, []byte("---\ntitle: First\n---\nrevised content"), 0o644); err != nil {
		t.Fatalf("rewrite note: %v", err)
	}

	svc.QueueUpdate("note.md")
	if got := svc.Stats().Pending; got != 1 {
		t.Fatalf("expected pending queue size 1, got %d", got)
	}

	results, err = svc.Search(search.NewRequest("revised"))
	if err != nil {
		t.Fatalf("Search with pending returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected revised content to be searchable, got %+v", results)
	}
	if got := svc.Stats().Pending; got != 0 {
		t.Fatalf("expected pending queue to drain, got %d", got)
	}
}

func TestServiceRemovesDeletedNotes(t *testing.T) {
	dir := t.TempDir()
	note := writeTestNote(t, dir, "doomed.md", "transient content")

	svc := NewService(vault.New(dir, nil))
	if _, err := svc.Search(search.NewRequest("transient")); err != nil {
		t.Fatalf("initial search: %v", err)
	}

	if err := os.Remove(note); err != nil {
		t.Fatalf("remove note: %v", err)
	}
	svc.QueueUpdate("doomed.md")

	results, err := svc.Search(search.NewRequest("transient"))
	if err != nil {
		t.Fatalf("Search after removal returned error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected deleted note to leave the index, got %+v", results)
	}
	if got := svc.Stats().Engine.IndexedDocuments; got != 0 {
		t.Fatalf("expected empty index, got %d documents", got)
	}
}

func TestServiceRebuildsWhenStale(t *testing.T) {
	dir := t.TempDir()
	writeTestNote(t, dir, "note.md", "first wording")

	svc := NewService(vault.New(dir, nil))
	current := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return current }

	if _, err := svc.Search(search.NewRequest("first")); err != nil {
		t.Fatalf("initial search: %v", err)
	}

	// Rewrite the note behind the service's back, then advance past maxAge so
	// the next read triggers a full rebuild.
	writeTestNote(t, dir, "note.md", "second wording")
	current = current.Add(2 * time.Hour)

	results, err := svc.Search(search.NewRequest("second"))
	if err != nil {
		t.Fatalf("Search after staleness returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected stale index to rebuild, got %+v", results)
	}
}

func TestServiceCloseStopsReads(t *testing.T) {
	dir := t.TempDir()
	writeTestNote(t, dir, "note.md", "content")

	svc := NewService(vault.New(dir, nil))
	if err := svc.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	if _, err := svc.Search(search.NewRequest("content")); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed after Close, got %v", err)
	}
	if _, err := svc.Recent(5); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Recent after Close, got %v", err)
	}
}

func TestServiceRecentOrdersByModTime(t *testing.T) {
	dir := t.TempDir()
	older := writeTestNote(t, dir, "older.md", "aged content")
	newer := writeTestNote(t, dir, "newer.md", "fresh content")

	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	_ = newer

	svc := NewService(vault.New(dir, nil))
	recent, err := svc.Recent(1)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != "newer.md" {
		t.Fatalf("expected newest note first, got %+v", recent)
	}
}
