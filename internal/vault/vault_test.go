package vault

import (
	"os"
	"path/filepath"
	"testing"
)

func writeNote(t testing.TB, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write note %s: %v", path, err)
	}
	return path
}

func TestLoadProducesDocumentsAndContainers(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeNote(t, root, "inbox.md", "---\ntitle: Inbox\n---\nloose thoughts")
	writeNote(t, root, "dev/go/generics.md", "---\ntitle: Generics\ntags:\n  - go\n  - language\n---\ntype parameters")
	writeNote(t, root, "dev/readme.txt", "not a note")

	v := New(root, nil)
	docs, containers, err := v.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d: %+v", len(docs), docs)
	}

	byID := make(map[string]int)
	for i, doc := range docs {
		byID[doc.ID] = i
	}

	generics := docs[byID["dev/go/generics.md"]]
	if generics.Title != "Generics" {
		t.Fatalf("expected front matter title, got %q", generics.Title)
	}
	if generics.ContainerID != "dev/go" {
		t.Fatalf("expected container dev/go, got %q", generics.ContainerID)
	}
	if len(generics.Tags) != 2 || generics.Tags[0] != "go" {
		t.Fatalf("unexpected tags: %v", generics.Tags)
	}

	inbox := docs[byID["inbox.md"]]
	if inbox.ContainerID != "" {
		t.Fatalf("expected root container for inbox note, got %q", inbox.ContainerID)
	}

	// Intermediate folders materialize too, so container paths always walk
	// back to the root.
	ids := make(map[string]string)
	for _, c := range containers {
		ids[c.ID] = c.ParentID
	}
	if parent, ok := ids["dev/go"]; !ok || parent != "dev" {
		t.Fatalf("expected dev/go with parent dev, got %+v", containers)
	}
	if parent, ok := ids["dev"]; !ok || parent != "" {
		t.Fatalf("expected dev at the root, got %+v", containers)
	}
}

func TestLoadSkipsIgnoredAndHiddenFolders(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeNote(t, root, "keep.md", "kept")
	writeNote(t, root, "archive/old.md", "archived")
	writeNote(t, root, ".obsidian/settings.md", "internal")

	v := New(root, []string{"archive"})
	docs, _, err := v.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(docs) != 1 || docs[0].ID != "keep.md" {
		t.Fatalf("expected only keep.md, got %+v", docs)
	}
}

func TestLoadNoteWithoutFrontMatter(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeNote(t, root, "plain-note.md", "just a body, no metadata")

	v := New(root, nil)
	doc, err := v.LoadNote("plain-note.md")
	if err != nil {
		t.Fatalf("LoadNote returned error: %v", err)
	}

	if doc.Title != "plain-note" {
		t.Fatalf("expected file name fallback title, got %q", doc.Title)
	}
	if doc.Content != "just a body, no metadata" {
		t.Fatalf("unexpected body: %q", doc.Content)
	}
}

func TestCreateWritesFrontMatterAndRejectsDuplicates(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	v := New(root, nil)

	rel, err := v.Create("Meeting Notes!", []string{"work", "work"}, "journal")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rel != "journal/meeting-notes.md" {
		t.Fatalf("unexpected note path: %q", rel)
	}

	doc, err := v.LoadNote(rel)
	if err != nil {
		t.Fatalf("LoadNote returned error: %v", err)
	}
	if doc.Title != "Meeting Notes!" {
		t.Fatalf("expected title round-trip, got %q", doc.Title)
	}
	if len(doc.Tags) != 1 || doc.Tags[0] != "work" {
		t.Fatalf("expected deduplicated tags, got %v", doc.Tags)
	}

	if _, err := v.Create("Meeting Notes", nil, "journal"); err == nil {
		t.Fatalf("expected duplicate note creation to fail")
	}
}

func TestTasksExtractsCheckboxes(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeNote(t, root, "todo.md", "# Plan\n\n- [ ] write tests\n- [x] draft outline\n- plain item\n")

	v := New(root, nil)
	tasks, err := v.Tasks("todo.md")
	if err != nil {
		t.Fatalf("Tasks returned error: %v", err)
	}

	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %+v", tasks)
	}
	if tasks[0].Text != "write tests" || tasks[0].Done {
		t.Fatalf("unexpected open task: %+v", tasks[0])
	}
	if tasks[1].Text != "draft outline" || !tasks[1].Done {
		t.Fatalf("unexpected done task: %+v", tasks[1])
	}
}
