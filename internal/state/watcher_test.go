package state

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

func TestWatcherReportsNoteChanges(t *testing.T) {
	dir := t.TempDir()

	w, err := NewVaultWatcher(dir)
	if err != nil {
		t.Fatalf("NewVaultWatcher returned error: %v", err)
	}
	defer w.Close()

	var mu sync.Mutex
	var seen []string
	w.OnChange(func(rel string) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, rel)
	})

	path := filepath.Join(dir, "note.md")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatalf("write note: %v", err)
	}

	waitFor(t, 2*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, rel := range seen {
			if rel == "note.md" {
				return true
			}
		}
		return false
	})
}

func TestWatcherIgnoresNonNotes(t *testing.T) {
	dir := t.TempDir()

	w, err := NewVaultWatcher(dir)
	if err != nil {
		t.Fatalf("NewVaultWatcher returned error: %v", err)
	}
	defer w.Close()

	var mu sync.Mutex
	var seen []string
	w.OnChange(func(rel string) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, rel)
	})

	if err := os.WriteFile(filepath.Join(dir, "image.png"), []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "real.md"), []byte("note"), 0o644); err != nil {
		t.Fatalf("write note: %v", err)
	}

	waitFor(t, 2*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, rel := range seen {
			if rel == "real.md" {
				return true
			}
		}
		return false
	})

	mu.Lock()
	defer mu.Unlock()
	for _, rel := range seen {
		if rel == "image.png" {
			t.Fatalf("expected non-note changes to be filtered, saw %v", seen)
		}
	}
}

func TestWatcherRejectsEmptyVault(t *testing.T) {
	t.Parallel()

	if _, err := NewVaultWatcher("   "); err == nil {
		t.Fatalf("expected empty vault path to be rejected")
	}
}
