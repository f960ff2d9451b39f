package state

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// VaultWatcher watches a vault directory tree and reports changed paths
// relative to the vault root. Newly created directories are added to the
// watch set on the fly.
type VaultWatcher struct {
	watcher *fsnotify.Watcher
	vault   string
	done    chan struct{}
	once    sync.Once

	mu       sync.Mutex
	onChange func(string)
}

// NewVaultWatcher constructs and starts a recursive watcher rooted at vault.
func NewVaultWatcher(vault string) (*VaultWatcher, error) {
	cleaned := filepath.Clean(strings.TrimSpace(vault))
	if cleaned == "" || cleaned == "." {
		return nil, errors.New("vault directory cannot be empty")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	vw := &VaultWatcher{
		watcher: w,
		vault:   cleaned,
		done:    make(chan struct{}),
	}

	if err := vw.addRecursive(cleaned); err != nil {
		_ = vw.Close()
		return nil, err
	}

	go vw.loop()
	return vw, nil
}

// OnChange registers the callback invoked with each changed vault-relative
// path. Replacing the callback is safe while the watcher runs.
func (w *VaultWatcher) OnChange(fn func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Close stops the watcher. Safe to call more than once.
func (w *VaultWatcher) Close() error {
	if w == nil {
		return nil
	}
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *VaultWatcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; the next rebuild repairs any
			// missed events.
		}
	}
}

func (w *VaultWatcher) handle(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addRecursive(event.Name)
		}
	}

	if !w.isRelevant(event) {
		return
	}

	rel, err := filepath.Rel(w.vault, event.Name)
	if err != nil || rel == "" || strings.HasPrefix(rel, "..") {
		return
	}

	w.mu.Lock()
	fn := w.onChange
	w.mu.Unlock()
	if fn != nil {
		fn(filepath.ToSlash(rel))
	}
}

func (w *VaultWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}

	// Directories matter for folder-tree refreshes; files only when they are
	// notes.
	if filepath.Ext(base) == ".md" {
		return true
	}
	info, err := os.Stat(event.Name)
	if err != nil {
		// Removed or renamed away and not a note; a later rebuild refreshes
		// the folder tree.
		return false
	}
	return info.IsDir()
}

func (w *VaultWatcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if name := filepath.Base(path); path != root && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}
