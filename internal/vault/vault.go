package vault

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/quillmd/quill/internal/search"
)

// ErrNotNote marks paths that exist but are not markdown notes, such as
// directories or attachments.
var ErrNotNote = errors.New("vault: not a note")

// Vault is the on-disk note store: markdown files with YAML front matter
// inside a root directory, where subdirectories act as folders. Document ids
// and container ids are vault-relative slash paths, which keeps them stable
// across machines.
type Vault struct {
	root    string
	ignored []string
}

// New constructs a vault rooted at the provided directory. Folders named in
// ignored are skipped while walking, alongside anything dot-prefixed.
func New(root string, ignored []string) *Vault {
	return &Vault{
		root:    filepath.Clean(root),
		ignored: ignored,
	}
}

// Root returns the vault's root directory.
func (v *Vault) Root() string {
	return v.root
}

// Load walks the vault and produces the document and container sets used to
// initialize a search engine. Unreadable notes abort the walk; a vault that
// cannot be read fully should not silently produce a partial index.
func (v *Vault) Load() ([]search.Document, []search.Container, error) {
	var docs []search.Document
	containerIDs := make(map[string]struct{})

	err := filepath.Walk(v.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		name := filepath.Base(path)
		if info.IsDir() {
			if path != v.root && (strings.HasPrefix(name, ".") || v.isIgnored(name)) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(name, ".") || filepath.Ext(name) != ".md" {
			return nil
		}

		rel, err := filepath.Rel(v.root, path)
		if err != nil {
			return err
		}

		doc, err := v.loadNoteFile(path, filepath.ToSlash(rel), info.ModTime())
		if err != nil {
			return fmt.Errorf("vault: loading %s: %w", rel, err)
		}

		docs = append(docs, doc)
		containerIDs[doc.ContainerID] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, buildContainers(containerIDs), nil
}

// Containers walks only the folder structure and returns container records
// for every non-ignored directory. Cheaper than Load when documents are
// already indexed and just the folder tree needs refreshing.
func (v *Vault) Containers() ([]search.Container, error) {
	ids := make(map[string]struct{})

	err := filepath.Walk(v.root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() || p == v.root {
			return nil
		}
		name := filepath.Base(p)
		if strings.HasPrefix(name, ".") || v.isIgnored(name) {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(v.root, p)
		if err != nil {
			return err
		}
		ids[filepath.ToSlash(rel)] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return buildContainers(ids), nil
}

// LoadNote reads a single note by its vault-relative path and returns the
// searchable document for it.
func (v *Vault) LoadNote(rel string) (search.Document, error) {
	rel = filepath.ToSlash(filepath.Clean(rel))
	path := filepath.Join(v.root, filepath.FromSlash(rel))

	info, err := os.Stat(path)
	if err != nil {
		return search.Document{}, err
	}
	if info.IsDir() || filepath.Ext(path) != ".md" {
		return search.Document{}, ErrNotNote
	}

	return v.loadNoteFile(path, rel, info.ModTime())
}

// Create writes a new note with front matter into the given folder and
// returns its vault-relative path. An empty folder places the note at the
// vault root.
func (v *Vault) Create(title string, tags []string, folder string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", fmt.Errorf("vault: note title cannot be empty")
	}

	dir := v.root
	if folder != "" {
		dir = filepath.Join(v.root, filepath.FromSlash(folder))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("vault: creating folder %s: %w", folder, err)
		}
	}

	path := filepath.Join(dir, fileNameForTitle(title))
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("vault: note %s already exists", filepath.Base(path))
	}

	content := renderFrontMatter(title, lo.Uniq(tags))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("vault: writing note: %w", err)
	}

	rel, err := filepath.Rel(v.root, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Delete removes a note by its vault-relative path.
func (v *Vault) Delete(rel string) error {
	path := filepath.Join(v.root, filepath.FromSlash(filepath.Clean(rel)))
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("vault: deleting %s: %w", rel, err)
	}
	return nil
}

func (v *Vault) loadNoteFile(path, rel string, modTime time.Time) (search.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return search.Document{}, err
	}

	fm, body := splitFrontMatter(data)
	meta, err := parseFrontMatter(fm)
	if err != nil {
		return search.Document{}, fmt.Errorf("parse front matter: %w", err)
	}

	title := meta.Title
	if title == "" {
		title = titleFromFileName(rel)
	}

	return search.Document{
		ID:          rel,
		Title:       title,
		Content:     string(body),
		ContainerID: containerIDFor(rel),
		Tags:        meta.Tags,
		UpdatedAt:   modTime.UTC(),
	}, nil
}

func (v *Vault) isIgnored(name string) bool {
	for _, ignored := range v.ignored {
		if ignored != "" && strings.EqualFold(name, ignored) {
			return true
		}
	}
	return false
}

// containerIDFor maps a vault-relative note path to its folder id. Notes at
// the vault root live in the "" container.
func containerIDFor(rel string) string {
	dir := filepath.ToSlash(filepath.Dir(rel))
	if dir == "." {
		return ""
	}
	return dir
}

// buildContainers materializes container records for every folder holding a
// note, including intermediate folders, so paths always resolve to the root.
func buildContainers(ids map[string]struct{}) []search.Container {
	expanded := make(map[string]struct{})
	for id := range ids {
		for id != "" {
			expanded[id] = struct{}{}
			id = parentContainerID(id)
		}
	}

	containers := make([]search.Container, 0, len(expanded))
	for id := range expanded {
		containers = append(containers, search.Container{
			ID:       id,
			Name:     path.Base(id),
			ParentID: parentContainerID(id),
		})
	}

	sort.Slice(containers, func(i, j int) bool { return containers[i].ID < containers[j].ID })
	return containers
}

func parentContainerID(id string) string {
	idx := strings.LastIndex(id, "/")
	if idx < 0 {
		return ""
	}
	return id[:idx]
}

func fileNameForTitle(title string) string {
	name := strings.ToLower(strings.TrimSpace(title))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, name)
	name = strings.Trim(name, "-")
	if name == "" {
		name = "untitled"
	}
	return name + ".md"
}

func titleFromFileName(rel string) string {
	base := path.Base(rel)
	return strings.TrimSuffix(base, ".md")
}
