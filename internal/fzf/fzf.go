package fzf

import (
	"fmt"
	"path/filepath"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/quillmd/quill/internal/vault"
	"github.com/quillmd/quill/utils"
)

// FuzzyFinder wraps the interactive note picker with a markdown preview
// pane.
type FuzzyFinder struct {
	vault  *vault.Vault
	header string
}

func NewFuzzyFinder(v *vault.Vault, header string) *FuzzyFinder {
	return &FuzzyFinder{vault: v, header: header}
}

// Run presents the picker and returns the selected note's vault-relative
// path.
func (f *FuzzyFinder) Run(query string) (string, error) {
	docs, _, err := f.vault.Load()
	if err != nil {
		return "", fmt.Errorf("listing notes: %w", err)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("no notes in vault")
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i < 0 {
				return ""
			}
			path := filepath.Join(f.vault.Root(), filepath.FromSlash(docs[i].ID))
			return utils.RenderMarkdownPreview(path, w/2, h)
		}),
	}
	if f.header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.header))
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}

	idx, err := fuzzyfinder.Find(docs, func(i int) string {
		if docs[i].Title != "" {
			return fmt.Sprintf("%s (%s)", docs[i].Title, docs[i].ID)
		}
		return docs[i].ID
	}, options...)
	if err != nil {
		return "", err
	}

	return docs[idx].ID, nil
}
