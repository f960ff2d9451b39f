package vault

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Task is a markdown checkbox item found in a note.
type Task struct {
	Note string
	Text string
	Done bool
}

// Tasks parses a note's markdown and returns its checkbox items. The note is
// addressed by its vault-relative path.
func (v *Vault) Tasks(rel string) ([]Task, error) {
	path := filepath.Join(v.root, filepath.FromSlash(filepath.Clean(rel)))
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tasks []Task
	parser := goldmark.DefaultParser()
	document := parser.Parse(text.NewReader(source))

	err = ast.Walk(document, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		item, ok := n.(*ast.ListItem)
		if !ok {
			return ast.WalkContinue, nil
		}

		content := strings.TrimSpace(string(item.Text(source)))
		switch {
		case strings.HasPrefix(content, "[ ]"):
			if text := strings.TrimSpace(content[3:]); text != "" {
				tasks = append(tasks, Task{Note: rel, Text: text})
			}
		case strings.HasPrefix(content, "[x]"), strings.HasPrefix(content, "[X]"):
			if text := strings.TrimSpace(content[3:]); text != "" {
				tasks = append(tasks, Task{Note: rel, Text: text, Done: true})
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
