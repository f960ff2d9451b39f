package guide

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quillmd/quill/internal/search"
)

//go:embed content
var contentFS embed.FS

// revision is the last-modified stamp applied to every embedded section.
// Bundled content has no file times, and a fixed date keeps guide ranking
// stable across builds.
var revision = time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

// Section is one page of the bundled user guide.
type Section struct {
	ID       string
	Title    string
	Category string
	Body     string
}

type sectionMeta struct {
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
}

// Guide serves the embedded user guide through its own search engine
// instance, the same engine that indexes notes. Categories stand in for
// folders.
type Guide struct {
	engine   *search.Engine
	sections map[string]Section
}

// Load parses the embedded content and indexes every section.
func Load() (*Guide, error) {
	g := &Guide{
		engine:   search.NewEngine(),
		sections: make(map[string]Section),
	}

	var docs []search.Document
	categories := make(map[string]struct{})

	err := fs.WalkDir(contentFS, "content", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".md" {
			return nil
		}

		data, err := contentFS.ReadFile(p)
		if err != nil {
			return err
		}

		section, err := parseSection(strings.TrimPrefix(p, "content/"), data)
		if err != nil {
			return fmt.Errorf("guide: parsing %s: %w", p, err)
		}

		g.sections[section.ID] = section
		categories[section.Category] = struct{}{}
		docs = append(docs, search.Document{
			ID:          section.ID,
			Title:       section.Title,
			Content:     section.Body,
			ContainerID: section.Category,
			UpdatedAt:   revision,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	containers := make([]search.Container, 0, len(categories))
	for category := range categories {
		containers = append(containers, search.Container{
			ID:   category,
			Name: categoryName(category),
		})
	}

	g.engine.Initialize(docs, containers)
	return g, nil
}

// Search runs a query over the guide. Fuzzy matching stays on; guide queries
// come from users who do not know the exact wording.
func (g *Guide) Search(query string) []search.Result {
	return g.engine.Search(search.NewRequest(query))
}

// Section returns one guide page by id.
func (g *Guide) Section(id string) (Section, bool) {
	s, ok := g.sections[id]
	return s, ok
}

// Sections lists every guide page ordered by category then title.
func (g *Guide) Sections() []Section {
	out := make([]Section, 0, len(g.sections))
	for _, s := range g.sections {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Title < out[j].Title
	})
	return out
}

var sectionFrontMatterRe = regexp.MustCompile(`(?ms)^---\s*\n(.*?)\n---\s*\n?`)

func parseSection(id string, data []byte) (Section, error) {
	body := data
	var meta sectionMeta

	if loc := sectionFrontMatterRe.FindSubmatchIndex(data); len(loc) >= 4 {
		if err := yaml.Unmarshal(data[loc[2]:loc[3]], &meta); err != nil {
			return Section{}, err
		}
		body = data[loc[1]:]
	}

	if meta.Title == "" {
		meta.Title = strings.TrimSuffix(path.Base(id), ".md")
	}
	if meta.Category == "" {
		meta.Category = path.Dir(id)
	}

	return Section{
		ID:       id,
		Title:    meta.Title,
		Category: meta.Category,
		Body:     string(body),
	}, nil
}

// categoryName renders a category id like "getting-started" as a display
// name.
func categoryName(id string) string {
	words := strings.Split(strings.ReplaceAll(id, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
