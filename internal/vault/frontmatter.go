package vault

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var frontMatterRe = regexp.MustCompile(`(?ms)^---\s*\n(.*?)\n---\s*\n?`)

// noteMeta is the front matter the vault cares about. Unknown keys are
// ignored rather than rejected so notes written by other tools still load.
type noteMeta struct {
	Title string
	Tags  []string
}

// splitFrontMatter separates a leading YAML front matter block from the note
// body. Notes without front matter return the full input as the body.
func splitFrontMatter(data []byte) ([]byte, []byte) {
	loc := frontMatterRe.FindSubmatchIndex(data)
	if len(loc) < 4 {
		return nil, data
	}
	return data[loc[2]:loc[3]], data[loc[1]:]
}

// parseFrontMatter extracts the title and tags from a front matter block
// using the yaml node API, tolerating both scalar and sequence tag values.
func parseFrontMatter(fm []byte) (noteMeta, error) {
	var meta noteMeta
	if len(fm) == 0 {
		return meta, nil
	}

	var data yaml.Node
	if err := yaml.Unmarshal(fm, &data); err != nil {
		return noteMeta{}, err
	}

	if data.Kind != yaml.DocumentNode || len(data.Content) == 0 {
		return meta, nil
	}
	mapping := data.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return meta, nil
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		value := mapping.Content[i+1]

		switch key {
		case "title":
			if value.Kind == yaml.ScalarNode {
				meta.Title = strings.TrimSpace(value.Value)
			}
		case "tags":
			meta.Tags = flattenYAMLValue(value)
		}
	}
	return meta, nil
}

func flattenYAMLValue(node *yaml.Node) []string {
	switch node.Kind {
	case yaml.SequenceNode:
		vals := make([]string, 0, len(node.Content))
		for _, child := range node.Content {
			if v := strings.TrimSpace(child.Value); v != "" {
				vals = append(vals, v)
			}
		}
		return vals
	case yaml.ScalarNode:
		if v := strings.TrimSpace(node.Value); v != "" {
			return []string{v}
		}
	}
	return nil
}

// renderFrontMatter produces the front matter block for a freshly created
// note.
func renderFrontMatter(title string, tags []string) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", title)
	if len(tags) > 0 {
		b.WriteString("tags:\n")
		for _, tag := range tags {
			fmt.Fprintf(&b, "  - %s\n", tag)
		}
	}
	fmt.Fprintf(&b, "created: %s\n", time.Now().UTC().Format("2006-01-02"))
	b.WriteString("---\n\n")
	return b.String()
}
