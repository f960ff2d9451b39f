package utils

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

var inputRe = regexp.MustCompile(`^[a-zA-Z0-9-_]+$`)

// ValidateInput splits a space-separated value list, rejecting entries with
// anything beyond alphanumerics, hyphens, and underscores.
func ValidateInput(input string) ([]string, error) {
	if input == "" {
		return []string{}, nil
	}

	items := strings.Split(input, " ")
	for _, item := range items {
		if !inputRe.MatchString(item) {
			return nil, fmt.Errorf(
				"invalid input '%s': input must only contain alphanumeric characters, hyphens, and underscores",
				item,
			)
		}
	}
	return items, nil
}

// RenderMarkdownPreview reads a markdown file and renders it with terminal
// styling for preview panes. Errors come back as displayable text because
// preview panes have nowhere better to put them.
func RenderMarkdownPreview(path string, w, h int) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return "Error reading file"
	}
	return RenderMarkdown(string(content), w)
}

const (
	// previewHorizontalSpace accounts for the document margin glamour adds
	// around rendered output.
	previewHorizontalSpace = 2
	defaultWrapWidth       = 100
)

// RenderMarkdown renders markdown source with terminal styling.
func RenderMarkdown(content string, w int) string {
	wrap := defaultWrapWidth
	if w > 0 && w-previewHorizontalSpace < wrap {
		wrap = w - previewHorizontalSpace
	}
	if wrap <= 0 {
		wrap = defaultWrapWidth
	}

	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(wrap),
		glamour.WithColorProfile(termenv.ANSI256),
	)

	rendered, err := r.Render(content)
	if err != nil {
		return "Error rendering markdown"
	}
	return rendered
}
