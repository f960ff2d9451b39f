package find

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/samber/lo"

	"github.com/quillmd/quill/internal/search"
)

type resultItem struct {
	result search.Result
}

func (i resultItem) Title() string {
	if i.result.Title == "" {
		return i.result.DocumentID
	}
	return i.result.Title
}

func (i resultItem) Description() string {
	description := ""
	if i.result.ContainerPath != "" {
		description += fmt.Sprintf("[%s] ", i.result.ContainerPath)
	}
	if i.result.Snippet != "" {
		description += i.result.Snippet
	} else {
		description += i.result.DocumentID
	}
	return description
}

// FilterValue is unused; the query input drives the result set, not the
// list's built-in filter.
func (i resultItem) FilterValue() string {
	return i.result.Title
}

func resultItems(results []search.Result) []list.Item {
	return lo.Map(results, func(r search.Result, _ int) list.Item {
		return resultItem{result: r}
	})
}

func documentItems(docs []search.Document) []list.Item {
	return lo.Map(docs, func(d search.Document, _ int) list.Item {
		return resultItem{result: search.Result{
			DocumentID:   d.ID,
			Title:        d.Title,
			LastModified: d.UpdatedAt,
		}}
	})
}
