package search

import "time"

// Document is one searchable unit: a note, or a static guide section. The
// engine keeps its own copy keyed by ID and never owns the source of truth.
type Document struct {
	ID          string
	Title       string
	Content     string
	ContainerID string
	Tags        []string
	UpdatedAt   time.Time
}

// Container is a node in the folder tree. A container with an empty ParentID
// sits at the root. Containers exist only to render human-readable paths.
type Container struct {
	ID       string
	Name     string
	ParentID string
}

// Highlight marks a matched range within a document's original, untokenized
// text. Offsets are byte positions into the title or body the match came
// from.
type Highlight struct {
	Start int
	End   int
	Text  string
}

// Result is a presentation-ready search hit.
type Result struct {
	DocumentID    string
	Title         string
	Snippet       string
	MatchCount    int
	ContainerPath string
	LastModified  time.Time
	Highlights    []Highlight
}

// DateRange bounds a last-modified filter. Both bounds are inclusive. An
// inverted range simply matches nothing.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Filters narrows a search before any scoring happens. Each field is
// independently optional and the supplied filters are ANDed together.
type Filters struct {
	// ContainerID matches documents in the container or any descendant.
	ContainerID string
	// DateRange matches documents whose UpdatedAt falls inside the range.
	DateRange *DateRange
	// Tags matches documents having at least one tag that case-insensitively
	// contains at least one of the provided values as a substring.
	Tags []string
}

// Request describes one search invocation.
type Request struct {
	Query      string
	Filters    *Filters
	Fuzzy      bool
	MaxResults int
}

// NewRequest returns a Request with the default knobs applied: fuzzy matching
// on and the standard result cap.
func NewRequest(query string) Request {
	return Request{
		Query:      query,
		Fuzzy:      true,
		MaxResults: defaultMaxResults,
	}
}

// Stats reports lightweight diagnostics about the index.
type Stats struct {
	IndexedDocuments int
	TotalTokens      int
}
