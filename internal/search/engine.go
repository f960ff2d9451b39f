package search

import (
	"sort"
	"time"
)

const (
	defaultMaxResults  = 50
	defaultRecentLimit = 10
)

// indexEntry is the stored representation of one indexed document: the full
// ordered token list (title tokens followed by body tokens, stems included)
// plus denormalized fields used for cheap filtering.
type indexEntry struct {
	id          string
	tokens      []string
	title       string
	containerID string
	indexedAt   time.Time
}

// Engine is an in-memory full-text index over a document set. It performs no
// locking and no I/O; a single owning coordinator is expected to serialize
// mutations, and reads may observe a partially applied update but never
// crash. State is rebuilt wholesale from the caller's documents on startup.
type Engine struct {
	docs       map[string]Document
	entries    map[string]indexEntry
	containers map[string]Container
	// order preserves document insertion order so equal-scored results stay
	// deterministic for a fixed document set.
	order []string

	now func() time.Time
}

// NewEngine constructs an empty engine.
func NewEngine() *Engine {
	return &Engine{
		docs:       make(map[string]Document),
		entries:    make(map[string]indexEntry),
		containers: make(map[string]Container),
		now:        time.Now,
	}
}

// Initialize replaces all engine state: the previous index, document map, and
// container map are discarded and every provided document is indexed.
func (e *Engine) Initialize(docs []Document, containers []Container) {
	e.ClearIndex()
	e.UpdateContainers(containers)
	for _, doc := range docs {
		e.IndexDocument(doc)
	}
}

// IndexDocument inserts or fully replaces the index entry for the document's
// ID. Re-indexing overwrites the prior entry entirely, so no stale postings
// survive an update.
func (e *Engine) IndexDocument(doc Document) {
	tokens := Tokenize(doc.Title)
	tokens = append(tokens, Tokenize(doc.Content)...)

	if _, exists := e.docs[doc.ID]; !exists {
		e.order = append(e.order, doc.ID)
	}

	e.docs[doc.ID] = doc
	e.entries[doc.ID] = indexEntry{
		id:          doc.ID,
		tokens:      tokens,
		title:       doc.Title,
		containerID: doc.ContainerID,
		indexedAt:   e.now(),
	}
}

// RemoveFromIndex drops the document and its index entry. Removing an unknown
// ID is a no-op.
func (e *Engine) RemoveFromIndex(id string) {
	if _, ok := e.docs[id]; !ok {
		return
	}
	delete(e.docs, id)
	delete(e.entries, id)
	for i, existing := range e.order {
		if existing == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// UpdateContainers replaces the container map wholesale.
func (e *Engine) UpdateContainers(containers []Container) {
	next := make(map[string]Container, len(containers))
	for _, c := range containers {
		next[c.ID] = c
	}
	e.containers = next
}

// ClearIndex empties the index, document map, and insertion order. Containers
// are kept; they are replaced by UpdateContainers.
func (e *Engine) ClearIndex() {
	e.docs = make(map[string]Document)
	e.entries = make(map[string]indexEntry)
	e.order = nil
}

// RecentDocuments returns documents ordered by descending last-modified time,
// truncated to limit. A non-positive limit applies the default of 10.
func (e *Engine) RecentDocuments(limit int) []Document {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	docs := make([]Document, 0, len(e.order))
	for _, id := range e.order {
		docs = append(docs, e.docs[id])
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].UpdatedAt.After(docs[j].UpdatedAt)
	})

	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs
}

// Stats reports the indexed document count and the total number of stored
// tokens across all entries.
func (e *Engine) Stats() Stats {
	total := 0
	for _, entry := range e.entries {
		total += len(entry.tokens)
	}
	return Stats{
		IndexedDocuments: len(e.entries),
		TotalTokens:      total,
	}
}
