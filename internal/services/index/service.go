package index

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/quillmd/quill/internal/search"
	"github.com/quillmd/quill/internal/vault"
)

// ErrClosed signals that the index service has been shut down.
var ErrClosed = errors.New("index service closed")

// ErrUnavailable indicates that the search index has not been built yet.
var ErrUnavailable = errors.New("search index unavailable")

// Stats captures lightweight instrumentation about the shared index.
type Stats struct {
	LastRebuild time.Time
	Pending     int
	Engine      search.Stats
}

// Service owns the search engine for a vault and serializes all mutations to
// it. The engine itself performs no locking; every write funnels through this
// service, so readers see at worst a momentarily stale index.
type Service struct {
	mu          sync.RWMutex
	vault       *vault.Vault
	engine      *search.Engine
	pending     map[string]struct{}
	lastRebuild time.Time
	built       bool
	closed      bool

	now    func() time.Time
	maxAge time.Duration
}

// NewService constructs an index service over the provided vault.
func NewService(v *vault.Vault) *Service {
	return &Service{
		vault:   v,
		engine:  search.NewEngine(),
		pending: make(map[string]struct{}),
		now:     time.Now,
		maxAge:  time.Hour,
	}
}

// Search evaluates a query against a fresh index, rebuilding or applying
// queued updates first as needed.
func (s *Service) Search(req search.Request) ([]search.Result, error) {
	if err := s.ensureFresh(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.engine.Search(req), nil
}

// Recent returns the most recently modified documents.
func (s *Service) Recent(limit int) ([]search.Document, error) {
	if err := s.ensureFresh(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.engine.RecentDocuments(limit), nil
}

// QueueUpdate schedules a vault-relative path for incremental reindexing.
func (s *Service) QueueUpdate(rel string) {
	if s == nil {
		return
	}

	trimmed := strings.TrimSpace(rel)
	if trimmed == "" {
		return
	}
	normalized := filepath.ToSlash(trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.pending == nil {
		s.pending = make(map[string]struct{})
	}
	s.pending[normalized] = struct{}{}
}

// Stats reports index lifecycle and engine diagnostics.
func (s *Service) Stats() Stats {
	if s == nil {
		return Stats{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		LastRebuild: s.lastRebuild,
		Pending:     len(s.pending),
		Engine:      s.engine.Stats(),
	}
}

// Close releases the service. Subsequent reads return ErrClosed.
func (s *Service) Close() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.pending = nil
	return nil
}

func (s *Service) ensureFresh() error {
	if s == nil {
		return ErrUnavailable
	}

	s.mu.RLock()
	closed := s.closed
	needsRebuild := !s.built
	if !needsRebuild && s.maxAge > 0 {
		needsRebuild = s.now().Sub(s.lastRebuild) > s.maxAge
	}
	hasPending := len(s.pending) > 0
	s.mu.RUnlock()

	if closed {
		return ErrClosed
	}

	if needsRebuild {
		return s.rebuild()
	}
	if hasPending {
		return s.applyPending()
	}
	return nil
}

func (s *Service) rebuild() error {
	docs, containers, err := s.vault.Load()
	if err != nil {
		return fmt.Errorf("build search index: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	s.engine.Initialize(docs, containers)
	s.pending = make(map[string]struct{})
	s.built = true
	s.lastRebuild = s.now()
	return nil
}

func (s *Service) applyPending() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if !s.built {
		return ErrUnavailable
	}

	pending := s.pending
	s.pending = make(map[string]struct{})

	refreshContainers := false
	for rel := range pending {
		doc, err := s.vault.LoadNote(rel)
		switch {
		case err == nil:
			s.engine.IndexDocument(doc)
			refreshContainers = true
		case errors.Is(err, fs.ErrNotExist):
			s.engine.RemoveFromIndex(rel)
		case errors.Is(err, vault.ErrNotNote):
			// Folder events carry no document; the tree refresh below picks
			// up created and renamed directories.
			refreshContainers = true
		default:
			return fmt.Errorf("update %s: %w", rel, err)
		}
	}

	if refreshContainers {
		containers, err := s.vault.Containers()
		if err != nil {
			return fmt.Errorf("refresh containers: %w", err)
		}
		s.engine.UpdateContainers(containers)
	}
	return nil
}
