package history

import (
	"context"
	"fmt"
	"sync"

	"github.com/jtquiroga/DAA-por-region/internal/export"
	"github.com/jtquiroga/DAA-por-region/pkg/platform/sentinel"
)

// MemoryStore keeps run records in memory, in insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	runs  map[string]export.Run
	order []string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{runs: make(map[string]export.Run)}
}

// Append records a new run.
func (s *MemoryStore) Append(ctx context.Context, run export.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[run.ID]; ok {
		return fmt.Errorf("run %s already exists: %w", run.ID, sentinel.ErrConflict)
	}
	s.runs[run.ID] = run
	s.order = append(s.order, run.ID)
	return nil
}

// Get returns the run with the given ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (export.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return export.Run{}, fmt.Errorf("run %s: %w", id, sentinel.ErrNotFound)
	}
	return run, nil
}

// Update replaces an existing run record.
func (s *MemoryStore) Update(ctx context.Context, run export.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[run.ID]; !ok {
		return fmt.Errorf("run %s: %w", run.ID, sentinel.ErrNotFound)
	}
	s.runs[run.ID] = run
	return nil
}

// List returns up to limit runs, most recently appended first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]export.Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]export.Run, 0, limit)
	for i := len(s.order) - 1; i >= 0 && len(runs) < limit; i-- {
		runs = append(runs, s.runs[s.order[i]])
	}
	return runs, nil
}
