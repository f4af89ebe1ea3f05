package session

import (
	"context"
	"sync"

	"github.com/madhupandey29/shopy-admin-api/internal/draft"
)

// MemoryStore keeps staged records in process memory. Useful for tests and
// single-instance deployments that accept losing drafts on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]draft.StagedRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]draft.StagedRecord)}
}

func (s *MemoryStore) Put(_ context.Context, key string, rec *draft.StagedRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = *rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (*draft.StagedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	if !ok {
		return nil, ErrNotStaged
	}
	out := rec
	return &out, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}
