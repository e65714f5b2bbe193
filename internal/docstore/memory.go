package docstore

import (
	"context"
	"sync"

	"document-qa/internal/helper"
	"document-qa/internal/models"
)

// MemoryStore keeps records in a process-local map. It is the default
// backend and what tests use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*models.Record
}

func NewMemory() *MemoryStore {
	return &MemoryStore{records: make(map[string]*models.Record)}
}

func (s *MemoryStore) Put(_ context.Context, rec *models.Record) (string, error) {
	id, err := helper.GenerateUUID()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = rec
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
