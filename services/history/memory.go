package history

import (
	"context"
	"sync"

	"tripplanner/models"
)

// MemoryStore is a mutex-guarded in-memory history store, suitable for a
// single client session and for tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]models.HistoryEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]models.HistoryEntry)}
}

var _ Store = (*MemoryStore)(nil)

// Replace swaps the cached entries for the key wholesale.
func (s *MemoryStore) Replace(_ context.Context, key string, entries []models.HistoryEntry) error {
	copied := append([]models.HistoryEntry(nil), entries...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = copied
	return nil
}

// List returns the cached entries for the key, or nil if nothing is cached.
func (s *MemoryStore) List(_ context.Context, key string) ([]models.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	return append([]models.HistoryEntry(nil), entries...), nil
}
