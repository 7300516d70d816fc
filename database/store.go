// Package database holds the reference backend's state. It is deliberately
// in-memory: this module only owns the client-observable contract, not a
// persistence engine.
package database

import (
	"sync"
	"time"
)

// MemoryStore - mutex-guarded in-memory object storage.
// K - key type, V - stored object type.
type MemoryStore[K comparable, V any] struct {
	data       map[K]V
	mutex      sync.RWMutex
	lastUpdate map[K]time.Time
}

// NewMemoryStore creates a new storage.
func NewMemoryStore[K comparable, V any]() *MemoryStore[K, V] {
	return &MemoryStore[K, V]{
		data:       make(map[K]V),
		lastUpdate: make(map[K]time.Time),
	}
}

// Set adds or updates an object.
func (s *MemoryStore[K, V]) Set(key K, value V) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[key] = value
	s.lastUpdate[key] = time.Now()
}

// Get returns an object by key.
func (s *MemoryStore[K, V]) Get(key K) (V, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, exists := s.data[key]
	return value, exists
}

// Delete removes an object by key.
func (s *MemoryStore[K, V]) Delete(key K) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.data[key]; !exists {
		return false
	}
	delete(s.data, key)
	delete(s.lastUpdate, key)
	return true
}

// Update applies fn to the stored value under the write lock. Returns false
// when the key does not exist.
func (s *MemoryStore[K, V]) Update(key K, fn func(V) V) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	value, exists := s.data[key]
	if !exists {
		return false
	}
	s.data[key] = fn(value)
	s.lastUpdate[key] = time.Now()
	return true
}

// Len returns the number of stored objects.
func (s *MemoryStore[K, V]) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}
