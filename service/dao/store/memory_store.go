// Package store provides a concurrency-safe in-memory keyed store.
package store

import (
	"sort"
	"sync"
)

// MemoryStore keeps *T values by key. Graph descriptions loaded from a URL
// are cached here until refreshed.
type MemoryStore[T any] struct {
	mu      sync.RWMutex
	records map[string]*T
}

// NewMemoryStore creates an empty store
func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{records: make(map[string]*T)}
}

// Put stores or overwrites the value under key; nil values are ignored
func (s *MemoryStore[T]) Put(key string, v *T) {
	if v == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = v
}

// Get returns the value under key
func (s *MemoryStore[T]) Get(key string) (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	return v, ok
}

// Delete removes key
func (s *MemoryStore[T]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
}

// Keys returns the stored keys in sorted order
func (s *MemoryStore[T]) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.records))
	for k := range s.records {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
