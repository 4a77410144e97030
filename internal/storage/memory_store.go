package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps values in process memory and counts writes per key
type MemoryStore struct {
	mu      sync.Mutex
	values  map[string][]byte
	writes  map[string]int
	removes map[string]int

	// FailWrites makes Set and Remove return this error when non-nil
	FailWrites error
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:  make(map[string][]byte),
		writes:  make(map[string]int),
		removes: make(map[string]int),
	}
}

// Get returns a copy of the stored value
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.values[key] = append([]byte(nil), value...)
	s.writes[key]++
	return nil
}

// Remove deletes keys
func (s *MemoryStore) Remove(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	for _, key := range keys {
		delete(s.values, key)
		s.removes[key]++
	}
	return nil
}

// Writes returns how many times key was written
func (s *MemoryStore) Writes(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[key]
}

// Removes returns how many times key was removed
func (s *MemoryStore) Removes(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removes[key]
}
