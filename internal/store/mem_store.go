package store

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemStore holds collections in memory. Used by tests and by the
// `storage.backend: memory` configuration (throwaway installs).
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (s *MemStore) Load(name string, v interface{}) error {
	s.mu.RLock()
	data, ok := s.data[name]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode collection %s: %w", name, err)
	}
	return nil
}

func (s *MemStore) Save(name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", name, err)
	}
	s.mu.Lock()
	s.data[name] = data
	s.mu.Unlock()
	return nil
}
