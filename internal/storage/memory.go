package storage

import (
	"errors"
	"sync"
)

var errWriteRefused = errors.New("write refused")

// MemoryStore is a map-backed KVStore used in tests
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string

	// FailWrites makes Set and Delete return a *WriteError, for testing
	// write-failure propagation
	FailWrites bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		return &WriteError{Key: key, Err: errWriteRefused}
	}

	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		return &WriteError{Key: key, Err: errWriteRefused}
	}

	delete(s.values, key)
	return nil
}
