// Package testing provides test doubles for the store package.
package testing

import (
	"fmt"
	"sync"
)

// FakeStore is an in-memory key-value store with failure injection.
type FakeStore struct {
	mu         sync.Mutex
	data       map[string][]byte
	Writes     map[string]int
	FailReads  bool
	FailWrites bool
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		data:   make(map[string][]byte),
		Writes: make(map[string]int),
	}
}

// Get returns the stored bytes for key.
func (s *FakeStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailReads {
		return nil, false, fmt.Errorf("fake read failure for %s", key)
	}
	data, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

// Set stores data under key.
func (s *FakeStore) Set(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		return fmt.Errorf("fake write failure for %s", key)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.data[key] = cp
	s.Writes[key]++
	return nil
}

// Put seeds raw content, bypassing failure injection and write counting.
func (s *FakeStore) Put(key, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = []byte(content)
}

// Raw returns the stored content for key as a string.
func (s *FakeStore) Raw(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.data[key])
}

// WriteCount returns how many successful writes key has seen.
func (s *FakeStore) WriteCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Writes[key]
}
