package storage

import (
	"context"
	"errors"
	"sync"

	socialapp "github.com/legallink/backend/internal/application/social"
)

// StubObjectStorage keeps objects in memory. Use for development and
// tests until a real bucket is configured.
type StubObjectStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		objects: make(map[string][]byte),
	}
}

var _ socialapp.ObjectStorage = (*StubObjectStorage)(nil)

// Upload stores the object in memory
func (s *StubObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.objects[storageKey] = stored
	return nil
}

// Delete removes the object. Deleting an absent key is not an error.
func (s *StubObjectStorage) Delete(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, storageKey)
	return nil
}

// ObjectExists reports whether the key has been uploaded
func (s *StubObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.objects[storageKey]
	return ok, nil
}

// Get returns a stored object's bytes (for tests)
func (s *StubObjectStorage) Get(storageKey string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[storageKey]
	return data, ok
}
