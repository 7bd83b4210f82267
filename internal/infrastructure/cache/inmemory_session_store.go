package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/legallink/backend/internal/domain/assistant"
	"github.com/legallink/backend/internal/domain/shared"
)

type sessionEntry struct {
	session   *assistant.ChatSession
	expiresAt time.Time
}

// InMemorySessionStore keeps chat sessions in a process-local map.
// Suitable for single-instance deployments and testing; state is not
// shared across instances.
type InMemorySessionStore struct {
	mu        sync.RWMutex
	entries   map[uuid.UUID]sessionEntry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemorySessionStore creates the store and starts a background
// goroutine that evicts expired sessions
func NewInMemorySessionStore(ttl time.Duration) *InMemorySessionStore {
	if ttl <= 0 {
		ttl = assistant.DefaultSessionTTL
	}
	store := &InMemorySessionStore{
		entries:  make(map[uuid.UUID]sessionEntry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Get returns the session and refreshes its expiry. An expired or
// absent session maps to shared.ErrNotFound.
func (s *InMemorySessionStore) Get(ctx context.Context, id uuid.UUID) (*assistant.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[id]
	if !exists || time.Now().After(e.expiresAt) {
		delete(s.entries, id)
		return nil, shared.ErrNotFound
	}

	e.expiresAt = time.Now().Add(s.ttl)
	s.entries[id] = e
	return e.session, nil
}

// Put stores the session with the given TTL, falling back to the
// store's configured TTL when the caller passes zero
func (s *InMemorySessionStore) Put(ctx context.Context, session *assistant.ChatSession, ttl time.Duration) error {
	if session == nil {
		return shared.ErrInvalidInput
	}
	if ttl <= 0 {
		ttl = s.ttl
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[session.ID] = sessionEntry{
		session:   session,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete drops a session. Deleting an absent session is not an error.
func (s *InMemorySessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemorySessionStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// Size returns the number of cached sessions (for testing/monitoring)
func (s *InMemorySessionStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *InMemorySessionStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemorySessionStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}

var _ assistant.SessionStore = (*InMemorySessionStore)(nil)
