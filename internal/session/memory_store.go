package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Expired entries are dropped
// lazily when read or when Prune runs.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Identity
	now      func() time.Time
}

// NewMemoryStore creates an empty in-process session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Identity),
		now:      time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Identity, error) {
	s.mu.RLock()
	identity, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNoSession
	}
	if identity.Expired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	return &identity, nil
}

func (s *MemoryStore) Set(_ context.Context, id string, identity Identity, ttl time.Duration) error {
	if identity.ExpiresAt.IsZero() {
		identity.ExpiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = identity
	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Prune removes every expired session and returns how many were dropped.
func (s *MemoryStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	dropped := 0
	for id, identity := range s.sessions {
		if identity.Expired(now) {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}

var _ Store = (*MemoryStore)(nil)
