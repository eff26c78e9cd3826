package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

// MemoryStore keeps sessions in a map guarded by a RWMutex. Used in tests.
type MemoryStore struct {
	mu    sync.RWMutex
	store map[uuid.UUID]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{store: map[uuid.UUID]Session{}}
}

func (s *MemoryStore) Save(_ context.Context, session Session, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store[session.ID] = session
	return nil
}

func (s *MemoryStore) Find(_ context.Context, id uuid.UUID) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.store[id]
	if !ok {
		return Session{}, inErrors.ErrSessionNotFound
	}
	return session, nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.store, id)
	return nil
}
