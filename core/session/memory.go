package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
type MemoryStore[Data any] struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]Session[Data]
	tokenID map[string]uuid.UUID
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore[Data any]() *MemoryStore[Data] {
	return &MemoryStore[Data]{
		byID:    make(map[uuid.UUID]Session[Data]),
		tokenID: make(map[string]uuid.UUID),
	}
}

// GetByToken returns a copy of the stored session.
func (s *MemoryStore[Data]) GetByToken(_ context.Context, token string) (*Session[Data], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.tokenID[token]
	if !ok {
		return nil, ErrNotFound
	}
	sess := s.byID[id]
	sess.isModified = false
	return &sess, nil
}

// Save inserts or replaces the session.
func (s *MemoryStore[Data]) Save(_ context.Context, sess *Session[Data]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.byID[sess.ID]; ok && prev.Token != sess.Token {
		delete(s.tokenID, prev.Token)
	}
	s.byID[sess.ID] = *sess
	s.tokenID[sess.Token] = sess.ID
	return nil
}

// Delete removes the session. Unknown IDs return ErrNotFound.
func (s *MemoryStore[Data]) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.tokenID, sess.Token)
	delete(s.byID, id)
	return nil
}

// DeleteExpired removes every expired session.
func (s *MemoryStore[Data]) DeleteExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, sess := range s.byID {
		if sess.IsExpired() {
			delete(s.tokenID, sess.Token)
			delete(s.byID, id)
			n++
		}
	}
	return n, nil
}
