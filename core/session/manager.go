package session

import (
	"context"
	"errors"
	"time"
)

// Manager handles session lifecycle including creation, retrieval, and expiration.
// The touch interval determines how often sessions are extended on access,
// reducing write operations to the store.
type Manager[Data any] struct {
	store Store[Data]
	cfg   Config
}

// NewManager creates a session manager backed by store.
func NewManager[Data any](store Store[Data], opts ...Option) *Manager[Data] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Manager[Data]{store: store, cfg: cfg}
}

// New creates a fresh session. It is not persisted until Store is called.
func (m *Manager[Data]) New(_ context.Context, params NewSessionParams) (Session[Data], error) {
	return New[Data](params, m.cfg.TTL)
}

// GetByToken retrieves a session by token and validates expiration.
func (m *Manager[Data]) GetByToken(ctx context.Context, token string) (Session[Data], error) {
	session, err := m.store.GetByToken(ctx, token)
	if err != nil {
		return Session[Data]{}, err
	}

	if session.IsExpired() {
		return Session[Data]{}, ErrExpired
	}

	return *session, nil
}

// Store handles all session persistence based on session state: destroyed
// sessions are deleted, modified ones saved, untouched ones skipped.
func (m *Manager[Data]) Store(ctx context.Context, sess Session[Data]) (Session[Data], error) {
	if sess.IsDeleted() {
		if err := m.store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return sess, errors.Join(ErrDeleteSession, err)
		}
		return sess, nil
	}

	sess.Touch(m.cfg.TTL, m.cfg.TouchInterval)

	if sess.IsModified() {
		if err := m.store.Save(ctx, &sess); err != nil {
			return sess, errors.Join(ErrSaveSession, err)
		}
		sess.isModified = false
	}

	return sess, nil
}

// CleanupExpired removes all expired sessions from the store.
// Should be called periodically to prevent unbounded store growth.
func (m *Manager[Data]) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx)
}

// TTL returns the session time-to-live duration.
func (m *Manager[Data]) TTL() time.Duration {
	return m.cfg.TTL
}
