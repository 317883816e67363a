package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/contactform/core/session"
)

// KV is the subset of redis.Cmdable used by SessionStore.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// minTTL keeps already-expired sessions readable long enough for the
// manager to report them as expired instead of missing.
const minTTL = time.Second

// SessionStore persists sessions as JSON with a TTL that follows ExpiresAt.
// Two keys are written per session: token -> payload and id -> token.
type SessionStore[Data any] struct {
	kv     KV
	prefix string
}

// NewSessionStore creates a session store on top of a Redis client.
func NewSessionStore[Data any](kv KV, prefix string) *SessionStore[Data] {
	return &SessionStore[Data]{kv: kv, prefix: prefix}
}

func (s *SessionStore[Data]) tokenKey(token string) string {
	return s.prefix + "session:token:" + token
}

func (s *SessionStore[Data]) idKey(id uuid.UUID) string {
	return s.prefix + "session:id:" + id.String()
}

// GetByToken loads a session. Missing keys map to session.ErrNotFound.
func (s *SessionStore[Data]) GetByToken(ctx context.Context, token string) (*session.Session[Data], error) {
	raw, err := s.kv.Get(ctx, s.tokenKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess session.Session[Data]
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

// Save writes both keys with the remaining lifetime as TTL.
func (s *SessionStore[Data]) Save(ctx context.Context, sess *session.Session[Data]) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	ttl := max(time.Until(sess.ExpiresAt), minTTL)

	if err := s.kv.Set(ctx, s.tokenKey(sess.Token), raw, ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	if err := s.kv.Set(ctx, s.idKey(sess.ID), sess.Token, ttl).Err(); err != nil {
		return fmt.Errorf("set session index: %w", err)
	}
	return nil
}

// Delete removes the session by ID. Unknown IDs return session.ErrNotFound.
func (s *SessionStore[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	token, err := s.kv.Get(ctx, s.idKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return session.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get session index: %w", err)
	}

	if err := s.kv.Del(ctx, s.tokenKey(token), s.idKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts keys on TTL.
func (s *SessionStore[Data]) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}
