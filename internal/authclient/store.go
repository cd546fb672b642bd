package authclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nfrund/gobyauth/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SessionStore records which session ids are still live. Tokens carry
// their own expiry; the store is what makes sign-out stick. Delete reports
// domain.ErrSessionNotFound for ids that are not live.
type SessionStore interface {
	Save(ctx context.Context, id string, ttl time.Duration) error
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// MemorySessionStore keeps sessions in process memory. Suitable for a
// single instance and for tests.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]time.Time
	now      func() time.Time
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Save(_ context.Context, id string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = s.now().Add(ttl)
	return nil
}

func (s *MemorySessionStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	expires, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if !s.now().Before(expires) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	expires, ok := s.sessions[id]
	delete(s.sessions, id)
	if !ok || !s.now().Before(expires) {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (s *MemorySessionStore) Close() error { return nil }

// RedisSessionStore keeps sessions in Redis so several instances share
// sign-outs. Keys expire with the session.
type RedisSessionStore struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisSessionStore wraps an existing Redis client.
func NewRedisSessionStore(rdb redis.UniversalClient) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, prefix: "gobyauth:session:"}
}

func (s *RedisSessionStore) key(id string) string { return s.prefix + id }

func (s *RedisSessionStore) Save(ctx context.Context, id string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, s.key(id), "1", ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Exists(ctx context.Context, id string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("lookup session: %w", err)
	}
	return n > 0, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	n, err := s.rdb.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (s *RedisSessionStore) Close() error { return s.rdb.Close() }
