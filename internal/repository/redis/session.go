package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rrens/rag-query-client/internal/domain"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps the session token in Redis, shared by every client
// process pointed at the same instance
type SessionStore struct {
	client *Client
}

// NewSessionStore creates a new Redis-backed session store
func NewSessionStore(client *Client) *SessionStore {
	return &SessionStore{client: client}
}

// Get retrieves the value stored under key
func (s *SessionStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.rdb.Get(ctx, s.client.key(sessionKeyPrefix, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session value: %w", err)
	}
	return value, nil
}

// Set stores value under key without expiry
func (s *SessionStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.rdb.Set(ctx, s.client.key(sessionKeyPrefix, key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set session value: %w", err)
	}
	return nil
}
