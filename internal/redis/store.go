// Package redis stores the menu as a Redis list. Persist replaces the list
// inside a MULTI/EXEC transaction.
package redis

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/mesh-intelligence/dishes/pkg/types"
)

// DefaultKey is the list key used when none is configured.
const DefaultKey = "dishes:menu"

var (
	_ types.Store  = (*Store)(nil)
	_ types.Pinger = (*Store)(nil)
)

// Store is a types.Store on Redis.
type Store struct {
	rdb *redis.Client
	key string

	mu     sync.RWMutex
	closed bool
}

// Open creates a client from a URL (e.g., "redis://localhost:6379/0") and
// pings it.
func Open(ctx context.Context, redisURL, key string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if key == "" {
		key = DefaultKey
	}

	s := &Store{rdb: redis.NewClient(opts), key: key}
	if err := s.Ping(ctx); err != nil {
		s.rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return s, nil
}

// Load returns the list contents. A missing key is an empty menu.
func (s *Store) Load(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, types.ErrStoreClosed
	}

	dishes, err := s.rdb.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", s.key, err)
	}
	if dishes == nil {
		dishes = []string{}
	}
	return dishes, nil
}

// Persist replaces the list atomically.
func (s *Store) Persist(ctx context.Context, dishes []string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return types.ErrStoreClosed
	}

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(dishes) > 0 {
			vals := make([]any, len(dishes))
			for i, d := range dishes {
				vals[i] = d
			}
			pipe.RPush(ctx, s.key, vals...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace %s: %w", s.key, err)
	}
	return nil
}

// Ping verifies the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return types.ErrStoreClosed
	}
	return s.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.rdb.Close()
}
