// Package pebble stores the menu as one JSON-encoded value in a Pebble
// key-value store. Writes are synced before Persist returns.
package pebble

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/mesh-intelligence/dishes/pkg/types"
)

// menuKey holds the encoded menu.
var menuKey = []byte("menu/dishes")

var _ types.Store = (*Store)(nil)

// Store is a types.Store on Pebble.
type Store struct {
	mu     sync.Mutex
	db     *pebble.DB
	closed bool
}

// Open opens (or creates) a Pebble database in dir.
func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble: %w", err)
	}
	return &Store{db: db}, nil
}

// Load decodes the stored menu. A missing key is an empty menu.
func (s *Store) Load(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, types.ErrStoreClosed
	}

	val, closer, err := s.db.Get(menuKey)
	if errors.Is(err, pebble.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get menu: %w", err)
	}
	defer closer.Close()

	dishes := []string{}
	if err := json.Unmarshal(val, &dishes); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	return dishes, nil
}

// Persist writes the menu with pebble.Sync.
func (s *Store) Persist(_ context.Context, dishes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStoreClosed
	}

	if dishes == nil {
		dishes = []string{}
	}
	val, err := json.Marshal(dishes)
	if err != nil {
		return fmt.Errorf("encode menu: %w", err)
	}
	if err := s.db.Set(menuKey, val, pebble.Sync); err != nil {
		return fmt.Errorf("set menu: %w", err)
	}
	return nil
}

// Close closes the database. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
