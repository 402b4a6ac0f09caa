package types

import (
	"context"
	"errors"
)

// Store is the backing store for a menu. The menu service holds the live
// copy; a Store only loads it at startup and persists it after each
// successful mutation.
type Store interface {
	// Load returns the persisted menu in insertion order. A store that has
	// never been written returns an empty slice and no error.
	Load(ctx context.Context) ([]string, error)

	// Persist replaces the stored menu with dishes. Implementations must
	// either store the full sequence or leave the previous one intact.
	Persist(ctx context.Context, dishes []string) error

	// Close releases backend resources. Close is idempotent.
	Close() error
}

// Pinger is implemented by stores that can report connectivity. The HTTP
// readiness probe runs it when available.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ErrStoreClosed is returned by Store operations after Close.
var ErrStoreClosed = errors.New("store is closed")
