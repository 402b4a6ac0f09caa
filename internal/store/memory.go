package store

import (
	"context"
	"slices"
	"sync"

	"github.com/mesh-intelligence/dishes/pkg/types"
)

var _ types.Store = (*Memory)(nil)

// Memory is a process-local Store. Nothing survives a restart.
type Memory struct {
	mu     sync.Mutex
	dishes []string
	closed bool
}

// NewMemory returns a Memory store preloaded with dishes.
func NewMemory(dishes ...string) *Memory {
	return &Memory{dishes: slices.Clone(dishes)}
}

// Load returns a copy of the held menu.
func (m *Memory) Load(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, types.ErrStoreClosed
	}
	out := make([]string, len(m.dishes))
	copy(out, m.dishes)
	return out, nil
}

// Persist replaces the held menu with a copy of dishes.
func (m *Memory) Persist(_ context.Context, dishes []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return types.ErrStoreClosed
	}
	m.dishes = slices.Clone(dishes)
	return nil
}

// Close marks the store closed. Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
