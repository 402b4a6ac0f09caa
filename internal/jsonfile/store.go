// Package jsonfile stores the menu as a single JSON document:
//
//	{"menu": [...], "last_updated": "...", "total_dishes": n}
//
// The file is replaced atomically on every Persist.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mesh-intelligence/dishes/internal/atomicfile"
	"github.com/mesh-intelligence/dishes/pkg/types"
)

// FileName is the document name inside the data directory.
const FileName = "menu.json"

var _ types.Store = (*Store)(nil)

// document is the on-disk shape.
type document struct {
	Menu        []string `json:"menu"`
	LastUpdated string   `json:"last_updated"`
	TotalDishes int      `json:"total_dishes"`
}

// Store keeps the menu in one JSON file.
type Store struct {
	mu     sync.Mutex
	path   string
	clock  clockwork.Clock
	closed bool
}

// Open returns a Store writing to dataDir/menu.json. The directory is
// created if needed; the file is created on first Persist.
func Open(dataDir string, clock clockwork.Clock) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &Store{path: filepath.Join(dataDir, FileName), clock: clock}, nil
}

// Path returns the document path.
func (s *Store) Path() string { return s.path }

// Load reads the menu. A missing file is an empty menu.
func (s *Store) Load(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, types.ErrStoreClosed
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.path, err)
	}
	if doc.Menu == nil {
		return []string{}, nil
	}
	return doc.Menu, nil
}

// Persist replaces the document with dishes and the current time.
func (s *Store) Persist(_ context.Context, dishes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStoreClosed
	}

	if dishes == nil {
		dishes = []string{}
	}
	doc := document{
		Menu:        dishes,
		LastUpdated: s.clock.Now().Format(time.RFC3339),
		TotalDishes: len(dishes),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding menu: %w", err)
	}
	return atomicfile.Write(s.path, append(data, '\n'), 0o644)
}

// Close marks the store closed. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
