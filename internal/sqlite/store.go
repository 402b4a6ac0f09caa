// Package sqlite implements a menu store that uses SQLite as the query
// engine and a JSONL file as the source of truth. On Open the database is
// recreated and loaded from dishes.jsonl; every Persist rewrites both.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/dishes/pkg/types"
)

// Compile-time interface checks.
var (
	_ types.Store  = (*Store)(nil)
	_ types.Pinger = (*Store)(nil)
)

// Store persists the menu in dishes.db and dishes.jsonl under a data
// directory.
type Store struct {
	mu      sync.Mutex
	db      *sql.DB
	dataDir string
	closed  bool

	// writeSnapshot replaces dishes.jsonl. Tests swap it to fail the write.
	writeSnapshot func(path string, dishes []string) error
}

// Open creates dataDir if needed, rebuilds the SQLite database, and loads
// dishes.jsonl into it.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "dishes.db")
	// The database is derived state; start from a fresh schema.
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	// One connection keeps writes serialized inside SQLite.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	s := &Store{db: db, dataDir: dataDir, writeSnapshot: writeJSONL}
	if err := s.loadJSONL(); err != nil {
		db.Close()
		return nil, fmt.Errorf("load JSONL: %w", err)
	}
	return s, nil
}

// loadJSONL inserts the records of dishes.jsonl in position order. Duplicate
// names after the first are skipped so a hand-edited file still loads.
func (s *Store) loadJSONL() error {
	records, err := readJSONL(s.jsonlPath())
	if err != nil {
		return err
	}
	slices.SortStableFunc(records, func(a, b dishRecord) int { return a.Position - b.Position })

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for i, rec := range records {
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO dishes (position, name) VALUES (?, ?)", i, rec.Name,
		); err != nil {
			return fmt.Errorf("inserting %q: %w", rec.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// Load returns the dish names ordered by position.
func (s *Store) Load(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, types.ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx, "SELECT name FROM dishes ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying dishes: %w", err)
	}
	defer rows.Close()

	dishes := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning dish: %w", err)
		}
		dishes = append(dishes, name)
	}
	return dishes, rows.Err()
}

// Persist replaces the table contents and then rewrites dishes.jsonl. The
// snapshot is written only after the commit succeeds, so a failed Persist
// never leaves the new menu in the file that Open reloads. If the snapshot
// write fails the table is ahead of the file until the next Persist, which
// replaces the whole table anyway.
func (s *Store) Persist(ctx context.Context, dishes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStoreClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM dishes"); err != nil {
		return fmt.Errorf("clearing dishes: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO dishes (position, name) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()
	for i, name := range dishes {
		if _, err := stmt.ExecContext(ctx, i, name); err != nil {
			return fmt.Errorf("inserting %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing dishes: %w", err)
	}
	if err := s.writeSnapshot(s.jsonlPath(), dishes); err != nil {
		return fmt.Errorf("persisting %s: %w", dishesJSONL, err)
	}
	return nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.ErrStoreClosed
	}
	return s.db.PingContext(ctx)
}

// Close releases the database. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *Store) jsonlPath() string {
	return filepath.Join(s.dataDir, dishesJSONL)
}
