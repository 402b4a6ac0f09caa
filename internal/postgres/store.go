// Package postgres stores the menu in a PostgreSQL table through a pgx
// connection pool.
package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mesh-intelligence/dishes/pkg/types"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var (
	_ types.Store  = (*Store)(nil)
	_ types.Pinger = (*Store)(nil)
)

// Store is a types.Store on PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to dsn, verifies the connection, and applies the embedded
// migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	slog.InfoContext(ctx, "Database connected", "max_conns", poolCfg.MaxConns)
	return s, nil
}

// migrate applies every embedded migration in name order. Migrations are
// written to be re-runnable.
func (s *Store) migrate(ctx context.Context) error {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		sqlBytes, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := s.pool.Exec(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// Load returns the dish names ordered by position.
func (s *Store) Load(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT name FROM dishes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query dishes: %w", err)
	}
	dishes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan dishes: %w", err)
	}
	if dishes == nil {
		dishes = []string{}
	}
	return dishes, nil
}

// Persist replaces the table contents in one transaction.
func (s *Store) Persist(ctx context.Context, dishes []string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, `DELETE FROM dishes`); err != nil {
		return fmt.Errorf("clear dishes: %w", err)
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"dishes"},
		[]string{"position", "name"},
		pgx.CopyFromSlice(len(dishes), func(i int) ([]any, error) {
			return []any{int32(i), dishes[i]}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("insert dishes: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit dishes: %w", err)
	}
	return nil
}

// Ping checks the pool.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
