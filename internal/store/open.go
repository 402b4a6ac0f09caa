// Package store opens the backing store selected by a types.Config.
package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/dishes/internal/jsonfile"
	"github.com/mesh-intelligence/dishes/internal/pebble"
	"github.com/mesh-intelligence/dishes/internal/postgres"
	"github.com/mesh-intelligence/dishes/internal/redis"
	"github.com/mesh-intelligence/dishes/internal/sqlite"
	"github.com/mesh-intelligence/dishes/pkg/types"
)

// Open validates cfg and opens its backend. The caller must Close the
// returned store.
func Open(ctx context.Context, cfg types.Config) (types.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		s   types.Store
		err error
	)
	switch cfg.Backend {
	case types.BackendSQLite:
		s, err = sqlite.Open(cfg.DataDir)
	case types.BackendJSON:
		s, err = jsonfile.Open(cfg.DataDir, nil)
	case types.BackendPebble:
		s, err = pebble.Open(filepath.Join(dataDirOrCWD(cfg.DataDir), "pebble"))
	case types.BackendPostgres:
		s, err = postgres.Open(ctx, cfg.PostgresDSN)
	case types.BackendRedis:
		s, err = redis.Open(ctx, cfg.RedisURL, cfg.RedisKey)
	case types.BackendMemory:
		s = NewMemory()
	default:
		err = types.ErrBackendUnknown
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	return s, nil
}

func dataDirOrCWD(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
