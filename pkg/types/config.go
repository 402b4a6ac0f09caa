package types

import "errors"

// Config holds backend selection and parameters for opening a Store.
type Config struct {
	Backend     string `json:"backend" yaml:"backend"`
	DataDir     string `json:"data_dir" yaml:"data_dir"`
	PostgresDSN string `json:"postgres_dsn,omitempty" yaml:"postgres_dsn,omitempty"`
	RedisURL    string `json:"redis_url,omitempty" yaml:"redis_url,omitempty"`
	RedisKey    string `json:"redis_key,omitempty" yaml:"redis_key,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite   = "sqlite"
	BackendJSON     = "json"
	BackendPostgres = "postgres"
	BackendPebble   = "pebble"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDSNRequired    = errors.New("postgres backend requires postgres_dsn")
	ErrRedisURLEmpty  = errors.New("redis backend requires redis_url")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite:   true,
	BackendJSON:     true,
	BackendPostgres: true,
	BackendPebble:   true,
	BackendRedis:    true,
	BackendMemory:   true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Backend == BackendPostgres && c.PostgresDSN == "" {
		return ErrDSNRequired
	}
	if c.Backend == BackendRedis && c.RedisURL == "" {
		return ErrRedisURLEmpty
	}
	return nil
}
