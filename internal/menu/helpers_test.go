package menu

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// fakeStore records persisted menus and can fail on demand.
type fakeStore struct {
	mu       sync.Mutex
	loaded   []string
	loadErr  error
	persists [][]string
	// failOn makes the n-th Persist call (1-based) fail. Zero disables.
	failOn int
	calls  int
	closed bool
}

func (f *fakeStore) Load(_ context.Context) ([]string, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return slices.Clone(f.loaded), nil
}

func (f *fakeStore) Persist(_ context.Context, dishes []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failOn != 0 && f.calls == f.failOn {
		return errDiskFull
	}
	f.persists = append(f.persists, slices.Clone(dishes))
	return nil
}

func (f *fakeStore) Close() error {
	f.closed = true
	return nil
}

// last returns the most recent successful Persist argument.
func (f *fakeStore) last() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.persists) == 0 {
		return nil
	}
	return f.persists[len(f.persists)-1]
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestService builds a Service over a fakeStore preloaded with dishes
// and a fixed random seed.
func newTestService(t *testing.T, dishes ...string) (*Service, *fakeStore) {
	t.Helper()
	fs := &fakeStore{loaded: dishes}
	s, err := New(context.Background(), fs,
		WithLogger(quietLogger()),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	)
	require.NoError(t, err)
	return s, fs
}
