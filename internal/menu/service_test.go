package menu

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/dishes/internal/store"
	"github.com/mesh-intelligence/dishes/pkg/types"
)

func TestNewLoadsAndCleansStore(t *testing.T) {
	s, _ := newTestService(t, "A", " B ", "", "A", "C")
	assert.Equal(t, []string{"A", "B", "C"}, s.List())
	assert.Equal(t, 3, s.Count())
}

func TestNewLoadError(t *testing.T) {
	_, err := New(context.Background(), &fakeStore{loadErr: errDiskFull}, WithLogger(quietLogger()))
	assert.ErrorIs(t, err, errDiskFull)
}

func TestNewSeedsEmptyStore(t *testing.T) {
	fs := &fakeStore{}
	s, err := New(context.Background(), fs, WithLogger(quietLogger()), WithSeed(types.DefaultMenu))
	require.NoError(t, err)

	assert.Equal(t, types.DefaultMenu, s.List())
	assert.Equal(t, types.DefaultMenu, fs.last(), "seed is persisted")
}

func TestNewDoesNotSeedNonEmptyStore(t *testing.T) {
	fs := &fakeStore{loaded: []string{"Only"}}
	s, err := New(context.Background(), fs, WithLogger(quietLogger()), WithSeed(types.DefaultMenu))
	require.NoError(t, err)

	assert.Equal(t, []string{"Only"}, s.List())
	assert.Empty(t, fs.persists)
}

func TestListEmptyIsNonNil(t *testing.T) {
	s, _ := newTestService(t)
	got := s.List()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListReturnsCopy(t *testing.T) {
	s, _ := newTestService(t, "A", "B")
	got := s.List()
	got[0] = "Z"
	assert.Equal(t, []string{"A", "B"}, s.List())
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("appends trimmed name and persists", func(t *testing.T) {
		s, fs := newTestService(t, "A")
		require.NoError(t, s.Add(ctx, "  Pizza "))
		assert.Equal(t, []string{"A", "Pizza"}, s.List())
		assert.Equal(t, []string{"A", "Pizza"}, fs.last())
	})

	t.Run("blank names are rejected", func(t *testing.T) {
		s, fs := newTestService(t, "A")
		for _, name := range []string{"", "   ", "\t\n"} {
			err := s.Add(ctx, name)
			assert.ErrorIs(t, err, types.ErrInvalidName, "name %q", name)
		}
		assert.Equal(t, []string{"A"}, s.List())
		assert.Empty(t, fs.persists)
	})

	t.Run("duplicate is rejected", func(t *testing.T) {
		s, _ := newTestService(t)
		require.NoError(t, s.Add(ctx, "Pizza"))
		err := s.Add(ctx, "Pizza")
		assert.ErrorIs(t, err, types.ErrDuplicate)
		err = s.Add(ctx, " Pizza ")
		assert.ErrorIs(t, err, types.ErrDuplicate, "duplicate after trimming")
		assert.Equal(t, []string{"Pizza"}, s.List())
	})

	t.Run("equality is case sensitive", func(t *testing.T) {
		s, _ := newTestService(t, "pizza")
		require.NoError(t, s.Add(ctx, "Pizza"))
		assert.Equal(t, []string{"pizza", "Pizza"}, s.List())
	})

	t.Run("persist failure leaves menu unchanged", func(t *testing.T) {
		s, fs := newTestService(t, "A")
		fs.failOn = 1
		err := s.Add(ctx, "B")
		assert.ErrorIs(t, err, types.ErrPersist)
		assert.ErrorIs(t, err, errDiskFull)
		assert.Equal(t, []string{"A"}, s.List())
	})
}

func TestRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("removes and keeps order", func(t *testing.T) {
		s, fs := newTestService(t, "A", "B", "C")
		require.NoError(t, s.Remove(ctx, "B"))
		assert.Equal(t, []string{"A", "C"}, s.List())
		assert.Equal(t, []string{"A", "C"}, fs.last())
	})

	t.Run("input is trimmed for comparison", func(t *testing.T) {
		s, _ := newTestService(t, "A", "B")
		require.NoError(t, s.Remove(ctx, "  A\t"))
		assert.Equal(t, []string{"B"}, s.List())
	})

	t.Run("missing dish", func(t *testing.T) {
		s, fs := newTestService(t, "Pizza")
		err := s.Remove(ctx, "Sushi")
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.Equal(t, []string{"Pizza"}, s.List())
		assert.Empty(t, fs.persists)
	})

	t.Run("blank name is not found", func(t *testing.T) {
		s, _ := newTestService(t, "Pizza")
		assert.ErrorIs(t, s.Remove(ctx, "  "), types.ErrNotFound)
	})

	t.Run("persist failure leaves menu unchanged", func(t *testing.T) {
		s, fs := newTestService(t, "A", "B")
		fs.failOn = 1
		assert.ErrorIs(t, s.Remove(ctx, "A"), types.ErrPersist)
		assert.Equal(t, []string{"A", "B"}, s.List())
	})
}

func TestUniquenessUnderOperationSequences(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	ops := []struct {
		add  bool
		name string
	}{
		{true, "A"}, {true, " A"}, {true, "B"}, {false, "A"}, {true, "A "},
		{true, "B"}, {false, "C"}, {true, "C"}, {true, "c"}, {false, " B "},
		{true, "B"}, {true, ""}, {true, "A"},
	}
	for _, op := range ops {
		if op.add {
			_ = s.Add(ctx, op.name)
		} else {
			_ = s.Remove(ctx, op.name)
		}
		assertUnique(t, s.List())
	}
	assert.ElementsMatch(t, []string{"A", "C", "c", "B"}, s.List())
}

func TestConcurrentAddsAreSerialized(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, store.NewMemory(), WithLogger(quietLogger()))
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Each name is attempted twice across goroutines.
			if err := s.Add(ctx, fmt.Sprintf("dish-%d", i%25)); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			} else if !errors.Is(err, types.ErrDuplicate) {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 25, successes)
	assert.Len(t, s.List(), 25)
	assertUnique(t, s.List())
}

func assertUnique(t *testing.T, dishes []string) {
	t.Helper()
	seen := make(map[string]bool, len(dishes))
	for _, d := range dishes {
		require.False(t, seen[types.NormalizeName(d)], "duplicate dish %q in %v", d, dishes)
		require.NotEmpty(t, types.NormalizeName(d))
		seen[types.NormalizeName(d)] = true
	}
}
