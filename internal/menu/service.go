package menu

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/mesh-intelligence/dishes/internal/metrics"
	"github.com/mesh-intelligence/dishes/pkg/types"
)

// Service owns the canonical menu.
type Service struct {
	mu     sync.RWMutex
	dishes []string
	store  types.Store

	rngMu sync.Mutex
	rng   *rand.Rand

	logger  *slog.Logger
	metrics *metrics.MenuMetrics
	seed    []string

	// betweenRenameSteps runs after a rename's remove step commits and
	// before its add step starts. Tests use it to interleave writers.
	betweenRenameSteps func()
}

// Option configures a Service.
type Option func(*Service)

// WithRand sets the random source used by Sample.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rng = r }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMetrics records operation counts and menu size.
func WithMetrics(m *metrics.MenuMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithSeed seeds an empty store with dishes on startup.
func WithSeed(dishes []string) Option {
	return func(s *Service) { s.seed = slices.Clone(dishes) }
}

// New loads the menu from store and returns a ready Service. Stored entries
// that break the naming rules are dropped with a warning. If the store is
// empty and WithSeed was given, the seed is persisted as the initial menu.
func New(ctx context.Context, store types.Store, opts ...Option) (*Service, error) {
	s := &Service{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		now := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(now, now>>1|1))
	}
	loaded, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}
	clean, dropped := types.Dedupe(loaded)
	if dropped > 0 {
		s.logger.WarnContext(ctx, "Dropped invalid or duplicate stored dishes", "dropped", dropped)
	}
	s.dishes = clean

	if len(s.dishes) == 0 && len(s.seed) > 0 {
		clean, _ := types.Dedupe(s.seed)
		if err := store.Persist(ctx, clean); err != nil {
			return nil, fmt.Errorf("seed menu: %w", err)
		}
		s.dishes = clean
		s.logger.InfoContext(ctx, "Seeded default menu", "count", len(clean))
	}

	s.metrics.SetSize(len(s.dishes))
	return s, nil
}

// List returns a copy of the menu in insertion order.
func (s *Service) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.dishes))
	copy(out, s.dishes)
	return out
}

// Count returns the number of dishes on the menu.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.dishes)
}

// Add appends name to the menu after trimming it. It returns ErrInvalidName
// for a blank name and ErrDuplicate when the name is already present. A
// store failure leaves the menu unchanged and wraps ErrPersist.
func (s *Service) Add(ctx context.Context, name string) error {
	err := s.add(ctx, name)
	s.metrics.Observe("add", err)
	return err
}

func (s *Service) add(ctx context.Context, name string) error {
	n, err := types.ValidateName(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.dishes, n) {
		return fmt.Errorf("%w: %q", types.ErrDuplicate, n)
	}

	next := append(slices.Clone(s.dishes), n)
	if err := s.persistLocked(ctx, next); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "Dish added", "dish", n, "count", len(s.dishes))
	return nil
}

// Remove deletes the dish matching name after trimming. It returns
// ErrNotFound when no dish matches. The relative order of the remaining
// dishes is kept.
func (s *Service) Remove(ctx context.Context, name string) error {
	err := s.remove(ctx, name)
	s.metrics.Observe("remove", err)
	return err
}

func (s *Service) remove(ctx context.Context, name string) error {
	n := types.NormalizeName(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.dishes, n)
	if n == "" || i < 0 {
		return fmt.Errorf("%w: %q", types.ErrNotFound, n)
	}

	next := slices.Delete(slices.Clone(s.dishes), i, i+1)
	if err := s.persistLocked(ctx, next); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "Dish removed", "dish", n, "count", len(s.dishes))
	return nil
}

// persistLocked writes next to the store and swaps it in on success.
// Callers hold s.mu.
func (s *Service) persistLocked(ctx context.Context, next []string) error {
	if err := s.store.Persist(ctx, next); err != nil {
		return fmt.Errorf("%w: %w", types.ErrPersist, err)
	}
	s.dishes = next
	s.metrics.SetSize(len(next))
	return nil
}
