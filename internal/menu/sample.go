package menu

import (
	"github.com/mesh-intelligence/dishes/pkg/types"
)

// Sample returns min(count, Count()) distinct dishes chosen uniformly at
// random without replacement. Counts larger than the menu are clamped. An
// empty menu yields an empty slice. Order of the result is random.
func (s *Service) Sample(count int) ([]string, error) {
	if count < 1 {
		s.metrics.Observe("sample", types.ErrInvalidCount)
		return nil, types.ErrInvalidCount
	}

	pool := s.List()
	k := min(count, len(pool))

	s.rngMu.Lock()
	partialShuffle(pool, k, s.rng.IntN)
	s.rngMu.Unlock()

	s.metrics.Observe("sample", nil)
	return pool[:k:k], nil
}

// partialShuffle runs the first k steps of a Fisher-Yates shuffle so that
// pool[:k] is a uniform random k-subset of pool in random order. intN must
// return a uniform value in [0, n).
func partialShuffle(pool []string, k int, intN func(n int) int) {
	n := len(pool)
	for i := 0; i < k; i++ {
		j := i + intN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
}
