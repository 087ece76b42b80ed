package memory

import (
	"context"
	"sort"
	"sync"

	"solana-shreds-lab/internal/domain"
	"solana-shreds-lab/internal/storage"
)

// ComparisonStore is an in-memory implementation of storage.ComparisonStore.
type ComparisonStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Comparison // keyed by run_id
}

// NewComparisonStore creates a new in-memory comparison store.
func NewComparisonStore() *ComparisonStore {
	return &ComparisonStore{
		data: make(map[string]*domain.Comparison),
	}
}

// cloneComparison copies c including its spans.
func cloneComparison(c *domain.Comparison) *domain.Comparison {
	out := *c
	if c.Pubsub != nil {
		span := *c.Pubsub
		out.Pubsub = &span
	}
	if c.Shreds != nil {
		span := *c.Shreds
		out.Shreds = &span
	}
	return &out
}

// Insert adds a new run. Returns ErrDuplicateKey if run_id exists.
func (s *ComparisonStore) Insert(_ context.Context, c *domain.Comparison) error {
	if c == nil || c.RunID == "" || !c.Verdict.IsValid() {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[c.RunID]; exists {
		return storage.ErrDuplicateKey
	}

	s.data[c.RunID] = cloneComparison(c)
	return nil
}

// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *ComparisonStore) GetByID(_ context.Context, runID string) (*domain.Comparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.data[runID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return cloneComparison(c), nil
}

// List retrieves up to limit runs, newest first.
func (s *ComparisonStore) List(_ context.Context, limit int) ([]*domain.Comparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Comparison, 0, len(s.data))
	for _, c := range s.data {
		result = append(result, cloneComparison(c))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt != result[j].CreatedAt {
			return result[i].CreatedAt > result[j].CreatedAt
		}
		return result[i].RunID < result[j].RunID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

var _ storage.ComparisonStore = (*ComparisonStore)(nil)
