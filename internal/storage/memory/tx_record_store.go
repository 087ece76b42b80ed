package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"solana-shreds-lab/internal/domain"
	"solana-shreds-lab/internal/storage"
)

// TxRecordStore is an in-memory implementation of storage.TxRecordStore.
type TxRecordStore struct {
	mu   sync.RWMutex
	data map[string]*domain.TxRecord // keyed by composite key
}

// NewTxRecordStore creates a new in-memory tx record store.
func NewTxRecordStore() *TxRecordStore {
	return &TxRecordStore{
		data: make(map[string]*domain.TxRecord),
	}
}

// txRecordKey generates a unique key for a record.
func txRecordKey(runID string, category domain.Category, seq int) string {
	return fmt.Sprintf("%s|%s|%d", runID, category, seq)
}

// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
func (s *TxRecordStore) InsertBulk(_ context.Context, records []*domain.TxRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Track keys in this batch to detect intra-batch duplicates
	batchKeys := make(map[string]struct{}, len(records))

	// First pass: validate and check for duplicates (existing + intra-batch)
	for _, r := range records {
		if r == nil || r.RunID == "" || !r.Category.IsValid() {
			return storage.ErrInvalidInput
		}
		key := txRecordKey(r.RunID, r.Category, r.Seq)

		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	// Second pass: insert all
	for _, r := range records {
		rec := *r
		s.data[txRecordKey(r.RunID, r.Category, r.Seq)] = &rec
	}

	return nil
}

// GetByRunID retrieves all records of a run, ordered by category then seq.
func (s *TxRecordStore) GetByRunID(_ context.Context, runID string) ([]*domain.TxRecord, error) {
	return s.collect(func(r *domain.TxRecord) bool {
		return r.RunID == runID
	}), nil
}

// GetByCategory retrieves the records of one category of a run, ordered by seq.
func (s *TxRecordStore) GetByCategory(_ context.Context, runID string, category domain.Category) ([]*domain.TxRecord, error) {
	return s.collect(func(r *domain.TxRecord) bool {
		return r.RunID == runID && r.Category == category
	}), nil
}

func (s *TxRecordStore) collect(match func(*domain.TxRecord) bool) []*domain.TxRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.TxRecord
	for _, r := range s.data {
		if match(r) {
			rec := *r
			result = append(result, &rec)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Category != result[j].Category {
			return result[i].Category < result[j].Category
		}
		return result[i].Seq < result[j].Seq
	})

	return result
}

var _ storage.TxRecordStore = (*TxRecordStore)(nil)
