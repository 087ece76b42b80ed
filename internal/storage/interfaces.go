package storage

import (
	"context"

	"solana-shreds-lab/internal/domain"
)

// ComparisonStore provides access to comparison_runs storage.
type ComparisonStore interface {
	// Insert adds a new run. Returns ErrDuplicateKey if run_id exists.
	Insert(ctx context.Context, c *domain.Comparison) error

	// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, runID string) (*domain.Comparison, error)

	// List retrieves up to limit runs, newest first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]*domain.Comparison, error)
}

// TxRecordStore provides access to tx_records storage.
type TxRecordStore interface {
	// InsertBulk adds multiple records atomically. Fails entire batch on duplicate (run_id, category, seq).
	InsertBulk(ctx context.Context, records []*domain.TxRecord) error

	// GetByRunID retrieves all records of a run, ordered by category then seq.
	GetByRunID(ctx context.Context, runID string) ([]*domain.TxRecord, error)

	// GetByCategory retrieves the records of one category of a run, ordered by seq.
	GetByCategory(ctx context.Context, runID string, category domain.Category) ([]*domain.TxRecord, error)
}
