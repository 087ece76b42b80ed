package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"solana-shreds-lab/internal/domain"
	"solana-shreds-lab/internal/observability"
	"solana-shreds-lab/internal/storage"
)

// ComparisonStore implements storage.ComparisonStore using PostgreSQL.
type ComparisonStore struct {
	pool *Pool
}

// NewComparisonStore creates a new ComparisonStore.
func NewComparisonStore(pool *Pool) *ComparisonStore {
	return &ComparisonStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ComparisonStore = (*ComparisonStore)(nil)

const comparisonColumns = `
	run_id, pubsub_count, shreds_count,
	pubsub_start_ms, pubsub_end_ms, shreds_start_ms, shreds_end_ms,
	verdict, created_at
`

// Insert adds a new run. Returns ErrDuplicateKey if run_id exists.
func (s *ComparisonStore) Insert(ctx context.Context, c *domain.Comparison) (err error) {
	if c == nil || c.RunID == "" || !c.Verdict.IsValid() {
		return storage.ErrInvalidInput
	}

	start := time.Now()
	defer func() {
		observability.RecordDBQuery("postgres", "insert_comparison", time.Since(start).Seconds(), err)
	}()

	query := `INSERT INTO comparison_runs (` + comparisonColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	pubsubStart, pubsubEnd := spanMillis(c.Pubsub)
	shredsStart, shredsEnd := spanMillis(c.Shreds)

	_, err = s.pool.Exec(ctx, query,
		c.RunID,
		c.PubsubCount,
		c.ShredsCount,
		pubsubStart,
		pubsubEnd,
		shredsStart,
		shredsEnd,
		string(c.Verdict),
		c.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert comparison run: %w", err)
	}
	return nil
}

// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *ComparisonStore) GetByID(ctx context.Context, runID string) (*domain.Comparison, error) {
	query := `SELECT ` + comparisonColumns + ` FROM comparison_runs WHERE run_id = $1`

	c, err := scanComparison(s.pool.QueryRow(ctx, query, runID))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get comparison run by id: %w", err)
	}
	return c, nil
}

// List retrieves up to limit runs, newest first. A non-positive limit returns all runs.
func (s *ComparisonStore) List(ctx context.Context, limit int) ([]*domain.Comparison, error) {
	query := `SELECT ` + comparisonColumns + ` FROM comparison_runs
		ORDER BY created_at DESC, run_id ASC`

	var (
		rows pgx.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.pool.Query(ctx, query+` LIMIT $1`, limit)
	} else {
		rows, err = s.pool.Query(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list comparison runs: %w", err)
	}
	defer rows.Close()

	var result []*domain.Comparison
	for rows.Next() {
		c, err := scanComparison(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comparison run: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comparison runs: %w", err)
	}

	return result, nil
}

// spanMillis converts a span into nullable millisecond bounds.
func spanMillis(s *domain.Span) (*int64, *int64) {
	if s == nil {
		return nil, nil
	}
	start, end := s.Start.UnixMilli(), s.End.UnixMilli()
	return &start, &end
}

// millisSpan is the inverse of spanMillis.
func millisSpan(start, end *int64) *domain.Span {
	if start == nil || end == nil {
		return nil
	}
	return &domain.Span{
		Start: time.UnixMilli(*start).UTC(),
		End:   time.UnixMilli(*end).UTC(),
	}
}

// scanComparison scans a single row into Comparison.
func scanComparison(row pgx.Row) (*domain.Comparison, error) {
	var (
		c                      domain.Comparison
		verdict                string
		pubsubStart, pubsubEnd *int64
		shredsStart, shredsEnd *int64
	)

	err := row.Scan(
		&c.RunID,
		&c.PubsubCount,
		&c.ShredsCount,
		&pubsubStart,
		&pubsubEnd,
		&shredsStart,
		&shredsEnd,
		&verdict,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Verdict = domain.Verdict(verdict)
	c.Pubsub = millisSpan(pubsubStart, pubsubEnd)
	c.Shreds = millisSpan(shredsStart, shredsEnd)
	return &c, nil
}
