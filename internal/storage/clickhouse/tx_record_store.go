package clickhouse

import (
	"context"
	"fmt"
	"time"

	"solana-shreds-lab/internal/domain"
	"solana-shreds-lab/internal/observability"
	"solana-shreds-lab/internal/storage"
)

// TxRecordStore implements storage.TxRecordStore using ClickHouse.
type TxRecordStore struct {
	conn *Conn
}

// NewTxRecordStore creates a new TxRecordStore.
func NewTxRecordStore(conn *Conn) *TxRecordStore {
	return &TxRecordStore{conn: conn}
}

// Compile-time interface check.
var _ storage.TxRecordStore = (*TxRecordStore)(nil)

// InsertBulk adds multiple records. Fails entire batch on duplicate (run_id, category, seq).
func (s *TxRecordStore) InsertBulk(ctx context.Context, records []*domain.TxRecord) (err error) {
	if len(records) == 0 {
		return nil
	}

	start := time.Now()
	defer func() {
		observability.RecordDBQuery("clickhouse", "insert_tx_records", time.Since(start).Seconds(), err)
	}()

	// Check for intra-batch duplicates
	type key struct {
		runID    string
		category domain.Category
		seq      int
	}
	seen := make(map[key]struct{}, len(records))
	for _, r := range records {
		if r == nil || r.RunID == "" || !r.Category.IsValid() || r.Seq < 0 {
			return storage.ErrInvalidInput
		}
		k := key{r.RunID, r.Category, r.Seq}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// A run is written in one batch, so one existing row means a duplicate run.
	runs := make(map[string]struct{})
	for _, r := range records {
		if _, checked := runs[r.RunID]; checked {
			continue
		}
		runs[r.RunID] = struct{}{}

		exists, err := s.exists(ctx, r.RunID)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO tx_records (
			run_id, category, seq, timestamp_ms, tx_id
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range records {
		err = batch.Append(
			r.RunID, string(r.Category), uint32(r.Seq),
			r.TimestampMs(), r.ID,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByRunID retrieves all records of a run, ordered by category then seq.
func (s *TxRecordStore) GetByRunID(ctx context.Context, runID string) ([]*domain.TxRecord, error) {
	query := `
		SELECT run_id, category, seq, timestamp_ms, tx_id
		FROM tx_records
		WHERE run_id = ?
		ORDER BY category ASC, seq ASC
	`

	rows, err := s.conn.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query by run id: %w", err)
	}
	defer rows.Close()

	return scanTxRecords(rows)
}

// GetByCategory retrieves the records of one category of a run, ordered by seq.
func (s *TxRecordStore) GetByCategory(ctx context.Context, runID string, category domain.Category) ([]*domain.TxRecord, error) {
	query := `
		SELECT run_id, category, seq, timestamp_ms, tx_id
		FROM tx_records
		WHERE run_id = ? AND category = ?
		ORDER BY seq ASC
	`

	rows, err := s.conn.Query(ctx, query, runID, string(category))
	if err != nil {
		return nil, fmt.Errorf("query by category: %w", err)
	}
	defer rows.Close()

	return scanTxRecords(rows)
}

// exists checks if any record of the run is stored.
func (s *TxRecordStore) exists(ctx context.Context, runID string) (bool, error) {
	query := `SELECT count(*) FROM tx_records WHERE run_id = ?`

	var count uint64
	if err := s.conn.QueryRow(ctx, query, runID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// scanTxRecords scans multiple rows.
func scanTxRecords(rows chRows) ([]*domain.TxRecord, error) {
	var records []*domain.TxRecord

	for rows.Next() {
		var r domain.TxRecord
		var category string
		var seq uint32
		var timestampMs int64

		if err := rows.Scan(&r.RunID, &category, &seq, &timestampMs, &r.ID); err != nil {
			return nil, fmt.Errorf("scan tx record row: %w", err)
		}

		r.Category = domain.Category(category)
		r.Seq = int(seq)
		r.Timestamp = time.UnixMilli(timestampMs).UTC()
		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tx record rows: %w", err)
	}

	return records, nil
}
