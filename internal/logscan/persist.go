package logscan

import (
	"context"
	"fmt"

	"solana-shreds-lab/internal/domain"
	"solana-shreds-lab/internal/storage"
)

// Persist stores one analysis run. The comparison and every record are
// stamped with runID. Either store may be nil to skip it. Records are
// written before the comparison so a listed run always has its records.
func Persist(
	ctx context.Context,
	comparisons storage.ComparisonStore,
	records storage.TxRecordStore,
	runID string,
	c *domain.Comparison,
	pubsub, shreds []domain.TxRecord,
) error {
	if runID == "" || c == nil {
		return storage.ErrInvalidInput
	}

	if records != nil {
		batch := make([]*domain.TxRecord, 0, len(pubsub)+len(shreds))
		for _, set := range [][]domain.TxRecord{pubsub, shreds} {
			for i := range set {
				rec := set[i]
				rec.RunID = runID
				batch = append(batch, &rec)
			}
		}
		if err := records.InsertBulk(ctx, batch); err != nil {
			return fmt.Errorf("store tx records: %w", err)
		}
	}

	if comparisons != nil {
		run := *c
		run.RunID = runID
		if err := comparisons.Insert(ctx, &run); err != nil {
			return fmt.Errorf("store comparison: %w", err)
		}
	}

	return nil
}
