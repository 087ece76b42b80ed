package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-shreds-lab/internal/domain"
	"solana-shreds-lab/internal/storage"
)

func txRecord(runID string, category domain.Category, seq int, id int64) *domain.TxRecord {
	return &domain.TxRecord{
		RunID:     runID,
		Category:  category,
		Seq:       seq,
		Timestamp: time.Date(2024, 1, 1, 0, 0, seq, 0, time.UTC),
		ID:        id,
	}
}

func TestTxRecordStore_InsertBulkAndGet(t *testing.T) {
	store := NewTxRecordStore()
	ctx := context.Background()

	assert.NoError(t, store.InsertBulk(ctx, nil))

	require.NoError(t, store.InsertBulk(ctx, []*domain.TxRecord{
		txRecord("run-1", domain.CategoryShreds, 1, 11),
		txRecord("run-1", domain.CategoryShreds, 0, 10),
		txRecord("run-1", domain.CategoryPubsub, 0, 20),
		txRecord("run-2", domain.CategoryPubsub, 0, 30),
	}))

	all, err := store.GetByRunID(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(20), all[0].ID)
	assert.Equal(t, int64(10), all[1].ID)
	assert.Equal(t, int64(11), all[2].ID)

	shreds, err := store.GetByCategory(ctx, "run-1", domain.CategoryShreds)
	require.NoError(t, err)
	require.Len(t, shreds, 2)
	assert.Equal(t, 0, shreds[0].Seq)

	none, err := store.GetByRunID(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTxRecordStore_InsertBulk_Atomic(t *testing.T) {
	store := NewTxRecordStore()
	ctx := context.Background()

	require.NoError(t, store.InsertBulk(ctx, []*domain.TxRecord{
		txRecord("run-1", domain.CategoryPubsub, 0, 1),
	}))

	// Existing duplicate fails the whole batch
	err := store.InsertBulk(ctx, []*domain.TxRecord{
		txRecord("run-1", domain.CategoryPubsub, 1, 2),
		txRecord("run-1", domain.CategoryPubsub, 0, 1),
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	got, err := store.GetByRunID(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// Intra-batch duplicate
	err = store.InsertBulk(ctx, []*domain.TxRecord{
		txRecord("run-2", domain.CategoryShreds, 0, 1),
		txRecord("run-2", domain.CategoryShreds, 0, 2),
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	err = store.InsertBulk(ctx, []*domain.TxRecord{txRecord("run-3", "other", 0, 1)})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}
