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

func TestComparisonStore_InsertAndGet(t *testing.T) {
	store := NewComparisonStore()
	ctx := context.Background()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &domain.Comparison{
		RunID:       "run-1",
		PubsubCount: 1,
		ShredsCount: 1,
		Pubsub:      &domain.Span{Start: start, End: start},
		Shreds:      &domain.Span{Start: start, End: start},
		Verdict:     domain.VerdictEqual,
		CreatedAt:   1000,
	}
	require.NoError(t, store.Insert(ctx, c))

	// Mutating the input must not affect the stored copy
	c.Pubsub.End = start.Add(time.Hour)

	got, err := store.GetByID(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), got.Pubsub.Duration())
	assert.Equal(t, domain.VerdictEqual, got.Verdict)
}

func TestComparisonStore_Errors(t *testing.T) {
	store := NewComparisonStore()
	ctx := context.Background()

	_, err := store.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	c := &domain.Comparison{RunID: "run-1", Verdict: domain.VerdictInsufficient}
	require.NoError(t, store.Insert(ctx, c))
	assert.ErrorIs(t, store.Insert(ctx, c), storage.ErrDuplicateKey)

	assert.ErrorIs(t, store.Insert(ctx, &domain.Comparison{RunID: "x", Verdict: "bogus"}), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.Insert(ctx, nil), storage.ErrInvalidInput)
}

func TestComparisonStore_List(t *testing.T) {
	store := NewComparisonStore()
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Insert(ctx, &domain.Comparison{
			RunID:     id,
			Verdict:   domain.VerdictInsufficient,
			CreatedAt: int64(i),
		}))
	}

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].RunID, all[1].RunID, all[2].RunID})

	two, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}
