package verification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-shreds-lab/internal/domain"
	"solana-shreds-lab/internal/logscan"
	"solana-shreds-lab/internal/storage/memory"
)

func storeRun(t *testing.T, comparisons *memory.ComparisonStore, records *memory.TxRecordStore, runID string, text string) {
	t.Helper()
	pubsub, shreds, err := logscan.Classify(text)
	require.NoError(t, err)
	c := logscan.Compare(pubsub, shreds)
	require.NoError(t, logscan.Persist(context.Background(), comparisons, records, runID, c, pubsub, shreds))
}

const sampleLog = "[2024-01-01T00:00:00.000Z INFO] pubsub: 1\n" +
	"[2024-01-01T00:00:02.000Z INFO] pubsub: 2\n" +
	"[2024-01-01T00:00:00.500Z INFO] algo: 3\n" +
	"[2024-01-01T00:00:01.000Z INFO] algo: 4\n"

func TestReplayVerifier_VerifyRun_Match(t *testing.T) {
	comparisons, records := memory.NewComparisonStore(), memory.NewTxRecordStore()
	storeRun(t, comparisons, records, "run-1", sampleLog)

	result, err := NewReplayVerifier(comparisons, records).VerifyRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.True(t, result.Match)
	assert.Empty(t, result.Divergences)
}

func TestReplayVerifier_VerifyRun_Divergent(t *testing.T) {
	comparisons, records := memory.NewComparisonStore(), memory.NewTxRecordStore()
	ctx := context.Background()

	// Stored summary disagrees with the stored records
	require.NoError(t, comparisons.Insert(ctx, &domain.Comparison{
		RunID:   "run-bad",
		Verdict: domain.VerdictInsufficient,
	}))
	pubsub, shreds, err := logscan.Classify(sampleLog)
	require.NoError(t, err)
	require.NoError(t, logscan.Persist(ctx, nil, records, "run-bad", logscan.Compare(pubsub, shreds), pubsub, shreds))

	result, err := NewReplayVerifier(comparisons, records).VerifyRun(ctx, "run-bad")
	require.NoError(t, err)
	assert.False(t, result.Match)

	fields := make([]string, 0, len(result.Divergences))
	for _, d := range result.Divergences {
		fields = append(fields, d.Field)
	}
	assert.Equal(t, []string{"PubsubCount", "ShredsCount", "Pubsub", "Shreds", "Verdict"}, fields)
}

func TestReplayVerifier_VerifyRun_NotFound(t *testing.T) {
	v := NewReplayVerifier(memory.NewComparisonStore(), memory.NewTxRecordStore())
	_, err := v.VerifyRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestReplayVerifier_VerifyAll(t *testing.T) {
	comparisons, records := memory.NewComparisonStore(), memory.NewTxRecordStore()
	storeRun(t, comparisons, records, "run-1", sampleLog)
	storeRun(t, comparisons, records, "run-2", "[2024-01-01T00:00:00.000Z INFO] pubsub: 9\n")

	report, err := NewReplayVerifier(comparisons, records).VerifyAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalRuns)
	assert.Equal(t, 2, report.MatchedRuns)
	assert.Equal(t, 0, report.DivergentRuns)
}

func TestCompareRuns_SpanPrecision(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	stored := &domain.Comparison{
		PubsubCount: 1,
		ShredsCount: 1,
		Pubsub:      &domain.Span{Start: base, End: base},
		Shreds:      &domain.Span{Start: base, End: base},
		Verdict:     domain.VerdictEqual,
	}

	same := *stored
	same.Pubsub = &domain.Span{Start: base.Add(100 * time.Microsecond), End: base}
	assert.Empty(t, CompareRuns(stored, &same))

	later := *stored
	later.Shreds = &domain.Span{Start: base, End: base.Add(time.Millisecond)}
	divs := CompareRuns(stored, &later)
	require.Len(t, divs, 1)
	assert.Equal(t, "ShredsEnd", divs[0].Field)
}

func TestReplayVerifier_VerifyAll_SummaryOnlyRun(t *testing.T) {
	ctx := context.Background()
	comparisons, records := memory.NewComparisonStore(), memory.NewTxRecordStore()
	storeRun(t, comparisons, records, "run-1", sampleLog)

	pubsub, shreds, err := logscan.Classify(sampleLog)
	require.NoError(t, err)
	require.NoError(t, logscan.Persist(ctx, comparisons, nil, "run-2", logscan.Compare(pubsub, shreds), pubsub, shreds))

	report, err := NewReplayVerifier(comparisons, records).VerifyAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalRuns)
	assert.Equal(t, 1, report.MatchedRuns)
	assert.Equal(t, 0, report.DivergentRuns)
	assert.Equal(t, 1, report.UnverifiableRuns)

	result, err := NewReplayVerifier(comparisons, records).VerifyRun(ctx, "run-2")
	require.NoError(t, err)
	assert.True(t, result.Unverifiable)
	assert.False(t, result.Match)
	assert.Empty(t, result.Divergences)
}

func TestReplayVerifier_VerifyRun_EmptyRunMatches(t *testing.T) {
	comparisons, records := memory.NewComparisonStore(), memory.NewTxRecordStore()
	storeRun(t, comparisons, records, "run-1", "")

	result, err := NewReplayVerifier(comparisons, records).VerifyRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.False(t, result.Unverifiable)
	assert.True(t, result.Match)
}
