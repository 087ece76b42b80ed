package verification

import (
	"context"
	"errors"
	"fmt"

	"solana-shreds-lab/internal/domain"
	"solana-shreds-lab/internal/logscan"
	"solana-shreds-lab/internal/storage"
)

// ErrRunNotFound is returned when run ID doesn't exist.
var ErrRunNotFound = errors.New("run not found")

// ReplayVerifier implements Verifier by re-running the comparison over
// the records stored for a run.
type ReplayVerifier struct {
	comparisons storage.ComparisonStore
	records     storage.TxRecordStore
}

// NewReplayVerifier creates a new ReplayVerifier.
func NewReplayVerifier(comparisons storage.ComparisonStore, records storage.TxRecordStore) *ReplayVerifier {
	return &ReplayVerifier{
		comparisons: comparisons,
		records:     records,
	}
}

var _ Verifier = (*ReplayVerifier)(nil)

// VerifyRun verifies a single run by replaying its comparison.
func (v *ReplayVerifier) VerifyRun(ctx context.Context, runID string) (*VerificationResult, error) {
	stored, err := v.comparisons.GetByID(ctx, runID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}

	return v.verify(ctx, stored)
}

// VerifyAll verifies all stored runs.
func (v *ReplayVerifier) VerifyAll(ctx context.Context) (*VerificationReport, error) {
	runs, err := v.comparisons.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	report := &VerificationReport{
		TotalRuns: len(runs),
		Results:   make([]VerificationResult, 0, len(runs)),
	}
	for _, stored := range runs {
		result, err := v.verify(ctx, stored)
		if err != nil {
			return nil, fmt.Errorf("verify run %s: %w", stored.RunID, err)
		}
		switch {
		case result.Unverifiable:
			report.UnverifiableRuns++
		case result.Match:
			report.MatchedRuns++
		default:
			report.DivergentRuns++
		}
		report.Results = append(report.Results, *result)
	}

	return report, nil
}

func (v *ReplayVerifier) verify(ctx context.Context, stored *domain.Comparison) (*VerificationResult, error) {
	pubsub, err := v.load(ctx, stored.RunID, domain.CategoryPubsub)
	if err != nil {
		return nil, err
	}
	shreds, err := v.load(ctx, stored.RunID, domain.CategoryShreds)
	if err != nil {
		return nil, err
	}

	// Runs stored without a record store have a summary only.
	if len(pubsub) == 0 && len(shreds) == 0 && stored.PubsubCount+stored.ShredsCount > 0 {
		return &VerificationResult{RunID: stored.RunID, Unverifiable: true}, nil
	}

	divergences := CompareRuns(stored, logscan.Compare(pubsub, shreds))
	return &VerificationResult{
		RunID:       stored.RunID,
		Match:       len(divergences) == 0,
		Divergences: divergences,
	}, nil
}

func (v *ReplayVerifier) load(ctx context.Context, runID string, category domain.Category) ([]domain.TxRecord, error) {
	recs, err := v.records.GetByCategory(ctx, runID, category)
	if err != nil {
		return nil, fmt.Errorf("load %s records: %w", category, err)
	}
	out := make([]domain.TxRecord, len(recs))
	for i, r := range recs {
		out[i] = *r
	}
	return out, nil
}
