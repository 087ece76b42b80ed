// Package verification checks stored run summaries against their stored records.
package verification

import (
	"context"

	"solana-shreds-lab/internal/domain"
)

// FieldDivergence represents a mismatch between stored and replayed values.
type FieldDivergence struct {
	Field    string      // field name
	Expected interface{} // stored value
	Actual   interface{} // replayed value
}

// VerificationResult contains the result of verifying a single run.
type VerificationResult struct {
	RunID        string
	Match        bool // true if all fields match
	Unverifiable bool // no records were stored for a non-empty run
	Divergences  []FieldDivergence
}

// VerificationReport contains results for batch verification.
type VerificationReport struct {
	TotalRuns        int
	MatchedRuns      int
	DivergentRuns    int
	UnverifiableRuns int
	Results          []VerificationResult
}

// Verifier interface for run verification.
type Verifier interface {
	// VerifyRun recomputes the comparison of one run from its stored
	// records and compares it with the stored comparison.
	VerifyRun(ctx context.Context, runID string) (*VerificationResult, error)

	// VerifyAll verifies all stored runs.
	VerifyAll(ctx context.Context) (*VerificationReport, error)
}

// CompareRuns compares a stored comparison with a replayed one.
// Timestamps are compared at millisecond precision.
func CompareRuns(stored, replayed *domain.Comparison) []FieldDivergence {
	var divergences []FieldDivergence

	if stored.PubsubCount != replayed.PubsubCount {
		divergences = append(divergences, FieldDivergence{
			Field:    "PubsubCount",
			Expected: stored.PubsubCount,
			Actual:   replayed.PubsubCount,
		})
	}

	if stored.ShredsCount != replayed.ShredsCount {
		divergences = append(divergences, FieldDivergence{
			Field:    "ShredsCount",
			Expected: stored.ShredsCount,
			Actual:   replayed.ShredsCount,
		})
	}

	divergences = append(divergences, compareSpans("Pubsub", stored.Pubsub, replayed.Pubsub)...)
	divergences = append(divergences, compareSpans("Shreds", stored.Shreds, replayed.Shreds)...)

	if stored.Verdict != replayed.Verdict {
		divergences = append(divergences, FieldDivergence{
			Field:    "Verdict",
			Expected: stored.Verdict,
			Actual:   replayed.Verdict,
		})
	}

	return divergences
}

func compareSpans(name string, stored, replayed *domain.Span) []FieldDivergence {
	if stored == nil || replayed == nil {
		if stored != replayed {
			return []FieldDivergence{{Field: name, Expected: stored, Actual: replayed}}
		}
		return nil
	}

	var divergences []FieldDivergence
	if stored.Start.UnixMilli() != replayed.Start.UnixMilli() {
		divergences = append(divergences, FieldDivergence{
			Field:    name + "Start",
			Expected: stored.Start,
			Actual:   replayed.Start,
		})
	}
	if stored.End.UnixMilli() != replayed.End.UnixMilli() {
		divergences = append(divergences, FieldDivergence{
			Field:    name + "End",
			Expected: stored.End,
			Actual:   replayed.End,
		})
	}
	return divergences
}
