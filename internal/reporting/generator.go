package reporting

import (
	"context"
	"fmt"
	"time"

	"solana-shreds-lab/internal/domain"
	"solana-shreds-lab/internal/storage"
)

// Generator produces reports from stored runs.
type Generator struct {
	comparisons storage.ComparisonStore
	limit       int
	now         func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator over the newest limit runs.
// A non-positive limit includes every run.
func NewGenerator(comparisons storage.ComparisonStore, limit int) *Generator {
	return &Generator{
		comparisons: comparisons,
		limit:       limit,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a report of the stored runs.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	runs, err := g.comparisons.List(ctx, g.limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	r := &Report{
		GeneratedAt: g.now(),
		Runs:        make([]RunRow, 0, len(runs)),
	}

	var deltaSum float64
	for _, c := range runs {
		row := RunRow{
			RunID:       c.RunID,
			CreatedAt:   time.UnixMilli(c.CreatedAt).UTC(),
			PubsubCount: c.PubsubCount,
			ShredsCount: c.ShredsCount,
			Verdict:     c.Verdict,
		}
		if c.Pubsub != nil && c.Shreds != nil {
			p, s := c.Pubsub.Seconds(), c.Shreds.Seconds()
			row.PubsubDuration = &p
			row.ShredsDuration = &s
			deltaSum += p - s
			r.Summary.ComparableRuns++
		}
		r.Runs = append(r.Runs, row)

		r.Summary.TotalRuns++
		switch c.Verdict {
		case domain.VerdictShredsFaster:
			r.Summary.ShredsFaster++
		case domain.VerdictPubsubFaster:
			r.Summary.PubsubFaster++
		case domain.VerdictEqual:
			r.Summary.Equal++
		default:
			r.Summary.Insufficient++
		}
	}

	if r.Summary.ComparableRuns > 0 {
		r.Summary.MeanDeltaSeconds = deltaSum / float64(r.Summary.ComparableRuns)
	}

	return r, nil
}
