package reporting

import (
	"time"

	"solana-shreds-lab/internal/domain"
)

// Report summarizes stored analysis runs.
type Report struct {
	GeneratedAt time.Time

	// Runs sorted newest first.
	Runs []RunRow

	Summary Summary
}

// Summary tallies verdicts across the runs in a report.
type Summary struct {
	TotalRuns    int
	ShredsFaster int
	PubsubFaster int
	Equal        int
	Insufficient int

	// MeanDeltaSeconds is the mean of pubsub minus shreds duration over
	// comparable runs. Positive means shreds finished sooner on average.
	MeanDeltaSeconds float64
	ComparableRuns   int
}

// RunRow is one run as rendered in the report.
type RunRow struct {
	RunID          string
	CreatedAt      time.Time
	PubsubCount    int
	ShredsCount    int
	PubsubDuration *float64 // seconds, nil when not comparable
	ShredsDuration *float64
	Verdict        domain.Verdict
}
