package domain

import "time"

// Verdict is the outcome of comparing pubsub and shreds time spans.
type Verdict string

const (
	VerdictShredsFaster Verdict = "shreds_faster"
	VerdictPubsubFaster Verdict = "pubsub_faster"
	VerdictEqual        Verdict = "equal"
	VerdictInsufficient Verdict = "insufficient"
)

// IsValid checks if the verdict is a valid value.
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictShredsFaster, VerdictPubsubFaster, VerdictEqual, VerdictInsufficient:
		return true
	}
	return false
}

// Span is the time range covered by one category.
type Span struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start.
func (s Span) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Seconds returns the span duration in fractional seconds.
func (s Span) Seconds() float64 {
	return s.Duration().Seconds()
}

// Comparison is the derived result of one analysis run.
// Corresponds to comparison_runs table in PostgreSQL.
type Comparison struct {
	RunID       string // SHA256 of the analyzed log text
	PubsubCount int
	ShredsCount int

	// Spans are only set when both counts are positive.
	Pubsub *Span
	Shreds *Span

	Verdict   Verdict
	CreatedAt int64 // record creation timestamp (ms)
}

// Comparable reports whether both categories had at least one record.
func (c *Comparison) Comparable() bool {
	return c.PubsubCount > 0 && c.ShredsCount > 0
}
