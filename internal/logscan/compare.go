package logscan

import (
	"solana-shreds-lab/internal/domain"
)

// Compare derives counts, spans and a verdict from two record sequences.
// Spans are only computed when both sequences are non-empty.
func Compare(pubsub, shreds []domain.TxRecord) *domain.Comparison {
	c := &domain.Comparison{
		PubsubCount: len(pubsub),
		ShredsCount: len(shreds),
		Verdict:     domain.VerdictInsufficient,
	}
	if !c.Comparable() {
		return c
	}

	c.Pubsub = span(pubsub)
	c.Shreds = span(shreds)

	pubsubDur := c.Pubsub.Duration()
	shredsDur := c.Shreds.Duration()

	switch {
	case shredsDur < pubsubDur:
		c.Verdict = domain.VerdictShredsFaster
	case shredsDur > pubsubDur:
		c.Verdict = domain.VerdictPubsubFaster
	default:
		c.Verdict = domain.VerdictEqual
	}

	return c
}

// span returns the min/max timestamp of a non-empty record slice.
func span(records []domain.TxRecord) *domain.Span {
	s := &domain.Span{Start: records[0].Timestamp, End: records[0].Timestamp}
	for _, r := range records[1:] {
		if r.Timestamp.Before(s.Start) {
			s.Start = r.Timestamp
		}
		if r.Timestamp.After(s.End) {
			s.End = r.Timestamp
		}
	}
	return s
}

// Analyze classifies text and compares the resulting categories.
func Analyze(text string) (*domain.Comparison, error) {
	pubsub, shreds, err := Classify(text)
	if err != nil {
		return nil, err
	}
	return Compare(pubsub, shreds), nil
}
