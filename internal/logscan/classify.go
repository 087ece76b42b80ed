package logscan

import (
	"fmt"
	"strings"

	"solana-shreds-lab/internal/domain"
	"solana-shreds-lab/internal/observability"
)

// Classify splits text into lines and folds them into two ordered record
// sequences, one per category. Lines matching neither pattern are skipped.
// The first malformed record aborts the scan.
func Classify(text string) (pubsub, shreds []domain.TxRecord, err error) {
	for i, line := range strings.Split(text, "\n") {
		rec, ok, err := ParseLine(line)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if !ok {
			observability.RecordLineSkipped()
			continue
		}

		switch rec.Category {
		case domain.CategoryPubsub:
			rec.Seq = len(pubsub)
			pubsub = append(pubsub, rec)
		case domain.CategoryShreds:
			rec.Seq = len(shreds)
			shreds = append(shreds, rec)
		}
		observability.RecordLineClassified(rec.Category.String())
	}

	return pubsub, shreds, nil
}
