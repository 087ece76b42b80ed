package logscan

import (
	"fmt"
	"io"
	"strings"

	"solana-shreds-lab/internal/domain"
)

// Report lines for the verdict.
const (
	MsgShredsFaster = "Shreds was faster"
	MsgPubsubFaster = "Pubsub was faster"
	MsgEqual        = "Pubsub and Shreds had the same duration"
	MsgInsufficient = "Not enough data to compare timing"
)

// VerdictMessage returns the report line for a verdict.
func VerdictMessage(v domain.Verdict) string {
	switch v {
	case domain.VerdictShredsFaster:
		return MsgShredsFaster
	case domain.VerdictPubsubFaster:
		return MsgPubsubFaster
	case domain.VerdictEqual:
		return MsgEqual
	default:
		return MsgInsufficient
	}
}

// RenderReport renders a comparison as the plain-text report.
func RenderReport(c *domain.Comparison) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Number of %s transactions: %d\n", domain.CategoryPubsub, c.PubsubCount))
	sb.WriteString(fmt.Sprintf("Number of %s transactions: %d\n", domain.CategoryShreds, c.ShredsCount))

	if c.Comparable() && c.Pubsub != nil && c.Shreds != nil {
		sb.WriteString(fmt.Sprintf("%s duration: %.3f seconds\n", domain.CategoryPubsub.Label(), c.Pubsub.Seconds()))
		sb.WriteString(fmt.Sprintf("%s duration: %.3f seconds\n", domain.CategoryShreds.Label(), c.Shreds.Seconds()))
		sb.WriteString(VerdictMessage(c.Verdict))
	} else {
		sb.WriteString(MsgInsufficient)
	}
	sb.WriteString("\n")

	return sb.String()
}

// WriteReport writes the rendered report to w.
func WriteReport(w io.Writer, c *domain.Comparison) error {
	_, err := io.WriteString(w, RenderReport(c))
	return err
}
