package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Pubsub vs Shreds Runs\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Runs | %d |\n", r.Summary.TotalRuns))
	sb.WriteString(fmt.Sprintf("| Shreds Faster | %d |\n", r.Summary.ShredsFaster))
	sb.WriteString(fmt.Sprintf("| Pubsub Faster | %d |\n", r.Summary.PubsubFaster))
	sb.WriteString(fmt.Sprintf("| Equal | %d |\n", r.Summary.Equal))
	sb.WriteString(fmt.Sprintf("| Insufficient Data | %d |\n", r.Summary.Insufficient))
	if r.Summary.ComparableRuns > 0 {
		sb.WriteString(fmt.Sprintf("| Mean Pubsub - Shreds (s) | %.3f |\n", r.Summary.MeanDeltaSeconds))
	}
	sb.WriteString("\n")

	// Runs
	sb.WriteString("## Runs\n\n")
	if len(r.Runs) == 0 {
		sb.WriteString("No runs stored.\n")
		return sb.String()
	}

	sb.WriteString("| Run | Created | Pubsub | Shreds | Pubsub (s) | Shreds (s) | Verdict |\n")
	sb.WriteString("|-----|---------|--------|--------|------------|------------|---------|\n")
	for _, run := range r.Runs {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %s | %s | %s |\n",
			shortID(run.RunID),
			run.CreatedAt.Format(time.RFC3339),
			run.PubsubCount,
			run.ShredsCount,
			formatSeconds(run.PubsubDuration),
			formatSeconds(run.ShredsDuration),
			run.Verdict,
		))
	}

	return sb.String()
}

// shortID truncates a run id for display.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func formatSeconds(s *float64) string {
	if s == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f", *s)
}
