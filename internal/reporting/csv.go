package reporting

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// RenderCSV renders the runs of a report as CSV string.
func RenderCSV(r *Report) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := []string{
		"run_id", "created_at_ms", "pubsub_count", "shreds_count",
		"pubsub_duration_s", "shreds_duration_s", "verdict",
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, run := range r.Runs {
		record := []string{
			run.RunID,
			strconv.FormatInt(run.CreatedAt.UnixMilli(), 10),
			strconv.Itoa(run.PubsubCount),
			strconv.Itoa(run.ShredsCount),
			csvSeconds(run.PubsubDuration),
			csvSeconds(run.ShredsDuration),
			string(run.Verdict),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func csvSeconds(s *float64) string {
	if s == nil {
		return ""
	}
	return strconv.FormatFloat(*s, 'f', 3, 64)
}
