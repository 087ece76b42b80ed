package logscan

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"solana-shreds-lab/internal/domain"
)

// TimestampLayout is the env_logger millisecond timestamp written by the
// listeners: fixed three fractional digits and a literal trailing Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Log markers that follow the timestamp on a transaction line.
const (
	MarkerPubsub = "pubsub:"
	MarkerShreds = "algo:"
)

var (
	pubsubPattern = regexp.MustCompile(`\[(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z).*pubsub: (\d+)`)
	shredsPattern = regexp.MustCompile(`\[(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z).*algo: (\d+)`)
)

// ParseTimestamp parses a log timestamp into a UTC instant.
func ParseTimestamp(s string) (time.Time, error) {
	ts, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q: %v", ErrFormat, s, err)
	}
	return ts.UTC(), nil
}

// ParseLine classifies a single log line.
// Returns ok=false for lines that match neither category. Pubsub is checked
// first, so a line carrying both markers is always a pubsub record.
func ParseLine(line string) (domain.TxRecord, bool, error) {
	category := domain.CategoryPubsub
	m := pubsubPattern.FindStringSubmatch(line)
	if m == nil {
		category = domain.CategoryShreds
		m = shredsPattern.FindStringSubmatch(line)
	}
	if m == nil {
		return domain.TxRecord{}, false, nil
	}

	ts, err := ParseTimestamp(m[1])
	if err != nil {
		return domain.TxRecord{}, false, err
	}

	id, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return domain.TxRecord{}, false, fmt.Errorf("%w: identifier %q: %v", ErrFormat, m[2], err)
	}

	return domain.TxRecord{
		Category:  category,
		Timestamp: ts,
		ID:        id,
	}, true, nil
}

// FormatLine renders a record as a log line that ParseLine accepts.
func FormatLine(rec domain.TxRecord) string {
	marker := MarkerPubsub
	if rec.Category == domain.CategoryShreds {
		marker = MarkerShreds
	}
	return fmt.Sprintf("[%s INFO] %s %d", rec.Timestamp.UTC().Format(TimestampLayout), marker, rec.ID)
}
