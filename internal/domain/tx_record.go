package domain

import "time"

// TxRecord is a single transaction observation parsed from one log line.
// Corresponds to tx_records table in ClickHouse.
type TxRecord struct {
	RunID     string    // analysis run the record belongs to (empty until persisted)
	Category  Category  // pubsub | shreds
	Seq       int       // zero-based position within its category
	Timestamp time.Time // UTC, millisecond precision
	ID        int64     // transaction identifier logged after the marker
}

// TimestampMs returns the record timestamp as Unix milliseconds.
func (r TxRecord) TimestampMs() int64 {
	return r.Timestamp.UnixMilli()
}
