package solana

import "context"

// WSClient defines Solana WebSocket subscription interface.
type WSClient interface {
	// SubscribeLogs subscribes to transaction logs matching the filter.
	SubscribeLogs(ctx context.Context, filter LogsFilter) (<-chan LogNotification, error)

	// Close closes the WebSocket connection.
	Close() error
}

// Commitment is the bank state a subscription is notified at.
type Commitment string

const (
	CommitmentProcessed Commitment = "processed"
	CommitmentConfirmed Commitment = "confirmed"
	CommitmentFinalized Commitment = "finalized"
)

// LogsFilter defines subscription filter for logs.
type LogsFilter struct {
	// Mentions filters logs that mention any of these accounts.
	// Empty subscribes to all transactions.
	Mentions []string
	// Commitment defaults to CommitmentProcessed.
	Commitment Commitment
}

// params builds the logsSubscribe parameter list.
func (f LogsFilter) params() []interface{} {
	mentionsFilter := make(map[string]interface{})
	if len(f.Mentions) > 0 {
		mentionsFilter["mentions"] = f.Mentions
	} else {
		mentionsFilter["all"] = nil
	}

	commitment := f.Commitment
	if commitment == "" {
		commitment = CommitmentProcessed
	}

	return []interface{}{
		mentionsFilter,
		map[string]string{"commitment": string(commitment)},
	}
}

// LogNotification represents a logs subscription message.
type LogNotification struct {
	Signature string
	Slot      int64
	Logs      []string
	Err       interface{}
}
