// Package listener records pubsub notifications as benchmark log lines.
package listener

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"solana-shreds-lab/internal/domain"
	"solana-shreds-lab/internal/logscan"
	"solana-shreds-lab/internal/solana"
)

// Recorder appends one pubsub log line per logs notification.
type Recorder struct {
	client solana.WSClient
	filter solana.LogsFilter
	log    *zap.Logger
	clock  func() time.Time

	mu  sync.Mutex
	out *bufio.Writer
	n   int
}

// NewRecorder creates a recorder writing to w.
func NewRecorder(client solana.WSClient, filter solana.LogsFilter, w io.Writer) *Recorder {
	return &Recorder{
		client: client,
		filter: filter,
		log:    zap.NewNop(),
		clock:  time.Now,
		out:    bufio.NewWriter(w),
	}
}

// WithClock sets the clock used to timestamp notifications.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.clock = now
	return r
}

// WithLogger sets the logger.
func (r *Recorder) WithLogger(log *zap.Logger) *Recorder {
	if log != nil {
		r.log = log
	}
	return r
}

// Recorded returns the number of lines written so far.
func (r *Recorder) Recorded() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

// Run subscribes and records notifications until ctx is done or the
// subscription channel is closed. Cancellation is not an error.
func (r *Recorder) Run(ctx context.Context) error {
	notifs, err := r.client.SubscribeLogs(ctx, r.filter)
	if err != nil {
		return fmt.Errorf("subscribe logs: %w", err)
	}
	r.log.Info("subscribed to logs",
		zap.Strings("mentions", r.filter.Mentions),
		zap.String("commitment", string(r.filter.Commitment)))

	defer func() {
		if err := r.flush(); err != nil {
			r.log.Warn("failed to flush output", zap.Error(err))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case notif, ok := <-notifs:
			if !ok {
				r.log.Info("subscription closed")
				return nil
			}
			if err := r.record(notif); err != nil {
				return err
			}
		}
	}
}

// record writes the line for notif. The line carries the slot as its id.
func (r *Recorder) record(notif solana.LogNotification) error {
	rec := domain.TxRecord{
		Category:  domain.CategoryPubsub,
		Timestamp: r.clock().UTC().Truncate(time.Millisecond),
		ID:        notif.Slot,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.n++
	rec.Seq = r.n - 1
	if _, err := r.out.WriteString(logscan.FormatLine(rec) + "\n"); err != nil {
		return fmt.Errorf("write log line: %w", err)
	}
	// Flush per line so the file can be analyzed while recording.
	if err := r.out.Flush(); err != nil {
		return fmt.Errorf("flush log line: %w", err)
	}

	r.log.Debug("recorded notification",
		zap.String("signature", notif.Signature),
		zap.Int64("slot", notif.Slot))
	return nil
}

func (r *Recorder) flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.out.Flush()
}
