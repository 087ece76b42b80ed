// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Log scanner metrics
	LinesClassified *prometheus.CounterVec
	LinesSkipped    prometheus.Counter
	RunsAnalyzed    *prometheus.CounterVec

	// Pool filter metrics
	PoolsKept    prometheus.Counter
	PoolsDropped prometheus.Counter
	MintsMissing prometheus.Gauge

	// Listener metrics
	PubsubNotifications prometheus.Counter
	HighestSlotSeen     prometheus.Gauge
	WSReconnects        prometheus.Counter
	RPCDuration         *prometheus.HistogramVec
	RPCErrors           *prometheus.CounterVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance registered with reg.
// A nil reg registers with the default Prometheus registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "solana_shreds_lab"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		LinesClassified: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "logscan",
			Name:      "lines_classified_total",
			Help:      "Total number of log lines classified by category",
		}, []string{"category"}),
		LinesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "logscan",
			Name:      "lines_skipped_total",
			Help:      "Total number of log lines matching no category",
		}),
		RunsAnalyzed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "logscan",
			Name:      "runs_total",
			Help:      "Total number of analysis runs by verdict",
		}, []string{"verdict"}),

		PoolsKept: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "raydium",
			Name:      "pools_kept_total",
			Help:      "Total number of pools retained by the allow-list filter",
		}),
		PoolsDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "raydium",
			Name:      "pools_dropped_total",
			Help:      "Total number of pools removed by the allow-list filter",
		}),
		MintsMissing: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "raydium",
			Name:      "mints_missing",
			Help:      "Number of mints of interest with no pool in the last index",
		}),

		PubsubNotifications: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solana",
			Name:      "pubsub_notifications_total",
			Help:      "Total number of logsSubscribe notifications received",
		}),
		HighestSlotSeen: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "solana",
			Name:      "highest_slot_seen",
			Help:      "Highest Solana slot number seen",
		}),
		WSReconnects: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solana",
			Name:      "ws_reconnects_total",
			Help:      "Total number of websocket reconnect attempts",
		}),
		RPCDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "solana",
			Name:      "rpc_duration_seconds",
			Help:      "Solana JSON-RPC call duration in seconds, retries included",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		RPCErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solana",
			Name:      "rpc_errors_total",
			Help:      "Total number of failed Solana JSON-RPC calls",
		}, []string{"method"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("", nil)

// RecordLineClassified increments the classified lines counter for category.
func RecordLineClassified(category string) {
	DefaultMetrics.LinesClassified.WithLabelValues(category).Inc()
}

// RecordLineSkipped increments the skipped lines counter.
func RecordLineSkipped() {
	DefaultMetrics.LinesSkipped.Inc()
}

// RecordRun records a finished analysis run.
func RecordRun(verdict string) {
	DefaultMetrics.RunsAnalyzed.WithLabelValues(verdict).Inc()
}

// RecordPoolsFiltered records the outcome of one filter pass.
func RecordPoolsFiltered(kept, dropped int) {
	DefaultMetrics.PoolsKept.Add(float64(kept))
	DefaultMetrics.PoolsDropped.Add(float64(dropped))
}

// UpdateMintsMissing sets the missing mints gauge.
func UpdateMintsMissing(n int) {
	DefaultMetrics.MintsMissing.Set(float64(n))
}

// RecordPubsubNotification records one logs notification at slot.
func RecordPubsubNotification(slot int64) {
	DefaultMetrics.PubsubNotifications.Inc()
	DefaultMetrics.HighestSlotSeen.Set(float64(slot))
}

// RecordReconnect increments the websocket reconnect counter.
func RecordReconnect() {
	DefaultMetrics.WSReconnects.Inc()
}

// RecordRPCCall records one JSON-RPC call.
func RecordRPCCall(method string, seconds float64, err error) {
	DefaultMetrics.RPCDuration.WithLabelValues(method).Observe(seconds)
	if err != nil {
		DefaultMetrics.RPCErrors.WithLabelValues(method).Inc()
	}
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}
