package observability

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetrics_CustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("test", reg)

	m.LinesClassified.WithLabelValues("pubsub").Inc()
	m.LinesClassified.WithLabelValues("pubsub").Inc()
	m.LinesClassified.WithLabelValues("shreds").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LinesClassified.WithLabelValues("pubsub")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LinesClassified.WithLabelValues("shreds")))
}

func TestRecordPoolsFiltered(t *testing.T) {
	keptBefore := testutil.ToFloat64(DefaultMetrics.PoolsKept)
	droppedBefore := testutil.ToFloat64(DefaultMetrics.PoolsDropped)

	RecordPoolsFiltered(3, 7)

	assert.Equal(t, keptBefore+3, testutil.ToFloat64(DefaultMetrics.PoolsKept))
	assert.Equal(t, droppedBefore+7, testutil.ToFloat64(DefaultMetrics.PoolsDropped))
}

func TestRecordDBQuery_CountsErrors(t *testing.T) {
	before := testutil.ToFloat64(DefaultMetrics.DBQueryErrors.WithLabelValues("postgres", "insert"))

	RecordDBQuery("postgres", "insert", 0.01, nil)
	RecordDBQuery("postgres", "insert", 0.02, errors.New("boom"))

	after := testutil.ToFloat64(DefaultMetrics.DBQueryErrors.WithLabelValues("postgres", "insert"))
	assert.Equal(t, before+1, after)
}

func TestRecordPubsubNotification_TracksSlot(t *testing.T) {
	RecordPubsubNotification(42)
	assert.Equal(t, 42.0, testutil.ToFloat64(DefaultMetrics.HighestSlotSeen))
}

func TestRecordRPCCall_CountsErrors(t *testing.T) {
	before := testutil.ToFloat64(DefaultMetrics.RPCErrors.WithLabelValues("getSlot"))

	RecordRPCCall("getSlot", 0.1, nil)
	RecordRPCCall("getSlot", 0.1, errors.New("timeout"))

	assert.Equal(t, before+1, testutil.ToFloat64(DefaultMetrics.RPCErrors.WithLabelValues("getSlot")))
}
