package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/teeterq/teeter/core/metrics"
	"github.com/teeterq/teeter/core/model"
)

func TestPromSinkRecordsBatch(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	err = sink.RecordBatch(coremetrics.BatchEvent{
		SyncDispatched:  4,
		AsyncDispatched: 1,
		QueueDepthSync:  2,
		QueueDepthAsync: 3,
		SyncRatio:       4,
		Time:            time.Now(),
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if got := testutil.ToFloat64(sink.dispatched.WithLabelValues("sync")); got != 4 {
		t.Fatalf("sync dispatched = %v", got)
	}
	if got := testutil.ToFloat64(sink.dispatched.WithLabelValues("async")); got != 1 {
		t.Fatalf("async dispatched = %v", got)
	}
	if got := testutil.ToFloat64(sink.depth.WithLabelValues("sync")); got != 2 {
		t.Fatalf("sync depth = %v", got)
	}
	if got := testutil.ToFloat64(sink.ratio); got != 4 {
		t.Fatalf("ratio = %v", got)
	}
}

func TestPromSinkRecordsMergeAndRatio(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	if err := sink.RecordMerge(coremetrics.MergeEvent{Direction: model.Sync}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if got := testutil.ToFloat64(sink.merges.WithLabelValues("sync")); got != 1 {
		t.Fatalf("merges = %v", got)
	}
	if err := sink.RecordSyncRatio(7); err != nil {
		t.Fatalf("ratio: %v", err)
	}
	if got := testutil.ToFloat64(sink.ratio); got != 7 {
		t.Fatalf("ratio = %v", got)
	}
}

func TestPromSinkDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first: %v", err)
	}
	// Second construction reuses the already registered collectors.
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second: %v", err)
	}
}
