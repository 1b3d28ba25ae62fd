package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/teeterq/teeter/core/model"
)

type countingSink struct {
	batches int
	merges  int
	serves  int
	ratios  int
	err     error
}

func (s *countingSink) RecordBatch(BatchEvent) error { s.batches++; return s.err }
func (s *countingSink) RecordMerge(MergeEvent) error { s.merges++; return s.err }
func (s *countingSink) RecordServe(ServeEvent) error { s.serves++; return s.err }
func (s *countingSink) RecordSyncRatio(int) error    { s.ratios++; return s.err }

// batchOnlySink implements only the base interface.
type batchOnlySink struct{ batches int }

func (s *batchOnlySink) RecordBatch(BatchEvent) error { s.batches++; return nil }

func TestMultiSinkFanOut(t *testing.T) {
	a := &countingSink{}
	b := &batchOnlySink{}
	m := NewMultiSink(a, b)

	if err := m.RecordBatch(BatchEvent{Time: time.Now()}); err != nil {
		t.Fatalf("batch: %v", err)
	}
	if err := m.RecordMerge(MergeEvent{Direction: model.Sync}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if err := m.RecordServe(ServeEvent{Direction: model.Async}); err != nil {
		t.Fatalf("serve: %v", err)
	}
	if err := m.RecordSyncRatio(4); err != nil {
		t.Fatalf("ratio: %v", err)
	}

	if a.batches != 1 || a.merges != 1 || a.serves != 1 || a.ratios != 1 {
		t.Fatalf("full sink missed events: %+v", a)
	}
	// The batch-only sink receives batches and is skipped for the rest.
	if b.batches != 1 {
		t.Fatalf("batch-only sink got %d batches", b.batches)
	}
}

func TestMultiSinkFirstError(t *testing.T) {
	boom := errors.New("boom")
	m := NewMultiSink(&countingSink{err: boom}, &countingSink{})
	if err := m.RecordBatch(BatchEvent{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom got %v", err)
	}
}
