package metrics

import (
	"time"

	"github.com/teeterq/teeter/core/model"
)

// BatchEvent describes one dispatch batch handed to the device.
type BatchEvent struct {
	SyncDispatched  int
	AsyncDispatched int
	QueueDepthSync  int
	QueueDepthAsync int
	SyncRatio       int
	Time            time.Time
}

// Sink records batch events for observability purposes.
type Sink interface {
	RecordBatch(ev BatchEvent) error
}

// MergeEvent captures one request being folded into an adjacent one.
type MergeEvent struct {
	SurvivorID string
	AbsorbedID string
	Direction  model.Direction
	Time       time.Time
}

// MergeRecorder records merge events.
type MergeRecorder interface {
	RecordMerge(ev MergeEvent) error
}

// ServeEvent captures a request reaching the device, with the time it spent
// queued in the scheduler.
type ServeEvent struct {
	RequestID string
	Direction model.Direction
	Sectors   uint32
	Wait      time.Duration
	Time      time.Time
}

// ServeRecorder records served requests.
type ServeRecorder interface {
	RecordServe(ev ServeEvent) error
}

// RatioRecorder records changes to the sync_ratio tunable.
type RatioRecorder interface {
	RecordSyncRatio(ratio int) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordBatch(BatchEvent) error { return nil }
func (NopSink) RecordMerge(MergeEvent) error { return nil }
func (NopSink) RecordServe(ServeEvent) error { return nil }
func (NopSink) RecordSyncRatio(int) error    { return nil }
