package metrics

import (
	"context"

	coremetrics "github.com/teeterq/teeter/core/metrics"
	"github.com/teeterq/teeter/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// scheduler events. It stops when the context is canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.Sink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case coremetrics.BatchEvent:
					_ = sink.RecordBatch(e)
				case coremetrics.MergeEvent:
					if r, ok := sink.(coremetrics.MergeRecorder); ok {
						_ = r.RecordMerge(e)
					}
				case coremetrics.ServeEvent:
					if r, ok := sink.(coremetrics.ServeRecorder); ok {
						_ = r.RecordServe(e)
					}
				}
			}
		}
	}()
}
