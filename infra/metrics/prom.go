package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/teeterq/teeter/core/metrics"
)

// PromSink records scheduler events in Prometheus metrics.
type PromSink struct {
	dispatched *prometheus.CounterVec
	batches    prometheus.Counter
	merges     *prometheus.CounterVec
	depth      *prometheus.GaugeVec
	ratio      prometheus.Gauge
	wait       *prometheus.HistogramVec
}

// NewPromSink registers scheduler metrics on the default Prometheus
// registerer. The metrics HTTP server is started separately.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	dispatched := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sched_dispatched_requests_total",
		Help: "Requests handed to the device, by service class",
	}, []string{"class"})
	batches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sched_batches_total",
		Help: "Dispatch batches submitted to the device",
	})
	merges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sched_merged_requests_total",
		Help: "Requests absorbed by an adjacent request, by service class",
	}, []string{"class"})
	depth := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sched_queue_depth",
		Help: "Pending requests per service class",
	}, []string{"class"})
	ratio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sched_sync_ratio",
		Help: "Current sync_ratio tunable",
	})
	wait := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sched_queue_wait_seconds",
		Help:    "Time a request spent queued before reaching the device",
		Buckets: prometheus.DefBuckets,
	}, []string{"class"})

	if err := reg.Register(dispatched); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			dispatched = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(batches); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			batches = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(merges); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			merges = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(depth); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			depth = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(ratio); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			ratio = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(wait); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			wait = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		dispatched: dispatched,
		batches:    batches,
		merges:     merges,
		depth:      depth,
		ratio:      ratio,
		wait:       wait,
	}, nil
}

// RecordBatch updates batch counters, queue depth gauges and the ratio gauge.
func (s *PromSink) RecordBatch(ev coremetrics.BatchEvent) error {
	s.dispatched.WithLabelValues("sync").Add(float64(ev.SyncDispatched))
	s.dispatched.WithLabelValues("async").Add(float64(ev.AsyncDispatched))
	s.batches.Inc()
	s.depth.WithLabelValues("sync").Set(float64(ev.QueueDepthSync))
	s.depth.WithLabelValues("async").Set(float64(ev.QueueDepthAsync))
	s.ratio.Set(float64(ev.SyncRatio))
	return nil
}

// RecordMerge increments the merge counter for the event's class.
func (s *PromSink) RecordMerge(ev coremetrics.MergeEvent) error {
	s.merges.WithLabelValues(ev.Direction.String()).Inc()
	return nil
}

// RecordServe observes the queue wait histogram.
func (s *PromSink) RecordServe(ev coremetrics.ServeEvent) error {
	s.wait.WithLabelValues(ev.Direction.String()).Observe(ev.Wait.Seconds())
	return nil
}

// RecordSyncRatio sets the ratio gauge.
func (s *PromSink) RecordSyncRatio(ratio int) error {
	s.ratio.Set(float64(ratio))
	return nil
}
