// Package metrics defines the events emitted by the scheduler and the sink
// interfaces that record them. Sinks like the Prometheus and InfluxDB
// adapters in infra/metrics implement Sink and the optional recorder
// interfaces; NewSink builds them from configuration and returns a MultiSink
// automatically when several sinks are configured.
package metrics
