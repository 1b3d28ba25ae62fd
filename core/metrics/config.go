package metrics

import "github.com/teeterq/teeter/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusAddr is the listen address of the metrics HTTP server.
	// Empty disables the server.
	PrometheusAddr string `json:"prometheus_addr"`
}
