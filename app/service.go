// Package app wires the scheduler, the simulated host, metrics and the
// admin API into a runnable service.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/teeterq/teeter/api/tunables"
	"github.com/teeterq/teeter/config"
	coremetrics "github.com/teeterq/teeter/core/metrics"
	"github.com/teeterq/teeter/infra/logger"
	"github.com/teeterq/teeter/infra/metrics"
	"github.com/teeterq/teeter/internal/eventbus"
	"github.com/teeterq/teeter/simulator"
)

// Service runs the scheduler against the simulated host and exposes the
// tunables API next to the Prometheus endpoint.
type Service struct {
	Runner *simulator.Runner
	bus    *eventbus.Bus
	sink   coremetrics.Sink
	log    logger.Logger
	addr   string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	bus := eventbus.New()
	runner, err := simulator.NewRunner(cfg.Sched, cfg.Workload, cfg.Device, logg, bus)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("runner: %w", err)
	}

	return &Service{
		Runner: runner,
		bus:    bus,
		sink:   sink,
		log:    logg,
		addr:   cfg.Metrics.PrometheusAddr,
	}, nil
}

// Run executes the workload until it completes or the context is canceled.
// When an address is configured the metrics and admin endpoints are served
// for the lifetime of the run.
func (s *Service) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	metrics.StartEventCollector(ctx, s.bus, s.sink)

	if s.addr != "" {
		go func() {
			handlers := map[string]http.Handler{
				"/api/tunables/sync_ratio": tunables.NewRatioHandler(s.Runner.Scheduler()),
				"/api/sched/stats":         tunables.NewStatsHandler(s.Runner.Scheduler()),
			}
			if err := metrics.StartPromServer(ctx, s.addr, handlers); err != nil {
				s.log.Errorf("metrics server: %v", err)
			}
		}()
	}

	sum, err := s.Runner.Run(ctx)
	if err != nil {
		return err
	}
	s.log.Infof("workload finished: %s", sum)
	return nil
}

// Close releases the event bus and any sinks holding connections.
func (s *Service) Close() error {
	s.bus.Close()
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	return nil
}
