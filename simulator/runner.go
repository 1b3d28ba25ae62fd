package simulator

import (
	"context"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/teeterq/teeter/core/logger"
	"github.com/teeterq/teeter/core/sched"
)

// Runner replays a synthetic workload through the scheduler: requests arrive
// through the merge layer, and the virtual device pulls a batch after every
// few arrivals, the way a host pulls whenever the device has capacity.
type Runner struct {
	devCfg DeviceConfig
	sched  *sched.Scheduler
	dev    *Device
	wl     *Workload
	merge  *MergeLayer
	log    logger.Logger
}

// Summary aggregates one simulation run.
type Summary struct {
	Generated   int
	Merged      int
	Sched       sched.Stats
	MeanWaitSec float64
	P95WaitSec  float64
}

func (s Summary) String() string {
	return fmt.Sprintf(
		"generated=%d merged=%d dispatched_sync=%d dispatched_async=%d batches=%d mean_wait=%.6fs p95_wait=%.6fs",
		s.Generated, s.Merged, s.Sched.DispatchedSync, s.Sched.DispatchedAsync,
		s.Sched.Batches, s.MeanWaitSec, s.P95WaitSec)
}

// NewRunner builds the scheduler, device, workload and merge layer.
func NewRunner(schedCfg sched.Config, wlCfg WorkloadConfig, devCfg DeviceConfig, log logger.Logger, bus sched.Publisher) (*Runner, error) {
	wlCfg.SetDefaults()
	devCfg.SetDefaults()
	if err := wlCfg.Validate(); err != nil {
		return nil, fmt.Errorf("workload config: %w", err)
	}
	if err := devCfg.Validate(); err != nil {
		return nil, fmt.Errorf("device config: %w", err)
	}
	dev := NewDevice(bus)
	s, err := sched.New(schedCfg, dev, log, bus)
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}
	return &Runner{
		devCfg: devCfg,
		sched:  s,
		dev:    dev,
		wl:     NewWorkload(wlCfg),
		merge:  NewMergeLayer(s),
		log:    log,
	}, nil
}

// Scheduler exposes the underlying scheduler, e.g. for the tunables API.
func (r *Runner) Scheduler() *sched.Scheduler { return r.sched }

// Device exposes the virtual device.
func (r *Runner) Device() *Device { return r.dev }

// Run replays the configured number of requests, then drains the scheduler.
// It stops early when the context is canceled.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	n := r.wl.cfg.Requests
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return sum, ctx.Err()
		default:
		}
		req := r.wl.Next()
		sum.Merged += r.merge.EnqueueAndMerge(req)
		sum.Generated++
		if (i+1)%r.devCfg.DispatchEvery == 0 {
			r.sched.Dispatch(false)
		}
	}
	// Drain. A zero ratio can leave sync requests behind on purpose; stop
	// once a pull makes no progress.
	for r.sched.CanDispatch() {
		if r.sched.Dispatch(true) == 0 {
			break
		}
	}

	sum.Sched = r.sched.Stats()
	waits := r.dev.Waits()
	if len(waits) > 0 {
		sum.MeanWaitSec = stat.Mean(waits, nil)
		sort.Float64s(waits)
		sum.P95WaitSec = stat.Quantile(0.95, stat.Empirical, waits, nil)
	}
	if r.log != nil {
		r.log.Infof("simulation done: %s", sum)
	}
	return sum, nil
}
