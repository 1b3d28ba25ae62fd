package sched

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/teeterq/teeter/core/logger"
	"github.com/teeterq/teeter/core/metrics"
	"github.com/teeterq/teeter/core/model"
)

// ErrNilRequest is returned by the internal submit path when asked to hand a
// nil request to the device. Dispatch selects requests from its own queues
// and cannot trigger it under correct usage.
var ErrNilRequest = errors.New("nil request")

// ErrRatioRange is returned by SetSyncRatio for values outside the tunable's
// numeric domain.
var ErrRatioRange = errors.New("sync_ratio out of range")

// Device is the host-side submission primitive. Submit takes ownership of
// the request and queues it for the physical device in call order.
type Device interface {
	Submit(req *model.Request)
}

// Publisher receives scheduler events. A nil Publisher disables events.
type Publisher interface {
	Publish(ev any)
}

// Stats is a snapshot of the scheduler's counters and queue depths.
type Stats struct {
	DispatchedSync  uint64 `json:"dispatched_sync"`
	DispatchedAsync uint64 `json:"dispatched_async"`
	Batches         uint64 `json:"batches"`
	Merges          uint64 `json:"merges"`
	QueueDepthSync  int    `json:"queue_depth_sync"`
	QueueDepthAsync int    `json:"queue_depth_async"`
}

// Scheduler is a two-class batching dispatch queue for one device.
type Scheduler struct {
	mu        sync.Mutex
	queues    [model.NumDirections]fifo
	nodes     map[string]*node
	syncRatio uint8
	dev       Device
	log       logger.Logger
	bus       Publisher

	dispatched [model.NumDirections]uint64
	batches    uint64
	merges     uint64
}

// New creates a Scheduler bound to the given device. It fails on a nil
// device or an out-of-domain ratio, leaving no partial state behind.
func New(cfg Config, dev Device, log logger.Logger, bus Publisher) (*Scheduler, error) {
	if dev == nil {
		return nil, errors.New("nil device")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Scheduler{
		nodes:     make(map[string]*node),
		syncRatio: uint8(cfg.SyncRatio),
		dev:       dev,
		log:       log,
		bus:       bus,
	}, nil
}

// Enqueue appends the request to the tail of its class queue. It never
// reorders, never merges and never triggers a dispatch.
func (s *Scheduler) Enqueue(req *model.Request) {
	if req == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := &node{req: req}
	s.queues[req.Dir].pushBack(n)
	s.nodes[req.ID] = n
}

// CanDispatch reports whether any request is pending in either class.
func (s *Scheduler) CanDispatch() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.queues[model.Sync].empty() || !s.queues[model.Async].empty()
}

// Dispatch hands the device one batch: up to sync_ratio sync requests
// followed by at most one async request. It returns the number of requests
// submitted. The ratio is read once at the start of the batch; force has no
// effect on an empty scheduler. An iteration that finds the sync queue empty
// simply elapses, it is never redirected to async.
func (s *Scheduler) Dispatch(force bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queues[model.Sync].empty() && s.queues[model.Async].empty() {
		return 0
	}

	ratio := s.syncRatio
	var nsync, nasync int
	for batched := uint8(0); batched < ratio; batched++ {
		if s.queues[model.Sync].empty() {
			continue
		}
		if err := s.submit(model.Sync, s.queues[model.Sync].front()); err != nil {
			s.log.Errorf("sync submit: %v", err)
			continue
		}
		nsync++
	}

	// One async request per batch keeps async traffic from starving.
	if !s.queues[model.Async].empty() {
		if err := s.submit(model.Async, s.queues[model.Async].front()); err != nil {
			s.log.Errorf("async submit: %v", err)
		} else {
			nasync = 1
		}
	}

	s.batches++
	s.log.Debugw("batch dispatched", map[string]any{
		"sync":        nsync,
		"async":       nasync,
		"depth_sync":  s.queues[model.Sync].len(),
		"depth_async": s.queues[model.Async].len(),
	})
	if s.bus != nil {
		s.bus.Publish(metrics.BatchEvent{
			SyncDispatched:  nsync,
			AsyncDispatched: nasync,
			QueueDepthSync:  s.queues[model.Sync].len(),
			QueueDepthAsync: s.queues[model.Async].len(),
			SyncRatio:       int(ratio),
			Time:            time.Now(),
		})
	}
	return nsync + nasync
}

// submit unlinks the node from its queue and hands its request to the
// device. Queue state is untouched on error.
func (s *Scheduler) submit(dir model.Direction, n *node) error {
	if n == nil || n.req == nil {
		return ErrNilRequest
	}
	s.queues[dir].remove(n)
	delete(s.nodes, n.req.ID)
	s.dispatched[dir]++
	s.dev.Submit(n.req)
	return nil
}

// NotifyMerged records that the host's merge layer folded absorbed into
// survivor: absorbed leaves its queue, survivor keeps its position.
func (s *Scheduler) NotifyMerged(survivor, absorbed *model.Request) {
	if absorbed == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[absorbed.ID]
	if !ok {
		return
	}
	s.queues[absorbed.Dir].remove(n)
	delete(s.nodes, absorbed.ID)
	s.merges++
	if s.bus != nil && survivor != nil {
		s.bus.Publish(metrics.MergeEvent{
			SurvivorID: survivor.ID,
			AbsorbedID: absorbed.ID,
			Direction:  absorbed.Dir,
			Time:       time.Now(),
		})
	}
}

// Predecessor returns the request enqueued immediately before req in its own
// class, or nil at the class head. The request's direction must be stable
// for the lifetime of its queue membership.
func (s *Scheduler) Predecessor(req *model.Request) *model.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[req.ID]
	if !ok || n.prev == nil {
		return nil
	}
	return n.prev.req
}

// Successor returns the request enqueued immediately after req in its own
// class, or nil at the class tail.
func (s *Scheduler) Successor(req *model.Request) *model.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.nodes[req.ID]
	if !ok || n.next == nil {
		return nil
	}
	return n.next.req
}

// SyncRatio returns the current tunable value.
func (s *Scheduler) SyncRatio() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(s.syncRatio)
}

// SetSyncRatio updates the tunable. Values outside 0-255 are rejected with
// ErrRatioRange and leave the ratio unchanged. Zero is accepted: it
// degenerates the sync batch to a no-op loop, so only async requests are
// serviced until the ratio is raised again.
func (s *Scheduler) SetSyncRatio(v int) error {
	if v < 0 || v > MaxSyncRatio {
		return fmt.Errorf("%w: %d", ErrRatioRange, v)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncRatio = uint8(v)
	s.log.Infof("sync_ratio set to %d", v)
	return nil
}

// Stats returns a snapshot of counters and queue depths.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		DispatchedSync:  s.dispatched[model.Sync],
		DispatchedAsync: s.dispatched[model.Async],
		Batches:         s.batches,
		Merges:          s.merges,
		QueueDepthSync:  s.queues[model.Sync].len(),
		QueueDepthAsync: s.queues[model.Async].len(),
	}
}

// nopLogger backs a nil logger argument.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
