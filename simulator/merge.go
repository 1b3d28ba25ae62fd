package simulator

import (
	"github.com/teeterq/teeter/core/model"
	"github.com/teeterq/teeter/core/sched"
)

// MergeLayer is the host-side coalescing step. After a request is enqueued
// it probes the scheduler for the adjacent-in-class neighbors and folds
// sector-contiguous requests together, reporting each fold through
// NotifyMerged. The scheduler itself never inspects sectors.
type MergeLayer struct {
	sched *sched.Scheduler
}

// NewMergeLayer wraps the scheduler.
func NewMergeLayer(s *sched.Scheduler) *MergeLayer {
	return &MergeLayer{sched: s}
}

// EnqueueAndMerge hands the request to the scheduler, then coalesces it with
// sector-contiguous neighbors, cascading while the surviving request keeps
// abutting another one. It returns the number of requests absorbed.
func (m *MergeLayer) EnqueueAndMerge(req *model.Request) int {
	m.sched.Enqueue(req)
	return m.attempt(req)
}

// attempt merges req with its queue neighbors where the sector ranges abut.
// The surviving request keeps its own queue position; the absorbed one is
// removed through NotifyMerged.
func (m *MergeLayer) attempt(req *model.Request) int {
	if prev := m.sched.Predecessor(req); prev != nil {
		if prev.EndSector() == req.Sector {
			// Back merge: the neighbor grows over req.
			prev.Sectors += req.Sectors
			m.sched.NotifyMerged(prev, req)
			return 1 + m.attempt(prev)
		}
		if req.EndSector() == prev.Sector {
			// Front merge: req grows over the neighbor.
			req.Sectors += prev.Sectors
			m.sched.NotifyMerged(req, prev)
			return 1 + m.attempt(req)
		}
	}
	if next := m.sched.Successor(req); next != nil {
		if req.EndSector() == next.Sector {
			req.Sectors += next.Sectors
			m.sched.NotifyMerged(req, next)
			return 1 + m.attempt(req)
		}
		if next.EndSector() == req.Sector {
			next.Sectors += req.Sectors
			m.sched.NotifyMerged(next, req)
			return 1 + m.attempt(next)
		}
	}
	return 0
}
