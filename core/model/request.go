package model

import "time"

// Direction classifies a block request by service class. The class is fixed
// when the request is created and must not change while the request is
// queued.
type Direction uint8

const (
	// Sync requests are latency sensitive (foreground reads, fsync writes).
	Sync Direction = iota
	// Async requests are background transfers (writeback, readahead).
	Async
)

// NumDirections is the number of service classes.
const NumDirections = 2

func (d Direction) String() string {
	switch d {
	case Sync:
		return "sync"
	case Async:
		return "async"
	default:
		return "unknown"
	}
}

// Request is a single block I/O request as seen by the scheduler. The host
// owns the payload; the scheduler only tracks queue membership keyed by ID.
type Request struct {
	// ID uniquely identifies the request for the lifetime of its queue
	// membership.
	ID string
	// Dir is the service class. Invariant: stable while queued.
	Dir Direction
	// Sector is the first logical sector addressed by the request.
	Sector uint64
	// Sectors is the transfer length in sectors.
	Sectors uint32
	// ArrivedAt is when the host handed the request to the scheduler.
	ArrivedAt time.Time
}

// EndSector returns the first sector past the request's range.
func (r *Request) EndSector() uint64 {
	return r.Sector + uint64(r.Sectors)
}
