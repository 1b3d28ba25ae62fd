package simulator

import (
	"sync"
	"time"

	"github.com/teeterq/teeter/core/metrics"
	"github.com/teeterq/teeter/core/model"
	"github.com/teeterq/teeter/core/sched"
)

// Device is a virtual block device. It records submissions in arrival order
// and publishes per-request wait times; it never reorders what the scheduler
// hands it.
type Device struct {
	mu     sync.Mutex
	served []Served
	bus    sched.Publisher
}

// Served is one request that reached the device.
type Served struct {
	Req         *model.Request
	SubmittedAt time.Time
}

// NewDevice creates a Device. bus may be nil.
func NewDevice(bus sched.Publisher) *Device {
	return &Device{bus: bus}
}

// Submit implements sched.Device.
func (d *Device) Submit(req *model.Request) {
	now := time.Now()
	d.mu.Lock()
	d.served = append(d.served, Served{Req: req, SubmittedAt: now})
	d.mu.Unlock()
	if d.bus != nil {
		d.bus.Publish(metrics.ServeEvent{
			RequestID: req.ID,
			Direction: req.Dir,
			Sectors:   req.Sectors,
			Wait:      now.Sub(req.ArrivedAt),
			Time:      now,
		})
	}
}

// Serviced returns a copy of everything submitted so far, in submission order.
func (d *Device) Serviced() []Served {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Served, len(d.served))
	copy(out, d.served)
	return out
}

// Waits returns the queue wait of every served request in seconds.
func (d *Device) Waits() []float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]float64, len(d.served))
	for i, s := range d.served {
		out[i] = s.SubmittedAt.Sub(s.Req.ArrivedAt).Seconds()
	}
	return out
}
