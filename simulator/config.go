package simulator

import "fmt"

// WorkloadConfig shapes the synthetic request stream.
type WorkloadConfig struct {
	// Requests is the number of requests to generate per run.
	Requests int `json:"requests"`
	// SyncFraction is the share of sync requests in the stream.
	SyncFraction float64 `json:"sync_fraction"`
	// SequentialProb is the probability that a request continues the
	// previous request's sector run, which makes it mergeable.
	SequentialProb float64 `json:"sequential_prob"`
	// MaxSectors caps the transfer length of one request.
	MaxSectors uint32 `json:"max_sectors"`
	// Seed makes the stream reproducible. Zero picks a random seed.
	Seed int64 `json:"seed"`
}

// SetDefaults applies a moderate mixed workload.
func (c *WorkloadConfig) SetDefaults() {
	if c.Requests == 0 {
		c.Requests = 1000
	}
	if c.SyncFraction == 0 {
		c.SyncFraction = 0.7
	}
	if c.SequentialProb == 0 {
		c.SequentialProb = 0.3
	}
	if c.MaxSectors == 0 {
		c.MaxSectors = 256
	}
}

// Validate checks fractions and counts.
func (c WorkloadConfig) Validate() error {
	if c.Requests < 0 {
		return fmt.Errorf("requests must be non-negative")
	}
	if c.SyncFraction < 0 || c.SyncFraction > 1 {
		return fmt.Errorf("sync_fraction %f outside [0,1]", c.SyncFraction)
	}
	if c.SequentialProb < 0 || c.SequentialProb > 1 {
		return fmt.Errorf("sequential_prob %f outside [0,1]", c.SequentialProb)
	}
	return nil
}

// DeviceConfig shapes the virtual device consuming dispatched requests.
type DeviceConfig struct {
	// DispatchEvery pulls one batch from the scheduler after this many
	// arrivals.
	DispatchEvery int `json:"dispatch_every"`
}

// SetDefaults pulls a batch every four arrivals.
func (c *DeviceConfig) SetDefaults() {
	if c.DispatchEvery == 0 {
		c.DispatchEvery = 4
	}
}

// Validate checks the pull cadence.
func (c DeviceConfig) Validate() error {
	if c.DispatchEvery < 1 {
		return fmt.Errorf("dispatch_every must be at least 1")
	}
	return nil
}
