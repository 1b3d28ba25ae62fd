package sched

import "fmt"

// DefaultSyncRatio is the number of sync requests dispatched per batch when
// no explicit ratio is configured.
const DefaultSyncRatio = 4

// MaxSyncRatio bounds the tunable's numeric domain.
const MaxSyncRatio = 255

// Config holds the scheduler settings.
type Config struct {
	// SyncRatio is the initial number of sync requests serviced per batch.
	// It can be changed at runtime through SetSyncRatio, which also accepts
	// zero.
	SyncRatio int `json:"sync_ratio"`
}

// SetDefaults applies the default ratio when none is configured.
func (c *Config) SetDefaults() {
	if c.SyncRatio == 0 {
		c.SyncRatio = DefaultSyncRatio
	}
}

// Validate checks the ratio against the tunable's domain.
func (c Config) Validate() error {
	if c.SyncRatio < 0 || c.SyncRatio > MaxSyncRatio {
		return fmt.Errorf("sync_ratio %d outside 0-%d", c.SyncRatio, MaxSyncRatio)
	}
	return nil
}
