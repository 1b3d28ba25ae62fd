package simulator

import (
	"testing"

	"github.com/teeterq/teeter/core/model"
)

func TestWorkloadDeterministicWithSeed(t *testing.T) {
	cfg := WorkloadConfig{Requests: 10, SyncFraction: 0.5, SequentialProb: 0.5, MaxSectors: 64, Seed: 42}
	a := NewWorkload(cfg)
	b := NewWorkload(cfg)
	for i := 0; i < 10; i++ {
		ra, rb := a.Next(), b.Next()
		if ra.Dir != rb.Dir || ra.Sector != rb.Sector || ra.Sectors != rb.Sectors {
			t.Fatalf("request %d diverged: %+v vs %+v", i, ra, rb)
		}
	}
}

func TestWorkloadShape(t *testing.T) {
	cfg := WorkloadConfig{SyncFraction: 1, SequentialProb: 0, MaxSectors: 8, Seed: 7}
	cfg.SetDefaults()
	w := NewWorkload(cfg)
	for i := 0; i < 100; i++ {
		r := w.Next()
		if r.Dir != model.Sync {
			t.Fatalf("sync_fraction=1 must only produce sync, got %v", r.Dir)
		}
		if r.Sectors < 1 || r.Sectors > 8 {
			t.Fatalf("sectors %d outside 1-8", r.Sectors)
		}
		if r.ID == "" {
			t.Fatal("missing request ID")
		}
	}
}

func TestWorkloadSequentialRuns(t *testing.T) {
	cfg := WorkloadConfig{Requests: 50, SyncFraction: 1, SequentialProb: 1, MaxSectors: 16, Seed: 3}
	w := NewWorkload(cfg)
	prev := w.Next()
	for i := 0; i < 20; i++ {
		r := w.Next()
		if r.Sector != prev.EndSector() {
			t.Fatalf("sequential_prob=1 must chain runs: %d follows end %d", r.Sector, prev.EndSector())
		}
		prev = r
	}
}

func TestWorkloadConfigValidate(t *testing.T) {
	bad := []WorkloadConfig{
		{Requests: -1, SyncFraction: 0.5, SequentialProb: 0.5},
		{Requests: 1, SyncFraction: 1.5, SequentialProb: 0.5},
		{Requests: 1, SyncFraction: 0.5, SequentialProb: -0.1},
	}
	for i, c := range bad {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}
