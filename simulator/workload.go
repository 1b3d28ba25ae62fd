package simulator

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/teeterq/teeter/core/model"
)

// Workload generates a synthetic block request stream. Sector runs are
// partly sequential so that adjacent requests actually occur and the merge
// layer has work to do.
type Workload struct {
	cfg WorkloadConfig
	rng *rand.Rand

	// per-class cursor of the last generated run, for sequential follow-ups
	nextSector [model.NumDirections]uint64
}

// NewWorkload creates a generator. A zero seed is replaced with the clock.
func NewWorkload(cfg WorkloadConfig) *Workload {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w := &Workload{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
	for d := range w.nextSector {
		w.nextSector[d] = uint64(w.rng.Int63n(1 << 30))
	}
	return w
}

// Next produces one request.
func (w *Workload) Next() *model.Request {
	dir := model.Async
	if w.rng.Float64() < w.cfg.SyncFraction {
		dir = model.Sync
	}
	sectors := uint32(w.rng.Int31n(int32(w.cfg.MaxSectors))) + 1

	var sector uint64
	if w.rng.Float64() < w.cfg.SequentialProb {
		sector = w.nextSector[dir]
	} else {
		sector = uint64(w.rng.Int63n(1 << 30))
	}
	w.nextSector[dir] = sector + uint64(sectors)

	return &model.Request{
		ID:        uuid.NewString(),
		Dir:       dir,
		Sector:    sector,
		Sectors:   sectors,
		ArrivedAt: time.Now(),
	}
}
