package telemetry

import (
	"github.com/ember-gfx/ember/systems"
)

// Collector accumulates step metrics within frame windows and produces
// WindowStats. It observes; it never influences stepping, so a run
// with telemetry enabled replays identically to one without.
type Collector struct {
	windowFrames int32
	fps          float32

	windowStart int32

	spawned    int
	died       int
	subSpawned int
	collisions int

	checkpointsPut      int
	checkpointsRestored int
	invalidations       int
}

// NewCollector creates a collector flushing every windowFrames frames.
func NewCollector(windowFrames int32, fps float32) *Collector {
	if windowFrames < 1 {
		windowFrames = 60
	}
	if fps <= 0 {
		fps = 60
	}
	return &Collector{windowFrames: windowFrames, fps: fps}
}

// RecordStep folds one frame's metrics into the current window.
func (c *Collector) RecordStep(m systems.StepMetrics) {
	c.spawned += m.Spawned
	c.died += m.Died
	c.subSpawned += m.SubSpawned
	c.collisions += m.Collisions
}

// RecordCheckpointPut records an automatic checkpoint snapshot.
func (c *Collector) RecordCheckpointPut() { c.checkpointsPut++ }

// RecordCheckpointRestore records a scrub served from a checkpoint.
func (c *Collector) RecordCheckpointRestore() { c.checkpointsRestored++ }

// RecordInvalidation records a configuration-edit invalidation.
func (c *Collector) RecordInvalidation() { c.invalidations++ }

// ShouldFlush reports whether the window ending at frame is full.
func (c *Collector) ShouldFlush(frame int32) bool {
	return frame-c.windowStart >= c.windowFrames
}

// Flush produces WindowStats for the closed window and resets the
// counters. The caller samples live count, cumulative drops and life
// fractions from the simulation state at the window end.
func (c *Collector) Flush(frame int32, live int, dropped uint64, lifeFractions []float64) WindowStats {
	mean, p10, p50, p90 := ComputeAgeStats(lifeFractions)

	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   frame,
		SimTimeSec:  float64(frame) / float64(c.fps),

		Live:       live,
		Spawned:    c.spawned,
		Died:       c.died,
		SubSpawned: c.subSpawned,
		Collisions: c.collisions,
		Dropped:    dropped,

		CheckpointsPut:      c.checkpointsPut,
		CheckpointsRestored: c.checkpointsRestored,
		Invalidations:       c.invalidations,

		AgeMean: mean,
		AgeP10:  p10,
		AgeP50:  p50,
		AgeP90:  p90,
	}

	c.windowStart = frame
	c.spawned = 0
	c.died = 0
	c.subSpawned = 0
	c.collisions = 0
	c.checkpointsPut = 0
	c.checkpointsRestored = 0
	c.invalidations = 0

	return stats
}

// WindowFrames returns the window length in frames.
func (c *Collector) WindowFrames() int32 {
	return c.windowFrames
}
