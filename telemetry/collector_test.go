package telemetry

import (
	"math"
	"testing"

	"github.com/ember-gfx/ember/systems"
)

func TestCollectorAccumulatesSteps(t *testing.T) {
	c := NewCollector(60, 60)
	c.RecordStep(systems.StepMetrics{Spawned: 3, Died: 1, SubSpawned: 2, Collisions: 5})
	c.RecordStep(systems.StepMetrics{Spawned: 2, Died: 4})
	c.RecordCheckpointPut()
	c.RecordCheckpointPut()
	c.RecordCheckpointRestore()
	c.RecordInvalidation()

	stats := c.Flush(60, 37, 9, nil)

	if stats.Spawned != 5 {
		t.Errorf("Spawned = %d, want 5", stats.Spawned)
	}
	if stats.Died != 5 {
		t.Errorf("Died = %d, want 5", stats.Died)
	}
	if stats.SubSpawned != 2 {
		t.Errorf("SubSpawned = %d, want 2", stats.SubSpawned)
	}
	if stats.Collisions != 5 {
		t.Errorf("Collisions = %d, want 5", stats.Collisions)
	}
	if stats.CheckpointsPut != 2 {
		t.Errorf("CheckpointsPut = %d, want 2", stats.CheckpointsPut)
	}
	if stats.CheckpointsRestored != 1 {
		t.Errorf("CheckpointsRestored = %d, want 1", stats.CheckpointsRestored)
	}
	if stats.Invalidations != 1 {
		t.Errorf("Invalidations = %d, want 1", stats.Invalidations)
	}
	if stats.Live != 37 || stats.Dropped != 9 {
		t.Errorf("Live/Dropped = %d/%d, want 37/9", stats.Live, stats.Dropped)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("SimTimeSec = %g, want 1.0", stats.SimTimeSec)
	}
}

func TestCollectorFlushResetsWindow(t *testing.T) {
	c := NewCollector(60, 60)
	c.RecordStep(systems.StepMetrics{Spawned: 10})
	c.RecordCheckpointPut()
	c.Flush(60, 0, 0, nil)

	stats := c.Flush(120, 4, 2, nil)
	if stats.Spawned != 0 || stats.CheckpointsPut != 0 {
		t.Errorf("counters survived flush: spawned=%d puts=%d", stats.Spawned, stats.CheckpointsPut)
	}
	if stats.WindowStart != 60 || stats.WindowEnd != 120 {
		t.Errorf("window = [%d, %d], want [60, 120]", stats.WindowStart, stats.WindowEnd)
	}
	// Live and dropped are sampled, not accumulated.
	if stats.Live != 4 || stats.Dropped != 2 {
		t.Errorf("Live/Dropped = %d/%d, want 4/2", stats.Live, stats.Dropped)
	}
}

func TestCollectorShouldFlush(t *testing.T) {
	c := NewCollector(30, 60)
	if c.ShouldFlush(29) {
		t.Error("flushed before the window filled")
	}
	if !c.ShouldFlush(30) {
		t.Error("did not flush a full window")
	}
	c.Flush(30, 0, 0, nil)
	if c.ShouldFlush(59) {
		t.Error("window start did not advance on flush")
	}
	if !c.ShouldFlush(60) {
		t.Error("second window did not fill")
	}
}

func TestCollectorDefaults(t *testing.T) {
	c := NewCollector(0, 0)
	if c.WindowFrames() != 60 {
		t.Errorf("WindowFrames = %d, want 60", c.WindowFrames())
	}
	stats := c.Flush(60, 0, 0, nil)
	if math.Abs(stats.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("SimTimeSec = %g, want 1.0 at the fps fallback", stats.SimTimeSec)
	}
}
