package telemetry

import (
	"log/slog"
	"time"
)

// SeekTimer tracks seek latencies over a rolling window. The replay
// contract bounds scrub cost by the checkpoint interval; the timer
// makes regressions visible in the preview HUD and the audit tool.
type SeekTimer struct {
	windowSize  int
	samples     []time.Duration
	writeIndex  int
	sampleCount int
	start       time.Time
}

// NewSeekTimer creates a timer averaging over windowSize seeks.
func NewSeekTimer(windowSize int) *SeekTimer {
	if windowSize < 1 {
		windowSize = 60
	}
	return &SeekTimer{
		windowSize: windowSize,
		samples:    make([]time.Duration, windowSize),
	}
}

// Begin marks the start of a seek.
func (t *SeekTimer) Begin() {
	t.start = time.Now()
}

// End records the elapsed seek time and returns it.
func (t *SeekTimer) End() time.Duration {
	d := time.Since(t.start)
	t.samples[t.writeIndex] = d
	t.writeIndex = (t.writeIndex + 1) % t.windowSize
	if t.sampleCount < t.windowSize {
		t.sampleCount++
	}
	return d
}

// SeekStats holds aggregated seek timing over the window.
type SeekStats struct {
	Avg time.Duration
	Min time.Duration
	Max time.Duration
}

// Stats aggregates the recorded samples.
func (t *SeekTimer) Stats() SeekStats {
	if t.sampleCount == 0 {
		return SeekStats{}
	}
	var sum time.Duration
	min := t.samples[0]
	max := t.samples[0]
	for i := 0; i < t.sampleCount; i++ {
		d := t.samples[i]
		sum += d
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return SeekStats{
		Avg: sum / time.Duration(t.sampleCount),
		Min: min,
		Max: max,
	}
}

// Log emits the current stats through slog.
func (t *SeekTimer) Log() {
	s := t.Stats()
	slog.Info("seek timing",
		"avg_ms", float64(s.Avg.Microseconds())/1000.0,
		"min_ms", float64(s.Min.Microseconds())/1000.0,
		"max_ms", float64(s.Max.Microseconds())/1000.0,
	)
}
