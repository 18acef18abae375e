// Package telemetry aggregates per-frame simulation metrics into
// window statistics and writes them as CSV alongside replay audit
// events. Nothing in this package feeds back into the simulation.
package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated counters for one frame window.
type WindowStats struct {
	WindowStart int32   `csv:"-"`
	WindowEnd   int32   `csv:"window_end"`
	SimTimeSec  float64 `csv:"sim_time"`

	// Live pool at window end.
	Live int `csv:"live"`

	// Events during the window.
	Spawned    int `csv:"spawned"`
	Died       int `csv:"died"`
	SubSpawned int `csv:"sub_spawned"`
	Collisions int `csv:"collisions"`

	// Cumulative pool-exhaustion drops at window end.
	Dropped uint64 `csv:"dropped"`

	// Replay activity during the window.
	CheckpointsPut      int `csv:"checkpoints_put"`
	CheckpointsRestored int `csv:"checkpoints_restored"`
	Invalidations       int `csv:"invalidations"`

	// Age distribution (in life fraction, 0..1) at window end.
	AgeMean float64 `csv:"age_mean"`
	AgeP10  float64 `csv:"age_p10"`
	AgeP50  float64 `csv:"age_p50"`
	AgeP90  float64 `csv:"age_p90"`
}

// ComputeAgeStats calculates mean and percentiles of the live pool's
// life fractions. Returns zeros for an empty pool.
func ComputeAgeStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}
