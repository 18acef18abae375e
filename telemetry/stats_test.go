package telemetry

import (
	"math"
	"testing"
)

func TestComputeAgeStats(t *testing.T) {
	tests := []struct {
		name                string
		values              []float64
		mean, p10, p50, p90 float64
	}{
		{
			name:   "empty pool",
			values: nil,
		},
		{
			name:   "single particle",
			values: []float64{0.4},
			mean:   0.4, p10: 0.4, p50: 0.4, p90: 0.4,
		},
		{
			name:   "unsorted five",
			values: []float64{0.5, 0.1, 0.9, 0.3, 0.7},
			mean:   0.5, p10: 0.1, p50: 0.5, p90: 0.9,
		},
		{
			name: "decile ladder",
			values: []float64{
				0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0,
			},
			mean: 0.55, p10: 0.1, p50: 0.5, p90: 0.9,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, p10, p50, p90 := ComputeAgeStats(tt.values)
			const eps = 1e-9
			if math.Abs(mean-tt.mean) > eps {
				t.Errorf("mean = %g, want %g", mean, tt.mean)
			}
			if math.Abs(p10-tt.p10) > eps {
				t.Errorf("p10 = %g, want %g", p10, tt.p10)
			}
			if math.Abs(p50-tt.p50) > eps {
				t.Errorf("p50 = %g, want %g", p50, tt.p50)
			}
			if math.Abs(p90-tt.p90) > eps {
				t.Errorf("p90 = %g, want %g", p90, tt.p90)
			}
		})
	}
}

func TestComputeAgeStatsDoesNotReorderInput(t *testing.T) {
	values := []float64{0.9, 0.1, 0.5}
	ComputeAgeStats(values)
	if values[0] != 0.9 || values[1] != 0.1 || values[2] != 0.5 {
		t.Errorf("input mutated: %v", values)
	}
}
