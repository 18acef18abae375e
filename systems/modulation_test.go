package systems

import (
	"math"
	"testing"

	"github.com/ember-gfx/ember/components"
)

func TestCurveEndpoints(t *testing.T) {
	curves := []components.CurveID{
		components.CurveLinear,
		components.CurveQuadIn,
		components.CurveQuadOut,
		components.CurveQuadInOut,
		components.CurveCubicIn,
		components.CurveCubicOut,
		components.CurveCubicInOut,
		components.CurveSineIn,
		components.CurveSineOut,
		components.CurveSineInOut,
		components.CurveExpoOut,
	}
	for _, id := range curves {
		t.Run(string(id), func(t *testing.T) {
			e := NewModEvaluator([]components.ModulationCurve{
				{Target: components.ModSize, Start: 2, End: 0.5, Curve: id},
			})
			got := e.Value(components.ModSize, 0, 1)
			if math.Abs(float64(got-2)) > 0.01 {
				t.Errorf("t=0: got %v, want 2", got)
			}
			got = e.Value(components.ModSize, 1, 1)
			if math.Abs(float64(got-0.5)) > 0.01 {
				t.Errorf("t=1: got %v, want 0.5", got)
			}
		})
	}
}

func TestLinearMidpoint(t *testing.T) {
	e := NewModEvaluator([]components.ModulationCurve{
		{Target: components.ModOpacity, Start: 1, End: 0, Curve: components.CurveLinear},
	})
	got := e.Value(components.ModOpacity, 0.5, 1)
	if math.Abs(float64(got-0.5)) > 0.001 {
		t.Errorf("midpoint = %v, want 0.5", got)
	}
}

func TestValueFallback(t *testing.T) {
	e := NewModEvaluator(nil)
	if got := e.Value(components.ModSize, 0.3, 1.5); got != 1.5 {
		t.Errorf("fallback = %v, want 1.5", got)
	}
	if got := e.SpeedFactor(0.7); got != 1 {
		t.Errorf("speed fallback = %v, want 1", got)
	}
}

func TestSizeMultiplies(t *testing.T) {
	e := NewModEvaluator([]components.ModulationCurve{
		{Target: components.ModSize, Start: 1, End: 3, Curve: components.CurveLinear},
	})
	got := e.Size(1, 2)
	if math.Abs(float64(got-6)) > 0.001 {
		t.Errorf("size = %v, want 6", got)
	}
}

func TestOpacityClamped(t *testing.T) {
	e := NewModEvaluator([]components.ModulationCurve{
		{Target: components.ModOpacity, Start: 5, End: 5, Curve: components.CurveLinear},
	})
	if got := e.Opacity(0.5, 1); got != 1 {
		t.Errorf("opacity = %v, want clamp to 1", got)
	}
}

func TestColorChannelsAbsolute(t *testing.T) {
	e := NewModEvaluator([]components.ModulationCurve{
		{Target: components.ModColorR, Start: 0, End: 1, Curve: components.CurveLinear},
	})
	base := components.RGBA{R: 0.2, G: 0.4, B: 0.6, A: 0.8}
	got := e.Color(1, base)
	if math.Abs(float64(got.R-1)) > 0.001 {
		t.Errorf("R = %v, want 1 (absolute, not scaled)", got.R)
	}
	if got.G != base.G || got.B != base.B || got.A != base.A {
		t.Errorf("channels without curves changed: %+v", got)
	}
}

func TestKnownCurve(t *testing.T) {
	if !KnownCurve(components.CurveLinear) {
		t.Error("linear should be known")
	}
	if KnownCurve("bounce-out") {
		t.Error("unregistered id should be unknown")
	}
}
