package systems

import (
	"github.com/tanema/gween/ease"

	"github.com/ember-gfx/ember/components"
)

// curveFuncs maps curve ids to easing functions. The set mirrors what
// the host's curve picker exposes; unknown ids fail validation, so the
// evaluator can index without checking.
var curveFuncs = map[components.CurveID]ease.TweenFunc{
	components.CurveLinear:     ease.Linear,
	components.CurveQuadIn:     ease.InQuad,
	components.CurveQuadOut:    ease.OutQuad,
	components.CurveQuadInOut:  ease.InOutQuad,
	components.CurveCubicIn:    ease.InCubic,
	components.CurveCubicOut:   ease.OutCubic,
	components.CurveCubicInOut: ease.InOutCubic,
	components.CurveSineIn:     ease.InSine,
	components.CurveSineOut:    ease.OutSine,
	components.CurveSineInOut:  ease.InOutSine,
	components.CurveExpoIn:     ease.InExpo,
	components.CurveExpoOut:    ease.OutExpo,
}

// KnownCurve reports whether id names a registered easing curve.
func KnownCurve(id components.CurveID) bool {
	_, ok := curveFuncs[id]
	return ok
}

// ModEvaluator maps particle age to property values through the
// configured eased curves. It is a pure function of age: no randomness
// and no state, so it can be called any number of times with identical
// results (snapshots, collision radii and integration all consult it).
type ModEvaluator struct {
	curves map[components.ModTarget]evalCurve
}

type evalCurve struct {
	fn    ease.TweenFunc
	start float32
	end   float32
}

// NewModEvaluator builds an evaluator from the configured curves.
// Later curves for the same target replace earlier ones.
func NewModEvaluator(curves []components.ModulationCurve) *ModEvaluator {
	e := &ModEvaluator{curves: make(map[components.ModTarget]evalCurve, len(curves))}
	for _, c := range curves {
		fn, ok := curveFuncs[c.Curve]
		if !ok {
			continue // validation rejects these before they get here
		}
		e.curves[c.Target] = evalCurve{fn: fn, start: c.Start, end: c.End}
	}
	return e
}

// Value returns the curve value for target at life t in [0,1], or
// fallback when no curve drives that target.
func (e *ModEvaluator) Value(target components.ModTarget, t, fallback float32) float32 {
	c, ok := e.curves[target]
	if !ok {
		return fallback
	}
	return c.fn(t, c.start, c.end-c.start, 1)
}

// Size returns the modulated size for a base size at life t.
func (e *ModEvaluator) Size(t, base float32) float32 {
	return base * e.Value(components.ModSize, t, 1)
}

// SpeedFactor returns the velocity multiplier at life t.
func (e *ModEvaluator) SpeedFactor(t float32) float32 {
	return e.Value(components.ModSpeed, t, 1)
}

// Opacity returns the modulated opacity for a base opacity at life t.
func (e *ModEvaluator) Opacity(t, base float32) float32 {
	return clamp32(base*e.Value(components.ModOpacity, t, 1), 0, 1)
}

// Color returns the modulated color. Channel curves are absolute
// values, not multipliers; channels without a curve keep the base.
func (e *ModEvaluator) Color(t float32, base components.RGBA) components.RGBA {
	return components.RGBA{
		R: e.Value(components.ModColorR, t, base.R),
		G: e.Value(components.ModColorG, t, base.G),
		B: e.Value(components.ModColorB, t, base.B),
		A: e.Value(components.ModColorA, t, base.A),
	}
}
