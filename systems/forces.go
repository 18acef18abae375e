package systems

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/ember-gfx/ember/components"
)

// ForceEvaluator sums per-frame accelerations over the enabled force
// fields of a system. It is rebuilt on every configuration change and
// holds no mutable state: evaluation is a pure function of position,
// velocity and frame, which is what makes force fields replay-safe.
type ForceEvaluator struct {
	fields []components.ForceField
	noise  []opensimplex.Noise // parallel to fields; non-nil for turbulence
}

// NewForceEvaluator prepares an evaluator for the field list. The
// turbulence noise generators are seeded from each field's Seed, so
// identical configs always produce identical noise.
func NewForceEvaluator(fields []components.ForceField) *ForceEvaluator {
	return newForceEvaluatorCached(fields, nil)
}

// newForceEvaluatorCached reuses noise generators from cache (keyed by
// seed) when rebuilding the evaluator for an animated per-frame config.
// Generator construction builds permutation tables; animated playback
// rebuilds the evaluator every frame and must not pay that repeatedly.
func newForceEvaluatorCached(fields []components.ForceField, cache map[int64]opensimplex.Noise) *ForceEvaluator {
	e := &ForceEvaluator{
		fields: fields,
		noise:  make([]opensimplex.Noise, len(fields)),
	}
	for i := range fields {
		if fields[i].Kind != components.FieldTurbulence {
			continue
		}
		seed := fields[i].Seed
		if cache != nil {
			if n, ok := cache[seed]; ok {
				e.noise[i] = n
				continue
			}
		}
		n := opensimplex.New(seed)
		e.noise[i] = n
		if cache != nil {
			cache[seed] = n
		}
	}
	return e
}

// Acceleration returns the summed acceleration for a particle at pos
// with velocity vel on the given frame. Disabled fields contribute
// nothing; fields outside their radius are clipped to zero.
func (e *ForceEvaluator) Acceleration(pos, vel components.Vec3, frame int32) components.Vec3 {
	var acc components.Vec3
	for i := range e.fields {
		f := &e.fields[i]
		if !f.Enabled {
			continue
		}
		switch f.Kind {
		case components.FieldGravityWell:
			acc = acc.Add(gravityWell(f, pos))
		case components.FieldVortex:
			acc = acc.Add(vortex(f, pos))
		case components.FieldTurbulence:
			acc = acc.Add(turbulence(f, e.noise[i], pos, frame))
		case components.FieldGlobalWind:
			acc = acc.Add(f.Direction.Normalized().Scale(f.Strength))
		case components.FieldGlobalDrag:
			acc = acc.Add(vel.Scale(-f.Strength))
		}
	}
	return acc
}

// gravityWell pulls radially toward the field center with the
// configured falloff, clipped beyond the field radius.
func gravityWell(f *components.ForceField, pos components.Vec3) components.Vec3 {
	delta := f.Center.Sub(pos)
	dist := delta.Len()
	if f.Radius > 0 && dist > f.Radius {
		return components.Vec3{}
	}
	if dist < 1e-4 {
		return components.Vec3{}
	}

	strength := f.Strength
	switch f.Falloff {
	case components.FalloffLinear:
		strength *= 1 - dist/f.Radius
	case components.FalloffQuadratic:
		n := 1 - dist/f.Radius
		strength *= n * n
	case components.FalloffConstant:
		// full strength across the radius
	}
	return delta.Scale(strength / dist)
}

// vortex applies a tangential swirl around the field's Y axis plus an
// inward-pull term that keeps orbits from unwinding.
func vortex(f *components.ForceField, pos components.Vec3) components.Vec3 {
	delta := pos.Sub(f.Center)
	planar := components.Vec3{X: delta.X, Z: delta.Z}
	dist := planar.Len()
	if f.Radius > 0 && dist > f.Radius {
		return components.Vec3{}
	}
	if dist < 1e-4 {
		return components.Vec3{}
	}

	tangent := components.Vec3{X: -planar.Z / dist, Z: planar.X / dist}
	inward := planar.Scale(-1 / dist)
	return tangent.Scale(f.Strength).Add(inward.Scale(f.Strength * f.InwardPull))
}

// turbulence samples a divergence-free-ish wobble from three offset
// slices of a simplex noise volume. The noise depends only on position
// and frame; there is no internal randomness to desynchronize replay.
func turbulence(f *components.ForceField, n opensimplex.Noise, pos components.Vec3, frame int32) components.Vec3 {
	t := float64(float32(frame) * f.TimeScale)
	x := float64(pos.X * f.NoiseScale)
	y := float64(pos.Y * f.NoiseScale)
	z := float64(pos.Z * f.NoiseScale)

	// Offsets decorrelate the three axes within one generator.
	ax := n.Eval4(x, y, z, t)
	ay := n.Eval4(x+101.3, y+47.9, z+13.7, t)
	az := n.Eval4(x-77.7, y-31.1, z+91.1, t)

	return components.Vec3{
		X: float32(ax) * f.Strength,
		Y: float32(ay) * f.Strength,
		Z: float32(az) * f.Strength,
	}
}
