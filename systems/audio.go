package systems

import "github.com/ember-gfx/ember/components"

// EmitterOverrides are the per-frame effective multipliers an
// emitter's audio mappings produce. All factors default to 1.
type EmitterOverrides struct {
	RateScale    float32
	SpeedScale   float32
	SizeScale    float32
	OpacityScale float32
	// BurstCount is the number of extra particles beat-burst mappings
	// request this frame.
	BurstCount int
}

// ApplyAudio evaluates one emitter's audio mapping table against the
// frame's features and advances the smoothing registers in state.
// The registers are part of SimulationState precisely so that a replay
// walking the same frames sees the same smoothed history.
//
// effective = base * (1 + scale*value), value optionally inverted,
// exponentially smoothed and clamped to [0,1]. Beat-burst mappings
// fire whenever the (smoothed) value reaches 0.5; the analyzer
// raises the beat flag for a single frame, so this is edge-like
// without extra state.
func ApplyAudio(em *components.EmitterConfig, emitterIdx int, frame components.AudioFrame, state *SimulationState) EmitterOverrides {
	ov := EmitterOverrides{RateScale: 1, SpeedScale: 1, SizeScale: 1, OpacityScale: 1}
	if len(em.Audio) == 0 {
		return ov
	}

	regs := state.AudioSmooth[emitterIdx]
	for m := range em.Audio {
		mapping := &em.Audio[m]
		v := frame.Value(mapping.Feature)
		if mapping.Invert {
			v = 1 - v
		}
		if mapping.Smoothing > 0 {
			v = regs[m]*mapping.Smoothing + v*(1-mapping.Smoothing)
		}
		regs[m] = v
		if mapping.Clamp {
			v = clamp32(v, 0, 1)
		}

		switch mapping.Target {
		case components.AudioTargetRate:
			ov.RateScale *= 1 + mapping.Scale*v
		case components.AudioTargetSpeed:
			ov.SpeedScale *= 1 + mapping.Scale*v
		case components.AudioTargetSize:
			ov.SizeScale *= 1 + mapping.Scale*v
		case components.AudioTargetOpacity:
			ov.OpacityScale *= 1 + mapping.Scale*v
		case components.AudioTargetBurst:
			if v >= 0.5 {
				ov.BurstCount += mapping.BeatBurst
			}
		}
	}

	if ov.RateScale < 0 {
		ov.RateScale = 0
	}
	return ov
}
