package systems

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/ember-gfx/ember/components"
)

// StepMetrics reports what one frame advance did; the telemetry
// collector aggregates these into windows.
type StepMetrics struct {
	Spawned    int
	Died       int
	SubSpawned int
	Collisions int
	Dropped    uint64 // cumulative pool-exhaustion drops after the step
}

// Stepper advances one system one frame at a time. It owns no
// simulation state: everything mutable lives in SimulationState, which
// callers pass in, so the same Stepper serves live stepping and
// checkpoint replay. A Stepper must not be driven by two in-flight
// requests at once; the owner serializes access.
type Stepper struct {
	noiseCache map[int64]opensimplex.Noise
	resolver   *CollisionResolver

	// scratch buffers reused across frames
	events []TriggerEvent
	dead   []components.Particle
}

// NewStepper creates a stepper.
func NewStepper() *Stepper {
	return &Stepper{
		noiseCache: make(map[int64]opensimplex.Noise),
	}
}

// Step advances state by one frame against cfg, the effective
// configuration for the frame being produced (the host interpolates
// keyframes; the engine never does). audio carries that frame's
// feature values, zero-valued when no audio is mapped.
//
// Pipeline per frame: (a) age and integrate all live particles
// (forces, drag fields, modulation speed), (b) collision resolution,
// (c) remove dead particles and collect their death triggers, run the
// sub-emitter dispatch pass, (d) accumulate emission quotas and emit,
// (e) fire frame bursts and beat bursts. Step order and iteration
// order are fixed, which is what pins RNG consumption for replay.
func (st *Stepper) Step(state *SimulationState, cfg *components.SystemConfig, audio components.AudioFrame) StepMetrics {
	newFrame := state.Frame + 1
	dt := cfg.DT()

	// Idle: nothing live and nothing emitting. The frame still
	// advances so seeks stay frame-exact.
	if len(state.Particles) == 0 && !cfg.HasEnabledEmitter() {
		state.Frame = newFrame
		return StepMetrics{Dropped: state.DroppedSpawns}
	}

	rng := &Source{state: state.RNG}
	mod := NewModEvaluator(cfg.Curves)
	forces := newForceEvaluatorCached(cfg.Fields, st.noiseCache)
	if st.resolver == nil {
		st.resolver = NewCollisionResolver(cfg.Collision)
	} else {
		st.resolver.SetConfig(cfg.Collision)
	}

	var metrics StepMetrics

	// (a) age and integrate
	for i := range state.Particles {
		p := &state.Particles[i]
		p.Age++
		if p.Age >= p.MaxAge {
			p.Dead = true
			continue
		}
		t := p.LifeT()
		acc := cfg.Gravity.Add(forces.Acceleration(p.Pos, p.Vel, newFrame))
		p.Vel = p.Vel.Add(acc)
		p.Pos = p.Pos.Add(p.Vel.Scale(mod.SpeedFactor(t)))
		p.Rotation += p.Spin
	}

	// (b) collision resolution
	st.events = st.resolver.Resolve(state, mod, st.events[:0])
	metrics.Collisions = len(st.events)

	// (c) compact dead particles, append their death triggers, then
	// run the single dispatch pass over everything collected so far.
	st.dead = state.compact(st.dead[:0])
	metrics.Died = len(st.dead)
	for i := range st.dead {
		dp := &st.dead[i]
		st.events = append(st.events, TriggerEvent{
			Kind:     components.TriggerDeath,
			ParentID: dp.ID,
			GroupID:  dp.GroupID,
			Pos:      dp.Pos,
			Vel:      dp.Vel,
		})
	}
	before := len(state.Particles)
	NewSubEmitterDispatcher(cfg).Dispatch(state, st.events, rng)
	metrics.SubSpawned = len(state.Particles) - before

	// (d) emission, (e) bursts. Audio overrides are evaluated exactly
	// once per emitter per frame so the smoothing registers advance at
	// frame rate.
	st.events = st.events[:0]
	birthLinks := false
	for e := range cfg.Emitters {
		em := &cfg.Emitters[e]
		if !em.Enabled {
			continue
		}
		ov := ApplyAudio(em, e, audio, state)

		quota := em.Rate*dt*ov.RateScale + state.EmitAccum[e]
		n := int(quota)
		state.EmitAccum[e] = quota - float32(n)

		for _, b := range em.Bursts {
			if b.Frame == newFrame {
				n += b.Count
			}
		}
		n += ov.BurstCount

		for k := 0; k < n; k++ {
			if st.emit(state, cfg, em, uint32(e), ov, rng) {
				metrics.Spawned++
			}
		}
		for _, link := range em.Sub {
			if link.Trigger == components.TriggerBirth {
				birthLinks = true
			}
		}
	}

	// Birth triggers fire for this frame's spawns in one extra pass.
	// Children of birth-triggered spawns wait for their own events in
	// later frames; the configure-time DAG check makes that finite.
	if birthLinks && len(st.events) > 0 {
		NewSubEmitterDispatcher(cfg).Dispatch(state, st.events, rng)
	}

	state.Frame = newFrame
	state.RNG = rng.State()
	metrics.Dropped = state.DroppedSpawns
	return metrics
}

// emit spawns one particle from an emitter, consuming the emitter's
// fixed draw budget: shape draws, 2 spread draws, speed and lifetime.
// Returns false when the pool ceiling dropped the spawn (no draws are
// consumed for dropped spawns; the ceiling is part of the config, so
// determinism for a fixed config is unaffected).
func (st *Stepper) emit(state *SimulationState, cfg *components.SystemConfig, em *components.EmitterConfig, group uint32, ov EmitterOverrides, rng *Source) bool {
	if len(state.Particles) >= cfg.MaxParticles {
		state.DroppedSpawns++
		return false
	}

	sp := SampleShape(&em.Shape, em.Origin, rng)
	dir := ApplySpread(sp.Dir, em.Spread, rng)
	speed := rng.Range(em.SpeedMin, em.SpeedMax) * ov.SpeedScale
	life := rng.Range(em.LifeMin, em.LifeMax)

	p := components.Particle{
		ID:      state.NextID,
		GroupID: group,
		Pos:     sp.Pos,
		Vel:     dir.Scale(speed),
		MaxAge:  life,
		Size:    em.Size * ov.SizeScale,
		Spin:    em.Spin,
		Color:   em.Color,
		Opacity: clamp32(em.Opacity*ov.OpacityScale, 0, 1),
	}
	state.NextID++
	state.Particles = append(state.Particles, p)

	st.events = append(st.events, TriggerEvent{
		Kind:     components.TriggerBirth,
		ParentID: p.ID,
		GroupID:  group,
		Pos:      p.Pos,
		Vel:      p.Vel,
	})
	return true
}
