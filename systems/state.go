package systems

import "github.com/ember-gfx/ember/components"

// SimulationState is everything a step mutates: the live buffer, the
// per-emitter emission remainders, the audio smoothing registers and
// the RNG state. It is mutated only by Stepper.Step and replaced
// wholesale by checkpoint restoration; checkpoints hold deep copies so
// a stored state is never aliased by a live one.
type SimulationState struct {
	Frame  int32
	NextID uint64

	// Particles is append-only within a step and compacted
	// order-preserving afterwards, so it is always sorted by id.
	Particles []components.Particle

	// EmitAccum carries fractional emission quotas per emitter.
	EmitAccum []float32

	// AudioSmooth holds the exponential smoothing register for each
	// audio mapping, per emitter. Keeping it in simulation state means
	// replay reproduces the same smoothed history as live playback.
	AudioSmooth [][]float32

	RNG SourceState

	// DroppedSpawns counts spawns discarded at the pool ceiling.
	// Pool exhaustion is not an error, just a metric.
	DroppedSpawns uint64
}

// NewSimulationState creates the frame-0 state for a configuration.
func NewSimulationState(cfg *components.SystemConfig) *SimulationState {
	s := &SimulationState{
		Particles:   make([]components.Particle, 0, 256),
		EmitAccum:   make([]float32, len(cfg.Emitters)),
		AudioSmooth: make([][]float32, len(cfg.Emitters)),
		RNG:         NewSource(cfg.Seed).State(),
	}
	for i := range cfg.Emitters {
		s.AudioSmooth[i] = make([]float32, len(cfg.Emitters[i].Audio))
	}
	return s
}

// Clone returns a deep, aliasing-free copy.
func (s *SimulationState) Clone() *SimulationState {
	c := &SimulationState{
		Frame:         s.Frame,
		NextID:        s.NextID,
		Particles:     make([]components.Particle, len(s.Particles)),
		EmitAccum:     make([]float32, len(s.EmitAccum)),
		AudioSmooth:   make([][]float32, len(s.AudioSmooth)),
		RNG:           s.RNG,
		DroppedSpawns: s.DroppedSpawns,
	}
	copy(c.Particles, s.Particles)
	copy(c.EmitAccum, s.EmitAccum)
	for i := range s.AudioSmooth {
		c.AudioSmooth[i] = make([]float32, len(s.AudioSmooth[i]))
		copy(c.AudioSmooth[i], s.AudioSmooth[i])
	}
	return c
}

// LiveCount returns the number of particles not marked dead.
func (s *SimulationState) LiveCount() int {
	n := 0
	for i := range s.Particles {
		if !s.Particles[i].Dead {
			n++
		}
	}
	return n
}

// compact removes dead particles in place, preserving order (and with
// it the ascending-id invariant). Returns the removed particles in
// their original order for trigger dispatch.
func (s *SimulationState) compact(deadOut []components.Particle) []components.Particle {
	alive := 0
	for i := range s.Particles {
		if s.Particles[i].Dead {
			deadOut = append(deadOut, s.Particles[i])
			continue
		}
		s.Particles[alive] = s.Particles[i]
		alive++
	}
	s.Particles = s.Particles[:alive]
	return deadOut
}

// Snapshot fills out the flat render buffer for the current frame,
// applying modulation to every live particle.
func (s *SimulationState) Snapshot(dst *components.ParticleSnapshot, mod *ModEvaluator) {
	dst.Reset(s.Frame)
	for i := range s.Particles {
		p := &s.Particles[i]
		if p.Dead {
			continue
		}
		t := p.LifeT()
		dst.Append(
			p.Pos,
			mod.Size(t, p.Size),
			p.Rotation,
			mod.Opacity(t, p.Opacity),
			mod.Color(t, p.Color),
		)
	}
}
