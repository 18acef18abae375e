package components

// Particle is one live particle. Particles are owned exclusively by
// their system's live buffer; ids come from a per-system monotonic
// counter, never from wall-clock or an unseeded source, so the buffer
// is always sorted by id (spawns append, compaction preserves order).
type Particle struct {
	ID      uint64
	GroupID uint32 // emitter index that spawned this particle (sub-emitters get their own group)

	Pos Vec3
	Vel Vec3

	Age    float32 // frames lived so far
	MaxAge float32 // frames until death

	Size     float32 // base size at spawn; modulation derives the rendered size
	Rotation float32 // radians
	Spin     float32 // radians per frame

	Color   RGBA
	Opacity float32

	Dead bool // marked during a step, compacted at the end of the step
}

// LifeT returns age/maxAge clamped to [0,1], the input to modulation
// curves.
func (p *Particle) LifeT() float32 {
	if p.MaxAge <= 0 {
		return 1
	}
	t := p.Age / p.MaxAge
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// ParticleSnapshot is the flat per-frame buffer handed to render
// consumers. Layout: one entry per live particle, parallel slices.
// The engine never draws pixels; hosts read these buffers directly.
type ParticleSnapshot struct {
	Frame int32
	Count int

	// Positions packed as x,y,z triplets (len = 3*Count).
	Positions []float32
	// Sizes, rotations and opacities after modulation (len = Count).
	Sizes     []float32
	Rotations []float32
	Opacities []float32
	// Colors packed as r,g,b,a (len = 4*Count).
	Colors []float32
}

// Reset clears the snapshot for reuse without reallocating.
func (s *ParticleSnapshot) Reset(frame int32) {
	s.Frame = frame
	s.Count = 0
	s.Positions = s.Positions[:0]
	s.Sizes = s.Sizes[:0]
	s.Rotations = s.Rotations[:0]
	s.Opacities = s.Opacities[:0]
	s.Colors = s.Colors[:0]
}

// Append adds one particle entry to the snapshot.
func (s *ParticleSnapshot) Append(pos Vec3, size, rotation, opacity float32, color RGBA) {
	s.Positions = append(s.Positions, pos.X, pos.Y, pos.Z)
	s.Sizes = append(s.Sizes, size)
	s.Rotations = append(s.Rotations, rotation)
	s.Opacities = append(s.Opacities, opacity)
	s.Colors = append(s.Colors, color.R, color.G, color.B, color.A)
	s.Count++
}
