// Package systems implements the deterministic simulation passes:
// random sampling, emitter shapes, force fields, collision, modulation,
// sub-emitter dispatch and the per-frame step pipeline.
package systems

import "math"

// SourceState is the opaque, copyable state of a Source. The generator
// word is 32-bit only so sequences are bit-identical across platforms;
// Draws counts total values produced (replay parity checks compare it).
type SourceState struct {
	Word  uint32
	Draws uint64
}

// Source is the seeded random source every probabilistic decision in a
// system draws from. Identical seed and call sequence produce an
// identical output sequence, forever. There is no other randomness
// anywhere in the simulation packages.
type Source struct {
	state SourceState
}

// NewSource creates a source seeded with the given value.
func NewSource(seed uint32) *Source {
	return &Source{state: SourceState{Word: seed}}
}

// next32 advances the generator one step. Mulberry-style 32-bit integer
// mixing: a Weyl increment followed by two multiply-xorshift rounds.
func (r *Source) next32() uint32 {
	r.state.Word += 0x6D2B79F5
	z := r.state.Word
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	r.state.Draws++
	return z ^ (z >> 14)
}

// Next returns the next value in [0,1). The top 24 bits map exactly
// onto the float32 mantissa, so the conversion is itself bit-exact.
func (r *Source) Next() float32 {
	return float32(r.next32()>>8) * (1.0 / (1 << 24))
}

// Range returns a value in [min, max). One draw.
func (r *Source) Range(min, max float32) float32 {
	return min + r.Next()*(max-min)
}

// Angle returns a value in [0, 2*pi). One draw.
func (r *Source) Angle() float32 {
	return r.Next() * 2 * math.Pi
}

// State returns a copy of the current state.
func (r *Source) State() SourceState {
	return r.state
}

// SetState replaces the state wholesale; the source continues exactly
// as the captured source would have.
func (r *Source) SetState(s SourceState) {
	r.state = s
}

// Draws returns the number of values produced so far.
func (r *Source) Draws() uint64 {
	return r.state.Draws
}
