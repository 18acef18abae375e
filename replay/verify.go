package replay

import (
	"fmt"

	"github.com/ember-gfx/ember/systems"
)

// Verify compares two independently produced simulation states for the
// same frame. A mismatch is a programming defect (some code path drew
// randomness outside the seeded source, or iterated in a
// container-dependent order) and is reported, never silently
// recovered. Comparison is field-exact including RNG state and draw
// counts; positions are compared bit-for-bit since both runs execute
// the same float operations in the same order.
//
// Verify lives outside the hot path: tests and the scrubcheck tool
// call it, the controller never does.
func Verify(a, b *systems.SimulationState) error {
	if a.Frame != b.Frame {
		return fmt.Errorf("frame mismatch: %d vs %d", a.Frame, b.Frame)
	}
	if a.NextID != b.NextID {
		return fmt.Errorf("frame %d: next id mismatch: %d vs %d", a.Frame, a.NextID, b.NextID)
	}
	if a.RNG != b.RNG {
		return fmt.Errorf("frame %d: rng state mismatch: %+v vs %+v (draw counts %d vs %d)",
			a.Frame, a.RNG.Word, b.RNG.Word, a.RNG.Draws, b.RNG.Draws)
	}
	if a.DroppedSpawns != b.DroppedSpawns {
		return fmt.Errorf("frame %d: dropped-spawn count mismatch: %d vs %d", a.Frame, a.DroppedSpawns, b.DroppedSpawns)
	}
	if len(a.Particles) != len(b.Particles) {
		return fmt.Errorf("frame %d: particle count mismatch: %d vs %d", a.Frame, len(a.Particles), len(b.Particles))
	}
	for i := range a.Particles {
		pa, pb := &a.Particles[i], &b.Particles[i]
		if *pa != *pb {
			return fmt.Errorf("frame %d: particle %d differs: %+v vs %+v", a.Frame, pa.ID, *pa, *pb)
		}
	}
	if len(a.EmitAccum) != len(b.EmitAccum) {
		return fmt.Errorf("frame %d: emitter accumulator count mismatch", a.Frame)
	}
	for i := range a.EmitAccum {
		if a.EmitAccum[i] != b.EmitAccum[i] {
			return fmt.Errorf("frame %d: emitter %d accumulator mismatch: %v vs %v", a.Frame, i, a.EmitAccum[i], b.EmitAccum[i])
		}
	}
	for i := range a.AudioSmooth {
		if i >= len(b.AudioSmooth) || len(a.AudioSmooth[i]) != len(b.AudioSmooth[i]) {
			return fmt.Errorf("frame %d: audio register shape mismatch", a.Frame)
		}
		for m := range a.AudioSmooth[i] {
			if a.AudioSmooth[i][m] != b.AudioSmooth[i][m] {
				return fmt.Errorf("frame %d: audio register %d/%d mismatch", a.Frame, i, m)
			}
		}
	}
	return nil
}
