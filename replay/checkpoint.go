// Package replay implements checkpoint-based scrub-safe frame access:
// periodic immutable snapshots of simulation state plus a controller
// that satisfies arbitrary frame requests by stepping forward or by
// restoring the nearest checkpoint and replaying.
package replay

import (
	"sort"

	"github.com/ember-gfx/ember/systems"
)

// Checkpoint pairs a frame number with a deep copy of the simulation
// state at that frame. Checkpoints are never mutated after creation,
// so sharing and aliasing them is safe; restoration always hands out
// a fresh clone.
type Checkpoint struct {
	Frame int32
	State *systems.SimulationState
}

// CheckpointStore keeps checkpoints in memory, keyed by frame.
// Checkpoints are session-scoped: they are never persisted across
// process restarts (only configurations round-trip through documents).
type CheckpointStore struct {
	byFrame map[int32]*Checkpoint
	frames  []int32 // ascending
}

// NewCheckpointStore creates an empty store.
func NewCheckpointStore() *CheckpointStore {
	return &CheckpointStore{
		byFrame: make(map[int32]*Checkpoint, 64),
	}
}

// Put stores an immutable deep copy of state at the given frame,
// replacing any checkpoint already there.
func (cs *CheckpointStore) Put(frame int32, state *systems.SimulationState) {
	if _, exists := cs.byFrame[frame]; !exists {
		i := sort.Search(len(cs.frames), func(i int) bool { return cs.frames[i] >= frame })
		cs.frames = append(cs.frames, 0)
		copy(cs.frames[i+1:], cs.frames[i:])
		cs.frames[i] = frame
	}
	cs.byFrame[frame] = &Checkpoint{Frame: frame, State: state.Clone()}
}

// Get returns the checkpoint at exactly frame, or the nearest one
// preceding it. Returns nil when no checkpoint <= frame exists.
func (cs *CheckpointStore) Get(frame int32) *Checkpoint {
	i := sort.Search(len(cs.frames), func(i int) bool { return cs.frames[i] > frame })
	if i == 0 {
		return nil
	}
	return cs.byFrame[cs.frames[i-1]]
}

// InvalidateFrom drops every checkpoint at frame >= from. Called on
// any configuration edit at that frame: states derived from the old
// configuration are unreachable under the new one.
func (cs *CheckpointStore) InvalidateFrom(from int32) int {
	i := sort.Search(len(cs.frames), func(i int) bool { return cs.frames[i] >= from })
	dropped := len(cs.frames) - i
	for _, f := range cs.frames[i:] {
		delete(cs.byFrame, f)
	}
	cs.frames = cs.frames[:i]
	return dropped
}

// Len returns the number of stored checkpoints.
func (cs *CheckpointStore) Len() int {
	return len(cs.frames)
}

// Frames returns the checkpoint frames in ascending order.
func (cs *CheckpointStore) Frames() []int32 {
	out := make([]int32, len(cs.frames))
	copy(out, cs.frames)
	return out
}
