package systems

import "github.com/ember-gfx/ember/components"

// TriggerEvent is one parent-particle event that may fire sub-emitter
// links. Events are collected during a step in the order the phases
// produce them (boundary pass, pair pass, death pass, each in buffer
// order) and dispatched in one fixed pass afterwards, never interleaved
// with the main step, so total RNG consumption is deterministic.
type TriggerEvent struct {
	Kind     components.TriggerKind
	ParentID uint64
	GroupID  uint32 // emitter index of the parent particle
	Pos      components.Vec3
	Vel      components.Vec3
}

// SubEmitterDispatcher spawns child particles for trigger events.
type SubEmitterDispatcher struct {
	cfg *components.SystemConfig
}

// NewSubEmitterDispatcher creates a dispatcher for the configuration.
// The sub-emitter trigger graph is validated as acyclic at configure
// time, so dispatch never needs cycle guards at runtime.
func NewSubEmitterDispatcher(cfg *components.SystemConfig) *SubEmitterDispatcher {
	return &SubEmitterDispatcher{cfg: cfg}
}

// Dispatch spawns children for every event whose parent emitter has a
// matching link. Events are processed in slice order and links in
// declaration order; children append to the live buffer with fresh
// monotonic ids. Spawns beyond the pool ceiling are dropped, not
// queued.
//
// Children spawned here do not recursively fire birth triggers within
// the same pass; their own triggers fire in later frames like any
// other particle's.
func (d *SubEmitterDispatcher) Dispatch(state *SimulationState, events []TriggerEvent, rng *Source) {
	for _, ev := range events {
		if int(ev.GroupID) >= len(d.cfg.Emitters) {
			continue
		}
		parent := &d.cfg.Emitters[ev.GroupID]
		for _, link := range parent.Sub {
			if link.Trigger != ev.Kind {
				continue
			}
			d.spawnChildren(state, &link, ev, rng)
		}
	}
}

// spawnChildren emits link.SpawnCount children of the linked emitter
// at the event position. Each child consumes a fixed 5 draws: two for
// the direction, then speed, lifetime and size variation.
func (d *SubEmitterDispatcher) spawnChildren(state *SimulationState, link *components.SubEmitterLink, ev TriggerEvent, rng *Source) {
	child := &d.cfg.Emitters[link.Emitter]
	inherited := ev.Vel.Scale(link.InheritVelocity)

	for n := 0; n < link.SpawnCount; n++ {
		if len(state.Particles) >= d.cfg.MaxParticles {
			state.DroppedSpawns++
			continue
		}

		dir := unitVector(rng)
		speed := rng.Range(child.SpeedMin, child.SpeedMax)
		life := rng.Range(child.LifeMin, child.LifeMax)
		sizeVar := rng.Range(0.75, 1.25)

		state.Particles = append(state.Particles, components.Particle{
			ID:      state.NextID,
			GroupID: uint32(link.Emitter),
			Pos:     ev.Pos,
			Vel:     inherited.Add(dir.Scale(speed)),
			MaxAge:  life,
			Size:    child.Size * sizeVar,
			Spin:    child.Spin,
			Color:   child.Color,
			Opacity: child.Opacity,
		})
		state.NextID++
	}
}
