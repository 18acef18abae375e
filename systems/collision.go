package systems

import "github.com/ember-gfx/ember/components"

// CollisionResolver runs the two collision phases of a step: boundary
// planes, then particle-particle contacts found through the spatial
// hash. All iteration is in live-buffer order and candidate pairs are
// taken with ascending ids only, so the outcome never depends on how
// the hash happens to bucket particles.
type CollisionResolver struct {
	cfg  components.CollisionConfig
	hash *SpatialHash
}

// NewCollisionResolver creates a resolver for the given configuration.
func NewCollisionResolver(cfg components.CollisionConfig) *CollisionResolver {
	r := &CollisionResolver{}
	r.SetConfig(cfg)
	return r
}

// SetConfig swaps in a new (possibly animated) configuration, keeping
// the hash when the cell size is unchanged.
func (r *CollisionResolver) SetConfig(cfg components.CollisionConfig) {
	cell := cfg.CellSize
	if cell <= 0 {
		cell = 8
	}
	r.cfg = cfg
	if r.hash == nil || r.hash.cellSize != cell {
		r.hash = NewSpatialHash(cell)
	}
}

// Resolve mutates particle positions/velocities in state and appends
// any bounce/collision trigger events to events, returning it.
func (r *CollisionResolver) Resolve(state *SimulationState, mod *ModEvaluator, events []TriggerEvent) []TriggerEvent {
	events = r.resolveBoundaries(state, mod, events)
	if r.cfg.Particles {
		events = r.resolvePairs(state, mod, events)
	}
	return events
}

// resolveBoundaries reflects particles off the enabled planes, scaling
// the normal component by bounciness and damping the tangential
// component by friction.
func (r *CollisionResolver) resolveBoundaries(state *SimulationState, mod *ModEvaluator, events []TriggerEvent) []TriggerEvent {
	c := &r.cfg
	for i := range state.Particles {
		p := &state.Particles[i]
		if p.Dead {
			continue
		}
		rad := mod.Size(p.LifeT(), p.Size) * 0.5
		bounced := false

		if c.Floor.Enabled && p.Pos.Y-rad < c.Floor.Position && p.Vel.Y < 0 {
			p.Pos.Y = c.Floor.Position + rad
			p.Vel.Y = -p.Vel.Y * c.Bounciness
			p.Vel.X *= 1 - c.Friction
			p.Vel.Z *= 1 - c.Friction
			bounced = true
		}
		if c.Ceiling.Enabled && p.Pos.Y+rad > c.Ceiling.Position && p.Vel.Y > 0 {
			p.Pos.Y = c.Ceiling.Position - rad
			p.Vel.Y = -p.Vel.Y * c.Bounciness
			p.Vel.X *= 1 - c.Friction
			p.Vel.Z *= 1 - c.Friction
			bounced = true
		}
		if c.WallLeft.Enabled && p.Pos.X-rad < c.WallLeft.Position && p.Vel.X < 0 {
			p.Pos.X = c.WallLeft.Position + rad
			p.Vel.X = -p.Vel.X * c.Bounciness
			p.Vel.Y *= 1 - c.Friction
			p.Vel.Z *= 1 - c.Friction
			bounced = true
		}
		if c.WallRight.Enabled && p.Pos.X+rad > c.WallRight.Position && p.Vel.X > 0 {
			p.Pos.X = c.WallRight.Position - rad
			p.Vel.X = -p.Vel.X * c.Bounciness
			p.Vel.Y *= 1 - c.Friction
			p.Vel.Z *= 1 - c.Friction
			bounced = true
		}

		if bounced {
			events = append(events, TriggerEvent{
				Kind:     components.TriggerBounce,
				ParentID: p.ID,
				GroupID:  p.GroupID,
				Pos:      p.Pos,
				Vel:      p.Vel,
			})
		}
	}
	return events
}

// resolvePairs rebuilds the hash and tests each particle against
// same-cell and adjacent-cell occupants. Only pairs with idA < idB are
// considered, which with the id-sorted buffer yields one canonical
// visit per pair.
func (r *CollisionResolver) resolvePairs(state *SimulationState, mod *ModEvaluator, events []TriggerEvent) []TriggerEvent {
	r.hash.Clear()
	for i := range state.Particles {
		p := &state.Particles[i]
		if p.Dead {
			continue
		}
		r.hash.Insert(int32(i), p.Pos.X, p.Pos.Y, p.Pos.Z)
	}

	for i := range state.Particles {
		a := &state.Particles[i]
		if a.Dead {
			continue
		}
		ra := mod.Size(a.LifeT(), a.Size) * 0.5

		r.hash.ForNeighbors(a.Pos.X, a.Pos.Y, a.Pos.Z, func(j int32) {
			if int(j) <= i {
				return
			}
			b := &state.Particles[j]
			if a.Dead || b.Dead {
				return
			}
			rb := mod.Size(b.LifeT(), b.Size) * 0.5

			delta := b.Pos.Sub(a.Pos)
			distSq := delta.LenSq()
			sum := ra + rb
			if distSq >= sum*sum || distSq == 0 {
				return
			}

			events = r.respond(a, b, delta, sqrtf(distSq), sum, events)
		})
	}
	return events
}

// respond applies the configured response to one contact.
func (r *CollisionResolver) respond(a, b *components.Particle, delta components.Vec3, dist, sumRad float32, events []TriggerEvent) []TriggerEvent {
	switch r.cfg.Response {
	case components.ResponseAbsorb:
		// The larger particle survives and grows by the absorbed
		// volume; ties keep the lower id (canonical).
		big, small := a, b
		if b.Size > a.Size {
			big, small = b, a
		}
		v := big.Size*big.Size*big.Size + small.Size*small.Size*small.Size
		big.Size = cbrtf(v)
		small.Dead = true

	case components.ResponseExplode:
		mid := a.Pos.Add(delta.Scale(0.5))
		a.Dead = true
		b.Dead = true
		events = append(events,
			TriggerEvent{Kind: components.TriggerCollision, ParentID: a.ID, GroupID: a.GroupID, Pos: mid, Vel: a.Vel},
			TriggerEvent{Kind: components.TriggerCollision, ParentID: b.ID, GroupID: b.GroupID, Pos: mid, Vel: b.Vel},
		)

	default: // bounce
		n := delta.Scale(1 / dist)

		// Separate overlapping particles symmetrically.
		overlap := (sumRad - dist) * 0.5
		a.Pos = a.Pos.Sub(n.Scale(overlap))
		b.Pos = b.Pos.Add(n.Scale(overlap))

		// Equal-mass impulse along the contact normal. Bounciness 1
		// exchanges the normal components exactly, preserving kinetic
		// energy; lower values damp it.
		relN := b.Vel.Sub(a.Vel).Dot(n)
		if relN < 0 {
			imp := n.Scale(relN * (1 + r.cfg.Bounciness) * 0.5)
			a.Vel = a.Vel.Add(imp)
			b.Vel = b.Vel.Sub(imp)
		}
	}
	return events
}
