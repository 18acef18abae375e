package systems

import (
	"math"
	"testing"

	"github.com/ember-gfx/ember/components"
)

func stateWith(particles ...components.Particle) *SimulationState {
	s := &SimulationState{}
	s.Particles = append(s.Particles, particles...)
	return s
}

func TestFloorBounce(t *testing.T) {
	cfg := components.CollisionConfig{
		Floor:      components.BoundaryPlane{Enabled: true, Position: 0},
		Bounciness: 0.5,
	}
	r := NewCollisionResolver(cfg)
	st := stateWith(components.Particle{
		ID: 1, Pos: components.Vec3{Y: -0.2}, Vel: components.Vec3{Y: -1},
		Size: 1, MaxAge: 100,
	})

	events := r.Resolve(st, NewModEvaluator(nil), nil)

	p := &st.Particles[0]
	if p.Vel.Y <= 0 {
		t.Errorf("velocity not reflected: %v", p.Vel.Y)
	}
	if math.Abs(float64(p.Vel.Y-0.5)) > 0.001 {
		t.Errorf("bounciness not applied: %v, want 0.5", p.Vel.Y)
	}
	if p.Pos.Y < 0.5 {
		t.Errorf("particle not pushed out of the floor: %v", p.Pos.Y)
	}
	if len(events) != 1 || events[0].Kind != components.TriggerBounce {
		t.Errorf("expected one bounce event, got %+v", events)
	}
}

func TestFloorIgnoresRisingParticle(t *testing.T) {
	cfg := components.CollisionConfig{
		Floor:      components.BoundaryPlane{Enabled: true, Position: 0},
		Bounciness: 1,
	}
	r := NewCollisionResolver(cfg)
	st := stateWith(components.Particle{
		ID: 1, Pos: components.Vec3{Y: -0.2}, Vel: components.Vec3{Y: 2},
		Size: 1, MaxAge: 100,
	})
	r.Resolve(st, NewModEvaluator(nil), nil)
	if st.Particles[0].Vel.Y != 2 {
		t.Errorf("rising particle reflected: %v", st.Particles[0].Vel.Y)
	}
}

func TestWallFriction(t *testing.T) {
	cfg := components.CollisionConfig{
		WallLeft:   components.BoundaryPlane{Enabled: true, Position: 0},
		Bounciness: 1,
		Friction:   0.25,
	}
	r := NewCollisionResolver(cfg)
	st := stateWith(components.Particle{
		ID: 1, Pos: components.Vec3{X: -0.1, Y: 1}, Vel: components.Vec3{X: -1, Y: 2},
		Size: 1, MaxAge: 100,
	})
	r.Resolve(st, NewModEvaluator(nil), nil)
	p := &st.Particles[0]
	if math.Abs(float64(p.Vel.X-1)) > 0.001 {
		t.Errorf("normal component = %v, want 1", p.Vel.X)
	}
	if math.Abs(float64(p.Vel.Y-1.5)) > 0.001 {
		t.Errorf("tangential component = %v, want 1.5 (25%% friction)", p.Vel.Y)
	}
}

func pairConfig(response components.ResponseMode) components.CollisionConfig {
	return components.CollisionConfig{
		Particles: true,
		Response:  response,
		CellSize:  4,
		Bounciness: 1,
	}
}

func TestPairBounceConservesEnergyHeadOn(t *testing.T) {
	r := NewCollisionResolver(pairConfig(components.ResponseBounce))
	st := stateWith(
		components.Particle{ID: 1, Pos: components.Vec3{X: 0}, Vel: components.Vec3{X: 1}, Size: 1, MaxAge: 100},
		components.Particle{ID: 2, Pos: components.Vec3{X: 0.8}, Vel: components.Vec3{X: -1}, Size: 1, MaxAge: 100},
	)
	keBefore := st.Particles[0].Vel.LenSq() + st.Particles[1].Vel.LenSq()

	r.Resolve(st, NewModEvaluator(nil), nil)

	keAfter := st.Particles[0].Vel.LenSq() + st.Particles[1].Vel.LenSq()
	if math.Abs(float64(keAfter-keBefore)) > 0.001 {
		t.Errorf("kinetic energy %v -> %v at bounciness 1", keBefore, keAfter)
	}
	// Head-on equal masses swap normal velocities.
	if st.Particles[0].Vel.X >= 0 || st.Particles[1].Vel.X <= 0 {
		t.Errorf("velocities not exchanged: %v, %v", st.Particles[0].Vel.X, st.Particles[1].Vel.X)
	}
}

func TestPairBounceSeparatesOverlap(t *testing.T) {
	r := NewCollisionResolver(pairConfig(components.ResponseBounce))
	st := stateWith(
		components.Particle{ID: 1, Pos: components.Vec3{X: 0}, Vel: components.Vec3{X: 0.1}, Size: 1, MaxAge: 100},
		components.Particle{ID: 2, Pos: components.Vec3{X: 0.5}, Vel: components.Vec3{X: -0.1}, Size: 1, MaxAge: 100},
	)
	r.Resolve(st, NewModEvaluator(nil), nil)
	gap := st.Particles[1].Pos.X - st.Particles[0].Pos.X
	if gap < 0.999 {
		t.Errorf("overlap not resolved: gap %v, want >= 1 (sum of radii)", gap)
	}
}

func TestPairAbsorb(t *testing.T) {
	r := NewCollisionResolver(pairConfig(components.ResponseAbsorb))
	st := stateWith(
		components.Particle{ID: 1, Pos: components.Vec3{}, Size: 2, MaxAge: 100},
		components.Particle{ID: 2, Pos: components.Vec3{X: 1}, Size: 1, MaxAge: 100},
	)
	r.Resolve(st, NewModEvaluator(nil), nil)

	if st.Particles[1].Dead != true {
		t.Fatal("smaller particle should be absorbed")
	}
	if st.Particles[0].Dead {
		t.Fatal("larger particle should survive")
	}
	// Volume conservation: 2^3 + 1^3 = 9, size = cbrt(9).
	want := float32(math.Cbrt(9))
	if math.Abs(float64(st.Particles[0].Size-want)) > 0.001 {
		t.Errorf("absorbed size = %v, want %v", st.Particles[0].Size, want)
	}
}

func TestPairAbsorbTieKeepsLowerID(t *testing.T) {
	r := NewCollisionResolver(pairConfig(components.ResponseAbsorb))
	st := stateWith(
		components.Particle{ID: 1, Pos: components.Vec3{}, Size: 1, MaxAge: 100},
		components.Particle{ID: 2, Pos: components.Vec3{X: 0.5}, Size: 1, MaxAge: 100},
	)
	r.Resolve(st, NewModEvaluator(nil), nil)
	if st.Particles[0].Dead || !st.Particles[1].Dead {
		t.Errorf("tie should keep the lower id: %+v", st.Particles)
	}
}

func TestPairExplode(t *testing.T) {
	r := NewCollisionResolver(pairConfig(components.ResponseExplode))
	st := stateWith(
		components.Particle{ID: 1, Pos: components.Vec3{}, Size: 1, MaxAge: 100},
		components.Particle{ID: 2, Pos: components.Vec3{X: 0.5}, Size: 1, MaxAge: 100},
	)
	events := r.Resolve(st, NewModEvaluator(nil), nil)

	if !st.Particles[0].Dead || !st.Particles[1].Dead {
		t.Fatal("both particles should die")
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 collision events, got %d", len(events))
	}
	for _, ev := range events {
		if ev.Kind != components.TriggerCollision {
			t.Errorf("event kind = %v", ev.Kind)
		}
		if math.Abs(float64(ev.Pos.X-0.25)) > 0.001 {
			t.Errorf("event not at contact midpoint: %v", ev.Pos.X)
		}
	}
}

func TestPairPhaseRequiresFlag(t *testing.T) {
	cfg := pairConfig(components.ResponseExplode)
	cfg.Particles = false
	r := NewCollisionResolver(cfg)
	st := stateWith(
		components.Particle{ID: 1, Pos: components.Vec3{}, Size: 1, MaxAge: 100},
		components.Particle{ID: 2, Pos: components.Vec3{X: 0.5}, Size: 1, MaxAge: 100},
	)
	r.Resolve(st, NewModEvaluator(nil), nil)
	if st.Particles[0].Dead || st.Particles[1].Dead {
		t.Error("pair phase ran with particles disabled")
	}
}

func TestSpatialHashFindsNeighbors(t *testing.T) {
	h := NewSpatialHash(4)
	h.Insert(0, 0, 0, 0)
	h.Insert(1, 3, 0, 0)   // adjacent cell
	h.Insert(2, 100, 0, 0) // far away

	var found []int32
	h.ForNeighbors(0, 0, 0, func(idx int32) {
		found = append(found, idx)
	})

	has := func(want int32) bool {
		for _, idx := range found {
			if idx == want {
				return true
			}
		}
		return false
	}
	if !has(0) || !has(1) {
		t.Errorf("missing nearby indices: %v", found)
	}
	if has(2) {
		t.Errorf("distant index reported: %v", found)
	}
}
