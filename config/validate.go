package config

import (
	"fmt"

	"github.com/ember-gfx/ember/components"
	"github.com/ember-gfx/ember/systems"
)

// ConfigurationError reports a rejected system config. The engine keeps
// the previous valid config for the affected system and suspends it;
// other systems are untouched.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

func errf(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a system config for structural and range errors.
// It never mutates the config; call ApplyDefaults first if zero-valued
// tuning fields should pick up defaults.
func Validate(sys *components.SystemConfig) error {
	if sys.FPS <= 0 {
		return errf("fps", "must be positive, got %g", sys.FPS)
	}
	if sys.MaxParticles <= 0 {
		return errf("max_particles", "must be positive, got %d", sys.MaxParticles)
	}
	if sys.CheckpointInterval <= 0 {
		return errf("checkpoint_interval", "must be positive, got %d", sys.CheckpointInterval)
	}
	for i := range sys.Emitters {
		if err := validateEmitter(i, &sys.Emitters[i], len(sys.Emitters)); err != nil {
			return err
		}
	}
	if err := validateSubGraph(sys.Emitters); err != nil {
		return err
	}
	for i := range sys.Fields {
		if err := validateField(i, &sys.Fields[i]); err != nil {
			return err
		}
	}
	if err := validateCollision(&sys.Collision); err != nil {
		return err
	}
	for i, c := range sys.Curves {
		field := fmt.Sprintf("curves[%d]", i)
		switch c.Target {
		case components.ModSize, components.ModSpeed, components.ModOpacity,
			components.ModColorR, components.ModColorG, components.ModColorB, components.ModColorA:
		default:
			return errf(field+".target", "unknown target %q", c.Target)
		}
		if !systems.KnownCurve(c.Curve) {
			return errf(field+".curve", "unknown curve %q", c.Curve)
		}
	}
	return nil
}

func validateEmitter(idx int, e *components.EmitterConfig, n int) error {
	field := fmt.Sprintf("emitters[%d]", idx)
	if e.Rate < 0 {
		return errf(field+".rate", "must be non-negative, got %g", e.Rate)
	}
	if e.LifeMin <= 0 || e.LifeMax < e.LifeMin {
		return errf(field+".life", "need 0 < life_min <= life_max, got [%g, %g]", e.LifeMin, e.LifeMax)
	}
	if e.SpeedMin < 0 || e.SpeedMax < e.SpeedMin {
		return errf(field+".speed", "need 0 <= speed_min <= speed_max, got [%g, %g]", e.SpeedMin, e.SpeedMax)
	}
	if e.Spread < 0 {
		return errf(field+".spread", "must be non-negative, got %g", e.Spread)
	}
	if e.Size <= 0 {
		return errf(field+".size", "must be positive, got %g", e.Size)
	}
	if err := validateShape(field+".shape", &e.Shape); err != nil {
		return err
	}
	for j, b := range e.Bursts {
		// Stepping produces frames 1 and up, so a frame-0 burst could
		// never fire.
		if b.Frame < 1 {
			return errf(fmt.Sprintf("%s.bursts[%d].frame", field, j), "must be at least 1, got %d", b.Frame)
		}
		if b.Count < 0 {
			return errf(fmt.Sprintf("%s.bursts[%d].count", field, j), "must be non-negative, got %d", b.Count)
		}
	}
	for j, l := range e.Sub {
		sf := fmt.Sprintf("%s.sub[%d]", field, j)
		switch l.Trigger {
		case components.TriggerDeath, components.TriggerBirth,
			components.TriggerCollision, components.TriggerBounce:
		default:
			return errf(sf+".trigger", "unknown trigger %q", l.Trigger)
		}
		if l.Emitter < 0 || l.Emitter >= n {
			return errf(sf+".emitter", "index %d out of range [0, %d)", l.Emitter, n)
		}
		if l.Emitter == idx {
			return errf(sf+".emitter", "emitter cannot trigger itself")
		}
		if l.SpawnCount < 0 {
			return errf(sf+".spawn_count", "must be non-negative, got %d", l.SpawnCount)
		}
		if l.InheritVelocity < 0 || l.InheritVelocity > 1 {
			return errf(sf+".inherit_velocity", "must be in [0,1], got %g", l.InheritVelocity)
		}
	}
	for j, m := range e.Audio {
		af := fmt.Sprintf("%s.audio[%d]", field, j)
		switch m.Feature {
		case components.FeatureAmplitude, components.FeatureBass, components.FeatureMid,
			components.FeatureTreble, components.FeatureBeat:
		default:
			return errf(af+".feature", "unknown feature %q", m.Feature)
		}
		switch m.Target {
		case components.AudioTargetRate, components.AudioTargetSpeed,
			components.AudioTargetSize, components.AudioTargetOpacity:
		case components.AudioTargetBurst:
			if m.BeatBurst <= 0 {
				return errf(af+".beat_burst", "burst mapping needs a positive count")
			}
		default:
			return errf(af+".target", "unknown target %q", m.Target)
		}
		if m.Smoothing < 0 || m.Smoothing >= 1 {
			return errf(af+".smoothing", "must be in [0,1), got %g", m.Smoothing)
		}
	}
	return nil
}

func validateShape(field string, s *components.ShapeParams) error {
	switch s.Kind {
	case components.ShapePoint, components.ShapeLine, components.ShapeBox:
	case components.ShapeCircle, components.ShapeRing, components.ShapeSphere:
		if s.Radius <= 0 {
			return errf(field+".radius", "must be positive, got %g", s.Radius)
		}
	case components.ShapeCone:
		if s.Radius <= 0 {
			return errf(field+".radius", "must be positive, got %g", s.Radius)
		}
		if s.Length <= 0 {
			return errf(field+".length", "must be positive, got %g", s.Length)
		}
	case components.ShapeSpline:
		if len(s.Points) < 4 {
			return errf(field+".points", "spline needs at least 4 control points, got %d", len(s.Points))
		}
	case components.ShapeMesh:
		if len(s.Vertices) < 3 || len(s.Vertices)%3 != 0 {
			return errf(field+".vertices", "mesh needs a positive multiple of 3 vertices, got %d", len(s.Vertices))
		}
	default:
		return errf(field+".kind", "unknown shape %q", s.Kind)
	}
	return nil
}

// validateSubGraph rejects cycles in the sub-emitter trigger graph.
// Edges run from a parent emitter to each linked child; a cycle would
// let a trigger cascade spawn without bound.
func validateSubGraph(emitters []components.EmitterConfig) error {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current DFS path
		black = 2 // finished
	)
	color := make([]int, len(emitters))
	var visit func(i int) bool
	visit = func(i int) bool {
		color[i] = gray
		for _, l := range emitters[i].Sub {
			switch color[l.Emitter] {
			case gray:
				return false
			case white:
				if !visit(l.Emitter) {
					return false
				}
			}
		}
		color[i] = black
		return true
	}
	for i := range emitters {
		if color[i] == white && !visit(i) {
			return errf(fmt.Sprintf("emitters[%d].sub", i), "trigger graph has a cycle")
		}
	}
	return nil
}

func validateField(idx int, f *components.ForceField) error {
	field := fmt.Sprintf("fields[%d]", idx)
	switch f.Kind {
	case components.FieldGravityWell:
		if f.Radius <= 0 {
			return errf(field+".radius", "must be positive, got %g", f.Radius)
		}
		switch f.Falloff {
		case components.FalloffConstant, components.FalloffLinear, components.FalloffQuadratic:
		default:
			return errf(field+".falloff", "unknown falloff %q", f.Falloff)
		}
	case components.FieldVortex:
		if f.Radius <= 0 {
			return errf(field+".radius", "must be positive, got %g", f.Radius)
		}
	case components.FieldTurbulence:
		if f.NoiseScale <= 0 {
			return errf(field+".noise_scale", "must be positive, got %g", f.NoiseScale)
		}
	case components.FieldGlobalWind:
		if f.Direction.LenSq() == 0 {
			return errf(field+".direction", "wind needs a non-zero direction")
		}
	case components.FieldGlobalDrag:
		if f.Strength < 0 {
			return errf(field+".strength", "drag must be non-negative, got %g", f.Strength)
		}
	default:
		return errf(field+".kind", "unknown field kind %q", f.Kind)
	}
	return nil
}

func validateCollision(c *components.CollisionConfig) error {
	if c.Bounciness < 0 || c.Bounciness > 1 {
		return errf("collision.bounciness", "must be in [0,1], got %g", c.Bounciness)
	}
	if c.Friction < 0 || c.Friction > 1 {
		return errf("collision.friction", "must be in [0,1], got %g", c.Friction)
	}
	if c.Particles {
		switch c.Response {
		case components.ResponseBounce, components.ResponseAbsorb, components.ResponseExplode:
		default:
			return errf("collision.response", "unknown response %q", c.Response)
		}
		if c.CellSize <= 0 {
			return errf("collision.cell_size", "must be positive, got %g", c.CellSize)
		}
	}
	return nil
}
