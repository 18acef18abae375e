package components

// SystemConfig is the full configuration of one particle system: the
// only part of the engine that round-trips through the persistence
// document. Simulation state, RNG state and checkpoints never do.
type SystemConfig struct {
	Name string `yaml:"name"`

	// Seed feeds the system's SeededRandomSource at frame 0.
	Seed uint32 `yaml:"seed"`

	// FPS converts emission rates (per second) to per-frame quotas.
	FPS float32 `yaml:"fps"`

	// MaxParticles is the live-pool ceiling; spawns beyond it are
	// dropped silently and counted, never queued.
	MaxParticles int `yaml:"max_particles"`

	// CheckpointInterval is the automatic snapshot cadence in frames.
	CheckpointInterval int32 `yaml:"checkpoint_interval"`

	// Gravity is a constant acceleration applied before force fields
	// (units per frame squared).
	Gravity Vec3 `yaml:"gravity"`

	Emitters  []EmitterConfig   `yaml:"emitters"`
	Fields    []ForceField      `yaml:"fields,omitempty"`
	Collision CollisionConfig   `yaml:"collision"`
	Curves    []ModulationCurve `yaml:"curves,omitempty"`
}

// DT returns the frame duration in seconds.
func (c *SystemConfig) DT() float32 {
	if c.FPS <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / c.FPS
}

// HasEnabledEmitter reports whether any emitter can spawn; with none,
// the simulation step is idle (particles still age out).
func (c *SystemConfig) HasEnabledEmitter() bool {
	for i := range c.Emitters {
		if c.Emitters[i].Enabled {
			return true
		}
	}
	return false
}
