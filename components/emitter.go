package components

// ShapeKind selects the spawn-region geometry of an emitter.
type ShapeKind string

const (
	ShapePoint  ShapeKind = "point"
	ShapeLine   ShapeKind = "line"
	ShapeCircle ShapeKind = "circle" // filled disc
	ShapeRing   ShapeKind = "ring"   // circle edge
	ShapeBox    ShapeKind = "box"
	ShapeSphere ShapeKind = "sphere" // volume, rejection-sampled
	ShapeCone   ShapeKind = "cone"
	ShapeSpline ShapeKind = "spline"
	ShapeMesh   ShapeKind = "mesh"
)

// ShapeParams holds the geometry parameters of an emitter shape. Which
// fields apply depends on Kind; the sampler validates them.
type ShapeParams struct {
	Kind ShapeKind `yaml:"kind"`

	// Line: segment from Origin to End.
	End Vec3 `yaml:"end,omitempty"`

	// Circle/ring/sphere/cone: radius around Origin.
	Radius float32 `yaml:"radius,omitempty"`

	// Box: half-extents around Origin.
	Extents Vec3 `yaml:"extents,omitempty"`

	// Cone: half-angle in radians and length along +Y from Origin.
	Angle  float32 `yaml:"angle,omitempty"`
	Length float32 `yaml:"length,omitempty"`

	// Spline: Catmull-Rom control points (at least 4).
	Points []Vec3 `yaml:"points,omitempty"`

	// Mesh: triangle soup, 3 vertices per triangle.
	Vertices []Vec3 `yaml:"vertices,omitempty"`
}

// TriggerKind names the parent-particle event a sub-emitter listens to.
// Death is the baseline trigger; birth, collision and bounce are the
// documented extension points and are dispatched the same way.
type TriggerKind string

const (
	TriggerDeath     TriggerKind = "death"
	TriggerBirth     TriggerKind = "birth"
	TriggerCollision TriggerKind = "collision"
	TriggerBounce    TriggerKind = "bounce"
)

// SubEmitterLink attaches a child emitter to a parent's trigger events.
// Emitter references are by index into SystemConfig.Emitters; the
// trigger graph must be acyclic (validated at configuration time).
type SubEmitterLink struct {
	Trigger    TriggerKind `yaml:"trigger"`
	Emitter    int         `yaml:"emitter"`     // index of the child emitter
	SpawnCount int         `yaml:"spawn_count"` // children per trigger event
	// InheritVelocity is the fraction of the parent velocity passed to
	// each child before the child's own speed variation applies.
	InheritVelocity float32 `yaml:"inherit_velocity"`
}

// BurstConfig emits Count extra particles at exactly Frame (1 or
// later; frame 0 is the initial state and never steps).
type BurstConfig struct {
	Frame int32 `yaml:"frame"`
	Count int   `yaml:"count"`
}

// EmitterConfig describes where, how, and how fast particles spawn.
type EmitterConfig struct {
	Name    string `yaml:"name"`
	Enabled bool   `yaml:"enabled"`

	Shape  ShapeParams `yaml:"shape"`
	Origin Vec3        `yaml:"origin"`

	// Rate is particles per second; fractional quotas carry over
	// between frames through the emission remainder.
	Rate   float32       `yaml:"rate"`
	Bursts []BurstConfig `yaml:"bursts,omitempty"`

	// Lifetime in frames, drawn uniformly from [LifeMin, LifeMax].
	LifeMin float32 `yaml:"life_min"`
	LifeMax float32 `yaml:"life_max"`

	// Initial speed in units per frame along the sampled direction,
	// drawn uniformly from [SpeedMin, SpeedMax].
	SpeedMin float32 `yaml:"speed_min"`
	SpeedMax float32 `yaml:"speed_max"`

	// Spread widens the sampled direction by a random jitter (radians).
	Spread float32 `yaml:"spread"`

	Size    float32 `yaml:"size"`
	Spin    float32 `yaml:"spin"`
	Color   RGBA    `yaml:"color"`
	Opacity float32 `yaml:"opacity"`

	// Sub declares sub-emitters triggered by this emitter's particles.
	Sub []SubEmitterLink `yaml:"sub,omitempty"`

	// Audio lists optional feature-to-property overrides for this
	// emitter, applied per frame before sampling.
	Audio []AudioMapping `yaml:"audio,omitempty"`
}
