package components

// FieldKind discriminates the force-field variants. The set is closed:
// the evaluator switches exhaustively over it.
type FieldKind string

const (
	FieldGravityWell FieldKind = "gravity-well"
	FieldVortex      FieldKind = "vortex"
	FieldTurbulence  FieldKind = "turbulence"
	FieldGlobalWind  FieldKind = "global-wind"
	FieldGlobalDrag  FieldKind = "global-drag"
)

// Falloff selects how a gravity well's pull decays with distance.
type Falloff string

const (
	FalloffConstant  Falloff = "constant"
	FalloffLinear    Falloff = "linear"
	FalloffQuadratic Falloff = "quadratic"
)

// ForceField is a tagged variant: Kind selects which parameters apply.
// A flat struct keeps the field list a plain YAML sequence and the
// evaluator a single switch instead of a class hierarchy.
type ForceField struct {
	Kind    FieldKind `yaml:"kind"`
	Enabled bool      `yaml:"enabled"`

	// Gravity well and vortex: center and influence radius. Particles
	// beyond Radius receive no contribution (clipped, not faded).
	Center Vec3    `yaml:"center,omitempty"`
	Radius float32 `yaml:"radius,omitempty"`

	// Strength scales the contribution. Gravity well: radial pull
	// (negative pushes). Vortex: tangential speed. Wind: acceleration
	// magnitude along Direction. Drag: velocity damping coefficient.
	Strength float32 `yaml:"strength"`

	// Gravity well only.
	Falloff Falloff `yaml:"falloff,omitempty"`

	// Vortex only: fraction of Strength pulling inward.
	InwardPull float32 `yaml:"inward_pull,omitempty"`

	// Turbulence only: noise frequency, scroll offset per frame and
	// generator seed. The noise is a pure function of position and
	// time, so the field is replay-safe by construction.
	NoiseScale float32 `yaml:"noise_scale,omitempty"`
	TimeScale  float32 `yaml:"time_scale,omitempty"`
	Seed       int64   `yaml:"seed,omitempty"`

	// Wind only.
	Direction Vec3 `yaml:"direction,omitempty"`
}
