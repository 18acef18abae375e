package components

// ResponseMode selects how a particle-particle contact resolves.
type ResponseMode string

const (
	// ResponseBounce reflects both particles elastically with damping.
	ResponseBounce ResponseMode = "bounce"
	// ResponseAbsorb keeps the larger particle and grows it; the
	// smaller one is marked dead.
	ResponseAbsorb ResponseMode = "absorb"
	// ResponseExplode marks both dead; each fires collision-triggered
	// sub-emitters at the contact point.
	ResponseExplode ResponseMode = "explode"
)

// BoundaryPlane is one axis-aligned collision plane.
type BoundaryPlane struct {
	Enabled bool `yaml:"enabled"`
	// Position along the plane's axis (floor/ceiling: Y, walls: X).
	Position float32 `yaml:"position"`
}

// CollisionConfig configures both collision phases of a system.
type CollisionConfig struct {
	Floor     BoundaryPlane `yaml:"floor"`
	Ceiling   BoundaryPlane `yaml:"ceiling"`
	WallLeft  BoundaryPlane `yaml:"wall_left"`
	WallRight BoundaryPlane `yaml:"wall_right"`

	// Bounciness scales the reflected normal velocity in [0,1];
	// Friction damps the tangential component on contact.
	Bounciness float32 `yaml:"bounciness"`
	Friction   float32 `yaml:"friction"`

	// Particles enables the particle-particle phase.
	Particles bool         `yaml:"particles"`
	Response  ResponseMode `yaml:"response,omitempty"`

	// CellSize is the spatial-hash cell edge; zero picks a default
	// from the mean particle size at validation time.
	CellSize float32 `yaml:"cell_size,omitempty"`
}
