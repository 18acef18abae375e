package components

// ModTarget names a particle property driven by a modulation curve.
type ModTarget string

const (
	ModSize    ModTarget = "size"
	ModSpeed   ModTarget = "speed"
	ModOpacity ModTarget = "opacity"
	ModColorR  ModTarget = "color_r"
	ModColorG  ModTarget = "color_g"
	ModColorB  ModTarget = "color_b"
	ModColorA  ModTarget = "color_a"
)

// CurveID names an easing curve. The registry in systems/modulation.go
// maps ids to functions; unknown ids are a ConfigurationError.
type CurveID string

const (
	CurveLinear     CurveID = "linear"
	CurveQuadIn     CurveID = "quad-in"
	CurveQuadOut    CurveID = "quad-out"
	CurveQuadInOut  CurveID = "quad-in-out"
	CurveCubicIn    CurveID = "cubic-in"
	CurveCubicOut   CurveID = "cubic-out"
	CurveCubicInOut CurveID = "cubic-in-out"
	CurveSineIn     CurveID = "sine-in"
	CurveSineOut    CurveID = "sine-out"
	CurveSineInOut  CurveID = "sine-in-out"
	CurveExpoIn     CurveID = "expo-in"
	CurveExpoOut    CurveID = "expo-out"
)

// ModulationCurve maps particle age (age/maxAge in [0,1]) through an
// eased curve between Start and End for one target property. Values
// are multipliers against the spawn-time base, except color channels
// which are absolute. No randomness is involved anywhere.
type ModulationCurve struct {
	Target ModTarget `yaml:"target"`
	Start  float32   `yaml:"start"`
	End    float32   `yaml:"end"`
	Curve  CurveID   `yaml:"curve"`
}
