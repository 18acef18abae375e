package components

// AudioFeature names one scalar an external audio-analysis collaborator
// supplies per frame. The engine never analyses audio itself.
type AudioFeature string

const (
	FeatureAmplitude AudioFeature = "amplitude"
	FeatureBass      AudioFeature = "bass"
	FeatureMid       AudioFeature = "mid"
	FeatureTreble    AudioFeature = "treble"
	FeatureBeat      AudioFeature = "beat"
)

// AudioFrame carries the per-frame feature values. Band energies and
// amplitude are normalized to [0,1] by the collaborator.
type AudioFrame struct {
	Amplitude float32
	Bass      float32
	Mid       float32
	Treble    float32
	Beat      bool
}

// Value returns the named feature as a scalar (beat maps to 0/1).
func (f AudioFrame) Value(feat AudioFeature) float32 {
	switch feat {
	case FeatureAmplitude:
		return f.Amplitude
	case FeatureBass:
		return f.Bass
	case FeatureMid:
		return f.Mid
	case FeatureTreble:
		return f.Treble
	case FeatureBeat:
		if f.Beat {
			return 1
		}
		return 0
	}
	return 0
}

// AudioTarget names an emitter property an audio feature can override.
type AudioTarget string

const (
	AudioTargetRate    AudioTarget = "rate"
	AudioTargetSpeed   AudioTarget = "speed"
	AudioTargetSize    AudioTarget = "size"
	AudioTargetOpacity AudioTarget = "opacity"
	// AudioTargetBurst fires a burst of BeatBurst particles whenever
	// the mapped feature crosses 0.5 (typically the beat flag).
	AudioTargetBurst AudioTarget = "burst"
)

// AudioMapping routes one feature to one emitter property.
// effective = base * (1 + scale * smoothed(feature)), with optional
// inversion (1-feature) and clamping of the smoothed value to [0,1].
// Smoothing state lives in SimulationState so replay sees the same
// history as live playback.
type AudioMapping struct {
	Feature   AudioFeature `yaml:"feature"`
	Target    AudioTarget  `yaml:"target"`
	Scale     float32      `yaml:"scale"`
	Smoothing float32      `yaml:"smoothing"` // [0,1): 0 = no smoothing
	Invert    bool         `yaml:"invert"`
	Clamp     bool         `yaml:"clamp"`

	// BeatBurst is the particle count for AudioTargetBurst mappings.
	BeatBurst int `yaml:"beat_burst,omitempty"`
}
