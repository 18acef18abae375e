package replay

import (
	"log/slog"

	"github.com/ember-gfx/ember/components"
	"github.com/ember-gfx/ember/systems"
)

// ParamSource supplies the effective configuration for a frame with
// every animated parameter already interpolated by the host's keyframe
// engine. It must be a pure function of the frame number: replay asks
// for the same frames again and must receive identical answers.
type ParamSource interface {
	ConfigAt(frame int32) *components.SystemConfig
}

// AudioSource supplies per-frame audio features. Like ParamSource it
// must be pure per frame; a live microphone cannot back a scrub.
type AudioSource interface {
	FeaturesAt(frame int32) components.AudioFrame
}

// StaticParams is a ParamSource for configurations with no animation.
type StaticParams struct {
	Cfg *components.SystemConfig
}

// ConfigAt returns the wrapped configuration for every frame.
func (s StaticParams) ConfigAt(frame int32) *components.SystemConfig { return s.Cfg }

// NoAudio is an AudioSource with all features at zero.
type NoAudio struct{}

// FeaturesAt returns a zero frame.
func (NoAudio) FeaturesAt(frame int32) components.AudioFrame { return components.AudioFrame{} }

// DefaultCheckpointInterval is the snapshot cadence when the system
// configuration does not specify one.
const DefaultCheckpointInterval = 30

// Hooks observe controller activity for telemetry. All fields are
// optional. Hooks must not touch the controller or its state; they
// exist so observation never changes replay behavior.
type Hooks struct {
	OnStep          func(frame int32, m systems.StepMetrics)
	OnCheckpointPut func(frame int32)
	OnRestore       func(checkpoint, target int32)
	OnMiss          func(target int32)
	OnInvalidate    func(from int32, dropped int)
}

// Controller satisfies frame requests for one particle system. It owns
// the live SimulationState exclusively: callers serialize access (a
// new Seek must not begin before the previous one returned), otherwise
// RNG consumption order and id allocation become nondeterministic.
//
// Sequential play (target == current+1) is a single step with no store
// lookup. Anything else restores the nearest checkpoint at or before
// the target and replays the remainder, so scrub cost is bounded by
// the checkpoint interval, never by the distance from frame 0.
type Controller struct {
	stepper *systems.Stepper
	store   *CheckpointStore
	params  ParamSource
	audio   AudioSource

	hooks Hooks

	state *systems.SimulationState
	// stale marks the live state as derived from a configuration that
	// has since been edited at or before its frame; the next request
	// must go through a checkpoint.
	stale bool
}

// NewController creates a controller at frame 0. The frame-0 state is
// checkpointed immediately so a full restart is always reachable.
func NewController(params ParamSource, audio AudioSource) *Controller {
	if audio == nil {
		audio = NoAudio{}
	}
	cfg := params.ConfigAt(0)
	c := &Controller{
		stepper: systems.NewStepper(),
		store:   NewCheckpointStore(),
		params:  params,
		audio:   audio,
		state:   systems.NewSimulationState(cfg),
	}
	c.store.Put(0, c.state)
	return c
}

// SetHooks installs telemetry observers. Call before the first Seek.
func (c *Controller) SetHooks(h Hooks) { c.hooks = h }

// Frame returns the frame of the live state.
func (c *Controller) Frame() int32 { return c.state.Frame }

// State exposes the live state for snapshotting and metrics. Callers
// must not mutate it.
func (c *Controller) State() *systems.SimulationState { return c.state }

// Store exposes the checkpoint store (telemetry and tests).
func (c *Controller) Store() *CheckpointStore { return c.store }

// Seek brings the live state to exactly the target frame and returns
// it. A long replay runs to completion synchronously; there is no
// mid-way cancellation, callers wanting responsiveness run Seek on a
// background goroutine and keep requests serialized.
func (c *Controller) Seek(target int32) *systems.SimulationState {
	if target < 0 {
		target = 0
	}

	// Sequential fast path, only valid while the live state is trusted.
	if !c.stale {
		if target == c.state.Frame {
			return c.state
		}
		if target == c.state.Frame+1 {
			c.step()
			return c.state
		}
	}

	cp := c.store.Get(target)
	if cp == nil {
		// Checkpoint miss: full replay from a rebuilt frame 0. The
		// configuration is always available, so frame 0 always exists.
		slog.Debug("checkpoint miss, replaying from frame 0", "target", target)
		if c.hooks.OnMiss != nil {
			c.hooks.OnMiss(target)
		}
		c.state = systems.NewSimulationState(c.params.ConfigAt(0))
		c.store.Put(0, c.state)
	} else {
		c.state = cp.State.Clone()
		conformState(c.state, c.params.ConfigAt(cp.Frame))
		if c.hooks.OnRestore != nil {
			c.hooks.OnRestore(cp.Frame, target)
		}
	}
	c.stale = false

	for c.state.Frame < target {
		c.step()
	}
	return c.state
}

// step advances one frame, feeding the parameter and audio values for
// the frame being produced, and checkpoints on the interval. The
// interval comes from the frame's config so an edited cadence takes
// effect on the next step.
func (c *Controller) step() {
	frame := c.state.Frame + 1
	cfg := c.params.ConfigAt(frame)
	m := c.stepper.Step(c.state, cfg, c.audio.FeaturesAt(frame))
	if c.hooks.OnStep != nil {
		c.hooks.OnStep(frame, m)
	}
	interval := cfg.CheckpointInterval
	if interval <= 0 {
		interval = DefaultCheckpointInterval
	}
	if frame%interval == 0 {
		c.store.Put(frame, c.state)
		if c.hooks.OnCheckpointPut != nil {
			c.hooks.OnCheckpointPut(frame)
		}
	}
}

// InvalidateFrom drops checkpoints at or after the edited frame. If
// the live state has advanced past the edit point it is marked stale
// so the next request replays through a surviving checkpoint.
func (c *Controller) InvalidateFrom(frame int32) {
	dropped := c.store.InvalidateFrom(frame)
	if c.state.Frame >= frame {
		c.stale = true
	}
	if dropped > 0 {
		slog.Debug("checkpoints invalidated", "from", frame, "dropped", dropped)
	}
	if c.hooks.OnInvalidate != nil {
		c.hooks.OnInvalidate(frame, dropped)
	}
}

// Reset discards all state and checkpoints and returns to frame 0.
func (c *Controller) Reset() {
	cfg := c.params.ConfigAt(0)
	c.state = systems.NewSimulationState(cfg)
	c.store = NewCheckpointStore()
	c.store.Put(0, c.state)
	c.stale = false
}

// conformState resizes the per-emitter slices after a structural
// configuration edit (emitters added or removed) so a checkpoint taken
// under the old shape replays cleanly under the new one. Deterministic:
// truncation and zero-padding only.
func conformState(s *systems.SimulationState, cfg *components.SystemConfig) {
	n := len(cfg.Emitters)
	for len(s.EmitAccum) < n {
		s.EmitAccum = append(s.EmitAccum, 0)
	}
	s.EmitAccum = s.EmitAccum[:n]

	for len(s.AudioSmooth) < n {
		s.AudioSmooth = append(s.AudioSmooth, nil)
	}
	s.AudioSmooth = s.AudioSmooth[:n]
	for i := 0; i < n; i++ {
		m := len(cfg.Emitters[i].Audio)
		for len(s.AudioSmooth[i]) < m {
			s.AudioSmooth[i] = append(s.AudioSmooth[i], 0)
		}
		s.AudioSmooth[i] = s.AudioSmooth[i][:m]
	}
}
