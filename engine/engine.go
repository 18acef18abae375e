// Package engine is the control surface hosts talk to. It multiplexes
// named particle systems, serializes access per system, and turns
// configuration edits into the right checkpoint invalidations. Hosts
// never touch SimulationState or the replay controller directly.
package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ember-gfx/ember/components"
	"github.com/ember-gfx/ember/config"
	"github.com/ember-gfx/ember/replay"
	"github.com/ember-gfx/ember/systems"
)

// liveParams adapts a mutable configuration to replay.ParamSource.
// Swapping the config is only valid together with an invalidation of
// every checkpoint the old config produced; Configure does both under
// the slot lock.
type liveParams struct {
	cfg *components.SystemConfig
}

func (p *liveParams) ConfigAt(frame int32) *components.SystemConfig { return p.cfg }

type slot struct {
	mu     sync.Mutex
	name   string
	params *liveParams
	ctrl   *replay.Controller

	snapshot components.ParticleSnapshot

	suspended bool
	reason    error
}

// Engine owns one slot per configured particle system. Operations on
// different systems run concurrently; operations on the same system
// serialize on the slot mutex, which keeps each controller's RNG and
// id allocation deterministic.
type Engine struct {
	mu    sync.RWMutex
	slots map[string]*slot
	audio replay.AudioSource
}

// New builds an engine with one system per entry in cfg.Systems. The
// configs are assumed validated by config.Load. A nil audio source
// means silence.
func New(cfg *config.Config, audio replay.AudioSource) *Engine {
	if audio == nil {
		audio = replay.NoAudio{}
	}
	e := &Engine{
		slots: make(map[string]*slot, len(cfg.Systems)),
		audio: audio,
	}
	for i := range cfg.Systems {
		sys := cfg.Systems[i]
		e.addSlot(&sys)
	}
	return e
}

func (e *Engine) addSlot(sys *components.SystemConfig) {
	p := &liveParams{cfg: sys}
	e.slots[sys.Name] = &slot{
		name:   sys.Name,
		params: p,
		ctrl:   replay.NewController(p, e.audio),
	}
}

// Systems returns the configured system ids.
func (e *Engine) Systems() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.slots))
	for name := range e.slots {
		names = append(names, name)
	}
	return names
}

func (e *Engine) slot(id string) (*slot, error) {
	e.mu.RLock()
	s, ok := e.slots[id]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSystem, id)
	}
	return s, nil
}

// Configure replaces a system's configuration. An invalid config
// suspends the system (its old config and checkpoints are kept) and
// returns the ConfigurationError; a valid one installs the new config,
// invalidates checkpoints from the current playhead onward, and lifts
// any suspension.
func (e *Engine) Configure(id string, sys *components.SystemConfig) error {
	s, err := e.slot(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	config.ApplyDefaults(sys)
	if err := config.Validate(sys); err != nil {
		s.suspended = true
		s.reason = err
		slog.Warn("system suspended on invalid config", "system", id, "err", err)
		return err
	}

	s.params.cfg = sys
	s.ctrl.InvalidateFrom(s.ctrl.Frame())
	if s.suspended {
		slog.Info("system resumed", "system", id)
	}
	s.suspended = false
	s.reason = nil
	return nil
}

// Seek brings a system to the target frame and returns its frame
// number (clamped target). A suspended system refuses to step.
func (e *Engine) Seek(id string, frame int32) (int32, error) {
	s, err := e.slot(id)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.suspended {
		return s.ctrl.Frame(), fmt.Errorf("%w: %q: %v", ErrSuspended, id, s.reason)
	}
	return s.ctrl.Seek(frame).Frame, nil
}

// InvalidateFrom drops a system's checkpoints at or after frame. Hosts
// call this when an external per-frame input (keyframes, audio track)
// changed without the config document itself changing.
func (e *Engine) InvalidateFrom(id string, frame int32) error {
	s, err := e.slot(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.InvalidateFrom(frame)
	return nil
}

// Reset returns a system to frame 0, discarding state and checkpoints.
func (e *Engine) Reset(id string) error {
	s, err := e.slot(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Reset()
	return nil
}

// Snapshot fills and returns the system's render buffer at its current
// frame, with modulation applied. The buffer is owned by the slot and
// valid until the next Snapshot for the same system.
func (e *Engine) Snapshot(id string) (*components.ParticleSnapshot, error) {
	s, err := e.slot(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	mod := systems.NewModEvaluator(s.params.cfg.Curves)
	s.ctrl.State().Snapshot(&s.snapshot, mod)
	return &s.snapshot, nil
}

// SetHooks installs telemetry observers on a system's controller.
func (e *Engine) SetHooks(id string, h replay.Hooks) error {
	s, err := e.slot(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.SetHooks(h)
	return nil
}

// Frame returns a system's current frame.
func (e *Engine) Frame(id string) (int32, error) {
	s, err := e.slot(id)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Frame(), nil
}

// Stats is a point-in-time view of one system used by telemetry and
// the preview HUD.
type Stats struct {
	Frame       int32
	Live        int
	Dropped     uint64
	Checkpoints int
	Suspended   bool
}

// SystemStats returns counters for one system.
func (e *Engine) SystemStats(id string) (Stats, error) {
	s, err := e.slot(id)
	if err != nil {
		return Stats{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.ctrl.State()
	return Stats{
		Frame:       st.Frame,
		Live:        st.LiveCount(),
		Dropped:     st.DroppedSpawns,
		Checkpoints: s.ctrl.Store().Len(),
		Suspended:   s.suspended,
	}, nil
}

// LifeFractions samples age/maxAge of every live particle, for
// telemetry age distributions.
func (e *Engine) LifeFractions(id string) ([]float64, error) {
	s, err := e.slot(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	parts := s.ctrl.State().Particles
	out := make([]float64, 0, len(parts))
	for i := range parts {
		if !parts[i].Dead {
			out = append(out, float64(parts[i].LifeT()))
		}
	}
	return out, nil
}

// Config returns the active configuration of a system. Callers must
// treat it as read-only; edits go through Configure.
func (e *Engine) Config(id string) (*components.SystemConfig, error) {
	s, err := e.slot(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params.cfg, nil
}
