// Determinism auditor: verifies that scrubbing is invisible. A scene
// is replayed to a target frame sequentially, then again through
// different checkpoint intervals and random scrub sequences; every
// resulting state must be field-identical to the sequential one.
// Exits non-zero on the first mismatch.
//
// Usage: go run ./cmd/scrubcheck -config scene.yaml -target 500 -scrubs 40
package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"

	"github.com/ember-gfx/ember/components"
	"github.com/ember-gfx/ember/config"
	"github.com/ember-gfx/ember/replay"
	"github.com/ember-gfx/ember/systems"
)

var auditIntervals = []int32{1, 10, 30, 100}

func main() {
	configPath := flag.String("config", "", "Path to scene yaml (empty = embedded demo scene)")
	target := flag.Int("target", 500, "Frame to audit")
	scrubs := flag.Int("scrubs", 40, "Random scrubs per interval before the final seek")
	auditSeed := flag.Int64("audit-seed", 1, "Seed for the random scrub sequence")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Init(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if len(cfg.Systems) == 0 {
		slog.Error("no particle systems configured")
		os.Exit(1)
	}

	failures := 0
	for i := range cfg.Systems {
		sys := &cfg.Systems[i]
		slog.Info("auditing system", "system", sys.Name, "target", *target)

		ref := sequentialState(sys, int32(*target))
		slog.Info("sequential reference built",
			"frame", ref.Frame,
			"live", ref.LiveCount(),
			"rng_draws", ref.RNG.Draws,
		)

		for _, interval := range auditIntervals {
			state := scrubbedState(sys, interval, int32(*target), *scrubs, *auditSeed)
			if err := replay.Verify(ref, state); err != nil {
				slog.Error("determinism violation",
					"system", sys.Name,
					"interval", interval,
					"error", err,
				)
				failures++
				continue
			}
			slog.Info("interval verified", "interval", interval)
		}
	}

	if failures > 0 {
		slog.Error("audit failed", "mismatches", failures)
		os.Exit(1)
	}
	slog.Info("audit passed", "intervals", auditIntervals)
}

// sequentialState plays a fresh controller from 0 to target one frame
// at a time, the ground truth every scrubbed replay must match.
func sequentialState(sys *components.SystemConfig, target int32) *systems.SimulationState {
	ctrl := replay.NewController(replay.StaticParams{Cfg: sys}, nil)
	for f := int32(1); f <= target; f++ {
		ctrl.Seek(f)
	}
	return ctrl.State()
}

// scrubbedState hammers a fresh controller with random seeks under the
// given checkpoint interval, then lands on target.
func scrubbedState(sys *components.SystemConfig, interval, target int32, scrubs int, seed int64) *systems.SimulationState {
	cfg := *sys
	cfg.CheckpointInterval = interval
	ctrl := replay.NewController(replay.StaticParams{Cfg: &cfg}, nil)

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < scrubs; i++ {
		ctrl.Seek(rng.Int31n(target + 1))
	}
	ctrl.Seek(target)
	// Seeking the frame we are already on must be a no-op.
	return ctrl.Seek(target)
}
