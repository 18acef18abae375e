// Headless runner: simulates a scene for N frames without a window,
// writing window telemetry as CSV and printing a live-count sparkline
// at the end.
//
// Usage: go run ./cmd/embersim -config scene.yaml -frames 3600 -output-dir out
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/guptarohit/asciigraph"

	"github.com/ember-gfx/ember/config"
	"github.com/ember-gfx/ember/engine"
	"github.com/ember-gfx/ember/replay"
	"github.com/ember-gfx/ember/systems"
	"github.com/ember-gfx/ember/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to scene yaml (empty = embedded demo scene)")
	frames := flag.Int("frames", 3600, "Number of frames to simulate")
	seed := flag.Uint("seed", 0, "Override the system seed (0 = keep config seed)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	statsWindow := flag.Int("stats-window", 0, "Stats window in frames (0 = use config)")
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
	if *seed != 0 {
		for i := range cfg.Systems {
			cfg.Systems[i].Seed = uint32(*seed)
		}
	}

	window := int32(cfg.Telemetry.WindowSize)
	if *statsWindow > 0 {
		window = int32(*statsWindow)
	}

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Warn("failed to snapshot config", "error", err)
	}

	eng := engine.New(cfg, nil)
	sysID := cfg.Systems[0].Name
	collector := telemetry.NewCollector(window, cfg.Systems[0].FPS)

	var latest systems.StepMetrics
	logEvent := func(e telemetry.ReplayEvent) {
		e.Log()
		if err := out.WriteReplayEvent(e); err != nil {
			slog.Warn("replay log write failed", "error", err)
		}
	}
	hooks := replay.Hooks{
		OnStep: func(frame int32, m systems.StepMetrics) {
			latest = m
			collector.RecordStep(m)
		},
		OnCheckpointPut: func(frame int32) {
			collector.RecordCheckpointPut()
			logEvent(telemetry.ReplayEvent{
				Type: telemetry.EventCheckpointPut, Frame: frame,
			})
		},
		OnRestore: func(checkpoint, target int32) {
			collector.RecordCheckpointRestore()
			logEvent(telemetry.ReplayEvent{
				Type:  telemetry.EventCheckpointRestore,
				Frame: checkpoint, Target: target,
				Count: int(target - checkpoint),
			})
		},
		OnMiss: func(target int32) {
			logEvent(telemetry.ReplayEvent{
				Type: telemetry.EventCheckpointMiss, Target: target,
			})
		},
		OnInvalidate: func(from int32, dropped int) {
			collector.RecordInvalidation()
			logEvent(telemetry.ReplayEvent{
				Type: telemetry.EventInvalidate, Frame: from, Count: dropped,
			})
		},
	}
	if err := eng.SetHooks(sysID, hooks); err != nil {
		slog.Error("failed to install hooks", "error", err)
		os.Exit(1)
	}

	slog.Info("headless run starting",
		"system", sysID,
		"frames", *frames,
		"stats_window", window,
	)

	history := make([]float64, 0, *frames)
	for f := int32(1); f <= int32(*frames); f++ {
		if _, err := eng.Seek(sysID, f); err != nil {
			slog.Error("step failed", "frame", f, "error", err)
			os.Exit(1)
		}
		stats, _ := eng.SystemStats(sysID)
		history = append(history, float64(stats.Live))

		if collector.ShouldFlush(f) {
			ages, _ := eng.LifeFractions(sysID)
			ws := collector.Flush(f, stats.Live, stats.Dropped, ages)
			if err := out.WriteStats(ws); err != nil {
				slog.Warn("telemetry write failed", "error", err)
			}
			slog.Info("window",
				"end", ws.WindowEnd,
				"live", ws.Live,
				"spawned", ws.Spawned,
				"died", ws.Died,
				"sub_spawned", ws.SubSpawned,
				"collisions", ws.Collisions,
				"dropped", ws.Dropped,
			)
		}
	}

	final, _ := eng.SystemStats(sysID)
	slog.Info("run complete",
		"frames", *frames,
		"live", final.Live,
		"dropped", final.Dropped,
		"last_spawned", latest.Spawned,
	)

	if len(history) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(history,
			asciigraph.Height(12),
			asciigraph.Caption(fmt.Sprintf("live particles over %d frames", *frames)),
		))
	}
}
