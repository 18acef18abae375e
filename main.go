// Preview application: plays a configured scene in a raylib window
// with a scrub slider. Scrubbing and playing go through the same
// engine seeks, so what the preview shows is exactly what any host
// would get at that frame.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ember-gfx/ember/camera"
	"github.com/ember-gfx/ember/config"
	"github.com/ember-gfx/ember/engine"
	"github.com/ember-gfx/ember/renderer"
	"github.com/ember-gfx/ember/telemetry"
	"github.com/ember-gfx/ember/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to scene yaml (empty = embedded demo scene)")
	maxFrame := flag.Int("frames", 1800, "Last scrubbable frame")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Init(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if len(cfg.Systems) == 0 {
		slog.Error("no particle systems configured")
		os.Exit(1)
	}

	eng := engine.New(cfg, nil)
	sysID := cfg.Systems[0].Name
	slog.Info("preview starting", "system", sysID, "frames", *maxFrame)

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Systems[0].FPS))

	cam := camera.New(float32(cfg.Screen.Width), float32(cfg.Screen.Height))
	particles := renderer.NewParticleRenderer()
	transport := ui.NewTransport(int32(*maxFrame))
	seekTimer := telemetry.NewSeekTimer(120)

	for !rl.WindowShouldClose() {
		// Input.
		if rl.IsKeyPressed(rl.KeySpace) {
			transport.TogglePlay()
		}
		if rl.IsKeyPressed(rl.KeyR) {
			cam.Reset()
		}
		if rl.IsMouseButtonDown(rl.MouseRightButton) {
			d := rl.GetMouseDelta()
			cam.Pan(d.X, d.Y)
		}
		if rl.IsKeyDown(rl.KeyEqual) {
			cam.ZoomBy(1.02)
		}
		if rl.IsKeyDown(rl.KeyMinus) {
			cam.ZoomBy(1 / float32(1.02))
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			m := rl.GetMousePosition()
			factor := float32(1) + wheel*0.1
			cam.ZoomAt(factor, m.X, m.Y)
		}

		frame, err := eng.Frame(sysID)
		if err != nil {
			slog.Error("frame query failed", "error", err)
			break
		}
		if transport.Playing() {
			next := frame + 1
			if next > transport.MaxFrame() {
				next = 0 // loop
			}
			seekTimer.Begin()
			if _, err := eng.Seek(sysID, next); err != nil {
				slog.Warn("seek failed", "error", err)
			}
			seekTimer.End()
			frame = next
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 12, G: 12, B: 16, A: 255})

		sysCfg, _ := eng.Config(sysID)
		renderer.DrawBounds(&sysCfg.Collision, cam)

		snap, err := eng.Snapshot(sysID)
		if err == nil {
			particles.Draw(snap, cam)
		}

		stats, _ := eng.SystemStats(sysID)
		seek := seekTimer.Stats()
		ui.HUD([]string{
			fmt.Sprintf("live %d  dropped %d", stats.Live, stats.Dropped),
			fmt.Sprintf("checkpoints %d", stats.Checkpoints),
			fmt.Sprintf("seek avg %.2fms max %.2fms",
				float64(seek.Avg.Microseconds())/1000.0,
				float64(seek.Max.Microseconds())/1000.0),
		})

		ts := transport.Draw(frame, cam.ViewportW, cam.ViewportH)
		rl.EndDrawing()

		if ts.Scrubbed {
			seekTimer.Begin()
			if _, err := eng.Seek(sysID, ts.Frame); err != nil {
				slog.Warn("scrub failed", "frame", ts.Frame, "error", err)
			}
			d := seekTimer.End()
			slog.Debug("scrub", "frame", ts.Frame, "ms", float64(d.Microseconds())/1000.0)
		}
	}
}
