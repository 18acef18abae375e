// Package renderer draws ParticleSnapshot buffers in the preview
// window. The simulation core never imports this package; the preview
// is just another snapshot consumer.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ember-gfx/ember/camera"
	"github.com/ember-gfx/ember/components"
)

// ParticleRenderer renders snapshot buffers through a camera.
type ParticleRenderer struct {
	// Glow draws a faint halo behind bright particles.
	Glow bool
}

// NewParticleRenderer creates a renderer with glow enabled.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{Glow: true}
}

// Draw renders every visible particle as a circle, projected onto the
// XY plane (depth is ignored; the preview is a 2D view).
func (r *ParticleRenderer) Draw(snap *components.ParticleSnapshot, cam *camera.Camera) {
	for i := 0; i < snap.Count; i++ {
		wx := snap.Positions[i*3]
		wy := snap.Positions[i*3+1]
		size := snap.Sizes[i]
		radius := size * 0.5 * cam.Zoom

		if !cam.IsVisible(wx, wy, size) {
			continue
		}
		sx, sy := cam.WorldToScreen(wx, wy)

		opacity := snap.Opacities[i]
		col := rl.Color{
			R: toByte(snap.Colors[i*4]),
			G: toByte(snap.Colors[i*4+1]),
			B: toByte(snap.Colors[i*4+2]),
			A: toByte(snap.Colors[i*4+3] * opacity),
		}

		if r.Glow && opacity > 0.6 {
			halo := col
			halo.A = uint8(float32(halo.A) * 0.25)
			rl.DrawCircle(int32(sx), int32(sy), radius*2.2, halo)
		}

		if radius < 1 {
			radius = 1
		}
		rl.DrawCircle(int32(sx), int32(sy), radius, col)
	}
}

// DrawBounds draws the enabled collision planes as thin lines.
func DrawBounds(cfg *components.CollisionConfig, cam *camera.Camera) {
	lineColor := rl.Color{R: 90, G: 90, B: 110, A: 255}
	w := int32(cam.ViewportW)
	h := int32(cam.ViewportH)

	if cfg.Floor.Enabled {
		_, sy := cam.WorldToScreen(0, cfg.Floor.Position)
		rl.DrawLine(0, int32(sy), w, int32(sy), lineColor)
	}
	if cfg.Ceiling.Enabled {
		_, sy := cam.WorldToScreen(0, cfg.Ceiling.Position)
		rl.DrawLine(0, int32(sy), w, int32(sy), lineColor)
	}
	if cfg.WallLeft.Enabled {
		sx, _ := cam.WorldToScreen(cfg.WallLeft.Position, 0)
		rl.DrawLine(int32(sx), 0, int32(sx), h, lineColor)
	}
	if cfg.WallRight.Enabled {
		sx, _ := cam.WorldToScreen(cfg.WallRight.Position, 0)
		rl.DrawLine(int32(sx), 0, int32(sx), h, lineColor)
	}
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
