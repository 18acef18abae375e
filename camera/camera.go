// Package camera provides the 2D viewport for the preview window. The
// simulation world is Y-up and unbounded; the camera projects the XY
// plane to screen pixels with pan and zoom.
package camera

// Camera maps world coordinates to screen coordinates.
type Camera struct {
	// Position is the camera center in world coordinates.
	X, Y float32

	// Zoom is pixels per world unit.
	Zoom float32

	// Viewport dimensions in pixels.
	ViewportW, ViewportH float32

	MinZoom, MaxZoom float32
}

// New creates a camera centered on the origin.
func New(viewportW, viewportH float32) *Camera {
	return &Camera{
		X:         0,
		Y:         2,
		Zoom:      24,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   2,
		MaxZoom:   200,
	}
}

// WorldToScreen converts world coordinates to screen pixels. Screen Y
// grows downward, world Y grows upward.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 - (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen pixels to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y - (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible reports whether a circle at (wx, wy) with the given world
// radius could appear on screen. Conservative, used for culling.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	dx := wx - c.X
	dy := wy - c.Y
	return absf(dx) <= halfW && absf(dy) <= halfH
}

// Pan moves the camera by a screen-pixel delta.
func (c *Camera) Pan(dx, dy float32) {
	c.X -= dx / c.Zoom
	c.Y += dy / c.Zoom
}

// SetZoom sets pixels per world unit, clamped to the allowed range.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor keeping the world point under the given
// screen position fixed.
func (c *Camera) ZoomAt(factor, sx, sy float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.SetZoom(c.Zoom * factor)
	nx, ny := c.ScreenToWorld(sx, sy)
	c.X += wx - nx
	c.Y += wy - ny
}

// Resize updates the viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = 0
	c.Y = 2
	c.Zoom = 24
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
