package components

import "math"

// Vec3 is a position/velocity/acceleration vector in scene units.
// Motion-graphics scenes are 2.5D: X/Y span the canvas, Z gives depth
// for sphere/cone emitters and depth-scaled rendering.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// LenSq returns the squared length of v (avoid sqrt in hot paths).
func (v Vec3) LenSq() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Len returns the length of v.
func (v Vec3) Len() float32 {
	return float32(math.Sqrt(float64(v.LenSq())))
}

// Normalized returns v scaled to unit length, or the zero vector if v
// is (near) zero.
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l < 1e-8 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// RGBA is a straight-alpha color with float channels in [0,1].
type RGBA struct {
	R, G, B, A float32
}

// Lerp linearly interpolates between c and o by t in [0,1].
func (c RGBA) Lerp(o RGBA, t float32) RGBA {
	return RGBA{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}
