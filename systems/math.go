package systems

import (
	"math"

	"github.com/ember-gfx/ember/components"
)

func cosf(a float32) float32 { return float32(math.Cos(float64(a))) }
func sinf(a float32) float32 { return float32(math.Sin(float64(a))) }

func sqrtf(v float32) float32 { return float32(math.Sqrt(float64(v))) }
func cbrtf(v float32) float32 { return float32(math.Cbrt(float64(v))) }

func clamp32(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func cross(a, b components.Vec3) components.Vec3 {
	return components.Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func rotateY(v components.Vec3, ang float32) components.Vec3 {
	c, s := cosf(ang), sinf(ang)
	return components.Vec3{X: v.X*c + v.Z*s, Y: v.Y, Z: -v.X*s + v.Z*c}
}

func rotateZ(v components.Vec3, ang float32) components.Vec3 {
	c, s := cosf(ang), sinf(ang)
	return components.Vec3{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c, Z: v.Z}
}
