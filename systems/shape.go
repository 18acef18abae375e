package systems

import (
	"math"

	"github.com/ember-gfx/ember/components"
)

// sphereRejectCap bounds rejection sampling for sphere volumes. When
// every attempt lands outside the unit ball the sampler falls back to
// projecting the last attempt onto the surface, so the worst case is
// exactly sphereRejectCap*3 draws.
const sphereRejectCap = 8

// Spawn is a sampled spawn position and unit-length velocity direction.
type Spawn struct {
	Pos components.Vec3
	Dir components.Vec3
}

// ShapeDraws returns the number of RNG values one sample consumes for
// the shape, before direction spread (always 2 more) and excluding the
// sphere rejection loop which is bounded, not fixed:
//
//	point  2 (unit direction)
//	line   3 (t + unit direction)
//	circle 2 (angle + area radius)
//	ring   1 (angle)
//	box    5 (x,y,z + unit direction)
//	sphere 3 per attempt, <= 8 attempts
//	cone   3 (angle + base radius + length)
//	spline 3 (t + unit direction)
//	mesh   3 (triangle + 2 barycentric)
//
// Replay consumes RNG identically to live simulation because the same
// shape and state walk the same sequence; the counts are documented so
// parity tests can budget draws per spawn.
func ShapeDraws(kind components.ShapeKind) (min, max int) {
	switch kind {
	case components.ShapePoint:
		return 2, 2
	case components.ShapeLine:
		return 3, 3
	case components.ShapeCircle:
		return 2, 2
	case components.ShapeRing:
		return 1, 1
	case components.ShapeBox:
		return 5, 5
	case components.ShapeSphere:
		return 3, sphereRejectCap * 3
	case components.ShapeCone:
		return 3, 3
	case components.ShapeSpline:
		return 3, 3
	case components.ShapeMesh:
		return 3, 3
	}
	return 0, 0
}

// SampleShape draws a spawn position and direction for the shape,
// centered on origin. Per-shape draw counts are fixed (see ShapeDraws);
// anything probabilistic comes from rng and nothing else.
func SampleShape(shape *components.ShapeParams, origin components.Vec3, rng *Source) Spawn {
	switch shape.Kind {
	case components.ShapePoint:
		return Spawn{Pos: origin, Dir: unitVector(rng)}

	case components.ShapeLine:
		t := rng.Next()
		pos := origin.Add(shape.End.Sub(origin).Scale(t))
		return Spawn{Pos: pos, Dir: unitVector(rng)}

	case components.ShapeCircle:
		// sqrt of the radius draw keeps area density uniform.
		ang := rng.Angle()
		rad := float32(math.Sqrt(float64(rng.Next()))) * shape.Radius
		dir := components.Vec3{X: cosf(ang), Y: sinf(ang)}
		return Spawn{Pos: origin.Add(dir.Scale(rad)), Dir: dir}

	case components.ShapeRing:
		ang := rng.Angle()
		dir := components.Vec3{X: cosf(ang), Y: sinf(ang)}
		return Spawn{Pos: origin.Add(dir.Scale(shape.Radius)), Dir: dir}

	case components.ShapeBox:
		pos := components.Vec3{
			X: origin.X + rng.Range(-shape.Extents.X, shape.Extents.X),
			Y: origin.Y + rng.Range(-shape.Extents.Y, shape.Extents.Y),
			Z: origin.Z + rng.Range(-shape.Extents.Z, shape.Extents.Z),
		}
		return Spawn{Pos: pos, Dir: unitVector(rng)}

	case components.ShapeSphere:
		return sampleSphere(shape, origin, rng)

	case components.ShapeCone:
		ang := rng.Angle()
		frac := rng.Next() // base-disc radius fraction
		along := rng.Next()
		spreadR := float32(math.Tan(float64(shape.Angle))) * shape.Length * frac
		pos := components.Vec3{
			X: origin.X + cosf(ang)*spreadR*along,
			Y: origin.Y + shape.Length*along,
			Z: origin.Z + sinf(ang)*spreadR*along,
		}
		dir := pos.Sub(origin).Normalized()
		if dir.LenSq() == 0 {
			dir = components.Vec3{Y: 1}
		}
		return Spawn{Pos: pos, Dir: dir}

	case components.ShapeSpline:
		t := rng.Next()
		return Spawn{Pos: splinePoint(shape.Points, t), Dir: unitVector(rng)}

	case components.ShapeMesh:
		return sampleMesh(shape, rng)
	}

	// Validated configs never reach here; behave like a point emitter.
	return Spawn{Pos: origin, Dir: unitVector(rng)}
}

// sampleSphere rejection-samples the unit ball, capped so the draw
// count stays bounded. An exhausted cap projects the last attempt onto
// the sphere surface, still a deterministic function of the sequence.
func sampleSphere(shape *components.ShapeParams, origin components.Vec3, rng *Source) Spawn {
	var p components.Vec3
	for i := 0; i < sphereRejectCap; i++ {
		p = components.Vec3{
			X: rng.Range(-1, 1),
			Y: rng.Range(-1, 1),
			Z: rng.Range(-1, 1),
		}
		if p.LenSq() <= 1 {
			return Spawn{Pos: origin.Add(p.Scale(shape.Radius)), Dir: p.Normalized()}
		}
	}
	dir := p.Normalized()
	return Spawn{Pos: origin.Add(dir.Scale(shape.Radius)), Dir: dir}
}

// sampleMesh picks a triangle uniformly by index, then a uniform point
// inside it via the reflected-barycentric trick.
func sampleMesh(shape *components.ShapeParams, rng *Source) Spawn {
	triCount := len(shape.Vertices) / 3
	idx := int(rng.Next() * float32(triCount))
	if idx >= triCount {
		idx = triCount - 1
	}
	a := shape.Vertices[idx*3]
	b := shape.Vertices[idx*3+1]
	c := shape.Vertices[idx*3+2]

	u := rng.Next()
	v := rng.Next()
	if u+v > 1 {
		u = 1 - u
		v = 1 - v
	}
	pos := a.Add(b.Sub(a).Scale(u)).Add(c.Sub(a).Scale(v))

	// Direction: the triangle normal, a pure function of geometry.
	n := cross(b.Sub(a), c.Sub(a)).Normalized()
	if n.LenSq() == 0 {
		n = components.Vec3{Y: 1}
	}
	return Spawn{Pos: pos, Dir: n}
}

// ApplySpread jitters dir inside a cone of the given half-angle.
// Always exactly 2 draws, even at spread 0, so direction variation
// never changes a shape's total draw count.
func ApplySpread(dir components.Vec3, spread float32, rng *Source) components.Vec3 {
	yaw := rng.Range(-spread, spread)
	pitch := rng.Range(-spread, spread)
	if spread == 0 {
		return dir
	}
	d := rotateY(dir, yaw)
	d = rotateZ(d, pitch)
	return d.Normalized()
}

// unitVector draws a uniformly distributed 3D unit vector. Exactly 2
// draws (z coordinate + azimuth).
func unitVector(rng *Source) components.Vec3 {
	z := rng.Range(-1, 1)
	ang := rng.Angle()
	r := float32(math.Sqrt(float64(1 - z*z)))
	return components.Vec3{X: r * cosf(ang), Y: r * sinf(ang), Z: z}
}

// splinePoint evaluates a uniform Catmull-Rom spline at t in [0,1]
// across the control polyline.
func splinePoint(points []components.Vec3, t float32) components.Vec3 {
	segs := len(points) - 3
	if segs < 1 {
		if len(points) > 0 {
			return points[0]
		}
		return components.Vec3{}
	}
	ft := t * float32(segs)
	seg := int(ft)
	if seg >= segs {
		seg = segs - 1
	}
	lt := ft - float32(seg)

	p0 := points[seg]
	p1 := points[seg+1]
	p2 := points[seg+2]
	p3 := points[seg+3]

	t2 := lt * lt
	t3 := t2 * lt
	return components.Vec3{
		X: catmull(p0.X, p1.X, p2.X, p3.X, lt, t2, t3),
		Y: catmull(p0.Y, p1.Y, p2.Y, p3.Y, lt, t2, t3),
		Z: catmull(p0.Z, p1.Z, p2.Z, p3.Z, lt, t2, t3),
	}
}

func catmull(p0, p1, p2, p3, t, t2, t3 float32) float32 {
	return 0.5 * ((2 * p1) +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t2 +
		(-p0+3*p1-3*p2+p3)*t3)
}
