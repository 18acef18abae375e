package systems

import (
	"math"
	"testing"

	"github.com/ember-gfx/ember/components"
)

func shapeFor(kind components.ShapeKind) components.ShapeParams {
	s := components.ShapeParams{Kind: kind}
	switch kind {
	case components.ShapeLine:
		s.End = components.Vec3{X: 10}
	case components.ShapeCircle, components.ShapeRing, components.ShapeSphere:
		s.Radius = 2
	case components.ShapeBox:
		s.Extents = components.Vec3{X: 1, Y: 2, Z: 3}
	case components.ShapeCone:
		s.Radius = 2
		s.Angle = 0.4
		s.Length = 5
	case components.ShapeSpline:
		s.Points = []components.Vec3{{X: 0}, {X: 1}, {X: 2}, {X: 3}}
	case components.ShapeMesh:
		s.Vertices = []components.Vec3{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1},
			{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		}
	}
	return s
}

// Draw counts are part of the replay contract: a sample must consume
// exactly the documented number of values.
func TestSampleShapeDrawBudget(t *testing.T) {
	kinds := []components.ShapeKind{
		components.ShapePoint,
		components.ShapeLine,
		components.ShapeCircle,
		components.ShapeRing,
		components.ShapeBox,
		components.ShapeSphere,
		components.ShapeCone,
		components.ShapeSpline,
		components.ShapeMesh,
	}
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			shape := shapeFor(kind)
			min, max := ShapeDraws(kind)
			rng := NewSource(31)
			for i := 0; i < 200; i++ {
				before := rng.Draws()
				SampleShape(&shape, components.Vec3{}, rng)
				used := int(rng.Draws() - before)
				if used < min || used > max {
					t.Fatalf("sample %d used %d draws, want [%d, %d]", i, used, min, max)
				}
			}
		})
	}
}

func TestSampleRingOnEdge(t *testing.T) {
	shape := shapeFor(components.ShapeRing)
	origin := components.Vec3{X: 5, Y: -1}
	rng := NewSource(11)
	for i := 0; i < 100; i++ {
		sp := SampleShape(&shape, origin, rng)
		d := sp.Pos.Sub(origin).Len()
		if math.Abs(float64(d-shape.Radius)) > 0.001 {
			t.Fatalf("sample %d at distance %v, want %v", i, d, shape.Radius)
		}
	}
}

func TestSampleCircleInsideDisc(t *testing.T) {
	shape := shapeFor(components.ShapeCircle)
	rng := NewSource(12)
	for i := 0; i < 500; i++ {
		sp := SampleShape(&shape, components.Vec3{}, rng)
		if sp.Pos.Len() > shape.Radius+0.001 {
			t.Fatalf("sample %d outside disc: %v", i, sp.Pos)
		}
		if sp.Pos.Z != 0 {
			t.Fatalf("circle sample left the XY plane: %v", sp.Pos)
		}
	}
}

func TestSampleSphereInsideBall(t *testing.T) {
	shape := shapeFor(components.ShapeSphere)
	rng := NewSource(13)
	for i := 0; i < 500; i++ {
		sp := SampleShape(&shape, components.Vec3{}, rng)
		if sp.Pos.Len() > shape.Radius+0.001 {
			t.Fatalf("sample %d outside ball: %v (len %v)", i, sp.Pos, sp.Pos.Len())
		}
	}
}

func TestSampleBoxInsideExtents(t *testing.T) {
	shape := shapeFor(components.ShapeBox)
	rng := NewSource(14)
	for i := 0; i < 500; i++ {
		sp := SampleShape(&shape, components.Vec3{}, rng)
		if absf(sp.Pos.X) > shape.Extents.X || absf(sp.Pos.Y) > shape.Extents.Y || absf(sp.Pos.Z) > shape.Extents.Z {
			t.Fatalf("sample %d outside box: %v", i, sp.Pos)
		}
	}
}

func TestSampleLineOnSegment(t *testing.T) {
	shape := shapeFor(components.ShapeLine)
	rng := NewSource(15)
	for i := 0; i < 200; i++ {
		sp := SampleShape(&shape, components.Vec3{}, rng)
		if sp.Pos.Y != 0 || sp.Pos.Z != 0 {
			t.Fatalf("line sample off axis: %v", sp.Pos)
		}
		if sp.Pos.X < 0 || sp.Pos.X > shape.End.X {
			t.Fatalf("line sample off segment: %v", sp.Pos)
		}
	}
}

func TestSampleDirectionsUnit(t *testing.T) {
	kinds := []components.ShapeKind{
		components.ShapePoint,
		components.ShapeCircle,
		components.ShapeSphere,
		components.ShapeCone,
	}
	for _, kind := range kinds {
		shape := shapeFor(kind)
		rng := NewSource(16)
		for i := 0; i < 100; i++ {
			sp := SampleShape(&shape, components.Vec3{}, rng)
			l := sp.Dir.Len()
			if math.Abs(float64(l-1)) > 0.001 {
				t.Fatalf("%s sample %d direction length %v", kind, i, l)
			}
		}
	}
}

func TestApplySpreadDrawCount(t *testing.T) {
	rng := NewSource(17)
	dir := components.Vec3{Y: 1}

	before := rng.Draws()
	out := ApplySpread(dir, 0, rng)
	if rng.Draws()-before != 2 {
		t.Errorf("zero spread consumed %d draws, want 2", rng.Draws()-before)
	}
	if out != dir {
		t.Errorf("zero spread changed direction: %v", out)
	}

	before = rng.Draws()
	out = ApplySpread(dir, 0.5, rng)
	if rng.Draws()-before != 2 {
		t.Errorf("spread consumed %d draws, want 2", rng.Draws()-before)
	}
	if math.Abs(float64(out.Len()-1)) > 0.001 {
		t.Errorf("spread direction not unit: %v", out.Len())
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
