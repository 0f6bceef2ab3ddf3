package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTriangleArea(t *testing.T) {
	// Create a right triangle with sides 3, 4, 5
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	area := tri.Area()
	expected := 6.0 // (3 * 4) / 2 = 6

	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleEdgeLengths(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	lengths := tri.EdgeLengths()

	// Expected lengths: 3, 5, 4 (Pythagorean triple)
	if math.Abs(lengths[0]-3.0) > 1e-10 {
		t.Errorf("Edge 0 length failed: expected 3.0, got %v", lengths[0])
	}
	if math.Abs(lengths[1]-5.0) > 1e-10 {
		t.Errorf("Edge 1 length failed: expected 5.0, got %v", lengths[1])
	}
	if math.Abs(lengths[2]-4.0) > 1e-10 {
		t.Errorf("Edge 2 length failed: expected 4.0, got %v", lengths[2])
	}
}

func TestTrianglePerimeter(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	perimeter := tri.Perimeter()
	expected := 12.0 // 3 + 4 + 5 = 12

	if math.Abs(perimeter-expected) > 1e-10 {
		t.Errorf("Perimeter failed: expected %v, got %v", expected, perimeter)
	}
}

func TestTriangleCenter(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 3, 0),
	)

	center := tri.Center()
	expected := NewVector3(1, 1, 0)

	if center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestTriangleVerticesBox(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(1, 2, 0),
		NewVector3(-1, 0, 3),
		NewVector3(0, 5, 0),
	)

	vertices := tri.Vertices()
	if vertices[0] != tri.V1 || vertices[1] != tri.V2 || vertices[2] != tri.V3 {
		t.Errorf("Vertices failed: expected winding order, got %v", vertices)
	}

	box := BoxOf(vertices[:])
	if box.Min != NewVector3(-1, 0, 0) || box.Max != NewVector3(1, 5, 3) {
		t.Errorf("BoxOf failed: got min %v max %v", box.Min, box.Max)
	}

	moved := box.Transform(mgl32.Translate3D(10, 0, 0))
	if math.Abs(moved.Min.X-9) > 1e-5 || math.Abs(moved.Max.X-11) > 1e-5 {
		t.Errorf("Transform failed: expected x in [9, 11], got [%v, %v]", moved.Min.X, moved.Max.X)
	}
}

func TestTriangleCalculateNormal(t *testing.T) {
	tri := NewTriangle(
		Vector3{},
		NewVector3(0, 0, 0),
		NewVector3(2, 0, 0),
		NewVector3(0, 2, 0),
	)

	normal := tri.CalculateNormal()
	if normal != NewVector3(0, 0, 1) {
		t.Errorf("CalculateNormal failed: expected (0, 0, 1), got %v", normal)
	}

	// reversed winding flips the normal
	flipped := NewTriangle(Vector3{}, tri.V1, tri.V3, tri.V2).CalculateNormal()
	if flipped != NewVector3(0, 0, -1) {
		t.Errorf("CalculateNormal failed: expected (0, 0, -1), got %v", flipped)
	}
}
