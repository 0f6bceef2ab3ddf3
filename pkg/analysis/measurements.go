package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/govis/pkg/geometry"
	"github.com/philipparndt/govis/pkg/stl"
)

// MeshStats contains summary measurements of a triangle mesh
type MeshStats struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int
	VertexCount   int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
}

// PointStats contains summary measurements of a point set
type PointStats struct {
	BoundingBox geometry.BoundingBox
	Dimensions  geometry.Vector3
	Centroid    geometry.Vector3
	PointCount  int
}

// AnalyzeModel measures an STL model. Every facet contributes its three
// edges, so edges shared by two facets are counted twice.
func AnalyzeModel(model *stl.Model) MeshStats {
	stats := MeshStats{
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
		TriangleCount: model.TriangleCount(),
		VertexCount:   len(model.Vertices()),
	}
	stats.Dimensions = stats.BoundingBox.Size()

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, triangle := range model.Triangles {
		for _, length := range triangle.EdgeLengths() {
			totalLength += length
			minLength = math.Min(minLength, length)
			maxLength = math.Max(maxLength, length)
			stats.EdgeCount++
		}
	}

	if stats.EdgeCount > 0 {
		stats.MinEdgeLength = minLength
		stats.MaxEdgeLength = maxLength
		stats.AvgEdgeLength = totalLength / float64(stats.EdgeCount)
	}

	return stats
}

// AnalyzePoints measures a point set
func AnalyzePoints(points []geometry.Vector3) PointStats {
	stats := PointStats{
		BoundingBox: geometry.BoxOf(points),
		PointCount:  len(points),
	}
	stats.Dimensions = stats.BoundingBox.Size()

	if len(points) > 0 {
		var sum geometry.Vector3
		for _, p := range points {
			sum = sum.Add(p)
		}
		stats.Centroid = sum.Mul(1.0 / float64(len(points)))
	}

	return stats
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
