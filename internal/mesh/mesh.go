// Package mesh is the triangle surface mesh structure built from STL models
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/govis/internal/panel"
	"github.com/philipparndt/govis/internal/property"
	"github.com/philipparndt/govis/internal/render"
	"github.com/philipparndt/govis/internal/structure"
	"github.com/philipparndt/govis/pkg/analysis"
	"github.com/philipparndt/govis/pkg/geometry"
	"github.com/philipparndt/govis/pkg/stl"
)

const (
	// TypeName is shown in panel headers and partitions the registry
	TypeName = "Surface Mesh"
	// TypeTag namespaces persisted properties
	TypeTag = "SurfaceMesh"
)

// SurfaceMesh is a triangle mesh
type SurfaceMesh struct {
	*structure.Structure
	structure.NoUI

	model     *stl.Model
	stats     analysis.MeshStats
	wireframe *property.Value[bool]
	color     *property.Value[mgl32.Vec3]
}

// New creates a surface mesh for model and registers it
func New(ctx *structure.Context, name string, model *stl.Model) (*SurfaceMesh, error) {
	if model == nil {
		return nil, fmt.Errorf("failed to create %s %q: no model", TypeName, name)
	}
	m := &SurfaceMesh{
		model: model,
		stats: analysis.AnalyzeModel(model),
	}

	s, err := structure.New(ctx, name, TypeTag, m)
	if err != nil {
		return nil, err
	}
	m.Structure = s

	var errs []error
	if m.wireframe, err = property.New(ctx.Store, s.PropertyKey("wireframe"), false); err != nil {
		errs = append(errs, err)
	}
	if m.color, err = property.New(ctx.Store, s.PropertyKey("surface_color"), mgl32.Vec3{0.6, 0.75, 0.9}); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		ctx.Log.Warn().Err(err).Str("structure", name).Msg("ignoring persisted mesh values")
	}

	m.UpdateStructureExtents()
	return m, nil
}

// TypeName implements structure.Variant
func (m *SurfaceMesh) TypeName() string { return TypeName }

// BoundingBox implements structure.Variant
func (m *SurfaceMesh) BoundingBox() geometry.BoundingBox { return m.stats.BoundingBox }

// LengthScale is the diagonal of the bounding box
func (m *SurfaceMesh) LengthScale() float64 { return m.stats.BoundingBox.Diagonal() }

// UpdateStructureExtents implements structure.Variant
func (m *SurfaceMesh) UpdateStructureExtents() {
	m.CacheExtents()
}

// Model returns the underlying STL model
func (m *SurfaceMesh) Model() *stl.Model { return m.model }

// Stats returns the mesh measurements
func (m *SurfaceMesh) Stats() analysis.MeshStats { return m.stats }

// Wireframe reports whether edges are drawn over the surface
func (m *SurfaceMesh) Wireframe() bool { return m.wireframe.Get() }

// SetWireframe toggles edge drawing
func (m *SurfaceMesh) SetWireframe(on bool) {
	if on == m.wireframe.Get() {
		return
	}
	m.wireframe.Set(on)
	m.Refresh()
}

// Color returns the surface color
func (m *SurfaceMesh) Color() mgl32.Vec3 { return m.color.Get() }

// SetColor sets the surface color
func (m *SurfaceMesh) SetColor(c mgl32.Vec3) {
	m.color.Set(c)
	m.Refresh()
}

// SetProgramUniforms pushes the shared transform state and the surface color
func (m *SurfaceMesh) SetProgramUniforms(p render.Program) {
	m.SetTransformUniforms(p)
	if p.HasUniform(render.UniformBaseColor) {
		p.SetUniformVec3(render.UniformBaseColor, m.color.Get())
	}
}

// ReleaseProperties implements structure.PropertyReleaser
func (m *SurfaceMesh) ReleaseProperties() {
	if m.wireframe != nil {
		m.wireframe.Release()
	}
	if m.color != nil {
		m.color.Release()
	}
}

// BuildCustomUI shows counts and the wireframe toggle
func (m *SurfaceMesh) BuildCustomUI(ui panel.UI) {
	ui.Text(fmt.Sprintf("# triangles: %d  # vertices: %d", m.stats.TriangleCount, m.stats.VertexCount))
	wireframe := m.wireframe.Get()
	if ui.Checkbox("Wireframe", &wireframe) {
		m.SetWireframe(wireframe)
	}
}

// BuildCustomOptionsUI adds a Statistics menu with the mesh analysis
func (m *SurfaceMesh) BuildCustomOptionsUI(ui panel.UI) {
	if !ui.BeginMenu("Statistics") {
		return
	}
	ui.Text("Dimensions: " + analysis.FormatVector(m.stats.Dimensions))
	ui.Text("Surface area: " + analysis.FormatMeasurement(m.stats.SurfaceArea, "units²"))
	ui.Text("Edges: " + fmt.Sprint(m.stats.EdgeCount))
	ui.Text("Edge length: " + fmt.Sprintf("min %.4g  avg %.4g  max %.4g",
		m.stats.MinEdgeLength, m.stats.AvgEdgeLength, m.stats.MaxEdgeLength))
	ui.EndMenu()
}
