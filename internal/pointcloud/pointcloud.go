// Package pointcloud is the point cloud structure
package pointcloud

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/govis/internal/panel"
	"github.com/philipparndt/govis/internal/property"
	"github.com/philipparndt/govis/internal/render"
	"github.com/philipparndt/govis/internal/structure"
	"github.com/philipparndt/govis/pkg/analysis"
	"github.com/philipparndt/govis/pkg/geometry"
)

const (
	// TypeName is shown in panel headers and partitions the registry
	TypeName = "Point Cloud"
	// TypeTag namespaces persisted properties
	TypeTag = "PointCloud"

	// DefaultRadius is relative to the length scale
	DefaultRadius = 0.005
	maxRadius     = 0.1
)

// ErrQuantitySize is returned when a quantity does not have one value per point
var ErrQuantitySize = errors.New("quantity size does not match point count")

// PointCloud is a set of points drawn as spheres
type PointCloud struct {
	*structure.Structure

	points     []geometry.Vector3
	stats      analysis.PointStats
	radius     *property.Value[float64]
	color      *property.Value[mgl32.Vec3]
	quantities map[string]*ScalarQuantity
}

// New creates a point cloud and registers it
func New(ctx *structure.Context, name string, points []geometry.Vector3) (*PointCloud, error) {
	pc := &PointCloud{
		points:     append([]geometry.Vector3(nil), points...),
		quantities: make(map[string]*ScalarQuantity),
	}
	pc.stats = analysis.AnalyzePoints(pc.points)

	s, err := structure.New(ctx, name, TypeTag, pc)
	if err != nil {
		return nil, err
	}
	pc.Structure = s

	var errs []error
	if pc.radius, err = property.New(ctx.Store, s.PropertyKey("point_radius"), DefaultRadius); err != nil {
		errs = append(errs, err)
	}
	if pc.color, err = property.New(ctx.Store, s.PropertyKey("point_color"), mgl32.Vec3{0.2, 0.5, 0.9}); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		ctx.Log.Warn().Err(err).Str("structure", name).Msg("ignoring persisted point cloud values")
	}

	pc.UpdateStructureExtents()
	return pc, nil
}

// TypeName implements structure.Variant
func (pc *PointCloud) TypeName() string { return TypeName }

// BoundingBox implements structure.Variant
func (pc *PointCloud) BoundingBox() geometry.BoundingBox { return pc.stats.BoundingBox }

// LengthScale is the diagonal of the bounding box
func (pc *PointCloud) LengthScale() float64 { return pc.stats.BoundingBox.Diagonal() }

// UpdateStructureExtents implements structure.Variant
func (pc *PointCloud) UpdateStructureExtents() {
	pc.CacheExtents()
}

// Points returns the points in object space
func (pc *PointCloud) Points() []geometry.Vector3 { return pc.points }

// Stats returns the point statistics
func (pc *PointCloud) Stats() analysis.PointStats { return pc.stats }

// PointRadius returns the radius relative to the length scale
func (pc *PointCloud) PointRadius() float64 { return pc.radius.Get() }

// SetPointRadius sets the relative radius, clamped to [0, 0.1]
func (pc *PointCloud) SetPointRadius(r float64) {
	pc.radius.Set(min(max(r, 0), maxRadius))
	pc.Refresh()
}

// WorldRadius is the radius in world units
func (pc *PointCloud) WorldRadius() float64 {
	return pc.radius.Get() * pc.WorldLengthScale()
}

// Color returns the base color
func (pc *PointCloud) Color() mgl32.Vec3 { return pc.color.Get() }

// SetColor sets the base color
func (pc *PointCloud) SetColor(c mgl32.Vec3) {
	pc.color.Set(c)
	pc.Refresh()
}

// SetProgramUniforms pushes the shared transform state and the point
// appearance
func (pc *PointCloud) SetProgramUniforms(p render.Program) {
	pc.SetTransformUniforms(p)
	if p.HasUniform(render.UniformPointRadius) {
		p.SetUniformFloat(render.UniformPointRadius, float32(pc.WorldRadius()))
	}
	if p.HasUniform(render.UniformBaseColor) {
		p.SetUniformVec3(render.UniformBaseColor, pc.color.Get())
	}
}

// AddScalarQuantity attaches one value per point. An existing quantity of
// the same name is replaced.
func (pc *PointCloud) AddScalarQuantity(name string, values []float64) (*ScalarQuantity, error) {
	if err := structure.ValidateName(name); err != nil {
		return nil, err
	}
	if len(values) != len(pc.points) {
		return nil, fmt.Errorf("%w: %d values for %d points", ErrQuantitySize, len(values), len(pc.points))
	}
	q := newScalarQuantity(name, values)
	pc.quantities[name] = q
	pc.Refresh()
	return q, nil
}

// Quantity returns the named quantity or nil
func (pc *PointCloud) Quantity(name string) *ScalarQuantity {
	return pc.quantities[name]
}

// RemoveQuantity drops the named quantity
func (pc *PointCloud) RemoveQuantity(name string) {
	delete(pc.quantities, name)
	pc.Refresh()
}

// Quantities returns all quantities sorted by name
func (pc *PointCloud) Quantities() []*ScalarQuantity {
	out := make([]*ScalarQuantity, 0, len(pc.quantities))
	for _, q := range pc.quantities {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ReleaseProperties implements structure.PropertyReleaser
func (pc *PointCloud) ReleaseProperties() {
	if pc.radius != nil {
		pc.radius.Release()
	}
	if pc.color != nil {
		pc.color.Release()
	}
}

// BuildCustomUI shows the point count and the radius slider
func (pc *PointCloud) BuildCustomUI(ui panel.UI) {
	ui.Text(fmt.Sprintf("# points: %d", len(pc.points)))
	radius := float32(pc.radius.Get())
	if ui.SliderFloat("Radius", &radius, 0, maxRadius) {
		pc.SetPointRadius(float64(radius))
	}
}

// BuildCustomOptionsUI adds point specific entries to the Options popup
func (pc *PointCloud) BuildCustomOptionsUI(ui panel.UI) {
	if ui.MenuItem("Reset Radius", false) {
		pc.SetPointRadius(DefaultRadius)
	}
}

// BuildQuantitiesUI lists the scalar quantities
func (pc *PointCloud) BuildQuantitiesUI(ui panel.UI) {
	for _, q := range pc.Quantities() {
		if q.buildUI(ui) {
			pc.Refresh()
		}
	}
}
