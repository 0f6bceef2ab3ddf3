package structure

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/govis/internal/panel"
	"github.com/philipparndt/govis/pkg/geometry"
)

// fixedView returns whatever matrices the test put in it
type fixedView struct {
	view  mgl32.Mat4
	proj  mgl32.Mat4
	calls int
}

func (v *fixedView) ViewMatrix() mgl32.Mat4 {
	v.calls++
	return v.view
}

func (v *fixedView) ProjectionMatrix() mgl32.Mat4 { return v.proj }

// thing is a minimal variant with a configurable box and scale
type thing struct {
	*Structure
	typeName string
	box      geometry.BoundingBox
	scale    float64

	updates    int
	customUI   int
	optionsUI  int
	quantities int
}

func (v *thing) TypeName() string                  { return v.typeName }
func (v *thing) BoundingBox() geometry.BoundingBox { return v.box }
func (v *thing) LengthScale() float64              { return v.scale }
func (v *thing) BuildCustomUI(panel.UI)            { v.customUI++ }
func (v *thing) BuildCustomOptionsUI(panel.UI)     { v.optionsUI++ }
func (v *thing) BuildQuantitiesUI(panel.UI)        { v.quantities++ }

func (v *thing) UpdateStructureExtents() {
	v.updates++
	v.CacheExtents()
}

func newContext() (*Context, *fixedView) {
	view := &fixedView{view: mgl32.Translate3D(0, 0, -10), proj: mgl32.Perspective(mgl32.DegToRad(45), 1.5, 0.1, 100)}
	return NewContext(view, zerolog.Nop()), view
}

func box(minX, minY, minZ, maxX, maxY, maxZ float64) geometry.BoundingBox {
	return geometry.BoundingBox{
		Min: geometry.NewVector3(minX, minY, minZ),
		Max: geometry.NewVector3(maxX, maxY, maxZ),
	}
}

func newThing(t *testing.T, ctx *Context, typeName, name string) *thing {
	t.Helper()
	v := &thing{typeName: typeName, box: box(0, 0, 0, 1, 1, 1), scale: 1}
	s, err := New(ctx, name, "Thing", v)
	require.NoError(t, err)
	v.Structure = s
	v.UpdateStructureExtents()
	v.updates = 0
	return v
}

// changes counts store notifications per key
func changes(ctx *Context) map[string]int {
	seen := make(map[string]int)
	ctx.Store.OnChange(func(key string) { seen[key]++ })
	return seen
}
