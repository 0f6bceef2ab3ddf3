package structure

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/govis/internal/render"
)

var approx = cmpopts.EquateApprox(0, 1e-5)

func TestNameValidation(t *testing.T) {
	ctx, _ := newContext()

	for _, name := range []string{"", "a#b", "#"} {
		_, err := New(ctx, name, "Thing", &thing{typeName: "Thing"})
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}

	_, err := New(ctx, "ok", "Bad#Tag", &thing{typeName: "Thing"})
	assert.ErrorIs(t, err, ErrInvalidName)

	assert.Equal(t, 0, ctx.Registry.Len(), "rejected structures are not registered")
	assert.Empty(t, ctx.Store.Keys())

	s, err := New(ctx, "cloud 1", "Thing", &thing{typeName: "Thing"})
	require.NoError(t, err)
	assert.Same(t, s, ctx.Registry.Get("Thing", "cloud 1"))
}

func TestDuplicateNames(t *testing.T) {
	ctx, _ := newContext()
	newThing(t, ctx, "Thing", "a")

	_, err := New(ctx, "a", "Thing", &thing{typeName: "Thing"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	newThing(t, ctx, "Other", "a")
	assert.Equal(t, 2, ctx.Registry.Len())
}

func TestPropertyKeys(t *testing.T) {
	ctx, _ := newContext()
	newThing(t, ctx, "Thing", "a")

	assert.Equal(t, []string{
		"Thing#a#enabled",
		"Thing#a#ignored_slice_planes",
		"Thing#a#object_transform",
		"Thing#a#transform_gizmo#enabled",
		"Thing#a#transparency",
	}, ctx.Store.Keys())
}

func TestUniquePrefix(t *testing.T) {
	ctx, _ := newContext()
	v := newThing(t, ctx, "Test Thing", "a")
	assert.Equal(t, "Test Thing#a#", v.UniquePrefix())
	assert.Equal(t, "Thing", v.TypeTag())
}

func TestSetEnabledSameValueIsSilent(t *testing.T) {
	ctx, _ := newContext()
	v := newThing(t, ctx, "Thing", "a")
	seen := changes(ctx)
	ctx.Engine.ConsumeRedraw()

	v.SetEnabled(v.IsEnabled())
	assert.Empty(t, seen)
	assert.False(t, ctx.Engine.RedrawRequested())

	v.SetEnabled(false)
	assert.False(t, v.IsEnabled())
	assert.Equal(t, 1, seen["Thing#a#enabled"])
	assert.True(t, ctx.Engine.RedrawRequested())
}

func TestResetTransformIsExactIdentity(t *testing.T) {
	ctx, _ := newContext()
	v := newThing(t, ctx, "Thing", "a")

	v.SetTransform(mgl32.HomogRotate3DY(0.7))
	v.RescaleToUnit()
	v.ResetTransform()

	assert.Equal(t, mgl32.Ident4(), v.Transform())
	assert.Equal(t, 3, v.updates)
}

func TestSetTransformLeftComposes(t *testing.T) {
	ctx, _ := newContext()
	v := newThing(t, ctx, "Thing", "a")

	t0 := mgl32.Translate3D(1, 2, 3)
	a := mgl32.HomogRotate3DZ(0.5)
	b := mgl32.Scale3D(2, 3, 4)

	v.SetTransform(t0)
	v.SetTransform(a)
	v.SetTransform(b)

	want := b.Mul4(a).Mul4(t0)
	if diff := cmp.Diff(want, v.Transform(), approx); diff != "" {
		t.Errorf("transform (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, v.updates)
}

func TestCenterBoundingBox(t *testing.T) {
	ctx, _ := newContext()
	v := newThing(t, ctx, "Thing", "a")
	v.box = box(1, 2, 3, 3, 4, 5)

	t0 := mgl32.Scale3D(2, 2, 2)
	v.SetTransform(t0)
	v.CenterBoundingBox()

	delta := v.Transform().Mul4(t0.Inv())
	got := mgl32.TransformCoordinate(mgl32.Vec3{2, 3, 4}, delta)
	if diff := cmp.Diff(mgl32.Vec3{}, got, approx); diff != "" {
		t.Errorf("center after delta (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, v.updates)
}

func TestCenterBoundingBoxEmptyBox(t *testing.T) {
	ctx, _ := newContext()
	v := newThing(t, ctx, "Thing", "a")
	v.box = box(1, 1, 1, 0, 0, 0)

	v.CenterBoundingBox()
	assert.Equal(t, mgl32.Ident4(), v.Transform())
	assert.Equal(t, 0, v.updates)
}

func TestRescaleToUnit(t *testing.T) {
	ctx, _ := newContext()
	v := newThing(t, ctx, "Thing", "a")
	v.scale = 4

	t0 := mgl32.Translate3D(4, 0, 0)
	v.SetTransform(t0)
	v.RescaleToUnit()

	assert.Equal(t, mgl32.Scale3D(0.25, 0.25, 0.25).Mul4(t0), v.Transform())

	for _, l := range []float64{0, -1} {
		v.scale = l
		v.RescaleToUnit()
	}
	assert.Equal(t, 2, v.updates, "degenerate length scales are ignored")
}

func TestModelViewQueriesViewEveryTime(t *testing.T) {
	ctx, view := newContext()
	v := newThing(t, ctx, "Thing", "a")
	v.SetTransform(mgl32.Translate3D(1, 0, 0))

	assert.Equal(t, view.view.Mul4(v.Transform()), v.ModelView())

	view.view = mgl32.Translate3D(0, 5, 0)
	assert.Equal(t, mgl32.Translate3D(1, 5, 0), v.ModelView())
}

func TestWorldExtents(t *testing.T) {
	ctx, _ := newContext()
	v := newThing(t, ctx, "Thing", "a")
	v.box = box(-1, -1, -1, 1, 1, 1)
	v.scale = 2

	v.SetTransform(mgl32.Scale3D(3, 1, 1))
	b, l := v.Extents()

	assert.InDelta(t, -3, b.Min.X, 1e-6)
	assert.InDelta(t, 3, b.Max.X, 1e-6)
	assert.InDelta(t, 1, b.Max.Y, 1e-6)
	assert.InDelta(t, 6, l, 1e-6)
}

func TestSetTransparencyPromotesMode(t *testing.T) {
	ctx, _ := newContext()
	v := newThing(t, ctx, "Thing", "a")

	v.SetTransparency(1.0)
	assert.Equal(t, render.TransparencyNone, ctx.Engine.TransparencyMode())

	ctx.Engine.ConsumeRedraw()
	v.SetTransparency(0.5)
	assert.Equal(t, render.TransparencyPretty, ctx.Engine.TransparencyMode())
	assert.Equal(t, 0.5, v.Transparency())
	assert.True(t, ctx.Engine.RedrawRequested())
}

func TestSetTransparencyKeepsChosenMode(t *testing.T) {
	ctx, _ := newContext()
	v := newThing(t, ctx, "Thing", "a")
	ctx.Engine.SetTransparencyMode(render.TransparencySimple)

	v.SetTransparency(0.2)
	assert.Equal(t, render.TransparencySimple, ctx.Engine.TransparencyMode())
}

func TestSetTransparencyClamps(t *testing.T) {
	ctx, _ := newContext()
	v := newThing(t, ctx, "Thing", "a")

	v.SetTransparency(2)
	assert.Equal(t, 1.0, v.Transparency())
	assert.Equal(t, render.TransparencyNone, ctx.Engine.TransparencyMode())

	v.SetTransparency(-1)
	assert.Equal(t, 0.0, v.Transparency())

	v.SetTransparency(math.NaN())
	assert.Equal(t, 0.0, v.Transparency())
}

func TestIgnoreSlicePlane(t *testing.T) {
	ctx, _ := newContext()
	v := newThing(t, ctx, "Thing", "a")
	seen := changes(ctx)

	v.SetIgnoreSlicePlane("p1", true)
	v.SetIgnoreSlicePlane("p1", true)
	v.SetIgnoreSlicePlane("p2", true)

	assert.True(t, v.IgnoreSlicePlane("p1"))
	assert.False(t, v.IgnoreSlicePlane("p3"))
	assert.Equal(t, []string{"p1", "p2"}, v.IgnoredSlicePlanes())
	assert.Equal(t, 2, seen["Thing#a#ignored_slice_planes"])

	v.SetIgnoreSlicePlane("p3", false)
	assert.Equal(t, 2, seen["Thing#a#ignored_slice_planes"])

	v.SetIgnoreSlicePlane("p1", false)
	assert.False(t, v.IgnoreSlicePlane("p1"))
	assert.Equal(t, []string{"p2"}, v.IgnoredSlicePlanes())
	assert.Equal(t, 3, seen["Thing#a#ignored_slice_planes"])
}

func TestEnableIsolate(t *testing.T) {
	for _, prior := range [][3]bool{{true, true, true}, {false, true, false}, {false, false, false}} {
		ctx, _ := newContext()
		x := newThing(t, ctx, "Thing", "x")
		y := newThing(t, ctx, "Thing", "y")
		z := newThing(t, ctx, "Thing", "z")
		other := newThing(t, ctx, "Other", "o")

		x.SetEnabled(prior[0])
		y.SetEnabled(prior[1])
		z.SetEnabled(prior[2])

		x.EnableIsolate()

		assert.True(t, x.IsEnabled(), "prior %v", prior)
		assert.False(t, y.IsEnabled(), "prior %v", prior)
		assert.False(t, z.IsEnabled(), "prior %v", prior)
		assert.True(t, other.IsEnabled(), "other types are untouched")
	}
}

func TestSetEnabledAllOfType(t *testing.T) {
	ctx, _ := newContext()
	x := newThing(t, ctx, "Thing", "x")
	y := newThing(t, ctx, "Thing", "y")
	other := newThing(t, ctx, "Other", "o")

	x.SetEnabledAllOfType(false)
	assert.False(t, x.IsEnabled())
	assert.False(t, y.IsEnabled())
	assert.True(t, other.IsEnabled())

	y.SetEnabledAllOfType(true)
	assert.True(t, x.IsEnabled())
	assert.True(t, y.IsEnabled())
}

func TestRemoveKeepsPersistedState(t *testing.T) {
	ctx, _ := newContext()
	v := newThing(t, ctx, "Thing", "a")
	v.SetTransparency(0.25)

	v.Remove()
	assert.Nil(t, ctx.Registry.Get("Thing", "a"))
	assert.Contains(t, ctx.Store.Keys(), "Thing#a#transparency")

	again := newThing(t, ctx, "Thing", "a")
	assert.Equal(t, 0.25, again.Transparency())
}

func TestRestoresPersistedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "props.json")
	doc := `{"version":"1.0","values":{
		"Thing#a#transparency": 0.75,
		"Thing#a#enabled": "yes",
		"Thing#a#ignored_slice_planes": ["cut"]
	}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	ctx, _ := newContext()
	require.NoError(t, ctx.Store.Load(path))

	v := newThing(t, ctx, "Thing", "a")
	assert.Equal(t, 0.75, v.Transparency())
	assert.True(t, v.IgnoreSlicePlane("cut"))
	assert.True(t, v.IsEnabled(), "undecodable values fall back to the default")
}

func writeProps(t *testing.T, values string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "props.json")
	doc := `{"version":"1.0","values":{` + values + `}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func TestRestoredTransparencyIsNormalized(t *testing.T) {
	ctx, _ := newContext()
	require.NoError(t, ctx.Store.Load(writeProps(t, `
		"Thing#a#transparency": 5,
		"Thing#b#transparency": 0.3`)))

	a := newThing(t, ctx, "Thing", "a")
	assert.Equal(t, 1.0, a.Transparency())
	assert.Equal(t, render.TransparencyNone, ctx.Engine.TransparencyMode())

	b := newThing(t, ctx, "Thing", "b")
	assert.Equal(t, 0.3, b.Transparency())
	assert.Equal(t, render.TransparencyPretty, ctx.Engine.TransparencyMode())

	rec := render.NewRecorder(render.NewCapabilities(render.StandardUniforms(2), render.StandardTextures()))
	b.SetTransformUniforms(rec)
	assert.Contains(t, rec.Names(), render.UniformTransparency)
}

func TestReloadedTransparencyIsNormalized(t *testing.T) {
	ctx, _ := newContext()
	a := newThing(t, ctx, "Thing", "a")
	b := newThing(t, ctx, "Thing", "b")
	ctx.Engine.ConsumeRedraw()

	require.NoError(t, ctx.Store.Load(writeProps(t, `
		"Thing#a#transparency": -2,
		"Thing#b#transparency": 0.5`)))

	assert.Equal(t, 0.0, a.Transparency())
	assert.Equal(t, 0.5, b.Transparency())
	assert.Equal(t, render.TransparencyPretty, ctx.Engine.TransparencyMode())
	assert.True(t, ctx.Engine.RedrawRequested())
}

func TestRestoredIgnoredSlicePlanesAreUnique(t *testing.T) {
	ctx, _ := newContext()
	require.NoError(t, ctx.Store.Load(writeProps(t, `
		"Thing#a#ignored_slice_planes": ["cut", "cut", "keep", "cut"]`)))

	a := newThing(t, ctx, "Thing", "a")
	assert.Equal(t, []string{"cut", "keep"}, a.IgnoredSlicePlanes())

	require.NoError(t, ctx.Store.Load(writeProps(t, `
		"Thing#a#ignored_slice_planes": ["x", "x"]`)))
	assert.Equal(t, []string{"x"}, a.IgnoredSlicePlanes())

	a.SetIgnoreSlicePlane("x", false)
	assert.False(t, a.IgnoreSlicePlane("x"))
}

func TestReloadedTransformUpdatesExtents(t *testing.T) {
	ctx, _ := newContext()
	a := newThing(t, ctx, "Thing", "a")

	require.NoError(t, ctx.Store.Load(writeProps(t, `
		"Thing#a#object_transform": [1,0,0,0, 0,1,0,0, 0,0,1,0, 100,0,0,1]`)))

	assert.Equal(t, 1, a.updates)
	b, _ := ctx.Registry.Extents()
	assert.InDelta(t, 100, b.Min.X, 1e-6)
	assert.InDelta(t, 101, b.Max.X, 1e-6)
}
