package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/govis/internal/mesh"
	"github.com/philipparndt/govis/internal/pointcloud"
	"github.com/philipparndt/govis/internal/structure"
	"github.com/philipparndt/govis/internal/view"
)

const square = `solid square
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 2 0 0
      vertex 0 2 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 2 0 0
      vertex 2 2 0
      vertex 0 2 0
    endloop
  endfacet
endsolid square
`

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newContext() *structure.Context {
	return structure.NewContext(view.NewCamera(45, 0.01, 1000), zerolog.Nop())
}

func TestName(t *testing.T) {
	assert.Equal(t, "bracket", Name("/tmp/parts/bracket.stl"))
	assert.Equal(t, "a_b", Name("a#b.xyz"))
	assert.Equal(t, "unnamed", Name(".stl"))
}

func TestLoadSurfaceMesh(t *testing.T) {
	ctx := newContext()
	path := write(t, "square.stl", square)

	item, err := New(ctx, false, zerolog.Nop()).Load(context.Background(), path)
	require.NoError(t, err)

	require.NotNil(t, item.Mesh)
	assert.Nil(t, item.Cloud)
	assert.Equal(t, "square", item.Structure().Name())
	assert.Equal(t, []string{path}, item.Sources)
	assert.Equal(t, 2, item.Mesh.Model().TriangleCount())
	assert.True(t, ctx.Registry.Has(mesh.TypeName, "square"))
}

func TestLoadAsPoints(t *testing.T) {
	ctx := newContext()
	path := write(t, "square.stl", square)

	item, err := New(ctx, true, zerolog.Nop()).Load(context.Background(), path)
	require.NoError(t, err)

	require.NotNil(t, item.Cloud)
	assert.Len(t, item.Cloud.Points(), 4)
	assert.True(t, ctx.Registry.Has(pointcloud.TypeName, "square"))
}

func TestLoadDuplicateNames(t *testing.T) {
	ctx := newContext()
	path := write(t, "square.stl", square)
	l := New(ctx, false, zerolog.Nop())

	first, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	second, err := l.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "square", first.Structure().Name())
	assert.Equal(t, "square (2)", second.Structure().Name())
}

func TestLoadXYZWithValues(t *testing.T) {
	ctx := newContext()
	path := write(t, "scan.xyz", "# x y z value\n0 0 0 1\n1 0 0 2\n\n0,1,0,3\n")

	item, err := New(ctx, false, zerolog.Nop()).Load(context.Background(), path)
	require.NoError(t, err)

	require.NotNil(t, item.Cloud)
	assert.Len(t, item.Cloud.Points(), 3)
	q := item.Cloud.Quantity(ValueQuantity)
	require.NotNil(t, q)
	assert.Equal(t, []float64{1, 2, 3}, q.Values)
}

func TestReadPointsWithoutValues(t *testing.T) {
	path := write(t, "scan.xyz", "0 0 0\n1 2 3 4\n")

	points, values, err := ReadPoints(path)
	require.NoError(t, err)
	assert.Len(t, points, 2)
	assert.Nil(t, values)
}

func TestReadPointsErrors(t *testing.T) {
	_, _, err := ReadPoints(write(t, "short.xyz", "1 2\n"))
	assert.ErrorContains(t, err, ":1: expected at least 3 coordinates")

	_, _, err = ReadPoints(write(t, "bad.xyz", "0 0 0\n1 x 3\n"))
	assert.ErrorContains(t, err, `:2: invalid number "x"`)
}

func TestLoadUnsupported(t *testing.T) {
	_, err := New(newContext(), false, zerolog.Nop()).Load(context.Background(), write(t, "model.obj", ""))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestReloadKeepsState(t *testing.T) {
	ctx := newContext()
	path := write(t, "square.stl", square)
	l := New(ctx, false, zerolog.Nop())

	item, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	item.Structure().SetEnabled(false)
	item.Mesh.SetWireframe(true)

	reloaded, err := l.Reload(context.Background(), item)
	require.NoError(t, err)

	assert.Equal(t, 1, ctx.Registry.Len())
	assert.Equal(t, "square", reloaded.Structure().Name())
	assert.False(t, reloaded.Structure().IsEnabled())
	assert.True(t, reloaded.Mesh.Wireframe())
}
