package structure

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/govis/internal/render"
)

var allUniforms = []string{
	render.UniformModelView,
	render.UniformProjMatrix,
	render.UniformTransparency,
	render.UniformViewportDim,
	render.UniformViewportWorldPos,
	render.UniformInvProjWorldPos,
	render.UniformInvViewWorldPos,
	"u_slicePlaneNormal_0",
	"u_slicePlaneCenter_0",
	"u_slicePlaneNormal_1",
	"u_slicePlaneCenter_1",
}

func fullProgram() *render.Recorder {
	return render.NewRecorder(render.NewCapabilities(allUniforms, []string{render.TextureMinDepth}))
}

func TestUniformsMinimalProgram(t *testing.T) {
	ctx, _ := newContext()
	ctx.Engine.SetTransparencyMode(render.TransparencyPretty)
	ctx.Engine.SetSceneDepthMin(&render.Texture{ID: 1})
	_, err := ctx.Slices.Add("cut")
	require.NoError(t, err)
	v := newThing(t, ctx, "Thing", "a")

	p := render.NewRecorder(render.NewCapabilities([]string{render.UniformModelView, render.UniformProjMatrix}, nil))
	v.SetTransformUniforms(p)

	assert.Equal(t, []string{render.UniformModelView, render.UniformProjMatrix}, p.Names())
}

func TestUniformsOrderWithoutTransparency(t *testing.T) {
	ctx, view := newContext()
	_, err := ctx.Slices.Add("cut")
	require.NoError(t, err)
	v := newThing(t, ctx, "Thing", "a")
	v.SetTransform(mgl32.Translate3D(1, 0, 0))

	p := fullProgram()
	v.SetTransformUniforms(p)

	assert.Equal(t, []string{
		render.UniformModelView,
		render.UniformProjMatrix,
		"u_slicePlaneNormal_0",
		"u_slicePlaneCenter_0",
		render.UniformViewportWorldPos,
		render.UniformInvProjWorldPos,
		render.UniformInvViewWorldPos,
	}, p.Names())

	assert.Equal(t, view.view.Mul4(v.Transform()), p.Uploads[0].Value)
	assert.Equal(t, view.proj, p.Uploads[1].Value)
	assert.Equal(t, ctx.Engine.CurrentViewport(), p.Uploads[4].Value)
	assert.Equal(t, view.proj.Inv(), p.Uploads[5].Value)
	assert.Equal(t, view.view.Inv(), p.Uploads[6].Value)
}

func TestUniformsTransparencyBlock(t *testing.T) {
	ctx, _ := newContext()
	ctx.Engine.SetViewport(0, 0, 640, 480)
	depth := &render.Texture{ID: 9, Width: 640, Height: 480}
	ctx.Engine.SetSceneDepthMin(depth)
	v := newThing(t, ctx, "Thing", "a")
	v.SetTransparency(0.5)

	p := fullProgram()
	v.SetTransformUniforms(p)

	require.Equal(t, []string{
		render.UniformModelView,
		render.UniformProjMatrix,
		render.UniformTransparency,
		render.UniformViewportDim,
		render.TextureMinDepth,
		render.UniformViewportWorldPos,
		render.UniformInvProjWorldPos,
		render.UniformInvViewWorldPos,
	}, p.Names())
	assert.Equal(t, float32(0.5), p.Uploads[2].Value)
	assert.Equal(t, mgl32.Vec2{640, 480}, p.Uploads[3].Value)
	assert.Same(t, depth, p.Uploads[4].Value)

	p.Reset()
	v.SetTransformUniforms(p)
	assert.NotContains(t, p.Names(), render.TextureMinDepth, "depth texture is bound once per program")
	assert.Contains(t, p.Names(), render.UniformTransparency)
}

func TestUniformsSkipUnsetDepthTexture(t *testing.T) {
	ctx, _ := newContext()
	ctx.Engine.SetTransparencyMode(render.TransparencySimple)
	v := newThing(t, ctx, "Thing", "a")

	p := fullProgram()
	v.SetTransformUniforms(p)

	assert.NotContains(t, p.Names(), render.TextureMinDepth)
	assert.False(t, p.TextureIsSet(render.TextureMinDepth))
}

func TestUniformsSlicePlanes(t *testing.T) {
	ctx, _ := newContext()
	kept, err := ctx.Slices.Add("kept")
	require.NoError(t, err)
	ignored, err := ctx.Slices.Add("ignored")
	require.NoError(t, err)
	off, err := ctx.Slices.Add("off")
	require.NoError(t, err)
	off.SetActive(false)
	kept.SetPose(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})

	v := newThing(t, ctx, "Thing", "a")
	v.SetIgnoreSlicePlane(ignored.Name(), true)

	// slot 2 is declared, so only the inactive flag can keep it unwritten
	p := render.NewRecorder(render.NewCapabilities(
		append(append([]string{}, allUniforms...), "u_slicePlaneNormal_2", "u_slicePlaneCenter_2"),
		[]string{render.TextureMinDepth}))
	v.SetTransformUniforms(p)

	n0, ok := p.Last("u_slicePlaneNormal_0")
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, n0.Value)

	n1, ok := p.Last("u_slicePlaneNormal_1")
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{-1, 0, 0}, n1.Value)
	c1, _ := p.Last("u_slicePlaneCenter_1")
	assert.True(t, math.IsInf(float64(c1.Value.(mgl32.Vec3).X()), 1))

	for _, u := range p.Uploads {
		assert.NotContains(t, []string{"u_slicePlaneNormal_2", "u_slicePlaneCenter_2"}, u.Name, "inactive planes write nothing")
	}
}

func TestUniformsWorldPosIndependentlyProbed(t *testing.T) {
	ctx, view := newContext()
	v := newThing(t, ctx, "Thing", "a")

	p := render.NewRecorder(render.NewCapabilities([]string{
		render.UniformModelView,
		render.UniformProjMatrix,
		render.UniformInvViewWorldPos,
	}, nil))
	v.SetTransformUniforms(p)

	assert.Equal(t, []string{render.UniformModelView, render.UniformProjMatrix, render.UniformInvViewWorldPos}, p.Names())
	assert.Equal(t, view.view.Inv(), p.Uploads[2].Value)
}
