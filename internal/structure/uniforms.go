package structure

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/govis/internal/render"
)

// SetTransformUniforms pushes the structure's spatial and compositing state
// into p right before a draw. Only the two matrices are required; every
// other upload is skipped when p does not declare the name.
func (s *Structure) SetTransformUniforms(p render.Program) {
	view := s.ctx.View.ViewMatrix()
	proj := s.ctx.View.ProjectionMatrix()
	engine := s.ctx.Engine

	p.SetUniformMat4(render.UniformModelView, view.Mul4(s.Transform()))
	p.SetUniformMat4(render.UniformProjMatrix, proj)

	if engine.TransparencyEnabled() {
		if p.HasUniform(render.UniformTransparency) {
			p.SetUniformFloat(render.UniformTransparency, float32(s.Transparency()))
		}
		if p.HasUniform(render.UniformViewportDim) {
			vp := engine.CurrentViewport()
			p.SetUniformVec2(render.UniformViewportDim, mgl32.Vec2{vp[2], vp[3]})
		}
		// bound once per program
		if depth := engine.SceneDepthMin(); depth != nil &&
			p.HasTexture(render.TextureMinDepth) && !p.TextureIsSet(render.TextureMinDepth) {
			p.SetTextureFromBuffer(render.TextureMinDepth, depth)
		}
	}

	for _, plane := range s.ctx.Slices.Active() {
		plane.SetSceneObjectUniforms(p, view, s.IgnoreSlicePlane(plane.Name()))
	}

	if p.HasUniform(render.UniformViewportWorldPos) {
		p.SetUniformVec4(render.UniformViewportWorldPos, engine.CurrentViewport())
	}
	if p.HasUniform(render.UniformInvProjWorldPos) {
		p.SetUniformMat4(render.UniformInvProjWorldPos, proj.Inv())
	}
	if p.HasUniform(render.UniformInvViewWorldPos) {
		p.SetUniformMat4(render.UniformInvViewWorldPos, view.Inv())
	}
}
