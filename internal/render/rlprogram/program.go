// Package rlprogram adapts a raylib shader to the render.Program contract
package rlprogram

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/govis/internal/render"
)

// Program is a raylib shader whose declared uniforms were probed once at
// construction. Probing is done with rl.GetShaderLocation, which reports -1
// for names the linker dropped or that were never declared.
type Program struct {
	shader   rl.Shader
	caps     render.Capabilities
	locs     map[string]int32
	textures map[string]bool
}

// New probes shader for the standard names of a program with
// maxSlicePlanes slice-plane slots
func New(shader rl.Shader, maxSlicePlanes int) *Program {
	names := render.StandardUniforms(maxSlicePlanes)

	p := &Program{
		shader:   shader,
		locs:     make(map[string]int32),
		textures: make(map[string]bool),
	}

	var uniforms, textures []string
	for _, name := range names {
		if loc := rl.GetShaderLocation(shader, name); loc != -1 {
			p.locs[name] = loc
			uniforms = append(uniforms, name)
		}
	}
	for _, name := range render.StandardTextures() {
		if loc := rl.GetShaderLocation(shader, name); loc != -1 {
			p.locs[name] = loc
			textures = append(textures, name)
		}
	}
	p.caps = render.NewCapabilities(uniforms, textures)
	return p
}

// Shader returns the wrapped raylib shader
func (p *Program) Shader() rl.Shader {
	return p.shader
}

// Capabilities returns the probed names
func (p *Program) Capabilities() render.Capabilities {
	return p.caps
}

func (p *Program) HasUniform(name string) bool   { return p.caps.HasUniform(name) }
func (p *Program) HasTexture(name string) bool   { return p.caps.HasTexture(name) }
func (p *Program) TextureIsSet(name string) bool { return p.textures[name] }

func (p *Program) SetUniformMat4(name string, m mgl32.Mat4) {
	if loc, ok := p.locs[name]; ok {
		rl.SetShaderValueMatrix(p.shader, loc, ToMatrix(m))
	}
}

func (p *Program) SetUniformFloat(name string, v float32) {
	p.set(name, []float32{v}, rl.ShaderUniformFloat)
}

func (p *Program) SetUniformVec2(name string, v mgl32.Vec2) {
	p.set(name, v[:], rl.ShaderUniformVec2)
}

func (p *Program) SetUniformVec3(name string, v mgl32.Vec3) {
	p.set(name, v[:], rl.ShaderUniformVec3)
}

func (p *Program) SetUniformVec4(name string, v mgl32.Vec4) {
	p.set(name, v[:], rl.ShaderUniformVec4)
}

// SetTextureFromBuffer binds t to the named sampler
func (p *Program) SetTextureFromBuffer(name string, t *render.Texture) {
	loc, ok := p.locs[name]
	if !ok || t == nil {
		return
	}
	rl.SetShaderValueTexture(p.shader, loc, rl.Texture2D{ID: t.ID, Width: t.Width, Height: t.Height, Mipmaps: 1})
	p.textures[name] = true
}

// Unload releases the shader
func (p *Program) Unload() {
	rl.UnloadShader(p.shader)
}

func (p *Program) set(name string, v []float32, kind rl.ShaderUniformDataType) {
	if loc, ok := p.locs[name]; ok {
		rl.SetShaderValue(p.shader, loc, v, kind)
	}
}

// ToMatrix converts a column-major mgl32 matrix to raylib's layout
func ToMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.NewMatrix(
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	)
}
