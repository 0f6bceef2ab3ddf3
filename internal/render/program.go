package render

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniform and texture names structures may push
const (
	UniformModelView        = "u_modelView"
	UniformProjMatrix       = "u_projMatrix"
	UniformTransparency     = "u_transparency"
	UniformViewportDim      = "u_viewportDim"
	TextureMinDepth         = "t_minDepth"
	UniformViewportWorldPos = "u_viewport_worldPos"
	UniformInvProjWorldPos  = "u_invProjMatrix_worldPos"
	UniformInvViewWorldPos  = "u_invViewMatrix_worldPos"
	UniformSlicePlaneNormal = "u_slicePlaneNormal_"
	UniformSlicePlaneCenter = "u_slicePlaneCenter_"
	UniformPointRadius      = "u_pointRadius"
	UniformBaseColor        = "u_baseColor"
)

// StandardUniforms lists every uniform a structure may push, including the
// pairs of slicePlanes slice-plane slots
func StandardUniforms(slicePlanes int) []string {
	names := []string{
		UniformModelView,
		UniformProjMatrix,
		UniformTransparency,
		UniformViewportDim,
		UniformViewportWorldPos,
		UniformInvProjWorldPos,
		UniformInvViewWorldPos,
		UniformPointRadius,
		UniformBaseColor,
	}
	for i := 0; i < slicePlanes; i++ {
		names = append(names,
			fmt.Sprintf("%s%d", UniformSlicePlaneNormal, i),
			fmt.Sprintf("%s%d", UniformSlicePlaneCenter, i))
	}
	return names
}

// StandardTextures lists every texture slot a structure may bind
func StandardTextures() []string {
	return []string{TextureMinDepth}
}

// Program is a compiled shader program. Every optional upload is preceded by
// a HasUniform or HasTexture probe, so programs only declaring a subset of
// the names above are valid.
type Program interface {
	HasUniform(name string) bool
	HasTexture(name string) bool
	TextureIsSet(name string) bool

	SetUniformMat4(name string, m mgl32.Mat4)
	SetUniformFloat(name string, v float32)
	SetUniformVec2(name string, v mgl32.Vec2)
	SetUniformVec3(name string, v mgl32.Vec3)
	SetUniformVec4(name string, v mgl32.Vec4)
	SetTextureFromBuffer(name string, t *Texture)
}

// Capabilities is the set of uniform and texture names a program declares
type Capabilities struct {
	uniforms map[string]struct{}
	textures map[string]struct{}
}

// NewCapabilities builds a capability set from declared names
func NewCapabilities(uniforms, textures []string) Capabilities {
	c := Capabilities{
		uniforms: make(map[string]struct{}, len(uniforms)),
		textures: make(map[string]struct{}, len(textures)),
	}
	for _, u := range uniforms {
		c.uniforms[u] = struct{}{}
	}
	for _, t := range textures {
		c.textures[t] = struct{}{}
	}
	return c
}

// HasUniform reports whether the uniform is declared
func (c Capabilities) HasUniform(name string) bool {
	_, ok := c.uniforms[name]
	return ok
}

// HasTexture reports whether the texture sampler is declared
func (c Capabilities) HasTexture(name string) bool {
	_, ok := c.textures[name]
	return ok
}

// Uniforms returns the declared uniform names, sorted
func (c Capabilities) Uniforms() []string {
	return sortedKeys(c.uniforms)
}

// Textures returns the declared texture names, sorted
func (c Capabilities) Textures() []string {
	return sortedKeys(c.textures)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
