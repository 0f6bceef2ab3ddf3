// Package slice holds the scene-wide slice planes structures clip against
package slice

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/govis/internal/render"
)

// Axis indices used by AddAxis
const (
	AxisX = 0
	AxisY = 1
	AxisZ = 2
)

// Plane clips away everything on the side opposite its normal
type Plane struct {
	name   string
	index  int
	active bool
	center mgl32.Vec3
	normal mgl32.Vec3
}

// Name returns the plane's unique name
func (p *Plane) Name() string { return p.name }

// Index is the uniform slot the plane writes to
func (p *Plane) Index() int { return p.index }

// Active reports whether the plane currently clips
func (p *Plane) Active() bool { return p.active }

// SetActive turns clipping on or off
func (p *Plane) SetActive(active bool) { p.active = active }

// Center returns a point on the plane in world space
func (p *Plane) Center() mgl32.Vec3 { return p.center }

// Normal returns the unit normal pointing at the kept side
func (p *Plane) Normal() mgl32.Vec3 { return p.normal }

// SetPose moves the plane. A zero normal is ignored.
func (p *Plane) SetPose(center, normal mgl32.Vec3) {
	p.center = center
	if normal.Len() > 0 {
		p.normal = normal.Normalize()
	}
}

// Keeps reports whether a world-space point survives the plane
func (p *Plane) Keeps(point mgl32.Vec3) bool {
	return point.Sub(p.center).Dot(p.normal) >= 0
}

// NormalUniform is the uniform name of the plane's normal
func (p *Plane) NormalUniform() string {
	return fmt.Sprintf("%s%d", render.UniformSlicePlaneNormal, p.index)
}

// CenterUniform is the uniform name of the plane's center
func (p *Plane) CenterUniform() string {
	return fmt.Sprintf("%s%d", render.UniformSlicePlaneCenter, p.index)
}

// SetSceneObjectUniforms writes the plane in view space. When ignored, it
// writes a plane at +Inf facing -X which every fragment passes.
func (p *Plane) SetSceneObjectUniforms(prog render.Program, view mgl32.Mat4, ignored bool) {
	var normal, center mgl32.Vec3
	if ignored {
		normal = mgl32.Vec3{-1, 0, 0}
		center = mgl32.Vec3{float32(math.Inf(1)), 0, 0}
	} else {
		normal = view.Mat3().Mul3x1(p.normal)
		center = mgl32.TransformCoordinate(p.center, view)
	}

	if name := p.NormalUniform(); prog.HasUniform(name) {
		prog.SetUniformVec3(name, normal)
	}
	if name := p.CenterUniform(); prog.HasUniform(name) {
		prog.SetUniformVec3(name, center)
	}
}

// ClearUniforms writes the always-pass encoding into the shader slots from
// index from up to MaxPlanes, so slots of removed or inactive planes stop
// cutting.
func ClearUniforms(prog render.Program, from int) {
	for i := max(from, 0); i < MaxPlanes; i++ {
		unused := Plane{index: i}
		unused.SetSceneObjectUniforms(prog, mgl32.Ident4(), true)
	}
}
