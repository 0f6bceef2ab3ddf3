// Package gizmo implements the transform manipulator bound to a structure
package gizmo

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/govis/internal/property"
)

// Target is the transform a gizmo edits. The gizmo never stores a transform
// of its own: every edit goes through SetTransform.
type Target interface {
	Transform() mgl32.Mat4
	SetTransform(m mgl32.Mat4)
}

// Mode selects what Apply does
type Mode int

const (
	ModeTranslate Mode = iota
	ModeRotate
	ModeScale
)

func (m Mode) String() string {
	switch m {
	case ModeTranslate:
		return "Translate"
	case ModeRotate:
		return "Rotate"
	case ModeScale:
		return "Scale"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Gizmo is a transform manipulator with a persisted visibility flag
type Gizmo struct {
	target  Target
	enabled *property.Value[bool]
	mode    Mode
}

// New binds a gizmo to target. The enabled flag is persisted under
// key+"#enabled" and defaults to hidden.
func New(store *property.Store, key string, target Target) (*Gizmo, error) {
	enabled, err := property.New(store, key+"#enabled", false)
	if err != nil {
		return nil, fmt.Errorf("failed to register gizmo flag: %w", err)
	}
	return &Gizmo{target: target, enabled: enabled}, nil
}

// Enabled reports whether the gizmo is shown
func (g *Gizmo) Enabled() bool {
	return g.enabled.Get()
}

// SetEnabled shows or hides the gizmo
func (g *Gizmo) SetEnabled(enabled bool) {
	if enabled == g.enabled.Get() {
		return
	}
	g.enabled.Set(enabled)
}

// Mode returns the current manipulation mode
func (g *Gizmo) Mode() Mode {
	return g.mode
}

// SetMode changes the manipulation mode
func (g *Gizmo) SetMode(m Mode) {
	g.mode = m
}

// NextMode cycles translate, rotate, scale
func (g *Gizmo) NextMode() Mode {
	g.mode = (g.mode + 1) % 3
	return g.mode
}

// Center is the world-space origin of the target's object frame
func (g *Gizmo) Center() mgl32.Vec3 {
	return g.target.Transform().Col(3).Vec3()
}

// Translate moves the target by d in world space
func (g *Gizmo) Translate(d mgl32.Vec3) {
	g.target.SetTransform(mgl32.Translate3D(d.X(), d.Y(), d.Z()))
}

// Rotate turns the target by angle radians about axis through Center
func (g *Gizmo) Rotate(axis mgl32.Vec3, angle float32) {
	if axis.Len() == 0 {
		return
	}
	g.target.SetTransform(g.aboutCenter(mgl32.HomogRotate3D(angle, axis.Normalize())))
}

// Scale scales the target uniformly by factor about Center
func (g *Gizmo) Scale(factor float32) {
	if factor <= 0 {
		return
	}
	g.target.SetTransform(g.aboutCenter(mgl32.Scale3D(factor, factor, factor)))
}

// Apply performs a drag of amount along a world axis (0, 1, 2) in the
// current mode. Rotations take amount in radians; scaling uses 1+amount.
func (g *Gizmo) Apply(axis int, amount float32) {
	if axis < 0 || axis > 2 {
		return
	}
	var dir mgl32.Vec3
	dir[axis] = 1

	switch g.mode {
	case ModeTranslate:
		g.Translate(dir.Mul(amount))
	case ModeRotate:
		g.Rotate(dir, amount)
	case ModeScale:
		g.Scale(1 + amount)
	}
}

// Release unregisters the persisted flag
func (g *Gizmo) Release() {
	g.enabled.Release()
}

func (g *Gizmo) aboutCenter(m mgl32.Mat4) mgl32.Mat4 {
	c := g.Center()
	return mgl32.Translate3D(c.X(), c.Y(), c.Z()).Mul4(m).Mul4(mgl32.Translate3D(-c.X(), -c.Y(), -c.Z()))
}
