// Package view holds the orbit camera that supplies view and projection
// matrices to structures
package view

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/govis/pkg/geometry"
)

const (
	defaultAngle = 0.3
	maxElevation = 1.5
	minDistance  = 1e-3
)

// Camera orbits a target point at a distance, parameterised by an
// elevation (AngleX) and an azimuth (AngleY) in radians
type Camera struct {
	Target   mgl32.Vec3
	Distance float32
	AngleX   float32
	AngleY   float32

	FovY   float32 // degrees
	Near   float32
	Far    float32
	Aspect float32

	center        mgl32.Vec3
	defaultDist   float32
	defaultAngleX float32
	defaultAngleY float32
}

// NewCamera creates a camera looking at the origin from distance 10
func NewCamera(fovY, near, far float32) *Camera {
	c := &Camera{
		FovY:          fovY,
		Near:          near,
		Far:           far,
		Aspect:        1,
		defaultDist:   10,
		defaultAngleX: defaultAngle,
		defaultAngleY: defaultAngle,
	}
	c.Reset()
	return c
}

// Eye returns the camera position in world space
func (c *Camera) Eye() mgl32.Vec3 {
	ax, ay := float64(c.AngleX), float64(c.AngleY)
	return c.Target.Add(mgl32.Vec3{
		c.Distance * float32(math.Cos(ax)*math.Sin(ay)),
		c.Distance * float32(math.Sin(ax)),
		c.Distance * float32(math.Cos(ax)*math.Cos(ay)),
	})
}

// Up is the world up direction used for the view basis
func (c *Camera) Up() mgl32.Vec3 {
	return mgl32.Vec3{0, 1, 0}
}

// ViewMatrix maps world space to eye space
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, c.Up())
}

// ProjectionMatrix maps eye space to clip space
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// SetAspect updates the aspect ratio from a viewport size
func (c *Camera) SetAspect(width, height float32) {
	if height <= 0 {
		c.Aspect = 1
		return
	}
	c.Aspect = width / height
}

// Rotate orbits by the given deltas, keeping the elevation away from the poles
func (c *Camera) Rotate(dAzimuth, dElevation float32) {
	c.AngleY += dAzimuth
	c.AngleX += dElevation
	if c.AngleX > maxElevation {
		c.AngleX = maxElevation
	}
	if c.AngleX < -maxElevation {
		c.AngleX = -maxElevation
	}
}

// Pan moves the target in the view plane. dx and dy are screen deltas in
// pixels; the step scales with the distance.
func (c *Camera) Pan(dx, dy float32) {
	forward := c.Target.Sub(c.Eye()).Normalize()
	right := forward.Cross(c.Up()).Normalize()
	up := right.Cross(forward).Normalize()

	speed := c.Distance * 0.001
	c.Target = c.Target.Add(right.Mul(-dx * speed)).Add(up.Mul(dy * speed))
}

// Zoom scales the distance by (1 - wheel*0.03)
func (c *Camera) Zoom(wheel float32) {
	c.Distance *= 1.0 - wheel*0.03
	if c.Distance < minDistance {
		c.Distance = minDistance
	}
}

// Reset restores the default view
func (c *Camera) Reset() {
	c.Distance = c.defaultDist
	c.AngleX = c.defaultAngleX
	c.AngleY = c.defaultAngleY
	c.Target = c.center
}

// FitBox centers the camera on b and makes its framing the default
func (c *Camera) FitBox(b geometry.BoundingBox) {
	if b.IsEmpty() {
		return
	}
	c.center = b.Center().Vec3()
	dist := float32(b.Size().MaxComponent() * 2.0)
	if dist < minDistance {
		dist = 1
	}
	c.defaultDist = dist
	c.Reset()
}

// TopView looks down the Y axis
func (c *Camera) TopView() { c.preset(math.Pi/2-0.001, 0) }

// BottomView looks up the Y axis
func (c *Camera) BottomView() { c.preset(-math.Pi/2+0.001, 0) }

// FrontView looks along -Z
func (c *Camera) FrontView() { c.preset(0, 0) }

// BackView looks along +Z
func (c *Camera) BackView() { c.preset(0, math.Pi) }

// LeftView looks along +X
func (c *Camera) LeftView() { c.preset(0, -math.Pi/2) }

// RightView looks along -X
func (c *Camera) RightView() { c.preset(0, math.Pi/2) }

func (c *Camera) preset(angleX, angleY float32) {
	c.AngleX = angleX
	c.AngleY = angleY
	c.Target = c.center
}
