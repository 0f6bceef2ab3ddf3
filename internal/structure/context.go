// Package structure implements the state shared by every visual entity in
// the scene: identity, transform, visibility, transparency and slice-plane
// exclusion, plus the per-frame uniform contract and the common panel.
package structure

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"github.com/philipparndt/govis/internal/logging"
	"github.com/philipparndt/govis/internal/property"
	"github.com/philipparndt/govis/internal/render"
	"github.com/philipparndt/govis/internal/slice"
)

// View supplies the camera matrices. They are queried on every use.
type View interface {
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
}

// Context carries the scene-wide collaborators a structure talks to
type Context struct {
	Registry *Registry
	Engine   *render.Engine
	View     View
	Slices   *slice.Set
	Store    *property.Store
	Log      zerolog.Logger
}

// NewContext creates a context with an empty registry, slice-plane set and
// property store, and a 1x1 engine the host resizes later.
func NewContext(view View, log zerolog.Logger) *Context {
	return &Context{
		Registry: NewRegistry(logging.Component(log, "registry")),
		Engine:   render.NewEngine(1, 1, logging.Component(log, "render")),
		View:     view,
		Slices:   slice.NewSet(),
		Store:    property.NewStore(logging.Component(log, "property")),
		Log:      log,
	}
}
