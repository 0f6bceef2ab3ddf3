package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// Texture identifies a GPU texture owned by the host renderer
type Texture struct {
	ID     uint32
	Width  int32
	Height int32
}

// Engine is the process-wide rendering state structures read while pushing
// their uniforms. It is owned by the host loop and passed around explicitly.
type Engine struct {
	mode          TransparencyMode
	viewport      mgl32.Vec4
	sceneDepthMin *Texture
	redraw        bool
	log           zerolog.Logger
}

// NewEngine creates an engine with the given viewport size
func NewEngine(width, height int, log zerolog.Logger) *Engine {
	return &Engine{
		viewport: mgl32.Vec4{0, 0, float32(width), float32(height)},
		redraw:   true,
		log:      log,
	}
}

// TransparencyMode returns the current compositing mode
func (e *Engine) TransparencyMode() TransparencyMode {
	return e.mode
}

// SetTransparencyMode switches the compositing mode and requests a redraw
func (e *Engine) SetTransparencyMode(mode TransparencyMode) {
	if mode == e.mode {
		return
	}
	e.log.Debug().Stringer("from", e.mode).Stringer("to", mode).Msg("transparency mode changed")
	e.mode = mode
	e.RequestRedraw()
}

// TransparencyEnabled reports whether any transparency compositing is active
func (e *Engine) TransparencyEnabled() bool {
	return e.mode != TransparencyNone
}

// CurrentViewport returns x, y, width, height of the render target
func (e *Engine) CurrentViewport() mgl32.Vec4 {
	return e.viewport
}

// SetViewport updates the render target rectangle
func (e *Engine) SetViewport(x, y, width, height int) {
	e.viewport = mgl32.Vec4{float32(x), float32(y), float32(width), float32(height)}
	e.RequestRedraw()
}

// AspectRatio returns width over height of the viewport, 1 when degenerate
func (e *Engine) AspectRatio() float32 {
	if e.viewport[3] <= 0 {
		return 1
	}
	return e.viewport[2] / e.viewport[3]
}

// SceneDepthMin returns the shared min-depth texture used for depth peeling
func (e *Engine) SceneDepthMin() *Texture {
	return e.sceneDepthMin
}

// SetSceneDepthMin installs the shared min-depth texture
func (e *Engine) SetSceneDepthMin(t *Texture) {
	e.sceneDepthMin = t
}

// RequestRedraw marks the frame dirty. Calling it repeatedly is harmless.
func (e *Engine) RequestRedraw() {
	e.redraw = true
}

// RedrawRequested reports whether the frame is dirty
func (e *Engine) RedrawRequested() bool {
	return e.redraw
}

// ConsumeRedraw clears the dirty flag and returns its previous value
func (e *Engine) ConsumeRedraw() bool {
	r := e.redraw
	e.redraw = false
	return r
}
