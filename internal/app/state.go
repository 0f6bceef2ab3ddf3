package app

import (
	"sync"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"github.com/philipparndt/govis/internal/config"
	"github.com/philipparndt/govis/internal/loader"
	"github.com/philipparndt/govis/pkg/watcher"
)

// Options configure a viewer run
type Options struct {
	Files    []string
	AsPoints bool
	Settings config.Settings
	Log      zerolog.Logger
}

// drawable pairs a loaded item with its GPU geometry
type drawable struct {
	item  *loader.Item
	mesh  rl.Mesh
	edges [][2]mgl32.Vec3 // unique model space edges, meshes only
}

// RenderState holds the GPU resources shared by every structure
type RenderState struct {
	shader   rl.Shader
	material rl.Material
	glyph    rl.Mesh // unit sphere drawn per point
}

// InputState holds mouse interaction state
type InputState struct {
	isRotating bool
	isPanning  bool
}

// WatchState holds file watching and reload state. Callbacks run on the
// watcher goroutine; the flags are applied on the main loop.
type WatchState struct {
	watcher          *watcher.FileWatcher
	propertiesFile   string
	reloadProperties atomic.Bool

	mu      sync.Mutex
	changed map[string]bool
}

func (w *WatchState) markChanged(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.changed == nil {
		w.changed = make(map[string]bool)
	}
	w.changed[path] = true
}

func (w *WatchState) takeChanged() map[string]bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	changed := w.changed
	w.changed = nil
	return changed
}

// UIState holds display toggles
type UIState struct {
	showHelp   bool
	showPlanes bool
}
