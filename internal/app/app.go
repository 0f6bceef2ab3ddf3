// Package app is the raylib viewer hosting the structures
package app

import (
	"context"
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"github.com/philipparndt/govis/internal/loader"
	"github.com/philipparndt/govis/internal/logging"
	"github.com/philipparndt/govis/internal/panel/rlpanel"
	"github.com/philipparndt/govis/internal/render"
	"github.com/philipparndt/govis/internal/render/rlprogram"
	"github.com/philipparndt/govis/internal/structure"
	"github.com/philipparndt/govis/internal/view"
)

// ErrNothingLoaded is returned when none of the given files could be loaded
var ErrNothingLoaded = errors.New("no file could be loaded")

type App struct {
	opts   Options
	log    zerolog.Logger
	ctx    *structure.Context
	loader *loader.Loader
	items  []*drawable

	camera   *view.Camera
	rlCamera rl.Camera3D
	program  *rlprogram.Program
	panel    *rlpanel.Panel

	render RenderState
	input  InputState
	watch  WatchState
	ui     UIState

	lastTransparency render.TransparencyMode
}

// Run opens the viewer window and blocks until it is closed
func Run(opts Options) error {
	s := opts.Settings
	camera := view.NewCamera(float32(s.Camera.FovY), float32(s.Camera.Near), float32(s.Camera.Far))

	app := &App{
		opts:   opts,
		log:    logging.Component(opts.Log, "app"),
		ctx:    structure.NewContext(camera, opts.Log),
		camera: camera,
		panel:  rlpanel.New("Structures"),
		ui:     UIState{showHelp: true, showPlanes: true},
		rlCamera: rl.Camera3D{
			Fovy:       camera.FovY,
			Projection: rl.CameraPerspective,
		},
	}
	app.loader = loader.New(app.ctx, opts.AsPoints, logging.Component(opts.Log, "loader"))

	if mode, err := render.ParseTransparencyMode(s.TransparencyMode); err != nil {
		app.log.Warn().Err(err).Msg("keeping transparency disabled")
	} else {
		app.ctx.Engine.SetTransparencyMode(mode)
	}

	// persisted values are applied as structures register their properties
	app.watch.propertiesFile = s.Properties.File
	if app.watch.propertiesFile != "" {
		if err := app.ctx.Store.Load(app.watch.propertiesFile); err != nil {
			app.log.Warn().Err(err).Str("file", app.watch.propertiesFile).Msg("failed to load properties")
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(s.Window.Width), int32(s.Window.Height), "govis")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(s.Window.FPS))

	app.loadRenderState()
	defer app.unloadRenderState()

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, file := range opts.Files {
		item, err := app.loader.Load(runCtx, file)
		if err != nil {
			app.log.Error().Err(err).Str("file", file).Msg("failed to load")
			continue
		}
		app.addItem(item)
	}
	if len(app.items) == 0 {
		return fmt.Errorf("%w: %v", ErrNothingLoaded, opts.Files)
	}
	defer app.unloadItems()

	app.fitCamera()

	if s.Properties.Watch {
		if err := app.setupFileWatcher(runCtx); err != nil {
			app.log.Warn().Err(err).Msg("auto-reload will not be available")
		} else {
			defer app.watch.watcher.Close()
		}
	}

	for !rl.WindowShouldClose() {
		app.applyReloads(runCtx)

		app.syncCamera()
		app.handleInput()
		app.syncCamera()

		if app.ctx.Engine.ConsumeRedraw() {
			app.log.Trace().Msg("scene changed")
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.rlCamera)
		app.drawStructures()
		app.drawSlicePlanes()
		app.drawGizmos()
		rl.EndMode3D()

		app.panel.Begin()
		app.buildPanel(app.panel)
		app.panel.End()
		app.drawOverlay()

		rl.EndDrawing()
	}

	app.saveProperties()
	return nil
}

func (app *App) addItem(item *loader.Item) {
	d := &drawable{item: item}
	app.newDrawable(d)
	app.items = append(app.items, d)
}

func (app *App) unloadItems() {
	for _, d := range app.items {
		app.unloadDrawable(d)
	}
	app.items = nil
}

// fitCamera frames the extents of every enabled structure
func (app *App) fitCamera() {
	box, _ := app.ctx.Registry.Extents()
	app.camera.FitBox(box)
}

func (app *App) saveProperties() {
	if app.watch.propertiesFile == "" {
		return
	}
	if err := app.ctx.Store.Save(app.watch.propertiesFile); err != nil {
		app.log.Error().Err(err).Msg("failed to save properties")
		return
	}
	app.log.Info().Str("file", app.watch.propertiesFile).Msg("saved properties")
}
