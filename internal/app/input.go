package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/govis/internal/gizmo"
	"github.com/philipparndt/govis/internal/render"
	"github.com/philipparndt/govis/internal/structure"
)

const (
	rotateSpeed = 0.01
	gizmoStep   = 0.05
)

// handleInput processes mouse and keyboard input not consumed by the panel
func (app *App) handleInput() {
	app.handleMouse()
	app.handleCameraKeys()
	app.handleStructureKeys()
	app.handleGizmoKeys()

	if rl.IsKeyPressed(rl.KeyH) {
		app.ui.showHelp = !app.ui.showHelp
	}
	if rl.IsKeyPressed(rl.KeyP) {
		app.ui.showPlanes = !app.ui.showPlanes
	}
}

func (app *App) handleMouse() {
	overPanel := app.panel.WantsMouse()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !overPanel {
		shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
		app.input.isPanning = shiftPressed
		app.input.isRotating = !shiftPressed
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		app.input.isPanning = false
		app.input.isRotating = false
	}

	delta := rl.GetMouseDelta()
	if delta.X != 0 || delta.Y != 0 {
		switch {
		case app.input.isRotating:
			app.camera.Rotate(-delta.X*rotateSpeed, delta.Y*rotateSpeed)
		case app.input.isPanning, rl.IsMouseButtonDown(rl.MouseButtonMiddle) && !overPanel:
			app.camera.Pan(delta.X, delta.Y)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !overPanel {
		app.camera.Zoom(wheel)
	}
}

func (app *App) handleCameraKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyHome):
		app.camera.Reset()
	case rl.IsKeyPressed(rl.KeyF):
		app.fitCamera()
	case rl.IsKeyPressed(rl.KeyOne):
		app.camera.FrontView()
	case rl.IsKeyPressed(rl.KeyTwo):
		app.camera.BackView()
	case rl.IsKeyPressed(rl.KeyThree):
		app.camera.LeftView()
	case rl.IsKeyPressed(rl.KeyFour):
		app.camera.RightView()
	case rl.IsKeyPressed(rl.KeyFive):
		app.camera.TopView()
	case rl.IsKeyPressed(rl.KeySix):
		app.camera.BottomView()
	}
}

// forEachStructure applies fn to every registered structure
func (app *App) forEachStructure(fn func(s *structure.Structure)) {
	for _, s := range app.ctx.Registry.All() {
		fn(s)
	}
}

func (app *App) handleStructureKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyC):
		app.forEachStructure((*structure.Structure).CenterBoundingBox)
	case rl.IsKeyPressed(rl.KeyU):
		app.forEachStructure((*structure.Structure).RescaleToUnit)
	case rl.IsKeyPressed(rl.KeyR):
		app.forEachStructure((*structure.Structure).ResetTransform)
	case rl.IsKeyPressed(rl.KeyI):
		if s := app.focused(); s != nil {
			s.EnableIsolate()
		}
	case rl.IsKeyPressed(rl.KeyT):
		app.toggleTransparency()
	case rl.IsKeyPressed(rl.KeyW):
		for _, d := range app.items {
			if d.item.Mesh != nil {
				d.item.Mesh.SetWireframe(!d.item.Mesh.Wireframe())
			}
		}
	}
}

// focused is the structure keyboard actions on a single structure use: the
// first enabled one
func (app *App) focused() *structure.Structure {
	for _, s := range app.ctx.Registry.All() {
		if s.IsEnabled() {
			return s
		}
	}
	return nil
}

// toggleTransparency switches between no transparency and the configured
// transparent mode
func (app *App) toggleTransparency() {
	engine := app.ctx.Engine
	if engine.TransparencyEnabled() {
		app.lastTransparency = engine.TransparencyMode()
		engine.SetTransparencyMode(render.TransparencyNone)
	} else {
		mode := app.lastTransparency
		if mode == render.TransparencyNone {
			mode = render.TransparencyPretty
		}
		engine.SetTransparencyMode(mode)
	}
	app.log.Info().Stringer("mode", engine.TransparencyMode()).Msg("transparency mode")
}

// handleGizmoKeys drives every enabled gizmo: G cycles the mode and the
// arrow and page keys apply steps along X, Y and Z
func (app *App) handleGizmoKeys() {
	cycle := rl.IsKeyPressed(rl.KeyG)

	var axis int
	var amount float32
	switch {
	case rl.IsKeyPressed(rl.KeyRight):
		axis, amount = 0, gizmoStep
	case rl.IsKeyPressed(rl.KeyLeft):
		axis, amount = 0, -gizmoStep
	case rl.IsKeyPressed(rl.KeyUp):
		axis, amount = 1, gizmoStep
	case rl.IsKeyPressed(rl.KeyDown):
		axis, amount = 1, -gizmoStep
	case rl.IsKeyPressed(rl.KeyPageUp):
		axis, amount = 2, gizmoStep
	case rl.IsKeyPressed(rl.KeyPageDown):
		axis, amount = 2, -gizmoStep
	}
	if !cycle && amount == 0 {
		return
	}

	for _, s := range app.ctx.Registry.All() {
		g := s.Gizmo()
		if !g.Enabled() {
			continue
		}
		if cycle {
			app.log.Info().Str("structure", s.Name()).Stringer("mode", g.NextMode()).Msg("gizmo mode")
			continue
		}
		step := amount
		if g.Mode() == gizmo.ModeTranslate {
			step *= float32(s.WorldLengthScale())
		}
		g.Apply(axis, step)
	}
}
