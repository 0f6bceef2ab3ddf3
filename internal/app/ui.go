package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/govis/internal/panel"
	"github.com/philipparndt/govis/internal/render"
	"github.com/philipparndt/govis/internal/slice"
	"github.com/philipparndt/govis/version"
)

var axisLabels = [3]string{"X", "Y", "Z"}

// buildPanel lays out the whole structure panel for this frame
func (app *App) buildPanel(ui panel.UI) {
	app.buildViewUI(ui)
	app.buildAppearanceUI(ui)
	ui.Separator()

	for _, typeName := range app.ctx.Registry.TypeNames() {
		if !ui.TreeNode(typeName) {
			continue
		}
		for _, s := range app.ctx.Registry.OfType(typeName) {
			s.BuildUI(ui)
		}
		ui.TreePop()
	}
}

func (app *App) buildViewUI(ui panel.UI) {
	if !ui.TreeNode("View") {
		return
	}

	if ui.Button("Reset") {
		app.camera.Reset()
	}
	ui.SameLine()
	if ui.Button("Fit") {
		app.fitCamera()
	}
	ui.SameLine()
	if ui.Button("Top") {
		app.camera.TopView()
	}
	ui.SameLine()
	if ui.Button("Front") {
		app.camera.FrontView()
	}

	if ui.TreeNode("Slice Planes") {
		app.buildSlicePlanesUI(ui)
		ui.TreePop()
	}
	ui.TreePop()
}

func (app *App) buildSlicePlanesUI(ui panel.UI) {
	planes := app.ctx.Slices

	if ui.Button("Add plane") {
		if p, err := planes.Add(""); err != nil {
			app.log.Warn().Err(err).Msg("cannot add slice plane")
		} else {
			box, _ := app.ctx.Registry.Extents()
			if !box.IsEmpty() {
				p.SetPose(box.Center().Vec3(), p.Normal())
			}
			app.ctx.Engine.RequestRedraw()
		}
	}
	for axis := 0; axis < 3; axis++ {
		ui.SameLine()
		if ui.Button(axisLabels[axis] + " max") {
			app.addAxisPlane(axis)
		}
	}
	ui.Checkbox("Show planes", &app.ui.showPlanes)

	for _, p := range planes.Planes() {
		ui.PushID(p.Name())
		if ui.TreeNode(p.Name()) {
			app.buildSlicePlaneUI(ui, p)
			ui.TreePop()
		}
		ui.PopID()
	}
}

// addAxisPlane adds a plane at the scene's upper bound along axis, keeping
// everything below it
func (app *App) addAxisPlane(axis int) {
	box, _ := app.ctx.Registry.Extents()
	if box.IsEmpty() {
		return
	}
	bound := float32(box.Max.Vec3()[axis])
	if _, err := app.ctx.Slices.AddAxis(axis, bound, true); err != nil {
		app.log.Warn().Err(err).Msg("cannot add slice plane")
		return
	}
	app.ctx.Engine.RequestRedraw()
}

func (app *App) buildSlicePlaneUI(ui panel.UI, p *slice.Plane) {
	active := p.Active()
	if ui.Checkbox("Active", &active) {
		p.SetActive(active)
		app.ctx.Engine.RequestRedraw()
	}

	// the slider moves the plane along its normal within the scene bounds
	box, _ := app.ctx.Registry.Extents()
	if !box.IsEmpty() {
		n := p.Normal()
		lo, hi := float32(0), float32(0)
		for i, corner := range box.Corners() {
			d := corner.Vec3().Dot(n)
			if i == 0 || d < lo {
				lo = d
			}
			if i == 0 || d > hi {
				hi = d
			}
		}
		offset := p.Center().Dot(n)
		if ui.SliderFloat("Offset", &offset, lo, hi) {
			center := box.Center().Vec3()
			p.SetPose(center.Add(n.Mul(offset-center.Dot(n))), n)
			app.ctx.Engine.RequestRedraw()
		}
	}

	for axis := 0; axis < 3; axis++ {
		if axis > 0 {
			ui.SameLine()
		}
		if ui.Button(axisLabels[axis]) {
			var n mgl32.Vec3
			n[axis] = 1
			p.SetPose(p.Center(), n)
			app.ctx.Engine.RequestRedraw()
		}
	}
	ui.SameLine()
	if ui.Button("Flip") {
		p.SetPose(p.Center(), p.Normal().Mul(-1))
		app.ctx.Engine.RequestRedraw()
	}
	ui.SameLine()
	if ui.Button("Remove") {
		app.ctx.Slices.Remove(p.Name())
		app.ctx.Engine.RequestRedraw()
	}
}

func (app *App) buildAppearanceUI(ui panel.UI) {
	if !ui.TreeNode("Appearance") {
		return
	}
	if ui.TreeNode("Transparency") {
		engine := app.ctx.Engine
		for i, mode := range []render.TransparencyMode{render.TransparencyNone, render.TransparencySimple, render.TransparencyPretty} {
			if i > 0 {
				ui.SameLine()
			}
			if ui.MenuItem(mode.String(), engine.TransparencyMode() == mode) {
				engine.SetTransparencyMode(mode)
			}
		}
		ui.TreePop()
	}
	ui.TreePop()
}

// drawOverlay draws the help text and the status line
func (app *App) drawOverlay() {
	screenWidth := int32(rl.GetScreenWidth())
	screenHeight := int32(rl.GetScreenHeight())

	if app.ui.showHelp {
		lines := []string{
			"Navigate:",
			"  Left Drag: Rotate | Shift+Drag: Pan | Wheel: Zoom",
			"  Home: Reset | F: Fit | 1-6: Front/Back/Left/Right/Top/Bottom",
			"Structures:",
			"  C: Center | U: Unit scale | R: Reset transform",
			"  I: Isolate | T: Transparency | W: Wireframe",
			"Gizmo:",
			"  G: Cycle mode | Arrows, PgUp/PgDn: Apply along X/Y/Z",
			"  P: Show slice planes | H: Hide help",
		}
		y := int32(10)
		for _, line := range lines {
			color := rl.LightGray
			if line[0] != ' ' {
				color = rl.Yellow
			}
			rl.DrawText(line, screenWidth-420, y, 14, color)
			y += 20
		}
	}

	status := fmt.Sprintf("v%s | %d structures | %s | FPS: %d",
		version.GetVersion(), app.ctx.Registry.Len(), app.ctx.Engine.TransparencyMode(), rl.GetFPS())
	rl.DrawText(status, 10, screenHeight-24, 12, rl.Gray)
}
