package structure

import "github.com/philipparndt/govis/internal/panel"

// BuildUI draws the structure's section of the panel: a tree node with an
// enable toggle, the shared Options popup and the variant's own controls.
func (s *Structure) BuildUI(ui panel.UI) {
	ui.PushID(s.name)
	defer ui.PopID()

	if !ui.TreeNode(s.name) {
		return
	}

	enabled := s.IsEnabled()
	if ui.Checkbox("Enabled", &enabled) {
		s.SetEnabled(enabled)
	}
	ui.SameLine()

	if ui.Button("Options") {
		ui.OpenPopup("OptionsPopup")
	}
	if ui.BeginPopup("OptionsPopup") {
		s.buildTransformMenu(ui)
		s.buildTransparencyMenu(ui)
		s.buildSlicePlaneMenu(ui)
		s.buildSelectionMenu(ui)
		s.variant.BuildCustomOptionsUI(ui)
		ui.EndPopup()
	}

	s.variant.BuildCustomUI(ui)
	s.variant.BuildQuantitiesUI(ui)

	ui.TreePop()
}

func (s *Structure) buildTransformMenu(ui panel.UI) {
	if !ui.BeginMenu("Transform") {
		return
	}
	if ui.MenuItem("Center", false) {
		s.CenterBoundingBox()
	}
	if ui.MenuItem("Unit Scale", false) {
		s.RescaleToUnit()
	}
	if ui.MenuItem("Reset", false) {
		s.ResetTransform()
	}
	if g := s.transformGizmo; ui.MenuItem("Show Gizmo", g.Enabled()) {
		g.SetEnabled(!g.Enabled())
	}
	ui.EndMenu()
}

func (s *Structure) buildTransparencyMenu(ui panel.UI) {
	if !ui.BeginMenu("Transparency") {
		return
	}
	alpha := float32(s.Transparency())
	if ui.SliderFloat("Alpha", &alpha, 0, 1) {
		s.SetTransparency(float64(alpha))
	}
	ui.Text("Note: Change the transparency mode")
	ui.Text("      in Appearance --> Transparency.")
	ui.Text("Current mode: ")
	ui.SameLine()
	ui.Text(s.ctx.Engine.TransparencyMode().String())
	ui.EndMenu()
}

func (s *Structure) buildSlicePlaneMenu(ui panel.UI) {
	if !ui.BeginMenu("Slice planes") {
		return
	}
	planes := s.ctx.Slices.Planes()
	if len(planes) == 0 {
		ui.Text("Note: Add slice planes in")
		ui.Text("      View --> Slice Planes.")
	}
	for _, plane := range planes {
		applies := !s.IgnoreSlicePlane(plane.Name())
		if ui.MenuItem(plane.Name(), applies) {
			s.SetIgnoreSlicePlane(plane.Name(), applies)
		}
	}
	ui.EndMenu()
}

func (s *Structure) buildSelectionMenu(ui panel.UI) {
	if !ui.BeginMenu("Structure Selection") {
		return
	}
	if ui.MenuItem("Enable all of type", false) {
		s.SetEnabledAllOfType(true)
	}
	if ui.MenuItem("Disable all of type", false) {
		s.SetEnabledAllOfType(false)
	}
	if ui.MenuItem("Isolate", false) {
		s.EnableIsolate()
	}
	ui.EndMenu()
}
