package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScriptClosedByDefault(t *testing.T) {
	s := NewScript()
	s.PushID("a")
	assert.False(t, s.TreeNode("a"))
	s.PopID()

	assert.Equal(t, 0, s.Depth())
	c, ok := s.Find("a/a")
	assert.True(t, ok)
	assert.Equal(t, CallTreeNode, c.Kind)
}

func TestScriptNestedPaths(t *testing.T) {
	s := NewScript()
	s.OpenAll = true
	s.Clicks[Path("root", "Options")] = true
	s.Clicks[Path("root", "Popup", "Menu", "Go")] = true

	s.PushID("root")
	assert.True(t, s.Button("Options"))
	assert.True(t, s.BeginPopup("Popup"))
	assert.True(t, s.BeginMenu("Menu"))
	assert.True(t, s.MenuItem("Go", false))
	assert.False(t, s.MenuItem("Stay", true))
	s.EndMenu()
	s.EndPopup()
	s.PopID()

	assert.Equal(t, 0, s.Depth())
	assert.Equal(t, []string{"Go", "Stay"}, s.Labels(CallMenuItem))
	c, _ := s.Find("root/Popup/Menu/Stay")
	assert.True(t, c.Selected)
}

func TestScriptOpenPopupOpensSameFrame(t *testing.T) {
	s := NewScript()
	assert.False(t, s.BeginPopup("p"))

	s.NextFrame()
	s.OpenPopup("p")
	assert.True(t, s.BeginPopup("p"))
	s.EndPopup()

	s.NextFrame()
	assert.False(t, s.BeginPopup("p"))
}

func TestScriptCheckboxAndSlider(t *testing.T) {
	s := NewScript()
	s.Checks["Enabled"] = false
	s.Slides["Alpha"] = 2

	on := true
	assert.True(t, s.Checkbox("Enabled", &on))
	assert.False(t, on)
	assert.False(t, s.Checkbox("Enabled", &on), "already at the scripted value")

	v := float32(0.5)
	assert.True(t, s.SliderFloat("Alpha", &v, 0, 1))
	assert.Equal(t, float32(1), v)

	untouched := float32(0.3)
	assert.False(t, s.SliderFloat("Other", &untouched, 0, 1))
	assert.Equal(t, float32(0.3), untouched)
}
