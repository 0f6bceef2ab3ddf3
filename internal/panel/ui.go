// Package panel defines the immediate-mode widget calls structures use to
// build their inspection panels
package panel

// UI is an immediate-mode widget toolkit. Widgets that can be interacted
// with return true on the frame the user changed them. Container calls
// (TreeNode, BeginPopup, BeginMenu) return true when open and must then be
// closed with their matching pop/end call.
type UI interface {
	PushID(id string)
	PopID()

	TreeNode(label string) bool
	TreePop()

	Checkbox(label string, value *bool) bool
	SameLine()
	Button(label string) bool
	Text(text string)
	Separator()

	OpenPopup(id string)
	BeginPopup(id string) bool
	EndPopup()

	BeginMenu(label string) bool
	EndMenu()
	MenuItem(label string, selected bool) bool

	SliderFloat(label string, value *float32, min, max float32) bool
}
