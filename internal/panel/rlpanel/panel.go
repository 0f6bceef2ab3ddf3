// Package rlpanel draws panel.UI widgets with raylib. Widgets are laid out
// top to bottom while the frame is built; drawing is deferred to End so the
// panel background can be sized to its content.
package rlpanel

import (
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	padding     = float32(10)
	spacing     = float32(5)
	rowHeight   = float32(20)
	indentStep  = float32(12)
	fontSize    = int32(12)
	titleSize   = int32(16)
	sliderWidth = float32(140)
	popupWidth  = float32(240)
)

var (
	bgColor          = rl.NewColor(20, 25, 35, 230)
	borderColor      = rl.NewColor(80, 160, 255, 255)
	titleColor       = rl.NewColor(100, 200, 255, 255)
	buttonColor      = rl.NewColor(40, 45, 55, 255)
	buttonHoverColor = rl.NewColor(50, 55, 65, 255)
	textColor        = rl.NewColor(200, 210, 230, 255)
	accentColor      = rl.NewColor(100, 255, 100, 255)
	separatorColor   = rl.NewColor(60, 80, 120, 150)
)

const (
	layerPanel = iota
	layerPopup
)

// layer is one independently laid out surface
type layer struct {
	origin   rl.Vector2
	cursorY  float32
	indent   float32
	last     rl.Rectangle
	bounds   rl.Rectangle
	draws    []func()
	sameLine bool
}

func (l *layer) reset(origin rl.Vector2) {
	l.origin = origin
	l.cursorY = origin.Y
	l.indent = 0
	l.last = rl.Rectangle{}
	l.bounds = rl.NewRectangle(origin.X, origin.Y, 0, 0)
	l.draws = l.draws[:0]
	l.sameLine = false
}

// place reserves a w by h rectangle on the current line or a new one
func (l *layer) place(w, h float32) rl.Rectangle {
	var r rl.Rectangle
	if l.sameLine {
		r = rl.NewRectangle(l.last.X+l.last.Width+spacing, l.last.Y, w, h)
		if bottom := r.Y + h + spacing; bottom > l.cursorY {
			l.cursorY = bottom
		}
	} else {
		r = rl.NewRectangle(l.origin.X+l.indent, l.cursorY, w, h)
		l.cursorY += h + spacing
	}
	l.sameLine = false
	l.last = r

	if right := r.X + r.Width; right > l.bounds.X+l.bounds.Width {
		l.bounds.Width = right - l.bounds.X
	}
	if bottom := r.Y + r.Height; bottom > l.bounds.Y+l.bounds.Height {
		l.bounds.Height = bottom - l.bounds.Y
	}
	return r
}

// Panel is a raylib backed panel.UI. Call Begin before building widgets
// and End to draw them.
type Panel struct {
	Title string
	X, Y  float32
	Width float32

	open   map[string]bool
	popups map[string]rl.Vector2

	ids     []string
	layers  [2]layer
	current int

	panelBounds rl.Rectangle
	popupBounds rl.Rectangle

	mouse       rl.Vector2
	pressed     bool
	down        bool
	dragging    string
	closePopups bool
}

// New creates a panel anchored at the top left corner of the window
func New(title string) *Panel {
	return &Panel{
		Title:  title,
		X:      10,
		Y:      10,
		Width:  280,
		open:   make(map[string]bool),
		popups: make(map[string]rl.Vector2),
	}
}

// Begin starts a frame
func (p *Panel) Begin() {
	p.mouse = rl.GetMousePosition()
	p.pressed = rl.IsMouseButtonPressed(rl.MouseButtonLeft)
	p.down = rl.IsMouseButtonDown(rl.MouseButtonLeft)
	if !p.down {
		p.dragging = ""
	}

	if p.pressed && len(p.popups) > 0 && !rl.CheckCollisionPointRec(p.mouse, p.popupBounds) {
		clear(p.popups)
	}

	p.ids = p.ids[:0]
	p.current = layerPanel
	p.closePopups = false
	p.layers[layerPopup].draws = p.layers[layerPopup].draws[:0]
	p.layers[layerPanel].reset(rl.NewVector2(p.X+padding, p.Y+padding+float32(titleSize)+spacing*2))
}

// End draws the frame
func (p *Panel) End() {
	panel := &p.layers[layerPanel]
	height := panel.cursorY - p.Y + padding
	p.panelBounds = rl.NewRectangle(p.X, p.Y, p.Width, height)

	rl.DrawRectangleRounded(p.panelBounds, 0.05, 8, bgColor)
	rl.DrawRectangleRoundedLines(p.panelBounds, 0.05, 8, borderColor)
	rl.DrawText(p.Title, int32(p.X+padding), int32(p.Y+padding), titleSize, titleColor)
	for _, draw := range panel.draws {
		draw()
	}

	popup := &p.layers[layerPopup]
	if len(popup.draws) == 0 {
		p.popupBounds = rl.Rectangle{}
		return
	}
	p.popupBounds = rl.NewRectangle(popup.origin.X-padding, popup.origin.Y-padding, popupWidth, popup.cursorY-popup.origin.Y+padding*2)
	rl.DrawRectangleRounded(p.popupBounds, 0.05, 8, bgColor)
	rl.DrawRectangleRoundedLines(p.popupBounds, 0.05, 8, borderColor)
	for _, draw := range popup.draws {
		draw()
	}
}

// WantsMouse reports whether the mouse is over the panel or one of its
// popups, or a slider is being dragged
func (p *Panel) WantsMouse() bool {
	mouse := rl.GetMousePosition()
	return p.dragging != "" ||
		rl.CheckCollisionPointRec(mouse, p.panelBounds) ||
		(len(p.popups) > 0 && rl.CheckCollisionPointRec(mouse, p.popupBounds))
}

func (p *Panel) layer() *layer {
	return &p.layers[p.current]
}

func (p *Panel) path(label string) string {
	return strings.Join(append(append([]string(nil), p.ids...), label), "/")
}

func (p *Panel) hovered(r rl.Rectangle) bool {
	return rl.CheckCollisionPointRec(p.mouse, r)
}

func (p *Panel) clicked(r rl.Rectangle) bool {
	return p.pressed && p.hovered(r)
}

func (p *Panel) draw(fn func()) {
	l := p.layer()
	l.draws = append(l.draws, fn)
}

func (p *Panel) text(s string, x, y float32, c rl.Color) {
	p.draw(func() {
		rl.DrawText(s, int32(x), int32(y+(rowHeight-float32(fontSize))/2), fontSize, c)
	})
}

func textWidth(s string) float32 {
	return float32(rl.MeasureText(s, fontSize))
}

func (p *Panel) PushID(id string) { p.ids = append(p.ids, id) }
func (p *Panel) SameLine()        { p.layer().sameLine = true }

func (p *Panel) PopID() {
	if len(p.ids) > 0 {
		p.ids = p.ids[:len(p.ids)-1]
	}
}

// expander draws a row that toggles open state when clicked
func (p *Panel) expander(label, marker string) bool {
	key := p.path(label)
	row := p.layer().place(textWidth(marker+" "+label), rowHeight)
	if p.clicked(row) {
		p.open[key] = !p.open[key]
	}

	c := textColor
	if p.hovered(row) {
		c = titleColor
	}
	prefix := "+ "
	if p.open[key] {
		prefix = "- "
	}
	p.text(prefix+label+marker, row.X, row.Y, c)

	if !p.open[key] {
		return false
	}
	p.ids = append(p.ids, label)
	p.layer().indent += indentStep
	return true
}

func (p *Panel) collapse() {
	p.PopID()
	if l := p.layer(); l.indent >= indentStep {
		l.indent -= indentStep
	}
}

func (p *Panel) TreeNode(label string) bool  { return p.expander(label, "") }
func (p *Panel) TreePop()                    { p.collapse() }
func (p *Panel) BeginMenu(label string) bool { return p.expander(label, " >") }
func (p *Panel) EndMenu()                    { p.collapse() }

func (p *Panel) Checkbox(label string, value *bool) bool {
	row := p.layer().place(rowHeight+spacing+textWidth(label), rowHeight)
	box := rl.NewRectangle(row.X+3, row.Y+3, rowHeight-6, rowHeight-6)

	changed := false
	if p.clicked(row) {
		*value = !*value
		changed = true
	}

	checked := *value
	hover := p.hovered(row)
	p.draw(func() {
		bg := buttonColor
		if hover {
			bg = buttonHoverColor
		}
		rl.DrawRectangleRounded(box, 0.3, 8, bg)
		rl.DrawRectangleRoundedLines(box, 0.3, 8, borderColor)
		if checked {
			inner := rl.NewRectangle(box.X+3, box.Y+3, box.Width-6, box.Height-6)
			rl.DrawRectangleRounded(inner, 0.3, 8, accentColor)
		}
	})
	p.text(label, row.X+rowHeight+spacing, row.Y, textColor)
	return changed
}

func (p *Panel) Button(label string) bool {
	r := p.layer().place(textWidth(label)+padding*2, rowHeight)
	hover := p.hovered(r)
	p.draw(func() {
		bg := buttonColor
		if hover {
			bg = buttonHoverColor
		}
		rl.DrawRectangleRounded(r, 0.3, 8, bg)
		rl.DrawRectangleRoundedLines(r, 0.3, 8, borderColor)
	})
	p.text(label, r.X+padding, r.Y, textColor)
	return p.clicked(r)
}

func (p *Panel) Text(text string) {
	r := p.layer().place(textWidth(text), rowHeight)
	p.text(text, r.X, r.Y, textColor)
}

func (p *Panel) Separator() {
	l := p.layer()
	r := l.place(0, spacing)
	width := p.Width - padding*2 - l.indent
	if p.current == layerPopup {
		width = popupWidth - padding*2 - l.indent
	}
	p.draw(func() {
		rl.DrawLineEx(rl.NewVector2(r.X, r.Y+spacing/2), rl.NewVector2(r.X+width, r.Y+spacing/2), 1, separatorColor)
	})
}

// OpenPopup opens the popup id next to the last placed widget
func (p *Panel) OpenPopup(id string) {
	last := p.layer().last
	p.popups[p.path(id)] = rl.NewVector2(p.X+p.Width+padding*2, last.Y+padding)
}

func (p *Panel) BeginPopup(id string) bool {
	anchor, ok := p.popups[p.path(id)]
	if !ok {
		return false
	}
	p.ids = append(p.ids, id)
	p.current = layerPopup
	p.layers[layerPopup].reset(anchor)
	return true
}

func (p *Panel) EndPopup() {
	p.PopID()
	p.current = layerPanel
	if p.closePopups {
		clear(p.popups)
		p.closePopups = false
	}
}

// MenuItem closes the open popup when clicked
func (p *Panel) MenuItem(label string, selected bool) bool {
	row := p.layer().place(rowHeight+spacing+textWidth(label), rowHeight)
	hover := p.hovered(row)
	if hover {
		p.draw(func() {
			rl.DrawRectangleRounded(row, 0.3, 8, buttonHoverColor)
		})
	}
	if selected {
		p.text("x", row.X+6, row.Y, accentColor)
	}
	p.text(label, row.X+rowHeight+spacing, row.Y, textColor)

	if p.clicked(row) {
		p.closePopups = true
		return true
	}
	return false
}

func (p *Panel) SliderFloat(label string, value *float32, min, max float32) bool {
	key := p.path(label)
	l := p.layer()
	track := l.place(sliderWidth, rowHeight)
	p.SameLine()
	valueLabel := label + ": " + formatFloat(*value)
	labelRect := l.place(textWidth(valueLabel), rowHeight)

	if p.clicked(track) {
		p.dragging = key
	}

	changed := false
	if p.dragging == key && p.down && max > min {
		t := (p.mouse.X - track.X) / track.Width
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		next := min + t*(max-min)
		if next != *value {
			*value = next
			changed = true
		}
	}

	fraction := float32(0)
	if max > min {
		fraction = (*value - min) / (max - min)
	}
	hover := p.hovered(track) || p.dragging == key
	p.draw(func() {
		bg := buttonColor
		if hover {
			bg = buttonHoverColor
		}
		bar := rl.NewRectangle(track.X, track.Y+rowHeight/2-3, track.Width, 6)
		rl.DrawRectangleRounded(bar, 0.5, 8, bg)
		fill := bar
		fill.Width = bar.Width * fraction
		fillColor := borderColor
		fillColor.A = 100
		rl.DrawRectangleRounded(fill, 0.5, 8, fillColor)
		handle := rl.NewVector2(bar.X+fill.Width, bar.Y+bar.Height/2)
		handleColor := borderColor
		if hover {
			handleColor = rl.White
		}
		rl.DrawCircleV(handle, 6, handleColor)
	})
	p.text(valueLabel, labelRect.X, labelRect.Y, textColor)
	return changed
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 3, 32)
}
