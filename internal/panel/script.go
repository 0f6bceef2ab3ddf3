package panel

import "strings"

// CallKind names a recorded widget call
type CallKind string

const (
	CallTreeNode  CallKind = "tree"
	CallCheckbox  CallKind = "checkbox"
	CallButton    CallKind = "button"
	CallText      CallKind = "text"
	CallSeparator CallKind = "separator"
	CallPopup     CallKind = "popup"
	CallMenu      CallKind = "menu"
	CallMenuItem  CallKind = "item"
	CallSlider    CallKind = "slider"
	CallSameLine  CallKind = "sameline"
)

// Call is one widget call seen by a Script
type Call struct {
	Kind     CallKind
	Path     string
	Label    string
	Selected bool
}

// Script is a UI driven by a table of scripted answers. Every widget is
// addressed by its path: the pushed IDs and open containers joined with
// "/", then its label. Containers are closed unless listed in Open or
// OpenAll is set.
type Script struct {
	OpenAll bool
	Open    map[string]bool
	Clicks  map[string]bool
	Checks  map[string]bool
	Slides  map[string]float32

	Calls []Call

	stack     []string
	requested map[string]bool
}

// NewScript creates an empty script
func NewScript() *Script {
	return &Script{
		Open:      make(map[string]bool),
		Clicks:    make(map[string]bool),
		Checks:    make(map[string]bool),
		Slides:    make(map[string]float32),
		requested: make(map[string]bool),
	}
}

// Path joins parts the way Script addresses widgets
func Path(parts ...string) string {
	return strings.Join(parts, "/")
}

func (s *Script) path(label string) string {
	return Path(append(append([]string(nil), s.stack...), label)...)
}

func (s *Script) record(kind CallKind, label string, selected bool) string {
	p := s.path(label)
	s.Calls = append(s.Calls, Call{Kind: kind, Path: p, Label: label, Selected: selected})
	return p
}

func (s *Script) open(p string) bool {
	return s.OpenAll || s.Open[p]
}

func (s *Script) PushID(id string) { s.stack = append(s.stack, id) }
func (s *Script) PopID()           { s.pop() }

func (s *Script) TreeNode(label string) bool {
	p := s.record(CallTreeNode, label, false)
	if !s.open(p) {
		return false
	}
	s.stack = append(s.stack, label)
	return true
}

func (s *Script) TreePop() { s.pop() }

func (s *Script) Checkbox(label string, value *bool) bool {
	p := s.record(CallCheckbox, label, *value)
	want, ok := s.Checks[p]
	if !ok || want == *value {
		return false
	}
	*value = want
	return true
}

func (s *Script) SameLine() { s.record(CallSameLine, "", false) }

func (s *Script) Button(label string) bool {
	return s.Clicks[s.record(CallButton, label, false)]
}

func (s *Script) Text(text string) { s.record(CallText, text, false) }

func (s *Script) Separator() { s.record(CallSeparator, "", false) }

func (s *Script) OpenPopup(id string) { s.requested[s.path(id)] = true }

func (s *Script) BeginPopup(id string) bool {
	p := s.record(CallPopup, id, false)
	if !s.open(p) && !s.requested[p] {
		return false
	}
	s.stack = append(s.stack, id)
	return true
}

func (s *Script) EndPopup() { s.pop() }

func (s *Script) BeginMenu(label string) bool {
	p := s.record(CallMenu, label, false)
	if !s.open(p) {
		return false
	}
	s.stack = append(s.stack, label)
	return true
}

func (s *Script) EndMenu() { s.pop() }

func (s *Script) MenuItem(label string, selected bool) bool {
	return s.Clicks[s.record(CallMenuItem, label, selected)]
}

func (s *Script) SliderFloat(label string, value *float32, min, max float32) bool {
	p := s.record(CallSlider, label, false)
	want, ok := s.Slides[p]
	if !ok || want == *value {
		return false
	}
	if want < min {
		want = min
	}
	if want > max {
		want = max
	}
	*value = want
	return true
}

// Depth returns how many IDs and containers are still open. A balanced
// frame ends at zero.
func (s *Script) Depth() int {
	return len(s.stack)
}

// Find returns the first recorded call at path
func (s *Script) Find(path string) (Call, bool) {
	for _, c := range s.Calls {
		if c.Path == path {
			return c, true
		}
	}
	return Call{}, false
}

// Labels returns the labels of recorded calls of kind, in order
func (s *Script) Labels(kind CallKind) []string {
	var labels []string
	for _, c := range s.Calls {
		if c.Kind == kind {
			labels = append(labels, c.Label)
		}
	}
	return labels
}

// NextFrame forgets recorded calls and popup requests but keeps the answers
func (s *Script) NextFrame() {
	s.Calls = nil
	s.stack = nil
	s.requested = make(map[string]bool)
}

func (s *Script) pop() {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}
