package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Upload is one recorded uniform or texture write
type Upload struct {
	Name  string
	Value any
}

func (u Upload) String() string {
	switch v := u.Value.(type) {
	case mgl32.Mat4:
		return fmt.Sprintf("%s = mat4%v", u.Name, [16]float32(v))
	case *Texture:
		if v == nil {
			return fmt.Sprintf("%s = texture(nil)", u.Name)
		}
		return fmt.Sprintf("%s = texture(%d %dx%d)", u.Name, v.ID, v.Width, v.Height)
	default:
		return fmt.Sprintf("%s = %v", u.Name, v)
	}
}

// Recorder is an in-memory Program that answers probes from its
// capabilities and records every write in order. Writes to undeclared names
// panic, which catches missing probes in callers.
type Recorder struct {
	Capabilities
	Uploads  []Upload
	textures map[string]*Texture
}

// NewRecorder creates a recorder declaring the given capabilities
func NewRecorder(caps Capabilities) *Recorder {
	return &Recorder{Capabilities: caps, textures: make(map[string]*Texture)}
}

// TextureIsSet reports whether a texture has been bound to the named slot
func (r *Recorder) TextureIsSet(name string) bool {
	_, ok := r.textures[name]
	return ok
}

func (r *Recorder) SetUniformMat4(name string, m mgl32.Mat4) { r.uniform(name, m) }
func (r *Recorder) SetUniformFloat(name string, v float32)   { r.uniform(name, v) }
func (r *Recorder) SetUniformVec2(name string, v mgl32.Vec2) { r.uniform(name, v) }
func (r *Recorder) SetUniformVec3(name string, v mgl32.Vec3) { r.uniform(name, v) }
func (r *Recorder) SetUniformVec4(name string, v mgl32.Vec4) { r.uniform(name, v) }

// SetTextureFromBuffer binds t to the named slot
func (r *Recorder) SetTextureFromBuffer(name string, t *Texture) {
	if !r.HasTexture(name) {
		panic(fmt.Sprintf("render: texture %q not declared", name))
	}
	r.textures[name] = t
	r.Uploads = append(r.Uploads, Upload{Name: name, Value: t})
}

func (r *Recorder) uniform(name string, v any) {
	if !r.HasUniform(name) {
		panic(fmt.Sprintf("render: uniform %q not declared", name))
	}
	r.Uploads = append(r.Uploads, Upload{Name: name, Value: v})
}

// Names returns the names of all recorded uploads in order
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Uploads))
	for i, u := range r.Uploads {
		names[i] = u.Name
	}
	return names
}

// Last returns the most recent upload to name
func (r *Recorder) Last(name string) (Upload, bool) {
	for i := len(r.Uploads) - 1; i >= 0; i-- {
		if r.Uploads[i].Name == name {
			return r.Uploads[i], true
		}
	}
	return Upload{}, false
}

// Reset forgets recorded uploads. Bound textures stay bound, like on a real
// program between frames.
func (r *Recorder) Reset() {
	r.Uploads = nil
}
