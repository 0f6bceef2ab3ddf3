package slice

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPlanes is the number of plane slots shaders are compiled with
const MaxPlanes = 4

var (
	// ErrDuplicatePlane is returned when a plane name is already taken
	ErrDuplicatePlane = errors.New("slice plane already exists")
	// ErrTooManyPlanes is returned when all shader slots are in use
	ErrTooManyPlanes = errors.New("too many slice planes")
)

var axisNames = [3]string{"X", "Y", "Z"}

// Set is the ordered list of scene slice planes. A plane's index is its
// position in the list.
type Set struct {
	planes []*Plane
}

// NewSet creates an empty set
func NewSet() *Set {
	return &Set{}
}

// Add appends an active plane through the origin facing +Y. An empty name
// becomes "Scene Slice Plane N".
func (s *Set) Add(name string) (*Plane, error) {
	if name == "" {
		name = fmt.Sprintf("Scene Slice Plane %d", len(s.planes))
		for s.Get(name) != nil {
			name += "'"
		}
	}
	if s.Get(name) != nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicatePlane, name)
	}
	if len(s.planes) >= MaxPlanes {
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManyPlanes, MaxPlanes)
	}

	p := &Plane{
		name:   name,
		index:  len(s.planes),
		active: true,
		normal: mgl32.Vec3{0, 1, 0},
	}
	s.planes = append(s.planes, p)
	return p, nil
}

// AddAxis adds an axis-aligned plane at bound. With keepBelow the plane
// keeps coordinates up to bound (a max slider), otherwise from bound on.
func (s *Set) AddAxis(axis int, bound float32, keepBelow bool) (*Plane, error) {
	if axis < AxisX || axis > AxisZ {
		return nil, fmt.Errorf("invalid axis %d", axis)
	}
	side := "min"
	sign := float32(1)
	if keepBelow {
		side = "max"
		sign = -1
	}

	p, err := s.Add(fmt.Sprintf("%s %s", axisNames[axis], side))
	if err != nil {
		return nil, err
	}

	var center, normal mgl32.Vec3
	center[axis] = bound
	normal[axis] = sign
	p.SetPose(center, normal)
	return p, nil
}

// Remove deletes the named plane and renumbers the rest
func (s *Set) Remove(name string) bool {
	for i, p := range s.planes {
		if p.name != name {
			continue
		}
		s.planes = append(s.planes[:i], s.planes[i+1:]...)
		for j := i; j < len(s.planes); j++ {
			s.planes[j].index = j
		}
		return true
	}
	return false
}

// Get returns the named plane or nil
func (s *Set) Get(name string) *Plane {
	for _, p := range s.planes {
		if p.name == name {
			return p
		}
	}
	return nil
}

// Planes returns all planes in slot order
func (s *Set) Planes() []*Plane {
	return append([]*Plane(nil), s.planes...)
}

// Active returns the active planes in slot order
func (s *Set) Active() []*Plane {
	var active []*Plane
	for _, p := range s.planes {
		if p.active {
			active = append(active, p)
		}
	}
	return active
}

// Len returns the number of planes
func (s *Set) Len() int {
	return len(s.planes)
}

// Keeps reports whether a world-space point survives every active plane
func (s *Set) Keeps(point mgl32.Vec3) bool {
	for _, p := range s.planes {
		if p.active && !p.Keeps(point) {
			return false
		}
	}
	return true
}
