package structure

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"github.com/philipparndt/govis/internal/gizmo"
	"github.com/philipparndt/govis/internal/property"
	"github.com/philipparndt/govis/internal/render"
	"github.com/philipparndt/govis/pkg/geometry"
)

// KeyDelimiter separates the parts of a persisted property key
const KeyDelimiter = "#"

// Property keys, appended to "<typeTag>#<name>#"
const (
	KeyEnabled            = "enabled"
	KeyObjectTransform    = "object_transform"
	KeyTransparency       = "transparency"
	KeyTransformGizmo     = "transform_gizmo"
	KeyIgnoredSlicePlanes = "ignored_slice_planes"
)

var (
	// ErrInvalidName is returned for empty names or names containing the
	// key delimiter
	ErrInvalidName = errors.New("invalid structure name")
	// ErrDuplicateName is returned when the registry already holds a
	// structure of the same type and name
	ErrDuplicateName = errors.New("structure already exists")
)

// Structure is the shared state of one visual entity. Concrete kinds embed
// a *Structure and pass themselves as its Variant.
type Structure struct {
	ctx     *Context
	name    string
	typeTag string
	variant Variant
	log     zerolog.Logger

	enabled                *property.Value[bool]
	objectTransform        *property.Value[mgl32.Mat4]
	transparency           *property.Value[float64]
	ignoredSlicePlaneNames *property.Value[[]string]
	transformGizmo         *gizmo.Gizmo

	worldBox   geometry.BoundingBox
	worldScale float64
}

// ValidateName rejects names that would break the property key scheme
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	}
	if strings.Contains(name, KeyDelimiter) {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, KeyDelimiter)
	}
	return nil
}

// New creates a structure and adds it to the context's registry. typeTag
// only namespaces the persisted properties. Persisted values already in the
// store are picked up; ones that fail to decode are logged and replaced by
// defaults.
func New(ctx *Context, name, typeTag string, variant Variant) (*Structure, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidateName(typeTag); err != nil {
		return nil, fmt.Errorf("invalid type tag: %w", err)
	}
	if ctx.Registry.Has(variant.TypeName(), name) {
		return nil, fmt.Errorf("%w: %s %q", ErrDuplicateName, variant.TypeName(), name)
	}

	s := &Structure{
		ctx:     ctx,
		name:    name,
		typeTag: typeTag,
		variant: variant,
		log:     ctx.Log.With().Str("structure", name).Str("type", variant.TypeName()).Logger(),

		worldBox: geometry.NewBoundingBox(),
	}

	var errs []error
	s.enabled, errs = track(errs, ctx.Store, s.key(KeyEnabled), true)
	s.objectTransform, errs = track(errs, ctx.Store, s.key(KeyObjectTransform), mgl32.Ident4())
	s.transparency, errs = track(errs, ctx.Store, s.key(KeyTransparency), 1.0)
	s.ignoredSlicePlaneNames, errs = track(errs, ctx.Store, s.key(KeyIgnoredSlicePlanes), []string{})

	g, err := gizmo.New(ctx.Store, s.key(KeyTransformGizmo), s)
	if err != nil {
		errs = append(errs, err)
	}
	s.transformGizmo = g

	if err := errors.Join(errs...); err != nil {
		s.log.Warn().Err(err).Msg("ignoring persisted values")
	}

	if err := ctx.Registry.Add(s); err != nil {
		s.release()
		return nil, err
	}

	s.normalizeTransparency()
	s.normalizeIgnoredSlicePlanes()
	// values replaced by a property file reload go through the same rules
	s.transparency.OnLoad(func() {
		s.normalizeTransparency()
		s.Refresh()
	})
	s.ignoredSlicePlaneNames.OnLoad(func() {
		s.normalizeIgnoredSlicePlanes()
		s.Refresh()
	})
	s.objectTransform.OnLoad(s.transformChanged)
	return s, nil
}

// track registers a property cell. A decode failure leaves the cell at its
// default and is collected into errs.
func track[T any](errs []error, store *property.Store, key string, def T) (*property.Value[T], []error) {
	v, err := property.New(store, key, def)
	if err != nil {
		errs = append(errs, err)
	}
	return v, errs
}

func (s *Structure) key(prop string) string {
	return s.typeTag + KeyDelimiter + s.name + KeyDelimiter + prop
}

// PropertyKey returns the persistence key of a property owned by this
// structure or its variant
func (s *Structure) PropertyKey(prop string) string {
	return s.key(prop)
}

// Context returns the scene collaborators the structure was created with
func (s *Structure) Context() *Context { return s.ctx }

// Name returns the structure's name
func (s *Structure) Name() string { return s.name }

// TypeName returns the variant's user-facing kind
func (s *Structure) TypeName() string { return s.variant.TypeName() }

// TypeTag returns the persistence namespace
func (s *Structure) TypeTag() string { return s.typeTag }

// Variant returns the concrete kind
func (s *Structure) Variant() Variant { return s.variant }

// Gizmo returns the transform manipulator
func (s *Structure) Gizmo() *gizmo.Gizmo { return s.transformGizmo }

// UniquePrefix is "<TypeName>#<name>#", unique across the scene
func (s *Structure) UniquePrefix() string {
	return s.TypeName() + KeyDelimiter + s.name + KeyDelimiter
}

// Refresh asks for the next frame to be drawn
func (s *Structure) Refresh() {
	s.ctx.Engine.RequestRedraw()
}

// SetEnabled shows or hides the structure. Setting the current value does
// nothing.
func (s *Structure) SetEnabled(enabled bool) {
	if enabled == s.IsEnabled() {
		return
	}
	s.enabled.Set(enabled)
	s.ctx.Engine.RequestRedraw()
}

// IsEnabled reports whether the structure is shown
func (s *Structure) IsEnabled() bool {
	return s.enabled.Get()
}

// EnableIsolate hides every other structure of the same type and shows
// this one
func (s *Structure) EnableIsolate() {
	for _, other := range s.ctx.Registry.OfType(s.TypeName()) {
		other.SetEnabled(false)
	}
	s.SetEnabled(true)
}

// SetEnabledAllOfType applies SetEnabled to every structure of this type,
// including this one
func (s *Structure) SetEnabledAllOfType(enabled bool) {
	for _, other := range s.ctx.Registry.OfType(s.TypeName()) {
		other.SetEnabled(enabled)
	}
}

// Remove asks the registry to drop this structure
func (s *Structure) Remove() {
	s.ctx.Registry.Remove(s.TypeName(), s.name)
}

// release detaches the persisted cells. Their values stay in the store so a
// structure created later under the same name starts where this one ended.
func (s *Structure) release() {
	s.enabled.Release()
	s.objectTransform.Release()
	s.transparency.Release()
	s.ignoredSlicePlaneNames.Release()
	if s.transformGizmo != nil {
		s.transformGizmo.Release()
	}
	if r, ok := s.variant.(PropertyReleaser); ok {
		r.ReleaseProperties()
	}
}

// SetTransform left-composes m onto the object transform, so the result
// maps a point through the old transform first and then m.
func (s *Structure) SetTransform(m mgl32.Mat4) {
	s.objectTransform.Set(m.Mul4(s.objectTransform.Get()))
	s.transformChanged()
}

// ResetTransform restores the identity transform
func (s *Structure) ResetTransform() {
	s.objectTransform.Set(mgl32.Ident4())
	s.transformChanged()
}

// CenterBoundingBox translates the object so its bounding box center sits
// at the origin of the previous frame. Empty boxes are left alone.
func (s *Structure) CenterBoundingBox() {
	box := s.variant.BoundingBox()
	if box.IsEmpty() {
		return
	}
	c := box.Center()
	s.SetTransform(mgl32.Translate3D(float32(-c.X), float32(-c.Y), float32(-c.Z)))
}

// RescaleToUnit scales uniformly by 1/LengthScale. Degenerate scales are
// left alone.
func (s *Structure) RescaleToUnit() {
	l := s.variant.LengthScale()
	if l <= 0 || math.IsInf(l, 0) || math.IsNaN(l) {
		return
	}
	f := float32(1.0 / l)
	s.SetTransform(mgl32.Scale3D(f, f, f))
}

// Transform returns the object-to-world transform
func (s *Structure) Transform() mgl32.Mat4 {
	return s.objectTransform.Get()
}

// ModelView returns view * transform with a freshly queried view matrix
func (s *Structure) ModelView() mgl32.Mat4 {
	return s.ctx.View.ViewMatrix().Mul4(s.objectTransform.Get())
}

func (s *Structure) transformChanged() {
	s.variant.UpdateStructureExtents()
	s.ctx.Engine.RequestRedraw()
}

// WorldBox returns the variant's bounding box mapped through the transform
func (s *Structure) WorldBox() geometry.BoundingBox {
	return s.variant.BoundingBox().Transform(s.Transform())
}

// WorldLengthScale returns the length scale multiplied by the largest
// scale factor of the transform
func (s *Structure) WorldLengthScale() float64 {
	m := s.Transform()
	var f float32
	for i := 0; i < 3; i++ {
		f = max(f, m.Col(i).Vec3().Len())
	}
	return s.variant.LengthScale() * float64(f)
}

// CacheExtents stores the current world-space extents for Registry.Extents.
// Variants call it from UpdateStructureExtents.
func (s *Structure) CacheExtents() {
	s.worldBox = s.WorldBox()
	s.worldScale = s.WorldLengthScale()
}

// Extents returns the cached world-space bounding box and length scale
func (s *Structure) Extents() (geometry.BoundingBox, float64) {
	return s.worldBox, s.worldScale
}

// SetTransparency stores v clamped to [0, 1]. Any value below 1 turns on
// transparency compositing if it was off. NaN is ignored.
func (s *Structure) SetTransparency(v float64) {
	if math.IsNaN(v) {
		return
	}
	v = min(max(v, 0), 1)
	s.transparency.Set(v)
	s.promoteTransparency(v)
	s.ctx.Engine.RequestRedraw()
}

func (s *Structure) promoteTransparency(v float64) {
	if v < 1 && s.ctx.Engine.TransparencyMode() == render.TransparencyNone {
		s.log.Info().Float64("transparency", v).Msg("enabling pretty transparency mode")
		s.ctx.Engine.SetTransparencyMode(render.TransparencyPretty)
	}
}

// normalizeTransparency applies the SetTransparency rules to a value that
// came from the property store. NaN falls back to opaque.
func (s *Structure) normalizeTransparency() {
	v := s.transparency.Get()
	c := 1.0
	if !math.IsNaN(v) {
		c = min(max(v, 0), 1)
	}
	if c != v {
		s.transparency.Set(c)
	}
	s.promoteTransparency(c)
}

// Transparency returns the opacity, 1 being fully opaque
func (s *Structure) Transparency() float64 {
	return s.transparency.Get()
}

// SetIgnoreSlicePlane adds or removes a plane name from the set of planes
// this structure is not clipped by
func (s *Structure) SetIgnoreSlicePlane(name string, ignore bool) {
	if s.IgnoreSlicePlane(name) == ignore {
		return
	}

	current := s.ignoredSlicePlaneNames.Get()
	next := make([]string, 0, len(current)+1)
	for _, n := range current {
		if n != name {
			next = append(next, n)
		}
	}
	if ignore {
		next = append(next, name)
	}

	s.ignoredSlicePlaneNames.Set(next)
	s.ctx.Engine.RequestRedraw()
}

// normalizeIgnoredSlicePlanes drops repeated names from a restored list,
// keeping the first occurrence
func (s *Structure) normalizeIgnoredSlicePlanes() {
	current := s.ignoredSlicePlaneNames.Get()
	seen := make(map[string]bool, len(current))
	unique := make([]string, 0, len(current))
	for _, n := range current {
		if !seen[n] {
			seen[n] = true
			unique = append(unique, n)
		}
	}
	if len(unique) != len(current) {
		s.ignoredSlicePlaneNames.Set(unique)
	}
}

// IgnoreSlicePlane reports whether the named plane is ignored
func (s *Structure) IgnoreSlicePlane(name string) bool {
	for _, n := range s.ignoredSlicePlaneNames.Get() {
		if n == name {
			return true
		}
	}
	return false
}

// IgnoredSlicePlanes returns the ignored plane names in insertion order
func (s *Structure) IgnoredSlicePlanes() []string {
	return append([]string(nil), s.ignoredSlicePlaneNames.Get()...)
}
