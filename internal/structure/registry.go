package structure

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/philipparndt/govis/pkg/geometry"
)

// Registry holds every live structure, partitioned by type name and then
// by instance name. It is only touched from the render loop.
type Registry struct {
	byType map[string]map[string]*Structure
	log    zerolog.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		byType: make(map[string]map[string]*Structure),
		log:    log,
	}
}

// Add registers s under (TypeName, Name)
func (r *Registry) Add(s *Structure) error {
	typeName := s.TypeName()
	if r.Has(typeName, s.Name()) {
		return fmt.Errorf("%w: %s %q", ErrDuplicateName, typeName, s.Name())
	}
	bucket, ok := r.byType[typeName]
	if !ok {
		bucket = make(map[string]*Structure)
		r.byType[typeName] = bucket
	}
	bucket[s.Name()] = s
	r.log.Debug().Str("type", typeName).Str("name", s.Name()).Msg("structure added")
	return nil
}

// Has reports whether a structure is registered under the key
func (r *Registry) Has(typeName, name string) bool {
	return r.Get(typeName, name) != nil
}

// Get returns the structure registered under the key, or nil
func (r *Registry) Get(typeName, name string) *Structure {
	return r.byType[typeName][name]
}

// Remove drops the structure registered under the key and detaches its
// persisted properties. It reports whether anything was removed.
func (r *Registry) Remove(typeName, name string) bool {
	bucket := r.byType[typeName]
	s, ok := bucket[name]
	if !ok {
		return false
	}
	delete(bucket, name)
	if len(bucket) == 0 {
		delete(r.byType, typeName)
	}
	s.release()
	r.log.Debug().Str("type", typeName).Str("name", name).Msg("structure removed")
	return true
}

// OfType returns the structures of one type sorted by name
func (r *Registry) OfType(typeName string) []*Structure {
	bucket := r.byType[typeName]
	out := make([]*Structure, 0, len(bucket))
	for _, s := range bucket {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// TypeNames returns the type names that have at least one structure, sorted
func (r *Registry) TypeNames() []string {
	names := make([]string, 0, len(r.byType))
	for n := range r.byType {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// All returns every structure ordered by type name and then name
func (r *Registry) All() []*Structure {
	var out []*Structure
	for _, typeName := range r.TypeNames() {
		out = append(out, r.OfType(typeName)...)
	}
	return out
}

// RemoveAll drops every structure
func (r *Registry) RemoveAll() {
	for _, s := range r.All() {
		r.Remove(s.TypeName(), s.Name())
	}
}

// Len returns the number of structures
func (r *Registry) Len() int {
	n := 0
	for _, bucket := range r.byType {
		n += len(bucket)
	}
	return n
}

// Extents returns the union of the cached world boxes of enabled
// structures and the largest cached length scale
func (r *Registry) Extents() (geometry.BoundingBox, float64) {
	box := geometry.NewBoundingBox()
	var scale float64
	for _, s := range r.All() {
		if !s.IsEnabled() {
			continue
		}
		b, l := s.Extents()
		box.Union(b)
		scale = max(scale, l)
	}
	return box, scale
}
