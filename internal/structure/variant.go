package structure

import (
	"github.com/philipparndt/govis/internal/panel"
	"github.com/philipparndt/govis/pkg/geometry"
)

// Variant is implemented by each concrete kind of structure
type Variant interface {
	// TypeName is the user-facing kind, e.g. "Point Cloud"
	TypeName() string
	// BoundingBox is the object-space bounding box
	BoundingBox() geometry.BoundingBox
	// LengthScale is a characteristic object-space length
	LengthScale() float64
	// UpdateStructureExtents refreshes whatever the variant caches from
	// the transform
	UpdateStructureExtents()

	BuildCustomUI(ui panel.UI)
	BuildCustomOptionsUI(ui panel.UI)
	BuildQuantitiesUI(ui panel.UI)
}

// PropertyReleaser is implemented by variants owning persisted properties
// of their own. It is called when the structure leaves the registry.
type PropertyReleaser interface {
	ReleaseProperties()
}

// NoUI provides empty panel hooks for variants without custom controls
type NoUI struct{}

func (NoUI) BuildCustomUI(panel.UI)        {}
func (NoUI) BuildCustomOptionsUI(panel.UI) {}
func (NoUI) BuildQuantitiesUI(panel.UI)    {}
