// Package dryrun runs the per-frame uniform contract of loaded structures
// against in-memory programs and reports every upload
package dryrun

import (
	"errors"
	"fmt"
	"io"

	"github.com/philipparndt/govis/internal/loader"
	"github.com/philipparndt/govis/internal/render"
	"github.com/philipparndt/govis/internal/slice"
	"github.com/philipparndt/govis/internal/structure"
)

// ErrMissingMatrix is returned when the simulated program lacks one of the
// two matrices every structure uploads unconditionally
var ErrMissingMatrix = errors.New("program must declare u_modelView and u_projMatrix")

// Options select the simulated program and scene state
type Options struct {
	Uniforms     []string // nil means every standard uniform
	Textures     []string // nil means every standard texture
	Transparency string
	SlicePlanes  []string
	Ignore       []string
	Width        int
	Height       int
}

// Capabilities returns the program capability set described by opts
func (o Options) Capabilities() render.Capabilities {
	uniforms := o.Uniforms
	if uniforms == nil {
		uniforms = render.StandardUniforms(slice.MaxPlanes)
	}
	textures := o.Textures
	if textures == nil {
		textures = render.StandardTextures()
	}
	return render.NewCapabilities(uniforms, textures)
}

// Prepare applies the scene state of opts to ctx: transparency mode,
// viewport, slice planes and per-structure plane exclusions
func Prepare(ctx *structure.Context, opts Options) error {
	caps := opts.Capabilities()
	if !caps.HasUniform(render.UniformModelView) || !caps.HasUniform(render.UniformProjMatrix) {
		return ErrMissingMatrix
	}

	if opts.Transparency != "" {
		mode, err := render.ParseTransparencyMode(opts.Transparency)
		if err != nil {
			return err
		}
		ctx.Engine.SetTransparencyMode(mode)
	}

	if opts.Width > 0 && opts.Height > 0 {
		ctx.Engine.SetViewport(0, 0, opts.Width, opts.Height)
	}
	vp := ctx.Engine.CurrentViewport()
	ctx.Engine.SetSceneDepthMin(&render.Texture{ID: 1, Width: int32(vp[2]), Height: int32(vp[3])})

	var errs []error
	for _, name := range opts.SlicePlanes {
		if _, err := ctx.Slices.Add(name); err != nil {
			errs = append(errs, err)
		}
	}
	for _, s := range ctx.Registry.All() {
		for _, name := range opts.Ignore {
			s.SetIgnoreSlicePlane(name, true)
		}
	}
	return errors.Join(errs...)
}

// Run records the uploads of every item into a fresh program and writes
// them to w, one block per structure
func Run(w io.Writer, items []*loader.Item, caps render.Capabilities) []*render.Recorder {
	recorders := make([]*render.Recorder, 0, len(items))
	for _, item := range items {
		s := item.Structure()
		rec := render.NewRecorder(caps)
		item.SetProgramUniforms(rec)
		recorders = append(recorders, rec)

		fmt.Fprintf(w, "%s %q (%d uploads)\n", s.TypeName(), s.Name(), len(rec.Uploads))
		for i, u := range rec.Uploads {
			fmt.Fprintf(w, "  %2d. %s\n", i+1, u)
		}
	}
	return recorders
}
