// Package loader turns model files into registered structures
package loader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/philipparndt/govis/internal/mesh"
	"github.com/philipparndt/govis/internal/pointcloud"
	"github.com/philipparndt/govis/internal/render"
	"github.com/philipparndt/govis/internal/structure"
	"github.com/philipparndt/govis/pkg/geometry"
	"github.com/philipparndt/govis/pkg/openscad"
	"github.com/philipparndt/govis/pkg/stl"
)

// ValueQuantity names the scalar quantity read from a fourth .xyz column
const ValueQuantity = "value"

// ErrUnsupported is returned for file extensions the loader cannot read
var ErrUnsupported = errors.New("unsupported file type")

// Item is one loaded file and the structure created for it
type Item struct {
	Path    string
	Sources []string
	Mesh    *mesh.SurfaceMesh
	Cloud   *pointcloud.PointCloud
}

// Structure returns the registered structure of the item
func (it *Item) Structure() *structure.Structure {
	if it.Mesh != nil {
		return it.Mesh.Structure
	}
	return it.Cloud.Structure
}

// SetProgramUniforms pushes the per-frame uniforms of the item's structure
func (it *Item) SetProgramUniforms(p render.Program) {
	if it.Mesh != nil {
		it.Mesh.SetProgramUniforms(p)
		return
	}
	it.Cloud.SetProgramUniforms(p)
}

// Loader creates structures in one context
type Loader struct {
	ctx      *structure.Context
	asPoints bool
	log      zerolog.Logger
}

// New creates a loader. With asPoints every file becomes a point cloud.
func New(ctx *structure.Context, asPoints bool, log zerolog.Logger) *Loader {
	return &Loader{ctx: ctx, asPoints: asPoints, log: log}
}

// Name derives a structure name from a file path
func Name(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, structure.KeyDelimiter, "_")
	if name == "" {
		name = "unnamed"
	}
	return name
}

// uniqueName appends a counter when name is already taken by typeName
func (l *Loader) uniqueName(typeName, name string) string {
	candidate := name
	for i := 2; l.ctx.Registry.Has(typeName, candidate); i++ {
		candidate = fmt.Sprintf("%s (%d)", name, i)
	}
	return candidate
}

// Load reads path and registers a structure for it
func (l *Loader) Load(ctx context.Context, path string) (*Item, error) {
	data, err := l.read(ctx, path)
	if err != nil {
		return nil, err
	}
	return l.register(data, "")
}

// Reload reads the item's file again and replaces its structure. The new
// structure keeps the name, so its persisted properties come back.
func (l *Loader) Reload(ctx context.Context, it *Item) (*Item, error) {
	name := it.Structure().Name()
	start := time.Now()

	next, err := l.read(ctx, it.Path)
	if err != nil {
		return nil, err
	}

	it.Structure().Remove()
	item, err := l.register(next, name)
	if err != nil {
		return nil, err
	}

	l.log.Info().Str("file", it.Path).Dur("elapsed", time.Since(start)).Msg("reloaded")
	return item, nil
}

// contents is a parsed file not yet turned into a structure
type contents struct {
	path    string
	sources []string
	model   *stl.Model
	points  []geometry.Vector3
	values  []float64
}

func (l *Loader) read(ctx context.Context, path string) (*contents, error) {
	ext := strings.ToLower(filepath.Ext(path))
	c := &contents{path: path, sources: []string{path}}

	switch ext {
	case ".stl":
		model, err := stl.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STL file: %w", err)
		}
		c.model = model
	case ".scad":
		model, sources, err := l.renderSCAD(ctx, path)
		if err != nil {
			return nil, err
		}
		c.model = model
		c.sources = sources
	case ".xyz":
		points, values, err := ReadPoints(path)
		if err != nil {
			return nil, err
		}
		c.points = points
		c.values = values
	default:
		return nil, fmt.Errorf("%w: %s (expected .stl, .scad or .xyz)", ErrUnsupported, ext)
	}

	if c.model != nil && l.asPoints {
		c.points = c.model.Vertices()
		c.model = nil
	}
	return c, nil
}

func (l *Loader) renderSCAD(ctx context.Context, path string) (*stl.Model, []string, error) {
	renderer := openscad.NewRenderer(filepath.Dir(path), l.log)

	sources, err := renderer.ResolveDependencies(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve dependencies: %w", err)
	}

	tmp, err := os.CreateTemp("", "govis_*.stl")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := renderer.RenderToSTL(ctx, path, tmp.Name()); err != nil {
		return nil, nil, err
	}

	model, err := stl.Parse(tmp.Name())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse rendered STL: %w", err)
	}
	return model, sources, nil
}

func (l *Loader) register(c *contents, name string) (*Item, error) {
	item := &Item{Path: c.path, Sources: c.sources}

	if c.model != nil {
		if name == "" {
			name = l.uniqueName(mesh.TypeName, Name(c.path))
		}
		m, err := mesh.New(l.ctx, name, c.model)
		if err != nil {
			return nil, err
		}
		item.Mesh = m
		l.log.Info().Str("file", c.path).Str("name", name).Int("triangles", c.model.TriangleCount()).Msg("loaded surface mesh")
		return item, nil
	}

	if name == "" {
		name = l.uniqueName(pointcloud.TypeName, Name(c.path))
	}
	pc, err := pointcloud.New(l.ctx, name, c.points)
	if err != nil {
		return nil, err
	}
	if c.values != nil {
		if _, err := pc.AddScalarQuantity(ValueQuantity, c.values); err != nil {
			pc.Remove()
			return nil, err
		}
	}
	item.Cloud = pc
	l.log.Info().Str("file", c.path).Str("name", name).Int("points", len(c.points)).Msg("loaded point cloud")
	return item, nil
}

// ReadPoints reads whitespace separated "x y z [value]" lines. Blank lines
// and lines starting with # are skipped. Values are returned only when
// every point has one.
func ReadPoints(path string) ([]geometry.Vector3, []float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var points []geometry.Vector3
	var values []float64
	withValues := 0

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
		if len(fields) < 3 {
			return nil, nil, fmt.Errorf("%s:%d: expected at least 3 coordinates", path, lineNo)
		}

		var xyz [4]float64
		n := min(len(fields), 4)
		for i := 0; i < n; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%s:%d: invalid number %q", path, lineNo, fields[i])
			}
			xyz[i] = v
		}

		points = append(points, geometry.NewVector3(xyz[0], xyz[1], xyz[2]))
		values = append(values, xyz[3])
		if n == 4 {
			withValues++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if withValues == 0 || withValues != len(points) {
		values = nil
	}
	return points, values, nil
}
