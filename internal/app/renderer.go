package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/govis/internal/gizmo"
	"github.com/philipparndt/govis/internal/render"
	"github.com/philipparndt/govis/internal/render/rlprogram"
	"github.com/philipparndt/govis/internal/slice"
	"github.com/philipparndt/govis/internal/structure"
	"github.com/philipparndt/govis/pkg/geometry"
	"github.com/philipparndt/govis/pkg/stl"
)

var axisColors = [3]rl.Color{
	rl.NewColor(255, 80, 80, 255),  // X
	rl.NewColor(80, 255, 80, 255),  // Y
	rl.NewColor(80, 120, 255, 255), // Z
}

var wireframeColor = rl.NewColor(100, 100, 100, 200)

// stlToRaylibMesh converts an STL model to a flat shaded raylib mesh
func stlToRaylibMesh(model *stl.Model) rl.Mesh {
	triangleCount := len(model.Triangles)
	vertexCount := triangleCount * 3

	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, 0, vertexCount*3)
	normals := make([]float32, 0, vertexCount*3)
	texcoords := make([]float32, vertexCount*2)

	for _, triangle := range model.Triangles {
		normal := triangle.CalculateNormal()
		for _, v := range triangle.Vertices() {
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, float32(normal.X), float32(normal.Y), float32(normal.Z))
		}
	}

	if len(vertices) > 0 {
		mesh.Vertices = &vertices[0]
		mesh.Normals = &normals[0]
		mesh.Texcoords = &texcoords[0]
	}

	rl.UploadMesh(&mesh, false)
	return mesh
}

// uniqueEdges lists every triangle edge once, in model space
func uniqueEdges(model *stl.Model) [][2]mgl32.Vec3 {
	seen := make(map[[2]geometry.Vector3]bool)
	var edges [][2]mgl32.Vec3

	for _, triangle := range model.Triangles {
		v := triangle.Vertices()
		for i := 0; i < 3; i++ {
			a, b := v[i], v[(i+1)%3]
			if b.X < a.X || (b.X == a.X && (b.Y < a.Y || (b.Y == a.Y && b.Z < a.Z))) {
				a, b = b, a
			}
			key := [2]geometry.Vector3{a, b}
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, [2]mgl32.Vec3{a.Vec3(), b.Vec3()})
		}
	}
	return edges
}

func rlVec(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// newDrawable uploads the geometry of a loaded item
func (app *App) newDrawable(d *drawable) {
	if d.item.Mesh != nil {
		d.mesh = stlToRaylibMesh(d.item.Mesh.Model())
		d.edges = uniqueEdges(d.item.Mesh.Model())
	}
}

func (app *App) unloadDrawable(d *drawable) {
	if d.item.Mesh != nil {
		rl.UnloadMesh(&d.mesh)
	}
}

// drawStructures draws every enabled structure through the shared program
func (app *App) drawStructures() {
	transparent := app.ctx.Engine.TransparencyEnabled()
	if transparent {
		rl.BeginBlendMode(rl.BlendAlpha)
		defer rl.EndBlendMode()
	}

	for _, d := range app.items {
		s := d.item.Structure()
		if !s.IsEnabled() {
			continue
		}

		// Slots of planes that are gone or inactive must stop cutting, and
		// opaque structures draw fully opaque.
		slice.ClearUniforms(app.program, 0)
		if app.program.HasUniform(render.UniformTransparency) {
			app.program.SetUniformFloat(render.UniformTransparency, 1)
		}

		switch {
		case d.item.Mesh != nil:
			d.item.Mesh.SetProgramUniforms(app.program)
			rl.DrawMesh(d.mesh, app.render.material, rl.MatrixIdentity())
			if d.item.Mesh.Wireframe() {
				app.drawWireframe(d)
			}
		case d.item.Cloud != nil:
			pc := d.item.Cloud
			pc.SetProgramUniforms(app.program)
			r := float32(pc.PointRadius() * pc.LengthScale())
			scale := rl.MatrixScale(r, r, r)
			for _, p := range pc.Points() {
				transform := rl.MatrixMultiply(scale, rl.MatrixTranslate(float32(p.X), float32(p.Y), float32(p.Z)))
				rl.DrawMesh(app.render.glyph, app.render.material, transform)
			}
		}
	}
}

// keeps reports whether a world space point survives the slice planes s
// does not ignore
func (app *App) keeps(s *structure.Structure, p mgl32.Vec3) bool {
	for _, plane := range app.ctx.Slices.Active() {
		if s.IgnoreSlicePlane(plane.Name()) {
			continue
		}
		if !plane.Keeps(p) {
			return false
		}
	}
	return true
}

// drawWireframe draws the mesh edges that survive slicing
func (app *App) drawWireframe(d *drawable) {
	s := d.item.Structure()
	m := s.Transform()

	for _, edge := range d.edges {
		a := mgl32.TransformCoordinate(edge[0], m)
		b := mgl32.TransformCoordinate(edge[1], m)
		if !app.keeps(s, a) && !app.keeps(s, b) {
			continue
		}
		rl.DrawLine3D(rlVec(a), rlVec(b), wireframeColor)
	}
}

// dominantAxis returns the axis a normal is closest to
func dominantAxis(n mgl32.Vec3) int {
	axis := 0
	for i := 1; i < 3; i++ {
		if math.Abs(float64(n[i])) > math.Abs(float64(n[axis])) {
			axis = i
		}
	}
	return axis
}

// drawSlicePlanes draws each active plane as a translucent square
func (app *App) drawSlicePlanes() {
	if !app.ui.showPlanes {
		return
	}

	box, scale := app.ctx.Registry.Extents()
	if box.IsEmpty() || scale <= 0 {
		return
	}
	halfSize := float32(scale) * 0.75

	for _, plane := range app.ctx.Slices.Active() {
		n := plane.Normal()
		helper := mgl32.Vec3{0, 1, 0}
		if math.Abs(float64(n.Dot(helper))) > 0.9 {
			helper = mgl32.Vec3{1, 0, 0}
		}
		u := n.Cross(helper).Normalize().Mul(halfSize)
		v := n.Cross(u).Normalize().Mul(halfSize)
		c := plane.Center()

		v1 := rlVec(c.Sub(u).Sub(v))
		v2 := rlVec(c.Add(u).Sub(v))
		v3 := rlVec(c.Add(u).Add(v))
		v4 := rlVec(c.Sub(u).Add(v))

		color := axisColors[dominantAxis(n)]
		color.A = 40
		rl.DrawTriangle3D(v1, v2, v3, color)
		rl.DrawTriangle3D(v1, v3, v4, color)
		rl.DrawTriangle3D(v3, v2, v1, color)
		rl.DrawTriangle3D(v4, v3, v1, color)

		border := color
		border.A = 150
		rl.DrawLine3D(v1, v2, border)
		rl.DrawLine3D(v2, v3, border)
		rl.DrawLine3D(v3, v4, border)
		rl.DrawLine3D(v4, v1, border)
	}
}

// drawGizmos draws the axes of every enabled transform gizmo at the
// structure's origin
func (app *App) drawGizmos() {
	for _, d := range app.items {
		s := d.item.Structure()
		g := s.Gizmo()
		if !s.IsEnabled() || !g.Enabled() {
			continue
		}

		origin := g.Center()
		length := float32(s.WorldLengthScale()) * 0.25
		radius := length * 0.02
		if g.Mode() == gizmo.ModeScale {
			radius *= 2
		}

		m := s.Transform()
		for axis := 0; axis < 3; axis++ {
			var dir mgl32.Vec3
			dir[axis] = 1
			if g.Mode() == gizmo.ModeRotate {
				// rotation happens about the structure's own axes
				dir = m.Mat3().Mul3x1(dir)
			}
			if dir.Len() == 0 {
				continue
			}
			end := origin.Add(dir.Normalize().Mul(length))
			rl.DrawCylinderEx(rlVec(origin), rlVec(end), radius, radius, 8, axisColors[axis])
		}
	}
}

// syncCamera copies the orbit camera into the raylib camera and the engine
// viewport
func (app *App) syncCamera() {
	width, height := rl.GetScreenWidth(), rl.GetScreenHeight()
	app.ctx.Engine.SetViewport(0, 0, width, height)
	app.camera.SetAspect(float32(width), float32(height))

	app.rlCamera.Position = rlVec(app.camera.Eye())
	app.rlCamera.Target = rlVec(app.camera.Target)
	app.rlCamera.Up = rlVec(app.camera.Up())
	app.rlCamera.Fovy = app.camera.FovY
}

// loadRenderState compiles the structure shader and the point glyph
func (app *App) loadRenderState() {
	shader := rl.LoadShaderFromMemory(vertexShader, fragmentShader())
	app.program = rlprogram.New(shader, slice.MaxPlanes)

	app.render.shader = shader
	app.render.material = rl.LoadMaterialDefault()
	app.render.material.Shader = shader
	app.render.glyph = rl.GenMeshSphere(1, 8, 8)

	app.log.Debug().
		Strs("uniforms", app.program.Capabilities().Uniforms()).
		Msg("structure shader loaded")
}

func (app *App) unloadRenderState() {
	rl.UnloadMesh(&app.render.glyph)
	app.program.Unload()
}
