package stl

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/govis/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const asciiCube = `solid corner
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 1 0 0
      vertex 1 1 0
      vertex 0 1 0
    endloop
  endfacet
endsolid corner
`

func TestDecodeASCII(t *testing.T) {
	model, err := Decode(strings.NewReader(asciiCube))
	require.NoError(t, err)

	assert.Equal(t, "corner", model.Name)
	assert.Equal(t, 2, model.TriangleCount())
	assert.Equal(t, geometry.NewVector3(0, 0, 1), model.Triangles[0].Normal)
	assert.InDelta(t, 1.0, model.SurfaceArea(), 1e-12)
	assert.Len(t, model.Vertices(), 4)
}

func TestDecodeASCIIInvalidCoordinate(t *testing.T) {
	_, err := Decode(strings.NewReader("solid x\nvertex 0 zero 0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestDecodeBinary(t *testing.T) {
	var buf bytes.Buffer
	header := make([]byte, 80)
	copy(header, "binary part")
	buf.Write(header)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(1)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, binaryFacet{
		Normal: [3]float32{0, 0, 1},
		V1:     [3]float32{0, 0, 0},
		V2:     [3]float32{2, 0, 0},
		V3:     [3]float32{0, 2, 0},
	}))

	model, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, "binary part", model.Name)
	require.Equal(t, 1, model.TriangleCount())
	bbox := model.BoundingBox()
	assert.Equal(t, geometry.NewVector3(0, 0, 0), bbox.Min)
	assert.Equal(t, geometry.NewVector3(2, 2, 0), bbox.Max)
}

func TestDecodeBinaryTruncated(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(3)))

	_, err := Decode(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read triangle 0")
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corner.stl")
	require.NoError(t, os.WriteFile(path, []byte(asciiCube), 0644))

	model, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, 2, model.TriangleCount())

	_, err = Parse(filepath.Join(t.TempDir(), "missing.stl"))
	require.Error(t, err)
}
