package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransparencyModeNames(t *testing.T) {
	for _, mode := range []TransparencyMode{TransparencyNone, TransparencySimple, TransparencyPretty} {
		parsed, err := ParseTransparencyMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}

	parsed, err := ParseTransparencyMode(" pretty ")
	require.NoError(t, err)
	assert.Equal(t, TransparencyPretty, parsed)

	_, err = ParseTransparencyMode("fancy")
	assert.ErrorIs(t, err, ErrUnknownTransparencyMode)

	assert.Equal(t, "TransparencyMode(7)", TransparencyMode(7).String())
}

func TestEngineTransparency(t *testing.T) {
	e := NewEngine(800, 600, zerolog.Nop())
	assert.False(t, e.TransparencyEnabled())

	e.ConsumeRedraw()
	e.SetTransparencyMode(TransparencyNone)
	assert.False(t, e.RedrawRequested(), "unchanged mode must not dirty the frame")

	e.SetTransparencyMode(TransparencySimple)
	assert.True(t, e.TransparencyEnabled())
	assert.True(t, e.RedrawRequested())
}

func TestEngineRedrawFlag(t *testing.T) {
	e := NewEngine(800, 600, zerolog.Nop())
	assert.True(t, e.ConsumeRedraw(), "first frame is dirty")
	assert.False(t, e.ConsumeRedraw())

	e.RequestRedraw()
	e.RequestRedraw()
	assert.True(t, e.ConsumeRedraw())
	assert.False(t, e.RedrawRequested())
}

func TestEngineViewport(t *testing.T) {
	e := NewEngine(800, 400, zerolog.Nop())
	assert.Equal(t, mgl32.Vec4{0, 0, 800, 400}, e.CurrentViewport())
	assert.InDelta(t, 2.0, e.AspectRatio(), 1e-6)

	e.SetViewport(10, 20, 300, 0)
	assert.Equal(t, mgl32.Vec4{10, 20, 300, 0}, e.CurrentViewport())
	assert.Equal(t, float32(1), e.AspectRatio())
}

func TestEngineSceneDepthMin(t *testing.T) {
	e := NewEngine(1, 1, zerolog.Nop())
	assert.Nil(t, e.SceneDepthMin())

	tex := &Texture{ID: 3, Width: 1, Height: 1}
	e.SetSceneDepthMin(tex)
	assert.Same(t, tex, e.SceneDepthMin())
}
