package freqstars

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/panelfx/internal/audio"
	"github.com/coreman2200/panelfx/internal/layout"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/rgb"
)

func TestBinBeatUsesItsOwnColour(t *testing.T) {
	c := render.NewContext(layout.Triangles(6, 1, 0), rgb.Palette{rgb.Red, rgb.Green, rgb.Blue}, 11)
	e := New("freqstars")
	e.ApplyPreset("Default", c.Uniforms)
	require.NoError(t, e.Init(c))
	assert.Equal(t, 3, e.Bins())

	dst := make([]render.Frame, 6)
	e.Render(dst, c, &audio.Features{FFT: []uint8{0, 0, 0}})
	assert.Empty(t, e.Sources())

	n := e.Render(dst, c, &audio.Features{FFT: []uint8{0, 50, 0}})
	assert.Equal(t, 6, n)
	require.Len(t, e.Sources(), 1)
	assert.Equal(t, rgb.Green, e.Sources()[0].Color)
	assert.Equal(t, 1.0, e.Sources()[0].Intensity)
}

func TestSimultaneousBinsSpawnTogether(t *testing.T) {
	c := render.NewContext(layout.Triangles(6, 1, 0), rgb.Palette{rgb.Red, rgb.Green, rgb.Blue}, 11)
	e := New("freqstars")
	require.NoError(t, e.Init(c))
	dst := make([]render.Frame, 6)
	e.Render(dst, c, &audio.Features{FFT: []uint8{0, 0, 0}})
	e.Render(dst, c, &audio.Features{FFT: []uint8{40, 0, 40}})
	require.Len(t, e.Sources(), 2)
	assert.Equal(t, rgb.Red, e.Sources()[0].Color)
	assert.Equal(t, rgb.Blue, e.Sources()[1].Color)
}

func TestPaletteIsTruncated(t *testing.T) {
	p := make(rgb.Palette, 9)
	c := render.NewContext(layout.Triangles(2, 1, 0), p, 1)
	e := New("freqstars")
	require.NoError(t, e.Init(c))
	assert.Equal(t, MaxColours, e.Bins())
}

func TestNoPaletteNoBins(t *testing.T) {
	c := render.NewContext(layout.Triangles(2, 1, 0), nil, 1)
	e := New("freqstars")
	require.NoError(t, e.Init(c))
	dst := make([]render.Frame, 2)
	assert.Equal(t, 2, e.Render(dst, c, &audio.Features{FFT: []uint8{200}}))
	assert.Empty(t, e.Sources())
}
