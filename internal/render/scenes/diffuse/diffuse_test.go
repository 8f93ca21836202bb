package diffuse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/panelfx/internal/audio"
	"github.com/coreman2200/panelfx/internal/layout"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/rgb"
)

func setup(t *testing.T, p rgb.Palette) (*Effect, *render.Context, []render.Frame) {
	t.Helper()
	c := render.NewContext(layout.Triangles(6, 1, 0), p, 7)
	e := New("diffuse")
	e.ApplyPreset("Default", c.Uniforms)
	require.NoError(t, e.Init(c))
	return e, c, make([]render.Frame, c.Layout.Count())
}

func TestSilenceRendersBlack(t *testing.T) {
	e, c, dst := setup(t, rgb.Palette{rgb.Red})
	n := e.Render(dst, c, nil)
	require.Equal(t, 6, n)
	for i, f := range dst {
		assert.Equal(t, i+1, f.PanelID)
		assert.Equal(t, rgb.Black, f.Color())
		assert.Equal(t, render.DefaultTransTime, f.TransTime)
	}
	assert.Empty(t, e.Sources())
}

func TestBeatLightsAPanelFully(t *testing.T) {
	e, c, dst := setup(t, rgb.Palette{rgb.Red})
	e.Render(dst, c, &audio.Features{Energy: 0})
	e.Render(dst, c, &audio.Features{Energy: 500})
	require.Len(t, e.Sources(), 1)

	lit := 0
	for _, f := range dst {
		if f.Color() == rgb.Red {
			lit++
		}
	}
	assert.Equal(t, 1, lit)
	assert.Equal(t, 1.0, e.Sources()[0].Age)
}

func TestLastSourcesSurviveAtFloor(t *testing.T) {
	e, c, dst := setup(t, rgb.Palette{rgb.Red})
	e.Render(dst, c, &audio.Features{Energy: 0})
	e.Render(dst, c, &audio.Features{Energy: 500})
	for i := 0; i < 60; i++ {
		e.Render(dst, c, &audio.Features{Energy: 500})
	}
	require.Len(t, e.Sources(), 1)
	for _, f := range dst {
		assert.Equal(t, rgb.RGB{R: 12}, f.Color())
	}
}

func TestStoreIsBounded(t *testing.T) {
	e, c, dst := setup(t, rgb.Palette{rgb.Red, rgb.Blue})
	for i := 0; i < 30; i++ {
		e.Render(dst, c, &audio.Features{Energy: 0})
		e.Render(dst, c, &audio.Features{Energy: 500})
	}
	assert.Len(t, e.Sources(), 10)
}

func TestEmptyPaletteFallsBackToGrey(t *testing.T) {
	e, c, dst := setup(t, nil)
	e.Render(dst, c, &audio.Features{Energy: 0})
	e.Render(dst, c, &audio.Features{Energy: 500})
	require.Len(t, e.Sources(), 1)
	assert.Equal(t, rgb.Grey, e.Sources()[0].Color)
}
