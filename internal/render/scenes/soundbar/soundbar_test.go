package soundbar

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
	c := render.NewContext(layout.Triangles(10, 1, 0), p, 1)
	e := New("soundbar")
	require.NoError(t, e.Init(c))
	return e, c, make([]render.Frame, 10)
}

func TestStripStaysHorizontal(t *testing.T) {
	e, c, _ := setup(t, nil)
	assert.Equal(t, 0, e.Rotation())
	assert.Equal(t, 0, c.Layout.GlobalOrientation)
	assert.Len(t, e.Slices(), 10)
}

func TestBarFollowsEnergy(t *testing.T) {
	e, c, dst := setup(t, rgb.Palette{rgb.Blue, rgb.Red})
	in := &audio.Features{Energy: 10000}
	assert.Equal(t, 0, e.Render(dst, c, in))

	require.Equal(t, 10, e.Render(dst, c, in))
	for i := 0; i < 2; i++ {
		assert.Equal(t, rgb.Red, dst[i].Color(), "slice %d", i)
	}
	assert.Equal(t, rgb.RGB{R: 225, G: 0, B: 30}, dst[2].Color())
	for i := 6; i < 10; i++ {
		assert.Equal(t, rgb.Blue, dst[i].Color(), "slice %d", i)
	}
	// length 62 minus one relax step
	assert.Equal(t, 62-relaxStep, e.Marker())
}

func TestSilenceIsAllBase(t *testing.T) {
	e, c, dst := setup(t, nil)
	e.Render(dst, c, nil)
	require.Equal(t, 10, e.Render(dst, c, nil))
	for _, f := range dst {
		assert.Equal(t, rgb.Black, f.Color())
		assert.Equal(t, render.DefaultTransTime, f.TransTime)
	}
	assert.Equal(t, 0, e.Marker())
}
