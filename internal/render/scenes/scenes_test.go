package scenes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/panelfx/internal/audio"
	"github.com/coreman2200/panelfx/internal/layout"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/rgb"
)

var allEffects = []string{
	"calib", "diffuse", "fireworks", "freqstars", "gradient", "northern",
	"soda", "solid", "soundbar", "stars", "wheel",
}

func TestRegistryListsEveryEffect(t *testing.T) {
	reg := Registry()
	assert.Equal(t, allEffects, reg.List())
	_, ok := reg.Get(DefaultEffect)
	assert.True(t, ok)
}

// Every effect and preset runs a few loud and quiet ticks on a small
// layout without writing outside it.
func TestEveryPresetRenders(t *testing.T) {
	fft := make([]uint8, audio.DefaultBins)
	for i := range fft {
		fft[i] = uint8(40 * (i % 4))
	}
	inputs := []*audio.Features{
		nil,
		{FFT: fft, Energy: 4000, IsBeat: true},
		{FFT: fft, Energy: 900, IsOnset: true},
		{FFT: make([]uint8, audio.DefaultBins)},
	}
	for _, name := range allEffects {
		e, _ := Registry().Get(name)
		for _, preset := range e.Presets() {
			c := render.NewContext(layout.Triangles(7, 1, 0), rgb.Palette{rgb.Red, rgb.Green, rgb.Blue}, 9)
			e.ApplyPreset(preset, c.Uniforms)
			eng, err := render.NewEngine(c, e, nil)
			require.NoError(t, err, "%s/%s", name, preset)
			for i := 0; i < 20; i++ {
				n, err := eng.Tick(inputs[i%len(inputs)])
				require.NoError(t, err)
				assert.LessOrEqual(t, n, 7, "%s/%s", name, preset)
				seen := map[int]bool{}
				for _, f := range eng.Frames() {
					assert.False(t, seen[f.PanelID], "%s/%s duplicate panel %d", name, preset, f.PanelID)
					seen[f.PanelID] = true
					assert.NotEqual(t, -1, c.Layout.Index(f.PanelID))
				}
			}
		}
	}
}

func TestBins(t *testing.T) {
	reg := Registry()
	fw, _ := reg.Get("fireworks")
	assert.Equal(t, 16, Bins(fw))
	w, _ := reg.Get("wheel")
	assert.Equal(t, audio.DefaultBins, Bins(w))

	fs, _ := reg.Get("freqstars")
	c := render.NewContext(layout.Triangles(3, 1, 0), rgb.Palette{rgb.Red, rgb.Green}, 1)
	require.NoError(t, fs.Init(c))
	assert.Equal(t, 2, Bins(fs))
}
