// Package fireworks drops random palette colours onto panels over a slowly
// cycling dim background. The louder the low end of the spectrum, the more
// panels light up.
package fireworks

import (
	"math"

	"github.com/coreman2200/panelfx/internal/audio"
	"github.com/coreman2200/panelfx/internal/render"
	"github.com/coreman2200/panelfx/internal/rgb"
)

const (
	// Bins is the FFT resolution the effect is tuned for.
	Bins = 16

	skipCount     = 3
	hueStep       = 0.5
	burstTrans    = 0
	backdropTrans = 3
)

var defaultBurst = rgb.Palette{rgb.Red, rgb.Green, rgb.Blue}

type Effect struct {
	name  string
	burst rgb.Palette
	hue   float64
	skip  int
}

func New(name string) *Effect { return &Effect{name: name} }

func (e *Effect) Name() string      { return e.name }
func (e *Effect) Presets() []string { return []string{"Default", "Calm"} }
func (e *Effect) Bins() int         { return Bins }

func (e *Effect) ApplyPreset(p string, u *render.Uniforms) {
	if u == nil {
		return
	}
	switch p {
	case "Calm":
		u.Assign(map[string]float64{"Skip": 6, "Backdrop": 15})
	default:
		u.Assign(map[string]float64{"Skip": skipCount, "Backdrop": 30})
	}
}

// Init keeps the first palette colour for the backdrop and bursts with the
// rest, falling back to primaries.
func (e *Effect) Init(c *render.Context) error {
	e.hue, e.skip = 0, 0
	if len(c.Palette) > 1 {
		e.burst = append(rgb.Palette(nil), c.Palette[1:]...)
	} else {
		e.burst = defaultBurst
	}
	return nil
}

// Energy weights low bins more heavily than high ones.
func Energy(fft []uint8) int {
	energy := 0
	for i, v := range fft {
		energy += int(float64(v) * math.Pow(3.5, 1/float64(i+1)))
	}
	return min(energy, math.MaxUint16)
}

// Probability is the chance, out of 128, that a panel bursts this frame.
func Probability(energy int) int {
	return int(math.Pow(float64(energy>>5), 1.5)) >> 3
}

func (e *Effect) Render(dst []render.Frame, c *render.Context, in *audio.Features) int {
	if e.skip < int(c.Uniforms.Param("Skip", skipCount)) {
		e.skip++
		return 0
	}
	e.skip = 0

	prob := 0
	if in != nil {
		prob = Probability(Energy(in.FFT))
	}
	e.hue += hueStep
	if e.hue >= 360 {
		e.hue = 0
	}
	backdrop := rgb.HSVToRGB(rgb.HSV{H: int(e.hue), S: 100, V: int(c.Uniforms.Param("Backdrop", 30))})

	n := min(len(dst), c.Layout.Count())
	for i := 0; i < n; i++ {
		dst[i] = render.Frame{PanelID: c.Layout.Panels[i].ID, TransTime: backdropTrans}
		if c.Rand.Intn(128) < prob {
			col, _ := e.burst.Pick(c.Rand, rgb.White)
			dst[i].SetColor(col)
			dst[i].TransTime = burstTrans
			continue
		}
		dst[i].SetColor(backdrop)
	}
	return n
}
